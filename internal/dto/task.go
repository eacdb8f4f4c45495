package dto

// CreateTaskRequest is the JSON body for POST /tasks. Field names mirror
// the upstream task API so agent prompts can pass them through.
type CreateTaskRequest struct {
	Content     string   `json:"content" binding:"required,min=1"`
	Description string   `json:"description"`
	ProjectID   string   `json:"project_id"`
	DueString   string   `json:"due_string"`
	DueDate     string   `json:"due_date"`
	Priority    int      `json:"priority" binding:"omitempty,min=1,max=4"`
	Labels      []string `json:"labels"`
}

// UpdateTaskRequest is the JSON body for POST /tasks/{id}. nil = leave as is.
type UpdateTaskRequest struct {
	Content     *string   `json:"content" binding:"omitempty,min=1"`
	Description *string   `json:"description"`
	DueString   *string   `json:"due_string"`
	Priority    *int      `json:"priority" binding:"omitempty,min=1,max=4"`
	Labels      *[]string `json:"labels"`
}

// StatusResponse is the generic success body for close/reopen/delete style
// operations.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
