package todoist

// Task mirrors the Todoist REST v2 task object for the fields this server
// exposes. Identity is the upstream-assigned ID.
type Task struct {
	ID          string   `json:"id"`
	Content     string   `json:"content"`
	Description string   `json:"description,omitempty"`
	ProjectID   string   `json:"project_id,omitempty"`
	Priority    int      `json:"priority"`
	Labels      []string `json:"labels,omitempty"`
	Due         *Due     `json:"due,omitempty"`
	IsCompleted bool     `json:"is_completed"`
	URL         string   `json:"url,omitempty"`
}

// Due is the upstream due object.
type Due struct {
	Date     string `json:"date,omitempty"`
	String   string `json:"string,omitempty"`
	Datetime string `json:"datetime,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// Project mirrors the REST v2 project object.
type Project struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color,omitempty"`
	IsFavorite bool   `json:"is_favorite"`
	URL        string `json:"url,omitempty"`
}

// CreateTaskArgs is the create payload. Content is required; zero values
// are omitted from the request.
type CreateTaskArgs struct {
	Content     string   `json:"content"`
	Description string   `json:"description,omitempty"`
	ProjectID   string   `json:"project_id,omitempty"`
	DueString   string   `json:"due_string,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
	Priority    int      `json:"priority,omitempty"`
	Labels      []string `json:"labels,omitempty"`
}

// UpdateTaskArgs is the partial-update payload; nil fields are left
// untouched upstream.
type UpdateTaskArgs struct {
	Content     *string   `json:"content,omitempty"`
	Description *string   `json:"description,omitempty"`
	DueString   *string   `json:"due_string,omitempty"`
	Priority    *int      `json:"priority,omitempty"`
	Labels      *[]string `json:"labels,omitempty"`
}

// Filter narrows ListTasks. Label and ProjectID are applied upstream; the
// REST API has no priority parameter, so priority filtering happens in the
// service layer.
type Filter struct {
	ProjectID string
	Label     string
}
