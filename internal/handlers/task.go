package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dante4567/openwebui-sub000/internal/dto"
	"github.com/dante4567/openwebui-sub000/internal/service"
	"github.com/dante4567/openwebui-sub000/internal/todoist"

	"github.com/gin-gonic/gin"
)

// TaskHandler serves the task tool routes.
type TaskHandler struct {
	svc *service.TaskService
	log *slog.Logger
}

// NewTaskHandler returns a new TaskHandler.
func NewTaskHandler(svc *service.TaskService, log *slog.Logger) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TaskHandler{svc: svc, log: log}
}

// List godoc
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        priority    query  int     false  "Priority 1-4"
// @Param        label       query  string  false  "Label name"
// @Param        project_id  query  string  false  "Project ID"
// @Param        limit       query  int     false  "Max results (1-500, default 50)"
// @Param        use_cache   query  bool    false  "Serve from cache (default true)"
// @Success      200  {array}   todoist.Task
// @Failure      400  {object}  apperr.Body
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	priority, err := queryInt(c, "priority")
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	useCache, err := queryBool(c, "use_cache", true)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	tasks, err := h.svc.List(requestContext(c), service.ListFilter{
		Priority:  priority,
		Label:     c.Query("label"),
		ProjectID: c.Query("project_id"),
		Limit:     limit,
		UseCache:  useCache,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateTaskRequest  true  "Task body"
// @Success      201   {object}  todoist.Task
// @Failure      400   {object}  apperr.Body
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.log, err)
		return
	}
	t, err := h.svc.Create(requestContext(c), todoist.CreateTaskArgs{
		Content:     req.Content,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		DueString:   req.DueString,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Labels:      req.Labels,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// GetByID godoc
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  todoist.Task
// @Failure      404  {object}  apperr.Body
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	t, err := h.svc.Get(requestContext(c), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Update godoc
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Task ID"
// @Param        body  body      dto.UpdateTaskRequest  true  "Partial update"
// @Success      200   {object}  todoist.Task
// @Failure      400   {object}  apperr.Body
// @Failure      404   {object}  apperr.Body
// @Router       /tasks/{id} [post]
func (h *TaskHandler) Update(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.log, err)
		return
	}
	t, err := h.svc.Update(requestContext(c), c.Param("id"), todoist.UpdateTaskArgs{
		Content:     req.Content,
		Description: req.Description,
		DueString:   req.DueString,
		Priority:    req.Priority,
		Labels:      req.Labels,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  apperr.Body
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(requestContext(c), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{
		Status:  "success",
		Message: fmt.Sprintf("Task %s deleted", id),
	})
}

// Close godoc
// @Summary      Mark a task complete
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  apperr.Body
// @Router       /tasks/{id}/close [post]
func (h *TaskHandler) Close(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Close(requestContext(c), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{
		Status:  "success",
		Message: fmt.Sprintf("Task %s completed", id),
	})
}

// Reopen godoc
// @Summary      Reopen a completed task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  apperr.Body
// @Router       /tasks/{id}/reopen [post]
func (h *TaskHandler) Reopen(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Reopen(requestContext(c), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{
		Status:  "success",
		Message: fmt.Sprintf("Task %s reopened", id),
	})
}

// Projects godoc
// @Summary      List projects
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        use_cache  query  bool  false  "Serve from cache (default true)"
// @Success      200  {array}  todoist.Project
// @Router       /projects [get]
func (h *TaskHandler) Projects(c *gin.Context) {
	useCache, err := queryBool(c, "use_cache", true)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	projects, err := h.svc.Projects(requestContext(c), useCache)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}
