package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dante4567/openwebui-sub000/internal/apperr"
	"github.com/dante4567/openwebui-sub000/internal/cache"
	"github.com/dante4567/openwebui-sub000/internal/todoist"
)

const (
	taskCachePrefix    = "tasks:"
	projectCachePrefix = "projects:"

	// DefaultLimit bounds list responses when the caller does not ask.
	DefaultLimit = 50
	// MaxLimit is the hard cap on list responses.
	MaxLimit = 500
)

// TaskService exposes task CRUD over the upstream task API, fronted by the
// shared cache. Every request is a stateless transaction: at most one cache
// read/write and one upstream round trip (after internal retries).
type TaskService struct {
	client *todoist.Client
	cache  *cache.Manager
	log    *slog.Logger
}

// NewTaskService creates a TaskService.
func NewTaskService(client *todoist.Client, c *cache.Manager, log *slog.Logger) *TaskService {
	if log == nil {
		log = slog.Default()
	}
	return &TaskService{client: client, cache: c, log: log}
}

// ListFilter narrows List. Zero Priority and empty strings mean "no
// filter"; zero Limit means DefaultLimit.
type ListFilter struct {
	Priority  int
	Label     string
	ProjectID string
	Limit     int
	UseCache  bool
}

func normalizeLimit(limit int) (int, error) {
	if limit == 0 {
		return DefaultLimit, nil
	}
	if limit < 1 || limit > MaxLimit {
		return 0, apperr.Validation("limit must be between 1 and %d", MaxLimit)
	}
	return limit, nil
}

func validatePriority(p int) error {
	if p < 0 || p > 4 {
		return apperr.Validation("priority must be between 1 and 4")
	}
	return nil
}

// List returns active tasks matching the filter. Label and project are
// filtered upstream; priority locally, since the upstream API has no
// priority parameter. The filtered result is cached under its own key.
func (s *TaskService) List(ctx context.Context, f ListFilter) ([]todoist.Task, error) {
	if err := validatePriority(f.Priority); err != nil {
		return nil, err
	}
	limit, err := normalizeLimit(f.Limit)
	if err != nil {
		return nil, err
	}

	key := cache.Key(taskCachePrefix+"list", map[string]string{
		"priority":   itoaOrEmpty(f.Priority),
		"label":      f.Label,
		"project_id": f.ProjectID,
		"limit":      strconv.Itoa(limit),
	})
	var tasks []todoist.Task
	if f.UseCache && s.cache.GetJSON(ctx, key, &tasks) {
		return tasks, nil
	}

	fetched, err := s.client.ListTasks(ctx, todoist.Filter{ProjectID: f.ProjectID, Label: f.Label})
	if err != nil {
		return nil, err
	}

	tasks = fetched[:0:0]
	for _, t := range fetched {
		if f.Priority != 0 && t.Priority != f.Priority {
			continue
		}
		tasks = append(tasks, t)
		if len(tasks) == limit {
			break
		}
	}
	if tasks == nil {
		tasks = []todoist.Task{}
	}

	if f.UseCache {
		s.cache.SetJSON(ctx, key, tasks)
	}
	return tasks, nil
}

// Get fetches one task by id, bypassing the cache: single-task reads are
// cheap and agents usually want them fresh.
func (s *TaskService) Get(ctx context.Context, id string) (todoist.Task, error) {
	if strings.TrimSpace(id) == "" {
		return todoist.Task{}, apperr.Validation("task id is required")
	}
	return s.client.GetTask(ctx, id)
}

// Create creates a task upstream and invalidates task list entries.
func (s *TaskService) Create(ctx context.Context, args todoist.CreateTaskArgs) (todoist.Task, error) {
	if strings.TrimSpace(args.Content) == "" {
		return todoist.Task{}, apperr.Validation("content is required")
	}
	if err := validatePriority(args.Priority); err != nil {
		return todoist.Task{}, err
	}
	t, err := s.client.CreateTask(ctx, args)
	if err != nil {
		return todoist.Task{}, err
	}
	s.cache.InvalidatePrefix(ctx, taskCachePrefix)
	return t, nil
}

// Update applies a partial update upstream.
func (s *TaskService) Update(ctx context.Context, id string, args todoist.UpdateTaskArgs) (todoist.Task, error) {
	if args.Priority != nil {
		if *args.Priority < 1 || *args.Priority > 4 {
			return todoist.Task{}, apperr.Validation("priority must be between 1 and 4")
		}
	}
	if args.Content != nil && strings.TrimSpace(*args.Content) == "" {
		return todoist.Task{}, apperr.Validation("content must not be empty")
	}
	t, err := s.client.UpdateTask(ctx, id, args)
	if err != nil {
		return todoist.Task{}, err
	}
	s.cache.InvalidatePrefix(ctx, taskCachePrefix)
	return t, nil
}

// Delete removes a task upstream.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidatePrefix(ctx, taskCachePrefix)
	return nil
}

// Close marks a task complete.
func (s *TaskService) Close(ctx context.Context, id string) error {
	if err := s.client.CloseTask(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidatePrefix(ctx, taskCachePrefix)
	return nil
}

// Reopen reopens a completed task.
func (s *TaskService) Reopen(ctx context.Context, id string) error {
	if err := s.client.ReopenTask(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidatePrefix(ctx, taskCachePrefix)
	return nil
}

// Projects lists upstream projects, cached like any other read.
func (s *TaskService) Projects(ctx context.Context, useCache bool) ([]todoist.Project, error) {
	key := projectCachePrefix + "list"
	var projects []todoist.Project
	if useCache && s.cache.GetJSON(ctx, key, &projects) {
		return projects, nil
	}
	projects, err := s.client.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []todoist.Project{}
	}
	if useCache {
		s.cache.SetJSON(ctx, key, projects)
	}
	return projects, nil
}

func itoaOrEmpty(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
