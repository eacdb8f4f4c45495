// Package todoist is the HTTP client for the Todoist REST v2 API.
package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dante4567/openwebui-sub000/internal/apperr"
	"github.com/dante4567/openwebui-sub000/internal/config"
	"github.com/dante4567/openwebui-sub000/internal/retry"
)

// Client wraps the Todoist REST v2 API with bearer auth, a per-attempt
// timeout and the shared retry executor. All operations it is used for are
// idempotent on retry: reads trivially, mutations because they are keyed by
// the same resource id.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	exec    *retry.Executor
	log     *slog.Logger
}

// NewClient creates a Client from config.
func NewClient(cfg config.TodoistConfig, exec *retry.Executor, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	timeout := cfg.Timeout.Duration()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpc:   &http.Client{Timeout: timeout},
		exec:    exec,
		log:     log,
	}
}

// ListTasks returns active tasks, optionally narrowed by project and label.
func (c *Client) ListTasks(ctx context.Context, f Filter) ([]Task, error) {
	q := url.Values{}
	if f.ProjectID != "" {
		q.Set("project_id", f.ProjectID)
	}
	if f.Label != "" {
		q.Set("label", f.Label)
	}
	var tasks []Task
	if err := c.request(ctx, http.MethodGet, "/tasks", q, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask fetches one task by id.
func (c *Client) GetTask(ctx context.Context, id string) (Task, error) {
	var t Task
	if err := c.request(ctx, http.MethodGet, "/tasks/"+id, nil, nil, &t); err != nil {
		return Task{}, err
	}
	return t, nil
}

// CreateTask creates a task and returns the upstream object.
func (c *Client) CreateTask(ctx context.Context, args CreateTaskArgs) (Task, error) {
	var t Task
	if err := c.request(ctx, http.MethodPost, "/tasks", nil, args, &t); err != nil {
		return Task{}, err
	}
	return t, nil
}

// UpdateTask applies a partial update. Todoist uses POST, not PATCH, for
// task updates and returns the updated object.
func (c *Client) UpdateTask(ctx context.Context, id string, args UpdateTaskArgs) (Task, error) {
	var t Task
	if err := c.request(ctx, http.MethodPost, "/tasks/"+id, nil, args, &t); err != nil {
		return Task{}, err
	}
	return t, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.request(ctx, http.MethodDelete, "/tasks/"+id, nil, nil, nil)
}

// CloseTask marks a task complete.
func (c *Client) CloseTask(ctx context.Context, id string) error {
	return c.request(ctx, http.MethodPost, "/tasks/"+id+"/close", nil, nil, nil)
}

// ReopenTask reopens a completed task.
func (c *Client) ReopenTask(ctx context.Context, id string) error {
	return c.request(ctx, http.MethodPost, "/tasks/"+id+"/reopen", nil, nil, nil)
}

// ListProjects returns all projects.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.request(ctx, http.MethodGet, "/projects", nil, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Ping measures upstream reachability with a single cheap read, bypassing
// the retry loop so health stays fast.
func (c *Client) Ping(ctx context.Context) (time.Duration, error) {
	started := time.Now()
	err := c.do(ctx, http.MethodGet, "/projects", nil, nil, nil)
	return time.Since(started), err
}

// request runs one API call through the retry executor.
func (c *Client) request(ctx context.Context, method, path string, query url.Values, body, out any) error {
	op := fmt.Sprintf("todoist %s %s", method, path)
	return c.exec.Do(ctx, op, func() error {
		return c.do(ctx, method, path, query, body, out)
	})
}

// do performs a single attempt and classifies the outcome: 404 becomes
// not_found, other 4xx become upstream_rejected (body logged, never
// returned to the caller), 5xx and 429 become retryable HTTP errors.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	urlStr := c.baseURL + path
	if len(query) > 0 {
		urlStr += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("todoist request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		he := &retry.HTTPError{Status: resp.StatusCode, Body: truncate(respBody, 200)}
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil {
				he.RetryAfter = time.Duration(secs) * time.Second
			}
		}
		return he
	case resp.StatusCode == http.StatusNotFound:
		return apperr.NotFound("task not found")
	case resp.StatusCode >= 400:
		c.log.Error("todoist rejected request",
			"method", method, "path", path,
			"status", resp.StatusCode, "body", truncate(respBody, 200))
		return apperr.UpstreamRejected("task API rejected the request",
			fmt.Errorf("HTTP %d: %s", resp.StatusCode, truncate(respBody, 200)))
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
