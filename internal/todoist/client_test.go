package todoist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dante4567/openwebui-sub000/internal/apperr"
	"github.com/dante4567/openwebui-sub000/internal/config"
	"github.com/dante4567/openwebui-sub000/internal/retry"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	exec := retry.New(nil)
	exec.SetSleep(func(context.Context, time.Duration) error { return nil })

	cfg := config.TodoistConfig{APIKey: "tok-123", BaseURL: srv.URL}
	return NewClient(cfg, exec, nil), srv
}

func TestListTasksSendsAuthAndFilters(t *testing.T) {
	var gotAuth, gotQuery string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]Task{{ID: "1", Content: "buy milk"}})
	}))

	tasks, err := c.ListTasks(context.Background(), Filter{ProjectID: "p1", Label: "work"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "buy milk", tasks[0].Content)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Contains(t, gotQuery, "project_id=p1")
	assert.Contains(t, gotQuery, "label=work")
}

func TestRequestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode([]Task{})
	}))

	_, err := c.ListTasks(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRequestExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.ListTasks(context.Background(), Filter{})
	assert.Equal(t, apperr.KindUpstreamUnavailable, apperr.KindOf(err))
	assert.Equal(t, int32(3), calls.Load())
}

func TestRequestDoesNotRetryNotFound(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.GetTask(context.Background(), "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestRequestDoesNotRetryBadRequest(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"content is empty"}`))
	}))

	_, err := c.CreateTask(context.Background(), CreateTaskArgs{})
	assert.Equal(t, apperr.KindUpstreamRejected, apperr.KindOf(err))
	assert.Equal(t, int32(1), calls.Load())
	// The upstream body stays out of the caller-visible payload.
	assert.NotContains(t, apperr.ResponseBody(err).Message, "content is empty")
}

func TestUpdateTaskUsesPost(t *testing.T) {
	var gotMethod, gotPath string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(Task{ID: "42", Content: "updated"})
	}))

	content := "updated"
	task, err := c.UpdateTask(context.Background(), "42", UpdateTaskArgs{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/tasks/42", gotPath)
	assert.Equal(t, "updated", task.Content)
}

func TestCloseAndReopen(t *testing.T) {
	var paths []string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, c.CloseTask(context.Background(), "7"))
	require.NoError(t, c.ReopenTask(context.Background(), "7"))
	assert.Equal(t, []string{"POST /tasks/7/close", "POST /tasks/7/reopen"}, paths)
}

func TestPingBypassesRetry(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.Ping(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "health probe must not amplify load")
}
