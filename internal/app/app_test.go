package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dante4567/openwebui-sub000/internal/config"
	"github.com/dante4567/openwebui-sub000/internal/todoist"
)

// fakeTodoist is an in-memory Todoist REST v2 stand-in.
type fakeTodoist struct {
	mu     sync.Mutex
	nextID int
	tasks  map[string]todoist.Task
}

func newFakeTodoist() *fakeTodoist {
	return &fakeTodoist{nextID: 1, tasks: map[string]todoist.Task{}}
}

func (f *fakeTodoist) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/")
	parts := strings.Split(path, "/")

	switch {
	case r.Method == http.MethodGet && path == "projects":
		json.NewEncoder(w).Encode([]todoist.Project{{ID: "p1", Name: "Inbox"}})
	case r.Method == http.MethodGet && path == "tasks":
		out := make([]todoist.Task, 0, len(f.tasks))
		for _, t := range f.tasks {
			out = append(out, t)
		}
		json.NewEncoder(w).Encode(out)
	case r.Method == http.MethodPost && path == "tasks":
		var args todoist.CreateTaskArgs
		json.NewDecoder(r.Body).Decode(&args)
		t := todoist.Task{
			ID:       strconv.Itoa(f.nextID),
			Content:  args.Content,
			Priority: args.Priority,
		}
		if t.Priority == 0 {
			t.Priority = 1
		}
		f.nextID++
		f.tasks[t.ID] = t
		json.NewEncoder(w).Encode(t)
	case len(parts) == 2 && parts[0] == "tasks":
		t, ok := f.tasks[parts[1]]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(t)
		case http.MethodPost:
			var args todoist.UpdateTaskArgs
			json.NewDecoder(r.Body).Decode(&args)
			if args.Content != nil {
				t.Content = *args.Content
			}
			if args.Priority != nil {
				t.Priority = *args.Priority
			}
			f.tasks[t.ID] = t
			json.NewEncoder(w).Encode(t)
		case http.MethodDelete:
			delete(f.tasks, t.ID)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case len(parts) == 3 && parts[0] == "tasks" && parts[2] == "close":
		t, ok := f.tasks[parts[1]]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		t.IsCompleted = true
		f.tasks[t.ID] = t
		w.WriteHeader(http.StatusNoContent)
	case len(parts) == 3 && parts[0] == "tasks" && parts[2] == "reopen":
		t, ok := f.tasks[parts[1]]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		t.IsCompleted = false
		f.tasks[t.ID] = t
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTodoistApp(t *testing.T, apiKey string) *App {
	t.Helper()
	upstream := httptest.NewServer(newFakeTodoist())
	t.Cleanup(upstream.Close)

	cfg := config.Config{
		App:     config.AppConfig{Env: "test", Version: "test"},
		Auth:    config.AuthConfig{APIKey: apiKey},
		Todoist: config.TodoistConfig{APIKey: "upstream-key", BaseURL: upstream.URL},
	}
	a, err := NewTodoist(cfg)
	require.NoError(t, err)
	return a
}

func doJSON(t *testing.T, a *App, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)
	return w
}

func TestTaskLifecycleOverHTTP(t *testing.T) {
	a := newTodoistApp(t, "")

	w := doJSON(t, a, http.MethodPost, "/tasks", "", map[string]any{"content": "buy milk", "priority": 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created todoist.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "buy milk", created.Content)

	w = doJSON(t, a, http.MethodGet, "/tasks?use_cache=false", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []todoist.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)

	w = doJSON(t, a, http.MethodPost, "/tasks/"+created.ID+"/close", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "completed")

	w = doJSON(t, a, http.MethodDelete, "/tasks/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deleted")

	w = doJSON(t, a, http.MethodGet, "/tasks/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthMatrixOverHTTP(t *testing.T) {
	t.Run("no key configured", func(t *testing.T) {
		a := newTodoistApp(t, "")
		assert.Equal(t, http.StatusOK, doJSON(t, a, http.MethodGet, "/tasks", "", nil).Code)
		assert.Equal(t, http.StatusOK, doJSON(t, a, http.MethodGet, "/tasks", "whatever", nil).Code)
	})

	t.Run("key configured", func(t *testing.T) {
		a := newTodoistApp(t, "secret")
		assert.Equal(t, http.StatusUnauthorized, doJSON(t, a, http.MethodGet, "/tasks", "", nil).Code)
		assert.Equal(t, http.StatusForbidden, doJSON(t, a, http.MethodGet, "/tasks", "wrong", nil).Code)
		assert.Equal(t, http.StatusOK, doJSON(t, a, http.MethodGet, "/tasks", "secret", nil).Code)

		// Liveness and health stay public.
		assert.Equal(t, http.StatusOK, doJSON(t, a, http.MethodGet, "/", "", nil).Code)
		assert.Equal(t, http.StatusOK, doJSON(t, a, http.MethodGet, "/health", "", nil).Code)
	})
}

func TestValidationRejectedAtTheEdge(t *testing.T) {
	a := newTodoistApp(t, "")

	w := doJSON(t, a, http.MethodPost, "/tasks", "", map[string]any{"content": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, a, http.MethodGet, "/tasks?priority=9", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, a, http.MethodGet, "/tasks?limit=notanumber", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListServedFromCacheAcrossRequests(t *testing.T) {
	var upstreamCalls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalls.Add(1)
		json.NewEncoder(w).Encode([]todoist.Task{{ID: "1", Content: "cached", Priority: 1}})
	}))
	t.Cleanup(upstream.Close)

	cfg := config.Config{
		App:     config.AppConfig{Env: "test"},
		Todoist: config.TodoistConfig{APIKey: "k", BaseURL: upstream.URL},
	}
	a, err := NewTodoist(cfg)
	require.NoError(t, err)

	first := doJSON(t, a, http.MethodGet, "/tasks", "", nil)
	require.Equal(t, http.StatusOK, first.Code)
	second := doJSON(t, a, http.MethodGet, "/tasks", "", nil)
	require.Equal(t, http.StatusOK, second.Code)

	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, int32(1), upstreamCalls.Load(),
		"second identical request within the TTL must not reach upstream")
}

func TestHealthPayload(t *testing.T) {
	a := newTodoistApp(t, "secret")

	w := doJSON(t, a, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status   string `json:"status"`
		Service  string `json:"service"`
		Auth     string `json:"auth"`
		Upstream struct {
			Status    string  `json:"status"`
			LatencyMs float64 `json:"latency_ms"`
		} `json:"upstream"`
		Cache struct {
			Entries    int     `json:"entries"`
			TTLSeconds float64 `json:"ttl_seconds"`
		} `json:"cache"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "todoist-tool", body.Service)
	assert.Equal(t, "enabled", body.Auth)
	assert.Equal(t, "ok", body.Upstream.Status)
	assert.Equal(t, 60.0, body.Cache.TTLSeconds)
}

func TestHealthDegradedWhenUpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(upstream.Close)

	cfg := config.Config{
		App:     config.AppConfig{Env: "test"},
		Todoist: config.TodoistConfig{APIKey: "k", BaseURL: upstream.URL},
	}
	a, err := NewTodoist(cfg)
	require.NoError(t, err)

	w := doJSON(t, a, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code, "health must answer even when upstream is down")
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
}

func TestRootEndpoint(t *testing.T) {
	a := newTodoistApp(t, "")

	w := doJSON(t, a, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "todoist-tool", body["service"])
}
