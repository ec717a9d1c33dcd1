package asana

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lewinnovation/asana-update-summarizer/internal/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(Config{AccessToken: "token-123", BaseURL: server.URL})
	require.NoError(t, err)
	return client
}

func TestNewClientRejectsEmptyToken(t *testing.T) {
	_, err := NewClient(Config{AccessToken: "   "})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestGetCurrentUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]string{"gid": "u1", "name": "Dev"},
		})
	})

	user, err := client.GetCurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, User{GID: "u1", Name: "Dev"}, user)
}

func TestGetCurrentUserUnauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.GetCurrentUser(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredential)
	assert.Contains(t, err.Error(), "fetch current user")
}

func TestGetCurrentUserMissingIdentifier(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"name":"ghost"}}`))
	})

	_, err := client.GetCurrentUser(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestListWorkspaces(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/workspaces", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"gid":"w1","name":"Lab"},{"gid":"w2","name":"Side"}]}`))
	})

	workspaces, err := client.ListWorkspaces(context.Background())
	require.NoError(t, err)
	require.Len(t, workspaces, 2)
	assert.Equal(t, "Lab", workspaces[0].Name)
}

func TestListWorkspacesServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	})

	_, err := client.ListWorkspaces(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch workspaces")
	assert.Contains(t, err.Error(), "upstream exploded")
}

func TestListTasks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tasks", r.URL.Path)
		query := r.URL.Query()
		assert.Equal(t, "w1", query.Get("workspace"))
		assert.Equal(t, "u1", query.Get("assignee"))
		assert.Contains(t, query.Get("opt_fields"), "modified_at")
		assert.Contains(t, query.Get("opt_fields"), "memberships.project.name")
		_, _ = w.Write([]byte(`{"data":[{
			"gid":"1",
			"name":"Write report",
			"completed":false,
			"modified_at":"2026-08-24T10:00:00.000Z",
			"memberships":[{"project":{"gid":"p1","name":"Ops"},"section":{"gid":"s1","name":"Doing"}}]
		}]}`))
	})

	tasks, err := client.ListTasks(context.Background(), "w1", "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	task := tasks[0]
	assert.Equal(t, "1", task.GID)
	assert.Equal(t, "Write report", task.Name)
	assert.Equal(t, time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC), task.ModifiedAt.UTC())
	require.Len(t, task.Memberships, 1)
	require.NotNil(t, task.Memberships[0].Project)
	assert.Equal(t, "Ops", task.Memberships[0].Project.Name)
}

func TestListTasksEmptyIsNotAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	tasks, err := client.ListTasks(context.Background(), "w1", "u1")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestListTasksRejectsMissingIdentifier(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"name":"no gid"}]}`))
	})

	_, err := client.ListTasks(context.Background(), "w1", "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without identifier")
}

func TestPostComment(t *testing.T) {
	var gotBody map[string]map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tasks/1/stories", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.PostComment(context.Background(), "1", "Shipped it")
	require.NoError(t, err)
	assert.Equal(t, "Shipped it", gotBody["data"]["text"])
}

// A debug-leveled logger must receive the request trace lines.
func TestClientDebugTracesRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"gid":"u1","name":"Dev"}}`))
	}))
	t.Cleanup(server.Close)

	var buf strings.Builder
	logger := logging.NewWriterLogger("asana", &buf)
	logger.SetLevel(logging.DebugLevel)

	client, err := NewClient(Config{AccessToken: "token-123", BaseURL: server.URL, Logger: logger})
	require.NoError(t, err)

	_, err = client.GetCurrentUser(context.Background())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "GET /users/me")
}

func TestPostCommentFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	})

	err := client.PostComment(context.Background(), "1", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "post comment on task 1")
}
