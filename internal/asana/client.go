package asana

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lewinnovation/asana-update-summarizer/internal/logging"
)

// ErrInvalidCredential is returned when Asana rejects the access token.
var ErrInvalidCredential = errors.New("invalid credential")

// taskOptFields is the field projection requested for every task fetch.
const taskOptFields = "name,notes,completed,due_on,created_at,modified_at," +
	"tags.name,memberships.project.name,memberships.section.name"

// Config carries everything the client needs; it is passed in explicitly at
// construction time, never read from ambient state.
type Config struct {
	AccessToken string
	BaseURL     string
	Timeout     time.Duration
	Logger      logging.Logger
}

// Client is a thin typed wrapper over the Asana REST API. It issues exactly
// the four call shapes the review workflow needs and performs no retries.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	log         logging.Logger
}

// NewClient builds a client from cfg. An empty access token is rejected here
// so the failure surfaces before any network call.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return nil, fmt.Errorf("%w: access token is empty", ErrInvalidCredential)
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://app.asana.com/api/1.0"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: cfg.AccessToken,
		log:         logging.OrNop(cfg.Logger),
	}, nil
}

// GetCurrentUser resolves the authenticated user. A 401 response maps to
// ErrInvalidCredential so the caller can surface it as a credential problem.
func (c *Client) GetCurrentUser(ctx context.Context) (User, error) {
	var out struct {
		Data User `json:"data"`
	}
	if err := c.get(ctx, "/users/me", nil, &out); err != nil {
		return User{}, fmt.Errorf("fetch current user: %w", err)
	}
	if out.Data.GID == "" {
		return User{}, fmt.Errorf("fetch current user: %w", ErrInvalidCredential)
	}
	return out.Data, nil
}

// ListWorkspaces returns every workspace visible to the token.
func (c *Client) ListWorkspaces(ctx context.Context) ([]Workspace, error) {
	var out struct {
		Data []Workspace `json:"data"`
	}
	if err := c.get(ctx, "/workspaces", nil, &out); err != nil {
		return nil, fmt.Errorf("fetch workspaces: %w", err)
	}
	return out.Data, nil
}

// ListTasks returns the tasks assigned to assigneeGID in workspaceGID with
// the field projection the workflow renders. An empty result is not an error.
func (c *Client) ListTasks(ctx context.Context, workspaceGID, assigneeGID string) ([]Task, error) {
	query := url.Values{}
	query.Set("workspace", workspaceGID)
	query.Set("assignee", assigneeGID)
	query.Set("opt_fields", taskOptFields)

	var out struct {
		Data []Task `json:"data"`
	}
	if err := c.get(ctx, "/tasks", query, &out); err != nil {
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}
	for _, task := range out.Data {
		if task.GID == "" {
			return nil, fmt.Errorf("fetch tasks: task without identifier in response")
		}
	}
	return out.Data, nil
}

// PostComment attaches text as a story on the task.
func (c *Client) PostComment(ctx context.Context, taskGID, text string) error {
	payload := map[string]any{
		"data": map[string]string{"text": text},
	}
	path := fmt.Sprintf("/tasks/%s/stories", url.PathEscape(taskGID))
	if err := c.post(ctx, path, payload); err != nil {
		return fmt.Errorf("post comment on task %s: %w", taskGID, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	c.log.Debug("%s %s", req.Method, req.URL.Path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.Warn("close response body: %v", err)
		}
	}()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrInvalidCredential
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		c.log.Error("HTTP %d from %s: %s", resp.StatusCode, req.URL.Path, string(body))
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if out == nil {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
