// Package client provides a Go client for the taskdeck HTTP API and a
// session-scoped in-memory task store that mirrors the server state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// APIError is a non-2xx response from the server. Message carries the
// server's error body verbatim so callers can surface it directly.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type User struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskUpdate carries partial update fields: a nil pointer
// leaves the server value unchanged.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// Token returns the bearer token of the current session,
// or an empty string when logged out.
func (c *Client) Token() string {
	return c.token
}

// Logout drops the session token. The server keeps no session state,
// so this is purely a client-side teardown.
func (c *Client) Logout() {
	c.token = ""
}

type authResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

func (c *Client) Signup(ctx context.Context, email, password string, name *string) (*User, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
	}
	if name != nil {
		body["name"] = *name
	}

	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/auth/signup", body, &resp)
	if err != nil {
		return nil, err
	}

	c.token = resp.Token
	return &resp.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
	}

	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp)
	if err != nil {
		return nil, err
	}

	c.token = resp.Token
	return &resp.User, nil
}

func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var resp struct {
		Tasks []Task `json:"tasks"`
	}
	err := c.do(ctx, http.MethodGet, "/tasks", nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, title string, description *string) (*Task, error) {
	body := map[string]any{"title": title}
	if description != nil {
		body["description"] = *description
	}

	var resp struct {
		Task Task `json:"task"`
	}
	err := c.do(ctx, http.MethodPost, "/tasks", body, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, update TaskUpdate) (*Task, error) {
	var resp struct {
		Task Task `json:"task"`
	}
	err := c.do(ctx, http.MethodPut, "/tasks/"+id, update, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		if errBody.Error == "" {
			errBody.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: errBody.Error}
	}

	if out != nil {
		err = json.NewDecoder(resp.Body).Decode(out)
		if err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
