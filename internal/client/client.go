package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nhle/todoist/internal/model"
)

// APIError is a non-2xx response from the todo server, carrying the error
// message from the response body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Client is a thin JSON HTTP client for the todo API. It handles request
// construction, JSON (de)serialization, and error-body decoding.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a todo API client. baseURL is the server root
// (e.g. http://localhost:3000). A nil httpClient gets a default with a
// 15 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// GetTodos fetches the whole collection.
func (c *Client) GetTodos(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	if err := c.do(ctx, http.MethodGet, "/api/todos", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// GetTodo fetches a single todo by id.
func (c *Client) GetTodo(ctx context.Context, id int64) (model.Todo, error) {
	var found model.Todo
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/todos/%d", id), nil, &found); err != nil {
		return model.Todo{}, err
	}
	return found, nil
}

type createTodoBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CreateTodo creates a new todo and returns the server-confirmed record
// with its assigned id and timestamps.
func (c *Client) CreateTodo(ctx context.Context, title, description string) (model.Todo, error) {
	var created model.Todo
	body := createTodoBody{Title: title, Description: description}
	if err := c.do(ctx, http.MethodPost, "/api/todos", body, &created); err != nil {
		return model.Todo{}, err
	}
	return created, nil
}

// updateTodoBody carries only the client-mutable fields; the server owns
// id and timestamps.
type updateTodoBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// UpdateTodo sends the todo's mutable fields and returns the
// server-confirmed record.
func (c *Client) UpdateTodo(ctx context.Context, id int64, t model.Todo) (model.Todo, error) {
	var updated model.Todo
	body := updateTodoBody{Title: t.Title, Description: t.Description, Completed: t.Completed}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/todos/%d", id), body, &updated); err != nil {
		return model.Todo{}, err
	}
	return updated, nil
}

// DeleteTodo removes a todo by id.
func (c *Client) DeleteTodo(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/todos/%d", id), nil, nil)
}

// do builds the request, executes it, and decodes either the JSON result
// or the server's error body.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request %s %s: %w", method, path, err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("reading response body: %w", readErr)
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(respBody, &apiErr)
		msg := apiErr.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("parsing response from %s %s: %w", method, path, err)
		}
	}

	return nil
}
