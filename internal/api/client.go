// Package api implements the HTTP client for the taskbot backend,
// translating between the wire format and the task view model.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/taskbot-dev/taskbot/internal/backend"
	"github.com/taskbot-dev/taskbot/internal/clierr"
	"github.com/taskbot-dev/taskbot/internal/task"
)

const requestTimeout = 15 * time.Second

// APIError is a non-2xx response from the backend. Detail carries the
// server-supplied message when the error body had one.
type APIError struct {
	Status int
	Detail string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "HTTP " + strconv.Itoa(e.Status)
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

// Client talks to the taskbot REST API. It implements backend.Backend.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	now     func() time.Time
}

// NewClient creates a Client for the given base URL. The token is sent
// verbatim in the Authorization header; an empty token is not an error
// at this layer (the server decides authorization).
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{Timeout: requestTimeout},
		now:     time.Now,
	}
}

// SetNow overrides the clock used for wire-time fallbacks (for testing).
func (c *Client) SetNow(fn func() time.Time) { c.now = fn }

// List fetches tasks for the given filter tag. FilterAll maps to no
// filter parameter.
func (c *Client) List(ctx context.Context, f task.Filter) ([]*task.Task, task.Counts, error) {
	endpoint := "/api/tasks"
	if f != "" && f != task.FilterAll {
		endpoint += "?filter=" + url.QueryEscape(string(f))
	}

	var resp listResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, task.Counts{}, err
	}

	now := c.now()
	tasks := make([]*task.Task, 0, len(resp.Tasks))
	for _, w := range resp.Tasks {
		t, err := fromWire(w, now)
		if err != nil {
			return nil, task.Counts{}, err
		}
		tasks = append(tasks, t)
	}
	return tasks, resp.Counts, nil
}

// Counts fetches the aggregate counts without the task list.
func (c *Client) Counts(ctx context.Context) (task.Counts, error) {
	var counts task.Counts
	err := c.do(ctx, http.MethodGet, "/api/tasks/counts", nil, &counts)
	return counts, err
}

// Create stores a new task. The server assigns the ID; the returned task
// mirrors the draft with server-confirmed identity and fresh timestamps.
func (c *Client) Create(ctx context.Context, d backend.Draft) (*task.Task, error) {
	var resp createResponse
	if err := c.do(ctx, http.MethodPost, "/api/tasks", toCreatePayload(d), &resp); err != nil {
		return nil, err
	}

	now := c.now()
	return &task.Task{
		ID:              resp.ID,
		Title:           d.Title,
		Description:     d.Description,
		Category:        d.Category,
		DueDate:         d.DueDate,
		DueTime:         d.DueTime,
		ReminderMinutes: d.ReminderMinutes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Update applies a partial patch to the task with the given ID. Callers
// rescheduling a task set DueDate and DueTime together; a patched DueTime
// without a DueDate is meaningless on the wire and is ignored.
func (c *Client) Update(ctx context.Context, id int, p backend.Patch) error {
	var resp statusResponse
	return c.do(ctx, http.MethodPut, "/api/tasks/"+strconv.Itoa(id), toUpdateBody(p), &resp)
}

// Toggle flips the completion flag of the task with the given ID.
func (c *Client) Toggle(ctx context.Context, id int) error {
	var resp statusResponse
	return c.do(ctx, http.MethodPost, "/api/tasks/toggle", toggleRequest{TaskID: id}, &resp)
}

// Delete removes the task with the given ID.
func (c *Client) Delete(ctx context.Context, id int) error {
	var resp statusResponse
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+strconv.Itoa(id), nil, &resp)
}

// do sends one request and decodes the response into out. Transport
// failures become NETWORK_ERROR; non-2xx responses become *APIError with
// the server's detail message when the body carried one.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return clierr.Newf(clierr.NetworkError, "request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var eb errorBody
	if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
		apiErr.Detail = eb.Detail
	}
	return apiErr
}
