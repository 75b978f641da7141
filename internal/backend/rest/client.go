// Package rest implements the service.Service interface over the task REST API.
package rest

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

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"taskflow/internal/config"
	"taskflow/internal/logging"
	"taskflow/internal/service"
)

// maxErrorBody caps how much of a failed response is kept in StatusError.
const maxErrorBody = 512

var (
	// ErrNotFound matches a StatusError with status 404.
	ErrNotFound = errors.New("not found")

	// ErrTimeout is returned when the request deadline passes.
	ErrTimeout = errors.New("request timed out")
)

// StatusError reports a completed request with a non-success status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client implements service.Service against a REST endpoint.
type Client struct {
	base string
	http *http.Client
	log  logrus.FieldLogger
}

// New creates a client for cfg.APIBase.
// Requests are traced through otelhttp and bounded by cfg.Timeout when set.
func New(cfg *config.Config, log logrus.FieldLogger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   cfg.Timeout,
	}
	return NewWithHTTPClient(cfg.APIBase, httpClient, log), nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(base string, httpClient *http.Client, log logrus.FieldLogger) *Client {
	if log == nil {
		log = logging.Discard()
	}
	return &Client{
		base: base,
		http: httpClient,
		log:  log.WithField("component", "rest"),
	}
}

// ListTasks returns all tasks in backend order.
// An empty or null body yields an empty collection. A malformed body yields
// an empty collection and service.ErrMalformedResponse.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	resp, err := c.do(ctx, http.MethodGet, c.base, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read task list: %w", err)
	}

	tasks := []service.Task{}
	if len(bytes.TrimSpace(data)) == 0 {
		return tasks, nil
	}
	var decoded []service.Task
	if err := json.Unmarshal(data, &decoded); err != nil {
		c.log.WithError(err).Warn("malformed task list, treating as empty")
		return tasks, fmt.Errorf("%w: %v", service.ErrMalformedResponse, err)
	}

	for _, t := range decoded {
		if !t.Status.Valid() {
			c.log.WithFields(logrus.Fields{"task_id": t.ID, "status": t.Status}).Warn("unknown task status, treating as active")
			t.Status = service.StatusActive
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, task service.NewTask) error {
	return c.send(ctx, http.MethodPost, c.base, task)
}

// UpdateTask updates a task's title and description.
func (c *Client) UpdateTask(ctx context.Context, id string, update service.TaskUpdate) error {
	return c.send(ctx, http.MethodPut, c.taskURL(id), update)
}

// SetStatus sets a task's status.
func (c *Client) SetStatus(ctx context.Context, id string, status service.Status) error {
	body := struct {
		Status service.Status `json:"status"`
	}{status}
	return c.send(ctx, http.MethodPut, c.taskURL(id)+"/status", body)
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, c.taskURL(id), nil)
}

func (c *Client) taskURL(id string) string {
	return c.base + "/" + url.PathEscape(id)
}

// send issues a request and accepts any 2xx status.
func (c *Client) send(ctx context.Context, method, target string, body any) error {
	resp, err := c.do(ctx, method, target, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) do(ctx context.Context, method, target string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	entry := c.log.WithFields(logrus.Fields{
		"method":  method,
		"url":     target,
		"elapsed": time.Since(start).String(),
	})
	if err != nil {
		entry.WithError(err).Debug("request failed")
		return nil, wrapError(method, target, err)
	}
	entry.WithField("status", resp.StatusCode).Debug("request completed")
	return resp, nil
}

func statusError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		Method:     resp.Request.Method,
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(data)),
	}
}

// wrapError turns transport failures into errors with a readable cause.
func wrapError(method, target string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s %s: %w", method, target, ErrTimeout)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Errorf("%s %s: %w", method, target, ErrTimeout)
	}
	return err
}
