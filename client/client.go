package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"vmake/models"
)

// Model calls behind process-project are slow, so the default timeout is
// deliberately generous.
const defaultTimeout = 120 * time.Second

// APIError is a response the server produced itself (4xx/5xx).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// TimeoutError is a client-side deadline hit; the in-flight server work is
// abandoned, not cancelled.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out: %v", e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// NetworkError means no response reached the server at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Client is a typed wrapper over the project-planning API.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// Backoff settings for idempotent reads. Writes are never retried: the
	// server has no deduplication key that would make that safe.
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRetries configures the backoff decorator used by idempotent reads.
func WithRetries(max int, baseDelay, maxDelay time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = max
		c.baseDelay = baseDelay
		c.maxDelay = maxDelay
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		maxRetries: 3,
		baseDelay:  500 * time.Millisecond,
		maxDelay:   5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the common success/message wrapper on every response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ProcessProjectResponse carries the generated results.
type ProcessProjectResponse struct {
	Success   bool                    `json:"success"`
	PartsList *models.PartsList       `json:"partsList"`
	Analysis  *models.ProjectAnalysis `json:"analysis"`
}

// StoreProjectRequest is the submission plus its generated results.
type StoreProjectRequest struct {
	models.ProjectSubmission
	PartsList *models.PartsList       `json:"partsList,omitempty"`
	Analysis  *models.ProjectAnalysis `json:"analysis,omitempty"`
}

// StoreProjectData is the payload under "data" in a store response.
type StoreProjectData struct {
	SubmissionID string `json:"submissionId"`
	UpdatedRange string `json:"updatedRange"`
}

// StoreProjectResponse reports where the submission was stored.
type StoreProjectResponse struct {
	Success bool             `json:"success"`
	Data    StoreProjectData `json:"data"`
}

// HealthStatus mirrors the health endpoint response.
type HealthStatus struct {
	Status           string `json:"status"`
	AIService        bool   `json:"aiService"`
	GeminiConfigured bool   `json:"geminiConfigured"`
}

func (c *Client) ProcessProject(ctx context.Context, sub models.ProjectSubmission) (*ProcessProjectResponse, error) {
	var resp ProcessProjectResponse
	if err := c.post(ctx, "/api/process-project", sub, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) StoreProject(ctx context.Context, req StoreProjectRequest) (*StoreProjectResponse, error) {
	var resp StoreProjectResponse
	if err := c.post(ctx, "/api/store-project", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) VerifyPayment(ctx context.Context, transactionID string) error {
	body := map[string]string{"transactionId": transactionID}
	var resp envelope
	return c.post(ctx, "/api/verify-payment", body, &resp)
}

func (c *Client) UpdateProjectStatus(ctx context.Context, upd models.StatusUpdate) error {
	var resp envelope
	return c.post(ctx, "/api/update-project-status", upd, &resp)
}

// Health polls readiness. As the one idempotent read the engine depends on,
// it goes through the backoff decorator.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.getWithRetry(ctx, "/api/health", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Hello is a plain liveness check.
func (c *Client) Hello(ctx context.Context) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.get(ctx, "/api/hello", &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

// getWithRetry wraps get with capped exponential backoff. Only transport
// failures and 5xx responses are retried.
func (c *Client) getWithRetry(ctx context.Context, path string, out interface{}) error {
	delay := c.baseDelay
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return classifyTransportError(ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
			if delay > c.maxDelay {
				delay = c.maxDelay
			}
		}

		lastErr = c.get(ctx, path, out)
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError
	}
	var netErr *NetworkError
	var toErr *TimeoutError
	return errors.As(err, &netErr) || errors.As(err, &toErr)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var env envelope
		msg := http.StatusText(resp.StatusCode)
		if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
			msg = env.Message
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{Err: err}
	}
	return &NetworkError{Err: err}
}
