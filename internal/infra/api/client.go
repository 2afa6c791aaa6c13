package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	defaultBaseURL = "http://localhost:8000"
	defaultTimeout = 30 * time.Second

	maxErrorBody = 64 << 10
)

// TokenSource supplies the current bearer token. An empty string means no
// credential is held and the Authorization header is omitted.
type TokenSource interface {
	Token() string
}

// UnauthorizedHandler receives the typed credential-rejected signal emitted
// when the server answers 401 on a non-auth endpoint. Navigation or session
// teardown belongs to the registered listener, not to the transport.
type UnauthorizedHandler func(ctx context.Context)

// Client is the HTTP transport shared by every API surface. It injects the
// bearer token on the way out and normalizes failures on the way back so
// callers always see a human-readable message.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger

	mu             sync.RWMutex
	tokens         TokenSource
	onUnauthorized UnauthorizedHandler
}

// NewClient builds the transport. Timeouts are enforced per call through
// the request context, so a long-running call can exceed the default.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	url := strings.TrimSpace(baseURL)
	if url == "" {
		url = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(url, "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
		logger:     logger.With("component", "api.client"),
	}
}

// SetTokenSource registers the credential supplier. Registered after
// construction because the session manager is itself built on top of this
// client.
func (c *Client) SetTokenSource(src TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = src
}

// SetUnauthorizedHandler registers the credential-rejected listener.
func (c *Client) SetUnauthorizedHandler(handler UnauthorizedHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = handler
}

type callOptions struct {
	timeout time.Duration
}

// CallOption tweaks a single request.
type CallOption func(*callOptions)

// WithTimeout overrides the client default for one call. Used by guide
// generation, which can run for minutes.
func WithTimeout(d time.Duration) CallOption {
	return func(o *callOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// Get issues an authenticated GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodGet, path, nil, out, opts...)
}

// Post issues an authenticated POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodPost, path, body, out, opts...)
}

// Put issues an authenticated PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodPut, path, body, out, opts...)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, opts ...CallOption) error {
	options := callOptions{timeout: c.timeout}
	for _, opt := range opts {
		opt(&options)
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	ctx, cancel := context.WithTimeout(ctx, options.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("api request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("api request failed", "method", method, "path", path, "error", err)
		return &Error{Message: MsgNoResponse, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.handleErrorResponse(ctx, resp, path)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// handleErrorResponse normalizes an error status into *Error, preferring the
// server's message field, then detail, then a generic string. A 401 outside
// the auth endpoints additionally emits the credential-rejected signal; a
// failed login is not a session expiry.
func (c *Client) handleErrorResponse(ctx context.Context, resp *http.Response, path string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var parsed struct {
		Message string          `json:"message"`
		Detail  json.RawMessage `json:"detail"`
	}
	_ = json.Unmarshal(raw, &parsed)

	apiErr := &Error{Status: resp.StatusCode, Message: MsgGeneric}
	if parsed.Message != "" {
		apiErr.Message = parsed.Message
	} else if len(parsed.Detail) > 0 {
		var detail string
		if json.Unmarshal(parsed.Detail, &detail) == nil && detail != "" {
			apiErr.Message = detail
		} else {
			// FastAPI ships 422 details as a list of field violations.
			var items []ValidationItem
			if json.Unmarshal(parsed.Detail, &items) == nil {
				apiErr.Validation = items
			}
		}
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if handler := c.unauthorizedHandler(); handler != nil && !isAuthPath(path) {
			handler(ctx)
		}
	case http.StatusForbidden:
		c.logger.Error("forbidden access", "path", path, "message", apiErr.Message)
	}

	return apiErr
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

func (c *Client) unauthorizedHandler() UnauthorizedHandler {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.onUnauthorized
}

func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/auth/login") || strings.HasPrefix(path, "/auth/register")
}
