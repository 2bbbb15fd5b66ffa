// Package backend is the portal's REST client for the CivicFlow backend.
// It owns bearer-token injection, the {"message": …} error envelope, and
// the global 401 interceptor hook; callers only see typed results.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/civicflow/civic-portal/internal/api/metrics"
	"github.com/civicflow/civic-portal/internal/core/domain"
)

const defaultTimeout = 30 * time.Second

// APIError is a backend rejection with a user-displayable message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Client talks to the CivicFlow backend over HTTP.
type Client struct {
	baseURL        string
	http           *http.Client
	log            zerolog.Logger
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger attaches a structured logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// OnUnauthorized registers the global 401 interceptor. It fires when any
// non-auth call is rejected with 401 — the signal that the session's token
// has expired mid-flight. Auth endpoints are exempt: a 401 there is the
// expected "bad credentials" answer, not a session loss.
func OnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorEnvelope matches the backend's failure payloads. Spring renders
// {"message": …}; some middlewares render {"error": …} instead.
type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// call performs one backend round trip. op is a stable label for metrics
// and logs; notify401 controls whether a 401 fires the global interceptor.
func (c *Client) call(ctx context.Context, op, method, path string, query url.Values, token string, in, out any, notify401 bool) error {
	var body *bytes.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		c.log.Warn().Err(err).Str("op", op).Msg("backend unreachable")
		return domain.ErrBackendUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := c.decodeError(resp)
		if resp.StatusCode == http.StatusUnauthorized && notify401 && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// decodeError extracts a user-displayable message from a failure response,
// falling back through the envelope fields to the HTTP status text.
func (c *Client) decodeError(resp *http.Response) *APIError {
	var env errorEnvelope
	_ = json.NewDecoder(resp.Body).Decode(&env)

	msg := env.Message
	if msg == "" {
		msg = env.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	if msg == "" {
		msg = "an unexpected error occurred"
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
