package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

// HTTP is the default Caller backed by net/http.
type HTTP struct {
	client  *http.Client
	headers map[string]string
}

// HTTPOption configures an HTTP caller.
type HTTPOption func(*HTTP)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTP) { h.client = c }
}

// WithBearerToken attaches a static Authorization header to every call.
func WithBearerToken(token string) HTTPOption {
	return func(h *HTTP) { h.headers["Authorization"] = "Bearer " + token }
}

// WithTokenSource routes calls through an OAuth2 client that injects and
// refreshes tokens from ts. Overrides any client set by WithHTTPClient.
func WithTokenSource(ts oauth2.TokenSource) HTTPOption {
	return func(h *HTTP) { h.client = oauth2.NewClient(context.Background(), ts) }
}

// WithHeader sets an arbitrary request header on every call.
func WithHeader(key, value string) HTTPOption {
	return func(h *HTTP) { h.headers[key] = value }
}

// NewHTTP creates an HTTP caller.
func NewHTTP(opts ...HTTPOption) *HTTP {
	h := &HTTP{
		client:  &http.Client{},
		headers: make(map[string]string),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Call performs a GET against url. A non-2xx status is not an error here:
// the response is returned as-is and classification is left to the caller.
func (h *HTTP) Call(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range h.headers {
		req.Header.Set(k, v)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{Status: resp.StatusCode, Body: body}, nil
}
