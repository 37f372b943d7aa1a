// Package transport defines the Caller interface and the Response type that
// sit between the itemfetch client and whatever actually moves bytes.
//
// The client only needs three things from a transport: it can fail, it can
// be cancelled through the request context, and on completion it hands back
// a status plus a body retrievable as structured data. HTTP is the default
// implementation but anything satisfying Caller works, which is what the
// package tests rely on.
package transport

import (
	"context"
	"encoding/json"
	"net/http"
)

// Caller performs a single underlying call for a fully built URL.
// Implementations must honour ctx cancellation; the client enforces
// per-attempt timeouts by deadline on the context it passes in.
type Caller interface {
	// Call returns a Response for any completed exchange, including ones
	// with a non-success status. It returns an error only when no response
	// was obtained at all (network failure, cancellation, timeout).
	Call(ctx context.Context, url string) (*Response, error)
}

// CallerFunc adapts a plain function to the Caller interface.
type CallerFunc func(ctx context.Context, url string) (*Response, error)

// Call invokes the wrapped function.
func (f CallerFunc) Call(ctx context.Context, url string) (*Response, error) {
	return f(ctx, url)
}

// Response is the outcome of one completed call.
type Response struct {
	// Status is the transport status code (HTTP semantics: 2xx is success).
	Status int `json:"status"`
	// Body is the raw payload, decoded lazily by callers.
	Body json.RawMessage `json:"body"`
}

// OK reports whether the status indicates success.
func (r *Response) OK() bool {
	return r.Status >= http.StatusOK && r.Status < http.StatusMultipleChoices
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}
