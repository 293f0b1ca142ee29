package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// RequestIDHeader carries the request ID on dispatched HTTP requests
const RequestIDHeader = "X-Relay-Request-Id"

// Dispatcher executes relay requests. Generated proxies hold a Dispatcher and
// route every method call through it; out receives the decoded response and
// may be nil when the caller expects no payload.
type Dispatcher interface {
	Dispatch(ctx context.Context, req *Request, out any) error
}

// DispatcherFunc adapts a function to the Dispatcher interface
type DispatcherFunc func(ctx context.Context, req *Request, out any) error

// Dispatch implements Dispatcher
func (f DispatcherFunc) Dispatch(ctx context.Context, req *Request, out any) error {
	return f(ctx, req, out)
}

// HTTPDispatcher dispatches requests over HTTP with JSON bodies
type HTTPDispatcher struct {
	baseURL string
	client  *http.Client
	headers http.Header
}

// HTTPDispatcherOption configures an HTTPDispatcher
type HTTPDispatcherOption func(*HTTPDispatcher)

// WithClient sets the underlying HTTP client
func WithClient(client *http.Client) HTTPDispatcherOption {
	return func(d *HTTPDispatcher) {
		d.client = client
	}
}

// WithDefaultHeader sets a header applied to every dispatched request
func WithDefaultHeader(key, value string) HTTPDispatcherOption {
	return func(d *HTTPDispatcher) {
		d.headers.Set(key, value)
	}
}

// NewHTTPDispatcher creates a dispatcher that issues requests against baseURL
func NewHTTPDispatcher(baseURL string, opts ...HTTPDispatcherOption) *HTTPDispatcher {
	d := &HTTPDispatcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  http.DefaultClient,
		headers: make(http.Header),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch implements Dispatcher. Non-2xx responses are returned as *HTTPError
// with the response body as its message.
func (d *HTTPDispatcher) Dispatch(ctx context.Context, req *Request, out any) error {
	target, err := req.URL()
	if err != nil {
		return err
	}

	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Verb, d.baseURL+target, body)
	if err != nil {
		return err
	}

	for key, values := range d.headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	for key, values := range req.Headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	httpReq.Header.Set(RequestIDHeader, req.ID.String())
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if out != nil {
		httpReq.Header.Set("Accept", "application/json")
	}

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(message)),
			RequestID:  req.ID.String(),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}
