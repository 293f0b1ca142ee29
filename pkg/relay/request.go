package relay

import (
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// Request describes one dispatch through a Dispatcher: a verb, a path
// template, and the values that fill it in. Requests are built by generated
// proxy methods but can be constructed by hand as well.
type Request struct {
	// ID uniquely identifies this dispatch for tracing
	ID uuid.UUID

	// Verb is the dispatch verb (GET, POST, PUT, DELETE, PATCH)
	Verb string

	// Path is the route template with {param} placeholders
	Path Path

	// PathParams holds values for the template's parameters
	PathParams map[string]string

	// Query holds additional query string values
	Query url.Values

	// Headers holds request headers
	Headers http.Header

	// Body is the request payload, nil when the verb carries no body
	Body any
}

// NewRequest creates a request for a verb and route template with a fresh ID
func NewRequest(verb string, path Path) *Request {
	return &Request{
		ID:         uuid.New(),
		Verb:       verb,
		Path:       path,
		PathParams: make(map[string]string),
		Query:      make(url.Values),
		Headers:    make(http.Header),
	}
}

// WithPathParam binds a value to a path template parameter
func (r *Request) WithPathParam(name, value string) *Request {
	r.PathParams[name] = value
	return r
}

// WithQuery appends a query string value
func (r *Request) WithQuery(name, value string) *Request {
	r.Query.Add(name, value)
	return r
}

// WithHeader sets a request header
func (r *Request) WithHeader(key, value string) *Request {
	r.Headers.Set(key, value)
	return r
}

// WithBody sets the request payload
func (r *Request) WithBody(body any) *Request {
	r.Body = body
	return r
}

// URL renders the path template with the bound parameters and appends the
// query string
func (r *Request) URL() (string, error) {
	rendered, err := r.Path.Render(r.PathParams)
	if err != nil {
		return "", err
	}
	if len(r.Query) > 0 {
		rendered += "?" + r.Query.Encode()
	}
	return rendered, nil
}
