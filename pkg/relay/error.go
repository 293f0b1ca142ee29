package relay

import (
	"fmt"
	"net/http"
)

// HTTPError represents a failed dispatch with a specific status code and message
type HTTPError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id,omitempty"`
	Details    any    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("HTTP %d: %s (request %s)", e.StatusCode, e.Message, e.RequestID)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// NewHTTPError creates a new HTTPError with the given status code and message
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// NewHTTPErrorWithDetails creates a new HTTPError with additional details
func NewHTTPErrorWithDetails(statusCode int, message string, details any) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Details:    details,
	}
}

// Common HTTP error constructors for convenience

// ErrBadRequest creates a 400 Bad Request error
func ErrBadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

// ErrUnauthorized creates a 401 Unauthorized error
func ErrUnauthorized(message string) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message)
}

// ErrForbidden creates a 403 Forbidden error
func ErrForbidden(message string) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message)
}

// ErrNotFound creates a 404 Not Found error
func ErrNotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message)
}

// ErrConflict creates a 409 Conflict error
func ErrConflict(message string) *HTTPError {
	return NewHTTPError(http.StatusConflict, message)
}

// ErrInternalServerError creates a 500 Internal Server Error
func ErrInternalServerError(message string) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message)
}
