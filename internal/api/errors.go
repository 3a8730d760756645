package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Common errors
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidRequest indicates the request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrServerError indicates a server-side error
	ErrServerError = errors.New("server error")

	// ErrTimeout indicates the request timed out
	ErrTimeout = errors.New("request timed out")

	// ErrNetwork indicates the request never got a response
	ErrNetwork = errors.New("network error")
)

// APIError is a non-2xx answer from the controller. Detail holds the
// start of the response body when the controller sent one.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Detail     string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Endpoint, e.Status)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is lets errors.Is match an APIError against the status sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrServerError:
		return e.StatusCode >= http.StatusInternalServerError
	case ErrInvalidRequest:
		return e.StatusCode == http.StatusBadRequest
	}
	return false
}

// NewAPIError builds the error for a failed response
func NewAPIError(statusCode int, status, endpoint string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Status:     status,
		Endpoint:   endpoint,
	}
}

// maxDetail caps how much of an error body ends up in APIError.Detail.
const maxDetail = 200

// readDetail returns the first bytes of an error body folded onto one line.
func readDetail(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxDetail))
	if err != nil {
		return ""
	}
	detail := strings.ToValidUTF8(string(data), "")
	return strings.Join(strings.Fields(detail), " ")
}

// StatusCode extracts the HTTP status carried by err, or 0 when err did not
// come from an HTTP response.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// ValidationError represents a validation error for request parameters
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ErrMissingField reports a required parameter left empty
func ErrMissingField(field string) error {
	return NewValidationError(field, "field is required")
}
