package errors

import (
	"errors"
	"fmt"
)

// UpstreamError represents a non-success HTTP status from the upstream API
// that is neither a 404 nor a 429.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// NewUpstreamError creates an UpstreamError for the given status code and
// response body excerpt.
func NewUpstreamError(statusCode int, body string) *UpstreamError {
	return &UpstreamError{StatusCode: statusCode, Body: body}
}

// IsUpstreamError reports whether err is an UpstreamError (even when wrapped).
func IsUpstreamError(err error) bool {
	var upErr *UpstreamError
	return errors.As(err, &upErr)
}
