package concourse

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired       = errors.New("config is required")
	ErrUnknownOperation     = errors.New("unknown operation")
	ErrMissingWireField     = errors.New("missing required field")
	ErrUnsupportedCacheType = errors.New("unsupported cache type")
)

// Violation is a single rejected parameter.
type Violation struct {
	Field  string
	Reason string
}

// String renders the violation as `"<field>" <reason>`.
func (v Violation) String() string {
	return fmt.Sprintf("%q %s", v.Field, v.Reason)
}

// ValidationError reports every parameter that failed validation, in
// the order the fields were declared.
type ValidationError struct {
	Violations []Violation
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, violation := range e.Violations {
		parts = append(parts, violation.String())
	}

	return "Invalid parameter(s): [" + strings.Join(parts, ", ") + "]."
}

// RepresentationError reports an API payload that cannot be mapped to a
// client object.
type RepresentationError struct {
	Resource string
	// Index is the position in a list payload, or -1 for a single object.
	Index int
	Err   error
}

// Error implements the error interface.
func (e *RepresentationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid %s representation at index %d: %v", e.Resource, e.Index, e.Err)
	}

	return fmt.Sprintf("invalid %s representation: %v", e.Resource, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RepresentationError) Unwrap() error {
	return e.Err
}

// HTTPError is returned by the default transport for responses outside
// the 2xx range.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Status)
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + body
	}

	return msg
}

// IsNotFound checks if the error is a 404 from the API.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is a 401 from the API.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a 403 from the API.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

func hasStatus(err error, code int) bool {
	httpErr := &HTTPError{}
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}

	return false
}
