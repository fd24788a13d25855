package errors

import (
	"fmt"
	"strings"
)

// maxErrorBody bounds how much of a response body is kept for error messages.
const maxErrorBody = 512

// HTTPStatusError is returned when the n8n API answers with a non-2xx status.
type HTTPStatusError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Status)
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + body
	}
	return msg
}

// NewHTTPStatusError builds an HTTPStatusError, truncating body.
func NewHTTPStatusError(method, path string, statusCode int, status string, body []byte) *HTTPStatusError {
	b := string(body)
	if len(b) > maxErrorBody {
		b = b[:maxErrorBody] + "..."
	}
	return &HTTPStatusError{
		Method:     method,
		Path:       path,
		StatusCode: statusCode,
		Status:     status,
		Body:       b,
	}
}

// IsUnauthorized reports whether err is a 401 or 403 from the API.
func IsUnauthorized(err error) bool {
	var he *HTTPStatusError
	if As(err, &he) {
		return he.StatusCode == 401 || he.StatusCode == 403
	}
	return false
}
