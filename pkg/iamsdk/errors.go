package iamsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrMalformedResponse is wrapped by errors returned when a 2xx payload does not
// have the expected shape.
var ErrMalformedResponse = errors.New("iamsdk: malformed response")

// ============================================================================
// APIError - non-2xx responses
// ============================================================================

// APIError is a rejected call. It carries the backend's status and payload
// unmodified; interpreting it is up to the caller.
type APIError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int

	// Method and Path identify the request that was rejected
	Method string
	Path   string

	// Message is the backend's "error" or "message" field, if any
	Message string

	// Body is the raw response payload
	Body []byte
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, msg)
}

// Unauthorized reports whether the backend rejected the session credentials.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsUnauthorized reports whether err is, or wraps, a 401 APIError.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Unauthorized()
}

// StatusCode returns the HTTP status of an APIError in err's chain, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// errorBody covers the payload shapes the backend uses for failures.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// parseErrorResponse builds an APIError from a non-2xx response.
// Returns nil for 2xx responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Body:       body,
	}
	if resp.Request != nil {
		apiErr.Method = resp.Request.Method
		apiErr.Path = resp.Request.URL.Path
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		switch {
		case eb.Error != "":
			apiErr.Message = eb.Error
		case eb.Message != "":
			apiErr.Message = eb.Message
		}
	} else if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 256 {
		apiErr.Message = text
	}

	return apiErr
}
