package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// HTTPError is returned for every response outside the 2xx range. It carries
// the status code and the raw payload so callers and interceptors can inspect
// what the backend said.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Data       []byte
}

func (e *HTTPError) Error() string {
	// The backend reports errors as {"detail": "..."}.
	var apiErr struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(e.Data, &apiErr); err == nil {
		if apiErr.Detail != "" {
			return fmt.Sprintf("API error (status %d): %s", e.StatusCode, apiErr.Detail)
		}
		if apiErr.Error != "" {
			return fmt.Sprintf("API error (status %d): %s", e.StatusCode, apiErr.Error)
		}
	}
	return fmt.Sprintf("API returned status %d: %s", e.StatusCode, string(e.Data))
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not
// (and does not wrap) an *HTTPError, e.g. a transport failure.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether err is an authentication failure.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsServiceUnavailable reports whether err signals a backend outage.
func IsServiceUnavailable(err error) bool {
	return StatusCode(err) == http.StatusServiceUnavailable
}
