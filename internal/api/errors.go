package api

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError represents a non-2xx response that survived any retry. It
// carries enough context for diagnostic display: status, resolved URL and
// the raw response body.
type HTTPError struct {
	Status     int
	StatusText string
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	s := fmt.Sprintf("HTTP %d %s - %s", e.Status, e.StatusText, e.URL)
	if e.Body != "" {
		s += "\n" + e.Body
	}
	return s
}

// IsUnauthorized reports whether err is an HTTP 401 error. Callers treat a
// 401 that survived the one-shot refresh as "session expired".
func IsUnauthorized(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.Status == http.StatusUnauthorized
}
