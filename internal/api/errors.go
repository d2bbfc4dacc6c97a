package api

import (
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the Jira API.
type APIError struct {
	Status   int
	Messages []string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Messages) > 0 {
		return fmt.Sprintf("jira: %d: %s", e.Status, strings.Join(e.Messages, "; "))
	}
	if e.Status > 0 {
		return fmt.Sprintf("jira: %d %s", e.Status, http.StatusText(e.Status))
	}
	return "jira: request failed"
}

// AuthFailure reports whether the error is an authentication or
// authorization rejection.
func (e *APIError) AuthFailure() bool {
	return e != nil && (e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
}
