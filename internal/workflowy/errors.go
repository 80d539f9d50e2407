package workflowy

import (
	"errors"
	"fmt"
)

// ErrUnauthorized means WorkFlowy rejected the session credential.
var ErrUnauthorized = errors.New("workflowy rejected the session (expired or invalid session id)")

// ErrUnexpectedResponse means the endpoint answered with something other
// than the initialization payload, such as a 404 or an HTML login page.
var ErrUnexpectedResponse = errors.New("unexpected response from workflowy")

// StatusError is a non-success HTTP status that is neither an auth failure
// nor an unexpected-content response.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	msg := fmt.Sprintf("workflowy API returned %d", e.Code)
	if e.Status != "" {
		msg = fmt.Sprintf("workflowy API returned %s", e.Status)
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}
