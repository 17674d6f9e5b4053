package api

import (
	"fmt"
	"net/http"
)

// NetworkError means the request never completed. The operation is aborted
// and whatever state preceded it is unchanged; retry is always explicit.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network failure: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is an HTTP-level rejection from the service.
type APIError struct {
	Op      string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: http %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: http %d", e.Op, e.Status)
}

// Denied reports whether the server rejected the call for lack of
// permission. The client's own gate should have hidden the action, so this
// surfaces as a generic failure notice.
func (e *APIError) Denied() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}
