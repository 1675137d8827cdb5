// Package session holds the per-user editing state: the current resume, the
// raw text buffer, the active view, and the in-flight operation flags.
package session

import "fmt"

// NotFoundError indicates an unknown session ID
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// BusyError indicates an operation was rejected because the same kind of
// operation is already in flight for the session
type BusyError struct {
	Operation string
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("session busy: %s already in progress", e.Operation)
}
