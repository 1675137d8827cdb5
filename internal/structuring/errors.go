// Package structuring converts raw biographical text into the canonical resume
// schema via the external structuring service.
package structuring

import "fmt"

// StructuringError represents a failed structuring call: network error,
// malformed response, or a response violating the wire schema. Callers must
// leave their prior resume untouched when they receive one.
type StructuringError struct {
	Message string
	Cause   error
}

func (e *StructuringError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("structuring error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("structuring error: %s", e.Message)
}

func (e *StructuringError) Unwrap() error {
	return e.Cause
}
