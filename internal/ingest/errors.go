// Package ingest provides input adapters that turn uploaded files into raw
// text or a directly-parsed resume.
package ingest

import "fmt"

// ExtractionError represents a malformed or unreadable PDF. The caller
// surfaces it to the user and leaves session state untouched.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// InvalidFormatError represents a JSON import that failed to parse or did not
// match the expected resume shape.
type InvalidFormatError struct {
	Message string
	Cause   error
}

func (e *InvalidFormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid format: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid format: %s", e.Message)
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Cause
}
