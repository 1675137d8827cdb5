// Package server provides the HTTP REST API for the resume studio.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/ingest"
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/session"
	"github.com/jonathan/resume-studio/internal/structuring"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrEmptyBuffer indicates structuring was requested with no text to work on
type ErrEmptyBuffer struct{}

func (e *ErrEmptyBuffer) Error() string {
	return "no text to structure: the session buffer is empty"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation  *ErrValidation
		emptyBuffer *ErrEmptyBuffer
		notFound    *session.NotFoundError
		busy        *session.BusyError
		extraction  *ingest.ExtractionError
		badFormat   *ingest.InvalidFormatError
		badSchema   *schemas.ValidationError
		badRender   *rendering.RenderError
		badExport   *export.ExportError
	)

	switch {
	case errors.As(err, &validation), errors.As(err, &emptyBuffer),
		errors.As(err, &extraction), errors.As(err, &badFormat),
		errors.As(err, &badRender):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &busy):
		return http.StatusConflict
	case errors.As(err, &badSchema):
		return http.StatusBadGateway
	case errors.As(err, &badExport):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// userMessage maps an error to the message shown to the user. Internal detail
// (endpoints, dial errors, template internals) stays in the logs.
func userMessage(err error) string {
	var (
		validation  *ErrValidation
		emptyBuffer *ErrEmptyBuffer
		notFound    *session.NotFoundError
		busy        *session.BusyError
		extraction  *ingest.ExtractionError
		badFormat   *ingest.InvalidFormatError
		badSchema   *schemas.ValidationError
		structFail  *structuring.StructuringError
	)

	switch {
	case errors.As(err, &validation), errors.As(err, &emptyBuffer),
		errors.As(err, &notFound), errors.As(err, &busy):
		return err.Error()
	case errors.As(err, &extraction):
		return "Failed to extract text from the PDF. Please try a different file."
	case errors.As(err, &badFormat):
		return "Invalid resume JSON file. Please check the format."
	case errors.As(err, &badSchema):
		return "The AI returned data in an unexpected format. Please try again."
	case errors.As(err, &structFail):
		return "Failed to process resume data. Please try again."
	default:
		return "An unexpected error occurred. Please try again."
	}
}
