package ingest

import (
	"encoding/json"
	"mime"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-studio/internal/types"
)

// MIME types that select an import path. Anything else is treated as plain
// raw text for the buffer.
const (
	mimePDF  = "application/pdf"
	mimeJSON = "application/json"
)

// ImportResult is the outcome of a file import. Exactly one of Resume or Text
// is meaningful: a JSON import yields a complete replacement Resume; a PDF or
// plain-text import yields buffer text.
type ImportResult struct {
	// Resume is non-nil for a successful JSON import.
	Resume *types.Resume
	// Text holds extracted or raw text destined for the capture buffer.
	Text string
	// AutoSubmit reports whether extracted PDF text cleared the threshold
	// and should be forwarded to structuring.
	AutoSubmit bool
}

// ImportFile dispatches an uploaded file on its declared MIME type, falling
// back to the filename extension when the type is absent (the CLI path).
//
//   - application/pdf  → text extraction, auto-submit over the threshold
//   - application/json → direct parse into a Resume, whole-instance replace
//   - anything else    → raw text for the buffer only, never auto-submitted
func ImportFile(filename, contentType string, data []byte) (*ImportResult, error) {
	switch resolveType(filename, contentType) {
	case mimePDF:
		text, err := ExtractText(data)
		if err != nil {
			return nil, err
		}
		return &ImportResult{
			Text:       text,
			AutoSubmit: len(text) > AutoSubmitThreshold,
		}, nil

	case mimeJSON:
		var resume types.Resume
		if err := json.Unmarshal(data, &resume); err != nil {
			return nil, &InvalidFormatError{Message: "file is not a valid resume JSON document", Cause: err}
		}
		return &ImportResult{Resume: resume.Normalize()}, nil

	default:
		return &ImportResult{Text: string(data)}, nil
	}
}

// resolveType picks the effective MIME type for dispatch. Declared types win;
// parameters (charset) are stripped; extensions cover untyped CLI input.
func resolveType(filename, contentType string) string {
	if contentType != "" {
		if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
			contentType = mediaType
		}
		switch contentType {
		case mimePDF, mimeJSON:
			return contentType
		}
		if contentType != "application/octet-stream" {
			return contentType
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return mimePDF
	case ".json":
		return mimeJSON
	}
	return "text/plain"
}
