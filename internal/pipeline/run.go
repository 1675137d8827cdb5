// Package pipeline provides the high-level orchestration from raw input to a
// structured resume: file ingestion first, then AI structuring.
package pipeline

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-studio/internal/ingest"
	"github.com/jonathan/resume-studio/internal/structuring"
	"github.com/jonathan/resume-studio/internal/types"
)

// Step and category names reported through progress events.
const (
	StepImport    = "import"
	StepStructure = "structure"

	CategoryIngestion   = "ingestion"
	CategoryStructuring = "structuring"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// StructureFunc turns raw text into a structured resume. It matches the
// Structurer's Structure method; tests substitute their own.
type StructureFunc func(ctx context.Context, rawText string) (*types.Resume, error)

// ImportFunc dispatches an uploaded file into an import result. It matches
// ingest.ImportFile, which is the default; tests substitute their own.
type ImportFunc func(filename, contentType string, data []byte) (*ingest.ImportResult, error)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	Filename    string
	ContentType string
	Data        []byte
	Import      ImportFunc
	Structure   StructureFunc
	OnProgress  ProgressCallback
}

// Result is the pipeline outcome. Resume is set when the input produced a
// structured resume (JSON import or a completed structuring run). Text holds
// the extracted raw text whenever extraction ran, so callers can keep it
// around for re-submission; when it fell short of the auto-submit threshold,
// Text is all that comes back.
type Result struct {
	Resume *types.Resume
	Text   string
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, category, message string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
		})
	}
}

// NewStructureFunc adapts a structuring service into the pipeline's stage
// signature.
func NewStructureFunc(s *structuring.Structurer) StructureFunc {
	return s.Structure
}

// Run executes the two-stage pipeline on a file: import, then structuring.
// A JSON import already is a resume and skips structuring entirely. Extracted
// PDF text is structured only when it clears the auto-submit threshold;
// shorter extractions come back as raw text for the user to extend and submit
// manually. A failed import aborts the run; a failed structuring run still
// returns the extracted text alongside the error, so callers can keep it for
// a manual retry.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	emitProgress(&opts, StepImport, CategoryIngestion, fmt.Sprintf("Importing %s", opts.Filename))

	importFile := opts.Import
	if importFile == nil {
		importFile = ingest.ImportFile
	}

	imported, err := importFile(opts.Filename, opts.ContentType, opts.Data)
	if err != nil {
		return nil, err
	}

	if imported.Resume != nil {
		emitProgress(&opts, StepImport, CategoryIngestion, "Imported structured resume")
		return &Result{Resume: imported.Resume}, nil
	}

	if !imported.AutoSubmit {
		emitProgress(&opts, StepImport, CategoryIngestion,
			fmt.Sprintf("Extracted %d characters, below auto-submit threshold", len(imported.Text)))
		return &Result{Text: imported.Text}, nil
	}

	emitProgress(&opts, StepStructure, CategoryStructuring,
		fmt.Sprintf("Structuring %d characters of extracted text", len(imported.Text)))

	resume, err := RunText(ctx, opts, imported.Text)
	if err != nil {
		return &Result{Text: imported.Text}, err
	}
	return &Result{Resume: resume, Text: imported.Text}, nil
}

// RunText executes the structuring stage alone on raw text.
func RunText(ctx context.Context, opts RunOptions, rawText string) (*types.Resume, error) {
	if opts.Structure == nil {
		return nil, fmt.Errorf("no structuring stage configured")
	}

	resume, err := opts.Structure(ctx, rawText)
	if err != nil {
		return nil, fmt.Errorf("structuring failed: %w", err)
	}

	emitProgress(&opts, StepStructure, CategoryStructuring,
		fmt.Sprintf("Structured resume for %q", resume.Name))
	return resume, nil
}
