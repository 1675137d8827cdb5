package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/pipeline"
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/session"
	"github.com/jonathan/resume-studio/internal/types"
)

// maxImportSize bounds uploaded resume files (PDF, JSON, or text).
const maxImportSize = 32 << 20 // 32 MB

// handleCreateSession creates a fresh session seeded with the demo resume.
func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.store.Create()
	s.jsonResponse(w, http.StatusCreated, sess.Snapshot())
}

// handleGetSession returns the session's current state.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Snapshot())
}

// handleDeleteSession discards a session and everything in it.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.Get(r.PathValue("id")); err != nil {
		s.errorResponse(w, err)
		return
	}
	s.store.Delete(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// handleUpdateText replaces the session's raw text buffer.
func (s *Server) handleUpdateText(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	var req types.UpdateTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}

	sess.SetBuffer(req.Text)
	s.jsonResponse(w, http.StatusOK, sess.Snapshot())
}

// handleStructure runs AI structuring on the session's buffer. The resulting
// resume replaces the session's resume wholesale and the session flips to the
// preview view. A second trigger while one is running is rejected.
func (s *Server) handleStructure(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	rawText := sess.Buffer()
	if strings.TrimSpace(rawText) == "" {
		s.errorResponse(w, &ErrEmptyBuffer{})
		return
	}

	if !sess.BeginStructuring() {
		s.errorResponse(w, &session.BusyError{Operation: "structuring"})
		return
	}
	defer sess.EndStructuring()

	resume, err := pipeline.RunText(r.Context(), pipeline.RunOptions{Structure: s.structure}, rawText)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	sess.SetResume(resume)
	sess.SetView(session.ViewPreview)
	s.jsonResponse(w, http.StatusOK, sess.Snapshot())
}

// handleImport ingests an uploaded file. JSON resumes load directly; PDF text
// that clears the auto-submit threshold is structured in the same request;
// anything else lands in the buffer for manual submission.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "file", Message: "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "file", Message: "missing file upload"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "file", Message: "failed to read upload"})
		return
	}

	if !sess.BeginExtracting() {
		s.errorResponse(w, &session.BusyError{Operation: "extraction"})
		return
	}
	defer sess.EndExtracting()

	// The structuring stage claims its own flag so a concurrent manual
	// trigger and an auto-submit cannot run at once.
	structure := func(ctx context.Context, rawText string) (*types.Resume, error) {
		if !sess.BeginStructuring() {
			return nil, &session.BusyError{Operation: "structuring"}
		}
		defer sess.EndStructuring()
		return s.structure(ctx, rawText)
	}

	result, err := pipeline.Run(r.Context(), pipeline.RunOptions{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
		Import:      s.importFile,
		Structure:   structure,
	})

	// Extracted text survives a failed auto-submit: the buffer is filled
	// before the error is reported so the user can retrigger structuring
	// without re-uploading the file.
	if result != nil && result.Text != "" {
		sess.SetBuffer(result.Text)
	}
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	if result.Resume != nil {
		sess.SetResume(result.Resume)
		sess.SetView(session.ViewPreview)
	}
	s.jsonResponse(w, http.StatusOK, sess.Snapshot())
}

// handleDocument renders the session's resume as a print-ready HTML page.
// A template query parameter switches the session's layout; without one the
// session's current layout is used.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	selector := sess.Template()
	if param := r.URL.Query().Get("template"); param != "" {
		selector, err = rendering.ParseSelector(param)
		if err != nil {
			s.errorResponse(w, err)
			return
		}
		sess.SetTemplate(selector)
	}

	html, err := rendering.Render(sess.Resume(), selector)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// handleExport renders the resume and prints it to an A4 PDF. The response is
// the PDF itself, offered as a download named after the candidate. A second
// trigger while one is running is rejected.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	var req types.RenderRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
			return
		}
		if err := req.Validate(); err != nil {
			s.errorResponse(w, &ErrValidation{Field: "template", Message: err.Error()})
			return
		}
	}

	selector := sess.Template()
	if req.Template != "" {
		selector = rendering.Selector(req.Template)
		sess.SetTemplate(selector)
	}

	if !sess.BeginExporting() {
		s.errorResponse(w, &session.BusyError{Operation: "export"})
		return
	}
	defer sess.EndExporting()

	resume := sess.Resume()
	html, err := rendering.Render(resume, selector)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	pdf, err := s.exporter.ExportPDF(r.Context(), html)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(resume.Name)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// handleView switches the session between the capture and preview screens.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	var req types.ViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "view", Message: err.Error()})
		return
	}

	sess.SetView(session.View(req.View))
	s.jsonResponse(w, http.StatusOK, sess.Snapshot())
}
