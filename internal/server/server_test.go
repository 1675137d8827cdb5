package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/ingest"
	"github.com/jonathan/resume-studio/internal/session"
	"github.com/jonathan/resume-studio/internal/types"
)

type fakeExporter struct {
	pdf   []byte
	err   error
	calls int
}

func (f *fakeExporter) ExportPDF(_ context.Context, _ string) ([]byte, error) {
	f.calls++
	return f.pdf, f.err
}

type testServer struct {
	*Server
	store    *session.Store
	exporter *fakeExporter
	prompts  *[]string
}

func newTestServer(t *testing.T, resume *types.Resume, structureErr error) *testServer {
	t.Helper()

	var prompts []string
	structure := func(ctx context.Context, rawText string) (*types.Resume, error) {
		prompts = append(prompts, rawText)
		if structureErr != nil {
			return nil, structureErr
		}
		return resume, nil
	}

	store := session.NewStore()
	exporter := &fakeExporter{pdf: []byte("%PDF-1.7 fake")}
	s := NewWithDependencies(Config{Port: 0}, store, structure, exporter)

	return &testServer{Server: s, store: store, exporter: exporter, prompts: &prompts}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) createSession(t *testing.T) session.Snapshot {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var snap session.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	return snap
}

func multipartUpload(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	rec := ts.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestCreateSession(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	snap := ts.createSession(t)

	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, session.ViewCapture, snap.View)
	require.NotNil(t, snap.Resume)
	assert.Equal(t, "Amaan Khan", snap.Resume.Name, "new sessions start from the demo resume")
}

func TestGetSession_NotFound(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	rec := ts.do(t, http.MethodGet, "/sessions/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteSession(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	snap := ts.createSession(t)

	rec := ts.do(t, http.MethodDelete, "/sessions/"+snap.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, "/sessions/"+snap.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateText(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	snap := ts.createSession(t)

	rec := ts.do(t, http.MethodPut, "/sessions/"+snap.ID+"/text", types.UpdateTextRequest{Text: "raw resume text"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated session.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "raw resume text", updated.Buffer)
}

func TestStructure_Success(t *testing.T) {
	structured := &types.Resume{Name: "Jane Doe", Summary: "Engineer."}
	ts := newTestServer(t, structured, nil)
	snap := ts.createSession(t)

	rec := ts.do(t, http.MethodPut, "/sessions/"+snap.ID+"/text", types.UpdateTextRequest{Text: "jane's raw resume"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/sessions/"+snap.ID+"/structure", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated session.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Jane Doe", updated.Resume.Name)
	assert.Equal(t, session.ViewPreview, updated.View, "a successful structuring run lands on the preview")
	assert.False(t, updated.Structuring, "the flag is released once the run completes")

	require.Len(t, *ts.prompts, 1)
	assert.Equal(t, "jane's raw resume", (*ts.prompts)[0])
}

func TestStructure_EmptyBuffer(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	snap := ts.createSession(t)

	rec := ts.do(t, http.MethodPost, "/sessions/"+snap.ID+"/structure", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, *ts.prompts)
}

func TestStructure_RejectsDuplicateTrigger(t *testing.T) {
	ts := newTestServer(t, &types.Resume{Name: "Jane Doe"}, nil)
	snap := ts.createSession(t)

	sess, err := ts.store.Get(snap.ID)
	require.NoError(t, err)
	sess.SetBuffer("raw text")
	require.True(t, sess.BeginStructuring())
	defer sess.EndStructuring()

	rec := ts.do(t, http.MethodPost, "/sessions/"+snap.ID+"/structure", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, *ts.prompts)
}

func TestStructure_FailureKeepsResume(t *testing.T) {
	ts := newTestServer(t, nil, errors.New("model unavailable"))
	snap := ts.createSession(t)

	rec := ts.do(t, http.MethodPut, "/sessions/"+snap.ID+"/text", types.UpdateTextRequest{Text: "raw text"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/sessions/"+snap.ID+"/structure", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "An unexpected error occurred")
	assert.NotContains(t, rec.Body.String(), "model unavailable", "internal error detail stays in the logs")

	// The failure released the flag and left the session untouched.
	rec = ts.do(t, http.MethodGet, "/sessions/"+snap.ID, nil)
	var after session.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))
	assert.False(t, after.Structuring)
	assert.Equal(t, "Amaan Khan", after.Resume.Name)
	assert.Equal(t, session.ViewCapture, after.View)
}

func TestImport_JSON(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	snap := ts.createSession(t)

	body, contentType := multipartUpload(t, "resume.json", "application/json",
		[]byte(`{"name": "Jane Doe", "summary": "Engineer."}`))

	req := httptest.NewRequest(http.MethodPost, "/sessions/"+snap.ID+"/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var updated session.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Jane Doe", updated.Resume.Name)
	assert.Equal(t, session.ViewPreview, updated.View)
	assert.Empty(t, *ts.prompts, "a JSON import already is a resume; structuring must not run")
}

func TestImport_PlainTextFillsBuffer(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	snap := ts.createSession(t)

	body, contentType := multipartUpload(t, "notes.txt", "text/plain", []byte("short notes"))

	req := httptest.NewRequest(http.MethodPost, "/sessions/"+snap.ID+"/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var updated session.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "short notes", updated.Buffer)
	assert.Equal(t, session.ViewCapture, updated.View)
	assert.Empty(t, *ts.prompts)
}

func TestImport_UnreadablePDF(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	snap := ts.createSession(t)

	body, contentType := multipartUpload(t, "resume.pdf", "application/pdf", []byte("not a pdf"))

	req := httptest.NewRequest(http.MethodPost, "/sessions/"+snap.ID+"/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to extract text from the PDF")

	// The extraction flag is released after the failure.
	sess, err := ts.store.Get(snap.ID)
	require.NoError(t, err)
	assert.False(t, sess.Snapshot().Extracting)
}

func TestImport_AutoSubmitStructures(t *testing.T) {
	extracted := strings.Repeat("ten years of engineering experience ", 3)
	structured := &types.Resume{Name: "Jane Doe", Summary: "Engineer."}
	ts := newTestServer(t, structured, nil)
	ts.Server.importFile = func(_, _ string, _ []byte) (*ingest.ImportResult, error) {
		return &ingest.ImportResult{Text: extracted, AutoSubmit: true}, nil
	}
	snap := ts.createSession(t)

	body, contentType := multipartUpload(t, "resume.pdf", "application/pdf", []byte("%PDF-1.7"))
	req := httptest.NewRequest(http.MethodPost, "/sessions/"+snap.ID+"/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var updated session.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Jane Doe", updated.Resume.Name)
	assert.Equal(t, session.ViewPreview, updated.View)
	assert.Equal(t, extracted, updated.Buffer)

	require.Len(t, *ts.prompts, 1)
	assert.Equal(t, extracted, (*ts.prompts)[0])
}

// A failed auto-submit must not cost the user the extracted text: the buffer
// holds it afterwards, so structuring can be retriggered without another
// upload.
func TestImport_AutoSubmitFailureKeepsExtractedText(t *testing.T) {
	extracted := strings.Repeat("ten years of engineering experience ", 3)
	ts := newTestServer(t, nil, errors.New("model unavailable"))
	ts.Server.importFile = func(_, _ string, _ []byte) (*ingest.ImportResult, error) {
		return &ingest.ImportResult{Text: extracted, AutoSubmit: true}, nil
	}
	snap := ts.createSession(t)

	body, contentType := multipartUpload(t, "resume.pdf", "application/pdf", []byte("%PDF-1.7"))
	req := httptest.NewRequest(http.MethodPost, "/sessions/"+snap.ID+"/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "model unavailable")

	rec2 := ts.do(t, http.MethodGet, "/sessions/"+snap.ID, nil)
	var after session.Snapshot
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &after))
	assert.Equal(t, extracted, after.Buffer, "extracted text survives the failed auto-submit")
	assert.Equal(t, "Amaan Khan", after.Resume.Name, "the resume is untouched")
	assert.Equal(t, session.ViewCapture, after.View)
	assert.False(t, after.Extracting)
	assert.False(t, after.Structuring)
}

func TestImport_MissingFile(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	snap := ts.createSession(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("other", "value"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/sessions/"+snap.ID+"/import", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDocument_RendersHTML(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	snap := ts.createSession(t)

	rec := ts.do(t, http.MethodGet, "/sessions/"+snap.ID+"/document", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Amaan Khan")
	assert.Contains(t, rec.Body.String(), "<!DOCTYPE html>")
}

func TestDocument_TemplateSwitchPersists(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	snap := ts.createSession(t)

	rec := ts.do(t, http.MethodGet, "/sessions/"+snap.ID+"/document?template=modern", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Expertise")

	rec = ts.do(t, http.MethodGet, "/sessions/"+snap.ID, nil)
	var after session.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))
	assert.Equal(t, "modern", string(after.Template))
}

func TestDocument_UnknownTemplate(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	snap := ts.createSession(t)

	rec := ts.do(t, http.MethodGet, "/sessions/"+snap.ID+"/document?template=brutalist", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExport_Success(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	snap := ts.createSession(t)

	rec := ts.do(t, http.MethodPost, "/sessions/"+snap.ID+"/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Amaan_Khan_Resume.pdf")
	assert.Equal(t, "%PDF-1.7 fake", rec.Body.String())
	assert.Equal(t, 1, ts.exporter.calls)
}

func TestExport_WithTemplate(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	snap := ts.createSession(t)

	rec := ts.do(t, http.MethodPost, "/sessions/"+snap.ID+"/export", types.RenderRequest{Template: "minimalist"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/sessions/"+snap.ID, nil)
	var after session.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))
	assert.Equal(t, "minimalist", string(after.Template))
}

func TestExport_InvalidTemplate(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	snap := ts.createSession(t)

	rec := ts.do(t, http.MethodPost, "/sessions/"+snap.ID+"/export", types.RenderRequest{Template: "brutalist"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, ts.exporter.calls)
}

func TestExport_RejectsDuplicateTrigger(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	snap := ts.createSession(t)

	sess, err := ts.store.Get(snap.ID)
	require.NoError(t, err)
	require.True(t, sess.BeginExporting())
	defer sess.EndExporting()

	rec := ts.do(t, http.MethodPost, "/sessions/"+snap.ID+"/export", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Zero(t, ts.exporter.calls)
}

func TestExport_ExporterFailure(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	ts.exporter.pdf = nil
	ts.exporter.err = errors.New("chrome not found")
	snap := ts.createSession(t)

	rec := ts.do(t, http.MethodPost, "/sessions/"+snap.ID+"/export", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	sess, err := ts.store.Get(snap.ID)
	require.NoError(t, err)
	assert.False(t, sess.Snapshot().Exporting, "the flag is released after a failed export")
}

func TestView_Switch(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	snap := ts.createSession(t)

	rec := ts.do(t, http.MethodPost, "/sessions/"+snap.ID+"/view", types.ViewRequest{View: "preview"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated session.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, session.ViewPreview, updated.View)
}

func TestView_Invalid(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	snap := ts.createSession(t)

	rec := ts.do(t, http.MethodPost, "/sessions/"+snap.ID+"/view", types.ViewRequest{View: "settings"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSPreflightHandled(t *testing.T) {
	ts := newTestServer(t, nil, nil)

	req := httptest.NewRequest(http.MethodOptions, "/sessions", nil)
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), "PUT"))
}
