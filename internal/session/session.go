package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/types"
)

// View names one of the two screens a session can show.
type View string

const (
	ViewCapture View = "capture"
	ViewPreview View = "preview"
)

// Session is the unit of editing state. Scalar state is guarded by a mutex;
// the in-flight flags are independent atomics so a busy check never blocks on
// an unrelated write. The resume is only ever replaced wholesale, never
// patched field by field.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.RWMutex
	resume   *types.Resume
	buffer   string
	view     View
	template rendering.Selector

	extracting  atomic.Bool
	structuring atomic.Bool
	exporting   atomic.Bool
}

// New creates a session seeded with the demo resume, showing the capture view
// under the default template.
func New() *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		resume:    DefaultResume(),
		view:      ViewCapture,
		template:  rendering.DefaultSelector,
	}
}

// Snapshot is a read-only copy of a session's state at one instant.
type Snapshot struct {
	ID          string             `json:"id"`
	CreatedAt   time.Time          `json:"created_at"`
	Resume      *types.Resume      `json:"resume"`
	Buffer      string             `json:"buffer"`
	View        View               `json:"view"`
	Template    rendering.Selector `json:"template"`
	Extracting  bool               `json:"extracting"`
	Structuring bool               `json:"structuring"`
	Exporting   bool               `json:"exporting"`
}

// Snapshot returns a consistent copy of the session. The resume is deep
// copied, so callers can never mutate session state through it.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		ID:          s.ID,
		CreatedAt:   s.CreatedAt,
		Resume:      s.resume.Clone(),
		Buffer:      s.buffer,
		View:        s.view,
		Template:    s.template,
		Extracting:  s.extracting.Load(),
		Structuring: s.structuring.Load(),
		Exporting:   s.exporting.Load(),
	}
}

// Resume returns a deep copy of the current resume.
func (s *Session) Resume() *types.Resume {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resume.Clone()
}

// SetResume replaces the resume wholesale. The stored copy is normalized and
// detached from the caller's pointer.
func (s *Session) SetResume(r *types.Resume) {
	clone := r.Clone().Normalize()
	s.mu.Lock()
	s.resume = clone
	s.mu.Unlock()
}

// Buffer returns the raw text awaiting structuring.
func (s *Session) Buffer() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buffer
}

// SetBuffer replaces the raw text buffer.
func (s *Session) SetBuffer(text string) {
	s.mu.Lock()
	s.buffer = text
	s.mu.Unlock()
}

// View returns the active view.
func (s *Session) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// SetView switches between the capture and preview screens.
func (s *Session) SetView(v View) {
	s.mu.Lock()
	s.view = v
	s.mu.Unlock()
}

// Template returns the active layout selector.
func (s *Session) Template() rendering.Selector {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.template
}

// SetTemplate switches the active layout selector.
func (s *Session) SetTemplate(sel rendering.Selector) {
	s.mu.Lock()
	s.template = sel
	s.mu.Unlock()
}

// BeginExtracting claims the extraction flag. It returns false, without
// blocking, if an extraction is already in flight.
func (s *Session) BeginExtracting() bool { return s.extracting.CompareAndSwap(false, true) }

// EndExtracting releases the extraction flag.
func (s *Session) EndExtracting() { s.extracting.Store(false) }

// BeginStructuring claims the structuring flag. It returns false, without
// blocking, if a structuring run is already in flight.
func (s *Session) BeginStructuring() bool { return s.structuring.CompareAndSwap(false, true) }

// EndStructuring releases the structuring flag.
func (s *Session) EndStructuring() { s.structuring.Store(false) }

// BeginExporting claims the export flag. It returns false, without blocking,
// if an export is already in flight.
func (s *Session) BeginExporting() bool { return s.exporting.CompareAndSwap(false, true) }

// EndExporting releases the export flag.
func (s *Session) EndExporting() { s.exporting.Store(false) }
