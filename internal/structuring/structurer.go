package structuring

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/types"
)

const promptPreamble = `You are an expert resume writer. Extract and structure the following resume information into a professional format.

Rules:
- Extract fields directly from the text; infer nothing that is not supported by it.
- If a field is not present in the text, return it as an empty string or empty array.
- Rewrite every experience bullet to be outcome/result-oriented rather than task-descriptive.
- Preserve the order in which experiences and projects appear in the text.

Input text:
`

// Structurer sends raw text to the structuring service and returns a complete,
// normalized resume. It holds no session state; a failed call yields only an
// error so the caller's prior resume is never disturbed.
type Structurer struct {
	client llm.Client
	tier   llm.ModelTier
}

// New creates a Structurer on top of an LLM client.
func New(client llm.Client) *Structurer {
	return &Structurer{client: client, tier: llm.TierStandard}
}

// Structure converts non-empty raw text into a resume. The response is
// validated against the wire schema and defensively normalized before being
// returned, so the renderer never encounters missing fields.
func (s *Structurer) Structure(ctx context.Context, rawText string) (*types.Resume, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, &StructuringError{Message: "input text is empty"}
	}

	prompt := promptPreamble + rawText

	raw, err := s.client.GenerateStructured(ctx, prompt, responseSchema(), s.tier)
	if err != nil {
		return nil, &StructuringError{Message: "structuring service call failed", Cause: err}
	}

	return Decode([]byte(raw))
}

// Decode validates a structuring-service response against the wire schema and
// decodes it into a normalized resume. The payload is untrusted: shape is
// checked before any of it becomes session state.
func Decode(raw []byte) (*types.Resume, error) {
	if err := schemas.ValidateResume(raw); err != nil {
		return nil, &StructuringError{Message: "response violates resume schema", Cause: err}
	}

	var resume types.Resume
	if err := json.Unmarshal(raw, &resume); err != nil {
		return nil, &StructuringError{Message: "response is not valid JSON", Cause: err}
	}

	return resume.Normalize(), nil
}
