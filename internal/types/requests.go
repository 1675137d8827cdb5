package types

import "github.com/go-playground/validator/v10"

// UpdateTextRequest replaces a session's raw text buffer (the paste/type path).
type UpdateTextRequest struct {
	Text string `json:"text"`
}

// ViewRequest represents an explicit view navigation.
type ViewRequest struct {
	View string `json:"view" validate:"required,oneof=capture preview"`
}

// RenderRequest selects a layout for rendering or export.
type RenderRequest struct {
	Template string `json:"template,omitempty" validate:"omitempty,oneof=classic modern minimalist"`
}

// Validate validates the ViewRequest using the validator.
func (r *ViewRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the RenderRequest using the validator.
func (r *RenderRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
