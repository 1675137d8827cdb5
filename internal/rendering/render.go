package rendering

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-studio/internal/types"
)

// Selector identifies one of the fixed layout variants.
type Selector string

// The closed set of layout selectors. Each is backed by its own template file;
// the per-variant section omissions (Modern and Minimalist render a reduced
// set of sections) are deliberate layout behavior, not shared logic.
const (
	SelectorClassic    Selector = "classic"
	SelectorModern     Selector = "modern"
	SelectorMinimalist Selector = "minimalist"
)

// DefaultSelector is used when no template is chosen.
const DefaultSelector = SelectorClassic

var templateFiles = map[Selector]string{
	SelectorClassic:    "templates/classic.html.tmpl",
	SelectorModern:     "templates/modern.html.tmpl",
	SelectorMinimalist: "templates/minimalist.html.tmpl",
}

// ParseSelector validates a selector string. Empty input picks the default.
func ParseSelector(s string) (Selector, error) {
	if s == "" {
		return DefaultSelector, nil
	}
	sel := Selector(s)
	if _, ok := templateFiles[sel]; !ok {
		return "", &RenderError{Message: fmt.Sprintf("unknown template selector %q", s)}
	}
	return sel, nil
}

// Selectors returns the closed selector set in display order.
func Selectors() []Selector {
	return []Selector{SelectorClassic, SelectorModern, SelectorMinimalist}
}

// funcs are the shared presentational rules available to every layout.
var funcs = template.FuncMap{
	"valid":    IsValid,
	"cleanURL": CleanURL,
	"filterValid": func(vals ...string) []string {
		out := make([]string, 0, len(vals))
		for _, v := range vals {
			if IsValid(v) {
				out = append(out, v)
			}
		}
		return out
	},
	"join": strings.Join,
}

// Render produces the print-ready HTML document for a resume under the given
// selector. It is a pure function of its inputs: re-rendering the same resume
// with the same selector yields the same document, and the resume is never
// mutated.
func Render(resume *types.Resume, selector Selector) (string, error) {
	if resume == nil {
		return "", &RenderError{Message: "resume is nil"}
	}

	file, ok := templateFiles[selector]
	if !ok {
		return "", &RenderError{Message: fmt.Sprintf("unknown template selector %q", selector)}
	}

	path := ResolveTemplatePath(file)
	if path == "" {
		return "", &TemplateError{Message: fmt.Sprintf("template file not found: %s", file)}
	}

	tmpl, err := template.New(filepath.Base(path)).Funcs(funcs).ParseFiles(path)
	if err != nil {
		return "", &TemplateError{Message: "failed to parse template", Cause: err}
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, resume); err != nil {
		return "", &TemplateError{Message: "failed to execute template", Cause: err}
	}

	return sb.String(), nil
}

// ResolveTemplatePath attempts to find a template file by trying multiple
// common path resolutions, so commands and tests work regardless of the
// working directory they run from.
func ResolveTemplatePath(relativePath string) string {
	candidates := []string{
		relativePath,
		filepath.Join("..", relativePath),
		filepath.Join("..", "..", relativePath),
	}

	for _, candidate := range candidates {
		if absPath, err := filepath.Abs(candidate); err == nil {
			if _, err := os.Stat(absPath); err == nil {
				return absPath
			}
		}
	}

	return ""
}
