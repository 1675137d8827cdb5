package export

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-studio/internal/rendering"
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// FileName derives the download file name from the resume's display name.
// A name that fails the display validity rule (blank or a sentinel like
// "n/a") falls back to "Resume"; otherwise whitespace runs collapse to
// underscores. The result always carries the _Resume.pdf suffix, e.g.
// "Amaan Khan" becomes "Amaan_Khan_Resume.pdf".
func FileName(name string) string {
	if !rendering.IsValid(name) {
		return "Resume_Resume.pdf"
	}
	safe := whitespaceRuns.ReplaceAllString(strings.TrimSpace(name), "_")
	return safe + "_Resume.pdf"
}
