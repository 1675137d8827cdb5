package rendering

import "strings"

// sentinels are values the structuring service emits for fields it could not
// find; they are treated as absent, never rendered.
var sentinels = map[string]struct{}{
	"n/a":           {},
	"not specified": {},
	"none":          {},
}

// IsValid reports whether a scalar field is meaningful enough to display:
// non-empty after trimming, and not a case-insensitive sentinel value.
func IsValid(val string) bool {
	trimmed := strings.TrimSpace(val)
	if trimmed == "" {
		return false
	}
	_, sentinel := sentinels[strings.ToLower(trimmed)]
	return !sentinel
}

// CleanURL strips scheme prefixes and trailing slashes for display. The
// stored value is unchanged. Idempotent: cleaning a cleaned URL is a no-op.
func CleanURL(url string) string {
	for {
		switch {
		case strings.HasPrefix(url, "https://"):
			url = strings.TrimPrefix(url, "https://")
		case strings.HasPrefix(url, "http://"):
			url = strings.TrimPrefix(url, "http://")
		default:
			return strings.TrimRight(url, "/")
		}
	}
}
