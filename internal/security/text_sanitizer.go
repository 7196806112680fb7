package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizer turns user supplied free text into plain text with all markup removed.
type TextSanitizer struct {
	policy *bluemonday.Policy
}

func NewTextSanitizer() *TextSanitizer {
	return &TextSanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize strips tags (and the bodies of script and style elements) and trims
// surrounding whitespace. Entities produced by the policy are decoded again so
// the stored value stays plain text.
func (sanitizer *TextSanitizer) Sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(sanitizer.policy.Sanitize(trimmed)))
}
