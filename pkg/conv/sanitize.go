package conv

import (
	"strings"

	"github.com/inbucket/html2text"
	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// HTMLToPlainText flattens markup coming from rich-text editors into the
// plain text we store as memory content. Input without markup passes
// through unchanged apart from whitespace trimming.
func HTMLToPlainText(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return strings.TrimSpace(s)
	}

	text, err := html2text.FromString(s, html2text.Options{TextOnly: true})
	if err != nil {
		// Fall back to plain tag stripping
		return strings.TrimSpace(strictPolicy.Sanitize(s))
	}
	return strings.TrimSpace(text)
}
