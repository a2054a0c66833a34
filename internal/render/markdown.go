package render

import (
	"strings"

	"echomark/internal/token"
)

// Markdown renders the document as markdown, bolding highlighted words.
// Tier information is flattened away: markdown has no colors.
func Markdown(doc *token.Document) string {
	var b strings.Builder
	for _, tok := range doc.Tokens {
		if tok.Kind == token.Tracked && tok.Color != "" {
			b.WriteString("**")
			b.WriteString(tok.Text)
			b.WriteString("**")
			continue
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}
