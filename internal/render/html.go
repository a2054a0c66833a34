// Package render serializes a detected document to terminal, markdown or
// HTML output. Renderers only read token kinds, surface text, stems and
// tiers; the one mutation allowed is splicing the hover script into a
// standalone HTML document.
package render

import (
	_ "embed"
	"fmt"
	"strings"

	"echomark/internal/token"
)

//go:embed scripts.js
var hoverScript string

// HTMLOptions controls HTML serialization.
type HTMLOptions struct {
	// Standalone emits a complete HTML page with the hover script instead
	// of a body fragment.
	Standalone bool
	// PlainInput marks documents tokenized from plain text, whose newlines
	// need <br/> to survive in HTML.
	PlainInput bool
}

// HTML renders the document as HTML. Every tracked word becomes a span
// classed by its stem so that hovering one occurrence lights up the others;
// highlighted words additionally carry their tier color inline.
func HTML(doc *token.Document, opts HTMLOptions) string {
	var b strings.Builder
	var tokens []token.Token

	if opts.Standalone {
		if doc.BeginHead >= 0 {
			spliceScript(doc, doc.BeginHead+1)
		} else {
			b.WriteString("<html><head>\n")
			b.WriteString(hoverScript)
			b.WriteString("</head>\n")
			if doc.BeginBody < 0 || doc.EndBody < 0 {
				b.WriteString("<body>\n")
			}
		}
		tokens = doc.Tokens
	} else {
		tokens = doc.Body()
	}

	for _, tok := range tokens {
		if tok.Kind != token.Tracked {
			b.WriteString(tok.Text)
			continue
		}
		style := ""
		if tok.Color != "" {
			style = fmt.Sprintf(` style="text-decoration: underline; color: %s;"`, tok.Color)
		}
		fmt.Fprintf(&b, `<span class="%s" onmouseover="on('%s')" onmouseout="off('%s')"%s>%s</span>`,
			tok.Stem, tok.Stem, tok.Stem, style, tok.Text)
	}

	out := b.String()
	if opts.PlainInput {
		out = strings.ReplaceAll(out, "\n", "<br/>\n")
	}
	if opts.Standalone && doc.BeginBody < 0 && doc.EndBody < 0 {
		out += "</body></html>"
	}
	return out
}

// spliceScript inserts the hover script as an untracked token right after
// the opening <head> tag.
func spliceScript(doc *token.Document, at int) {
	tok := token.Token{Kind: token.Untracked, Text: hoverScript}
	doc.Tokens = append(doc.Tokens, token.Token{})
	copy(doc.Tokens[at+1:], doc.Tokens[at:])
	doc.Tokens[at] = tok
	// The markers after the splice point shift by one.
	if doc.BeginBody >= at {
		doc.BeginBody++
	}
	if doc.EndBody >= at {
		doc.EndBody++
	}
}
