package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"echomark/internal/token"
)

var tierStyles = map[token.Color]lipgloss.Style{
	token.ColorGreen:  lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("2")),
	token.ColorOrange: lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("3")),
	token.ColorRed:    lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("1")),
	token.ColorBlue:   lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("4")),
}

// Terminal renders the document for a terminal, underlining and coloring
// highlighted words. Unhighlighted text passes through untouched.
func Terminal(doc *token.Document) string {
	var b strings.Builder
	for _, tok := range doc.Tokens {
		if tok.Kind == token.Tracked && tok.Color != "" {
			if style, ok := tierStyles[tok.Color]; ok {
				b.WriteString(style.Render(tok.Text))
				continue
			}
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}
