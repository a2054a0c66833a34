package token

import "strings"

// Kind discriminates the three token variants. Downstream logic switches
// exhaustively on it; there is no fourth case.
type Kind int

const (
	// Untracked covers whitespace, punctuation, HTML markup and entities.
	// Untracked tokens never participate in repetition scoring.
	Untracked Kind = iota
	// Ignored marks a stop-word or a word outside the document body. It
	// counts toward positional distance but is never scored or colored.
	Ignored
	// Tracked marks a content word carrying a stem key and scratch fields.
	Tracked
)

// Color is a discrete highlight tier. The empty string means "not colored".
type Color string

const (
	ColorGreen  Color = "green"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
)

// Token is one element of the document model. Text always holds the exact
// surface text, whatever the kind, so the original input can be rebuilt.
// Stem, Score and Color are only meaningful for Tracked tokens; Score and
// Color are scratch fields written by a detector and a highlighter.
type Token struct {
	Kind  Kind
	Text  string
	Stem  string
	Score float64
	Color Color
}

// Document is the ordered token sequence plus coarse HTML structure markers.
// A marker holds the index of the token carrying the corresponding tag, or
// -1 when the tag never appeared (plain-text input).
type Document struct {
	Tokens []Token

	BeginHead int
	BeginBody int
	EndBody   int
}

func NewDocument() *Document {
	return &Document{
		BeginHead: -1,
		BeginBody: -1,
		EndBody:   -1,
	}
}

// MarkBeginHead records the index of the opening <head> tag. Only the first
// occurrence counts; later calls are no-ops.
func (d *Document) MarkBeginHead(i int) {
	if d.BeginHead < 0 {
		d.BeginHead = i
	}
}

// MarkBeginBody records the index of the opening <body> tag, first occurrence only.
func (d *Document) MarkBeginBody(i int) {
	if d.BeginBody < 0 {
		d.BeginBody = i
	}
}

// MarkEndBody records the index of the closing </body> tag, first occurrence only.
func (d *Document) MarkEndBody(i int) {
	if d.EndBody < 0 {
		d.EndBody = i
	}
}

// Body returns the tokens strictly between the <body> and </body> markers.
// Missing markers widen the slice to the corresponding end of the document.
func (d *Document) Body() []Token {
	begin := 0
	if d.BeginBody >= 0 {
		begin = d.BeginBody + 1
	}
	end := len(d.Tokens)
	if d.EndBody >= 0 && d.EndBody < end {
		end = d.EndBody
	}
	if begin > end {
		return nil
	}
	return d.Tokens[begin:end]
}

// Text concatenates every token's surface text in order, reproducing the
// tokenized input exactly.
func (d *Document) Text() string {
	var b strings.Builder
	for _, t := range d.Tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}
