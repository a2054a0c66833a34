// Package tokenizer converts raw text into the ordered token sequence the
// detectors operate on, tracking just enough HTML structure to know which
// words belong to the document body.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"echomark/internal/stem"
	"echomark/internal/token"
)

// ErrMalformedMarkup is returned when an HTML tag or entity is opened but
// the input ends before its terminator. Tokenization cannot continue past
// that point without corrupting the structural markers.
var ErrMalformedMarkup = errors.New("malformed markup")

// Default ignored words per language. These are high-frequency function
// words that would otherwise drown out every report.
var defaultIgnored = map[string]string{
	"french":  "la le les pas ne nos des ils elles il elle se on nous vous leur leurs de est et un une t s à d l je tu",
	"english": "it s i of the a you we she he they them its their",
}

// DefaultIgnored returns the built-in ignored-word list for a canonical
// language name. Languages without a curated list get an empty one.
func DefaultIgnored(language string) []string {
	return SplitIgnored(defaultIgnored[language])
}

// SplitIgnored parses a comma or whitespace separated word list. Any
// non-alphabetic character separates words.
func SplitIgnored(list string) []string {
	return strings.FieldsFunc(list, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

// Tokenizer holds the immutable per-run tokenization settings. It may be
// reused across any number of sequential Tokenize calls.
type Tokenizer struct {
	stemmer      *stem.Stemmer
	ignored      map[string]struct{}
	html         bool
	ignoreProper bool
}

// Options configures a Tokenizer.
type Options struct {
	// Ignored lists words to exclude from repetition tracking, lowercase.
	Ignored []string
	// HTML enables the tag and entity scanners and body tracking.
	HTML bool
	// IgnoreProper excludes capitalized words that do not start a sentence.
	IgnoreProper bool
}

func New(stemmer *stem.Stemmer, opts Options) *Tokenizer {
	ignored := make(map[string]struct{}, len(opts.Ignored))
	for _, w := range opts.Ignored {
		ignored[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{
		stemmer:      stemmer,
		ignored:      ignored,
		html:         opts.HTML,
		ignoreProper: opts.IgnoreProper,
	}
}

// Tokenize scans text left to right and returns the fully populated
// document. Concatenating the tokens' surface text reproduces text exactly.
func (t *Tokenizer) Tokenize(text string) (*token.Document, error) {
	runes := []rune(text)
	doc := token.NewDocument()

	// Plain text is implicitly all body; only a recognized <head> or <html>
	// tag switches body tracking off until the next <body>.
	inBody := true
	atSentenceStart := true

	i := 0
	for i < len(runes) {
		c := runes[i]
		var (
			tok token.Token
			err error
		)
		switch {
		case unicode.IsLetter(c):
			i, tok = t.scanWord(runes, i, &atSentenceStart, inBody)
		case t.html && c == '<':
			atSentenceStart = false
			i, tok, err = t.scanTag(runes, i, doc, &inBody)
		case t.html && c == '&':
			i, tok, err = t.scanEntity(runes, i)
		default:
			i, tok = t.scanSeparator(runes, i, &atSentenceStart)
		}
		if err != nil {
			return nil, err
		}
		doc.Tokens = append(doc.Tokens, tok)
	}
	return doc, nil
}

// scanWord consumes a maximal run of letters and classifies it.
func (t *Tokenizer) scanWord(runes []rune, start int, atSentenceStart *bool, inBody bool) (int, token.Token) {
	i := start
	for i < len(runes) && unicode.IsLetter(runes[i]) {
		i++
	}
	surface := string(runes[start:i])
	lowered := strings.ToLower(surface)

	var tok token.Token
	switch {
	case !inBody:
		// Words in the head (title, script text...) are kept verbatim but
		// never take part in detection.
		tok = token.Token{Kind: token.Untracked, Text: surface}
	case t.isIgnored(lowered) || t.isProperNoun(surface, *atSentenceStart):
		tok = token.Token{Kind: token.Ignored, Text: surface}
	default:
		tok = token.Token{
			Kind: token.Tracked,
			Text: surface,
			Stem: t.stemmer.Stem(lowered),
		}
	}

	*atSentenceStart = false
	return i, tok
}

func (t *Tokenizer) isIgnored(lowered string) bool {
	_, ok := t.ignored[lowered]
	return ok
}

// isProperNoun treats a capitalized word as a proper noun unless it opens a
// sentence. A proper noun can of course open a sentence too; in practice a
// name repeated that often still clears the highlight threshold elsewhere.
func (t *Tokenizer) isProperNoun(surface string, atSentenceStart bool) bool {
	if !t.ignoreProper || atSentenceStart {
		return false
	}
	first, _ := utf8.DecodeRuneInString(surface)
	return unicode.IsUpper(first)
}

// scanTag consumes an HTML tag through its matching '>'. Stray '<' runes
// inside the tag bump a nesting counter instead of failing, so sloppy
// markup still tokenizes. Recognized structural tags mark the document and
// flip body tracking.
func (t *Tokenizer) scanTag(runes []rune, start int, doc *token.Document, inBody *bool) (int, token.Token, error) {
	i := start + 1
	brackets := 1
	tagSeen := false

	for {
		if i >= len(runes) {
			return i, token.Token{}, fmt.Errorf("%w: tag opened at offset %d never closes", ErrMalformedMarkup, start)
		}
		c := runes[i]
		if !tagSeen && (c == '/' || unicode.IsLetter(c)) {
			tagSeen = true
			switch tagName(runes[i:]) {
			case "head":
				doc.MarkBeginHead(len(doc.Tokens))
				*inBody = false
			case "body":
				doc.MarkBeginBody(len(doc.Tokens))
				*inBody = true
			case "/body":
				doc.MarkEndBody(len(doc.Tokens))
				*inBody = false
			case "html":
				*inBody = false
			}
		}
		i++
		if c == '<' {
			brackets++
		}
		if c == '>' {
			brackets--
			if brackets == 0 {
				break
			}
		}
	}
	return i, token.Token{Kind: token.Untracked, Text: string(runes[start:i])}, nil
}

// tagName extracts the leading tag name (letters, with an optional leading
// slash) and case-folds it.
func tagName(runes []rune) string {
	var b strings.Builder
	for _, c := range runes {
		if c != '/' && !unicode.IsLetter(c) {
			break
		}
		b.WriteRune(unicode.ToLower(c))
	}
	return b.String()
}

// scanEntity consumes an HTML entity through the next ';'.
func (t *Tokenizer) scanEntity(runes []rune, start int) (int, token.Token, error) {
	i := start
	for i < len(runes) {
		c := runes[i]
		i++
		if c == ';' {
			return i, token.Token{Kind: token.Untracked, Text: string(runes[start:i])}, nil
		}
	}
	return i, token.Token{}, fmt.Errorf("%w: entity opened at offset %d never closes", ErrMalformedMarkup, start)
}

// scanSeparator consumes a maximal run of whitespace and punctuation. A '.'
// anywhere in the run marks the next word as a sentence start.
func (t *Tokenizer) scanSeparator(runes []rune, start int, atSentenceStart *bool) (int, token.Token) {
	i := start
	for i < len(runes) {
		c := runes[i]
		if unicode.IsLetter(c) || (t.html && (c == '<' || c == '&')) {
			break
		}
		if c == '.' {
			*atSentenceStart = true
		}
		i++
	}
	return i, token.Token{Kind: token.Untracked, Text: string(runes[start:i])}
}
