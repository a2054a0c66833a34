package tokenizer

import (
	"errors"
	"testing"

	"echomark/internal/stem"
	"echomark/internal/token"
)

func newTestTokenizer(t *testing.T, language string, opts Options) *Tokenizer {
	t.Helper()
	stemmer, err := stem.New(language)
	if err != nil {
		t.Fatalf("stemmer for %s: %v", language, err)
	}
	if opts.Ignored == nil {
		opts.Ignored = DefaultIgnored(language)
	}
	return New(stemmer, opts)
}

func TestTokenizeIsLossless(t *testing.T) {
	inputs := []string{
		"",
		"chat chat chat",
		"Le chat, le chien; et la souris...",
		"tabs\tand\nnewlines\r\n!",
		"élan déjà naïve",
	}
	tk := newTestTokenizer(t, "french", Options{})
	for _, input := range inputs {
		doc, err := tk.Tokenize(input)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", input, err)
		}
		if got := doc.Text(); got != input {
			t.Fatalf("reconstruction mismatch: got %q want %q", got, input)
		}
	}
}

func TestTokenizeHTMLIsLossless(t *testing.T) {
	input := "<html><head><title>T</title></head><body>Un chat &amp; un chien.</body></html>"
	tk := newTestTokenizer(t, "french", Options{HTML: true})
	doc, err := tk.Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if got := doc.Text(); got != input {
		t.Fatalf("reconstruction mismatch: got %q want %q", got, input)
	}
}

func TestStructuralMarkers(t *testing.T) {
	input := "<head><body>Le chat est noir.</body></html>"
	tk := newTestTokenizer(t, "french", Options{HTML: true})
	doc, err := tk.Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	if doc.BeginHead != 0 {
		t.Fatalf("head marker = %d, want 0", doc.BeginHead)
	}
	if doc.BeginBody != 1 {
		t.Fatalf("body marker = %d, want 1", doc.BeginBody)
	}
	if doc.Tokens[doc.EndBody].Text != "</body>" {
		t.Fatalf("end-body marker points at %q", doc.Tokens[doc.EndBody].Text)
	}

	kinds := map[string]token.Kind{}
	for _, tok := range doc.Tokens {
		kinds[tok.Text] = tok.Kind
	}
	if kinds["Le"] != token.Ignored || kinds["est"] != token.Ignored {
		t.Fatalf("expected le/est to be ignored stop-words, got %+v", kinds)
	}
	if kinds["chat"] != token.Tracked || kinds["noir"] != token.Tracked {
		t.Fatalf("expected chat/noir to be tracked, got %+v", kinds)
	}
}

func TestWordsOutsideBodyAreUntracked(t *testing.T) {
	input := "<html>stray words<body>chat</body>"
	tk := newTestTokenizer(t, "french", Options{HTML: true})
	doc, err := tk.Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	for _, tok := range doc.Tokens {
		switch tok.Text {
		case "stray", "words":
			if tok.Kind != token.Untracked {
				t.Fatalf("%q outside body must be untracked", tok.Text)
			}
		case "chat":
			if tok.Kind != token.Tracked {
				t.Fatalf("%q inside body must be tracked", tok.Text)
			}
		}
	}
}

func TestProperNounIgnoring(t *testing.T) {
	tk := newTestTokenizer(t, "english", Options{IgnoreProper: true})
	doc, err := tk.Tokenize("Today Marie left. Marie returned")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	var kinds []token.Kind
	for _, tok := range doc.Tokens {
		if tok.Text == "Marie" {
			kinds = append(kinds, tok.Kind)
		}
	}
	if len(kinds) != 2 {
		t.Fatalf("expected two occurrences of Marie, got %d", len(kinds))
	}
	// Mid-sentence capitalized word is a proper noun; after ". " it opens a
	// sentence and stays tracked.
	if kinds[0] != token.Ignored {
		t.Fatalf("mid-sentence Marie should be ignored, got kind %d", kinds[0])
	}
	if kinds[1] != token.Tracked {
		t.Fatalf("sentence-opening Marie should be tracked, got kind %d", kinds[1])
	}
}

func TestProperNounWithAccentedInitial(t *testing.T) {
	tk := newTestTokenizer(t, "french", Options{IgnoreProper: true})
	doc, err := tk.Tokenize("hier Éloise partit")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	for _, tok := range doc.Tokens {
		if tok.Text == "Éloise" && tok.Kind != token.Ignored {
			t.Fatalf("mid-sentence Éloise should be ignored, got kind %d", tok.Kind)
		}
		if tok.Text == "hier" && tok.Kind != token.Tracked {
			t.Fatalf("lowercase hier should stay tracked, got kind %d", tok.Kind)
		}
	}
}

func TestNestedBracketsInsideTag(t *testing.T) {
	input := "<a <b> > chat"
	tk := newTestTokenizer(t, "french", Options{HTML: true})
	doc, err := tk.Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if doc.Tokens[0].Text != "<a <b> >" {
		t.Fatalf("nesting tolerated tag expected, got %q", doc.Tokens[0].Text)
	}
	if got := doc.Text(); got != input {
		t.Fatalf("reconstruction mismatch: %q", got)
	}
}

func TestMalformedMarkup(t *testing.T) {
	tk := newTestTokenizer(t, "english", Options{HTML: true})
	for _, input := range []string{"<div", "before &nbsp"} {
		_, err := tk.Tokenize(input)
		if !errors.Is(err, ErrMalformedMarkup) {
			t.Fatalf("Tokenize(%q) = %v, want ErrMalformedMarkup", input, err)
		}
	}
}

func TestHTMLDisabledTreatsMarkupAsSeparators(t *testing.T) {
	tk := newTestTokenizer(t, "english", Options{HTML: false})
	doc, err := tk.Tokenize("<div")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(doc.Tokens) != 2 || doc.Tokens[0].Text != "<" || doc.Tokens[1].Text != "div" {
		t.Fatalf("unexpected tokens: %+v", doc.Tokens)
	}
}

func TestSplitIgnored(t *testing.T) {
	got := SplitIgnored("foo, bar;baz  qux")
	want := []string{"foo", "bar", "baz", "qux"}
	if len(got) != len(want) {
		t.Fatalf("SplitIgnored = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SplitIgnored = %v, want %v", got, want)
		}
	}
}
