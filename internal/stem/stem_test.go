package stem

import (
	"errors"
	"strings"
	"testing"
)

func TestNewRejectsUnknownLanguage(t *testing.T) {
	_, err := New("klingon")
	if err == nil {
		t.Fatalf("expected an error for an unsupported language")
	}
	var unsupported *UnsupportedLanguageError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected *UnsupportedLanguageError, got %T", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "english") || !strings.Contains(msg, "french") {
		t.Fatalf("error must enumerate supported languages, got %q", msg)
	}
}

func TestStemCollapsesInflections(t *testing.T) {
	english, err := New("english")
	if err != nil {
		t.Fatalf("english stemmer: %v", err)
	}
	if english.Stem("running") != english.Stem("runs") {
		t.Fatalf("expected running/runs to share a stem")
	}

	french, err := New("french")
	if err != nil {
		t.Fatalf("french stemmer: %v", err)
	}
	if french.Stem("chat") != french.Stem("chats") {
		t.Fatalf("expected chat/chats to share a stem")
	}
}

func TestSupports(t *testing.T) {
	if !Supports("english") {
		t.Fatalf("english must be supported")
	}
	if Supports("german") {
		t.Fatalf("german is not implemented by the stemmer")
	}
}
