// Package stem reduces lowercase words to canonical stem keys so that
// inflected forms of the same word ("chat"/"chats") share a repetition bucket.
package stem

import (
	"fmt"
	"strings"

	"github.com/kljensen/snowball"

	"echomark/internal/lang"
)

// UnsupportedLanguageError is returned by New for languages the snowball
// stemmer has no algorithm for. It lists the valid choices.
type UnsupportedLanguageError struct {
	Language string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("language %q is not supported (supported: %s)",
		e.Language, strings.Join(Supported(), ", "))
}

// Stemmer maps lowercase words of one language to stem keys. It is immutable
// and safe to reuse across any number of documents.
type Stemmer struct {
	language string
}

// New returns a stemmer for the given canonical language name.
func New(language string) (*Stemmer, error) {
	if !Supports(language) {
		return nil, &UnsupportedLanguageError{Language: language}
	}
	return &Stemmer{language: language}, nil
}

// Language returns the canonical language name the stemmer was built for.
func (s *Stemmer) Language() string {
	return s.language
}

// Stem returns the stem key for a lowercase word. Words snowball cannot
// handle stem to themselves.
func (s *Stemmer) Stem(word string) string {
	stemmed, err := snowball.Stem(word, s.language, true)
	if err != nil || stemmed == "" {
		return word
	}
	return stemmed
}

// Supported returns the canonical names of every implemented language.
func Supported() []string {
	return lang.Names()
}

// Supports reports whether a canonical language name has a stemmer.
func Supports(language string) bool {
	for _, n := range lang.Names() {
		if n == language {
			return true
		}
	}
	return false
}
