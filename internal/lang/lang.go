// Package lang normalizes user-supplied language names and codes to the
// canonical lowercase names the stemmer understands.
package lang

import "strings"

type entry struct {
	name  string // canonical name, e.g. "french"
	code2 string // ISO 639-1
	code3 string // ISO 639-2 primary
	alt3  string // ISO 639-2 alternate (e.g. "fre" vs "fra")
}

var languages = []entry{
	{"english", "en", "eng", ""},
	{"french", "fr", "fra", "fre"},
	{"spanish", "es", "spa", ""},
	{"russian", "ru", "rus", ""},
	{"swedish", "sv", "swe", ""},
	{"norwegian", "no", "nor", ""},
	{"hungarian", "hu", "hun", ""},
}

var byAlias map[string]string

func init() {
	byAlias = make(map[string]string, len(languages)*4)
	for _, e := range languages {
		byAlias[e.name] = e.name
		byAlias[e.code2] = e.name
		byAlias[e.code3] = e.name
		if e.alt3 != "" {
			byAlias[e.alt3] = e.name
		}
	}
}

// Normalize maps a language name or ISO 639 code to its canonical name.
// The input is unknown if ok is false.
func Normalize(input string) (name string, ok bool) {
	name, ok = byAlias[strings.ToLower(strings.TrimSpace(input))]
	return name, ok
}

// Names returns the canonical language names in declaration order.
func Names() []string {
	out := make([]string, len(languages))
	for i, e := range languages {
		out[i] = e.name
	}
	return out
}
