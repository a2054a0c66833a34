// Package detect scores repeated words in a tokenized document and assigns
// highlight tiers. Two algorithms are provided: a sliding-window local pass
// that finds clusters of nearby repetitions, and a global pass that scores
// every word by its document-wide relative frequency.
package detect

import (
	"math"
	"unicode/utf8"

	"echomark/internal/textdist"
	"echomark/internal/token"
)

// DefaultMaxDistance is the window size, in word positions, beyond which two
// occurrences of the same stem no longer count as a repetition.
const DefaultMaxDistance = 50

// Detector holds the immutable detection settings. It carries no per-document
// state and may be reused across sequential runs.
type Detector struct {
	maxDistance int
	fuzzy       float64
}

// New returns a detector. maxDistance must be positive; fuzzy enables
// approximate stem matching when in (0, 1] and disables it at 0.
func New(maxDistance int, fuzzy float64) *Detector {
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	return &Detector{maxDistance: maxDistance, fuzzy: fuzzy}
}

// run is the per-stem sliding-window state: the position of the stem's last
// occurrence and the token indices of its current unbroken repetition run.
type run struct {
	lastPos int
	indices []int
}

// Local walks the document once and sets every tracked token's score to the
// size of the repetition run it belongs to, then applies the three-tier
// highlighter. Positions advance on ignored and tracked tokens only, so
// markup and punctuation never widen the window.
func (d *Detector) Local(doc *token.Document, threshold float64) {
	runs := make(map[string]run)
	pos := 1
	// posToIndex[p] is the token index occupying word position p+1.
	posToIndex := []int{0}

	for i := range doc.Tokens {
		tok := &doc.Tokens[i]

		var (
			resolved string
			prev     run
			hasPrev  bool
			tracked  bool
		)
		switch tok.Kind {
		case token.Untracked:
		case token.Ignored:
			pos++
			posToIndex = append(posToIndex, i)
		case token.Tracked:
			pos++
			posToIndex = append(posToIndex, i)
			resolved = d.resolve(tok.Stem, runs)
			prev, hasPrev = runs[resolved]
			delete(runs, resolved)
			tracked = true
		}

		// Only fuzzy matching needs explicit eviction: exact lookups age out
		// naturally through overwrite, and adding eviction there would change
		// which keys the resolver can see. Keep the asymmetry.
		if d.fuzzy > 0 {
			d.evictStale(pos, runs, doc.Tokens, posToIndex)
		}

		if !tracked {
			continue
		}
		// The resolver may have redirected this word into a neighbouring
		// bucket; the token keeps the key it was counted under.
		tok.Stem = resolved
		if hasPrev && pos-prev.lastPos < d.maxDistance {
			prev.indices = append(prev.indices, i)
			score := float64(len(prev.indices))
			for _, j := range prev.indices {
				doc.Tokens[j].Score = score
			}
			runs[resolved] = run{lastPos: pos, indices: prev.indices}
		} else {
			runs[resolved] = run{lastPos: pos, indices: []int{i}}
		}
	}

	highlight(doc.Tokens, threshold, threeTier)
}

// evictStale drops the run whose last occurrence just scrolled out of the
// window. At most one position leaves the window per step, so checking the
// single boundary position suffices.
func (d *Detector) evictStale(pos int, runs map[string]run, tokens []token.Token, posToIndex []int) {
	if pos <= d.maxDistance+1 {
		return
	}
	limit := pos - d.maxDistance
	i := posToIndex[limit]
	boundary := tokens[i]
	switch boundary.Kind {
	case token.Untracked:
		panic("detect: untracked token recorded at a word position")
	case token.Ignored:
		return
	}
	if r, ok := runs[boundary.Stem]; ok && r.lastPos == limit+1 {
		delete(runs, boundary.Stem)
	}
}

// Global counts stem occurrences across the whole document, scores every
// tracked token with its stem's relative frequency, and applies the
// single-tier highlighter.
func (d *Detector) Global(doc *token.Document, threshold float64) {
	counts, total := stats(doc.Tokens)

	for i := range doc.Tokens {
		tok := &doc.Tokens[i]
		if tok.Kind != token.Tracked {
			continue
		}
		tok.Score = float64(counts[tok.Stem]) / float64(total)
	}

	highlight(doc.Tokens, threshold, singleTier)
}

// stats returns occurrence counts per stem and the number of word positions
// (ignored plus tracked tokens).
func stats(tokens []token.Token) (map[string]int, int) {
	counts := make(map[string]int)
	total := 0
	for _, tok := range tokens {
		switch tok.Kind {
		case token.Ignored:
			total++
		case token.Tracked:
			total++
			counts[tok.Stem]++
		}
	}
	return counts, total
}

// resolve returns the key this word should be counted under. With fuzzy
// matching enabled it searches the live runs for the closest known stem
// within tolerance; an exact hit always wins without any distance search.
func (d *Detector) resolve(key string, runs map[string]run) string {
	if d.fuzzy <= 0 {
		return key
	}
	length := utf8.RuneCountInString(key)
	if length < 2 {
		return key
	}
	if _, ok := runs[key]; ok {
		return key
	}

	limit := d.fuzzy * float64(length)
	best := key
	minDist := -1
	for k := range runs {
		kl := utf8.RuneCountInString(k)
		if kl < 2 {
			continue
		}
		if math.Abs(float64(kl-length)) > limit {
			continue
		}
		dist := textdist.Distance(k, key)
		if minDist < 0 || dist < minDist {
			minDist = dist
			best = k
		}
		if minDist == 1 {
			// Best possible non-exact match; the exact key is known absent.
			break
		}
	}
	if minDist >= 0 && float64(minDist) < limit {
		return best
	}
	return key
}

// tierFunc maps a score that met the threshold to a highlight tier.
type tierFunc func(score, threshold float64) token.Color

// highlight assigns a tier to every tracked token whose score reached the
// threshold and that has not been colored by an earlier pass, then clears
// the scratch score.
func highlight(tokens []token.Token, threshold float64, tier tierFunc) {
	for i := range tokens {
		tok := &tokens[i]
		if tok.Kind != token.Tracked {
			continue
		}
		if tok.Color == "" && tok.Score >= threshold {
			tok.Color = tier(tok.Score, threshold)
		}
		tok.Score = 0
	}
}

// threeTier grades local-detection scores. Being called with a score below
// the threshold means the highlighter's guard was bypassed.
func threeTier(score, threshold float64) token.Color {
	switch {
	case score < threshold:
		panic("detect: tier requested for a score below threshold")
	case score < 1.5*threshold:
		return token.ColorGreen
	case score < 2.0*threshold:
		return token.ColorOrange
	default:
		return token.ColorRed
	}
}

// singleTier is the global detector's tier function: reaching the threshold
// is the only grade there is.
func singleTier(_, _ float64) token.Color {
	return token.ColorBlue
}
