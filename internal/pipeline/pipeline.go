// Package pipeline wires one analysis run end to end: language lookup,
// stemmer construction, tokenization, detection and rendering. Each stage
// owns the document exclusively while it runs; nothing here is concurrent.
package pipeline

import (
	"fmt"

	"echomark/internal/config"
	"echomark/internal/detect"
	"echomark/internal/lang"
	"echomark/internal/render"
	"echomark/internal/stem"
	"echomark/internal/tokenizer"
)

// Input is the text to analyze plus what ingestion learned about it.
type Input struct {
	Text string
	// HTMLHint reports whether the source looked like HTML; consulted only
	// when the configuration leaves HTML-awareness on auto.
	HTMLHint bool
}

// Run analyzes the input under cfg and returns the rendered result.
func Run(cfg config.Config, in Input) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	language := cfg.Language
	if normalized, ok := lang.Normalize(language); ok {
		language = normalized
	}
	stemmer, err := stem.New(language)
	if err != nil {
		return "", err
	}

	html := in.HTMLHint
	switch cfg.HTML {
	case config.HTMLOn:
		html = true
	case config.HTMLOff:
		html = false
	}

	tk := tokenizer.New(stemmer, tokenizer.Options{
		Ignored:      ignoredWords(cfg, language),
		HTML:         html,
		IgnoreProper: cfg.IgnoreProper,
	})
	doc, err := tk.Tokenize(in.Text)
	if err != nil {
		return "", fmt.Errorf("tokenize: %w", err)
	}

	detector := detect.New(cfg.MaxDistance, cfg.Fuzzy)
	threshold := cfg.EffectiveThreshold()
	switch cfg.Algorithm {
	case config.AlgorithmGlobal:
		detector.Global(doc, threshold)
	default:
		detector.Local(doc, threshold)
	}

	// OutputAuto reaching this far means no caller resolved it; terminal is
	// the safe fallback since it degrades to plain text.
	switch cfg.Output {
	case config.OutputMarkdown:
		return render.Markdown(doc), nil
	case config.OutputHTML:
		return render.HTML(doc, render.HTMLOptions{
			Standalone: cfg.Standalone,
			PlainInput: !html,
		}), nil
	default:
		return render.Terminal(doc), nil
	}
}

// ignoredWords assembles the stop-word list in effect: the language default
// or an explicit replacement, plus any extra words.
func ignoredWords(cfg config.Config, language string) []string {
	var words []string
	if cfg.Ignored != "" {
		words = tokenizer.SplitIgnored(cfg.Ignored)
	} else {
		words = tokenizer.DefaultIgnored(language)
	}
	return append(words, tokenizer.SplitIgnored(cfg.MoreIgnored)...)
}
