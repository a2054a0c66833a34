// Package config holds the immutable per-run settings: what language the
// text is in, which detection algorithm to run and how aggressively to
// highlight. Values come from defaults, an optional TOML file and CLI flags,
// in that order of precedence.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"echomark/internal/detect"
)

// Algorithm names.
const (
	AlgorithmLocal  = "local"
	AlgorithmGlobal = "global"
)

// Output format names. Auto lets the caller pick a concrete format from the
// environment (a TTY gets terminal output, anything else HTML).
const (
	OutputAuto     = "auto"
	OutputTerminal = "terminal"
	OutputMarkdown = "markdown"
	OutputHTML     = "html"
)

// HTML-awareness modes. Auto defers to input sniffing.
const (
	HTMLAuto = "auto"
	HTMLOn   = "on"
	HTMLOff  = "off"
)

// Default thresholds per algorithm. Local scores are run sizes; global
// scores are relative frequencies, hence the very different scales.
const (
	DefaultLocalThreshold  = 1.9
	DefaultGlobalThreshold = 0.01
)

// Config is one run's settings.
type Config struct {
	Language     string  `toml:"language"`
	Algorithm    string  `toml:"algorithm"`
	Threshold    float64 `toml:"threshold"` // 0 selects the algorithm default
	MaxDistance  int     `toml:"max_distance"`
	Fuzzy        float64 `toml:"fuzzy"` // 0 disables fuzzy matching
	HTML         string  `toml:"html"`
	IgnoreProper bool    `toml:"ignore_proper"`
	Ignored      string  `toml:"ignored"`      // replaces the language default list
	MoreIgnored  string  `toml:"more_ignored"` // appended to the list in effect
	Output       string  `toml:"output"`
	Standalone   bool    `toml:"standalone"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Language:    "english",
		Algorithm:   AlgorithmLocal,
		MaxDistance: detect.DefaultMaxDistance,
		HTML:        HTMLAuto,
		Output:      OutputAuto,
	}
}

// Load reads a TOML configuration file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// EffectiveThreshold resolves a zero threshold to the algorithm's default.
func (c Config) EffectiveThreshold() float64 {
	if c.Threshold > 0 {
		return c.Threshold
	}
	if c.Algorithm == AlgorithmGlobal {
		return DefaultGlobalThreshold
	}
	return DefaultLocalThreshold
}

// Validate rejects settings the pipeline cannot run with.
func (c Config) Validate() error {
	switch c.Algorithm {
	case AlgorithmLocal, AlgorithmGlobal:
	default:
		return fmt.Errorf("unknown algorithm %q (expected %s or %s)", c.Algorithm, AlgorithmLocal, AlgorithmGlobal)
	}
	switch c.Output {
	case OutputAuto, OutputTerminal, OutputMarkdown, OutputHTML:
	default:
		return fmt.Errorf("unknown output format %q", c.Output)
	}
	switch c.HTML {
	case HTMLAuto, HTMLOn, HTMLOff:
	default:
		return fmt.Errorf("unknown html mode %q (expected auto, on or off)", c.HTML)
	}
	if c.MaxDistance <= 0 {
		return fmt.Errorf("max_distance must be positive, got %d", c.MaxDistance)
	}
	if c.Fuzzy < 0 || c.Fuzzy > 1 {
		return fmt.Errorf("fuzzy must be within (0, 1], got %g", c.Fuzzy)
	}
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must not be negative, got %g", c.Threshold)
	}
	return nil
}
