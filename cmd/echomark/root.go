package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"echomark/internal/config"
	"echomark/internal/ingest"
	"echomark/internal/pipeline"
)

func newRootCommand() *cobra.Command {
	var (
		configPath string
		writePath  string
		flagCfg    = config.Default()
	)

	cmd := &cobra.Command{
		Use:   "echomark [file]",
		Short: "Highlight repeated words in prose",
		Long: "echomark detects over-used words in plain text, HTML, PDF or DOCX\n" +
			"documents and renders the text with the repetitions highlighted.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, configPath, flagCfg)
			if err != nil {
				return err
			}

			in, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if cfg.Output == config.OutputAuto {
				cfg.Output = autoOutput(writePath)
			}

			out, err := pipeline.Run(cfg, in)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), writePath, out)
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file path (TOML)")
	cmd.Flags().StringVarP(&writePath, "write", "w", "", "Write the result to a file instead of stdout")
	cmd.Flags().StringVarP(&flagCfg.Language, "language", "l", flagCfg.Language, "Input language (name or ISO code)")
	cmd.Flags().StringVarP(&flagCfg.Algorithm, "algo", "a", flagCfg.Algorithm, "Detection algorithm: local or global")
	cmd.Flags().Float64VarP(&flagCfg.Threshold, "threshold", "t", flagCfg.Threshold, "Highlight threshold (0 = algorithm default)")
	cmd.Flags().IntVar(&flagCfg.MaxDistance, "max-distance", flagCfg.MaxDistance, "Window size in words for local detection")
	cmd.Flags().Float64Var(&flagCfg.Fuzzy, "fuzzy", flagCfg.Fuzzy, "Fuzzy matching tolerance in (0,1], 0 disables")
	cmd.Flags().StringVar(&flagCfg.HTML, "html", flagCfg.HTML, "Treat input as HTML: auto, on or off")
	cmd.Flags().BoolVar(&flagCfg.IgnoreProper, "ignore-proper", flagCfg.IgnoreProper, "Skip capitalized words that do not open a sentence")
	cmd.Flags().StringVar(&flagCfg.Ignored, "ignored", flagCfg.Ignored, "Replace the default ignored-word list")
	cmd.Flags().StringVar(&flagCfg.MoreIgnored, "add-ignored", flagCfg.MoreIgnored, "Append words to the ignored-word list")
	cmd.Flags().StringVarP(&flagCfg.Output, "output", "o", flagCfg.Output, "Output format: auto, terminal, markdown or html")
	cmd.Flags().BoolVar(&flagCfg.Standalone, "standalone", flagCfg.Standalone, "Emit a complete HTML page instead of a fragment")

	cmd.AddCommand(newLanguagesCommand())
	return cmd
}

// resolveConfig layers the configuration: defaults, then the TOML file, then
// any flag the user actually set.
func resolveConfig(cmd *cobra.Command, configPath string, flagCfg config.Config) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	overrides := map[string]func(){
		"language":      func() { cfg.Language = flagCfg.Language },
		"algo":          func() { cfg.Algorithm = flagCfg.Algorithm },
		"threshold":     func() { cfg.Threshold = flagCfg.Threshold },
		"max-distance":  func() { cfg.MaxDistance = flagCfg.MaxDistance },
		"fuzzy":         func() { cfg.Fuzzy = flagCfg.Fuzzy },
		"html":          func() { cfg.HTML = flagCfg.HTML },
		"ignore-proper": func() { cfg.IgnoreProper = flagCfg.IgnoreProper },
		"ignored":       func() { cfg.Ignored = flagCfg.Ignored },
		"add-ignored":   func() { cfg.MoreIgnored = flagCfg.MoreIgnored },
		"output":        func() { cfg.Output = flagCfg.Output },
		"standalone":    func() { cfg.Standalone = flagCfg.Standalone },
	}
	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	return cfg, cfg.Validate()
}

// readInput loads the file argument through ingestion, or falls back to
// reading stdin as plain text.
func readInput(stdin io.Reader, args []string) (pipeline.Input, error) {
	if len(args) == 1 {
		parsed, err := ingest.ParseFile(args[0])
		if err != nil {
			return pipeline.Input{}, err
		}
		return pipeline.Input{Text: parsed.Text, HTMLHint: parsed.HTML}, nil
	}
	raw, err := io.ReadAll(stdin)
	if err != nil {
		return pipeline.Input{}, fmt.Errorf("read stdin: %w", err)
	}
	return pipeline.Input{Text: string(raw)}, nil
}

// autoOutput picks terminal rendering for interactive sessions and HTML for
// pipes and files.
func autoOutput(writePath string) string {
	if writePath == "" && isatty.IsTerminal(os.Stdout.Fd()) {
		return config.OutputTerminal
	}
	if writePath != "" && strings.HasSuffix(strings.ToLower(writePath), ".md") {
		return config.OutputMarkdown
	}
	return config.OutputHTML
}

func writeOutput(stdout io.Writer, writePath, out string) error {
	if writePath == "" {
		_, err := io.WriteString(stdout, out)
		return err
	}
	if err := os.WriteFile(writePath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
