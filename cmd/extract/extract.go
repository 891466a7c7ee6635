package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/johnquangdev/meeting-actions/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-actions/internal/app"
	"github.com/johnquangdev/meeting-actions/internal/usecase/actionitems"
	"github.com/johnquangdev/meeting-actions/pkg/config"
)

var version = "dev"

type options struct {
	file         string
	participants []string
	strategy     string
	nlpURL       string
	ner          string
	parser       string
	pretty       bool
	verbose      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract action items from a meeting transcript",
		Long: `extract reads a meeting transcript and prints the action items it contains
as JSON: task, assignee, deadline and the sentence each was found in.

The transcript is read from the file argument, --file, or stdin ("-" or no argument).
NLP settings default to the NLP_* environment variables.

Examples:
  # Keyword strategy with a participant roster
  extract --strategy keyword --participant "Bob Smith" --participant "Alice Jones" notes.txt

  # Syntactic strategy against an NLP sidecar
  cat notes.txt | extract --parser remote --nlp-url http://localhost:8000 --pretty`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && opts.file == "" {
				opts.file = args[0]
			}
			return runExtract(cmd.Context(), cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", "", "transcript file (default: stdin)")
	flags.StringArrayVarP(&opts.participants, "participant", "p", nil, "known participant name, repeatable")
	flags.StringVarP(&opts.strategy, "strategy", "s", "", "detection strategy: auto, keyword or syntactic")
	flags.StringVar(&opts.nlpURL, "nlp-url", "", "NLP sidecar base URL")
	flags.StringVar(&opts.ner, "ner", "", "entity recognizer: prose, remote or none")
	flags.StringVar(&opts.parser, "parser", "", "dependency parser: remote or none")
	flags.BoolVar(&opts.pretty, "pretty", false, "indent the JSON output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log capability and extraction details to stderr")

	return cmd
}

func runExtract(ctx context.Context, cmd *cobra.Command, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	text, err := readTranscript(cmd.InOrStdin(), opts.file)
	if err != nil {
		return err
	}

	strategy, err := actionitems.ParseStrategy(opts.strategy)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if opts.verbose {
		zc := zap.NewDevelopmentConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		zc.OutputPaths = []string{"stderr"}
		if logger, err = zc.Build(); err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.Service.Extract(ctx, actionitems.ExtractRequest{
		Text:         text,
		Participants: opts.participants,
		Strategy:     strategy,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if opts.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(presenter.ToExtractResponse(out))
}

// loadConfig reads the environment and applies flag overrides. The CLI never
// caches results.
func loadConfig(opts *options) (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	cfg.Cache.Driver = "none"
	cfg.NLP.Warmup = false
	if opts.nlpURL != "" {
		cfg.NLP.BaseURL = opts.nlpURL
	}
	if opts.ner != "" {
		cfg.NLP.NERProvider = opts.ner
	}
	if opts.parser != "" {
		cfg.NLP.ParserProvider = opts.parser
	}
	if opts.strategy != "" {
		cfg.Extraction.Strategy = opts.strategy
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readTranscript(stdin io.Reader, file string) (string, error) {
	if file == "" || file == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return string(b), nil
}
