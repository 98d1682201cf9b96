package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/wordman/wordman/internal/config"
	"github.com/wordman/wordman/internal/telemetry"
	"github.com/wordman/wordman/internal/words"
)

// cfg is filled from the environment by setup, then overridden by flags.
var cfg config.Config

var setupOnce sync.Once

var rootCmd = &cobra.Command{
	Use:   "wordman",
	Short: "Play hangman in the terminal or serve it over HTTP",
	Long: `wordman is a hangman game: guess the hidden word one letter at a
time before twelve misses run out.

Play in the terminal
	wordman play

Serve the JSON API for the browser front end
	wordman serve --port 5175
`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			zerolog.SetGlobalLevel(lvl)
		}
	},
}

// Execute runs the root command until it returns or the process is interrupted.
// The environment (and any .env loaded by main) is read here, not at import.
func Execute() {
	setup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// setup reads the environment and binds every flag with it as the default.
func setup() {
	setupOnce.Do(func() {
		cfg = config.Load()
		bindRootFlags()
		bindServeFlags()
		bindPlayFlags()
	})
}

func bindRootFlags() {
	rootCmd.PersistentFlags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for word and hint selection (0 picks one from the clock)")
	rootCmd.PersistentFlags().StringVar(&cfg.WordsFile, "words", cfg.WordsFile, "YAML word bank to use instead of the built-in one")
	rootCmd.PersistentFlags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite file holding saved records")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

// loadWords reads the configured bank and logs its size.
func loadWords(logger zerolog.Logger) (*words.Bank, error) {
	bank, err := words.Load(cfg.WordsFile)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	c, n := bank.Stats()
	logger.Info().Int("categories", c).Int("words", n).Msg("word bank loaded")
	return bank, nil
}

// startTelemetry installs tracing when enabled and returns its shutdown hook.
func startTelemetry(ctx context.Context, mode string) func() {
	if !cfg.OTelEnabled {
		return func() {}
	}
	shutdown, err := telemetry.Setup(ctx, telemetry.Options{Mode: mode})
	if err != nil {
		log.Warn().Err(err).Msg("telemetry disabled")
		return func() {}
	}
	return func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn().Err(err).Msg("telemetry shutdown")
		}
	}
}
