package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/wordman/wordman/internal/game"
	"github.com/wordman/wordman/internal/store"
	"github.com/wordman/wordman/internal/tui"
)

var logFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Play in the terminal. Type letters to guess, 1 for a hint,
2 to skip the word and Enter to start a new game. Esc quits.

The score and the word in play are saved between runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		defer startTelemetry(ctx, cmd.Name())()

		// The screen owns stdout; logs go to a file or nowhere.
		var out io.Writer = io.Discard
		if logFile != "" {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer f.Close()
			out = f
		}
		logger := zerolog.New(out).With().Timestamp().Str("cmd", "play").Logger()

		bank, err := loadWords(logger)
		if err != nil {
			return err
		}
		db, err := store.OpenSQLite(cfg.DBPath, logger)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer db.Close()

		saver := store.NewAdapter(db, store.DefaultKey, logger)
		engine := game.New(bank, saver, game.Config{Seed: cfg.Seed}, game.WithLogger(logger))

		app, err := tui.New(engine)
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		return app.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func bindPlayFlags() {
	playCmd.Flags().StringVar(&logFile, "log-file", "", "Append logs to this file")
}
