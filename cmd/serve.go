package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/wordman/wordman/internal/game"
	"github.com/wordman/wordman/internal/httpserver"
	"github.com/wordman/wordman/internal/session"
	"github.com/wordman/wordman/internal/store"
)

var inMemory bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game as a JSON API, one game per browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		defer startTelemetry(ctx, cmd.Name())()

		logger := log.Logger
		bank, err := loadWords(logger)
		if err != nil {
			return err
		}

		var kv store.KV
		if inMemory {
			kv = store.NewMemoryKV()
			logger.Info().Msg("using in-memory store")
		} else {
			db, err := store.OpenSQLite(cfg.DBPath, logger)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer db.Close()
			kv = db
			logger.Info().Str("path", cfg.DBPath).Msg("using sqlite store")
		}

		sessions := session.NewManager(bank, kv, game.Config{Seed: cfg.Seed}, logger,
			session.WithLimits(cfg.MaxPlayers, cfg.PlayerIdle))
		srv := httpserver.New(sessions, bank, httpserver.Options{
			ClientOrigin: cfg.ClientOrigin,
			PlayerSecret: cfg.PlayerSecret,
			SecureCookie: cfg.SecureCookie,
		}, logger)

		if cfg.PlayerSecret == "dev_secret_change_me" {
			logger.Warn().Msg("PLAYER_SECRET is the development default")
		}
		logger.Info().Str("port", cfg.Port).Msg("starting wordman server")
		if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
			return fmt.Errorf("server exited: %w", err)
		}
		logger.Info().Msg("server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func bindServeFlags() {
	serveCmd.Flags().StringVarP(&cfg.Port, "port", "p", cfg.Port, "Port to listen on")
	serveCmd.Flags().StringVar(&cfg.ClientOrigin, "origin", cfg.ClientOrigin, "Browser origin allowed by CORS")
	serveCmd.Flags().IntVar(&cfg.MaxPlayers, "max-players", cfg.MaxPlayers, "Games kept in memory before the least recent is dropped")
	serveCmd.Flags().DurationVar(&cfg.PlayerIdle, "player-idle", cfg.PlayerIdle, "Idle time before a player's game is dropped from memory")
	serveCmd.Flags().BoolVar(&inMemory, "memory", false, "Keep records in memory instead of SQLite")
}
