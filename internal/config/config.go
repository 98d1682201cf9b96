// Package config reads process configuration from the environment.
// A .env file, if present, is loaded by the command layer before Load is called.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds every knob the commands read.
type Config struct {
	Port         string // PORT
	LogLevel     string // LOG_LEVEL
	ClientOrigin string // CLIENT_ORIGIN, the browser front end allowed by CORS
	PlayerSecret string // PLAYER_SECRET, HMAC key for player cookies
	SecureCookie bool   // NODE_ENV=production
	DBPath       string // WORDMAN_DB
	WordsFile    string // WORDS_FILE; empty means the embedded bank
	Seed         int64  // WORDMAN_SEED; 0 means time-seeded
	OTelEnabled  bool   // OTEL_ENABLED

	MaxPlayers int           // WORDMAN_MAX_PLAYERS, engines kept in memory by the server
	PlayerIdle time.Duration // WORDMAN_PLAYER_IDLE, idle time before an engine is dropped
}

// Load reads Config from the environment with defaults.
func Load() Config {
	return Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		PlayerSecret: getEnv("PLAYER_SECRET", "dev_secret_change_me"),
		SecureCookie: os.Getenv("NODE_ENV") == "production",
		DBPath:       getEnv("WORDMAN_DB", "./data/wordman.db"),
		WordsFile:    os.Getenv("WORDS_FILE"),
		Seed:         getEnvInt64("WORDMAN_SEED", 0),
		OTelEnabled:  getEnvBool("OTEL_ENABLED", false),
		MaxPlayers:   int(getEnvInt64("WORDMAN_MAX_PLAYERS", 10000)),
		PlayerIdle:   getEnvDuration("WORDMAN_PLAYER_IDLE", 30*time.Minute),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt64(k string, def int64) int64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
