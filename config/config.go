// Package config reads runtime settings from STACKFALL_* environment
// variables.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

// Leaderboard backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds every setting a frontend needs.
type Config struct {
	DataDir         string `env:"STACKFALL_DATA_DIR" envDefault:"."`
	HighScoreFile   string `env:"STACKFALL_HIGHSCORE_FILE" envDefault:"highscore.txt"`
	Leaderboard     string `env:"STACKFALL_LEADERBOARD" envDefault:"file"`
	LeaderboardFile string `env:"STACKFALL_LEADERBOARD_FILE" envDefault:"leaderboard.txt"`
	LeaderboardDB   string `env:"STACKFALL_LEADERBOARD_DB" envDefault:"leaderboard.db"`
	LogLevel        string `env:"STACKFALL_LOG_LEVEL" envDefault:"info"`
	LogFile         string `env:"STACKFALL_LOG_FILE" envDefault:"stackfall.log"`
	Sound           bool   `env:"STACKFALL_SOUND" envDefault:"true"`
	// Seed fixes the piece sequence. Zero picks a random seed.
	Seed uint64 `env:"STACKFALL_SEED" envDefault:"0"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the parser cannot.
func (c Config) Validate() error {
	switch strings.ToLower(c.Leaderboard) {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown leaderboard backend %q", c.Leaderboard)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// Backend is the normalized leaderboard backend name.
func (c Config) Backend() string {
	return strings.ToLower(c.Leaderboard)
}

func (c Config) HighScorePath() string   { return c.resolve(c.HighScoreFile) }
func (c Config) LeaderboardPath() string { return c.resolve(c.LeaderboardFile) }
func (c Config) LeaderboardDBPath() string {
	return c.resolve(c.LeaderboardDB)
}

// LogPath is empty when logging to a file is disabled.
func (c Config) LogPath() string {
	if c.LogFile == "" || c.LogFile == "-" {
		return ""
	}
	return c.resolve(c.LogFile)
}

// resolve places relative names under DataDir.
func (c Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// NewLogger builds a logger at the configured level writing to w. Pass
// io.Discard to silence it.
func (c Config) NewLogger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// OpenLog opens the log file for appending and returns a logger writing to
// it. When LogPath is empty the logger discards everything. The returned
// closer is never nil.
func (c Config) OpenLog() (*logrus.Logger, io.Closer, error) {
	path := c.LogPath()
	if path == "" {
		return c.NewLogger(io.Discard), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return c.NewLogger(f), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
