package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/stackfall/config"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, ".", cfg.DataDir)
		assert.Equal(t, config.BackendFile, cfg.Backend())
		assert.Equal(t, "highscore.txt", cfg.HighScorePath())
		assert.Equal(t, "leaderboard.txt", cfg.LeaderboardPath())
		assert.Equal(t, "leaderboard.db", cfg.LeaderboardDBPath())
		assert.Equal(t, "stackfall.log", cfg.LogPath())
		assert.True(t, cfg.Sound)
		assert.Zero(t, cfg.Seed)
	})

	t.Run("overrides", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("STACKFALL_DATA_DIR", dir)
		t.Setenv("STACKFALL_LEADERBOARD", "SQLite")
		t.Setenv("STACKFALL_HIGHSCORE_FILE", "/var/tmp/high.txt")
		t.Setenv("STACKFALL_SOUND", "false")
		t.Setenv("STACKFALL_SEED", "42")
		t.Setenv("STACKFALL_LOG_FILE", "-")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, config.BackendSQLite, cfg.Backend())
		assert.Equal(t, "/var/tmp/high.txt", cfg.HighScorePath())
		assert.Equal(t, filepath.Join(dir, "leaderboard.db"), cfg.LeaderboardDBPath())
		assert.False(t, cfg.Sound)
		assert.Equal(t, uint64(42), cfg.Seed)
		assert.Empty(t, cfg.LogPath())
	})

	t.Run("parse error is wrapped", func(t *testing.T) {
		t.Setenv("STACKFALL_SEED", "not-a-number")

		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse env:")
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("STACKFALL_LEADERBOARD", "redis")

		_, err := config.Load()
		assert.ErrorContains(t, err, "redis")
	})

	t.Run("bad log level", func(t *testing.T) {
		t.Setenv("STACKFALL_LOG_LEVEL", "loud")

		_, err := config.Load()
		assert.ErrorContains(t, err, "log level")
	})
}

func TestOpenLog(t *testing.T) {
	t.Run("writes to the data dir", func(t *testing.T) {
		dir := t.TempDir()
		cfg := config.Config{DataDir: filepath.Join(dir, "nested"), LogFile: "game.log", LogLevel: "debug"}

		logger, closer, err := cfg.OpenLog()
		require.NoError(t, err)
		assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

		logger.WithField("score", 100).Info("hello")
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(filepath.Join(dir, "nested", "game.log"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "msg=hello")
		assert.Contains(t, string(data), "score=100")
	})

	t.Run("disabled", func(t *testing.T) {
		cfg := config.Config{LogFile: "-", LogLevel: "info"}

		logger, closer, err := cfg.OpenLog()
		require.NoError(t, err)
		require.NotNil(t, closer)
		assert.NoError(t, closer.Close())
		logger.Info("dropped")
	})
}
