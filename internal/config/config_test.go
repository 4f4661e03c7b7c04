package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Reads the yml file", func(t *testing.T) {
		// Given: a config file with a 4x5 board and custom symbols
		path := filepath.Join(t.TempDir(), "config.yml")
		content := `
log-level: debug
board:
  rows: 4
  columns: 5
match:
  auto-reset-delay: 1500ms
symbols:
  p1: A
  p2: B
redis:
  enabled: true
  host: cache
  port: "6380"
  snapshot-ttl: 10m
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading it
		conf, err := Load(path)

		// Then: every section is populated
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, Board{Rows: 4, Columns: 5}, conf.Board)
		assert.Equal(t, 1500*time.Millisecond, conf.Match.AutoResetDelay)
		assert.Equal(t, Symbols{P1: "A", P2: "B"}, conf.Symbols)
		assert.True(t, conf.Redis.Enabled)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, 10*time.Minute, conf.Redis.SnapshotTTL)
	})

	t.Run("Falls back to defaults when the file is missing", func(t *testing.T) {
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, Board{Rows: 3, Columns: 3}, conf.Board)
		assert.Equal(t, time.Second, conf.Match.AutoResetDelay)
		assert.Equal(t, Symbols{P1: "X", P2: "O"}, conf.Symbols)
		assert.False(t, conf.Redis.Enabled)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("board:\n  rows: 3\n  columns: 3\n"), 0o600))
		t.Setenv("BOARD_COLUMNS", "4")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, Board{Rows: 3, Columns: 4}, conf.Board)
	})

	t.Run("MustLoad panics on a broken file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("board: [rows"), 0o600))

		assert.Panics(t, func() { MustLoad(path) })
	})
}
