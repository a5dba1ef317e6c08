package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Applies defaults", func(t *testing.T) {
		// Given: a config file with only the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: it is loaded
		conf, err := Load(path)

		// Then: every other field has its default
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "8080", conf.SocketPort)
		assert.False(t, conf.Redis.Enabled)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, time.Hour, conf.Redis.SnapshotTTL)
		assert.Zero(t, conf.Matchmaking.MaxWait)
		assert.Equal(t, 5*time.Second, conf.Matchmaking.SweepInterval)
		assert.Equal(t, 64, conf.Websocket.SendBuffer)
		assert.Equal(t, 60*time.Second, conf.Websocket.PongWait)
		assert.Equal(t, int64(4096), conf.Websocket.MaxMessageSize)
		assert.Equal(t, []string{"*"}, conf.Websocket.AllowedOrigins)
	})

	t.Run("Reads nested sections", func(t *testing.T) {
		// Given: a config file overriding matchmaking and redis
		path := writeConfig(t, `
redis:
  enabled: true
  host: cache
matchmaking:
  max-wait: 30s
websocket:
  allowed-origins: ["https://play.example.com"]
`)

		// When: it is loaded
		conf, err := Load(path)

		// Then: the overrides are applied
		require.NoError(t, err)
		assert.True(t, conf.Redis.Enabled)
		assert.Equal(t, "cache:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 30*time.Second, conf.Matchmaking.MaxWait)
		assert.Equal(t, []string{"https://play.example.com"}, conf.Websocket.AllowedOrigins)
	})

	t.Run("Environment wins over the file", func(t *testing.T) {
		// Given: a file and an env override for the socket port
		path := writeConfig(t, "socket-port: \"8080\"\n")
		t.Setenv("SOCKET_PORT", "7070")

		// When: it is loaded
		conf, err := Load(path)

		// Then: the env value is used
		require.NoError(t, err)
		assert.Equal(t, "7070", conf.SocketPort)
	})

	t.Run("Missing file", func(t *testing.T) {
		// When: a missing file is loaded
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))

		// Then: an error is returned
		require.Error(t, err)
	})
}

func TestLoad_ShippedConfig(t *testing.T) {
	// Given: the config.yml at the repository root
	path := filepath.Join("..", "..", "config.yml")

	// When: it is loaded
	conf, err := Load(path)

	// Then: the relay starts without redis
	require.NoError(t, err)
	assert.False(t, conf.Redis.Enabled)
	assert.Equal(t, "8080", conf.SocketPort)
}
