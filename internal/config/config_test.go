package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Zero(t, cfg.Game.Seed)
	assert.False(t, cfg.Game.Strict)
	assert.Empty(t, cfg.Game.Transcript)
	assert.Equal(t, 2500*time.Millisecond, cfg.Pacing.ResolveDelay)
	assert.Equal(t, 1500*time.Millisecond, cfg.Pacing.DrainDelay)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "novacana:snapshots", cfg.Redis.Channel)
	assert.Equal(t, "novacana", cfg.Telemetry.ServiceName)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "novacana.yaml")
	data := `
server:
  addr: ":7777"
game:
  seed: 99
  strict: true
  transcript: games.log
pacing:
  resolve_delay: 10ms
  drain_delay: 0s
redis:
  addr: localhost:6379
  channel: games
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7777", cfg.Server.Addr)
	assert.Equal(t, int64(99), cfg.Game.Seed)
	assert.True(t, cfg.Game.Strict)
	assert.Equal(t, "games.log", cfg.Game.Transcript)
	assert.Equal(t, 10*time.Millisecond, cfg.Pacing.ResolveDelay)
	assert.Zero(t, cfg.Pacing.DrainDelay)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "games", cfg.Redis.Channel)
	assert.Equal(t, "info", cfg.Logging.Level, "unset keys keep their defaults")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("NOVACANA_SERVER_ADDR", ":8123")
	t.Setenv("NOVACANA_LOGGING_FORMAT", "json")
	t.Setenv("NOVACANA_GAME_SEED", "7")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8123", cfg.Server.Addr)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, int64(7), cfg.Game.Seed)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Addr: ""},
		Pacing: PacingConfig{ResolveDelay: -time.Second},
		Redis:  RedisConfig{Addr: "localhost:6379"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.addr")
	assert.Contains(t, err.Error(), "pacing")
	assert.Contains(t, err.Error(), "redis.channel")
}
