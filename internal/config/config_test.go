package config_test

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/roster/internal/config"
	"github.com/aretw0/roster/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_YAML(t *testing.T) {
	cfg, err := config.Parse([]byte(`
log_level: debug
session: demo
ids: incrementing
store:
  backend: redis
  redis_addr: cache:6379
  redis_db: "2"
  ttl: 90s
http:
  addr: 127.0.0.1:9000
seed: [Blob, Dra]
`), "yaml")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "demo", cfg.Session)
	assert.Equal(t, config.BackendRedis, cfg.Store.Backend)
	assert.Equal(t, 2, cfg.Store.RedisDB, "weakly typed")
	assert.Equal(t, 90*time.Second, cfg.Store.TTL)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
	assert.Equal(t, "text", cfg.LogFormat, "unset keys keep defaults")
	assert.Equal(t, []domain.Contact{{ID: "seed-1", Name: "Blob"}, {ID: "seed-2", Name: "Dra"}}, cfg.SeedContacts())
}

func TestParse_TOML(t *testing.T) {
	cfg, err := config.Parse([]byte(`
session = "t"

[store]
backend = "memory"
ttl = "1h"
`), "toml")
	require.NoError(t, err)
	assert.Equal(t, config.BackendMemory, cfg.Store.Backend)
	assert.Equal(t, time.Hour, cfg.Store.TTL)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
	}{
		{"unknown key", "colour: blue", "yaml"},
		{"bad backend", "store: {backend: s3}", "yaml"},
		{"bad ids", "ids: random", "yaml"},
		{"bad duration", "store: {ttl: soon}", "yaml"},
		{"blank session", "session: ' '", "yaml"},
		{"bad format", "{}", "json"},
		{"bad toml", "session = ", "toml"},
		{"short key", "store: {encryption_key: abcd}", "yaml"},
		{"fallback without key", "store: {fallback_keys: [abcd]}", "yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.data), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestStore_Keys(t *testing.T) {
	hexKey := strings.Repeat("ab", 32)
	b64Key := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))

	cfg, err := config.Parse([]byte("store:\n  encryption_key: "+hexKey+"\n  fallback_keys: ["+b64Key+"]\n"), "yaml")
	require.NoError(t, err)

	active, fallback, err := cfg.Store.Keys()
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xab}, 32), active)
	assert.Equal(t, [][]byte{bytes.Repeat([]byte{7}, 32)}, fallback)

	active, fallback, err = config.Default().Store.Keys()
	require.NoError(t, err)
	assert.Nil(t, active)
	assert.Nil(t, fallback)
}

func TestLoad(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("probes default names", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "roster.toml"), []byte(`session = "probe"`), 0o644))

		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, "probe", cfg.Session)
		assert.Equal(t, "roster.toml", cfg.Source)
	})

	t.Run("explicit missing path", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
