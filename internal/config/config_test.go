package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ontoview/pkg/cache"
	"github.com/matzehuels/ontoview/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
context = "vocab/context.yaml"
formats = ["ttl", "svg"]

[cache]
backend = "none"
ttl = "24h"

[server]
addr = ":9090"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "vocab/context.yaml", cfg.Context)
	assert.Equal(t, []string{"ttl", "svg"}, cfg.Formats)
	assert.Equal(t, BackendNone, cfg.Cache.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL.Duration)
	assert.Equal(t, ":9090", cfg.Server.Addr)

	// untouched keys keep their defaults
	assert.Equal(t, "ontoview:", cfg.Cache.Prefix)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
}

func TestLoadDefaultLocation(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "formats = [\n"},
		{"unknown key", "colour = \"blue\"\n"},
		{"bad format", "formats = [\"pdf\"]\n"},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n"},
		{"bad duration", "[cache]\nttl = \"soon\"\n"},
		{"redis without addr", "[cache]\nbackend = \"redis\"\nredis_addr = \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestCacheDir(t *testing.T) {
	cfg := Default()
	cfg.Cache.Dir = "/tmp/explicit"
	dir, err := cfg.CacheDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/explicit", dir)

	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	dir, err = Default().CacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "ontoview"), dir)
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	cfg := Default()
	cfg.Cache.Backend = BackendNone
	c, _, err := cfg.OpenCache(ctx)
	require.NoError(t, err)
	assert.IsType(t, &cache.NullCache{}, c)

	cfg = Default()
	cfg.Cache.Dir = t.TempDir()
	c, k, err := cfg.OpenCache(ctx)
	require.NoError(t, err)
	assert.IsType(t, &cache.FileCache{}, c)
	assert.NotNil(t, k)
}
