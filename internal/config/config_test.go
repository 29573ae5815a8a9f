package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mario-Kart-Felix/orogene/internal/registry"
)

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.True(t, cfg.Corgi)
	assert.Equal(t, 4, cfg.MaxParallel)
	require.Len(t, cfg.Registries, 1)
	assert.Equal(t, registry.DefaultRegistry, cfg.Registries[0].URL)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
corgi = false
max_parallel = 8

[[registries]]
scope = ""
url = "https://mirror.example.com/"

[[registries]]
scope = "@internal"
url = "https://npm.corp.example.com/"
`), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.False(t, cfg.Corgi)
	assert.Equal(t, 8, cfg.MaxParallel)

	table := cfg.RegistryTable()
	assert.Equal(t, "https://mirror.example.com/", table[""])
	assert.Equal(t, "https://npm.corp.example.com/", table["@internal"])
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.MaxParallel = 2

	require.NoError(t, Save(cfg, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.MaxParallel)
	assert.Equal(t, cfg.Registries, loaded.Registries)
}
