package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/Mario-Kart-Felix/orogene/internal/registry"
)

type Config struct {
	CacheDir    string     `toml:"cache_dir"`
	Corgi       bool       `toml:"corgi"`
	MaxParallel int        `toml:"max_parallel"`
	Registries  []Registry `toml:"registries"`
}

type Registry struct {
	Scope string `toml:"scope"`
	URL   string `toml:"url"`
}

// RegistryTable flattens the config entries into the scope -> URL mapping
// the router consumes. Later entries for the same scope win.
func (c *Config) RegistryTable() map[string]string {
	table := make(map[string]string, len(c.Registries))
	for _, r := range c.Registries {
		table[r.Scope] = r.URL
	}
	return table
}

func Default() *Config {
	home, _ := os.UserHomeDir()
	base := filepath.Join(home, ".oro")

	return &Config{
		CacheDir:    filepath.Join(base, "cache"),
		Corgi:       true,
		MaxParallel: 4,
		Registries: []Registry{
			{Scope: "", URL: registry.DefaultRegistry},
		},
	}
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(filepath.Join(home, ".oro", "config.toml"))
}

func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	if cfg.MaxParallel < 1 {
		cfg.MaxParallel = 1
	}
	return cfg, nil
}

func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
