package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds runtime configuration loaded from the config file and
// environment.
type Config struct {
	API APIConfig `mapstructure:"api"`
	// DBPath overrides the XDG default database location.
	DBPath string `mapstructure:"db_path"`
}

// APIConfig configures the remote breakdown provider. An empty key
// disables the remote call entirely and the builtin patterns are used.
type APIConfig struct {
	Key     string `mapstructure:"key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// Path returns the config file location.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".dayflow", "config.yaml")
}

// Load reads the config file, if present, and applies the
// DAYFLOW_API_KEY environment override. A missing file yields defaults.
func Load() (*Config, error) {
	return loadFrom(Path())
}

func loadFrom(path string) (*Config, error) {
	cfg := &Config{}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// A missing file just means defaults; a file that exists but cannot
	// be read or parsed would silently drop the user's settings, so it
	// surfaces as an error.
	switch err := v.ReadInConfig(); {
	case err == nil:
		if err := v.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if key := os.Getenv("DAYFLOW_API_KEY"); key != "" {
		cfg.API.Key = key
	}

	return cfg, nil
}
