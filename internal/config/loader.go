package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/tidwall/jsonc"
)

const (
	appDir     = "portfolio"
	configFile = "config.json"
)

// testConfigPath overrides ConfigPath in tests.
var testConfigPath string

// SetTestConfigPath points ConfigPath at path. Tests only.
func SetTestConfigPath(path string) { testConfigPath = path }

// ResetTestConfigPath undoes SetTestConfigPath.
func ResetTestConfigPath() { testConfigPath = "" }

// ConfigDir returns ~/.config/portfolio.
func ConfigDir() string {
	if testConfigPath != "" {
		return filepath.Dir(testConfigPath)
	}
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDir)
}

// ConfigPath returns the path of the config file.
func ConfigPath() string {
	if testConfigPath != "" {
		return testConfigPath
	}
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, configFile)
}

// Load reads the config from ConfigPath. A missing file yields defaults.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config at path, which may contain comments and
// trailing commas. A missing file yields defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading %s: %w", path, err)
		default:
			if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// StorageDir returns the directory holding persisted site state.
func (c *Config) StorageDir() string {
	dir := c.Storage.Dir
	if dir == "" {
		return ConfigDir()
	}
	if strings.HasPrefix(dir, "~") {
		if expanded, err := homedir.Expand(dir); err == nil {
			return expanded
		}
	}
	return dir
}
