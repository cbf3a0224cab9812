package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that drops empty values.
type saveConfig struct {
	Deployment string            `json:"deployment,omitempty"`
	Storage    saveStorageConfig `json:"storage"`
	Features   saveFeatures      `json:"features"`
	UI         saveUIConfig      `json:"ui"`
	Crew       saveCrewConfig    `json:"crew"`
	Keymap     KeymapConfig      `json:"keymap"`
}

type saveStorageConfig struct {
	Backend string `json:"backend,omitempty"`
	Dir     string `json:"dir,omitempty"`
}

type saveFeatures struct {
	EnvPrefix string `json:"envPrefix,omitempty"`
}

type saveUIConfig struct {
	ShowFooter *bool  `json:"showFooter,omitempty"`
	Theme      string `json:"theme,omitempty"`
}

type saveCrewConfig struct {
	URL string `json:"url,omitempty"`
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Deployment: cfg.Deployment,
		Storage: saveStorageConfig{
			Backend: cfg.Storage.Backend,
			Dir:     cfg.Storage.Dir,
		},
		Features: saveFeatures{
			EnvPrefix: cfg.Features.EnvPrefix,
		},
		UI: saveUIConfig{
			ShowFooter: &cfg.UI.ShowFooter,
			Theme:      cfg.UI.Theme,
		},
		Crew: saveCrewConfig{
			URL: cfg.Crew.URL,
		},
		Keymap: cfg.Keymap,
	}
}

// Save writes the config to ConfigPath.
func Save(cfg *Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path.
func SaveTo(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	sc := toSaveConfig(cfg)
	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
