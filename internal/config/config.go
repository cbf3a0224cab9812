package config

import (
	"os"
	"strings"

	"github.com/wilbur182/portfolio/internal/features"
	"github.com/wilbur182/portfolio/internal/storage"
)

// Deployment designations. The navigation bar is only shown in development.
const (
	DeploymentDevelopment = "development"
	DeploymentProduction  = "production"
)

// DeploymentEnv overrides Config.Deployment when set.
const DeploymentEnv = "PORTFOLIO_DEPLOYMENT"

// Config is the root configuration structure.
type Config struct {
	Deployment string         `json:"deployment"`
	Storage    StorageConfig  `json:"storage"`
	Features   FeaturesConfig `json:"features"`
	UI         UIConfig       `json:"ui"`
	Crew       CrewConfig     `json:"crew"`
	Keymap     KeymapConfig   `json:"keymap"`
}

// StorageConfig selects where persisted site state lives.
type StorageConfig struct {
	Backend string `json:"backend"` // "file", "sqlite" or "memory"
	Dir     string `json:"dir"`     // supports ~ expansion; empty = config dir
}

// FeaturesConfig holds feature flag settings.
type FeaturesConfig struct {
	// EnvPrefix prefixes the environment variable of every flag.
	EnvPrefix string `json:"envPrefix"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowFooter bool   `json:"showFooter"`
	Theme      string `json:"theme"`
}

// CrewConfig configures the crew generator page.
type CrewConfig struct {
	URL string `json:"url"`
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides,omitempty"` // key -> action
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Deployment: DeploymentProduction,
		Storage: StorageConfig{
			Backend: storage.BackendFile,
		},
		Features: FeaturesConfig{
			EnvPrefix: features.DefaultEnvPrefix,
		},
		UI: UIConfig{
			ShowFooter: true,
			Theme:      "default",
		},
		Crew: CrewConfig{
			URL: "https://crew.example.dev/",
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
	}
}

// Validate checks the configuration for errors, repairing values that have
// a sensible fallback.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case storage.BackendFile, storage.BackendSQLite, storage.BackendMemory:
	case "":
		c.Storage.Backend = storage.BackendFile
	default:
		return &ValidationError{Field: "storage.backend", Value: c.Storage.Backend}
	}
	if c.Deployment == "" {
		c.Deployment = DeploymentProduction
	}
	if c.Features.EnvPrefix == "" {
		c.Features.EnvPrefix = features.DefaultEnvPrefix
	}
	return nil
}

// ApplyEnv applies environment overrides to c.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(DeploymentEnv); ok && strings.TrimSpace(v) != "" {
		c.Deployment = strings.ToLower(strings.TrimSpace(v))
	}
}

// IsDevelopment reports whether the site runs under the development designation.
func (c *Config) IsDevelopment() bool {
	return c.Deployment == DeploymentDevelopment
}

// ValidationError reports an invalid configuration value.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Value
}
