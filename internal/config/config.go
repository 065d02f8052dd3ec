// Package config loads pagebuilder.yaml, applies .env and PAGEBUILDER_*
// overrides, fills defaults and validates the result.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
)

// DefaultConfigFile is the config path used when --config is not given.
const DefaultConfigFile = "pagebuilder.yaml"

// Config represents the application configuration.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Templates TemplatesConfig `yaml:"templates"`
	Output    OutputConfig    `yaml:"output"`
	Preview   PreviewConfig   `yaml:"preview"`
}

// SiteConfig holds the render context inputs.
type SiteConfig struct {
	Title  string `yaml:"title"`
	Locale string `yaml:"locale"` // BCP 47 tag used to format currentDate
}

// TemplatesConfig locates the two template resources.
type TemplatesConfig struct {
	Directory string `yaml:"directory"`
	Layout    string `yaml:"layout"`
	Index     string `yaml:"index"`
}

// OutputConfig locates the output artifact.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	File      string `yaml:"file"`
}

// PreviewConfig configures the development server.
type PreviewConfig struct {
	Port            int    `yaml:"port"`
	LiveReload      *bool  `yaml:"live_reload,omitempty"`
	StaticDir       string `yaml:"static_dir"`
	RefreshSchedule string `yaml:"refresh_schedule"` // cron expression; "-" disables
	Metrics         *bool  `yaml:"metrics,omitempty"`
}

// LiveReloadEnabled reports whether the preview server injects the live reload client.
func (p PreviewConfig) LiveReloadEnabled() bool {
	return p.LiveReload == nil || *p.LiveReload
}

// MetricsEnabled reports whether /metrics is served.
func (p PreviewConfig) MetricsEnabled() bool {
	return p.Metrics == nil || *p.Metrics
}

// Load loads configuration from configPath. A missing file at the default
// path yields the defaults; a missing explicit path is an error.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	cfg := &Config{}
	data, err := os.ReadFile(configPath) // #nosec G304 -- path comes from the operator
	switch {
	case err == nil:
		if err := decode(data, cfg); err != nil {
			return nil, ferrors.ConfigError("invalid configuration file").
				WithContext("path", configPath).
				WithCause(err).
				Build()
		}
	case errors.Is(err, fs.ErrNotExist) && configPath == DefaultConfigFile:
		slog.Debug("No configuration file found, using defaults", "path", configPath)
	case errors.Is(err, fs.ErrNotExist):
		return nil, ferrors.ConfigError("configuration file not found").
			WithContext("path", configPath).
			WithCause(err).
			Build()
	default:
		return nil, ferrors.FileSystemError("failed to read config file").
			WithContext("path", configPath).
			WithCause(err).
			Build()
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a configuration reproducing the fixed paths and title of a bare build.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func decode(data []byte, cfg *Config) error {
	expanded := os.ExpandEnv(string(data))
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

// loadEnvFiles loads the first readable of .env / .env.local. Existing
// process environment variables are never overwritten.
func loadEnvFiles() {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			slog.Warn("Failed to load env file", "path", envPath, "error", err)
			continue
		}
		slog.Debug("Loaded environment variables", "path", envPath)
		return
	}
}

// Init writes the default configuration to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return ferrors.FileSystemError("failed to write config file").
			WithContext("path", configPath).
			WithCause(err).
			Build()
	}
	return nil
}
