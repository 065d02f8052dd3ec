package config

import "os"

// Environment variables overriding the file configuration.
const (
	EnvTitle        = "PAGEBUILDER_TITLE"
	EnvLocale       = "PAGEBUILDER_LOCALE"
	EnvTemplatesDir = "PAGEBUILDER_TEMPLATES_DIR"
	EnvOutputDir    = "PAGEBUILDER_OUTPUT_DIR"
)

func applyEnvOverrides(cfg *Config) {
	overrides := []struct {
		key    string
		target *string
	}{
		{EnvTitle, &cfg.Site.Title},
		{EnvLocale, &cfg.Site.Locale},
		{EnvTemplatesDir, &cfg.Templates.Directory},
		{EnvOutputDir, &cfg.Output.Directory},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok && v != "" {
			*o.target = v
		}
	}
}
