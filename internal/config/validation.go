package config

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/language"

	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
)

// Validate checks a defaulted configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Site.Title) == "" {
		return ferrors.ConfigError("site.title must not be blank").Build()
	}
	if _, err := language.Parse(c.Site.Locale); err != nil {
		return ferrors.ConfigError("site.locale is not a valid language tag").
			WithContext("locale", c.Site.Locale).
			WithCause(err).
			Build()
	}
	if c.Templates.Layout == c.Templates.Index {
		return ferrors.ConfigError("templates.layout and templates.index must differ").
			WithContext("template", c.Templates.Layout).
			Build()
	}
	if !isPlainFileName(c.Output.File) {
		return ferrors.ConfigError("output.file must be a plain file name").
			WithContext("file", c.Output.File).
			Build()
	}
	if c.Preview.Port < 1 || c.Preview.Port > 65535 {
		return ferrors.ConfigError("preview.port out of range").
			WithContext("port", c.Preview.Port).
			Build()
	}
	return nil
}

// OutputPath is the full path of the output artifact.
func (c *Config) OutputPath() string {
	return filepath.Join(c.Output.Directory, c.Output.File)
}

func isPlainFileName(name string) bool {
	return name != "" && name != "." && name != ".." && filepath.Base(name) == name && !strings.ContainsAny(name, `/\`)
}
