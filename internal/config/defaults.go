package config

// Defaults reproducing the fixed layout of a bare `pagebuilder build`.
const (
	DefaultTitle           = "Bootstrap Framework Guide - Internship Task 2"
	DefaultLocale          = "en-US"
	DefaultTemplatesDir    = "src/templates"
	DefaultLayoutTemplate  = "layout.hbs"
	DefaultIndexTemplate   = "index.hbs"
	DefaultOutputDir       = "dist"
	DefaultOutputFile      = "index.html"
	DefaultPreviewPort     = 5173
	DefaultStaticDir       = "src"
	DefaultRefreshSchedule = "0 0 * * *"
)

func applyDefaults(cfg *Config) {
	if cfg.Site.Title == "" {
		cfg.Site.Title = DefaultTitle
	}
	if cfg.Site.Locale == "" {
		cfg.Site.Locale = DefaultLocale
	}
	if cfg.Templates.Directory == "" {
		cfg.Templates.Directory = DefaultTemplatesDir
	}
	if cfg.Templates.Layout == "" {
		cfg.Templates.Layout = DefaultLayoutTemplate
	}
	if cfg.Templates.Index == "" {
		cfg.Templates.Index = DefaultIndexTemplate
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = DefaultOutputDir
	}
	if cfg.Output.File == "" {
		cfg.Output.File = DefaultOutputFile
	}
	if cfg.Preview.Port == 0 {
		cfg.Preview.Port = DefaultPreviewPort
	}
	if cfg.Preview.StaticDir == "" {
		cfg.Preview.StaticDir = DefaultStaticDir
	}
	if cfg.Preview.RefreshSchedule == "" {
		cfg.Preview.RefreshSchedule = DefaultRefreshSchedule
	}
}
