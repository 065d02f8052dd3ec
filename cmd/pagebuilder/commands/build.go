package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/pagebuilder/internal/config"
	"git.home.luguber.info/inful/pagebuilder/internal/logfields"
	"git.home.luguber.info/inful/pagebuilder/internal/pipeline"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Title        string `name:"title" help:"Override site.title"`
	TemplatesDir string `name:"templates-dir" help:"Override templates.directory"`
	OutputDir    string `short:"o" name:"output-dir" help:"Override output.directory"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root, b.overrides()...)
	if err != nil {
		return err
	}

	report, err := pipeline.New(cfg, pipeline.WithLogger(slog.Default())).Build()
	if err != nil {
		return err
	}
	slog.Info("Build complete",
		logfields.BuildID(report.ID),
		logfields.Output(report.OutputPath),
		logfields.Duration(report.Duration()))
	_, _ = fmt.Fprintf(g.out(), "Wrote %s (%d bytes)\n", report.OutputPath, report.Bytes)
	return nil
}

func (b *BuildCmd) overrides() []func(*config.Config) {
	var out []func(*config.Config)
	if b.Title != "" {
		out = append(out, func(c *config.Config) { c.Site.Title = b.Title })
	}
	if b.TemplatesDir != "" {
		out = append(out, func(c *config.Config) { c.Templates.Directory = b.TemplatesDir })
	}
	if b.OutputDir != "" {
		out = append(out, func(c *config.Config) { c.Output.Directory = b.OutputDir })
	}
	return out
}
