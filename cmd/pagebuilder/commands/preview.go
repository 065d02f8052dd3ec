package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/pagebuilder/internal/config"
	"git.home.luguber.info/inful/pagebuilder/internal/preview"
)

// PreviewCmd starts the development server.
type PreviewCmd struct {
	Port         int  `name:"port" help:"Override preview.port"`
	NoLiveReload bool `name:"no-live-reload" help:"Disable LiveReload SSE and script injection for preview."`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	sigctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(root, p.overrides()...)
	if err != nil {
		return err
	}
	return preview.New(cfg, preview.WithLogger(slog.Default())).Run(sigctx)
}

func (p *PreviewCmd) overrides() []func(*config.Config) {
	var out []func(*config.Config)
	if p.Port != 0 {
		out = append(out, func(c *config.Config) { c.Preview.Port = p.Port })
	}
	if p.NoLiveReload {
		out = append(out, func(c *config.Config) {
			off := false
			c.Preview.LiveReload = &off
		})
	}
	return out
}
