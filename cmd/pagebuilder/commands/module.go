package commands

import (
	"fmt"
	"log/slog"
	"os"

	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/logfields"
	"git.home.luguber.info/inful/pagebuilder/internal/pipeline"
)

// ModuleCmd prints the rendered page wrapped as `export default "<html>"`.
type ModuleCmd struct {
	Output string `short:"o" name:"output" help:"Write the module to this file instead of stdout"`
}

func (m *ModuleCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	src, err := pipeline.New(cfg, pipeline.WithLogger(slog.Default())).Module()
	if err != nil {
		return err
	}

	if m.Output == "" {
		_, err := fmt.Fprintln(g.out(), src)
		return err
	}
	if err := os.WriteFile(m.Output, []byte(src+"\n"), 0o644); err != nil { // #nosec G306 -- generated source is world-readable
		return ferrors.FileSystemError("failed to write module").
			WithContext("path", m.Output).
			WithCause(err).
			Build()
	}
	slog.Info("Module written", logfields.Output(m.Output))
	return nil
}
