package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/pagebuilder/internal/config"
	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/scaffold"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool   `help:"Overwrite existing configuration file and templates"`
	Dir   string `name:"dir" help:"Project directory to initialize (config path is then <dir>/pagebuilder.yaml)"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	cfgPath := root.Config
	templatesDir := config.DefaultTemplatesDir
	if i.Dir != "" {
		if err := os.MkdirAll(i.Dir, 0o750); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create project directory").
				WithContext("path", i.Dir).
				Build()
		}
		cfgPath = filepath.Join(i.Dir, config.DefaultConfigFile)
		templatesDir = filepath.Join(i.Dir, config.DefaultTemplatesDir)
	}

	out := g.out()
	_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", cfgPath)
	if err := config.Init(cfgPath, i.Force); err != nil {
		return err
	}
	written, err := scaffold.WriteTemplates(templatesDir, i.Force)
	if err != nil {
		return err
	}
	for _, p := range written {
		_, _ = fmt.Fprintf(out, "  created %s\n", p)
	}
	_, _ = fmt.Fprintln(out, "initialized successfully")
	return nil
}
