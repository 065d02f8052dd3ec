// Package scaffold holds the starter templates written by `pagebuilder init`.
package scaffold

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
)

const root = "files/templates"

// Templates contains the starter layout and index templates.
//
//go:embed files/templates/*.hbs
var Templates embed.FS

// WriteTemplates copies the starter templates into dir and returns the
// paths written. Existing files are skipped unless force is set.
func WriteTemplates(dir string, force bool) (written []string, err error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create templates directory").
			WithContext("path", dir).
			Build()
	}
	err = fs.WalkDir(Templates, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		out := filepath.Join(dir, path.Base(p))
		if !force {
			if _, statErr := os.Stat(out); statErr == nil {
				return nil
			} else if !errors.Is(statErr, fs.ErrNotExist) {
				return ferrors.WrapError(statErr, ferrors.CategoryFileSystem, "failed to inspect template").
					WithContext("path", out).
					Build()
			}
		}
		content, err := Templates.ReadFile(p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, content, 0o600); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write template").
				WithContext("path", out).
				Build()
		}
		written = append(written, out)
		return nil
	})
	return written, err
}
