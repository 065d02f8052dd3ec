// Package templates implements the rendering pipeline's building blocks:
// loading the layout and index resources, rendering them with the Handlebars
// engine, and writing the output artifact.
//
// Compose is the single pure entry point shared by every adapter (build,
// ES module, HTML transform); loading and writing are kept separate so the
// adapters own their I/O.
package templates

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
)

// Resource is a named template text read from disk.
type Resource struct {
	Name string
	Path string
	Text string
}

// LoadResource reads one template resource from dir.
func LoadResource(dir, name string) (Resource, error) {
	path := filepath.Join(dir, name)
	// #nosec G304 -- dir and name come from validated configuration.
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Resource{}, ferrors.NotFoundError("template resource not found").
				WithContext("template", name).
				WithContext("path", path).
				WithCause(err).
				Build()
		}
		return Resource{}, ferrors.FileSystemError("failed to read template resource").
			WithContext("template", name).
			WithContext("path", path).
			WithCause(err).
			Build()
	}
	return Resource{Name: name, Path: path, Text: string(data)}, nil
}

// LoadResources reads the layout and then the index resource. Any failure
// aborts before the second read.
func LoadResources(dir, layoutName, indexName string) (layout, index Resource, err error) {
	layout, err = LoadResource(dir, layoutName)
	if err != nil {
		return Resource{}, Resource{}, err
	}
	index, err = LoadResource(dir, indexName)
	if err != nil {
		return Resource{}, Resource{}, err
	}
	return layout, index, nil
}
