package templates

import (
	"os"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
)

// WriteOutput writes content to dir/file, creating dir and its parents if
// needed and replacing any existing file. The write is not atomic.
func WriteOutput(dir, file, content string) (string, error) {
	if dir == "" {
		return "", ferrors.ValidationError("output directory is required").Build()
	}
	if file == "" || file == "." || file == ".." || strings.ContainsAny(file, `/\`) {
		return "", ferrors.ValidationError("output file must be a plain file name").
			WithContext("file", file).
			Build()
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", ferrors.FileSystemError("create output directory").
			WithContext("path", dir).
			WithCause(err).
			Build()
	}

	fullPath := filepath.Join(dir, file)
	// #nosec G306 -- generated site output is meant to be world-readable.
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		return "", ferrors.FileSystemError("write output file").
			WithContext("path", fullPath).
			WithCause(err).
			Build()
	}
	return fullPath, nil
}
