package templates

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadResources(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "layout.hbs", "<body>{{{body}}}</body>")
	writeTemplate(t, dir, "index.hbs", "<h1>{{title}}</h1>")

	layout, index, err := LoadResources(dir, "layout.hbs", "index.hbs")
	require.NoError(t, err)
	assert.Equal(t, "layout.hbs", layout.Name)
	assert.Equal(t, filepath.Join(dir, "layout.hbs"), layout.Path)
	assert.Equal(t, "<body>{{{body}}}</body>", layout.Text)
	assert.Equal(t, "<h1>{{title}}</h1>", index.Text)
}

func TestLoadResources_MissingLayout(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "index.hbs", "<h1>{{title}}</h1>")

	_, _, err := LoadResources(dir, "layout.hbs", "index.hbs")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	c, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	name, _ := c.Context().GetString("template")
	assert.Equal(t, "layout.hbs", name)
}

func TestLoadResources_MissingIndex(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "layout.hbs", "{{{body}}}")

	_, _, err := LoadResources(dir, "layout.hbs", "index.hbs")
	require.Error(t, err)
	c, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	name, _ := c.Context().GetString("template")
	assert.Equal(t, "index.hbs", name)
}

func TestLoadResource_DirectoryIsIOError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "layout.hbs"), 0o750))

	_, err := LoadResource(dir, "layout.hbs")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
}

func TestLoadResource_RereadsEachCall(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "index.hbs", "one")
	first, err := LoadResource(dir, "index.hbs")
	require.NoError(t, err)

	writeTemplate(t, dir, "index.hbs", "two")
	second, err := LoadResource(dir, "index.hbs")
	require.NoError(t, err)

	assert.Equal(t, "one", first.Text)
	assert.Equal(t, "two", second.Text)
}
