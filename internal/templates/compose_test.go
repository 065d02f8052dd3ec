package templates

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
)

func TestCompose_EmbedsBody(t *testing.T) {
	e := NewEngine()

	out, err := e.Compose("<html>{{body}}</html>", "Hello {{title}}", PageData{Title: "X"})
	require.NoError(t, err)
	assert.Equal(t, "<html>Hello X</html>", out)
}

func TestCompose_GuidePage(t *testing.T) {
	e := NewEngine()
	data := PageData{Title: "Guide", CurrentDate: "January 1, 2024"}

	out, err := e.Compose("<body>{{{body}}}</body>", "<h1>{{title}}</h1><p>{{currentDate}}</p>", data)
	require.NoError(t, err)
	assert.Equal(t, "<body><h1>Guide</h1><p>January 1, 2024</p></body>", out)
}

func TestCompose_LayoutSeesTitleButNotDate(t *testing.T) {
	e := NewEngine()
	data := PageData{Title: "T", CurrentDate: "January 1, 2024"}

	out, err := e.Compose("<title>{{title}}</title>[{{currentDate}}]{{{body}}}", "<p>{{currentDate}}</p>", data)
	require.NoError(t, err)
	assert.Equal(t, "<title>T</title>[]<p>January 1, 2024</p>", out)
}

func TestCompose_BodyIsContiguousSubstring(t *testing.T) {
	e := NewEngine()
	data := PageData{Title: "Guide", CurrentDate: "March 3, 2025"}
	index := "<main><h1>{{title}}</h1><p>Updated {{currentDate}}</p></main>"

	body, err := e.Render("index", index, data.IndexContext())
	require.NoError(t, err)
	out, err := e.Compose("<!doctype html><html><body>{{{body}}}</body></html>", index, data)
	require.NoError(t, err)
	assert.Contains(t, out, body)
}

func TestCompose_Deterministic(t *testing.T) {
	e := NewEngine()
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC))
	data, err := NewPageData("Guide", clock, "en-US")
	require.NoError(t, err)

	first, err := e.Compose("<body>{{{body}}}</body>", "{{title}} {{currentDate}}", data)
	require.NoError(t, err)
	second, err := e.Compose("<body>{{{body}}}</body>", "{{title}} {{currentDate}}", data)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "<body>Guide January 1, 2024</body>", first)
}

func TestCompose_IndexErrorStopsBeforeLayout(t *testing.T) {
	e := NewEngine()

	_, err := e.Compose("{{#if}}broken layout", "{{#each}}broken index", PageData{})
	require.Error(t, err)
	c, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	name, _ := c.Context().GetString("template")
	assert.Equal(t, "index", name)
}

func TestComposeResources_UsesResourceNames(t *testing.T) {
	e := NewEngine()
	layout := Resource{Name: "layout.hbs", Text: "{{#if title}}unclosed"}
	index := Resource{Name: "index.hbs", Text: "{{title}}"}

	_, err := e.ComposeResources(layout, index, PageData{Title: "X"})
	require.Error(t, err)
	c, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	name, _ := c.Context().GetString("template")
	assert.Equal(t, "layout.hbs", name)
}
