package templates

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
)

func TestFormatLongDate(t *testing.T) {
	day := time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		locale string
		want   string
	}{
		{"en-US", "January 1, 2024"},
		{"en", "January 1, 2024"},
		{"en-GB", "1 January 2024"},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			got, err := FormatLongDate(day, tt.locale)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatLongDate_UnsupportedLocale(t *testing.T) {
	_, err := FormatLongDate(time.Now(), "ja-JP")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	_, err = FormatLongDate(time.Now(), "???")
	require.Error(t, err)
}

func TestNewPageData_UsesInjectedClock(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC))

	data, err := NewPageData("Guide", clock, "en-US")
	require.NoError(t, err)
	assert.Equal(t, PageData{Title: "Guide", CurrentDate: "December 31, 2025"}, data)

	clock.Advance(2 * time.Minute)
	data, err = NewPageData("Guide", clock, "en-US")
	require.NoError(t, err)
	assert.Equal(t, "January 1, 2026", data.CurrentDate)
}

func TestPageDataContexts(t *testing.T) {
	d := PageData{Title: "T", CurrentDate: "D"}

	assert.Equal(t, map[string]any{"title": "T", "currentDate": "D"}, d.IndexContext())
	assert.Equal(t, map[string]any{"title": "T", "body": "B"}, d.LayoutContext("B"))
}
