package templates

import (
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/text/language"

	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
)

// PageData is the render context shared by both passes.
type PageData struct {
	Title       string
	CurrentDate string
}

// IndexContext is the context of the first pass.
func (d PageData) IndexContext() map[string]any {
	return map[string]any{
		KeyTitle:       d.Title,
		KeyCurrentDate: d.CurrentDate,
	}
}

// LayoutContext is the context of the layout pass.
func (d PageData) LayoutContext(body string) map[string]any {
	return map[string]any{
		KeyTitle: d.Title,
		KeyBody:  body,
	}
}

// NewPageData builds the render context, reading the date from clock.
func NewPageData(title string, clock clockwork.Clock, locale string) (PageData, error) {
	date, err := FormatLongDate(clock.Now(), locale)
	if err != nil {
		return PageData{}, err
	}
	return PageData{Title: title, CurrentDate: date}, nil
}

var (
	supportedLocales = []language.Tag{language.AmericanEnglish, language.BritishEnglish}
	longDateLayouts  = []string{"January 2, 2006", "2 January 2006"}
	localeMatcher    = language.NewMatcher(supportedLocales)
)

// FormatLongDate formats t as long month name, day and year for locale.
func FormatLongDate(t time.Time, locale string) (string, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return "", ferrors.ConfigError("invalid locale").
			WithContext("locale", locale).
			WithCause(err).
			Build()
	}
	_, idx, conf := localeMatcher.Match(tag)
	if conf == language.No {
		return "", ferrors.ConfigError("unsupported locale").
			WithContext("locale", locale).
			Build()
	}
	return t.Format(longDateLayouts[idx]), nil
}
