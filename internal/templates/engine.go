package templates

import (
	"github.com/aymerick/raymond"

	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
)

// Engine renders Handlebars templates.
//
// Placeholder policy follows Handlebars:
//   - {{name}} is HTML-escaped
//   - {{{name}}} is inserted verbatim
//   - a name missing from the context renders as the empty string
type Engine struct {
	helpers map[string]any
}

// NewEngine returns an engine with the built-in helpers registered.
func NewEngine() *Engine {
	return &Engine{helpers: builtinHelpers()}
}

// Render parses source and executes it against ctx.
func (e *Engine) Render(name, source string, ctx map[string]any) (string, error) {
	tpl, err := raymond.Parse(source)
	if err != nil {
		return "", ferrors.TemplateError("template syntax error").
			WithContext("template", name).
			WithCause(err).
			Build()
	}
	tpl.RegisterHelpers(e.helpers)

	out, err := tpl.Exec(ctx)
	if err != nil {
		return "", ferrors.TemplateError("template execution failed").
			WithContext("template", name).
			WithCause(err).
			Build()
	}
	return out, nil
}
