package templates

import (
	"bytes"

	"github.com/aymerick/raymond"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

func builtinHelpers() map[string]any {
	return map[string]any{
		"markdown": markdownHelper,
	}
}

// markdownHelper renders the block contents as Markdown:
//
//	{{#markdown}}# {{title}}{{/markdown}}
func markdownHelper(options *raymond.Options) raymond.SafeString {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(options.Fn()), &buf); err != nil {
		panic(err)
	}
	return raymond.SafeString(buf.String())
}
