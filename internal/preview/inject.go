package preview

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ScriptTag returns the tag that loads the live reload client from src.
func ScriptTag(src string) string {
	return `<script async src="` + html.EscapeString(src) + `"></script>`
}

// InjectLiveReload inserts the client script tag before the last </body>
// end tag of page. Pages without a body end tag get the tag appended.
// Everything else is returned byte-for-byte unchanged.
func InjectLiveReload(page, src string) string {
	at := lastBodyEnd(page)
	tag := ScriptTag(src)
	if at < 0 {
		return page + tag
	}
	var b strings.Builder
	b.Grow(len(page) + len(tag))
	b.WriteString(page[:at])
	b.WriteString(tag)
	b.WriteString(page[at:])
	return b.String()
}

// lastBodyEnd returns the byte offset of the last </body> token, or -1.
func lastBodyEnd(page string) int {
	z := html.NewTokenizer(bytes.NewReader([]byte(page)))
	offset, found := 0, -1
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if !errors.Is(z.Err(), io.EOF) {
				return -1
			}
			return found
		}
		if tt == html.EndTagToken {
			if name, _ := z.TagName(); string(name) == "body" {
				found = offset
			}
		}
		offset += len(z.Raw())
	}
}
