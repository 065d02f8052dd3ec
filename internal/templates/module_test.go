package templates

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVirtualModule(t *testing.T) {
	html := "<body>\n  <h1 class=\"x\">A & B</h1>\n</body>"

	src, err := VirtualModule(html)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(src, "export default \""))
	assert.NotContains(t, src, "\n", "module must be a single line")
	assert.Contains(t, src, "<h1 class=\\\"x\\\">A & B</h1>", "markup must not be HTML-escaped")

	var decoded string
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(src, "export default ")), &decoded))
	assert.Equal(t, html, decoded)
}
