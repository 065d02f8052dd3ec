package templates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// VirtualModuleID is the import id under which the rendered page is exposed
// to bundlers.
const VirtualModuleID = "virtual-template"

// VirtualModule wraps html in an ES module whose default export is the
// document string.
func VirtualModule(html string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(html); err != nil {
		return "", fmt.Errorf("encode module source: %w", err)
	}
	return "export default " + strings.TrimSuffix(buf.String(), "\n"), nil
}
