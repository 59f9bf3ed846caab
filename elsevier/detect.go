package elsevier

import (
	"strings"

	"github.com/tsawler/elsxml/format"
)

// Detect reports whether data is an Elsevier article. A non-empty filename
// must end in ".xml"; the content must carry the exact article namespace
// declaration.
func Detect(data []byte, filename string) bool {
	if filename != "" && !strings.HasSuffix(filename, ".xml") {
		return false
	}
	return format.IsElsevier(data)
}
