package schemas

import (
	"encoding/json"
	"regexp"
	"strings"
)

// shebangRe matches a shebang-style schema declaration on the very
// first line of a document: #$schema IDENTIFIER
var shebangRe = regexp.MustCompile(`^#\$schema\s+(\S+)`)

// ExtractRef returns the schema name a document declares for itself,
// trying the shebang form first and falling back to a top-level
// "$schema" member. The second return is false when the document
// declares nothing.
//
// A "$schema" value that looks like a URL is reduced to its last path
// element without the schema file suffix, so both "service" and
// "https://example.com/schemas/service.schema.json" resolve to the
// store key "service".
func ExtractRef(text string) (string, bool) {
	if first, _, _ := strings.Cut(text, "\n"); first != "" {
		if m := shebangRe.FindStringSubmatch(first); len(m) > 1 {
			return normalizeRef(m[1]), true
		}
	}

	var doc struct {
		Schema string `json:"$schema"`
	}
	if err := json.Unmarshal([]byte(text), &doc); err == nil && doc.Schema != "" {
		return normalizeRef(doc.Schema), true
	}
	return "", false
}

func normalizeRef(ref string) string {
	if i := strings.LastIndexByte(ref, '/'); i >= 0 {
		ref = ref[i+1:]
	}
	ref = strings.TrimSuffix(ref, ".schema.json")
	return strings.TrimSuffix(ref, ".json")
}
