package parser

import "strings"

// LocatePointer estimates the byte offset in text where the value named
// by a JSON Pointer begins. It is a text heuristic, not a structural
// walk: each pointer segment is searched for as a literal substring in a
// suffix of the document that shrinks as segments are matched.
//
// The approximations are deliberate and documented:
//   - a segment can match unrelated text that merely contains it (a key
//     name inside an earlier string value, for example);
//   - numeric array indices almost never appear verbatim and degrade to
//     a no-op;
//   - repeated keys resolve to the first occurrence only.
//
// A segment that cannot be found is skipped rather than failing the
// lookup, so the function always returns an offset; an empty pointer
// returns 0. The result is good enough for a first highlight, nothing
// more.
func LocatePointer(pointer, text string) int {
	remaining := text
	cursor := 0

	for _, segment := range strings.Split(pointer, "/") {
		segment = unescapeSegment(segment)
		if segment == "" {
			continue
		}
		i := strings.Index(remaining, segment)
		if i < 0 {
			continue
		}
		cursor += i
		remaining = remaining[i:]
	}

	return cursor
}

// PointerSegments decodes an RFC 6901 pointer (e.g. "/runtime/ports/0")
// into its segments: ["runtime", "ports", "0"]. It returns nil for ""
// and "/".
func PointerSegments(pointer string) []string {
	if pointer == "" || pointer == "/" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	for i, p := range parts {
		parts[i] = unescapeSegment(p)
	}
	return parts
}

// JoinPointer is the inverse of PointerSegments.
func JoinPointer(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(escapeSegment(s))
	}
	return b.String()
}

// Unescape per RFC 6901: ~1 before ~0, escape in the opposite order.

func unescapeSegment(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}

func escapeSegment(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

// isIndex reports whether a pointer segment looks like an array index.
func isIndex(segment string) bool {
	if len(segment) == 0 {
		return false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
