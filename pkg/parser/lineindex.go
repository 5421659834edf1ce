package parser

import "strings"

// LineOf returns the zero-based line number of the given byte offset in
// text, counted as the number of newlines strictly before the offset.
// Offsets outside the buffer are clamped, so the call never fails.
//
// This is O(offset) per call, which is fine: it runs once per diagnostic,
// not per byte of the document.
func LineOf(text string, offset int) uint32 {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	return uint32(strings.Count(text[:offset], "\n"))
}
