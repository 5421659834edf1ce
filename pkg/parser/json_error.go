package parser

import (
	"encoding/json"
	"strings"
)

// syntaxErrorPosition extracts 1-based line and column information from
// an encoding/json error. The decoder reports a byte offset rather than
// coordinates, so the offset is mapped back onto the text.
func syntaxErrorPosition(err error, text string) (line int, column int, message string) {
	var offset int64 = -1

	switch e := err.(type) {
	case *json.SyntaxError:
		offset = e.Offset
	case *json.UnmarshalTypeError:
		offset = e.Offset
	}

	if offset < 0 {
		// No positional information; anchor at the start of the document.
		return 1, 1, err.Error()
	}
	if offset > int64(len(text)) {
		offset = int64(len(text))
	}

	before := text[:offset]
	line = strings.Count(before, "\n") + 1
	lastNL := strings.LastIndexByte(before, '\n')
	column = int(offset) - lastNL // lastNL is -1 on the first line

	return line, column, err.Error()
}
