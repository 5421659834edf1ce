package parser

import (
	"encoding/json"

	"github.com/jsonls/jsonls/pkg/protocol"
)

// ParseOutcome is the result of parsing document text: exactly one of
// Value (the decoded JSON) or Diagnostic (a ready-made syntax error) is
// set.
type ParseOutcome struct {
	Value      any
	Diagnostic *protocol.Diagnostic
}

// Valid reports whether the document parsed.
func (o ParseOutcome) Valid() bool {
	return o.Diagnostic == nil
}

// ParseDocument parses raw document text as JSON. A syntax failure is
// converted directly into a diagnostic using the position the decoder
// itself reports; that position is exact, so this path never goes
// through the pointer heuristic.
func ParseDocument(text string) ParseOutcome {
	var value any
	err := json.Unmarshal([]byte(text), &value)
	if err == nil {
		return ParseOutcome{Value: value}
	}

	line, column, message := syntaxErrorPosition(err, text)

	// The decoder reports 1-based coordinates; the protocol wants
	// 0-based. Subtraction saturates so a report at column 0 cannot
	// wrap around.
	zeroLine := uint32(0)
	if line > 0 {
		zeroLine = uint32(line - 1)
	}
	endChar := uint32(0)
	if column > 1 {
		endChar = uint32(column - 1)
	}

	return ParseOutcome{Diagnostic: &protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: zeroLine, Character: 0},
			End:   protocol.Position{Line: zeroLine, Character: endChar},
		},
		Severity: protocol.SeverityError,
		Message:  message,
	}}
}
