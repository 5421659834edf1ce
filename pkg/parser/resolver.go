package parser

import "github.com/jsonls/jsonls/pkg/protocol"

// RangeResolver translates a JSON Pointer into a displayable range in
// the document text. Implementations must never fail: when a pointer
// cannot be resolved they return the zero Range rather than an error,
// trading precision for availability.
type RangeResolver interface {
	Resolve(pointer, text string) protocol.Range
}

// ViolationResolver is an optional upgrade of RangeResolver. A resolver
// that also sees the violation's kind and offending property can choose
// a sharper highlight (the missing key's parent, the extra key itself).
// The pipeline uses it when the configured resolver implements it.
type ViolationResolver interface {
	RangeResolver
	ResolveViolation(v Violation, text string) protocol.Range
}

// PointerRangeResolver is the default resolver: LocatePointer for the
// offset, LineOf for the line, and a zero-width range at character 0.
// Expanding the range to cover the erroring token is the job of the
// span-aware resolver, which wraps this one as its fallback.
type PointerRangeResolver struct{}

// Resolve implements RangeResolver.
func (PointerRangeResolver) Resolve(pointer, text string) protocol.Range {
	offset := LocatePointer(pointer, text)
	line := LineOf(text, offset)
	pos := protocol.Position{Line: line, Character: 0}
	return protocol.Range{Start: pos, End: pos}
}
