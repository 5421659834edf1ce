package spanmap

import (
	"github.com/jsonls/jsonls/pkg/parser"
	"github.com/jsonls/jsonls/pkg/protocol"
)

// Resolver resolves violation ranges through the AST and falls back to
// the pointer heuristic when the AST route yields nothing, so it keeps
// the never-fails contract of parser.RangeResolver.
type Resolver struct {
	Fallback parser.RangeResolver
}

// NewResolver builds a Resolver backed by the default heuristic.
func NewResolver() *Resolver {
	return &Resolver{Fallback: parser.PointerRangeResolver{}}
}

// Resolve implements parser.RangeResolver for bare pointers.
func (r *Resolver) Resolve(pointer, text string) protocol.Range {
	v := parser.Violation{Pointer: pointer, Segments: parser.PointerSegments(pointer)}
	return r.ResolveViolation(v, text)
}

// ResolveViolation implements parser.ViolationResolver.
func (r *Resolver) ResolveViolation(v parser.Violation, text string) protocol.Range {
	if span, ok := Map(text, v); ok {
		return span.Range
	}
	if r.Fallback != nil {
		return r.Fallback.Resolve(v.Pointer, text)
	}
	return protocol.Range{}
}
