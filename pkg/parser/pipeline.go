package parser

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/jsonls/jsonls/pkg/protocol"
)

// Pipeline turns raw document text plus a schema into editor
// diagnostics. It holds no mutable state; a single Pipeline may be used
// from any number of goroutines.
//
// The error taxonomy is strict: anything wrong with the document comes
// back as a diagnostic, anything wrong with the system's own
// configuration (an uncompilable schema) comes back as an error.
type Pipeline struct {
	resolver RangeResolver
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithResolver replaces the default pointer-heuristic range resolver.
func WithResolver(r RangeResolver) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.resolver = r
		}
	}
}

// NewPipeline builds a Pipeline with the default zero-width heuristic
// resolver unless an option overrides it.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{resolver: PointerRangeResolver{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Validate parses text, compiles schemaDoc, and returns the document's
// diagnostics. A syntax error in the document short-circuits schema
// validation and is returned as the sole diagnostic; it is the expected
// output, not a failure. The only error return is a schema that does
// not compile (ErrSchemaInvalid).
func (p *Pipeline) Validate(schemaDoc any, text string) ([]protocol.Diagnostic, error) {
	outcome := ParseDocument(text)
	if !outcome.Valid() {
		return []protocol.Diagnostic{*outcome.Diagnostic}, nil
	}

	schema, err := CompileSchema(schemaDoc)
	if err != nil {
		return nil, err
	}
	return p.validateValue(schema, outcome.Value, text), nil
}

// ValidateCompiled is Validate for callers that already hold a compiled
// schema, typically from the schema store. It cannot fail.
func (p *Pipeline) ValidateCompiled(schema *jsonschema.Schema, text string) []protocol.Diagnostic {
	outcome := ParseDocument(text)
	if !outcome.Valid() {
		return []protocol.Diagnostic{*outcome.Diagnostic}
	}
	return p.validateValue(schema, outcome.Value, text)
}

// validateValue runs the compiled schema over the parsed value and maps
// every violation to a diagnostic, in enumeration order. An empty result
// means the document satisfies the schema.
func (p *Pipeline) validateValue(schema *jsonschema.Schema, value any, text string) []protocol.Diagnostic {
	err := schema.Validate(value)
	if err == nil {
		return nil
	}

	vr, _ := p.resolver.(ViolationResolver)

	violations := ExtractViolations(err)
	diagnostics := make([]protocol.Diagnostic, 0, len(violations))
	for _, v := range violations {
		var rng protocol.Range
		if vr != nil {
			rng = vr.ResolveViolation(v, text)
		} else {
			rng = p.resolver.Resolve(v.Pointer, text)
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    rng,
			Severity: protocol.SeverityError,
			Message:  fmt.Sprintf("Path %s, Error: %s", v.Pointer, v.Message),
			Source:   v.Pointer,
		})
	}
	return diagnostics
}
