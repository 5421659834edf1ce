package parser

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func schemaDoc(t *testing.T, schemaJSON string) any {
	t.Helper()
	var doc any
	if err := json.Unmarshal([]byte(schemaJSON), &doc); err != nil {
		t.Fatalf("bad test schema: %v", err)
	}
	return doc
}

const serviceSchemaJSON = `{
  "type": "object",
  "properties": {
    "service": { "type": "string" },
    "version": { "type": "string" },
    "runtime": {
      "type": "object",
      "properties": {
        "type": { "type": "string" }
      }
    }
  },
  "required": ["service"]
}`

func TestPipelineValidDocument(t *testing.T) {
	p := NewPipeline()
	text := `{"service": "api", "version": "1.2.3"}`

	diagnostics, err := p.Validate(schemaDoc(t, serviceSchemaJSON), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diagnostics) != 0 {
		t.Errorf("expected no diagnostics for a conforming document, got %d: %+v", len(diagnostics), diagnostics)
	}
}

func TestPipelineTypeViolation(t *testing.T) {
	p := NewPipeline()
	schema := schemaDoc(t, `{"type":"object","properties":{"b":{"type":"string"}}}`)
	text := `{"a":1,"b":2}`

	diagnostics, err := p.Validate(schema, text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diagnostics) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %+v", len(diagnostics), diagnostics)
	}

	d := diagnostics[0]
	if d.Source != "/b" {
		t.Errorf("source = %q, want %q", d.Source, "/b")
	}
	if !strings.HasPrefix(d.Message, "Path /b, Error: ") {
		t.Errorf("message = %q, want Path /b prefix", d.Message)
	}
	if d.Severity != 1 {
		t.Errorf("severity = %d, want error", d.Severity)
	}
}

func TestPipelineNestedViolationLine(t *testing.T) {
	p := NewPipeline()
	text := "{\n  \"service\": \"api\",\n  \"runtime\": {\n    \"type\": 5\n  }\n}"

	diagnostics, err := p.Validate(schemaDoc(t, serviceSchemaJSON), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diagnostics) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %+v", len(diagnostics), diagnostics)
	}

	d := diagnostics[0]
	if d.Source != "/runtime/type" {
		t.Errorf("source = %q, want %q", d.Source, "/runtime/type")
	}
	if d.Range.Start.Line != 3 {
		t.Errorf("start line = %d, want 3 (line of \"type\")", d.Range.Start.Line)
	}
}

func TestPipelineSyntaxErrorShortCircuits(t *testing.T) {
	p := NewPipeline()

	diagnostics, err := p.Validate(schemaDoc(t, serviceSchemaJSON), `{ "a": }`)
	if err != nil {
		t.Fatalf("a document problem must not be an error: %v", err)
	}
	if len(diagnostics) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", len(diagnostics))
	}
	if diagnostics[0].Source != "" {
		t.Errorf("syntax diagnostics carry no source, got %q", diagnostics[0].Source)
	}
	if diagnostics[0].Message == "" {
		t.Error("diagnostic message should not be empty")
	}
}

func TestPipelineInvalidSchemaIsError(t *testing.T) {
	p := NewPipeline()

	_, err := p.Validate(schemaDoc(t, `{"type": 12}`), `{"a":1}`)
	if err == nil {
		t.Fatal("expected an error for an uncompilable schema")
	}
	if !errors.Is(err, ErrSchemaInvalid) {
		t.Errorf("error should wrap ErrSchemaInvalid, got %v", err)
	}
}

func TestPipelineIdempotent(t *testing.T) {
	p := NewPipeline()
	schema := schemaDoc(t, serviceSchemaJSON)
	text := "{\n  \"version\": 3,\n  \"runtime\": {\n    \"type\": 5\n  }\n}"

	first, err := p.Validate(schema, text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.Validate(schema, text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("validation is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
	if len(first) == 0 {
		t.Error("expected diagnostics for a non-conforming document")
	}
}

func TestPipelineMalformedInputsDoNotPanic(t *testing.T) {
	p := NewPipeline()
	schema := schemaDoc(t, serviceSchemaJSON)

	inputs := []string{"{", "}", "{{}", "null", "[]", `{"key": }`, ""}
	for _, input := range inputs {
		diagnostics, err := p.Validate(schema, input)
		if err != nil {
			t.Errorf("input %q: unexpected error: %v", input, err)
			continue
		}
		if len(diagnostics) == 0 && (input == "null" || input == "[]") {
			// Syntactically valid but schema-violating inputs must
			// still produce diagnostics.
			t.Errorf("input %q: expected schema diagnostics", input)
		}
	}
}

func TestPipelineValidateCompiled(t *testing.T) {
	schema, err := CompileSchemaJSON([]byte(serviceSchemaJSON))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	p := NewPipeline()
	diagnostics := p.ValidateCompiled(schema, `{"service": 1}`)
	if len(diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(diagnostics))
	}
	if diagnostics[0].Source != "/service" {
		t.Errorf("source = %q, want /service", diagnostics[0].Source)
	}
}
