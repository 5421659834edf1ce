package parser

import (
	"testing"
)

func TestClassifyMessage(t *testing.T) {
	tests := []struct {
		name         string
		message      string
		wantKind     ViolationKind
		wantProperty string
	}{
		{
			name:         "additional property",
			message:      "additional properties 'extra' not allowed",
			wantKind:     KindAdditionalProperties,
			wantProperty: "extra",
		},
		{
			name:         "multiple additional properties picks first",
			message:      "additional properties 'one', 'two' not allowed",
			wantKind:     KindAdditionalProperties,
			wantProperty: "one",
		},
		{
			name:         "missing property",
			message:      "missing property 'service'",
			wantKind:     KindRequired,
			wantProperty: "service",
		},
		{
			name:         "missing properties picks first",
			message:      "missing properties 'service', 'version'",
			wantKind:     KindRequired,
			wantProperty: "service",
		},
		{
			name:     "type mismatch",
			message:  "got number, want string",
			wantKind: KindType,
		},
		{
			name:     "unknown shape",
			message:  "length must be >= 5, but got 3",
			wantKind: KindGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, property := classifyMessage(tt.message)
			if kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", kind, tt.wantKind)
			}
			if property != tt.wantProperty {
				t.Errorf("property = %q, want %q", property, tt.wantProperty)
			}
		})
	}
}

func TestCleanMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "header and prefix stripped",
			message: "jsonschema validation failed with 'http://jsonls.invalid/schema.json#'\n- at '/b': got number, want string",
			want:    "got number, want string",
		},
		{
			name:    "plain message untouched",
			message: "got number, want string",
			want:    "got number, want string",
		},
		{
			name:    "empty falls back to generic",
			message: "jsonschema validation failed",
			want:    "schema validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanMessage(tt.message); got != tt.want {
				t.Errorf("cleanMessage(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestExtractViolationsForeignError(t *testing.T) {
	if got := ExtractViolations(errFake{}); got != nil {
		t.Errorf("expected nil for a non-validation error, got %v", got)
	}
}

type errFake struct{}

func (errFake) Error() string { return "fake" }
