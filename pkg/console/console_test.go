package console

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatDiagnostic(t *testing.T) {
	tests := []struct {
		name     string
		diag     SourceDiagnostic
		expected []string // Substrings that should be present in output
	}{
		{
			name: "basic error with position",
			diag: SourceDiagnostic{
				Position: Position{
					File:   "app.json",
					Line:   5,
					Column: 10,
				},
				Type:    "error",
				Message: "Path /service, Error: got number, want string",
			},
			expected: []string{
				"app.json:5:10:",
				"error:",
				"Path /service, Error: got number, want string",
			},
		},
		{
			name: "warning with hint",
			diag: SourceDiagnostic{
				Position: Position{
					File:   "deploy.json",
					Line:   2,
					Column: 1,
				},
				Type:    "warning",
				Message: "deprecated field",
				Hint:    "use 'replicas' instead",
			},
			expected: []string{
				"deploy.json:2:1:",
				"warning:",
				"deprecated field",
				"hint:",
				"use 'replicas' instead",
			},
		},
		{
			name: "error with context",
			diag: SourceDiagnostic{
				Position: Position{
					File:   "app.json",
					Line:   3,
					Column: 5,
				},
				Type:    "error",
				Message: "unexpected end of JSON input",
				Context: []string{
					"{",
					"  \"service\": \"api\",",
					"  \"runtime\": {",
				},
			},
			expected: []string{
				"app.json:3:5:",
				"error:",
				"unexpected end of JSON input",
				"2 |",
				"3 |",
				"4 |",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := FormatDiagnostic(tt.diag)

			for _, expected := range tt.expected {
				if !strings.Contains(output, expected) {
					t.Errorf("Expected output to contain '%s', but got:\n%s", expected, output)
				}
			}
		})
	}
}

func TestFormatSuccessMessage(t *testing.T) {
	output := FormatSuccessMessage("validation passed")
	if !strings.Contains(output, "validation passed") {
		t.Errorf("Expected output to contain message, got: %s", output)
	}
	if !strings.Contains(output, "✓") {
		t.Errorf("Expected output to contain checkmark, got: %s", output)
	}
}

func TestFormatInfoMessage(t *testing.T) {
	output := FormatInfoMessage("processing file")
	if !strings.Contains(output, "processing file") {
		t.Errorf("Expected output to contain message, got: %s", output)
	}
	if !strings.Contains(output, "ℹ") {
		t.Errorf("Expected output to contain info icon, got: %s", output)
	}
}

func TestFormatWarningMessage(t *testing.T) {
	output := FormatWarningMessage("schema not declared")
	if !strings.Contains(output, "schema not declared") {
		t.Errorf("Expected output to contain message, got: %s", output)
	}
	if !strings.Contains(output, "⚠") {
		t.Errorf("Expected output to contain warning icon, got: %s", output)
	}
}

func TestRenderTable(t *testing.T) {
	tests := []struct {
		name     string
		config   TableConfig
		expected []string // Substrings that should be present in output
	}{
		{
			name: "simple table",
			config: TableConfig{
				Headers: []string{"Name", "Source"},
				Rows: [][]string{
					{"service", "embedded"},
					{"deploy", "schemas/deploy.schema.json"},
				},
			},
			expected: []string{
				"Name",
				"Source",
				"service",
				"embedded",
				"deploy",
				"schemas/deploy.schema.json",
			},
		},
		{
			name: "table with title",
			config: TableConfig{
				Title:   "Available Schemas",
				Headers: []string{"Name"},
				Rows: [][]string{
					{"service"},
				},
			},
			expected: []string{
				"Available Schemas",
				"Name",
				"service",
			},
		},
		{
			name: "empty table",
			config: TableConfig{
				Headers: []string{},
				Rows:    [][]string{},
			},
			expected: []string{}, // Should return empty string
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := RenderTable(tt.config)

			if len(tt.expected) == 0 {
				if output != "" {
					t.Errorf("Expected empty output for empty table config, got: %s", output)
				}
				return
			}

			for _, expected := range tt.expected {
				if !strings.Contains(output, expected) {
					t.Errorf("Expected output to contain '%s', but got:\n%s", expected, output)
				}
			}
		})
	}
}

func TestToRelativePath(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		expectedFunc func(string) bool
	}{
		{
			name: "relative path unchanged",
			path: "app.json",
			expectedFunc: func(result string) bool {
				return result == "app.json"
			},
		},
		{
			name: "nested relative path unchanged",
			path: "conf/app.json",
			expectedFunc: func(result string) bool {
				return result == "conf/app.json"
			},
		},
		{
			name: "absolute path converted to relative",
			path: "/tmp/app.json",
			expectedFunc: func(result string) bool {
				return !strings.HasPrefix(result, "/") && strings.HasSuffix(result, "app.json")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToRelativePath(tt.path)
			if !tt.expectedFunc(result) {
				t.Errorf("ToRelativePath(%s) = %s, but validation failed", tt.path, result)
			}
		})
	}
}

func TestFormatDiagnosticWithAbsolutePaths(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "app.json")

	diag := SourceDiagnostic{
		Position: Position{
			File:   tmpFile,
			Line:   5,
			Column: 10,
		},
		Type:    "error",
		Message: "invalid syntax",
	}

	output := FormatDiagnostic(diag)

	if !strings.Contains(output, "app.json:5:10:") {
		t.Errorf("Expected output to contain relative file path with line:column, got: %s", output)
	}

	lines := strings.Split(output, "\n")
	if strings.HasPrefix(lines[0], "/") {
		t.Errorf("Expected output to start with relative path, but found absolute path: %s", lines[0])
	}

	if !strings.Contains(output, "invalid syntax") {
		t.Errorf("Expected output to contain error message, got: %s", output)
	}
}
