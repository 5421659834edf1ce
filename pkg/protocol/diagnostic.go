package protocol

// PublishDiagnosticsMethod is the notification used to push diagnostics
// to the client.
const PublishDiagnosticsMethod = "textDocument/publishDiagnostics"

// PublishDiagnosticsParams is the payload of a publishDiagnostics
// notification. Diagnostics must always be sent for a document, even when
// empty, so the client clears stale markers.
type PublishDiagnosticsParams struct {
	URI         DocumentURI  `json:"uri"`
	Version     *int         `json:"version,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Diagnostic is an error or warning anchored to a document range.
//
// Source carries the JSON Pointer of the violated instance location when
// the diagnostic came from schema validation; syntax errors leave it
// empty. Clients treat it as an opaque label.
type Diagnostic struct {
	Range    Range              `json:"range"`
	Severity DiagnosticSeverity `json:"severity,omitempty"`
	Message  string             `json:"message"`
	Source   string             `json:"source,omitempty"`
}

// DiagnosticSeverity follows the LSP numbering.
type DiagnosticSeverity int

const (
	SeverityError       DiagnosticSeverity = 1
	SeverityWarning     DiagnosticSeverity = 2
	SeverityInformation DiagnosticSeverity = 3
	SeverityHint        DiagnosticSeverity = 4
)
