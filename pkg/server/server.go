// Package server implements the jsonls language server: a JSON-RPC
// loop over stdio that validates documents on open and change and
// publishes the resulting diagnostics.
package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/jsonls/jsonls/internal/spanmap"
	"github.com/jsonls/jsonls/pkg/constants"
	"github.com/jsonls/jsonls/pkg/parser"
	"github.com/jsonls/jsonls/pkg/protocol"
	"github.com/jsonls/jsonls/pkg/schemas"
)

// Version is stamped by the build; the default marks dev builds.
var Version = "dev"

// Server holds the state of one editor session. Document text is kept
// only to answer hover requests; validation itself is stateless.
type Server struct {
	store    *schemas.Store
	config   *schemas.Config
	pipeline *parser.Pipeline

	writeMu sync.Mutex
	out     io.Writer

	mu        sync.Mutex
	documents map[protocol.DocumentURI]string
	shutdown  bool
}

// New builds a Server. The span-aware resolver is used so published
// ranges cover the erroring token where the AST allows it.
func New(store *schemas.Store, config *schemas.Config) *Server {
	if config == nil {
		config = &schemas.Config{}
	}
	return &Server{
		store:     store,
		config:    config,
		pipeline:  parser.NewPipeline(parser.WithResolver(spanmap.NewResolver())),
		documents: make(map[protocol.DocumentURI]string),
	}
}

// Run serves one session over the given streams until the client sends
// exit or the input closes.
func (s *Server) Run(in io.Reader, out io.Writer) error {
	s.out = out
	reader := bufio.NewReader(in)

	for {
		body, err := readMessage(reader)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		var msg jsonrpcMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			log.Printf("dropping unparsable message: %v", err)
			continue
		}

		if msg.Method == "exit" {
			return nil
		}
		s.dispatch(&msg)
	}
}

// dispatch routes one message. Requests always get a response, even if
// it is an error; notifications never do.
func (s *Server) dispatch(msg *jsonrpcMessage) {
	switch msg.Method {
	case "initialize":
		s.reply(msg, s.handleInitialize(), nil)

	case "initialized":
		// No work on the handshake ack.

	case "shutdown":
		s.mu.Lock()
		s.shutdown = true
		s.mu.Unlock()
		s.reply(msg, nil, nil)

	case "textDocument/didOpen":
		var params protocol.DidOpenTextDocumentParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			log.Printf("didOpen: bad params: %v", err)
			return
		}
		s.onChange(params.TextDocument.URI, params.TextDocument.Text, &params.TextDocument.Version)

	case "textDocument/didChange":
		var params protocol.DidChangeTextDocumentParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			log.Printf("didChange: bad params: %v", err)
			return
		}
		if len(params.ContentChanges) == 0 {
			return
		}
		// Full sync: the last change carries the whole document.
		text := params.ContentChanges[len(params.ContentChanges)-1].Text
		s.onChange(params.TextDocument.URI, text, &params.TextDocument.Version)

	case "textDocument/didClose":
		var params protocol.DidCloseTextDocumentParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			log.Printf("didClose: bad params: %v", err)
			return
		}
		s.mu.Lock()
		delete(s.documents, params.TextDocument.URI)
		s.mu.Unlock()
		// Clear markers for the closed document.
		s.publishDiagnostics(params.TextDocument.URI, nil, nil)

	case "textDocument/hover":
		var params protocol.TextDocumentPositionParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			s.reply(msg, nil, &jsonrpcError{Code: codeInvalidParams, Message: err.Error()})
			return
		}
		s.reply(msg, s.handleHover(params), nil)

	case "textDocument/completion":
		// Stub: schema-driven completion is not implemented yet.
		s.reply(msg, []protocol.CompletionItem{}, nil)

	default:
		if msg.ID != nil {
			s.reply(msg, nil, &jsonrpcError{Code: codeMethodNotFound, Message: fmt.Sprintf("method %q not found", msg.Method)})
		}
		// Unknown notifications ($/...) are dropped silently.
	}
}

func (s *Server) handleInitialize() protocol.InitializeResult {
	return protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.SyncFull,
			HoverProvider:    true,
			CompletionProvider: &protocol.CompletionOptions{
				TriggerCharacters: []string{"\""},
			},
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    constants.ServerName,
			Version: Version,
		},
	}
}

// handleHover reports which schema governs the document. Real
// schema-aware hover content is a stub for now.
func (s *Server) handleHover(params protocol.TextDocumentPositionParams) *protocol.Hover {
	s.mu.Lock()
	text, ok := s.documents[params.TextDocument.URI]
	s.mu.Unlock()
	if !ok {
		return nil
	}

	name := s.schemaNameFor(params.TextDocument.URI, text)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  "plaintext",
			Value: fmt.Sprintf("Validated against schema %q", name),
		},
	}
}

// onChange is the single entry point for document content: remember the
// text, validate it, publish the result.
func (s *Server) onChange(uri protocol.DocumentURI, text string, version *int) {
	s.mu.Lock()
	s.documents[uri] = text
	s.mu.Unlock()

	name := s.schemaNameFor(uri, text)
	schema, err := s.store.Get(name)
	if err != nil {
		// A broken or missing schema is the operator's problem, not
		// the document's; it is logged, never published.
		log.Printf("schema %q for %s: %v", name, uri, err)
		return
	}

	diagnostics := s.pipeline.ValidateCompiled(schema, text)
	s.publishDiagnostics(uri, version, diagnostics)
}

// schemaNameFor picks a schema for a document: its own declaration,
// then the filename mappings, then the default.
func (s *Server) schemaNameFor(uri protocol.DocumentURI, text string) string {
	if name, ok := schemas.ExtractRef(text); ok {
		return name
	}
	if name, ok := s.config.SchemaFor(uriPath(uri)); ok {
		return name
	}
	return constants.DefaultSchemaName
}

func (s *Server) publishDiagnostics(uri protocol.DocumentURI, version *int, diagnostics []protocol.Diagnostic) {
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}
	s.notify(protocol.PublishDiagnosticsMethod, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Version:     version,
		Diagnostics: diagnostics,
	})
}

// reply sends a response to a request. Notifications (no ID) get none.
func (s *Server) reply(msg *jsonrpcMessage, result any, rpcErr *jsonrpcError) {
	if msg.ID == nil {
		return
	}
	response := jsonrpcMessage{JSONRPC: "2.0", ID: msg.ID, Result: result, Error: rpcErr}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := writeMessage(s.out, response); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func (s *Server) notify(method string, params any) {
	raw, err := json.Marshal(params)
	if err != nil {
		log.Printf("failed to marshal %s params: %v", method, err)
		return
	}
	notification := jsonrpcMessage{JSONRPC: "2.0", Method: method, Params: raw}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := writeMessage(s.out, notification); err != nil {
		log.Printf("failed to write %s: %v", method, err)
	}
}

// uriPath strips the file:// scheme so filename patterns can match.
func uriPath(uri protocol.DocumentURI) string {
	return strings.TrimPrefix(string(uri), "file://")
}
