package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jsonls/jsonls/internal/spanmap"
	"github.com/jsonls/jsonls/pkg/constants"
	"github.com/jsonls/jsonls/pkg/parser"
	"github.com/jsonls/jsonls/pkg/protocol"
	"github.com/jsonls/jsonls/pkg/schemas"
)

// validateInput is the argument payload of the validate_document tool.
type validateInput struct {
	Document string `json:"document"`
	Schema   string `json:"schema,omitempty"`
}

// validateOutput is the structured result of the validate_document tool.
type validateOutput struct {
	Valid       bool                  `json:"valid"`
	Diagnostics []protocol.Diagnostic `json:"diagnostics"`
}

type listSchemasInput struct{}

type listSchemasOutput struct {
	Schemas []string `json:"schemas"`
}

// RunMCPServer exposes validation as MCP tools over stdio, so agents
// can check documents without speaking LSP.
func RunMCPServer(version, schemaDir, cfgPath string) error {
	cfg, err := schemas.LoadConfig(configPath(CheckOptions{ConfigPath: cfgPath}))
	if err != nil {
		return err
	}
	if schemaDir != "" {
		cfg.SchemaDir = schemaDir
	}
	store := schemas.NewStore(cfg.SchemaDir)
	pipeline := parser.NewPipeline(parser.WithResolver(spanmap.NewResolver()))

	server := mcp.NewServer(&mcp.Implementation{Name: constants.ServerName, Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_document",
		Description: "Validate a JSON document against a named schema and return diagnostics with document ranges",
	}, func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[validateInput]) (*mcp.CallToolResultFor[validateOutput], error) {
		in := params.Arguments

		name := in.Schema
		if name == "" {
			if ref, ok := schemas.ExtractRef(in.Document); ok {
				name = ref
			} else {
				name = constants.DefaultSchemaName
			}
		}
		schema, err := store.Get(name)
		if err != nil {
			return nil, err
		}

		diagnostics := pipeline.ValidateCompiled(schema, in.Document)
		if diagnostics == nil {
			diagnostics = []protocol.Diagnostic{}
		}
		out := validateOutput{Valid: len(diagnostics) == 0, Diagnostics: diagnostics}

		summary := "document is valid"
		if !out.Valid {
			summary = fmt.Sprintf("%d diagnostic(s) found", len(diagnostics))
		}
		return &mcp.CallToolResultFor[validateOutput]{
			Content:           []mcp.Content{&mcp.TextContent{Text: summary}},
			StructuredContent: out,
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_schemas",
		Description: "List the schema names available for validation",
	}, func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[listSchemasInput]) (*mcp.CallToolResultFor[listSchemasOutput], error) {
		names := store.Names()
		return &mcp.CallToolResultFor[listSchemasOutput]{
			Content:           []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("%d schema(s) available", len(names))}},
			StructuredContent: listSchemasOutput{Schemas: names},
		}, nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := store.Watch(ctx); err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "schema watcher stopped: %v\n", err)
		}
	}()

	return server.Run(ctx, mcp.NewStdioTransport())
}
