package cli

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jsonls/jsonls/pkg/schemas"
	"github.com/jsonls/jsonls/pkg/server"
)

// ServeOptions configures the language server.
type ServeOptions struct {
	SchemaDir  string
	ConfigPath string
}

// RunServer speaks LSP over stdin/stdout until the client disconnects.
// The protocol owns stdout, so logs go to stderr.
func RunServer(opts ServeOptions) error {
	log.SetOutput(os.Stderr)

	cfg, err := schemas.LoadConfig(configPath(CheckOptions{ConfigPath: opts.ConfigPath}))
	if err != nil {
		return err
	}
	if opts.SchemaDir != "" {
		cfg.SchemaDir = opts.SchemaDir
	}
	store := schemas.NewStore(cfg.SchemaDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Schema files edited while the server runs are picked up on the
	// next validation.
	go func() {
		if err := store.Watch(ctx); err != nil && ctx.Err() == nil {
			log.Printf("schema watcher stopped: %v", err)
		}
	}()

	return server.New(store, cfg).Run(os.Stdin, os.Stdout)
}
