package schemas

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/jsonls/jsonls/pkg/constants"
)

// Watch invalidates cached schemas when their files change on disk, so
// long-running servers pick up edited schemas without a restart. It
// blocks until ctx is canceled. A store without a schema directory has
// nothing to watch and returns immediately.
func (s *Store) Watch(ctx context.Context) error {
	if s.dir == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create schema watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("failed to watch schema directory %s: %w", s.dir, err)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("schema watcher channel closed")
			}
			name, ok := schemaNameFromPath(event.Name)
			if !ok {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				log.Printf("schema %q changed on disk, invalidating", name)
				s.Invalidate(name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("schema watcher channel closed")
			}
			log.Printf("schema watcher error: %v", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// schemaNameFromPath extracts the schema name from a watched file path.
func schemaNameFromPath(path string) (string, bool) {
	return strings.CutSuffix(filepath.Base(path), constants.SchemaFileSuffix)
}
