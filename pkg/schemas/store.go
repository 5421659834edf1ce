// Package schemas owns the longer-lived half of validation: loading
// schema documents, compiling them once, and handing out the immutable
// compiled form to any number of concurrent readers.
package schemas

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/sync/singleflight"

	"github.com/jsonls/jsonls/pkg/constants"
	"github.com/jsonls/jsonls/pkg/parser"
)

//go:embed embedded/service.schema.json
var serviceSchemaJSON []byte

// Store is a keyed cache of compiled schemas. Compilation for a given
// name happens at most once under concurrent first access (singleflight);
// readers always observe a fully-constructed compiled schema, published
// under the lock after compilation completes. Compiled schemas are
// immutable and safe to share.
type Store struct {
	dir string

	mu       sync.RWMutex
	sources  map[string][]byte
	compiled map[string]*jsonschema.Schema

	group singleflight.Group
}

// NewStore builds a Store that resolves schema names against the given
// directory ("<name>.schema.json" files). The embedded service schema
// is pre-registered so the server works out of the box. dir may be
// empty.
func NewStore(dir string) *Store {
	s := &Store{
		dir:      dir,
		sources:  make(map[string][]byte),
		compiled: make(map[string]*jsonschema.Schema),
	}
	s.sources[constants.DefaultSchemaName] = serviceSchemaJSON
	return s
}

// Register adds or replaces an in-memory schema source and drops any
// compiled form of it.
func (s *Store) Register(name string, schemaJSON []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources[name] = append([]byte(nil), schemaJSON...)
	delete(s.compiled, name)
}

// Get returns the compiled schema for name, compiling it on first use.
// Lookup order: previously compiled, registered source, then
// "<dir>/<name>.schema.json". Compile failures are ErrSchemaInvalid
// wraps and are not cached, so a fixed schema file takes effect on the
// next call.
func (s *Store) Get(name string) (*jsonschema.Schema, error) {
	s.mu.RLock()
	schema, ok := s.compiled[name]
	s.mu.RUnlock()
	if ok {
		return schema, nil
	}

	v, err, _ := s.group.Do(name, func() (any, error) {
		// Re-check under the group: a concurrent caller may have
		// finished compiling while this one waited.
		s.mu.RLock()
		schema, ok := s.compiled[name]
		s.mu.RUnlock()
		if ok {
			return schema, nil
		}

		source, err := s.source(name)
		if err != nil {
			return nil, err
		}
		schema, err = parser.CompileSchemaJSON(source)
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", name, err)
		}

		s.mu.Lock()
		s.compiled[name] = schema
		s.mu.Unlock()
		return schema, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*jsonschema.Schema), nil
}

// source fetches the raw schema JSON for name.
func (s *Store) source(name string) ([]byte, error) {
	s.mu.RLock()
	src, ok := s.sources[name]
	s.mu.RUnlock()
	if ok {
		return src, nil
	}

	if s.dir == "" {
		return nil, fmt.Errorf("schema %q: not registered and no schema directory configured", name)
	}
	path := filepath.Join(s.dir, name+constants.SchemaFileSuffix)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", name, err)
	}
	return data, nil
}

// Invalidate drops the compiled (and directory-loaded) state for name,
// forcing a reload on next Get. Registered in-memory sources survive.
func (s *Store) Invalidate(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.compiled, name)
}

// Names lists every schema the store can currently resolve: registered
// sources plus schema files present in the directory, sorted.
func (s *Store) Names() []string {
	seen := make(map[string]bool)

	s.mu.RLock()
	for name := range s.sources {
		seen[name] = true
	}
	s.mu.RUnlock()

	if s.dir != "" {
		if entries, err := os.ReadDir(s.dir); err == nil {
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				if name, ok := strings.CutSuffix(entry.Name(), constants.SchemaFileSuffix); ok {
					seen[name] = true
				}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
