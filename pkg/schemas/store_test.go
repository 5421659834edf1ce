package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jsonls/jsonls/pkg/parser"
)

func TestStoreGetEmbeddedDefault(t *testing.T) {
	store := NewStore("")

	schema, err := store.Get("service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if schema == nil {
		t.Fatal("expected a compiled schema")
	}

	// Second call returns the cached compiled schema.
	again, err := store.Get("service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if schema != again {
		t.Error("expected the same compiled schema instance on the second call")
	}
}

func TestStoreGetUnknownName(t *testing.T) {
	store := NewStore("")
	if _, err := store.Get("nope"); err == nil {
		t.Fatal("expected an error for an unknown schema name")
	}
}

func TestStoreGetFromDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.schema.json")
	if err := os.WriteFile(path, []byte(`{"type":"object"}`), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(dir)
	schema, err := store.Get("custom")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if schema == nil {
		t.Fatal("expected a compiled schema")
	}
}

func TestStoreInvalidSchemaIsError(t *testing.T) {
	store := NewStore("")
	store.Register("broken", []byte(`{"type": 12}`))

	_, err := store.Get("broken")
	if err == nil {
		t.Fatal("expected a compile error")
	}
	if !errors.Is(err, parser.ErrSchemaInvalid) {
		t.Errorf("error should wrap ErrSchemaInvalid, got %v", err)
	}
}

func TestStoreInvalidateForcesRecompile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.schema.json")
	if err := os.WriteFile(path, []byte(`{"type":"object"}`), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(dir)
	first, err := store.Get("app")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := os.WriteFile(path, []byte(`{"type":"array"}`), 0644); err != nil {
		t.Fatal(err)
	}
	store.Invalidate("app")

	second, err := store.Get("app")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Error("expected a freshly compiled schema after invalidation")
	}
}

func TestStoreConcurrentFirstAccess(t *testing.T) {
	store := NewStore("")

	const goroutines = 16
	results := make([]*struct{ err error }, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		results[i] = &struct{ err error }{}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i].err = store.Get("service")
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		if r.err != nil {
			t.Errorf("goroutine %d: %v", i, r.err)
		}
	}
}

func TestStoreNames(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "alpha.schema.json"), []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`x`), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(dir)
	names := store.Names()

	want := map[string]bool{"alpha": true, "service": true}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want keys %v", names, want)
	}
	for _, name := range names {
		if !want[name] {
			t.Errorf("unexpected name %q", name)
		}
	}
}
