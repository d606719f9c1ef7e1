package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCommandsRegistered(t *testing.T) {
	root := newRootCmd()
	want := []string{"migrate", "seed", "cache", "geocode", "distance", "quote"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("command %q not registered: %v", name, err)
		}
	}
}

func TestCachePurgeNonSQLBackend(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("CACHE_BACKEND", "memory")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "purge"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out.String(), "nothing to purge") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestQuoteRequiresDatabase(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CACHE_BACKEND", "memory")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"quote", "--destination", "Brno"})

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Fatalf("expected DATABASE_URL error; got %v", err)
	}
}

func TestReadItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	if err := os.WriteFile(path, []byte(`[{"product_id":1,"quantity":3,"weight_kg":3,"category_ids":[12]}]`), 0o600); err != nil {
		t.Fatal(err)
	}

	items, err := readItems(path)
	if err != nil {
		t.Fatalf("readItems: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 3 || items[0].CategoryIDs[0] != 12 {
		t.Fatalf("items = %+v", items)
	}

	if items, err := readItems(""); err != nil || items != nil {
		t.Fatalf("empty path: %v %v", items, err)
	}
}
