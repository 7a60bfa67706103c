package kv

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	var missing doc
	if err := store.Get(ctx, "nope", &missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Set(ctx, "d", doc{Name: "Lions", Count: 3}); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got doc
	if err := store.Get(ctx, "d", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Lions" || got.Count != 3 {
		t.Errorf("got %+v", got)
	}
}

func TestMemoryOverwrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	store.Set(ctx, "flag", true)
	store.Set(ctx, "flag", false)

	var v bool
	if err := store.Get(ctx, "flag", &v); err != nil {
		t.Fatalf("get: %v", err)
	}
	if v {
		t.Error("expected overwritten value false")
	}
}

func TestFilePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.json")

	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Set(ctx, "d", doc{Name: "Tigers", Count: 7}); err != nil {
		t.Fatalf("set: %v", err)
	}

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	var got doc
	if err := reopened.Get(ctx, "d", &got); err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Name != "Tigers" || got.Count != 7 {
		t.Errorf("got %+v", got)
	}
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	store.Set(ctx, "k", "v")
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var s string
	if err := store.Get(ctx, "k", &s); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting an absent key is not an error.
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestFileDeletePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.json")

	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	store.Set(ctx, "a", 1)
	store.Set(ctx, "b", 2)
	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	var n int
	if err := reopened.Get(ctx, "a", &n); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after reopen, got %v", err)
	}
	if err := reopened.Get(ctx, "b", &n); err != nil || n != 2 {
		t.Fatalf("get b: %v %d", err, n)
	}
}

func TestFileCreatesMissingDirectory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "deeper", "kv.json")

	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}

	var s string
	if err := store.Get(ctx, "k", &s); err != nil || s != "v" {
		t.Fatalf("get: %v %q", err, s)
	}
}
