package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// File is a Store persisted as a single JSON object on disk. The whole
// document is rewritten on every Set, which is fine at this scale and
// keeps the file readable by hand.
type File struct {
	path    string
	mu      sync.Mutex
	entries map[string]json.RawMessage
}

// OpenFile loads (or creates) the JSON document at path.
func OpenFile(path string) (*File, error) {
	f := &File{path: path, entries: make(map[string]json.RawMessage)}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating kv directory: %w", err)
		}
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading kv file: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &f.entries); err != nil {
			return nil, fmt.Errorf("parsing kv file %s: %w", path, err)
		}
	}
	return f, nil
}

func (f *File) Get(_ context.Context, key string, dest any) error {
	f.mu.Lock()
	raw, ok := f.entries[key]
	f.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decoding value for %q: %w", key, err)
	}
	return nil
}

func (f *File) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding value for %q: %w", key, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = raw
	return f.flushLocked()
}

// flushLocked writes the document via a temp file + rename so a crash
// mid-write never truncates existing data.
func (f *File) flushLocked() error {
	data, err := json.MarshalIndent(f.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding kv document: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing kv file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replacing kv file: %w", err)
	}
	return nil
}

func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entries[key]; !ok {
		return nil
	}
	delete(f.entries, key)
	return f.flushLocked()
}

func (f *File) Ping(context.Context) error {
	_, err := os.Stat(filepath.Dir(f.path))
	return err
}

func (f *File) Close() error { return nil }
