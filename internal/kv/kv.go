// Package kv provides the small key-value store backing the auction
// state document, quiz activation flags, and admin sessions. Values are
// JSON-encoded by every backend so documents round-trip identically
// whether they live in memory, a file, SQLite, or Redis. The backend is
// selected once at startup from explicit configuration.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("key not found")

// Store is the minimal contract the rest of the service depends on.
// Get decodes the stored JSON value into dest, which must be a pointer.
// Delete is a no-op for absent keys.
type Store interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
