// Package store provides byte sinks for persisted documents.
//
// A Store maps a key to an opaque payload. The editing engine never sees a
// Store; the session hands it immutable byte snapshots. Three backends are
// provided: Memory for tests and scratch sessions, File for one payload per
// file in a directory, and SQLite for a single database file.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Errors returned by stores.
var (
	ErrNotFound       = errors.New("payload not found")
	ErrClosed         = errors.New("store is closed")
	ErrInvalidKey     = errors.New("invalid store key")
	ErrUnknownBackend = errors.New("unknown store backend")
)

// Store persists payloads by key.
type Store interface {
	// Get returns the payload stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores data under key, replacing any previous payload.
	Put(ctx context.Context, key string, data []byte) error

	// Delete removes the payload under key. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open creates a store for backend. path is a directory for the file
// backend and a database file for sqlite; memory ignores it.
func Open(ctx context.Context, backend, path string) (Store, error) {
	switch strings.ToLower(backend) {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return NewFile(path)
	case BackendSQLite:
		return NewSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("%q: %w", backend, ErrUnknownBackend)
	}
}

// validateKey rejects keys that cannot be used as file names.
func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`+"\x00") {
		return fmt.Errorf("%q: %w", key, ErrInvalidKey)
	}
	return nil
}
