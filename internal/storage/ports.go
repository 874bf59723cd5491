// Package storage persists the ledger's JSON slots. Every backend is a plain
// key/value store; the entity store above it owns encoding and semantics.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when a key was never saved.
var ErrNotFound = errors.New("storage: key not found")

// KV is the persistence contract of the entity store.
type KV interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Pinger is implemented by backends that can report readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}
