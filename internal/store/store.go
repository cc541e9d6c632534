// Package store provides durable state for the directory: a key/value state
// table and the enriched employee snapshot, backed by SQLite.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by KV.Get when the key has never been written.
	ErrNotFound = errors.New("key not found")

	// ErrNoSnapshot is returned when no employee snapshot has been saved.
	ErrNoSnapshot = errors.New("no employee snapshot (run sync or import first)")
)

// KV is a durable key/value store holding opaque payloads.
type KV interface {
	// Get returns the payload stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores payload under key, replacing any previous value.
	Put(ctx context.Context, key string, payload []byte) error
}

// Snapshot describes one saved employee collection.
type Snapshot struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}
