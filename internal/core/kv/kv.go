// Package kv defines the persistent key-value blob store the client uses for
// durability across restarts.
package kv

import (
	"context"
	"errors"
)

// ErrNoKey is returned by Get when the key does not exist.
var ErrNoKey = errors.New("key not found")

// KV is the interface for a persistent key-value store. Keys are strings,
// values are JSON-serializable.
type KV interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	ListKeys(ctx context.Context) ([]string, error)
}
