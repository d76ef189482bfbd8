package kv

import "context"

// TypedKV provides type-safe access to a KV store for a specific type T.
type TypedKV[T any] struct {
	store KV
	key   string
}

// Keyed returns a TypedKV[T] bound to a single well-known key, for blobs the
// client reads and writes as a unit (the task list, the theme flag).
func Keyed[T any](store KV, key string) *TypedKV[T] {
	return &TypedKV[T]{store: store, key: key}
}

// Get retrieves and deserializes the value.
func (t *TypedKV[T]) Get(ctx context.Context) (T, error) {
	var v T
	if err := t.store.Get(ctx, t.key, &v); err != nil {
		return v, err
	}
	return v, nil
}

// Set serializes and stores the value.
func (t *TypedKV[T]) Set(ctx context.Context, value T) error {
	return t.store.Set(ctx, t.key, value)
}

// Delete removes the key.
func (t *TypedKV[T]) Delete(ctx context.Context) error {
	return t.store.Delete(ctx, t.key)
}

// Has returns whether the key exists.
func (t *TypedKV[T]) Has(ctx context.Context) (bool, error) {
	return t.store.Has(ctx, t.key)
}
