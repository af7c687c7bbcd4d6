// Package store persists card orders under scope-specific keys.
//
// The package has two layers:
//   - KV: a synchronous get/set-by-key string store with several backends
//     (memory, file, redis, mongo, null). No transactions, no range queries.
//   - OrderStore: the best-effort order record on top of a KV. Load and Save
//     never return errors; failures are logged and degrade to "no stored
//     order" on read and to "nothing persisted" on write.
//
// # Backends
//
//	// Tests and --no-persist
//	kv := store.NewMemoryKV()
//	kv := store.NewNullKV()
//
//	// CLI (one JSON file per key under ~/.local/state/opsboard/orders)
//	kv, err := store.NewFileKV(dir)
//
//	// Shared deployments
//	kv, err := store.NewRedisKV(ctx, store.RedisConfig{Addr: "localhost:6379"})
//	kv, err := store.NewMongoKV(ctx, store.MongoConfig{URI: "mongodb://localhost:27017"})
//
// # Usage
//
//	orders := store.NewOrderStore(kv, store.WithLogger(logger))
//	ids := orders.Load(ctx, "dashboard")   // nil when nothing usable is stored
//	orders.Save(ctx, "dashboard", newOrder) // best effort
package store

import (
	"context"
	"errors"
	"fmt"
)

// KV is a string key-value store.
type KV interface {
	// Get returns the value stored under key. ok is false when the key is
	// absent; a backend failure is reported through err.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases backend resources.
	Close() error
}

// Sentinel errors for store operations.
var (
	// ErrUnavailable is returned by backends that cannot be reached.
	ErrUnavailable = errors.New("store unavailable")

	// ErrClosed is returned when a closed backend is used.
	ErrClosed = errors.New("store closed")
)

// panicError wraps a value recovered from a panicking backend.
type panicError struct{ v any }

func (e panicError) Error() string { return fmt.Sprintf("backend panic: %v", e.v) }

// guard runs fn and converts a panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError{v: r}
		}
	}()
	return fn()
}
