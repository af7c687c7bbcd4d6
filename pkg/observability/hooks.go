// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about order persistence and drag sessions.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    observability.SetDragHooks(&myDragHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Store().OnLoad(ctx, scope, len(ids), err)
package observability

import (
	"context"
	"sync"
)

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from the order store.
type StoreHooks interface {
	// OnLoad records a read. err is the swallowed backend or decode failure,
	// if any; count is the number of ids returned to the caller.
	OnLoad(ctx context.Context, scope string, count int, err error)

	// OnSave records a write. err is the swallowed backend failure, if any.
	OnSave(ctx context.Context, scope string, count int, err error)

	// OnPrune records an opportunistic re-save of a pruned order on mount.
	OnPrune(ctx context.Context, scope string, dropped int)
}

// =============================================================================
// Drag Hooks
// =============================================================================

// DragHooks receives events from drag sessions.
type DragHooks interface {
	// OnActivate records a session crossing its activation threshold.
	OnActivate(scope, card string)

	// OnDrop records a completed drag that changed the order.
	OnDrop(scope, card string, from, to int)

	// OnCancel records a cancelled drag and why.
	OnCancel(scope, card, reason string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnLoad(context.Context, string, int, error) {}
func (NoopStoreHooks) OnSave(context.Context, string, int, error) {}
func (NoopStoreHooks) OnPrune(context.Context, string, int)       {}

// NoopDragHooks is a no-op implementation of DragHooks.
type NoopDragHooks struct{}

func (NoopDragHooks) OnActivate(string, string)       {}
func (NoopDragHooks) OnDrop(string, string, int, int) {}
func (NoopDragHooks) OnCancel(string, string, string) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	storeHooks StoreHooks = NoopStoreHooks{}
	dragHooks  DragHooks  = NoopDragHooks{}
	hooksMu    sync.RWMutex
)

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetDragHooks registers custom drag hooks.
func SetDragHooks(h DragHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		dragHooks = h
	}
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Drag returns the registered drag hooks.
func Drag() DragHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return dragHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	storeHooks = NoopStoreHooks{}
	dragHooks = NoopDragHooks{}
}
