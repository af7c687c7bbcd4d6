// Package pkg provides the core libraries for Opsboard card ordering.
//
// # Overview
//
// Opsboard keeps the user-arranged order of the cards on the operations
// dashboard and on each funnel overview panel. Each view has a registry of
// card definitions whose visibility depends on the viewer's roles and
// category flags. The order a user arranges is persisted per scope and
// reconciled with whatever the registry currently shows: known order wins,
// unknown cards append.
//
// The pkg directory is organized as:
//
//  1. [card] - Card descriptors, registries, visibility context, scope keys
//  2. [reconcile] - Pure ordering functions (reconcile, effective, move)
//  3. [store] - Best-effort order persistence over pluggable KV backends
//  4. [drag] - Drag session state machine and geometry
//  5. [board] - Per-scope state container tying the above together
//
// # Architecture
//
// The typical data flow when a view is mounted and rearranged:
//
//	card.Registry + card.Context
//	         ↓
//	    [card] descriptors (visible and hidden)
//	         ↓
//	    [store] stored order ──→ [reconcile] effective order
//	         ↓
//	    [drag] session (press/move/release) ──→ new order
//	         ↓
//	    [store] save (best effort)
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/opsboard/pkg/board"
//	    "github.com/matzehuels/opsboard/pkg/card"
//	    "github.com/matzehuels/opsboard/pkg/store"
//	)
//
//	kv, _ := store.NewFileKV("/var/lib/opsboard/orders")
//	orders := store.NewOrderStore(kv)
//
//	cardCtx := card.NewContext([]string{"admin"}, []string{"surveys"})
//	b, _ := board.ForView(card.Dashboard(), orders, cardCtx, board.Options{PruneOnLoad: true})
//	b.Mount(context.Background(), cardCtx)
//
//	_ = b.MoveCard(context.Background(), "team", 0)
//	for _, c := range b.Cards() {
//	    c.Draw(os.Stdout)
//	}
//
// # Main Packages
//
// [card] - A card is identified by a short id and carries a title, a size
// hint and an optional render thunk. Registries are pure: the same context
// always yields the same descriptors.
//
// [reconcile] - The ordering rule. Stored ids that still exist keep their
// relative order, new ids append in registry order, stale ids vanish.
//
// [store] - The order store never fails its callers: unreadable or corrupt
// records load as empty and failed writes are logged and dropped. Backends:
//
//   - FileKV: one JSON file per key under a hashed directory layout
//   - RedisKV: plain string keys without expiry
//   - MongoKV: one document per key, upserted
//   - MemoryKV: tests and --backend memory
//   - NullKV: persistence disabled
//
// [drag] - Idle → Active → Dropped/Cancelled. Pointer gestures activate
// after an activation distance; keyboard gestures activate immediately.
//
// [board] - Owns the in-memory order of one scope and commits drops.
//
// # Supporting Packages
//
// [errors] - Coded errors and input validation for scopes, card ids and views.
//
// [observability] - Hook registry for store and drag events.
//
// [buildinfo] - Version information set via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/reconcile/...          # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [card]: https://pkg.go.dev/github.com/matzehuels/opsboard/pkg/card
// [reconcile]: https://pkg.go.dev/github.com/matzehuels/opsboard/pkg/reconcile
// [store]: https://pkg.go.dev/github.com/matzehuels/opsboard/pkg/store
// [drag]: https://pkg.go.dev/github.com/matzehuels/opsboard/pkg/drag
// [board]: https://pkg.go.dev/github.com/matzehuels/opsboard/pkg/board
// [errors]: https://pkg.go.dev/github.com/matzehuels/opsboard/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/opsboard/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/opsboard/pkg/buildinfo
package pkg
