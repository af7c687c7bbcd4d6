// Package board owns the card order of one mounted view.
//
// A Board ties the pieces together for a single scope: it asks the registry
// for the current cards, seeds reconciliation from the order store once on
// Mount, keeps the resulting order in memory, and persists the new order
// whenever a drag session drops a card somewhere new. Persistence is best
// effort: when a write fails the in-memory order stays authoritative for the
// rest of the session.
//
// # Usage
//
//	b := board.New(card.Dashboard(), orders, "dashboard", board.Options{PruneOnLoad: true})
//	b.Mount(ctx, card.NewContext([]string{"admin"}, nil))
//	for _, c := range b.Cards() {
//	    c.Draw(w)
//	}
//
//	// Renderer wiring
//	b.Attach("tasks", drag.Rect{...})
//	b.Press("tasks", drag.Point{...})
//	b.Move(drag.Point{...})
//	b.Release(ctx)
package board

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/opsboard/pkg/card"
	"github.com/matzehuels/opsboard/pkg/drag"
	"github.com/matzehuels/opsboard/pkg/errors"
	"github.com/matzehuels/opsboard/pkg/observability"
	"github.com/matzehuels/opsboard/pkg/reconcile"
	"github.com/matzehuels/opsboard/pkg/store"
)

// Options configures a Board.
type Options struct {
	// PruneOnLoad re-saves the stored order on Mount when it references
	// cards the registry no longer defines.
	PruneOnLoad bool

	// Drags is the drag manager to register this board's session with.
	// Boards sharing a manager still get one session per scope.
	Drags *drag.Manager

	Logger *log.Logger
}

// Board is the order state of one scope.
type Board struct {
	reg    card.Registry
	orders *store.OrderStore
	scope  string
	opts   Options

	mu     sync.Mutex
	ctx    card.Context
	stored []string
	cards  []card.Descriptor
}

// New creates a board for scope. The board is empty until Mount.
func New(reg card.Registry, orders *store.OrderStore, scope string, opts Options) *Board {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Drags == nil {
		opts.Drags = drag.NewManager(drag.Options{Logger: opts.Logger})
	}
	if orders == nil {
		orders = store.NewOrderStore(nil, store.WithLogger(opts.Logger))
	}
	return &Board{
		reg:    reg,
		orders: orders,
		scope:  scope,
		opts:   opts,
	}
}

// ForView resolves the scope of view in cardCtx and creates a board for it.
func ForView(reg card.Registry, orders *store.OrderStore, cardCtx card.Context, opts Options) (*Board, error) {
	scope, err := card.ScopeFor(reg.View, cardCtx)
	if err != nil {
		return nil, err
	}
	if err := errors.ValidateScope(scope); err != nil {
		return nil, err
	}
	return New(reg, orders, scope, opts), nil
}

// Scope returns the board's scope key.
func (b *Board) Scope() string { return b.scope }

// Mount reads the stored order once and reconciles it with the registry
// evaluated in cardCtx.
func (b *Board) Mount(ctx context.Context, cardCtx card.Context) {
	stored := b.orders.Load(ctx, b.scope)

	b.mu.Lock()
	b.ctx = cardCtx
	b.stored = stored
	b.cards = reconcile.Effective(stored, b.reg.Cards(cardCtx))
	b.mu.Unlock()

	b.opts.Logger.Debug("board mounted", "scope", b.scope, "stored", len(stored), "cards", len(b.Order()))

	if b.opts.PruneOnLoad {
		b.prune(ctx, stored)
	}
}

// prune re-saves stored without ids the registry no longer defines.
// Ids that are defined but currently hidden keep their position.
func (b *Board) prune(ctx context.Context, stored []string) {
	if len(stored) == 0 {
		return
	}
	defined := card.IDs(b.reg.Cards(card.Context{}))
	known := make(map[string]bool, len(defined))
	for _, id := range defined {
		known[id] = true
	}

	seen := make(map[string]bool, len(stored))
	kept := make([]string, 0, len(stored))
	for _, id := range stored {
		if known[id] && !seen[id] {
			seen[id] = true
			kept = append(kept, id)
		}
	}
	if !reconcile.Changed(stored, kept) {
		return
	}

	dropped := len(stored) - len(kept)
	b.opts.Logger.Info("pruning stale card ids", "scope", b.scope, "dropped", dropped)
	b.orders.Save(ctx, b.scope, kept)
	observability.Store().OnPrune(ctx, b.scope, dropped)

	b.mu.Lock()
	b.stored = kept
	b.mu.Unlock()
}

// Refresh re-evaluates the registry in cardCtx and reconciles against the
// in-memory order. It does not touch the store.
func (b *Board) Refresh(cardCtx card.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ctx = cardCtx
	b.cards = reconcile.Effective(b.stored, b.reg.Cards(cardCtx))
}

// Cards returns the effective order of visible cards.
func (b *Board) Cards() []card.Descriptor {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]card.Descriptor(nil), b.cards...)
}

// Order returns the ids of the effective order.
func (b *Board) Order() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return card.IDs(b.cards)
}

// Stored returns the in-memory order record.
func (b *Board) Stored() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.stored...)
}

// commit merges the rearranged visible order into the record, re-derives
// the effective order and persists the record. Hidden cards keep their
// stored slots.
func (b *Board) commit(ctx context.Context, order []string) {
	defined := card.IDs(b.reg.Cards(card.Context{}))

	b.mu.Lock()
	b.stored = reconcile.Merge(b.stored, order, defined)
	b.cards = reconcile.Effective(b.stored, b.reg.Cards(b.ctx))
	record := append([]string(nil), b.stored...)
	b.mu.Unlock()

	b.orders.Save(ctx, b.scope, record)
}
