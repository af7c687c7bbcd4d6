package board

import (
	"context"

	"github.com/matzehuels/opsboard/pkg/drag"
	"github.com/matzehuels/opsboard/pkg/errors"
	"github.com/matzehuels/opsboard/pkg/reconcile"
)

// Session returns the drag session of this board's scope.
func (b *Board) Session() *drag.Session {
	return b.opts.Drags.Session(b.scope)
}

// Attach registers a card's drag handle region.
func (b *Board) Attach(id string, r drag.Rect) {
	b.opts.Drags.Attach(b.scope, id, r)
}

// Detach unregisters a card's drag handle region.
func (b *Board) Detach(id string) {
	b.opts.Drags.Detach(b.scope, id)
}

// Press starts a pointer gesture on card id.
func (b *Board) Press(id string, at drag.Point) bool {
	return b.Session().Press(b.Order(), id, at)
}

// Pick starts a keyboard gesture on card id.
func (b *Board) Pick(id string) bool {
	return b.Session().Pick(b.Order(), id)
}

// Move forwards a pointer move to the session.
func (b *Board) Move(at drag.Point) { b.Session().Move(at) }

// Step forwards a keyboard step to the session.
func (b *Board) Step(delta int) { b.Session().Step(delta) }

// Cancel aborts the current gesture.
func (b *Board) Cancel() { b.Session().Cancel() }

// Provisional returns the order to display: the provisional order while a
// gesture is active, the effective order otherwise.
func (b *Board) Provisional() []string {
	if p := b.Session().Provisional(); p != nil {
		return p
	}
	return b.Order()
}

// Release ends the gesture. When a card was dropped somewhere new the order
// is committed and persisted and the result is returned.
func (b *Board) Release(ctx context.Context) (drag.Result, bool) {
	res, ok := b.Session().Release()
	if !ok {
		return drag.Result{}, false
	}
	b.commit(ctx, res.Order)
	return res, true
}

// MoveCard moves card id to index to as a keyboard gesture would.
// Moving a card onto its own index is a no-op.
func (b *Board) MoveCard(ctx context.Context, id string, to int) error {
	order := b.Order()
	from := reconcile.Index(order, id)
	if from < 0 {
		return errors.New(errors.ErrCodeInvalidCard, "card %q is not on the %s board", id, b.scope)
	}
	if to < 0 || to >= len(order) {
		return errors.New(errors.ErrCodeInvalidIndex, "index %d out of range [0, %d)", to, len(order))
	}
	if from == to {
		return nil
	}

	s := b.Session()
	if !s.Pick(order, id) {
		return errors.New(errors.ErrCodeInternal, "another card is being dragged on %s", b.scope)
	}
	s.Step(to - from)
	if _, ok := b.Release(ctx); !ok {
		return errors.New(errors.ErrCodeInternal, "move of %q was cancelled", id)
	}
	return nil
}
