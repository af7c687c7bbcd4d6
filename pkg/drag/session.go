// Package drag implements card drag-reordering as a small state machine
// driven by abstract signals, independent of any input library.
//
// A Session moves through Idle → Active → {Dropped, Cancelled}. Pointer
// gestures start with Press and only activate once the pointer has travelled
// ActivationDistance, so ordinary clicks are never hijacked. Keyboard
// gestures start with Pick and are active immediately. While active, every
// Move (pointer) or Step (keyboard) recomputes a provisional order; nothing
// is persisted until Release yields a Result. Cancel ends the gesture
// synchronously and discards it.
//
// Renderers report card bounding regions through Attach and Detach. A
// Manager keeps one Session per scope, so several mounted card sets never
// interfere, and a Session holds at most one active card.
package drag

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/opsboard/pkg/observability"
	"github.com/matzehuels/opsboard/pkg/reconcile"
)

// State is the lifecycle state of a session.
type State int

const (
	Idle State = iota
	Active
	Dropped
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Dropped:
		return "dropped"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Cancellation reasons reported to hooks and logs.
const (
	ReasonInterrupted = "interrupted"
	ReasonUnchanged   = "unchanged"
	ReasonNoTarget    = "no target"
	ReasonDetached    = "detached"
)

// DefaultActivationDistance is the pointer travel needed to start a drag.
const DefaultActivationDistance = 8

// Options configures sessions.
type Options struct {
	// ActivationDistance is the minimum pointer travel before a press
	// becomes a drag. Zero selects DefaultActivationDistance; a negative
	// value activates on press.
	ActivationDistance float64
	Logger             *log.Logger
}

func (o Options) withDefaults() Options {
	if o.ActivationDistance == 0 {
		o.ActivationDistance = DefaultActivationDistance
	}
	if o.ActivationDistance < 0 {
		o.ActivationDistance = 0
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

// Result is the outcome of a drop that changed the order.
type Result struct {
	Scope string
	Card  string
	From  int
	To    int
	Order []string
}

// Session tracks reorder gestures for one scope.
// It is safe for concurrent use, though gestures are expected to arrive
// from a single event loop.
type Session struct {
	mu    sync.Mutex
	scope string
	opts  Options
	rects map[string]Rect

	id        string
	state     State
	pressed   bool
	keyboard  bool
	base      []string
	card      string
	from, to  int
	origin    Point
	hasTarget bool
}

// NewSession creates an idle session for scope.
func NewSession(scope string, opts Options) *Session {
	return &Session{
		scope: scope,
		opts:  opts.withDefaults(),
		rects: make(map[string]Rect),
	}
}

// Scope returns the scope this session belongs to.
func (s *Session) Scope() string { return s.scope }

// Attach records the bounding region of a card.
func (s *Session) Attach(id string, r Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rects[id] = r
}

// Detach forgets a card's region. Detaching the dragged card cancels an
// active gesture; a press that has not activated yet is dropped silently.
func (s *Session) Detach(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rects, id)
	if s.card != id {
		return
	}
	switch {
	case s.pressed:
		s.pressed = false
		s.state = Idle
	case s.state == Active:
		s.cancelLocked(ReasonDetached)
	}
}

// Press starts a pointer gesture on card id at pointer position at. order
// is the effective order at the time of the press. Press is ignored, and
// returns false, while another gesture is in progress or when id is not
// part of order.
func (s *Session) Press(order []string, id string, at Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.beginLocked(order, id) {
		return false
	}
	s.pressed = true
	s.origin = at
	if s.opts.ActivationDistance == 0 {
		s.activateLocked()
	}
	return true
}

// Pick starts a keyboard gesture on card id. Keyboard gestures are active
// immediately.
func (s *Session) Pick(order []string, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.beginLocked(order, id) {
		return false
	}
	s.keyboard = true
	s.activateLocked()
	return true
}

func (s *Session) beginLocked(order []string, id string) bool {
	if s.pressed || s.state == Active {
		return false
	}
	from := reconcile.Index(order, id)
	if from < 0 {
		return false
	}
	s.id = uuid.NewString()
	s.state = Idle
	s.keyboard = false
	s.base = append([]string(nil), order...)
	s.card = id
	s.from, s.to = from, from
	s.hasTarget = true
	return true
}

func (s *Session) activateLocked() {
	s.pressed = false
	s.state = Active
	s.opts.Logger.Debug("drag active", "scope", s.scope, "card", s.card, "session", s.id)
	observability.Drag().OnActivate(s.scope, s.card)
}

// Move reports a pointer position. A pressed session activates once the
// pointer has travelled the activation distance; an active session
// recomputes its target by comparing the translated card region with the
// regions of every other card.
func (s *Session) Move(at Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pressed {
		if at.Dist(s.origin) < s.opts.ActivationDistance {
			return
		}
		s.activateLocked()
	}
	if s.state != Active || s.keyboard {
		return
	}

	src, ok := s.rects[s.card]
	if !ok || src.Empty() {
		return
	}
	dragged := src.Translate(at.Sub(s.origin))

	best, bestArea, bestDist := -1, 0.0, 0.0
	for i, id := range s.base {
		r, ok := s.rects[id]
		if !ok || r.Empty() {
			continue
		}
		area := dragged.Overlap(r)
		if area <= 0 {
			continue
		}
		dist := dragged.Center().Dist(r.Center())
		if best < 0 || area > bestArea || (area == bestArea && dist < bestDist) {
			best, bestArea, bestDist = i, area, dist
		}
	}

	if best < 0 {
		s.hasTarget = false
		return
	}
	s.hasTarget = true
	s.to = best
}

// Step moves the provisional position of a keyboard gesture by delta,
// clamped to the bounds of the order.
func (s *Session) Step(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Active {
		return
	}
	to := s.to + delta
	if to < 0 {
		to = 0
	}
	if to > len(s.base)-1 {
		to = len(s.base) - 1
	}
	s.to = to
	s.hasTarget = true
}

// Release ends the gesture. It returns a Result and true when the card was
// dropped at a new index. A release before activation is a click and
// returns the session to Idle. A release at the original index or with no
// valid target cancels.
func (s *Session) Release() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pressed {
		s.pressed = false
		s.state = Idle
		return Result{}, false
	}
	if s.state != Active {
		return Result{}, false
	}
	if !s.hasTarget {
		s.cancelLocked(ReasonNoTarget)
		return Result{}, false
	}
	if s.to == s.from {
		s.cancelLocked(ReasonUnchanged)
		return Result{}, false
	}

	s.state = Dropped
	res := Result{
		Scope: s.scope,
		Card:  s.card,
		From:  s.from,
		To:    s.to,
		Order: reconcile.Move(s.base, s.from, s.to),
	}
	s.opts.Logger.Debug("drag dropped", "scope", s.scope, "card", s.card, "from", s.from, "to", s.to)
	observability.Drag().OnDrop(s.scope, s.card, s.from, s.to)
	return res, true
}

// Cancel aborts an in-progress gesture (escape, focus loss). It is a no-op
// when no gesture is in progress.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pressed || s.state == Active {
		s.cancelLocked(ReasonInterrupted)
	}
}

func (s *Session) cancelLocked(reason string) {
	s.pressed = false
	s.state = Cancelled
	s.opts.Logger.Debug("drag cancelled", "scope", s.scope, "card", s.card, "reason", reason)
	observability.Drag().OnCancel(s.scope, s.card, reason)
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Pending reports whether a pointer press is waiting for activation.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pressed
}

// Card returns the id of the card of the current or last gesture.
func (s *Session) Card() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.card
}

// Provisional returns the order to display while a gesture is active, or
// nil when no gesture is active. It is never persisted.
func (s *Session) Provisional() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Active {
		return nil
	}
	return reconcile.Move(s.base, s.from, s.to)
}

// Target returns the provisional index of the dragged card.
func (s *Session) Target() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.to
}
