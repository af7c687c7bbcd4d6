package cli

import (
	"context"
	"io"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/opsboard/pkg/board"
	"github.com/matzehuels/opsboard/pkg/card"
	"github.com/matzehuels/opsboard/pkg/store"
)

func newArrangeModel(t *testing.T) (ArrangeModel, *board.Board, *store.OrderStore) {
	t.Helper()
	logger := log.New(io.Discard)
	orders := store.NewOrderStore(store.NewMemoryKV(), store.WithLogger(logger))
	b := board.New(card.Dashboard(), orders, "dashboard", board.Options{Logger: logger})
	b.Mount(context.Background(), card.NewContext(nil, nil))
	return NewArrangeModel(context.Background(), b), b, orders
}

func press(m ArrangeModel, keys ...tea.KeyMsg) (ArrangeModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(ArrangeModel)
	}
	return m, cmd
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
)

func TestArrangeCursor(t *testing.T) {
	m, _, _ := newArrangeModel(t)

	m, _ = press(m, keyUp)
	if m.Cursor != 0 {
		t.Errorf("cursor after up at top = %d, want 0", m.Cursor)
	}
	m, _ = press(m, keyDown, keyDown, keyDown, keyDown, keyDown, keyDown)
	if m.Cursor != 4 {
		t.Errorf("cursor clamped = %d, want 4", m.Cursor)
	}
}

func TestArrangeDrop(t *testing.T) {
	m, b, orders := newArrangeModel(t)

	m, _ = press(m, keyDown, keyDown, keySpace)
	if m.Picked != "courses" {
		t.Fatalf("picked = %q, want courses", m.Picked)
	}

	m, _ = press(m, keyUp, keyUp)
	if m.Cursor != 0 {
		t.Errorf("cursor while moving = %d, want 0", m.Cursor)
	}
	if got := b.Provisional()[0]; got != "courses" {
		t.Errorf("provisional[0] = %q, want courses", got)
	}
	if got := b.Order()[0]; got != "tasks" {
		t.Errorf("order changed before drop: %v", b.Order())
	}

	m, _ = press(m, keyEnter)
	if m.Picked != "" || m.Moves != 1 {
		t.Errorf("after drop picked=%q moves=%d", m.Picked, m.Moves)
	}
	if !strings.Contains(m.Status, "from 2 to 0") {
		t.Errorf("status = %q", m.Status)
	}

	want := []string{"courses", "tasks", "funnel", "links", "quizzes"}
	if got := b.Order(); !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if got := orders.Load(context.Background(), "dashboard"); !reflect.DeepEqual(got, want) {
		t.Errorf("stored = %v, want %v", got, want)
	}
}

func TestArrangeCancel(t *testing.T) {
	m, b, orders := newArrangeModel(t)
	before := b.Order()

	m, cmd := press(m, keyDown, keySpace, keyDown, keyDown, keyEsc)
	if cmd != nil {
		t.Error("esc while moving should not quit")
	}
	if m.Picked != "" || m.Status != "cancelled" {
		t.Errorf("after cancel picked=%q status=%q", m.Picked, m.Status)
	}
	if m.Cursor != 1 {
		t.Errorf("cursor after cancel = %d, want 1", m.Cursor)
	}
	if !reflect.DeepEqual(b.Order(), before) {
		t.Errorf("order = %v, want %v", b.Order(), before)
	}
	if got := orders.Load(context.Background(), "dashboard"); got != nil {
		t.Errorf("cancel should not save, got %v", got)
	}
}

func TestArrangeUnchanged(t *testing.T) {
	m, _, orders := newArrangeModel(t)

	m, _ = press(m, keySpace, keyDown, keyUp, keyEnter)
	if m.Status != "unchanged" || m.Moves != 0 {
		t.Errorf("status=%q moves=%d", m.Status, m.Moves)
	}
	if got := orders.Load(context.Background(), "dashboard"); got != nil {
		t.Errorf("unchanged drop should not save, got %v", got)
	}
}

func TestArrangeQuit(t *testing.T) {
	m, b, _ := newArrangeModel(t)

	if _, cmd := press(m, keyEsc); cmd == nil {
		t.Error("esc when idle should quit")
	}

	m, cmd := press(m, keySpace, keyQuit)
	if cmd == nil {
		t.Error("q should quit")
	}
	if m.Picked != "" {
		t.Errorf("picked after quit = %q", m.Picked)
	}
	if p := b.Session().Provisional(); p != nil {
		t.Errorf("session still active after quit: %v", p)
	}
}

func TestArrangeView(t *testing.T) {
	m, _, _ := newArrangeModel(t)

	view := m.View()
	for _, s := range []string{"Arrange dashboard", "space pick up", "Tasks"} {
		if !strings.Contains(view, s) {
			t.Errorf("view missing %q:\n%s", s, view)
		}
	}

	m, _ = press(m, keySpace)
	if view := m.View(); !strings.Contains(view, "drop") {
		t.Errorf("moving view missing drop hint:\n%s", view)
	}
}
