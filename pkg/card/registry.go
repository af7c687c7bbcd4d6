package card

import (
	"sort"

	"github.com/matzehuels/opsboard/pkg/errors"
)

// Predicate decides whether a card is visible in a context.
type Predicate func(Context) bool

// Always is a predicate that shows a card unconditionally.
func Always(Context) bool { return true }

// RoleIn shows a card when any of the roles is set.
func RoleIn(roles ...string) Predicate {
	return func(c Context) bool { return c.HasAnyRole(roles...) }
}

// CategoryOn shows a card when the category flag is set.
func CategoryOn(category string) Predicate {
	return func(c Context) bool { return c.HasCategory(category) }
}

// Definition is the static declaration of a card in a registry.
// A nil Visible predicate means the card is always visible.
type Definition struct {
	ID      string
	Title   string
	Size    SizeHint
	Visible Predicate
	Render  RenderFunc
}

// Registry supplies the candidate cards of one view.
type Registry struct {
	View string
	Defs []Definition
}

// Cards evaluates the registry against ctx and returns one descriptor per
// definition, in definition order. Hidden cards are included with
// Visible=false so renderers can tell hidden from unknown.
func (r Registry) Cards(ctx Context) []Descriptor {
	out := make([]Descriptor, len(r.Defs))
	for i, d := range r.Defs {
		visible := true
		if d.Visible != nil {
			visible = d.Visible(ctx)
		}
		size := d.Size
		if size == "" {
			size = SizeFull
		}
		out[i] = Descriptor{
			ID:      d.ID,
			Title:   d.Title,
			Size:    size,
			Visible: visible,
			Render:  d.Render,
		}
	}
	return out
}

// Visible returns only the visible cards for ctx.
func (r Registry) Visible(ctx Context) []Descriptor {
	all := r.Cards(ctx)
	out := all[:0]
	for _, c := range all {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

var builtins = map[string]func() Registry{
	ViewDashboard: Dashboard,
	ViewFunnel:    Funnel,
}

// Lookup returns the built-in registry for a view.
func Lookup(view string) (Registry, bool) {
	fn, ok := builtins[normalize(view)]
	if !ok {
		return Registry{}, false
	}
	return fn(), true
}

// Resolve is Lookup with a coded INVALID_VIEW error for unknown views.
func Resolve(view string) (Registry, error) {
	if reg, ok := Lookup(view); ok {
		return reg, nil
	}
	if err := errors.ValidateView(view, Views()); err != nil {
		return Registry{}, err
	}
	return Registry{}, errors.New(errors.ErrCodeInvalidView, "unknown view %q", view)
}

// Views lists the built-in view names, sorted.
func Views() []string {
	views := make([]string, 0, len(builtins))
	for v := range builtins {
		views = append(views, v)
	}
	sort.Strings(views)
	return views
}
