// Package card describes the display widgets ("cards") of an opsboard view
// and composes the candidate card list for one render pass.
//
// A Registry is a static list of Definitions. Calling Cards with an ambient
// Context (role flags, category flags, entity data) evaluates every
// definition's visibility predicate and returns fresh Descriptors. Cards is a
// pure function of its input: the registry holds no memory between calls, so
// callers can re-run reconciliation on every context change without telling
// a first load apart from a later update.
//
// # Usage
//
//	reg := card.Dashboard()
//	cards := reg.Cards(card.Context{Roles: map[string]bool{"admin": true}})
//	for _, c := range cards {
//	    fmt.Println(c.ID, c.Size)
//	}
package card

import (
	"fmt"
	"io"
	"strings"
)

// SizeHint is the layout size of a card.
type SizeHint string

const (
	SizeFull SizeHint = "full"
	SizeHalf SizeHint = "half"
)

// ParseSize parses a size hint. Unknown values fall back to SizeFull.
func ParseSize(s string) SizeHint {
	if strings.EqualFold(strings.TrimSpace(s), string(SizeHalf)) {
		return SizeHalf
	}
	return SizeFull
}

// RenderFunc draws a card's content. The renderer that calls it is external.
type RenderFunc func(w io.Writer) error

// Descriptor is one card candidate for a single render pass.
// Descriptors are rebuilt from live state on every pass and never persisted.
type Descriptor struct {
	ID      string
	Title   string
	Size    SizeHint
	Visible bool
	Render  RenderFunc
}

// Draw renders the card through its thunk, or writes its title when the
// card has no thunk.
func (d Descriptor) Draw(w io.Writer) error {
	if d.Render != nil {
		return d.Render(w)
	}
	_, err := fmt.Fprintln(w, d.Title)
	return err
}

// IDs returns the ids of cards in order.
func IDs(cards []Descriptor) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

// VisibleIDs returns the ids of the visible cards in order.
func VisibleIDs(cards []Descriptor) []string {
	ids := make([]string, 0, len(cards))
	for _, c := range cards {
		if c.Visible {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
