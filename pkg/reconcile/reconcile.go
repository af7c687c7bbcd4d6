// Package reconcile merges a previously stored card order with the cards a
// registry currently offers.
//
// The rule is "known order wins, unknowns append": ids that are still valid
// keep their stored relative order, ids that are no longer offered are
// dropped, and ids the stored order has never seen are appended after them
// in registry order. The functions here are pure; the caller owns the state.
package reconcile

import "github.com/matzehuels/opsboard/pkg/card"

// Reconcile returns the effective order for registry given a stored order.
//
// The result is a permutation of the deduplicated registry ids. Duplicate ids
// in either input are collapsed to their first occurrence. A nil or empty
// stored order yields the registry order unchanged.
func Reconcile(stored, registry []string) []string {
	valid := make(map[string]bool, len(registry))
	for _, id := range registry {
		valid[id] = true
	}

	out := make([]string, 0, len(valid))
	placed := make(map[string]bool, len(valid))
	for _, id := range stored {
		if valid[id] && !placed[id] {
			placed[id] = true
			out = append(out, id)
		}
	}
	for _, id := range registry {
		if !placed[id] {
			placed[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Effective reconciles stored against the visible cards and returns the
// descriptors in render order. Hidden cards are excluded. When several
// descriptors share an id the first one wins.
func Effective(stored []string, cards []card.Descriptor) []card.Descriptor {
	byID := make(map[string]card.Descriptor, len(cards))
	ids := make([]string, 0, len(cards))
	for _, c := range cards {
		if !c.Visible {
			continue
		}
		if _, dup := byID[c.ID]; dup {
			continue
		}
		byID[c.ID] = c
		ids = append(ids, c.ID)
	}

	order := Reconcile(stored, ids)
	out := make([]card.Descriptor, len(order))
	for i, id := range order {
		out[i] = byID[id]
	}
	return out
}

// Changed reports whether effective differs from what is stored, i.e.
// whether re-persisting effective would prune or extend the stored record.
func Changed(stored, effective []string) bool {
	if len(stored) != len(effective) {
		return true
	}
	for i := range stored {
		if stored[i] != effective[i] {
			return true
		}
	}
	return false
}

// Merge writes a rearranged visible order back into a stored record.
//
// Slots of record that hold ids from visible are refilled, left to right,
// with visible in its new order; visible ids the record has never seen are
// appended. Ids that are defined but not visible keep their slots. Ids not
// in defined, and duplicates, are dropped.
func Merge(record, visible, defined []string) []string {
	known := make(map[string]bool, len(defined))
	for _, id := range defined {
		known[id] = true
	}
	shown := make(map[string]bool, len(visible))
	for _, id := range visible {
		shown[id] = true
	}

	out := make([]string, 0, len(record)+len(visible))
	seen := make(map[string]bool, len(record))
	next := 0
	for _, id := range record {
		if seen[id] || !(known[id] || shown[id]) {
			continue
		}
		seen[id] = true
		if shown[id] {
			out = append(out, visible[next])
			next++
			continue
		}
		out = append(out, id)
	}
	return append(out, visible[next:]...)
}

// Move returns a copy of order with the element at from moved to index to.
// Out-of-range indexes are clamped; an empty order is returned unchanged.
func Move(order []string, from, to int) []string {
	out := make([]string, len(order))
	copy(out, order)
	if len(out) == 0 {
		return out
	}
	from = clamp(from, len(out))
	to = clamp(to, len(out))
	if from == to {
		return out
	}

	id := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = id
	return out
}

// Index returns the position of id in order, or -1.
func Index(order []string, id string) int {
	for i, v := range order {
		if v == id {
			return i
		}
	}
	return -1
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
