// Package catalog holds the browsing state of the character catalog: the
// current filters and page, the accumulated result list, and the debounced
// name search that feeds it.
package catalog

import "rickdex/internal/api"

// Mode selects how a fetched page is merged into the accumulated list.
type Mode int

const (
	// ModeReplace discards the existing list. Used whenever the page resets
	// to 1 because the filters changed.
	ModeReplace Mode = iota
	// ModeAppend merges the page into the existing list. Used for load more.
	ModeAppend
)

func (m Mode) String() string {
	switch m {
	case ModeReplace:
		return "replace"
	case ModeAppend:
		return "append"
	}
	return "unknown"
}

// Reconcile merges incoming into existing according to mode and returns a
// new slice; neither input is modified.
//
// In append mode an id already present keeps its position but takes the
// incoming attributes, and a new id is pushed to the end. The result never
// holds the same id twice.
func Reconcile(existing, incoming []api.Character, mode Mode) []api.Character {
	if mode == ModeReplace {
		existing = nil
	}

	out := make([]api.Character, 0, len(existing)+len(incoming))
	index := make(map[int]int, len(existing)+len(incoming))

	for _, c := range existing {
		if i, ok := index[c.ID]; ok {
			out[i] = c
			continue
		}
		index[c.ID] = len(out)
		out = append(out, c)
	}
	for _, c := range incoming {
		if i, ok := index[c.ID]; ok {
			out[i] = c
			continue
		}
		index[c.ID] = len(out)
		out = append(out, c)
	}
	return out
}
