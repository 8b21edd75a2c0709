// Package rank orders entries and carves presentation views out of the
// ordered sequence.
package rank

import (
	"fmt"
	"slices"
)

// Mode selects which slice of a ranked sequence a view shows.
type Mode string

const (
	ModeFastest Mode = "fastest"
	ModeSlowest Mode = "slowest"
	ModeTop     Mode = "top"
	ModeBottom  Mode = "bottom"
	ModeAll     Mode = "all"
)

// ParseMode maps a user-supplied mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFastest, ModeSlowest, ModeTop, ModeBottom, ModeAll:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown filter mode %q", s)
}

// Rank returns a stably sorted copy of entries, ascending by cmp.
// Entries that compare equal keep their original relative order; the
// input is never mutated.
func Rank[T any](entries []T, cmp func(a, b T) int) []T {
	out := make([]T, len(entries))
	copy(out, entries)
	slices.SortStableFunc(out, cmp)
	return out
}

// Filter returns the view of an already-ranked sequence selected by
// mode. The fastest and slowest views are single-element slices so
// every mode yields a sequence.
func Filter[T any](ranked []T, mode Mode) ([]T, error) {
	if len(ranked) == 0 {
		return nil, nil
	}
	switch mode {
	case ModeFastest:
		return ranked[:1], nil
	case ModeSlowest:
		return ranked[len(ranked)-1:], nil
	case ModeTop:
		return ranked[:min(5, len(ranked))], nil
	case ModeBottom:
		if len(ranked) <= 5 {
			return ranked, nil
		}
		return ranked[len(ranked)-5:], nil
	case ModeAll:
		return ranked, nil
	}
	return nil, fmt.Errorf("unknown filter mode %q", mode)
}
