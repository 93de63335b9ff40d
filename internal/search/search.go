// Package search looks products up by name, case-insensitively, either by a
// linear scan or by binary search over a name-sorted catalog.
package search

import (
	"time"

	"github.com/eugenenazirov/shelfplan/internal/catalog"
)

// Result reports whether name was found, at which index of the searched
// slice (-1 when not found), and how long the search loop took.
type Result struct {
	Found   bool
	Index   int
	Elapsed time.Duration
}

// ElapsedUs is Elapsed truncated to microseconds.
func (r Result) ElapsedUs() int64 {
	return r.Elapsed.Microseconds()
}

// Linear scans products in order and returns the first case-insensitive
// match. It runs in O(n).
func Linear(products []catalog.Product, name string) Result {
	key := catalog.NameKey(name)

	start := time.Now()
	for i, p := range products {
		if catalog.NameKey(p.Name) == key {
			return Result{Found: true, Index: i, Elapsed: time.Since(start)}
		}
	}
	return Result{Found: false, Index: -1, Elapsed: time.Since(start)}
}

// Binary runs a binary search for name in O(log n).
//
// sorted must already be ordered by catalog.SortByNameAsc. The precondition
// is not checked and the input is never re-sorted: on unsorted input the
// result is unspecified. When several products share a name key, any one of
// their indices may be returned.
func Binary(sorted []catalog.Product, name string) Result {
	key := catalog.NameKey(name)

	start := time.Now()
	lo, hi := 0, len(sorted)-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		cur := catalog.NameKey(sorted[mid].Name)
		switch {
		case cur == key:
			return Result{Found: true, Index: mid, Elapsed: time.Since(start)}
		case cur < key:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return Result{Found: false, Index: -1, Elapsed: time.Since(start)}
}
