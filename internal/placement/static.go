package placement

import (
	"time"

	"github.com/eugenenazirov/shelfplan/internal/catalog"
	"github.com/eugenenazirov/shelfplan/internal/shelf"
)

// StaticPlace places products in input order. A cursor rotates over the
// shelves: each product scans at most shelfCount shelves starting at the
// cursor, the cursor advances on every attempt whether or not the product
// fits, and the product goes into the first shelf with room. A product that
// fits nowhere is dropped.
func StaticPlace(products []catalog.Product, shelfCount, capacity int) (Result, error) {
	if err := validate(products, shelfCount, capacity); err != nil {
		return Result{}, err
	}

	shelves := shelf.New(shelfCount, capacity)

	start := time.Now()
	cursor := 0
	for _, p := range products {
		for tries := 0; tries < shelfCount; tries++ {
			s := &shelves[cursor]
			cursor = (cursor + 1) % shelfCount
			if s.Add(p) {
				break
			}
		}
	}
	elapsed := time.Since(start)

	return finish(Result{
		Strategy: Static,
		Shelves:  shelves,
		Elapsed:  elapsed,
	}), nil
}
