package placement

import (
	"time"

	"github.com/eugenenazirov/shelfplan/internal/catalog"
	"github.com/eugenenazirov/shelfplan/internal/shelf"
)

// GreedyPlace sorts a private copy of products by sales descending (stable)
// and puts each one into the lowest-indexed shelf with room. Unlike
// StaticPlace the scan always restarts at shelf 0. The sort is part of the
// timed section.
func GreedyPlace(products []catalog.Product, shelfCount, capacity int) (Result, error) {
	if err := validate(products, shelfCount, capacity); err != nil {
		return Result{}, err
	}

	ordered := catalog.Clone(products)
	shelves := shelf.New(shelfCount, capacity)

	start := time.Now()
	catalog.SortBySalesDesc(ordered)
	for _, p := range ordered {
		for i := range shelves {
			if shelves[i].Add(p) {
				break
			}
		}
	}
	elapsed := time.Since(start)

	return finish(Result{
		Strategy: Greedy,
		Shelves:  shelves,
		Elapsed:  elapsed,
	}), nil
}
