package placement

import (
	"time"

	"github.com/eugenenazirov/shelfplan/internal/catalog"
	"github.com/eugenenazirov/shelfplan/internal/shelf"
)

// KnapsackPlace fills shelves left to right. For each shelf it solves the 0/1
// knapsack over the products not yet placed (maximise sales, total volume at
// most capacity), places the optimal subset and removes it from the pool.
// Each shelf is optimal on its own; the whole assignment is not a global
// optimum. Shelves left once the pool is empty stay empty.
//
// The returned Result carries a KnapsackTrace holding the DP table and the
// chosen products of shelf 0 only.
func KnapsackPlace(products []catalog.Product, shelfCount, capacity int) (Result, error) {
	if err := validate(products, shelfCount, capacity); err != nil {
		return Result{}, err
	}

	pool := catalog.Clone(products)
	shelves := shelf.New(shelfCount, capacity)
	trace := &KnapsackTrace{}

	start := time.Now()
	for i := range shelves {
		if len(pool) == 0 {
			break
		}

		table := knapsackTable(pool, capacity)
		picked := backtrack(table, pool, capacity)

		for _, idx := range picked {
			shelves[i].Add(pool[idx])
		}

		if i == 0 {
			trace.Table = table
			trace.Chosen = make([]catalog.Product, 0, len(picked))
			for _, idx := range picked {
				trace.Chosen = append(trace.Chosen, pool[idx])
			}
		}

		pool = without(pool, picked)
	}
	elapsed := time.Since(start)

	return finish(Result{
		Strategy: Knapsack,
		Shelves:  shelves,
		Elapsed:  elapsed,
		Knapsack: trace,
	}), nil
}

// knapsackTable fills dp[i][c], the best total sales reachable with the
// first i items and a volume budget of c. Rows share one backing array.
func knapsackTable(items []catalog.Product, capacity int) [][]int {
	n := len(items)
	width := capacity + 1

	cells := make([]int, (n+1)*width)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = cells[i*width : (i+1)*width : (i+1)*width]
	}

	for i := 1; i <= n; i++ {
		w, v := items[i-1].Volume, items[i-1].Sales
		prev, row := dp[i-1], dp[i]
		for c := 0; c <= capacity; c++ {
			row[c] = prev[c]
			if w <= c && prev[c-w]+v > row[c] {
				row[c] = prev[c-w] + v
			}
		}
	}
	return dp
}

// backtrack walks from dp[n][capacity] back to row 0 and returns the indices
// of the chosen items, highest index first.
func backtrack(dp [][]int, items []catalog.Product, capacity int) []int {
	picked := make([]int, 0)
	c := capacity
	for i := len(items); i >= 1; i-- {
		if dp[i][c] != dp[i-1][c] {
			picked = append(picked, i-1)
			c -= items[i-1].Volume
		}
	}
	return picked
}

// without filters the picked indices out of pool, keeping the relative order
// of the remaining products. pool is reused as the destination.
func without(pool []catalog.Product, picked []int) []catalog.Product {
	if len(picked) == 0 {
		return pool
	}

	drop := make([]bool, len(pool))
	for _, idx := range picked {
		drop[idx] = true
	}

	kept := pool[:0]
	for i, p := range pool {
		if !drop[i] {
			kept = append(kept, p)
		}
	}
	return kept
}
