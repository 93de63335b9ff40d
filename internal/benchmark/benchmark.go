// Package benchmark times the three placement strategies over growing
// catalog sizes. Runs are sequential; every N gets a freshly generated
// catalog that all three strategies share.
package benchmark

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eugenenazirov/shelfplan/internal/catalog"
	"github.com/eugenenazirov/shelfplan/internal/placement"
)

// ErrInvalidOptions is returned when a benchmark bound is not positive.
var ErrInvalidOptions = errors.New("benchmark options must be positive")

// Options bounds a benchmark run.
type Options struct {
	MaxN          int
	ShelfCount    int
	ShelfCapacity int
	Seed          uint64
}

// Sample holds the placement time of each strategy for one catalog size.
type Sample struct {
	N        int
	Static   time.Duration
	Greedy   time.Duration
	Knapsack time.Duration
}

// Validate checks that every bound is positive.
func (o Options) Validate() error {
	if o.MaxN <= 0 || o.ShelfCount <= 0 || o.ShelfCapacity <= 0 {
		return fmt.Errorf("%w: maxN=%d shelves=%d capacity=%d", ErrInvalidOptions, o.MaxN, o.ShelfCount, o.ShelfCapacity)
	}
	return nil
}

// Run produces one Sample per N in 1..MaxN. The generator is seeded once, so
// a given Options value always times the same catalogs. ctx is checked
// between sizes.
func Run(ctx context.Context, opts Options) ([]Sample, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	gen := catalog.NewGenerator(opts.Seed)
	samples := make([]Sample, 0, opts.MaxN)

	for n := 1; n <= opts.MaxN; n++ {
		if err := ctx.Err(); err != nil {
			return samples, err
		}

		products, err := gen.Generate(n)
		if err != nil {
			return samples, err
		}

		sample := Sample{N: n}
		for _, strategy := range placement.Strategies() {
			placer, err := placement.New(strategy)
			if err != nil {
				return samples, err
			}
			res, err := placer.Place(products, opts.ShelfCount, opts.ShelfCapacity)
			if err != nil {
				return samples, fmt.Errorf("%s placement at n=%d: %w", strategy, n, err)
			}
			sample.set(strategy, res.Elapsed)
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

func (s *Sample) set(strategy placement.Strategy, d time.Duration) {
	switch strategy {
	case placement.Static:
		s.Static = d
	case placement.Greedy:
		s.Greedy = d
	case placement.Knapsack:
		s.Knapsack = d
	}
}

// Max returns the slowest time recorded across all samples and strategies.
func Max(samples []Sample) time.Duration {
	var longest time.Duration
	for _, s := range samples {
		longest = max(longest, s.Static, s.Greedy, s.Knapsack)
	}
	return longest
}
