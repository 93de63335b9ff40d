// Package placement assigns products to fixed-capacity shelves. Three
// strategies are available and share the same contract: inputs are never
// mutated, every returned shelf has the requested capacity, and a product
// that fits nowhere is dropped rather than reported as an error.
package placement

import (
	"fmt"

	"github.com/eugenenazirov/shelfplan/internal/catalog"
	"github.com/eugenenazirov/shelfplan/internal/shelf"
)

type placeFunc func(products []catalog.Product, shelfCount, capacity int) (Result, error)

type placer struct {
	strategy Strategy
	place    placeFunc
}

// New returns the Placer for strategy.
func New(strategy Strategy) (Placer, error) {
	switch strategy {
	case Static:
		return &placer{strategy: strategy, place: StaticPlace}, nil
	case Greedy:
		return &placer{strategy: strategy, place: GreedyPlace}, nil
	case Knapsack:
		return &placer{strategy: strategy, place: KnapsackPlace}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(strategy))
	}
}

func (p *placer) Strategy() Strategy {
	return p.strategy
}

func (p *placer) Place(products []catalog.Product, shelfCount, capacity int) (Result, error) {
	return p.place(products, shelfCount, capacity)
}

func validate(products []catalog.Product, shelfCount, capacity int) error {
	if shelfCount < 0 {
		return fmt.Errorf("%w: shelf count %d is negative", ErrInvalidArgument, shelfCount)
	}
	if capacity < 0 {
		return fmt.Errorf("%w: shelf capacity %d is negative", ErrInvalidArgument, capacity)
	}
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
	}
	return nil
}

func finish(res Result) Result {
	res.Efficiency = shelf.Efficiency(res.Shelves)
	return res
}
