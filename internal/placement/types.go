package placement

import (
	"fmt"
	"strings"
	"time"

	"github.com/eugenenazirov/shelfplan/internal/catalog"
	"github.com/eugenenazirov/shelfplan/internal/shelf"
)

// Strategy selects one of the placement algorithms.
type Strategy int

const (
	// Static places products in input order with a rotating first-fit cursor.
	Static Strategy = iota
	// Greedy places products by descending sales, first-fit from shelf 0.
	Greedy
	// Knapsack fills shelves one by one with an optimal 0/1 knapsack subset.
	Knapsack
)

// Strategies lists every strategy in presentation order.
func Strategies() []Strategy {
	return []Strategy{Static, Greedy, Knapsack}
}

func (s Strategy) String() string {
	switch s {
	case Static:
		return "static"
	case Greedy:
		return "greedy"
	case Knapsack:
		return "dp"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy accepts "static", "greedy", "dp" or "knapsack" in any case.
func ParseStrategy(raw string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "static":
		return Static, nil
	case "greedy":
		return Greedy, nil
	case "dp", "knapsack":
		return Knapsack, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, raw)
	}
}

// Result is the shelf assignment produced by one placement run.
// Elapsed covers only the placement loop, not input validation or
// efficiency computation.
type Result struct {
	Strategy   Strategy
	Shelves    []shelf.Shelf
	Efficiency float64
	Elapsed    time.Duration

	// Knapsack is set only by the Knapsack strategy.
	Knapsack *KnapsackTrace
}

// KnapsackTrace is the diagnostic output of the knapsack strategy. It always
// describes shelf 0 only: later shelves compute their own tables but discard
// them once their subset is extracted. Both fields are empty when no shelf
// was solved (zero shelves or an empty catalog).
type KnapsackTrace struct {
	// Table has len(candidates)+1 rows and capacity+1 columns.
	Table [][]int
	// Chosen lists the products selected for shelf 0 in backtracking order.
	Chosen []catalog.Product
}

// Best is the optimal total sales of shelf 0, the bottom-right cell of
// Table, or 0 when no table was built.
func (t *KnapsackTrace) Best() int {
	if t == nil || len(t.Table) == 0 {
		return 0
	}
	last := t.Table[len(t.Table)-1]
	if len(last) == 0 {
		return 0
	}
	return last[len(last)-1]
}

// ElapsedMs is Elapsed truncated to milliseconds.
func (r Result) ElapsedMs() int64 {
	return r.Elapsed.Milliseconds()
}

// ElapsedUs is Elapsed truncated to microseconds.
func (r Result) ElapsedUs() int64 {
	return r.Elapsed.Microseconds()
}

// Placed is the number of products that ended up on a shelf.
func (r Result) Placed() int {
	return shelf.Placed(r.Shelves)
}

// Unplaced is the number of input products that were dropped, given the
// size of the input the result was computed from.
func (r Result) Unplaced(inputCount int) int {
	return inputCount - r.Placed()
}

// Placer is the capability shared by all placement strategies.
type Placer interface {
	Strategy() Strategy
	Place(products []catalog.Product, shelfCount, capacity int) (Result, error)
}
