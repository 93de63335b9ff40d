package report

import (
	"fmt"
	"strings"

	"github.com/eugenenazirov/shelfplan/internal/benchmark"
	"github.com/eugenenazirov/shelfplan/internal/placement"
)

// RenderComparison lists efficiency, placed count and placement time for
// each result, in the order given. inputCount is the catalog size the
// results were computed from.
func RenderComparison(results []placement.Result, inputCount int) string {
	var b strings.Builder
	b.WriteString("Warehouse efficiency (%)\n\n")
	for _, res := range results {
		fmt.Fprintf(&b, "%-8s: %6.2f %% | placed %d/%d | %d us\n",
			label(res.Strategy), res.Efficiency, res.Placed(), inputCount, res.ElapsedUs())
	}
	return b.String()
}

// RenderBenchmark prints one row per sample with the time of each strategy
// in microseconds.
func RenderBenchmark(samples []benchmark.Sample) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%6s %12s %12s %12s\n", "N", "static(us)", "greedy(us)", "dp(us)")
	for _, s := range samples {
		fmt.Fprintf(&b, "%6d %12d %12d %12d\n",
			s.N, s.Static.Microseconds(), s.Greedy.Microseconds(), s.Knapsack.Microseconds())
	}
	return b.String()
}

func label(s placement.Strategy) string {
	switch s {
	case placement.Static:
		return "Static"
	case placement.Greedy:
		return "Greedy"
	case placement.Knapsack:
		return "DP"
	default:
		return s.String()
	}
}
