package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/eugenenazirov/shelfplan/internal/benchmark"
	"github.com/eugenenazirov/shelfplan/internal/catalog"
	"github.com/eugenenazirov/shelfplan/internal/logging"
	"github.com/eugenenazirov/shelfplan/internal/placement"
	"github.com/eugenenazirov/shelfplan/internal/report"
	"github.com/eugenenazirov/shelfplan/internal/search"
	"github.com/eugenenazirov/shelfplan/internal/shelf"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, logging.New); err != nil {
		fmt.Fprintf(os.Stderr, "shelfctl: %v\n", err)
		os.Exit(1)
	}
}

type loggerFactory func(level string) (*zap.Logger, error)

// workload holds the catalog and shelf flags shared by every subcommand.
type workload struct {
	products int
	shelves  int
	capacity int
	seed     uint64
}

func (w workload) resolvedSeed() uint64 {
	if w.seed != 0 {
		return w.seed
	}
	return uint64(time.Now().UnixNano())
}

func run(ctx context.Context, args []string, stdout io.Writer, newLogger loggerFactory) error {
	app := kingpin.New("shelfctl", "Place a generated product catalog onto warehouse shelves and compare strategies")
	app.UsageWriter(stdout)

	var wl workload
	logLevel := app.Flag("log-level", "Log level (debug, info, warn, error)").Default("warn").String()
	plain := app.Flag("plain", "Disable colours in map output").Bool()
	app.Flag("products", "Number of products to generate").Short('n').Default("20").IntVar(&wl.products)
	app.Flag("shelves", "Number of shelves").Short('s').Default("5").IntVar(&wl.shelves)
	app.Flag("capacity", "Volume capacity of each shelf").Short('c').Default("20").IntVar(&wl.capacity)
	app.Flag("seed", "Generator seed (0 derives one from the clock)").Default("0").Uint64Var(&wl.seed)

	placeCmd := app.Command("place", "Run one placement strategy and print its summary")
	placeStrategy := placeCmd.Flag("strategy", "static, greedy or dp").Default("greedy").String()
	placeMap := placeCmd.Flag("map", "Also print the shelf map").Bool()

	mapCmd := app.Command("map", "Run one placement strategy and print the shelf map")
	mapStrategy := mapCmd.Flag("strategy", "static, greedy or dp").Default("greedy").String()

	compareCmd := app.Command("compare", "Run every strategy on the same catalog and compare efficiency")

	searchCmd := app.Command("search", "Search the catalog by product name")
	searchName := searchCmd.Flag("name", "Product name to look up").Required().String()
	searchMethod := searchCmd.Flag("method", "linear or binary").Default("linear").String()

	benchCmd := app.Command("bench", "Time every strategy for catalog sizes 1..max-n")
	benchMaxN := benchCmd.Flag("max-n", "Largest catalog size to time").Default("100").Int()

	command, err := app.Parse(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(*logLevel)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	renderMap := func(shelves []shelf.Shelf) string {
		if *plain {
			return report.RenderMap(shelves)
		}
		return report.RenderStyledMap(shelves, lipgloss.NewRenderer(stdout))
	}

	switch command {
	case placeCmd.FullCommand():
		return runPlace(stdout, logger, wl, *placeStrategy, *placeMap, renderMap)
	case mapCmd.FullCommand():
		return runPlace(stdout, logger, wl, *mapStrategy, true, renderMap)
	case compareCmd.FullCommand():
		return runCompare(stdout, logger, wl)
	case searchCmd.FullCommand():
		return runSearch(stdout, logger, wl, *searchName, *searchMethod)
	case benchCmd.FullCommand():
		return runBench(ctx, stdout, logger, wl, *benchMaxN)
	}
	return fmt.Errorf("unknown command %q", command)
}

func generate(logger *zap.Logger, wl workload) ([]catalog.Product, error) {
	seed := wl.resolvedSeed()
	products, err := catalog.Generate(wl.products, seed)
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog generated", zap.Int("count", len(products)), zap.Uint64("seed", seed))
	return products, nil
}

func place(logger *zap.Logger, strategy placement.Strategy, products []catalog.Product, wl workload) (placement.Result, error) {
	placer, err := placement.New(strategy)
	if err != nil {
		return placement.Result{}, err
	}
	res, err := placer.Place(products, wl.shelves, wl.capacity)
	if err != nil {
		return placement.Result{}, err
	}
	logger.Debug("placement completed",
		zap.Stringer("strategy", strategy),
		zap.Int("placed", res.Placed()),
		zap.Float64("efficiency", res.Efficiency),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

func runPlace(stdout io.Writer, logger *zap.Logger, wl workload, rawStrategy string, withMap bool, renderMap func([]shelf.Shelf) string) error {
	strategy, err := placement.ParseStrategy(rawStrategy)
	if err != nil {
		return err
	}
	products, err := generate(logger, wl)
	if err != nil {
		return err
	}
	res, err := place(logger, strategy, products, wl)
	if err != nil {
		return err
	}

	if withMap {
		fmt.Fprint(stdout, renderMap(res.Shelves))
	}
	fmt.Fprintf(stdout, "%s: efficiency %.2f %% | placed %d/%d | %d ms (%d us)\n",
		strategy, res.Efficiency, res.Placed(), len(products), res.ElapsedMs(), res.ElapsedUs())
	if res.Knapsack != nil && len(res.Knapsack.Table) > 0 {
		fmt.Fprintf(stdout, "dp shelf 1: best sales %d from %d products\n", res.Knapsack.Best(), len(res.Knapsack.Chosen))
	}
	return nil
}

func runCompare(stdout io.Writer, logger *zap.Logger, wl workload) error {
	products, err := generate(logger, wl)
	if err != nil {
		return err
	}

	results := make([]placement.Result, 0, len(placement.Strategies()))
	for _, strategy := range placement.Strategies() {
		res, err := place(logger, strategy, products, wl)
		if err != nil {
			return err
		}
		results = append(results, res)
	}
	fmt.Fprint(stdout, report.RenderComparison(results, len(products)))
	return nil
}

func runSearch(stdout io.Writer, logger *zap.Logger, wl workload, name, rawMethod string) error {
	method, err := search.ParseMethod(rawMethod)
	if err != nil {
		return err
	}
	products, err := generate(logger, wl)
	if err != nil {
		return err
	}

	out, err := search.Run(method, products, name)
	if err != nil {
		return err
	}
	if !out.Result.Found {
		fmt.Fprintf(stdout, "%q not found (%s, %d us)\n", name, method, out.Result.ElapsedUs())
		return nil
	}

	fmt.Fprintf(stdout, "%q found at index %d (%s, %d us", name, out.Result.Index, method, out.Result.ElapsedUs())
	if method == search.MethodBinary {
		fmt.Fprintf(stdout, ", sort %d us", out.SortElapsed.Microseconds())
	}
	fmt.Fprintf(stdout, "): sales %d, volume %d\n", out.Product.Sales, out.Product.Volume)

	res, err := place(logger, placement.Greedy, products, wl)
	if err != nil {
		return err
	}
	if loc, ok := shelf.Locate(res.Shelves, name); ok {
		fmt.Fprintf(stdout, "greedy placement puts it on shelf %d, slot %d\n", loc.Shelf+1, loc.Slot+1)
	} else {
		fmt.Fprintln(stdout, "greedy placement leaves it unplaced")
	}
	return nil
}

func runBench(ctx context.Context, stdout io.Writer, logger *zap.Logger, wl workload, maxN int) error {
	opts := benchmark.Options{
		MaxN:          maxN,
		ShelfCount:    wl.shelves,
		ShelfCapacity: wl.capacity,
		Seed:          wl.resolvedSeed(),
	}
	samples, err := benchmark.Run(ctx, opts)
	if err != nil {
		return err
	}
	logger.Debug("benchmark completed", zap.Int("max_n", maxN), zap.Duration("max_elapsed", benchmark.Max(samples)))
	fmt.Fprint(stdout, report.RenderBenchmark(samples))
	return nil
}
