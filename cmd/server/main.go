package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/shelfplan/internal/application"
	"github.com/eugenenazirov/shelfplan/internal/config"
	"github.com/eugenenazirov/shelfplan/internal/logging"
)

var signalNotify = signal.Notify

func main() {
	overrides, err := parseFlags(os.Args[1:])
	kingpin.FatalIfError(err, "invalid arguments")

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

// parseFlags maps command-line flags onto config overrides. Flags the user
// did not pass stay nil so lower-precedence sources apply.
func parseFlags(args []string) (*config.CLIOverrides, error) {
	kingpinApp := kingpin.New("shelfplan-server", "Warehouse shelf placement service - compares static, greedy and knapsack placement over HTTP")

	var (
		portSet, levelSet, productsSet, shelvesSet, capacitySet, seedSet bool
	)
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	port := kingpinApp.Flag("port", "HTTP port exposed by the service").IsSetByUser(&portSet).String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").IsSetByUser(&levelSet).String()
	products := kingpinApp.Flag("products", "Size of the catalog generated at startup").IsSetByUser(&productsSet).Int()
	shelves := kingpinApp.Flag("shelves", "Default number of shelves per placement").IsSetByUser(&shelvesSet).Int()
	capacity := kingpinApp.Flag("capacity", "Default volume capacity of each shelf").IsSetByUser(&capacitySet).Int()
	seed := kingpinApp.Flag("seed", "Catalog generator seed (0 derives one from the clock)").IsSetByUser(&seedSet).Uint64()
	rateLimitRPSFlag := kingpinApp.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := kingpinApp.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	if _, err := kingpinApp.Parse(args); err != nil {
		return nil, err
	}

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
	}
	if portSet {
		overrides.Port = port
	}
	if levelSet {
		overrides.LogLevel = logLevel
	}
	if productsSet {
		overrides.ProductCount = products
	}
	if shelvesSet {
		overrides.ShelfCount = shelves
	}
	if capacitySet {
		overrides.ShelfCapacity = capacity
	}
	if seedSet {
		overrides.Seed = seed
	}
	if *rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = rateLimitRPSFlag
	}
	if *rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = rateLimitBurstFlag
	}
	return overrides, nil
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	logger.Info("shutting down server",
		zap.Stringer("signal", sig),
		zap.Duration("grace_period", timeout),
	)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
