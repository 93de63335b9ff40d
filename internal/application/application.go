package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/shelfplan/internal/api"
	"github.com/eugenenazirov/shelfplan/internal/catalog"
	"github.com/eugenenazirov/shelfplan/internal/config"
	"github.com/eugenenazirov/shelfplan/internal/metrics"
	"github.com/eugenenazirov/shelfplan/internal/storage"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	storage  storage.Storage
	recorder *metrics.Recorder
	handler  *api.Handler
	router   http.Handler
	logger   *zap.Logger
	server   *http.Server
}

// New initializes the application with all dependencies from the provided
// configuration and seeds the store with an initial catalog.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	store := storage.NewMemoryStorage()

	var recorder *metrics.Recorder
	if cfg.EnableMetrics {
		recorder = metrics.New()
	}

	handler := api.NewHandler(store,
		api.WithLogger(logger),
		api.WithMetrics(recorder),
		api.WithLimits(api.Limits{
			MaxProductCount:  cfg.MaxProductCount,
			MaxShelfCount:    cfg.MaxShelfCount,
			MaxShelfCapacity: cfg.MaxShelfCapacity,
			MaxBenchmarkN:    cfg.MaxBenchmarkN,
			MaxKnapsackCells: cfg.MaxKnapsackCells,
		}),
		api.WithDefaults(api.Defaults{
			ProductCount:  cfg.ProductCount,
			ShelfCount:    cfg.ShelfCount,
			ShelfCapacity: cfg.ShelfCapacity,
			Seed:          cfg.Seed,
		}),
	)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	products, err := catalog.Generate(cfg.ProductCount, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to generate initial catalog: %w", err)
	}
	meta := storage.CatalogMeta{Seed: &seed, GeneratedAt: time.Now().UTC()}
	if _, err := store.SetCatalog(products, meta); err != nil {
		return nil, fmt.Errorf("failed to store initial catalog: %w", err)
	}
	recorder.SetCatalogSize(len(products))
	logger.Info("initial catalog generated",
		zap.Int("count", len(products)),
		zap.Uint64("seed", seed),
	)

	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	var metricsHandler http.Handler
	if recorder != nil {
		metricsHandler = recorder.Handler()
	}

	return &App{
		storage:  store,
		recorder: recorder,
		handler:  handler,
		router:   apiRouter,
		logger:   logger,
		server:   NewServer(cfg, BuildRootHandler(apiRouter, metricsHandler)),
	}, nil
}

// BuildRootHandler routes API requests and, when metricsHandler is non-nil,
// exposes it on /metrics.
func BuildRootHandler(apiHandler, metricsHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
