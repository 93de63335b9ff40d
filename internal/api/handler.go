package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/shelfplan/internal/benchmark"
	"github.com/eugenenazirov/shelfplan/internal/catalog"
	"github.com/eugenenazirov/shelfplan/internal/metrics"
	"github.com/eugenenazirov/shelfplan/internal/placement"
	"github.com/eugenenazirov/shelfplan/internal/report"
	"github.com/eugenenazirov/shelfplan/internal/search"
	"github.com/eugenenazirov/shelfplan/internal/shelf"
	"github.com/eugenenazirov/shelfplan/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Limits bounds request sizes at the HTTP boundary. MaxKnapsackCells caps
// (products+1) x (capacity+1), the size of one knapsack table.
type Limits struct {
	MaxProductCount  int
	MaxShelfCount    int
	MaxShelfCapacity int
	MaxBenchmarkN    int
	MaxKnapsackCells int
}

// Defaults fill request fields the client omitted. A zero Seed means a
// time-derived seed.
type Defaults struct {
	ProductCount  int
	ShelfCount    int
	ShelfCapacity int
	Seed          uint64
}

// Handler wires placement, search and storage dependencies into HTTP handlers.
type Handler struct {
	storage  storage.Storage
	placers  map[placement.Strategy]placement.Placer
	recorder *metrics.Recorder
	logger   *zap.Logger

	limits   Limits
	defaults Defaults

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithMetrics records placement and search observations on rec.
func WithMetrics(rec *metrics.Recorder) HandlerOption {
	return func(h *Handler) {
		h.recorder = rec
	}
}

// WithLogger sets the logger used for domain events.
func WithLogger(logger *zap.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithLimits overrides the request size limits.
func WithLimits(limits Limits) HandlerOption {
	return func(h *Handler) {
		h.limits = limits
	}
}

// WithDefaults overrides the values used for omitted request fields.
func WithDefaults(defaults Defaults) HandlerOption {
	return func(h *Handler) {
		h.defaults = defaults
	}
}

// NewHandler constructs a Handler backed by store.
func NewHandler(store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		storage: store,
		placers: make(map[placement.Strategy]placement.Placer, len(placement.Strategies())),
		logger:  zap.NewNop(),
		limits: Limits{
			MaxProductCount:  5000,
			MaxShelfCount:    100,
			MaxShelfCapacity: 10000,
			MaxBenchmarkN:    500,
			MaxKnapsackCells: 2_000_000,
		},
		defaults: Defaults{
			ProductCount:  100,
			ShelfCount:    5,
			ShelfCapacity: 100,
		},
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, strategy := range placement.Strategies() {
		p, err := placement.New(strategy)
		if err != nil {
			panic(fmt.Sprintf("api: build placer %s: %v", strategy, err))
		}
		h.placers[strategy] = p
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	_ = r
	snap, err := h.storage.Catalog()
	if err != nil {
		h.writeStorageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, catalogResponse{
		Count:       len(snap.Products),
		Seed:        snap.Meta.Seed,
		GeneratedAt: snap.Meta.GeneratedAt,
		Products:    nonNilProducts(snap.Products),
	})
}

func (h *Handler) handleGenerateCatalog(w http.ResponseWriter, r *http.Request) {
	var req catalogRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	count := h.defaults.ProductCount
	if req.Count != nil {
		count = *req.Count
	}
	if count > h.limits.MaxProductCount {
		writeError(w, http.StatusBadRequest, "Invalid request",
			fmt.Sprintf("count must not exceed %d", h.limits.MaxProductCount))
		return
	}

	seed := h.resolveSeed(req.Seed)
	products, err := catalog.Generate(count, seed)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidCount) {
			writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	meta := storage.CatalogMeta{Seed: &seed, GeneratedAt: h.clock()}
	if _, err := h.storage.SetCatalog(products, meta); err != nil {
		writeInternalError(w, err)
		return
	}
	h.recorder.SetCatalogSize(len(products))

	h.logger.Info("catalog generated",
		zap.Int("count", len(products)),
		zap.Uint64("seed", seed),
		zap.String("request_id", requestIDFromContext(r.Context())),
	)

	writeJSON(w, http.StatusCreated, catalogResponse{
		Count:       len(products),
		Seed:        meta.Seed,
		GeneratedAt: meta.GeneratedAt,
		Products:    nonNilProducts(products),
		Message:     "Catalog generated; previous placements were discarded",
	})
}

func (h *Handler) handlePlace(w http.ResponseWriter, r *http.Request) {
	strategy, ok := h.strategyFromPath(w, r)
	if !ok {
		return
	}

	var req placementRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	shelfCount := valueOr(req.ShelfCount, h.defaults.ShelfCount)
	capacity := valueOr(req.ShelfCapacity, h.defaults.ShelfCapacity)
	if msg := h.checkShelfLimits(shelfCount, capacity); msg != "" {
		writeError(w, http.StatusBadRequest, "Invalid request", msg)
		return
	}

	snap, err := h.storage.Catalog()
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	products := snap.Products
	if strategy == placement.Knapsack {
		if msg := h.checkKnapsackCells(len(products), capacity); msg != "" {
			writeError(w, http.StatusBadRequest, "Invalid request", msg,
				"Lower shelfCapacity or generate a smaller catalog")
			return
		}
	}

	res, err := h.placers[strategy].Place(products, shelfCount, capacity)
	if err != nil {
		if errors.Is(err, placement.ErrInvalidArgument) {
			writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	if err := h.storage.SetResult(res, snap.Generation); err != nil {
		h.writeStorageError(w, err)
		return
	}
	h.recorder.ObservePlacement(res, len(products))

	h.logger.Info("placement completed",
		zap.Stringer("strategy", strategy),
		zap.Int("products", len(products)),
		zap.Int("shelves", shelfCount),
		zap.Int("capacity", capacity),
		zap.Int("placed", res.Placed()),
		zap.Float64("efficiency", res.Efficiency),
		zap.Duration("elapsed", res.Elapsed),
		zap.String("request_id", requestIDFromContext(r.Context())),
	)

	writeJSON(w, http.StatusOK, newPlacementResponse(res, len(products)))
}

func (h *Handler) handleGetPlacement(w http.ResponseWriter, r *http.Request) {
	strategy, ok := h.strategyFromPath(w, r)
	if !ok {
		return
	}

	entry, err := h.storage.Result(strategy)
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPlacementResponse(entry.Result, entry.InputCount))
}

func (h *Handler) handleTable(w http.ResponseWriter, r *http.Request) {
	strategy, ok := h.strategyFromPath(w, r)
	if !ok {
		return
	}

	entry, err := h.storage.Result(strategy)
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	if entry.Result.Knapsack == nil {
		writeError(w, http.StatusNotFound, "No table",
			fmt.Sprintf("strategy %s does not build a DP table", strategy), "Use /api/placements/dp/table")
		return
	}
	writeJSON(w, http.StatusOK, newTableResponse(entry.Result))
}

func (h *Handler) handleMap(w http.ResponseWriter, r *http.Request) {
	strategy, ok := h.strategyFromPath(w, r)
	if !ok {
		return
	}

	entry, err := h.storage.Result(strategy)
	if err != nil {
		h.writeStorageError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(report.RenderMap(entry.Result.Shelves)))
}

func (h *Handler) handleEfficiency(w http.ResponseWriter, r *http.Request) {
	_ = r
	entries, err := h.storage.Results()
	if err != nil {
		h.writeStorageError(w, err)
		return
	}

	stored := make(map[placement.Strategy]bool, len(entries))
	results := make([]placement.Result, 0, len(entries))
	for _, e := range entries {
		stored[e.Result.Strategy] = true
		results = append(results, e.Result)
	}
	var missing []string
	for _, strategy := range placement.Strategies() {
		if !stored[strategy] {
			missing = append(missing, strategy.String())
		}
	}
	if len(missing) > 0 {
		writeError(w, http.StatusConflict, "Comparison unavailable",
			"not run yet: "+strings.Join(missing, ", "),
			"Run every placement strategy on the current catalog first")
		return
	}

	inputCount := entries[0].InputCount
	resp := efficiencyResponse{
		Products: inputCount,
		Results:  make([]efficiencyEntry, 0, len(results)),
		Report:   report.RenderComparison(results, inputCount),
	}
	for _, res := range results {
		resp.Results = append(resp.Results, efficiencyEntry{
			Strategy:   res.Strategy.String(),
			Efficiency: res.Efficiency,
			Placed:     res.Placed(),
			ElapsedUs:  res.ElapsedUs(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	name := query.Get("name")
	if strings.TrimSpace(name) == "" {
		writeError(w, http.StatusBadRequest, "Invalid request", "name query parameter is required")
		return
	}

	method := search.MethodLinear
	if raw := query.Get("method"); raw != "" {
		parsed, err := search.ParseMethod(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request", err.Error(), "Use method=linear or method=binary")
			return
		}
		method = parsed
	}

	snap, err := h.storage.Catalog()
	if err != nil {
		h.writeStorageError(w, err)
		return
	}

	out, err := search.Run(method, snap.Products, name)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	h.recorder.ObserveSearch(out)

	resp := searchResponse{
		Name:          name,
		Method:        method.String(),
		Found:         out.Result.Found,
		Index:         out.Result.Index,
		ElapsedUs:     out.Result.ElapsedUs(),
		SortElapsedUs: out.SortElapsed.Microseconds(),
		Product:       out.Product,
	}
	if out.Result.Found {
		if latest, err := h.storage.Latest(); err == nil && latest.Generation == snap.Generation {
			if loc, ok := shelf.Locate(latest.Result.Shelves, name); ok {
				resp.Location = newLocationView(latest.Result, loc)
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleBenchmark(w http.ResponseWriter, r *http.Request) {
	var req benchmarkRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if req.MaxN > h.limits.MaxBenchmarkN {
		writeError(w, http.StatusBadRequest, "Invalid request",
			fmt.Sprintf("maxN must not exceed %d", h.limits.MaxBenchmarkN))
		return
	}

	opts := benchmark.Options{
		MaxN:          req.MaxN,
		ShelfCount:    valueOr(req.ShelfCount, h.defaults.ShelfCount),
		ShelfCapacity: valueOr(req.ShelfCapacity, h.defaults.ShelfCapacity),
		Seed:          h.resolveSeed(req.Seed),
	}
	if msg := h.checkShelfLimits(opts.ShelfCount, opts.ShelfCapacity); msg != "" {
		writeError(w, http.StatusBadRequest, "Invalid request", msg)
		return
	}
	if msg := h.checkKnapsackCells(opts.MaxN, opts.ShelfCapacity); msg != "" {
		writeError(w, http.StatusBadRequest, "Invalid request", msg, "Lower maxN or shelfCapacity")
		return
	}

	samples, err := benchmark.Run(r.Context(), opts)
	if err != nil {
		switch {
		case errors.Is(err, benchmark.ErrInvalidOptions):
			writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			writeError(w, http.StatusServiceUnavailable, "Benchmark aborted", err.Error())
		default:
			writeInternalError(w, err)
		}
		return
	}

	h.logger.Info("benchmark completed",
		zap.Int("max_n", opts.MaxN),
		zap.Duration("max_elapsed", benchmark.Max(samples)),
		zap.String("request_id", requestIDFromContext(r.Context())),
	)

	writeJSON(w, http.StatusOK, benchmarkResponse{
		MaxN:          opts.MaxN,
		ShelfCount:    opts.ShelfCount,
		ShelfCapacity: opts.ShelfCapacity,
		Seed:          opts.Seed,
		MaxUs:         benchmark.Max(samples).Microseconds(),
		Samples:       newBenchmarkSamples(samples),
	})
}

func (h *Handler) strategyFromPath(w http.ResponseWriter, r *http.Request) (placement.Strategy, bool) {
	strategy, err := placement.ParseStrategy(r.PathValue("strategy"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown strategy", err.Error(), "Use static, greedy or dp")
		return 0, false
	}
	return strategy, true
}

func (h *Handler) checkShelfLimits(shelfCount, capacity int) string {
	switch {
	case shelfCount > h.limits.MaxShelfCount:
		return fmt.Sprintf("shelfCount must not exceed %d", h.limits.MaxShelfCount)
	case capacity > h.limits.MaxShelfCapacity:
		return fmt.Sprintf("shelfCapacity must not exceed %d", h.limits.MaxShelfCapacity)
	}
	return ""
}

// checkKnapsackCells rejects a knapsack run whose table would exceed
// MaxKnapsackCells.
func (h *Handler) checkKnapsackCells(products, capacity int) string {
	cells := int64(products+1) * int64(capacity+1)
	if cells > int64(h.limits.MaxKnapsackCells) {
		return fmt.Sprintf("knapsack table of %d products x capacity %d needs %d cells, limit is %d",
			products, capacity, cells, h.limits.MaxKnapsackCells)
	}
	return ""
}

func (h *Handler) resolveSeed(requested *uint64) uint64 {
	if requested != nil {
		return *requested
	}
	if h.defaults.Seed != 0 {
		return h.defaults.Seed
	}
	return uint64(h.clock().UnixNano())
}

func (h *Handler) writeStorageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNoCatalog):
		writeError(w, http.StatusConflict, "No catalog", err.Error(), "POST /api/catalog to generate one")
	case errors.Is(err, storage.ErrNoResult):
		writeError(w, http.StatusNotFound, "No placement", err.Error())
	case errors.Is(err, storage.ErrStaleCatalog):
		writeError(w, http.StatusConflict, "Catalog replaced", err.Error(), "Run the placement again on the current catalog")
	default:
		writeInternalError(w, err)
	}
}

func valueOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
