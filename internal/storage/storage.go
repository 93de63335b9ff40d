package storage

import (
	"errors"
	"sync"
	"time"

	"github.com/eugenenazirov/shelfplan/internal/catalog"
	"github.com/eugenenazirov/shelfplan/internal/placement"
	"github.com/eugenenazirov/shelfplan/internal/shelf"
)

var (
	// ErrNoCatalog indicates no catalog has been stored yet.
	ErrNoCatalog = errors.New("no product catalog has been generated")
	// ErrNoResult indicates the requested strategy has not been run on the current catalog.
	ErrNoResult = errors.New("placement has not been run for the current catalog")
	// ErrStaleCatalog indicates a result was computed from a catalog that has since been replaced.
	ErrStaleCatalog = errors.New("catalog was replaced while the placement was running")
)

// CatalogMeta describes how a catalog was produced. Seed is nil for
// catalogs that were not generated from a seed.
type CatalogMeta struct {
	Seed        *uint64
	GeneratedAt time.Time
}

// Snapshot is the catalog as stored under one generation.
type Snapshot struct {
	Products   []catalog.Product
	Generation uint64
	Meta       CatalogMeta
}

// Entry is a stored placement together with the size and generation of the
// catalog it was computed from.
type Entry struct {
	Result     placement.Result
	InputCount int
	Generation uint64
}

// Storage keeps the working catalog and the latest placement per strategy.
// Every SetCatalog starts a new generation; results are only accepted for
// the generation they were computed from.
type Storage interface {
	Catalog() (Snapshot, error)
	SetCatalog(products []catalog.Product, meta CatalogMeta) (uint64, error)
	Result(strategy placement.Strategy) (Entry, error)
	SetResult(res placement.Result, generation uint64) error
	Results() ([]Entry, error)
	Latest() (Entry, error)
}

// MemoryStorage keeps state in-memory and guards access with a RWMutex.
// Every getter and setter copies, so callers never share slices with the store.
type MemoryStorage struct {
	mu         sync.RWMutex
	products   []catalog.Product
	meta       CatalogMeta
	generation uint64
	results    map[placement.Strategy]placement.Result
	latest     placement.Strategy
	hasLast    bool
}

// NewMemoryStorage returns an empty store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		results: make(map[placement.Strategy]placement.Result),
	}
}

// Catalog returns a copy of the current catalog and its generation.
func (s *MemoryStorage) Catalog() (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.generation == 0 {
		return Snapshot{}, ErrNoCatalog
	}
	return Snapshot{
		Products:   cloneProducts(s.products),
		Generation: s.generation,
		Meta:       cloneMeta(s.meta),
	}, nil
}

// SetCatalog replaces the catalog, drops every stored result and returns the
// new generation.
func (s *MemoryStorage) SetCatalog(products []catalog.Product, meta CatalogMeta) (uint64, error) {
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return 0, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = cloneProducts(products)
	s.meta = cloneMeta(meta)
	s.generation++
	s.results = make(map[placement.Strategy]placement.Result)
	s.hasLast = false
	return s.generation, nil
}

// Result returns a copy of the latest result for strategy.
func (s *MemoryStorage) Result(strategy placement.Strategy) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.results[strategy]
	if !ok {
		return Entry{}, ErrNoResult
	}
	return s.entry(res), nil
}

// SetResult stores res as the latest result of its strategy. generation must
// be the one returned with the catalog res was computed from.
func (s *MemoryStorage) SetResult(res placement.Result, generation uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation == 0 {
		return ErrNoCatalog
	}
	if generation != s.generation {
		return ErrStaleCatalog
	}
	s.results[res.Strategy] = cloneResult(res)
	s.latest = res.Strategy
	s.hasLast = true
	return nil
}

// Results returns every stored result of the current catalog in
// placement.Strategies order, read under a single lock.
func (s *MemoryStorage) Results() ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.generation == 0 {
		return nil, ErrNoCatalog
	}
	out := make([]Entry, 0, len(s.results))
	for _, strategy := range placement.Strategies() {
		if res, ok := s.results[strategy]; ok {
			out = append(out, s.entry(res))
		}
	}
	return out, nil
}

// Latest returns the most recently stored result of any strategy.
func (s *MemoryStorage) Latest() (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasLast {
		return Entry{}, ErrNoResult
	}
	return s.entry(s.results[s.latest]), nil
}

// entry must be called with s.mu held.
func (s *MemoryStorage) entry(res placement.Result) Entry {
	return Entry{Result: cloneResult(res), InputCount: len(s.products), Generation: s.generation}
}

func cloneProducts(src []catalog.Product) []catalog.Product {
	if len(src) == 0 {
		return []catalog.Product{}
	}
	return catalog.Clone(src)
}

func cloneMeta(meta CatalogMeta) CatalogMeta {
	if meta.Seed != nil {
		seed := *meta.Seed
		meta.Seed = &seed
	}
	return meta
}

func cloneResult(res placement.Result) placement.Result {
	out := res
	out.Shelves = shelf.Clone(res.Shelves)
	if res.Knapsack != nil {
		trace := &placement.KnapsackTrace{
			Chosen: catalog.Clone(res.Knapsack.Chosen),
		}
		if res.Knapsack.Table != nil {
			trace.Table = make([][]int, len(res.Knapsack.Table))
			for i, row := range res.Knapsack.Table {
				trace.Table[i] = append([]int(nil), row...)
			}
		}
		out.Knapsack = trace
	}
	return out
}
