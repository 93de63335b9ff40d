package api

import (
	"time"

	"github.com/eugenenazirov/shelfplan/internal/benchmark"
	"github.com/eugenenazirov/shelfplan/internal/catalog"
	"github.com/eugenenazirov/shelfplan/internal/placement"
	"github.com/eugenenazirov/shelfplan/internal/shelf"
)

type catalogRequest struct {
	Count *int    `json:"count" validate:"omitempty,gte=0"`
	Seed  *uint64 `json:"seed"`
}

type placementRequest struct {
	ShelfCount    *int `json:"shelfCount" validate:"omitempty,gte=0"`
	ShelfCapacity *int `json:"shelfCapacity" validate:"omitempty,gte=0"`
}

type benchmarkRequest struct {
	MaxN          int     `json:"maxN" validate:"required,gt=0"`
	ShelfCount    *int    `json:"shelfCount" validate:"omitempty,gt=0"`
	ShelfCapacity *int    `json:"shelfCapacity" validate:"omitempty,gt=0"`
	Seed          *uint64 `json:"seed"`
}

type catalogResponse struct {
	Count       int               `json:"count"`
	Seed        *uint64           `json:"seed,omitempty"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Products    []catalog.Product `json:"products"`
	Message     string            `json:"message,omitempty"`
}

type shelfView struct {
	Index    int               `json:"index"`
	Capacity int               `json:"capacity"`
	Used     int               `json:"used"`
	Free     int               `json:"free"`
	FillPct  float64           `json:"fillPct"`
	Band     string            `json:"band"`
	Products []catalog.Product `json:"products"`
}

// knapsackView summarises the first-shelf DP run. The table itself is served
// by GET /api/placements/{strategy}/table.
type knapsackView struct {
	Optimum   int               `json:"optimum"`
	Chosen    []catalog.Product `json:"chosen"`
	TableRows int               `json:"tableRows"`
	TableCols int               `json:"tableCols"`
}

type tableResponse struct {
	Strategy string  `json:"strategy"`
	Rows     int     `json:"rows"`
	Cols     int     `json:"cols"`
	Optimum  int     `json:"optimum"`
	Table    [][]int `json:"table"`
}

type placementResponse struct {
	Strategy      string        `json:"strategy"`
	ShelfCount    int           `json:"shelfCount"`
	ShelfCapacity int           `json:"shelfCapacity"`
	Shelves       []shelfView   `json:"shelves"`
	Efficiency    float64       `json:"efficiency"`
	ElapsedMs     int64         `json:"elapsedMs"`
	ElapsedUs     int64         `json:"elapsedUs"`
	Placed        int           `json:"placed"`
	Unplaced      int           `json:"unplaced"`
	Knapsack      *knapsackView `json:"knapsack,omitempty"`
}

type efficiencyEntry struct {
	Strategy   string  `json:"strategy"`
	Efficiency float64 `json:"efficiency"`
	Placed     int     `json:"placed"`
	ElapsedUs  int64   `json:"elapsedUs"`
}

type efficiencyResponse struct {
	Products int               `json:"products"`
	Results  []efficiencyEntry `json:"results"`
	Report   string            `json:"report"`
}

type locationView struct {
	Strategy   string `json:"strategy"`
	ShelfIndex int    `json:"shelfIndex"`
	SlotIndex  int    `json:"slotIndex"`
}

type searchResponse struct {
	Name          string           `json:"name"`
	Method        string           `json:"method"`
	Found         bool             `json:"found"`
	Index         int              `json:"index"`
	ElapsedUs     int64            `json:"elapsedUs"`
	SortElapsedUs int64            `json:"sortElapsedUs"`
	Product       *catalog.Product `json:"product,omitempty"`
	Location      *locationView    `json:"location,omitempty"`
}

type benchmarkSample struct {
	N          int   `json:"n"`
	StaticUs   int64 `json:"staticUs"`
	GreedyUs   int64 `json:"greedyUs"`
	KnapsackUs int64 `json:"dpUs"`
}

type benchmarkResponse struct {
	MaxN          int               `json:"maxN"`
	ShelfCount    int               `json:"shelfCount"`
	ShelfCapacity int               `json:"shelfCapacity"`
	Seed          uint64            `json:"seed"`
	MaxUs         int64             `json:"maxUs"`
	Samples       []benchmarkSample `json:"samples"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func newPlacementResponse(res placement.Result, inputCount int) placementResponse {
	resp := placementResponse{
		Strategy:   res.Strategy.String(),
		ShelfCount: len(res.Shelves),
		Shelves:    make([]shelfView, 0, len(res.Shelves)),
		Efficiency: res.Efficiency,
		ElapsedMs:  res.ElapsedMs(),
		ElapsedUs:  res.ElapsedUs(),
		Placed:     res.Placed(),
		Unplaced:   res.Unplaced(inputCount),
	}
	for i := range res.Shelves {
		s := &res.Shelves[i]
		resp.ShelfCapacity = s.Capacity
		resp.Shelves = append(resp.Shelves, shelfView{
			Index:    i,
			Capacity: s.Capacity,
			Used:     s.Used,
			Free:     s.Free(),
			FillPct:  s.Ratio() * 100,
			Band:     s.Band().String(),
			Products: nonNilProducts(s.Products),
		})
	}
	if res.Knapsack != nil {
		rows, cols := tableSize(res.Knapsack.Table)
		resp.Knapsack = &knapsackView{
			Optimum:   res.Knapsack.Best(),
			Chosen:    nonNilProducts(res.Knapsack.Chosen),
			TableRows: rows,
			TableCols: cols,
		}
	}
	return resp
}

func newTableResponse(res placement.Result) tableResponse {
	rows, cols := tableSize(res.Knapsack.Table)
	table := res.Knapsack.Table
	if table == nil {
		table = [][]int{}
	}
	return tableResponse{
		Strategy: res.Strategy.String(),
		Rows:     rows,
		Cols:     cols,
		Optimum:  res.Knapsack.Best(),
		Table:    table,
	}
}

func tableSize(table [][]int) (int, int) {
	if len(table) == 0 {
		return 0, 0
	}
	return len(table), len(table[0])
}

func newBenchmarkSamples(samples []benchmark.Sample) []benchmarkSample {
	out := make([]benchmarkSample, 0, len(samples))
	for _, s := range samples {
		out = append(out, benchmarkSample{
			N:          s.N,
			StaticUs:   s.Static.Microseconds(),
			GreedyUs:   s.Greedy.Microseconds(),
			KnapsackUs: s.Knapsack.Microseconds(),
		})
	}
	return out
}

func newLocationView(res placement.Result, loc shelf.Location) *locationView {
	return &locationView{
		Strategy:   res.Strategy.String(),
		ShelfIndex: loc.Shelf,
		SlotIndex:  loc.Slot,
	}
}

func nonNilProducts(products []catalog.Product) []catalog.Product {
	if products == nil {
		return []catalog.Product{}
	}
	return products
}
