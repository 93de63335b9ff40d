// Package shelf models fixed-capacity shelves and the capacity accounting
// computed over a shelf collection.
package shelf

import "github.com/eugenenazirov/shelfplan/internal/catalog"

// Shelf is a fixed-capacity bin. Used always equals the total volume of
// Products and never exceeds Capacity when products go in through Add.
type Shelf struct {
	Capacity int               `json:"capacity"`
	Used     int               `json:"used"`
	Products []catalog.Product `json:"products"`
}

// New returns count empty shelves of the given capacity.
func New(count, capacity int) []Shelf {
	if count <= 0 {
		return []Shelf{}
	}
	shelves := make([]Shelf, count)
	for i := range shelves {
		shelves[i] = Shelf{Capacity: capacity, Products: []catalog.Product{}}
	}
	return shelves
}

// Fits reports whether p fits into the residual capacity of s.
func (s *Shelf) Fits(p catalog.Product) bool {
	return s.Used+p.Volume <= s.Capacity
}

// Add appends p when it fits and reports whether it was placed.
func (s *Shelf) Add(p catalog.Product) bool {
	if !s.Fits(p) {
		return false
	}
	s.Products = append(s.Products, p)
	s.Used += p.Volume
	return true
}

// Free is the residual capacity of s.
func (s *Shelf) Free() int {
	return s.Capacity - s.Used
}

// Ratio is the used fraction of s, or 0 for a zero-capacity shelf.
func (s *Shelf) Ratio() float64 {
	if s.Capacity <= 0 {
		return 0
	}
	return float64(s.Used) / float64(s.Capacity)
}

// Clone deep-copies shelves so the result shares no product slices with the input.
func Clone(shelves []Shelf) []Shelf {
	if shelves == nil {
		return nil
	}
	out := make([]Shelf, len(shelves))
	for i, s := range shelves {
		out[i] = Shelf{
			Capacity: s.Capacity,
			Used:     s.Used,
			Products: catalog.Clone(s.Products),
		}
	}
	return out
}

// Placed counts the products held across all shelves.
func Placed(shelves []Shelf) int {
	total := 0
	for _, s := range shelves {
		total += len(s.Products)
	}
	return total
}
