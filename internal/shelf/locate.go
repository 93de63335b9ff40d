package shelf

import "github.com/eugenenazirov/shelfplan/internal/catalog"

// Location addresses a product inside a shelf collection (zero-based).
type Location struct {
	Shelf int `json:"shelf"`
	Slot  int `json:"slot"`
}

// Locate finds the first product whose name matches name case-insensitively,
// scanning shelves in order and each shelf in placement order.
func Locate(shelves []Shelf, name string) (Location, bool) {
	key := catalog.NameKey(name)
	for i, s := range shelves {
		for j, p := range s.Products {
			if catalog.NameKey(p.Name) == key {
				return Location{Shelf: i, Slot: j}, true
			}
		}
	}
	return Location{}, false
}
