// Package report renders shelf collections and run summaries as text.
// Every function here is pure: output depends only on its arguments.
package report

import (
	"fmt"
	"strings"

	"github.com/eugenenazirov/shelfplan/internal/shelf"
)

const (
	// BarWidth is the number of glyphs in a shelf fill bar.
	BarWidth = 30

	filledGlyph = "#"
	emptyGlyph  = "."
	mapTitle    = "=========== WAREHOUSE MAP ==========="
)

// RenderMap draws every shelf in order: a summary line, a fixed-width fill
// bar and one line per product in placement order.
func RenderMap(shelves []shelf.Shelf) string {
	var b strings.Builder
	b.WriteString(mapTitle)
	b.WriteByte('\n')

	for i := range shelves {
		s := &shelves[i]
		writeSummary(&b, i, s)
		b.WriteString("[" + Bar(s) + "]\n")
		writeProducts(&b, s)
		b.WriteByte('\n')
	}
	return b.String()
}

// Filled is floor(used/capacity * BarWidth), 0 for a zero-capacity shelf,
// clamped to [0, BarWidth].
func Filled(s *shelf.Shelf) int {
	if s.Capacity <= 0 {
		return 0
	}
	n := int(int64(s.Used) * BarWidth / int64(s.Capacity))
	return min(max(n, 0), BarWidth)
}

// Bar is the BarWidth-character fill bar of s without brackets.
func Bar(s *shelf.Shelf) string {
	n := Filled(s)
	return strings.Repeat(filledGlyph, n) + strings.Repeat(emptyGlyph, BarWidth-n)
}

func writeSummary(b *strings.Builder, idx int, s *shelf.Shelf) {
	fmt.Fprintf(b, "Shelf %d | Capacity:%d | Used:%d | Free:%d\n", idx+1, s.Capacity, s.Used, s.Free())
}

func writeProducts(b *strings.Builder, s *shelf.Shelf) {
	for _, p := range s.Products {
		fmt.Fprintf(b, "  - %s (Sales:%d, Volume:%d)\n", p.Name, p.Sales, p.Volume)
	}
}
