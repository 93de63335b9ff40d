package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/eugenenazirov/shelfplan/internal/shelf"
)

// RenderStyledMap renders the same layout as RenderMap with the fill bar
// coloured by shelf.Band. Colours are dropped when r targets a writer that
// does not support them, in which case the output equals RenderMap plus a
// band label on each bar line.
func RenderStyledMap(shelves []shelf.Shelf, r *lipgloss.Renderer) string {
	title := r.NewStyle().Bold(true)
	faint := r.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString(title.Render(mapTitle))
	b.WriteByte('\n')

	for i := range shelves {
		s := &shelves[i]
		writeSummary(&b, i, s)

		band := s.Band()
		n := Filled(s)
		b.WriteString("[")
		b.WriteString(bandStyle(r, band).Render(strings.Repeat(filledGlyph, n)))
		b.WriteString(faint.Render(strings.Repeat(emptyGlyph, BarWidth-n)))
		b.WriteString("] ")
		b.WriteString(bandStyle(r, band).Render(band.String()))
		b.WriteByte('\n')

		writeProducts(&b, s)
		b.WriteByte('\n')
	}
	return b.String()
}

func bandStyle(r *lipgloss.Renderer, band shelf.Band) lipgloss.Style {
	switch band {
	case shelf.BandHigh:
		return r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	case shelf.BandMedium:
		return r.NewStyle().Foreground(lipgloss.Color("214"))
	default:
		return r.NewStyle().Foreground(lipgloss.Color("42"))
	}
}
