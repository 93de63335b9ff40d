package shelf

// Efficiency returns the percentage of total capacity in use across shelves.
// It returns 0 when the total capacity is 0. The result is clamped to
// [0, 100], so shelves built outside Add that break the Used <= Capacity
// invariant still never report more than 100%.
func Efficiency(shelves []Shelf) float64 {
	var used, capacity int64
	for _, s := range shelves {
		used += int64(s.Used)
		capacity += int64(s.Capacity)
	}
	if capacity <= 0 {
		return 0
	}

	pct := float64(used) * 100 / float64(capacity)
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

// Band classifies how full a shelf is.
type Band int

const (
	// BandLow is below half full.
	BandLow Band = iota
	// BandMedium is at least half but below 80% full.
	BandMedium
	// BandHigh is 80% full or more.
	BandHigh
)

func (b Band) String() string {
	switch b {
	case BandLow:
		return "low"
	case BandMedium:
		return "medium"
	case BandHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Band returns the fill band of s.
func (s *Shelf) Band() Band {
	r := s.Ratio()
	switch {
	case r < 0.5:
		return BandLow
	case r < 0.8:
		return BandMedium
	default:
		return BandHigh
	}
}
