package catalog

import (
	"math/rand/v2"
	"strconv"
)

const (
	minSales  = 50
	maxSales  = 300
	minVolume = 1
	maxVolume = 8
)

var vocabulary = []string{
	"Laptop", "Phone", "Tablet", "Monitor", "Keyboard", "Mouse", "Printer", "SSD",
	"HDD", "Router", "Switch", "Camera", "Speaker", "Headphones", "Powerbank",
	"Adapter", "Cable", "Drone", "Projector", "Console",
}

// Generator produces synthetic product sets from its own random source.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator whose output is fully determined by seed.
func NewGenerator(seed uint64) *Generator {
	return NewGeneratorFrom(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewGeneratorFrom wraps a caller-provided random source.
func NewGeneratorFrom(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate returns count products in generation order. Each name is a
// vocabulary term followed by "_<position>" (1-based), so names are unique
// within one batch. Sales are uniform in [50, 300] and volumes in [1, 8].
func (g *Generator) Generate(count int) ([]Product, error) {
	if count < 0 {
		return nil, ErrInvalidCount
	}

	products := make([]Product, 0, count)
	for i := 0; i < count; i++ {
		term := vocabulary[g.rng.IntN(len(vocabulary))]
		products = append(products, Product{
			Name:   term + "_" + strconv.Itoa(i+1),
			Sales:  minSales + g.rng.IntN(maxSales-minSales+1),
			Volume: minVolume + g.rng.IntN(maxVolume-minVolume+1),
		})
	}
	return products, nil
}

// Generate is a convenience wrapper around NewGenerator(seed).Generate(count).
func Generate(count int, seed uint64) ([]Product, error) {
	return NewGenerator(seed).Generate(count)
}
