// Package artwork generates the decorative SVG backgrounds: morphing blobs,
// circuit traces and particle fields. Every generator takes its PRNG as a
// parameter so a given seed always yields the same markup.
package artwork

import (
	"math/rand/v2"
	"strconv"
)

// NewRand returns a PCG-backed generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Point is a 2D coordinate in SVG user units.
type Point struct {
	X, Y float64
}

// num formats to two decimals, normalising negative zero.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}
