package artwork

import "math/rand/v2"

// Particle is one drifting dot in a particle field.
type Particle struct {
	X, Y     float64
	Radius   float64
	Opacity  float64
	Drift    float64
	Duration float64
	Delay    float64
}

// Particles scatters n particles over a width x height field.
func Particles(rng *rand.Rand, n int, width, height float64) []Particle {
	out := make([]Particle, n)
	for i := range out {
		out[i] = Particle{
			X:        rng.Float64() * width,
			Y:        rng.Float64() * height,
			Radius:   0.5 + rng.Float64()*1.5,
			Opacity:  0.2 + rng.Float64()*0.4,
			Drift:    10 + rng.Float64()*20,
			Duration: 6 + rng.Float64()*6,
			Delay:    rng.Float64() * 4,
		}
	}
	return out
}
