package artwork

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	circuitSpacing    = 20.0
	circuitCornerSize = 5.0
	circuitSteps      = 6
)

// Trace is one animated circuit line.
type Trace struct {
	ID       int
	Path     string
	Start    Point
	Delay    float64
	Duration float64
}

type turn int

const (
	turnRight turn = iota
	turnDown
	turnUp
)

// corner draws a rounded 90 degree turn at (x, y).
func corner(x, y float64, t turn) string {
	r := circuitCornerSize
	switch t {
	case turnRight:
		return fmt.Sprintf(" L %s %s Q %s %s %s %s", num(x-r), num(y), num(x), num(y), num(x), num(y+r))
	case turnDown:
		return fmt.Sprintf(" L %s %s Q %s %s %s %s", num(x), num(y-r), num(x), num(y), num(x+r), num(y))
	default:
		return fmt.Sprintf(" L %s %s Q %s %s %s %s", num(x), num(y+r), num(x), num(y), num(x+r), num(y))
	}
}

// Circuit lays out count traces. Even traces start on the top edge and
// walk down and right; odd traces start on the left edge and walk right,
// turning up or down at random. Each ends with a diagonal branch.
func Circuit(rng *rand.Rand, count int) []Trace {
	out := make([]Trace, 0, count)
	for i := 0; i < count; i++ {
		vertical := i%2 == 0
		var start Point
		if vertical {
			start = Point{X: float64(i/2) * circuitSpacing}
		} else {
			start = Point{Y: float64((i-1)/2) * circuitSpacing}
		}

		var b strings.Builder
		fmt.Fprintf(&b, "M %s %s", num(start.X), num(start.Y))
		x, y := start.X, start.Y

		for j := 0; j < circuitSteps; j++ {
			step := 20 + rng.Float64()*25
			last := j == circuitSteps-1

			switch {
			case last:
				x += step
				y += step * sign(rng)
				fmt.Fprintf(&b, " L %s %s", num(x), num(y))
			case vertical && j%2 == 0:
				y += step
				fmt.Fprintf(&b, " V %s", num(y))
				if j == 0 {
					x += step
					b.WriteString(corner(x-step, y, turnRight))
					fmt.Fprintf(&b, " H %s", num(x))
				}
			case vertical:
				x += step
				b.WriteString(corner(x-step, y, turnRight))
				fmt.Fprintf(&b, " H %s", num(x))
			case j%2 == 0:
				x += step
				fmt.Fprintf(&b, " H %s", num(x))
				if j == 0 {
					y = horizontalTurn(&b, rng, x, y, step)
				}
			default:
				y = horizontalTurn(&b, rng, x, y, step)
			}
		}

		out = append(out, Trace{
			ID:       i,
			Path:     b.String(),
			Start:    start,
			Delay:    float64(i) * 0.2,
			Duration: 3 + float64(i%2),
		})
	}
	return out
}

func horizontalTurn(b *strings.Builder, rng *rand.Rand, x, y, step float64) float64 {
	down := rng.Float64() > 0.5
	t, dir := turnUp, -1.0
	if down {
		t, dir = turnDown, 1.0
	}
	y += step * dir
	b.WriteString(corner(x, y-step*dir, t))
	fmt.Fprintf(b, " V %s", num(y))
	return y
}

func sign(rng *rand.Rand) float64 {
	if rng.Float64() > 0.5 {
		return 1
	}
	return -1
}
