package artwork

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// BlobSpec shapes a blob outline.
type BlobSpec struct {
	Points int
	Radius float64
	Jitter float64
}

// DefaultBlob matches the hero background: 8 points, radius 200, ±50 jitter.
var DefaultBlob = BlobSpec{Points: 8, Radius: 200, Jitter: 100}

// Blob is one morphing shape: it animates from Initial to Target and back.
type Blob struct {
	Initial  string
	Target   string
	Fill     string
	Duration float64
	Delay    float64
	Rotate   float64
}

// BlobPoints places spec.Points points at equal angles, each radius
// jittered by up to half of spec.Jitter either way.
func BlobPoints(rng *rand.Rand, spec BlobSpec) []Point {
	if spec.Points <= 0 {
		return nil
	}
	step := 2 * math.Pi / float64(spec.Points)
	pts := make([]Point, spec.Points)
	for i := range pts {
		angle := float64(i) * step
		r := spec.Radius + (rng.Float64()-0.5)*spec.Jitter
		pts[i] = Point{X: math.Cos(angle) * r, Y: math.Sin(angle) * r}
	}
	return pts
}

// SmoothPath closes points into a quadratic spline through the midpoints
// of consecutive points. An empty input yields a degenerate closed path.
func SmoothPath(points []Point) string {
	if len(points) == 0 {
		return "M 0 0 Z"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "M %s %s", num(points[0].X), num(points[0].Y))
	for i, p := range points {
		next := points[(i+1)%len(points)]
		fmt.Fprintf(&b, " Q %s %s %s %s",
			num(p.X), num(p.Y),
			num((p.X+next.X)/2), num((p.Y+next.Y)/2))
	}
	b.WriteString(" Z")
	return b.String()
}

// Blobs generates count blobs, each with its own start and end outline.
func Blobs(rng *rand.Rand, count int, spec BlobSpec) []Blob {
	out := make([]Blob, 0, count)
	for i := 0; i < count; i++ {
		fill := "url(#blob-gradient)"
		if i > 0 {
			fill = fmt.Sprintf("rgba(255, 255, 255, %s)", num(math.Max(0.1-float64(i)*0.02, 0.02)))
		}
		out = append(out, Blob{
			Initial:  SmoothPath(BlobPoints(rng, spec)),
			Target:   SmoothPath(BlobPoints(rng, spec)),
			Fill:     fill,
			Duration: 30 + float64(i)*5,
			Delay:    float64(i) * 2,
			Rotate:   float64(i) * 10,
		})
	}
	return out
}
