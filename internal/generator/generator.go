// Package generator builds synthetic pointer strokes.
package generator

import (
	"math"
	"math/rand"
	"time"

	"github.com/verte-zerg/tuircle/internal/geometry"
)

// Generator produces randomized strokes.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Circle samples n points of a full loop, the last point landing on the
// first. Each point is pushed radially by up to ±jitter.
func (g *Generator) Circle(center geometry.Point, r float64, n int, jitter float64) geometry.Stroke {
	return g.Arc(center, r, 0, 360, n, jitter)
}

// Arc samples n points from fromDeg to toDeg inclusive.
func (g *Generator) Arc(center geometry.Point, r, fromDeg, toDeg float64, n int, jitter float64) geometry.Stroke {
	return g.sweep(center, fromDeg, toDeg, n, func(float64) float64 {
		return r + g.noise(jitter)
	})
}

// Wobble samples a closed loop whose radius oscillates lobes times around
// r with the given amplitude.
func (g *Generator) Wobble(center geometry.Point, r, amplitude float64, lobes, n int) geometry.Stroke {
	return g.sweep(center, 0, 360, n, func(a float64) float64 {
		return r + amplitude*math.Sin(float64(lobes)*a)
	})
}

// Segment samples n evenly spaced points on the line from a to b.
func (g *Generator) Segment(a, b geometry.Point, n int) geometry.Stroke {
	if n <= 0 {
		return geometry.Stroke{}
	}
	if n == 1 {
		return geometry.Stroke{a}
	}
	out := make(geometry.Stroke, 0, n)
	step := b.Minus(a)
	for i := 0; i < n; i++ {
		out = append(out, a.Plus(step.Times(float64(i)/float64(n-1))))
	}
	return out
}

// Intn exposes the generator's source for callers picking shapes.
func (g *Generator) Intn(n int) int {
	return g.rnd.Intn(n)
}

// Float64 returns a value in [0, 1).
func (g *Generator) Float64() float64 {
	return g.rnd.Float64()
}

func (g *Generator) sweep(center geometry.Point, fromDeg, toDeg float64, n int, radius func(a float64) float64) geometry.Stroke {
	if n <= 0 {
		return geometry.Stroke{}
	}
	out := make(geometry.Stroke, 0, n)
	from := fromDeg * math.Pi / 180
	span := (toDeg - fromDeg) * math.Pi / 180
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		a := from + span*t
		r := radius(a)
		out = append(out, geometry.Pt(center.X+r*math.Cos(a), center.Y+r*math.Sin(a)))
	}
	return out
}

func (g *Generator) noise(jitter float64) float64 {
	if jitter <= 0 {
		return 0
	}
	return (g.rnd.Float64()*2 - 1) * jitter
}
