// Package containment decides whether a stroke encloses the center dot.
//
// The test is a fan sweep over consecutive point pairs rather than a
// winding-number or ray-casting test. Scores depend on its exact behavior,
// including its dependence on the atan2 branch cut, so it must not be
// swapped for a textbook point-in-polygon test.
package containment

import (
	"github.com/verte-zerg/tuircle/internal/geometry"
)

// AroundCenter reports whether any consecutive pair of the stroke, including
// the closing pair (last, first), has the direction from its first point back
// to center inside the angular span the pair covers as seen from center.
func AroundCenter(stroke geometry.Stroke, center geometry.Point) bool {
	n := len(stroke)
	if n == 0 {
		return false
	}
	for i := 0; i < n; i++ {
		if inFan(stroke[i], stroke[(i+1)%n], center) {
			return true
		}
	}
	return false
}

func inFan(p1, p2, center geometry.Point) bool {
	angle1 := geometry.Angle(center, p1)
	angle2 := geometry.Angle(center, p2)
	back := geometry.Angle(p1, center)
	lo, hi := angle1, angle2
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo <= back && back <= hi
}

// TouchesDot reports whether any point lies strictly closer to center than
// dotRadius.
func TouchesDot(stroke geometry.Stroke, center geometry.Point, dotRadius float64) bool {
	for _, p := range stroke {
		if geometry.Distance(center, p) < dotRadius {
			return true
		}
	}
	return false
}

// Validate combines the dot exclusion and the fan sweep.
func Validate(stroke geometry.Stroke, center geometry.Point, dotRadius float64) bool {
	if TouchesDot(stroke, center, dotRadius) {
		return false
	}
	return AroundCenter(stroke, center)
}
