// Package geometry provides the planar helpers used by the scoring engine.
package geometry

import (
	"math"

	"github.com/jbeda/geom"
)

// Point is a canvas-space coordinate.
type Point = geom.Coord

// Stroke is an ordered sequence of sampled points.
type Stroke []Point

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Distance returns the euclidean distance between two points.
func Distance(a, b Point) float64 {
	return a.DistanceFrom(b)
}

// Angle returns atan2 of the vector from -> to.
func Angle(from, to Point) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)
}

// Radii returns the distance from center for every point of the stroke.
func Radii(stroke Stroke, center Point) []float64 {
	radii := make([]float64, len(stroke))
	for i, p := range stroke {
		radii[i] = Distance(center, p)
	}
	return radii
}

// MeanRadius returns the mean distance of the stroke from center, 0 when empty.
func MeanRadius(stroke Stroke, center Point) float64 {
	if len(stroke) == 0 {
		return 0
	}
	var sum float64
	for _, p := range stroke {
		sum += Distance(center, p)
	}
	return sum / float64(len(stroke))
}

// Mean returns the arithmetic mean, 0 when empty.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDeviation returns the population standard deviation of values.
// Empty and single-element input yield 0.
func StdDeviation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

// Rotate rotates p around center by theta radians.
func Rotate(p, center Point, theta float64) Point {
	sin, cos := math.Sincos(theta)
	d := p.Minus(center)
	return Point{
		X: d.X*cos - d.Y*sin + center.X,
		Y: d.X*sin + d.Y*cos + center.Y,
	}
}

// RotateStroke rotates every point of the stroke around center.
func RotateStroke(stroke Stroke, center Point, theta float64) Stroke {
	out := make(Stroke, len(stroke))
	for i, p := range stroke {
		out[i] = Rotate(p, center, theta)
	}
	return out
}

// Bounds returns the bounding rectangle of the stroke. ok is false when empty.
func Bounds(stroke Stroke) (r geom.Rect, ok bool) {
	if len(stroke) == 0 {
		return geom.Rect{}, false
	}
	r = geom.Rect{Min: stroke[0], Max: stroke[0]}
	for _, p := range stroke[1:] {
		r.ExpandToContainCoord(p)
	}
	return r, true
}

// Clone returns an independent copy of the stroke. A nil stroke stays nil.
func Clone(stroke Stroke) Stroke {
	if stroke == nil {
		return nil
	}
	out := make(Stroke, len(stroke))
	copy(out, stroke)
	return out
}
