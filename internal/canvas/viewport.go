// Package canvas rasterises strokes onto a braille terminal grid.
package canvas

import (
	"math"

	"github.com/verte-zerg/tuircle/internal/geometry"
)

// Braille cells hold a 2x4 dot matrix.
const (
	dotsPerCellX = 2
	dotsPerCellY = 4
)

// Viewport maps terminal cells to canvas coordinates. The logical canvas is
// scaled uniformly to fit and centered in the cell area.
type Viewport struct {
	Cols, Rows    int
	Width, Height float64

	scale      float64
	padX, padY float64
}

// NewViewport fits a width x height canvas into cols x rows cells.
func NewViewport(cols, rows int, width, height float64) Viewport {
	cols = max(cols, 1)
	rows = max(rows, 1)
	dotsX := float64(cols * dotsPerCellX)
	dotsY := float64(rows * dotsPerCellY)
	scale := math.Max(width/dotsX, height/dotsY)
	if scale <= 0 || math.IsNaN(scale) {
		scale = 1
	}
	return Viewport{
		Cols:   cols,
		Rows:   rows,
		Width:  width,
		Height: height,
		scale:  scale,
		padX:   (dotsX*scale - width) / 2,
		padY:   (dotsY*scale - height) / 2,
	}
}

// Scale returns canvas units per braille dot.
func (v Viewport) Scale() float64 {
	return v.scale
}

// CellToPoint returns the canvas point under the center of a cell.
func (v Viewport) CellToPoint(col, row int) geometry.Point {
	return geometry.Pt(
		(float64(col*dotsPerCellX)+1)*v.scale-v.padX,
		(float64(row*dotsPerCellY)+2)*v.scale-v.padY,
	)
}

// PointToDot returns the braille dot containing p.
func (v Viewport) PointToDot(p geometry.Point) (int, int) {
	return int(math.Floor((p.X + v.padX) / v.scale)), int(math.Floor((p.Y + v.padY) / v.scale))
}

// InCanvas reports whether p lies inside the logical canvas.
func (v Viewport) InCanvas(p geometry.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= v.Width && p.Y <= v.Height
}
