package canvas

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuircle/internal/geometry"
	"github.com/verte-zerg/tuircle/internal/scoring"
)

type cell struct {
	mask  uint8
	color scoring.Color
}

// Raster is a grid of braille cells. A cell takes the color of the last dot
// written into it.
type Raster struct {
	vp    Viewport
	cells [][]cell
}

// NewRaster returns an empty raster for vp.
func NewRaster(vp Viewport) *Raster {
	cells := make([][]cell, vp.Rows)
	for y := range cells {
		cells[y] = make([]cell, vp.Cols)
	}
	return &Raster{vp: vp, cells: cells}
}

// Viewport returns the mapping used by the raster.
func (r *Raster) Viewport() Viewport {
	return r.vp
}

// Clear removes every dot.
func (r *Raster) Clear() {
	for y := range r.cells {
		for x := range r.cells[y] {
			r.cells[y][x] = cell{}
		}
	}
}

// Empty reports whether no dot is set.
func (r *Raster) Empty() bool {
	for y := range r.cells {
		for x := range r.cells[y] {
			if r.cells[y][x].mask != 0 {
				return false
			}
		}
	}
	return true
}

// SetDot sets one braille dot. Dots outside the grid are dropped.
func (r *Raster) SetDot(x, y int, color scoring.Color) {
	if x < 0 || y < 0 {
		return
	}
	cellY, cellX := y/dotsPerCellY, x/dotsPerCellX
	if cellY >= len(r.cells) || cellX >= len(r.cells[cellY]) {
		return
	}
	c := &r.cells[cellY][cellX]
	c.mask |= brailleDotMask(x%dotsPerCellX, y%dotsPerCellY)
	c.color = color
}

// Line draws a straight line between two canvas points.
func (r *Raster) Line(from, to geometry.Point, color scoring.Color) {
	x0, y0 := r.vp.PointToDot(from)
	x1, y1 := r.vp.PointToDot(to)
	drawLine(x0, y0, x1, y1, func(x, y int) {
		r.SetDot(x, y, color)
	})
}

// Polyline draws consecutive segments of a stroke.
func (r *Raster) Polyline(stroke geometry.Stroke, color scoring.Color) {
	if len(stroke) == 1 {
		x, y := r.vp.PointToDot(stroke[0])
		r.SetDot(x, y, color)
		return
	}
	for i := 1; i < len(stroke); i++ {
		r.Line(stroke[i-1], stroke[i], color)
	}
}

// Circle outlines a circle given in canvas units.
func (r *Raster) Circle(center geometry.Point, radius float64, color scoring.Color) {
	if radius <= 0 {
		r.Dot(center, 0, color)
		return
	}
	steps := max(16, int(2*math.Pi*radius/r.vp.scale))
	steps += (4 - steps%4) % 4
	prev := geometry.Pt(center.X+radius, center.Y)
	for i := 1; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		next := geometry.Pt(center.X+radius*math.Cos(a), center.Y+radius*math.Sin(a))
		r.Line(prev, next, color)
		prev = next
	}
}

// Dot fills a circle; at least the dot under center is set.
func (r *Raster) Dot(center geometry.Point, radius float64, color scoring.Color) {
	cx, cy := r.vp.PointToDot(center)
	r.SetDot(cx, cy, color)
	reach := int(math.Ceil(radius / r.vp.scale))
	for dy := -reach; dy <= reach; dy++ {
		for dx := -reach; dx <= reach; dx++ {
			if float64(dx*dx+dy*dy)*r.vp.scale*r.vp.scale <= radius*radius {
				r.SetDot(cx+dx, cy+dy, color)
			}
		}
	}
}

// Render returns the raster as styled terminal rows.
func (r *Raster) Render() string {
	rows := make([]string, len(r.cells))
	for y, line := range r.cells {
		var b strings.Builder
		var run strings.Builder
		var runColor scoring.Color
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor.Hex())).Render(run.String()))
			run.Reset()
		}
		for _, c := range line {
			if c.mask == 0 {
				flush()
				b.WriteByte(' ')
				continue
			}
			if run.Len() > 0 && c.color != runColor {
				flush()
			}
			runColor = c.color
			run.WriteRune(brailleFromMask(c.mask))
		}
		flush()
		rows[y] = b.String()
	}
	return strings.Join(rows, "\n")
}

// Plain returns the raster without styling, one rune per cell.
func (r *Raster) Plain() string {
	rows := make([]string, len(r.cells))
	for y, line := range r.cells {
		runes := make([]rune, len(line))
		for x, c := range line {
			if c.mask == 0 {
				runes[x] = ' '
			} else {
				runes[x] = brailleFromMask(c.mask)
			}
		}
		rows[y] = string(runes)
	}
	return strings.Join(rows, "\n")
}

func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func brailleDotMask(x, y int) uint8 {
	switch {
	case x == 0 && y == 0:
		return 0x01
	case x == 0 && y == 1:
		return 0x02
	case x == 0 && y == 2:
		return 0x04
	case x == 0 && y == 3:
		return 0x40
	case x == 1 && y == 0:
		return 0x08
	case x == 1 && y == 1:
		return 0x10
	case x == 1 && y == 2:
		return 0x20
	case x == 1 && y == 3:
		return 0x80
	default:
		return 0
	}
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
