package canvas

import (
	"strings"
	"testing"

	"github.com/verte-zerg/tuircle/internal/geometry"
	"github.com/verte-zerg/tuircle/internal/scoring"
)

func dotSet(r *Raster, x, y int) bool {
	c := r.cells[y/dotsPerCellY][x/dotsPerCellX]
	return c.mask&brailleDotMask(x%dotsPerCellX, y%dotsPerCellY) != 0
}

func nearSet(r *Raster, x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dotSet(r, x+dx, y+dy) {
				return true
			}
		}
	}
	return false
}

func TestViewportSquare(t *testing.T) {
	vp := NewViewport(10, 5, 20, 20)
	if vp.Scale() != 1 {
		t.Fatalf("expected scale 1, got %v", vp.Scale())
	}
	if x, y := vp.PointToDot(geometry.Pt(0, 0)); x != 0 || y != 0 {
		t.Fatalf("expected origin dot (0,0), got (%d,%d)", x, y)
	}
	if p := vp.CellToPoint(0, 0); p != geometry.Pt(1, 2) {
		t.Fatalf("expected cell center (1,2), got %v", p)
	}
}

func TestViewportCentersWideCanvas(t *testing.T) {
	vp := NewViewport(10, 5, 40, 20)
	if vp.Scale() != 2 {
		t.Fatalf("expected scale 2, got %v", vp.Scale())
	}
	if x, y := vp.PointToDot(geometry.Pt(0, 0)); x != 0 || y != 5 {
		t.Fatalf("expected origin dot (0,5), got (%d,%d)", x, y)
	}
	if !vp.InCanvas(geometry.Pt(40, 20)) || vp.InCanvas(geometry.Pt(-1, 3)) {
		t.Fatalf("unexpected canvas bounds")
	}
}

func TestCellRoundTrip(t *testing.T) {
	vp := NewViewport(30, 15, 600, 600)
	for _, c := range [][2]int{{0, 0}, {7, 3}, {29, 14}} {
		x, y := vp.PointToDot(vp.CellToPoint(c[0], c[1]))
		if x/dotsPerCellX != c[0] || y/dotsPerCellY != c[1] {
			t.Fatalf("cell %v mapped back to dot (%d,%d)", c, x, y)
		}
	}
}

func TestLinePlain(t *testing.T) {
	r := NewRaster(NewViewport(2, 1, 4, 4))
	r.Line(geometry.Pt(0, 0), geometry.Pt(3, 0), scoring.Green)
	if got := r.Plain(); got != "⠉⠉" {
		t.Fatalf("expected top row braille, got %q", got)
	}
	if r.Empty() {
		t.Fatalf("expected raster to have dots")
	}
	r.Clear()
	if !r.Empty() || r.Plain() != "  " {
		t.Fatalf("expected cleared raster, got %q", r.Plain())
	}
}

func TestSetDotOutOfBounds(t *testing.T) {
	r := NewRaster(NewViewport(2, 1, 4, 4))
	r.SetDot(-1, 0, scoring.Red)
	r.SetDot(4, 0, scoring.Red)
	r.SetDot(0, 4, scoring.Red)
	if !r.Empty() {
		t.Fatalf("expected out of bounds dots to be dropped")
	}
}

func TestCircleOutline(t *testing.T) {
	r := NewRaster(NewViewport(20, 10, 40, 40))
	r.Circle(geometry.Pt(20, 20), 10, scoring.Yellow)
	for _, d := range [][2]int{{30, 20}, {10, 20}, {20, 10}, {20, 30}} {
		if !nearSet(r, d[0], d[1]) {
			t.Fatalf("expected dot near %v on outline", d)
		}
	}
	if nearSet(r, 20, 20) {
		t.Fatalf("expected hollow center")
	}
}

func TestDotFillsCenter(t *testing.T) {
	r := NewRaster(NewViewport(20, 10, 40, 40))
	r.Dot(geometry.Pt(20, 20), 2, scoring.Red)
	for _, d := range [][2]int{{20, 20}, {22, 20}, {20, 18}} {
		if !dotSet(r, d[0], d[1]) {
			t.Fatalf("expected dot %v in dot", d)
		}
	}
	if dotSet(r, 23, 20) {
		t.Fatalf("expected dot outside dot to be clear")
	}
}

func TestPolylineSinglePoint(t *testing.T) {
	r := NewRaster(NewViewport(2, 1, 4, 4))
	r.Polyline(geometry.Stroke{geometry.Pt(1, 1)}, scoring.Orange)
	if !dotSet(r, 1, 1) {
		t.Fatalf("expected single point to set a dot")
	}
}

func TestRenderKeepsBraille(t *testing.T) {
	r := NewRaster(NewViewport(3, 2, 6, 8))
	r.Line(geometry.Pt(0, 0), geometry.Pt(5, 0), scoring.Red)
	r.Line(geometry.Pt(0, 4), geometry.Pt(5, 4), scoring.Green)
	out := r.Render()
	rows := strings.Split(out, "\n")
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !strings.Contains(rows[0], "⠉") || !strings.Contains(rows[1], "⠉") {
		t.Fatalf("expected braille runes in render, got %q", out)
	}
}
