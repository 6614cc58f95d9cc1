package scoring

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

var (
	Red    = Color{R: 255, G: 0, B: 0}
	Orange = Color{R: 255, G: 165, B: 0}
	Yellow = Color{R: 255, G: 255, B: 0}
	Green  = Color{R: 0, G: 255, B: 0}
)

type colorStop struct {
	at    float64
	color Color
}

var accuracyRamp = []colorStop{
	{at: 60, color: Red},
	{at: 80, color: Orange},
	{at: 90, color: Yellow},
	{at: 100, color: Green},
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ColorForAccuracy maps an accuracy to the red → orange → yellow → green
// ramp. Values at or below 60 are red, at or above 100 green.
func ColorForAccuracy(accuracy float64) Color {
	first := accuracyRamp[0]
	if math.IsNaN(accuracy) || accuracy <= first.at {
		return first.color
	}
	for i := 1; i < len(accuracyRamp); i++ {
		lo, hi := accuracyRamp[i-1], accuracyRamp[i]
		if accuracy > hi.at {
			continue
		}
		ratio := (accuracy - lo.at) / (hi.at - lo.at)
		r, g, b := lo.color.colorful().BlendRgb(hi.color.colorful(), ratio).RGB255()
		return Color{R: r, G: g, B: b}
	}
	return accuracyRamp[len(accuracyRamp)-1].color
}
