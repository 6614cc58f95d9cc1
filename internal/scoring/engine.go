// Package scoring turns a finished or in-progress stroke into an accuracy
// score and a feedback color.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/verte-zerg/tuircle/internal/containment"
	"github.com/verte-zerg/tuircle/internal/geometry"
)

// Mode selects the accuracy formula.
type Mode int

const (
	// ModeDeviation penalises the spread of radii around their mean.
	ModeDeviation Mode = iota
	// ModeEndpoint compares the mean radius with the radius of the last sample.
	ModeEndpoint
)

func (m Mode) String() string {
	switch m {
	case ModeDeviation:
		return "deviation"
	case ModeEndpoint:
		return "endpoint"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses "deviation" or "endpoint".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deviation":
		return ModeDeviation, nil
	case "endpoint":
		return ModeEndpoint, nil
	default:
		return ModeDeviation, fmt.Errorf("unknown scoring mode %q (use deviation or endpoint)", s)
	}
}

// Config holds the engine thresholds.
type Config struct {
	Center           geometry.Point
	MinRadius        float64
	ClosureThreshold float64
	DotRadius        float64
	Mode             Mode
}

// Attempt is a finalized stroke with its derived measurements.
type Attempt struct {
	Stroke     geometry.Stroke
	Mode       Mode
	Valid      bool
	Reason     Reason
	Radii      []float64
	MeanRadius float64
	StdDev     float64
	Accuracy   float64
}

// Engine scores strokes against a fixed center.
type Engine struct {
	cfg Config
}

// NewEngine returns an engine for cfg.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine thresholds.
func (e *Engine) Config() Config {
	return e.cfg
}

// Evaluate finalizes a stroke. Rejections are reported through Attempt.Reason.
func (e *Engine) Evaluate(stroke geometry.Stroke) Attempt {
	center := e.cfg.Center
	radii := geometry.Radii(stroke, center)
	mean := geometry.Mean(radii)
	att := Attempt{
		Stroke:     geometry.Clone(stroke),
		Mode:       e.cfg.Mode,
		Radii:      radii,
		MeanRadius: mean,
		StdDev:     geometry.StdDeviation(radii),
	}
	switch {
	case len(stroke) < 2:
		att.Reason = TooFewPoints
	case containment.TouchesDot(stroke, center, e.cfg.DotRadius):
		att.Reason = NotAroundCenter
	case mean < e.cfg.MinRadius:
		att.Reason = TooSmall
	case !containment.AroundCenter(stroke, center):
		att.Reason = NotAroundCenter
	case e.cfg.Mode == ModeDeviation && geometry.Distance(stroke[0], stroke[len(stroke)-1]) > e.cfg.ClosureThreshold:
		att.Reason = NotClosed
	default:
		att.Valid = true
		if e.cfg.Mode == ModeEndpoint {
			att.Accuracy = EndpointAccuracy(mean, geometry.Distance(center, stroke[len(stroke)-1]))
		} else {
			att.Accuracy = DeviationAccuracy(radii)
		}
	}
	return att
}

// Live scores the samples recorded so far with the deviation formula,
// without closure or containment checks. ok is false below two points.
func (e *Engine) Live(stroke geometry.Stroke) (accuracy float64, ok bool) {
	if len(stroke) < 2 {
		return 0, false
	}
	return DeviationAccuracy(geometry.Radii(stroke, e.cfg.Center)), true
}

// DeviationAccuracy returns 100 − (mean absolute deviation + std-dev) of
// radii from their mean, clamped to [0, 100].
func DeviationAccuracy(radii []float64) float64 {
	if len(radii) == 0 {
		return 0
	}
	mean := geometry.Mean(radii)
	var absSum float64
	for _, r := range radii {
		absSum += math.Abs(mean - r)
	}
	mad := absSum / float64(len(radii))
	return clampAccuracy(100 - (mad + geometry.StdDeviation(radii)))
}

// EndpointAccuracy compares the mean radius with the last sample's radius.
func EndpointAccuracy(meanRadius, lastRadius float64) float64 {
	den := math.Max(meanRadius, lastRadius)
	if den <= 0 {
		return 0
	}
	return clampAccuracy(100 * (1 - math.Abs(meanRadius-lastRadius)/den))
}

// accuracyPrecision absorbs float noise so a perfect circle scores exactly 100.
const accuracyPrecision = 1e9

func clampAccuracy(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return math.Round(v*accuracyPrecision) / accuracyPrecision
}
