// Package session drives the attempt lifecycle: pointer events in,
// scoring and presentation events out.
package session

import (
	"fmt"
	"sync"

	"github.com/verte-zerg/tuircle/internal/best"
	"github.com/verte-zerg/tuircle/internal/geometry"
	"github.com/verte-zerg/tuircle/internal/scoring"
	"github.com/verte-zerg/tuircle/internal/stroke"
)

// State is the controller's position in the attempt lifecycle.
type State int

const (
	Idle State = iota
	Recording
	Evaluating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Evaluating:
		return "evaluating"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Config is fixed for the lifetime of a Controller.
type Config struct {
	Width            float64
	Height           float64
	Center           geometry.Point
	MinRadius        float64
	ClosureThreshold float64
	DotRadius        float64
	Mode             scoring.Mode
}

// DefaultConfig returns the standard 600x600 canvas settings.
func DefaultConfig() Config {
	return Config{
		Width:            600,
		Height:           600,
		Center:           geometry.Pt(300, 300),
		MinRadius:        70,
		ClosureThreshold: 60,
		DotRadius:        3,
		Mode:             scoring.ModeDeviation,
	}
}

// Controller owns the recorder, the engine and the best record of one
// session. All methods are safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	cfg      Config
	recorder *stroke.Recorder
	engine   *scoring.Engine
	best     *best.Tracker
	listener Listener
	state    State
}

// New returns an idle controller. A nil listener discards events.
func New(cfg Config, listener Listener) *Controller {
	if listener == nil {
		listener = ListenerFuncs{}
	}
	return &Controller{
		cfg:      cfg,
		recorder: stroke.NewRecorder(),
		engine: scoring.NewEngine(scoring.Config{
			Center:           cfg.Center,
			MinRadius:        cfg.MinRadius,
			ClosureThreshold: cfg.ClosureThreshold,
			DotRadius:        cfg.DotRadius,
			Mode:             cfg.Mode,
		}),
		best:     best.NewTracker(),
		listener: listener,
	}
}

// Config returns the controller configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Points returns the samples of the attempt in progress.
func (c *Controller) Points() geometry.Stroke {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recorder.Points()
}

// PointerDown starts a new attempt with p as its first sample. A press while
// already recording abandons the previous stroke.
func (c *Controller) PointerDown(p geometry.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recorder.Begin()
	c.state = Recording
	c.listener.OnLiveReset()
	c.recorder.Add(p)
}

// PointerMove records a sample and emits live feedback once two points exist.
func (c *Controller) PointerMove(p geometry.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Recording {
		return
	}
	prev, hasPrev := c.recorder.Last()
	if !c.recorder.Add(p) || !hasPrev {
		return
	}
	acc, ok := c.engine.Live(c.recorder.Points())
	if !ok {
		return
	}
	color := scoring.ColorForAccuracy(acc)
	c.listener.OnSegmentDrawn(prev, p, color)
	c.listener.OnLiveAccuracy(acc, color)
}

// PointerUp finishes the attempt, scores it and reports the outcome.
// It returns false when no attempt was in progress.
func (c *Controller) PointerUp() (Outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Recording {
		return Outcome{}, false
	}
	c.state = Evaluating
	att := c.engine.Evaluate(c.recorder.End())
	out := Outcome{Attempt: att}
	if att.Valid {
		out.Color = scoring.ColorForAccuracy(att.Accuracy)
		out.NewBest = c.best.Consider(att)
	}
	c.listener.OnAttemptResult(out)
	c.state = Idle
	return out, true
}

// Best returns the best record so far without changing state.
func (c *Controller) Best() (best.Record, bool) {
	return c.best.Current()
}
