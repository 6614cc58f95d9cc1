package session

import (
	"github.com/verte-zerg/tuircle/internal/geometry"
	"github.com/verte-zerg/tuircle/internal/scoring"
)

// Outcome is the result of a finished attempt.
type Outcome struct {
	Attempt scoring.Attempt
	Color   scoring.Color
	NewBest bool
}

// Accepted reports whether the attempt was scored.
func (o Outcome) Accepted() bool {
	return o.Attempt.Valid
}

// Accuracy returns the score of an accepted attempt, 0 otherwise.
func (o Outcome) Accuracy() float64 {
	return o.Attempt.Accuracy
}

// Reason returns why the attempt was rejected, ReasonNone when accepted.
func (o Outcome) Reason() scoring.Reason {
	return o.Attempt.Reason
}

// Listener receives presentation events. Calls happen synchronously on the
// goroutine that delivered the pointer event, with the controller locked;
// only Controller.Best may be called from inside a callback.
type Listener interface {
	OnLiveReset()
	OnSegmentDrawn(from, to geometry.Point, color scoring.Color)
	OnLiveAccuracy(accuracy float64, color scoring.Color)
	OnAttemptResult(outcome Outcome)
}

// ListenerFuncs adapts optional callbacks to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	LiveReset     func()
	SegmentDrawn  func(from, to geometry.Point, color scoring.Color)
	LiveAccuracy  func(accuracy float64, color scoring.Color)
	AttemptResult func(outcome Outcome)
}

func (f ListenerFuncs) OnLiveReset() {
	if f.LiveReset != nil {
		f.LiveReset()
	}
}

func (f ListenerFuncs) OnSegmentDrawn(from, to geometry.Point, color scoring.Color) {
	if f.SegmentDrawn != nil {
		f.SegmentDrawn(from, to, color)
	}
}

func (f ListenerFuncs) OnLiveAccuracy(accuracy float64, color scoring.Color) {
	if f.LiveAccuracy != nil {
		f.LiveAccuracy(accuracy, color)
	}
}

func (f ListenerFuncs) OnAttemptResult(outcome Outcome) {
	if f.AttemptResult != nil {
		f.AttemptResult(outcome)
	}
}

// Multi fans events out to several listeners in order.
type Multi []Listener

func (m Multi) OnLiveReset() {
	for _, l := range m {
		l.OnLiveReset()
	}
}

func (m Multi) OnSegmentDrawn(from, to geometry.Point, color scoring.Color) {
	for _, l := range m {
		l.OnSegmentDrawn(from, to, color)
	}
}

func (m Multi) OnLiveAccuracy(accuracy float64, color scoring.Color) {
	for _, l := range m {
		l.OnLiveAccuracy(accuracy, color)
	}
}

func (m Multi) OnAttemptResult(outcome Outcome) {
	for _, l := range m {
		l.OnAttemptResult(outcome)
	}
}
