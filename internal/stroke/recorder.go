// Package stroke accumulates pointer samples for one drawing attempt.
package stroke

import "github.com/verte-zerg/tuircle/internal/geometry"

// Recorder buffers the samples of the attempt in progress.
type Recorder struct {
	points    geometry.Stroke
	recording bool
}

// NewRecorder returns an idle recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Begin starts a new attempt with an empty buffer.
func (r *Recorder) Begin() {
	// Fresh slice: snapshots handed out earlier never alias the new buffer.
	r.points = geometry.Stroke{}
	r.recording = true
}

// Add appends p while recording. It reports whether the sample was kept.
func (r *Recorder) Add(p geometry.Point) bool {
	if !r.recording {
		return false
	}
	r.points = append(r.points, p)
	return true
}

// End stops recording and returns a snapshot of the stroke.
func (r *Recorder) End() geometry.Stroke {
	r.recording = false
	return r.snapshot()
}

// Points returns a copy of the samples recorded so far.
func (r *Recorder) Points() geometry.Stroke {
	return r.snapshot()
}

// Len returns the number of recorded samples.
func (r *Recorder) Len() int {
	return len(r.points)
}

// Last returns the most recent sample.
func (r *Recorder) Last() (geometry.Point, bool) {
	if len(r.points) == 0 {
		return geometry.Point{}, false
	}
	return r.points[len(r.points)-1], true
}

// Recording reports whether samples are currently accepted.
func (r *Recorder) Recording() bool {
	return r.recording
}

func (r *Recorder) snapshot() geometry.Stroke {
	out := make(geometry.Stroke, len(r.points))
	copy(out, r.points)
	return out
}
