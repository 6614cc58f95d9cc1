// Package best keeps the highest scoring valid attempt of the session.
package best

import (
	"sync"

	"github.com/verte-zerg/tuircle/internal/geometry"
	"github.com/verte-zerg/tuircle/internal/scoring"
)

// Record is a snapshot of the best attempt so far.
type Record struct {
	Stroke     geometry.Stroke
	Accuracy   float64
	MeanRadius float64
	Mode       scoring.Mode
}

// Tracker retains the best record. It is safe for concurrent use.
type Tracker struct {
	mu     sync.RWMutex
	record Record
	has    bool
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Consider replaces the record when att is valid and strictly more accurate
// than the current best, which starts at 0. A 0% attempt is never kept.
// It reports whether the record changed.
func (t *Tracker) Consider(att scoring.Attempt) bool {
	if !att.Valid {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if att.Accuracy <= t.record.Accuracy {
		return false
	}
	t.record = Record{
		Stroke:     geometry.Clone(att.Stroke),
		Accuracy:   att.Accuracy,
		MeanRadius: att.MeanRadius,
		Mode:       att.Mode,
	}
	t.has = true
	return true
}

// Current returns a copy of the best record, or false before the first
// valid attempt.
func (t *Tracker) Current() (Record, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.has {
		return Record{}, false
	}
	rec := t.record
	rec.Stroke = geometry.Clone(t.record.Stroke)
	return rec, true
}
