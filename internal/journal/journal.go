// Package journal records finished attempts into the session store.
package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/verte-zerg/tuircle/internal/geometry"
	"github.com/verte-zerg/tuircle/internal/scoring"
	"github.com/verte-zerg/tuircle/internal/session"
	"github.com/verte-zerg/tuircle/internal/store"
)

// Journal is a session.Listener that inserts one row per attempt. Insert
// failures go to onErr and never interrupt the game.
type Journal struct {
	store     *store.Store
	onErr     func(error)
	now       func() time.Time
	startedAt time.Time
}

// New returns a journal writing to st. A nil onErr drops errors.
func New(st *store.Store, onErr func(error)) *Journal {
	if onErr == nil {
		onErr = func(error) {}
	}
	return &Journal{store: st, onErr: onErr, now: time.Now}
}

func (j *Journal) OnLiveReset() {
	j.startedAt = j.now()
}

func (j *Journal) OnSegmentDrawn(geometry.Point, geometry.Point, scoring.Color) {}

func (j *Journal) OnLiveAccuracy(float64, scoring.Color) {}

func (j *Journal) OnAttemptResult(outcome session.Outcome) {
	endedAt := j.now()
	startedAt := j.startedAt
	if startedAt.IsZero() {
		startedAt = endedAt
	}
	rec := outcome.Record(startedAt, endedAt)
	if _, err := j.store.InsertAttempt(context.Background(), rec); err != nil {
		j.onErr(fmt.Errorf("failed to save attempt: %w", err))
	}
	j.startedAt = time.Time{}
}
