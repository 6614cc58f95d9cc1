package session

import (
	"time"

	"github.com/verte-zerg/tuircle/internal/model"
)

// Record converts the outcome into a journal row.
func (o Outcome) Record(startedAt, endedAt time.Time) model.AttemptRecord {
	att := o.Attempt
	rec := model.AttemptRecord{
		StartedAt:  startedAt,
		EndedAt:    endedAt,
		Mode:       att.Mode.String(),
		Valid:      att.Valid,
		MeanRadius: att.MeanRadius,
		StdDev:     att.StdDev,
		Points:     len(att.Stroke),
		NewBest:    o.NewBest,
	}
	if att.Valid {
		rec.Accuracy = att.Accuracy
	} else {
		rec.Reason = att.Reason.String()
	}
	return rec
}
