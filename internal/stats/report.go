// Package stats contains attempt statistics and text reporting.
package stats

import (
	"context"

	"github.com/verte-zerg/tuircle/internal/model"
	"github.com/verte-zerg/tuircle/internal/store"
)

// Report contains precomputed data for history rendering.
type Report struct {
	Attempts []model.AttemptRecord
	Reasons  []model.ReasonCount
	Summary  Summary
	Trend    []float64
}

// BuildReport loads and prepares data for history rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (Report, error) {
	attempts, err := st.ListAttempts(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	reasons, err := st.CountByReason(ctx)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Attempts: attempts,
		Reasons:  reasons,
		Summary:  Summarize(attempts),
		Trend:    MovingAverage(AcceptedAccuracies(attempts), cfg.CurveWindow),
	}, nil
}
