// Package model defines shared data structures.
package model

import "time"

// Config defines game settings.
type Config struct {
	Mode      string
	MinRadius float64
	Closure   float64
	DotRadius float64
	Width     float64
	Height    float64
	Sound     bool
}

// HistoryConfig defines filters for attempt history.
type HistoryConfig struct {
	Mode         string
	AcceptedOnly bool
	Last         int
	CurveWindow  int
}

// AttemptRecord captures a finished attempt in the session journal.
type AttemptRecord struct {
	ID         int64
	StartedAt  time.Time
	EndedAt    time.Time
	Mode       string
	Valid      bool
	Reason     string
	Accuracy   float64
	MeanRadius float64
	StdDev     float64
	Points     int
	NewBest    bool
}

// ReasonCount aggregates rejected attempts by reason.
type ReasonCount struct {
	Reason string
	Count  int
}
