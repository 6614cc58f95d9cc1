// Package stats contains attempt statistics and text reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/tuircle/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates a list of attempts.
type Summary struct {
	Attempts    int
	Accepted    int
	Rejected    int
	BestAcc     float64
	AvgAcc      float64
	LastAcc     float64
	HasAccepted bool
}

// AcceptRate returns the share of accepted attempts in [0, 1].
func (s Summary) AcceptRate() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(s.Attempts)
}

// Summarize computes totals and accuracy figures over accepted attempts.
func Summarize(records []model.AttemptRecord) Summary {
	var sum Summary
	var total float64
	for _, rec := range records {
		sum.Attempts++
		if !rec.Valid {
			sum.Rejected++
			continue
		}
		sum.Accepted++
		total += rec.Accuracy
		if !sum.HasAccepted || rec.Accuracy > sum.BestAcc {
			sum.BestAcc = rec.Accuracy
		}
		sum.LastAcc = rec.Accuracy
		sum.HasAccepted = true
	}
	if sum.Accepted > 0 {
		sum.AvgAcc = total / float64(sum.Accepted)
	}
	return sum
}

// AcceptedAccuracies returns the accuracies of accepted attempts in order.
func AcceptedAccuracies(records []model.AttemptRecord) []float64 {
	out := make([]float64, 0, len(records))
	for _, rec := range records {
		if rec.Valid {
			out = append(out, rec.Accuracy)
		}
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints a summary block for the report.
func RenderSummary(w io.Writer, report Report, useColor bool) error {
	sum := report.Summary
	if sum.Attempts == 0 {
		_, err := fmt.Fprintln(w, "No attempts yet.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Attempts: %d", sum.Attempts),
		fmt.Sprintf("Accepted: %d (%.1f%%)", sum.Accepted, sum.AcceptRate()*100),
	}
	if sum.HasAccepted {
		lines = append(lines,
			fmt.Sprintf("Best: %s", paintAccuracy(sum.BestAcc, useColor)),
			fmt.Sprintf("Average: %s", paintAccuracy(sum.AvgAcc, useColor)),
			fmt.Sprintf("Trend: %s", Sparkline(AcceptedAccuracies(report.Attempts))),
		)
	}
	for _, rc := range report.Reasons {
		lines = append(lines, fmt.Sprintf("Rejected %s: %d", rc.Reason, rc.Count))
	}
	lines = append(lines, "")
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistory prints one aligned row per attempt.
func RenderHistory(w io.Writer, records []model.AttemptRecord, useColor bool) error {
	if len(records) == 0 {
		return nil
	}
	headers := []string{"#", "Mode", "Result", "Accuracy", "Radius", "Std-dev", "Points"}
	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		result := "ok"
		acc := "-"
		if rec.Valid {
			acc = fmt.Sprintf("%.2f%%", rec.Accuracy)
			if rec.NewBest {
				result = "best"
			}
		} else {
			result = rec.Reason
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			rec.Mode,
			result,
			acc,
			fmt.Sprintf("%.1f", rec.MeanRadius),
			fmt.Sprintf("%.2f", rec.StdDev),
			fmt.Sprintf("%d", rec.Points),
		})
	}
	if _, err := fmt.Fprintln(w, "Attempts"); err != nil {
		return err
	}
	rightAlign := map[int]bool{0: true, 3: true, 4: true, 5: true, 6: true}
	for i, line := range formatTable(headers, rows, rightAlign) {
		if i > 0 && useColor && records[i-1].Valid {
			line = paint(line, records[i-1].Accuracy)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
