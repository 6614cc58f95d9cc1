package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuircle/internal/scoring"
	"github.com/verte-zerg/tuircle/internal/stats"
)

const (
	footerSep  = "  "
	footerHelp = "b best · h history · c clear · q quit"
)

type footerSegment struct {
	text  string
	style lipgloss.Style
}

func (m *Model) footerSegments() []footerSegment {
	var segs []footerSegment
	if m.hasLive {
		segs = append(segs, footerSegment{
			text:  fmt.Sprintf("Live %.1f%%", m.liveAcc),
			style: colorStyle(m.liveColor),
		})
	}
	if m.hasLast {
		if m.lastOut.Accepted() {
			segs = append(segs, footerSegment{
				text:  fmt.Sprintf("Last %.2f%%", m.lastOut.Accuracy()),
				style: colorStyle(m.lastOut.Color),
			})
		} else {
			segs = append(segs, footerSegment{
				text:  "Last " + m.lastOut.Reason().String(),
				style: rejectStyle,
			})
		}
	}
	if rec, ok := m.ctrl.Best(); ok {
		segs = append(segs, footerSegment{
			text:  fmt.Sprintf("Best %.2f%%", rec.Accuracy),
			style: colorStyle(scoring.ColorForAccuracy(rec.Accuracy)),
		})
	}
	if len(m.accepted) > 1 {
		tail := m.accepted[max(0, len(m.accepted)-sparkTail):]
		segs = append(segs, footerSegment{text: "Trend " + stats.Sparkline(tail), style: footerStyle})
	}
	segs = append(segs, footerSegment{text: footerHelp, style: footerStyle})
	return segs
}

func (m *Model) renderFooter() string {
	return fitSegments(m.footerSegments(), m.width)
}

// fitSegments joins segments until width is reached. The first segment that
// does not fit is truncated and the rest are dropped.
func fitSegments(segs []footerSegment, width int) string {
	parts := make([]string, 0, len(segs))
	used := 0
	for i, seg := range segs {
		sep := 0
		if i > 0 {
			sep = runewidth.StringWidth(footerSep)
		}
		w := runewidth.StringWidth(seg.text)
		if width > 0 && used+sep+w > width {
			room := width - used - sep
			if room > 1 {
				parts = append(parts, seg.style.Render(runewidth.Truncate(seg.text, room, "…")))
			}
			break
		}
		parts = append(parts, seg.style.Render(seg.text))
		used += sep + w
	}
	return strings.Join(parts, footerSep)
}

func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func colorStyle(c scoring.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
}
