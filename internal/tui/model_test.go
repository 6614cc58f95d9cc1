package tui

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuircle/internal/geometry"
	"github.com/verte-zerg/tuircle/internal/model"
	"github.com/verte-zerg/tuircle/internal/scoring"
	"github.com/verte-zerg/tuircle/internal/session"
	"github.com/verte-zerg/tuircle/internal/statsui"
	"github.com/verte-zerg/tuircle/internal/store"
)

func newTestModel(t *testing.T, st *store.Store) *Model {
	t.Helper()
	m := NewModel(session.DefaultConfig(), st, nil)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 44})
	return m
}

// screenAt returns the terminal cell showing canvas point p.
func screenAt(m *Model, p geometry.Point) (int, int) {
	dx, dy := m.vp.PointToDot(p)
	ox, oy := m.boxOrigin()
	return ox + dx/2, oy + dy/4
}

func mouse(m *Model, action tea.MouseAction, p geometry.Point) tea.Cmd {
	x, y := screenAt(m, p)
	_, cmd := m.Update(tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft})
	return cmd
}

func drawCircle(m *Model, r float64) tea.Cmd {
	center := m.ctrl.Config().Center
	start := geometry.Pt(center.X+r, center.Y)
	mouse(m, tea.MouseActionPress, start)
	for i := 1; i <= 90; i++ {
		mouse(m, tea.MouseActionMotion, geometry.Rotate(start, center, 2*math.Pi*float64(i)/90))
	}
	return mouse(m, tea.MouseActionRelease, start)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMouseCircleAccepted(t *testing.T) {
	m := newTestModel(t, nil)
	if cmd := drawCircle(m, 200); cmd != nil {
		t.Fatalf("expected no flash for accepted attempt")
	}
	if !m.lastOut.Accepted() {
		t.Fatalf("expected accepted attempt, got reason %v", m.lastOut.Reason())
	}
	if !m.hasIdeal || len(m.segments) == 0 {
		t.Fatalf("expected stroke and ideal circle to stay on canvas")
	}
	if !strings.Contains(m.message, "Accuracy:") || !strings.Contains(m.message, "New best!") {
		t.Fatalf("unexpected message %q", m.message)
	}
	if !strings.Contains(m.View(), "Best ") {
		t.Fatalf("expected best in footer")
	}
	if m.ctrl.State() != session.Idle {
		t.Fatalf("expected idle controller, got %v", m.ctrl.State())
	}
}

func TestRejectFlashes(t *testing.T) {
	m := newTestModel(t, nil)
	p := geometry.Pt(100, 100)
	mouse(m, tea.MouseActionPress, p)
	cmd := mouse(m, tea.MouseActionRelease, p)
	if cmd == nil {
		t.Fatalf("expected flash tick")
	}
	if !m.flashing || m.message != scoring.TooFewPoints.Message() {
		t.Fatalf("expected flashing rejection, got flashing=%v message=%q", m.flashing, m.message)
	}

	m.Update(flashDoneMsg{seq: m.flashSeq - 1})
	if !m.flashing {
		t.Fatalf("stale flash message must not end the flash")
	}
	m.Update(flashDoneMsg{seq: m.flashSeq})
	if m.flashing {
		t.Fatalf("expected flash to end")
	}
}

func TestLeavingCanvasFinishesAttempt(t *testing.T) {
	m := newTestModel(t, nil)
	mouse(m, tea.MouseActionPress, geometry.Pt(300, 100))
	mouse(m, tea.MouseActionMotion, geometry.Pt(320, 100))
	if m.ctrl.State() != session.Recording {
		t.Fatalf("expected recording, got %v", m.ctrl.State())
	}
	m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if m.ctrl.State() != session.Idle || !m.hasLast || m.lastOut.Accepted() {
		t.Fatalf("expected rejected attempt after leaving canvas")
	}
}

func TestPressOutsideCanvasIgnored(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.ctrl.State() != session.Idle {
		t.Fatalf("expected idle after press on border")
	}
}

func TestBestView(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(key("b"))
	if !strings.Contains(m.View(), "No best attempt available yet.") {
		t.Fatalf("expected empty best message")
	}
	m.Update(key("b"))
	drawCircle(m, 180)
	m.Update(key("b"))
	if !strings.Contains(m.View(), "Best attempt:") {
		t.Fatalf("expected best attempt view")
	}
	m.Update(key("c"))
	if m.showBest || len(m.segments) != 0 || m.hasIdeal {
		t.Fatalf("expected cleared canvas")
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	st, err := store.Open(store.MemoryDSN)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	m := newTestModel(t, st)
	drawCircle(m, 200)

	recs, err := st.ListAttempts(t.Context(), model.HistoryConfig{})
	if err != nil || len(recs) != 1 || !recs[0].Valid {
		t.Fatalf("expected one journaled attempt, got %v (%v)", recs, err)
	}

	m.Update(key("h"))
	if !m.showHistory || !strings.Contains(m.View(), "Overview") {
		t.Fatalf("expected history view")
	}
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatalf("expected close command")
	}
	msg := cmd()
	if _, ok := msg.(statsui.CloseMsg); !ok {
		t.Fatalf("expected CloseMsg, got %T", msg)
	}
	m.Update(msg)
	if m.showHistory {
		t.Fatalf("expected game view after closing history")
	}
}

func TestHistoryUnavailableWithoutStore(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(key("h"))
	if m.showHistory || m.message != "History is unavailable." {
		t.Fatalf("expected history to be unavailable")
	}
}
