// Package tui provides the Bubble Tea drawing interface.
package tui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuircle/internal/canvas"
	"github.com/verte-zerg/tuircle/internal/geometry"
	"github.com/verte-zerg/tuircle/internal/journal"
	"github.com/verte-zerg/tuircle/internal/model"
	"github.com/verte-zerg/tuircle/internal/scoring"
	"github.com/verte-zerg/tuircle/internal/session"
	"github.com/verte-zerg/tuircle/internal/sound"
	"github.com/verte-zerg/tuircle/internal/statsui"
	"github.com/verte-zerg/tuircle/internal/store"
)

const (
	flashDuration = 500 * time.Millisecond
	sparkTail     = 24
)

var (
	centerColor = scoring.Color{R: 240, G: 240, B: 240}
	idealColor  = scoring.Red

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	flashBorderStyle = borderStyle.BorderForeground(lipgloss.Color("#FF4D4F"))
	messageStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	rejectStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

type segment struct {
	from, to geometry.Point
	color    scoring.Color
}

type flashDoneMsg struct {
	seq int
}

// Model implements the Bubble Tea drawing UI.
type Model struct {
	ctrl   *session.Controller
	store  *store.Store
	player sound.Player

	width  int
	height int
	vp     canvas.Viewport

	segments  []segment
	idealR    float64
	hasIdeal  bool
	message   string
	rejected  bool
	flashing  bool
	flashSeq  int
	showBest  bool
	lastOut   session.Outcome
	hasLast   bool
	liveAcc   float64
	liveColor scoring.Color
	hasLive   bool
	accepted  []float64

	history     *statsui.Model
	showHistory bool
}

// NewModel constructs a drawing model. Attempts are journaled into st when
// it is non-nil and announced through player.
func NewModel(cfg session.Config, st *store.Store, player sound.Player) *Model {
	if player == nil {
		player = sound.Nop{}
	}
	m := &Model{store: st, player: player}
	listeners := session.Multi{m, sound.Listener(player)}
	if st != nil {
		listeners = append(listeners, journal.New(st, func(err error) {
			logErrf("%v\n", err)
		}))
	}
	m.ctrl = session.New(cfg, listeners)
	m.resize(80, 24)
	return m
}

// Controller exposes the session driven by the model.
func (m *Model) Controller() *session.Controller {
	return m.ctrl
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showHistory {
		return m.updateHistory(msg)
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flashing = false
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "b":
			if m.ctrl.State() == session.Idle {
				m.showBest = !m.showBest
			}
			return m, nil
		case "c":
			if m.ctrl.State() == session.Idle {
				m.clear()
			}
			return m, nil
		case "h":
			m.openHistory()
			return m, nil
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.showHistory && m.history != nil {
		return m.history.View()
	}
	raster := canvas.NewRaster(m.vp)
	message := m.message
	if m.showBest {
		message = m.drawBest(raster)
	} else {
		for _, s := range m.segments {
			raster.Line(s.from, s.to, s.color)
		}
		if m.hasIdeal {
			raster.Circle(m.ctrl.Config().Center, m.idealR, idealColor)
		}
	}
	cfg := m.ctrl.Config()
	raster.Dot(cfg.Center, cfg.DotRadius, centerColor)

	border := borderStyle
	if m.flashing {
		border = flashBorderStyle
	}
	box := border.Render(raster.Render())
	msgLine := messageStyle.Render(truncate(message, m.width))
	if m.rejected && !m.showBest {
		msgLine = rejectStyle.Render(truncate(message, m.width))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box),
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, msgLine),
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.renderFooter()),
	)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	cols := max(1, width-2)
	rows := max(1, height-4)
	// Keep the drawing area roughly square on screen: a cell is about twice
	// as tall as it is wide.
	cfg := m.ctrl.Config()
	aspect := cfg.Width / cfg.Height
	if want := int(float64(rows) * 2 * aspect); want < cols {
		cols = max(1, want)
	}
	m.vp = canvas.NewViewport(cols, rows, cfg.Width, cfg.Height)
	if m.history != nil {
		m.history.SetSize(width, height)
	}
}

// boxOrigin returns the screen cell of the raster's top-left corner.
func (m *Model) boxOrigin() (int, int) {
	boxWidth := m.vp.Cols + 2
	left := max(0, (m.width-boxWidth)/2)
	return left + 1, 1
}

func (m *Model) toCanvas(x, y int) (geometry.Point, bool) {
	ox, oy := m.boxOrigin()
	col, row := x-ox, y-oy
	inside := col >= 0 && row >= 0 && col < m.vp.Cols && row < m.vp.Rows
	return m.vp.CellToPoint(col, row), inside
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	p, inside := m.toCanvas(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return nil
		}
		m.ctrl.PointerDown(p)
		return nil
	case tea.MouseActionMotion:
		if m.ctrl.State() != session.Recording {
			return nil
		}
		if !inside {
			return m.finish()
		}
		m.ctrl.PointerMove(p)
		return nil
	case tea.MouseActionRelease:
		return m.finish()
	}
	return nil
}

func (m *Model) finish() tea.Cmd {
	out, ok := m.ctrl.PointerUp()
	if !ok || out.Accepted() {
		return nil
	}
	m.flashSeq++
	seq := m.flashSeq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	})
}

func (m *Model) clear() {
	m.segments = nil
	m.hasIdeal = false
	m.message = ""
	m.rejected = false
	m.showBest = false
}

func (m *Model) drawBest(raster *canvas.Raster) string {
	rec, ok := m.ctrl.Best()
	if !ok {
		return "No best attempt available yet."
	}
	raster.Polyline(rec.Stroke, scoring.ColorForAccuracy(rec.Accuracy))
	raster.Circle(m.ctrl.Config().Center, rec.MeanRadius, idealColor)
	return fmt.Sprintf("Best attempt: %.2f%% (%s)", rec.Accuracy, rec.Mode)
}

func (m *Model) openHistory() {
	if m.store == nil {
		m.message = "History is unavailable."
		return
	}
	m.history = statsui.NewModel(m.store, model.HistoryConfig{CurveWindow: 5})
	m.history.Embedded = true
	m.history.SetSize(m.width, m.height)
	m.showHistory = true
}

func (m *Model) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statsui.CloseMsg:
		m.showHistory = false
		m.history = nil
		return m, nil
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.MouseMsg:
		return m, nil
	}
	_, cmd := m.history.Update(msg)
	return m, cmd
}

func (m *Model) OnLiveReset() {
	m.segments = m.segments[:0]
	m.hasIdeal = false
	m.hasLive = false
	m.message = ""
	m.rejected = false
	m.showBest = false
}

func (m *Model) OnSegmentDrawn(from, to geometry.Point, color scoring.Color) {
	m.segments = append(m.segments, segment{from: from, to: to, color: color})
}

func (m *Model) OnLiveAccuracy(accuracy float64, color scoring.Color) {
	m.liveAcc = accuracy
	m.liveColor = color
	m.hasLive = true
}

func (m *Model) OnAttemptResult(outcome session.Outcome) {
	m.lastOut = outcome
	m.hasLast = true
	if !outcome.Accepted() {
		m.message = outcome.Reason().Message()
		m.rejected = true
		m.flashing = true
		m.segments = m.segments[:0]
		return
	}
	m.rejected = false
	m.idealR = outcome.Attempt.MeanRadius
	m.hasIdeal = true
	m.accepted = append(m.accepted, outcome.Accuracy())
	m.message = fmt.Sprintf("Accuracy: %.2f%%", outcome.Accuracy())
	if outcome.NewBest {
		m.message += "  New best!"
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
