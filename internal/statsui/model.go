// Package statsui provides the Bubble Tea attempt history interface.
package statsui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuircle/internal/canvas"
	"github.com/verte-zerg/tuircle/internal/geometry"
	"github.com/verte-zerg/tuircle/internal/model"
	"github.com/verte-zerg/tuircle/internal/scoring"
	"github.com/verte-zerg/tuircle/internal/stats"
	"github.com/verte-zerg/tuircle/internal/store"
)

const (
	tabOverview = iota
	tabAttempts
)

const (
	plotHeight = 8
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// CloseMsg is emitted when an embedded history view is dismissed.
type CloseMsg struct{}

// Model implements the Bubble Tea history UI.
type Model struct {
	store *store.Store
	cfg   model.HistoryConfig

	// Embedded views hand control back with CloseMsg instead of quitting.
	Embedded bool

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	overview  viewport.Model
	attempts  table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

// NewModel constructs a history UI model.
func NewModel(st *store.Store, cfg model.HistoryConfig) *Model {
	if cfg.CurveWindow < 1 {
		cfg.CurveWindow = 1
	}
	m := &Model{
		store:    st,
		cfg:      cfg,
		tabs:     []string{"Overview", "Attempts"},
		overview: viewport.New(0, 0),
		attempts: buildAttemptTable(nil, 0, 1),
	}
	m.initInputs()
	m.Refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// SetSize resizes the view.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.updateLayout()
	m.renderTabContents()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if m.activeTab == tabAttempts {
			m.attempts.Focus()
		} else {
			m.attempts.Blur()
		}
		switch msg.String() {
		case "q", "esc":
			return m, m.close()
		case "left", "h":
			m.moveTab(-1)
			return m, nil
		case "right", "l", "tab":
			m.moveTab(1)
			return m, nil
		case "=":
			m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
			m.Refresh()
			return m, nil
		case "-":
			m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
			m.Refresh()
			return m, nil
		case "a":
			m.cfg.AcceptedOnly = !m.cfg.AcceptedOnly
			m.Refresh()
			return m, nil
		case "/":
			return m.startFilter()
		case "g", "home":
			if m.activeTab == tabAttempts {
				m.attempts.GotoTop()
			} else {
				m.overview.GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabAttempts {
				m.attempts.GotoBottom()
			} else {
				m.overview.GotoBottom()
			}
			return m, nil
		default:
			var cmd tea.Cmd
			if m.activeTab == tabAttempts {
				m.attempts, cmd = m.attempts.Update(msg)
				return m, cmd
			}
			m.overview, cmd = m.overview.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// Refresh reloads the report from the journal.
func (m *Model) Refresh() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.overview.SetContent("Failed to load history.")
		return
	}
	m.errMsg = ""
	m.report = report
	m.attempts.SetRows(attemptRows(report.Attempts))
	m.updateLayout()
	m.renderTabContents()
}

func (m *Model) close() tea.Cmd {
	if !m.Embedded {
		return tea.Quit
	}
	return func() tea.Msg { return CloseMsg{} }
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Mode: "),
		newFilterInput("Last: "),
		newFilterInput("Curve window: "),
	}
	m.filterInputs[0].Placeholder = "deviation | endpoint"
	m.setInputsFromConfig()
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	m.filterInputs[0].SetValue(m.cfg.Mode)
	if m.cfg.Last > 0 {
		m.filterInputs[1].SetValue(strconv.Itoa(m.cfg.Last))
	} else {
		m.filterInputs[1].SetValue("")
	}
	m.filterInputs[2].SetValue(strconv.Itoa(m.cfg.CurveWindow))
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(1, lipgloss.Height(activeNavStyle.Render("X")))
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.attempts.SetWidth(m.width)
	m.attempts.SetHeight(max(1, bodyHeight-1))
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = max(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := (m.activeTab + delta + count) % count
	m.activeTab = next
	if m.activeTab == tabAttempts {
		m.attempts.Focus()
	} else {
		m.attempts.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	filters := padLines(m.renderFilterSummary(), m.width)
	return tabs + "\n" + filters
}

func (m *Model) renderFilterSummary() string {
	mode := m.cfg.Mode
	if mode == "" {
		mode = "any"
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Settings: mode=%s  last=%s  accepted-only=%t  window=%d", mode, last, m.cfg.AcceptedOnly, m.cfg.CurveWindow)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := headerStyle.Render("Nav: left/right  Scroll: up/down  Window: -/=  Accepted only: a  Settings: /  Back: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	if m.activeTab == tabAttempts {
		if len(m.report.Attempts) == 0 {
			return fitLines("No attempts yet.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.attempts.View()), m.width, height)
	}
	return fitLines(m.overview.View(), m.width, height)
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Settings (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderTabContents() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(renderOverview(m.report, m.cfg.CurveWindow, width))
}

func renderOverview(report stats.Report, window, width int) string {
	if report.Summary.Attempts == 0 {
		return "No attempts yet."
	}
	parts := []string{renderSummaryCards(report.Summary, width)}
	if report.Summary.HasAccepted {
		spark := stats.Sparkline(stats.AcceptedAccuracies(report.Attempts))
		parts = append(parts, headerStyle.Render("Accuracy ")+truncateLine(spark, max(1, width-9)))
		parts = append(parts, headerStyle.Render(fmt.Sprintf("Moving average (window %d)", window)))
		parts = append(parts, renderTrend(report.Trend, width, plotHeight))
	}
	if len(report.Reasons) > 0 {
		lines := []string{headerStyle.Render("Rejections")}
		for _, rc := range report.Reasons {
			lines = append(lines, fmt.Sprintf("  %-18s %d", rc.Reason, rc.Count))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

func renderSummaryCards(sum stats.Summary, width int) string {
	cards := []string{
		metricCard("Attempts", fmt.Sprintf("%d", sum.Attempts)),
		metricCard("Accepted", fmt.Sprintf("%d (%.0f%%)", sum.Accepted, sum.AcceptRate()*100)),
	}
	if sum.HasAccepted {
		cards = append(cards,
			accuracyCard("Best", sum.BestAcc),
			accuracyCard("Average", sum.AvgAcc),
			accuracyCard("Last", sum.LastAcc),
		)
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func accuracyCard(label string, acc float64) string {
	value := cardValueStyle.
		Foreground(lipgloss.Color(scoring.ColorForAccuracy(acc).Hex())).
		Render(fmt.Sprintf("%.2f%%", acc))
	return cardStyle.Render(fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), value))
}

// renderTrend plots values in [0, 100] as a braille line chart.
func renderTrend(values []float64, width, height int) string {
	if len(values) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	w := float64(width * 2)
	h := float64(height * 4)
	r := canvas.NewRaster(canvas.NewViewport(width, height, w, h))
	point := func(i int) geometry.Point {
		x := 0.0
		if len(values) > 1 {
			x = float64(i) / float64(len(values)-1) * (w - 1)
		}
		v := max(0, min(100, values[i]))
		return geometry.Pt(x, (h-1)*(1-v/100))
	}
	if len(values) == 1 {
		r.Polyline(geometry.Stroke{point(0)}, scoring.ColorForAccuracy(values[0]))
		return r.Render()
	}
	for i := 1; i < len(values); i++ {
		r.Line(point(i-1), point(i), scoring.ColorForAccuracy(values[i]))
	}
	return r.Render()
}

func buildAttemptTable(records []model.AttemptRecord, width, height int) table.Model {
	t := table.New(
		table.WithColumns(attemptColumns()),
		table.WithRows(attemptRows(records)),
		table.WithHeight(max(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(attemptTableStyles())
	return t
}

func attemptColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Mode", Width: 9},
		{Title: "Result", Width: 17},
		{Title: "Accuracy", Width: 9},
		{Title: "Radius", Width: 7},
		{Title: "Std-dev", Width: 7},
		{Title: "Points", Width: 6},
	}
}

func attemptRows(records []model.AttemptRecord) []table.Row {
	rows := make([]table.Row, 0, len(records))
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
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			rec.Mode,
			result,
			acc,
			fmt.Sprintf("%.1f", rec.MeanRadius),
			fmt.Sprintf("%.2f", rec.StdDev),
			strconv.Itoa(rec.Points),
		})
	}
	return rows
}

func attemptTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.Refresh()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	m.filterIndex = (idx + count) % count
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	mode := strings.ToLower(strings.TrimSpace(m.filterInputs[0].Value()))
	if mode != "" && mode != "any" {
		parsed, err := scoring.ParseMode(mode)
		if err != nil {
			return err
		}
		mode = parsed.String()
	} else {
		mode = ""
	}

	lastInput := strings.TrimSpace(m.filterInputs[1].Value())
	last := 0
	if lastInput != "" {
		parsed, err := strconv.Atoi(lastInput)
		if err != nil || parsed < 0 {
			return fmt.Errorf("invalid last value (use 0 or positive integer)")
		}
		last = parsed
	}

	window := 1
	if windowInput := strings.TrimSpace(m.filterInputs[2].Value()); windowInput != "" {
		parsed, err := strconv.Atoi(windowInput)
		if err != nil || parsed < 1 {
			return fmt.Errorf("invalid curve window (use integer >= 1)")
		}
		window = parsed
	}

	m.cfg = model.HistoryConfig{
		Mode:         mode,
		AcceptedOnly: m.cfg.AcceptedOnly,
		Last:         last,
		CurveWindow:  window,
	}
	return nil
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	if n%5 == 0 {
		return n + 5
	}
	return ((n / 5) + 1) * 5
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
