// ============================================================================
// ecsfault - Fault Reporting for the mDW ECS Toolkit
// ============================================================================
//
// Package:     faultviewer
// Description: Bubbletea model for browsing the fault journal
// Author:      Mike Stoffels
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package faultviewer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/ecsfault/foundation/core/exception"
	"github.com/msto63/ecsfault/internal/journal"
	"github.com/msto63/ecsfault/pkg/core/version"
)

// SeverityFilter tracks which severities are shown
type SeverityFilter struct {
	Low      bool
	Medium   bool
	High     bool
	Critical bool
}

// allSeverities returns a filter with every severity enabled
func allSeverities() SeverityFilter {
	return SeverityFilter{Low: true, Medium: true, High: true, Critical: true}
}

// Allows reports whether records of severity s pass the filter
func (f SeverityFilter) Allows(s exception.Severity) bool {
	switch s {
	case exception.SeverityLow:
		return f.Low
	case exception.SeverityHigh:
		return f.High
	case exception.SeverityCritical:
		return f.Critical
	default:
		return f.Medium
	}
}

// Config holds FaultViewer configuration
type Config struct {
	Store           journal.Store
	MaxRecords      int
	RefreshInterval time.Duration
	Source          string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		MaxRecords:      1000,
		RefreshInterval: 2 * time.Second,
	}
}

// Model is the main Bubbletea model for FaultViewer
type Model struct {
	// State
	width      int
	height     int
	ready      bool
	loading    bool
	paused     bool
	autoScroll bool
	err        error

	// Components
	viewport viewport.Model
	spinner  spinner.Model

	// Fault state
	all            []*journal.Record
	filtered       []*journal.Record
	severityFilter SeverityFilter
	categoryFilter string
	categories     []string

	stats *journal.Stats

	// Configuration
	store      journal.Store
	maxRecords int
	interval   time.Duration
	source     string
}

// New creates a new FaultViewer model
func New(cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	if cfg.MaxRecords <= 0 {
		cfg.MaxRecords = DefaultConfig().MaxRecords
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultConfig().RefreshInterval
	}

	return Model{
		spinner:        sp,
		loading:        true,
		severityFilter: allSeverities(),
		autoScroll:     true,
		store:          cfg.Store,
		maxRecords:     cfg.MaxRecords,
		interval:       cfg.RefreshInterval,
		source:         cfg.Source,
		stats:          &journal.Stats{},
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadRecords,
		m.loadStats,
		m.tick(),
	)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4
		footerHeight := 4
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case recordsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.all = msg.records
			m.applyFilters()
			m.updateViewportContent()
			if m.autoScroll {
				m.viewport.GotoBottom()
			}
		}

	case statsLoadedMsg:
		if msg.err == nil {
			m.stats = msg.stats
			m.categories = sortedKeys(msg.stats.ByCategory)
		}

	case tickMsg:
		if !m.paused {
			cmds = append(cmds, m.loadRecords, m.loadStats)
		}
		cmds = append(cmds, m.tick())
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			return m, tea.Quit

		// Severity filters
		case "1":
			m.severityFilter.Low = !m.severityFilter.Low
		case "2":
			m.severityFilter.Medium = !m.severityFilter.Medium
		case "3":
			m.severityFilter.High = !m.severityFilter.High
		case "4":
			m.severityFilter.Critical = !m.severityFilter.Critical
		case "0":
			m.severityFilter = allSeverities()
			m.categoryFilter = ""

		// Cycle category filter
		case "k":
			m.categoryFilter = nextCategory(m.categories, m.categoryFilter)

		case "p", " ":
			m.paused = !m.paused
			return m, nil

		case "r":
			m.loading = true
			return m, tea.Batch(m.loadRecords, m.loadStats)

		case "a":
			m.autoScroll = !m.autoScroll
			if m.autoScroll {
				m.viewport.GotoBottom()
			}
			return m, nil

		case "g":
			m.viewport.GotoTop()
			m.autoScroll = false
			return m, nil

		case "G":
			m.viewport.GotoBottom()
			m.autoScroll = true
			return m, nil

		default:
			return m, nil
		}
		m.applyFilters()
		m.updateViewportContent()
		return m, nil

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		m.autoScroll = false

	case tea.KeyPgDown:
		m.viewport.ViewDown()

	case tea.KeyUp:
		m.viewport.LineUp(1)
		m.autoScroll = false

	case tea.KeyDown:
		m.viewport.LineDown(1)
	}

	return m, nil
}

// nextCategory returns the category after current; "" means all.
// The empty category is shown as "-" and cannot be selected on its own.
func nextCategory(categories []string, current string) string {
	var selectable []string
	for _, c := range categories {
		if c != "" {
			selectable = append(selectable, c)
		}
	}
	if len(selectable) == 0 {
		return ""
	}
	if current == "" {
		return selectable[0]
	}
	for i, c := range selectable {
		if c == current && i+1 < len(selectable) {
			return selectable[i+1]
		}
	}
	return ""
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Lade FaultViewer..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n")
	b.WriteString(PanelStyle.Width(m.width - 2).Height(m.viewport.Height + 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())

	return b.String()
}

// renderHeader renders the header with logo and status
func (m Model) renderHeader() string {
	logo := LogoStyle.Render(Logo)

	source := HelpDescStyle.Render("alle Quellen")
	if m.source != "" {
		source = SourceStyle.Render(m.source)
	}

	pauseStatus := ""
	if m.paused {
		pauseStatus = "  " + StatusPausedStyle.Render("PAUSIERT")
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		logo,
		strings.Repeat(" ", 3),
		source,
		pauseStatus,
	)

	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

// renderFilterBar renders the severity and category filter bar
func (m Model) renderFilterBar() string {
	filters := []string{
		fmt.Sprintf("1:%s", RenderFilterStatus("LOW", m.severityFilter.Low)),
		fmt.Sprintf("2:%s", RenderFilterStatus("MEDIUM", m.severityFilter.Medium)),
		fmt.Sprintf("3:%s", RenderFilterStatus("HIGH", m.severityFilter.High)),
		fmt.Sprintf("4:%s", RenderFilterStatus("CRITICAL", m.severityFilter.Critical)),
	}

	category := "alle"
	if m.categoryFilter != "" {
		category = m.categoryFilter
	}

	content := strings.Join(filters, "  ") +
		"  k:" + FilterActiveStyle.Render(category) +
		"  " + HelpDescStyle.Render(fmt.Sprintf("[%d/%d Fehler]", len(m.filtered), len(m.all)))

	if m.autoScroll {
		content += "  " + FilterActiveStyle.Render("[Auto-Scroll]")
	}

	return FilterBarStyle.Width(m.width - 2).Render(content)
}

// renderStatusBar renders totals from the journal statistics
func (m Model) renderStatusBar() string {
	leftPart := HelpDescStyle.Render(fmt.Sprintf("Gesamt: %d  Component: %d", m.stats.Total, m.stats.ByCategory[string(exception.CategoryComponent)]))
	if alerts := m.alertCount(); alerts > 0 {
		leftPart += "  " + StatusErrorStyle.Render(fmt.Sprintf("Alarm: %d", alerts))
	}
	centerPart := HelpDescStyle.Render("v" + version.Toolkit)

	var rightPart string
	switch {
	case m.loading:
		rightPart = m.spinner.View() + " Lade..."
	case m.err != nil:
		rightPart = StatusErrorStyle.Render("Fehler: " + truncateString(m.err.Error(), 40))
	case !m.stats.Last.IsZero():
		rightPart = HelpDescStyle.Render("Zuletzt: " + m.stats.Last.Local().Format("15:04:05"))
	}

	availableSpace := m.width - lipgloss.Width(leftPart) - lipgloss.Width(centerPart) - lipgloss.Width(rightPart) - 4
	if availableSpace < 2 {
		availableSpace = 2
	}
	leftPadding := availableSpace / 2
	rightPadding := availableSpace - leftPadding

	content := leftPart + strings.Repeat(" ", leftPadding) + centerPart + strings.Repeat(" ", rightPadding) + rightPart

	return StatusBarStyle.Width(m.width - 2).Render(content)
}

// alertCount counts loaded records of high or critical severity
func (m Model) alertCount() int {
	n := 0
	for _, rec := range m.all {
		if exception.ParseSeverity(rec.Severity).ShouldAlert() {
			n++
		}
	}
	return n
}

// renderHelpBar renders the help shortcuts bar
func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("1-4", "Schwere"),
		RenderKeyHint("k", "Kategorie"),
		RenderKeyHint("0", "Alle"),
		RenderKeyHint("p", "Pause"),
		RenderKeyHint("r", "Refresh"),
		RenderKeyHint("a", "AutoScroll"),
		RenderKeyHint("q", "Beenden"),
	}

	return HelpStyle.Render(strings.Join(items, "  "))
}

// updateViewportContent renders two lines per record: summary and location
func (m *Model) updateViewportContent() {
	var content strings.Builder

	for _, rec := range m.filtered {
		timeStr := TimestampStyle.Render(rec.Timestamp.Local().Format("15:04:05"))
		badge := RenderCategoryBadge(rec.Category, exception.ParseSeverity(rec.Severity))
		source := SourceStyle.Render(fmt.Sprintf("[%-10s]", truncateString(rec.Source, 10)))

		content.WriteString(fmt.Sprintf("%s %s %s %s\n", timeStr, badge, source, MessageStyle.Render(rec.Message)))
		content.WriteString("         " + LocationStyle.Render("at "+rec.Location().String()) + "\n")
	}

	m.viewport.SetContent(content.String())
}

// applyFilters filters records based on current filter settings
func (m *Model) applyFilters() {
	m.filtered = make([]*journal.Record, 0, len(m.all))

	for _, rec := range m.all {
		if !m.severityFilter.Allows(exception.ParseSeverity(rec.Severity)) {
			continue
		}
		if m.categoryFilter != "" && rec.Category != m.categoryFilter {
			continue
		}
		m.filtered = append(m.filtered, rec)
	}
}

// loadRecords loads the latest records, oldest first
func (m Model) loadRecords() tea.Msg {
	if m.store == nil {
		return recordsLoadedMsg{err: fmt.Errorf("no journal configured")}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	records, err := m.store.Query(ctx, journal.Filter{Source: m.source, Limit: m.maxRecords})
	if err != nil {
		return recordsLoadedMsg{err: err}
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	return recordsLoadedMsg{records: records}
}

// loadStats loads journal statistics
func (m Model) loadStats() tea.Msg {
	if m.store == nil {
		return statsLoadedMsg{err: fmt.Errorf("no journal configured")}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats, err := m.store.Stats(ctx)
	return statsLoadedMsg{stats: stats, err: err}
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// truncateString truncates a string to max length
func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "~"
}

// Run starts the FaultViewer TUI
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
