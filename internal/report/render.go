package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/ecsfault/foundation/core/exception"
	"github.com/msto63/ecsfault/internal/journal"
	"github.com/msto63/ecsfault/pkg/core/config"
)

// Colors by severity
var (
	ColorLow      = lipgloss.Color("#06B6D4") // Cyan
	ColorMedium   = lipgloss.Color("#F59E0B") // Amber
	ColorHigh     = lipgloss.Color("#EF4444") // Red
	ColorCritical = lipgloss.Color("#DC2626") // Dark Red
	ColorText     = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextDim  = lipgloss.Color("#64748B") // Slate 500
	ColorSource   = lipgloss.Color("#8B5CF6") // Violet
)

var (
	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0F172A")).
			Bold(true).
			Padding(0, 1)

	messageStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	locationStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	sourceStyle = lipgloss.NewStyle().
			Foreground(ColorSource)
)

// SeverityColor returns the badge color for a severity
func SeverityColor(s exception.Severity) lipgloss.Color {
	switch s {
	case exception.SeverityLow:
		return ColorLow
	case exception.SeverityHigh:
		return ColorHigh
	case exception.SeverityCritical:
		return ColorCritical
	default:
		return ColorMedium
	}
}

// Renderer formats faults for the terminal
type Renderer struct {
	trimPrefix string
	plain      bool
}

// NewRenderer creates a renderer from the report configuration
func NewRenderer(cfg config.ReportConfig) *Renderer {
	return &Renderer{
		trimPrefix: cfg.TrimPrefix,
		plain:      cfg.NoColor,
	}
}

// Fault renders a fault on a single line
func (r *Renderer) Fault(f exception.Fault) string {
	return r.render(f.Category().String(), exception.SeverityFor(f.Category()), f.Message(), f.Location())
}

// Record renders a journal record: a header line followed by the fault line
func (r *Renderer) Record(rec *journal.Record) string {
	header := fmt.Sprintf("%s  %s  %s", rec.Timestamp.Local().Format("2006-01-02 15:04:05"), rec.Source, rec.ID)
	if !r.plain {
		header = locationStyle.Render(rec.Timestamp.Local().Format("2006-01-02 15:04:05")) + "  " +
			sourceStyle.Render(rec.Source) + "  " + locationStyle.Render(rec.ID)
	}
	body := r.render(rec.Category, exception.ParseSeverity(rec.Severity), rec.Message, rec.Location())
	return header + "\n" + body
}

func (r *Renderer) render(category string, severity exception.Severity, message string, loc exception.Location) string {
	where := "(unknown location)"
	if !loc.IsZero() {
		where = fmt.Sprintf("(%s:%d in %s)", r.trimPath(loc.File), loc.Line, loc.Function)
	}

	if r.plain {
		return fmt.Sprintf("[%s] %s %s", category, message, where)
	}

	badge := badgeStyle.Background(SeverityColor(severity)).Render(category)
	if category == "" {
		badge = badgeStyle.Background(SeverityColor(severity)).Render("-")
	}
	return badge + " " + messageStyle.Render(message) + " " + locationStyle.Render(where)
}

func (r *Renderer) trimPath(file string) string {
	if r.trimPrefix == "" {
		return file
	}
	return strings.TrimPrefix(strings.TrimPrefix(file, r.trimPrefix), "/")
}
