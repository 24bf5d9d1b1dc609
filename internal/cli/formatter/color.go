package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/urgency"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorOrange = lipgloss.Color("#fe8019")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = ColorOrange
)

var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleOrange     = lipgloss.NewStyle().Foreground(ColorOrange)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleHighlight  = lipgloss.NewStyle().Foreground(lipgloss.Color("#282828")).Background(ColorYellow).Bold(true)
)

// StrategyStyle colors text with a strategy's swatch.
func StrategyStyle(s domain.Strategy) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.DisplayColor()))
}

// UrgencyStyle maps an urgency to its severity color.
func UrgencyStyle(u urgency.Urgency) lipgloss.Style {
	return SeverityStyle(u.Severity)
}

// SeverityStyle colors a bucket severity. Overdue is red, today and the
// next two days are orange, the coming fortnight is yellow.
func SeverityStyle(severity int) lipgloss.Style {
	switch {
	case severity >= severityOverdue:
		return StyleRed
	case severity >= severityImminent:
		return StyleOrange
	case severity >= severityWeek:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// Severities of the first bucket in each color band.
var (
	severityWeek     = severityOf(urgency.DueOneWeek)
	severityImminent = severityOf(urgency.DueImminent)
	severityOverdue  = severityOf(urgency.OverdueOneDay)
)

func severityOf(b urgency.Bucket) int {
	for i, bucket := range urgency.Buckets() {
		if bucket == b {
			return i
		}
	}
	return urgency.MaxSeverity
}

// ProjectStatusPill renders a project status with its short code.
func ProjectStatusPill(status domain.ProjectStatus) string {
	text := fmt.Sprintf("%s %s", status.Code(), status.Label())
	switch status {
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ " + text)
	case domain.ProjectOnTrack:
		return StyleGreen.Render("● " + text)
	case domain.ProjectBehind:
		return StyleRed.Render("▲ " + text)
	case domain.ProjectOnHold:
		return StyleYellow.Render("○ " + text)
	default:
		return StyleBlue.Render("○ " + text)
	}
}

// ActionStatusPill renders an action status.
func ActionStatusPill(status domain.ActionStatus) string {
	switch status {
	case domain.ActionAchieved:
		return StyleDim.Render("✔ " + status.Label())
	case domain.ActionInProgress:
		return StyleGreen.Render("● " + status.Label())
	case domain.ActionAtRisk:
		return StyleRed.Render("▲ " + status.Label())
	case domain.ActionOnHold:
		return StyleYellow.Render("○ " + status.Label())
	default:
		return StyleBlue.Render("○ " + status.Label())
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
