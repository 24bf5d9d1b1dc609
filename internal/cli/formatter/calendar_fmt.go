package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/strata/internal/app"
	"github.com/alexanderramin/strata/internal/calendar"
	"github.com/alexanderramin/strata/internal/dates"
)

const calendarCellWidth = 5

var weekdayHeaders = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// FormatCalendar renders a Sunday-first month grid followed by an agenda
// of the month's dated items. Days with items carry a dot; today is
// highlighted.
func FormatCalendar(resp *app.CalendarResponse) string {
	var b strings.Builder
	m := resp.Month

	title := fmt.Sprintf("%s %d", m.Month, m.Year)
	b.WriteString(Header(title))
	b.WriteString("\n")
	b.WriteString(Dim(resp.Timezone))
	b.WriteString("\n\n")

	for _, d := range weekdayHeaders {
		b.WriteString(PadRight(StyleDim.Render(d), calendarCellWidth))
	}
	b.WriteString("\n")

	for _, week := range m.Weeks() {
		for _, c := range week {
			b.WriteString(PadRight(formatCell(c, resp), calendarCellWidth))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(formatAgenda(m, resp))
	return b.String()
}

func formatCell(c *calendar.Cell, resp *app.CalendarResponse) string {
	if c == nil {
		return ""
	}
	day := fmt.Sprintf("%2d", c.Date.Day())
	switch {
	case dates.SameDay(c.Date, resp.Today):
		day = StyleHighlight.Render(day)
	case len(c.Items) > 0:
		day = StyleBold.Render(day)
	default:
		day = StyleDim.Render(day)
	}
	if len(c.Items) > 0 {
		day += lipgloss.NewStyle().Foreground(lipgloss.Color(c.Items[0].Color)).Render("•")
	}
	return day
}

func formatAgenda(m calendar.Month, resp *app.CalendarResponse) string {
	if len(resp.Items) == 0 {
		return Dim("Nothing due this month.") + "\n"
	}

	var b strings.Builder
	b.WriteString(StyleHeader.Render("AGENDA"))
	b.WriteString("\n")
	for d := 1; d <= dates.DaysInMonth(m.Year, m.Month); d++ {
		c := m.Day(d)
		if c == nil || len(c.Items) == 0 {
			continue
		}
		b.WriteString(StyleBold.Render(HumanDate(c.Date, resp.Today)))
		b.WriteString("\n")
		for _, it := range c.Items {
			glyph := "◆"
			if it.Type == calendar.ItemProject {
				glyph = "▬"
			}
			swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(it.Color)).Render(glyph)
			line := fmt.Sprintf("  %s %s", swatch, it.Title)
			if it.StrategyTitle != "" {
				line += "  " + Dim(it.StrategyTitle)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
