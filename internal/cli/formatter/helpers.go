package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/strata/internal/dates"
	"github.com/alexanderramin/strata/internal/urgency"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// HumanDate renders a calendar date relative to today: Today, Tomorrow,
// Yesterday, or "Jan 2, 2006".
func HumanDate(t, today time.Time) string {
	switch dates.Between(today, t) {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	case -1:
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// OptionalDate renders d or a dimmed placeholder.
func OptionalDate(d *time.Time) string {
	if d == nil {
		return Dim("--")
	}
	return d.Format(dates.DateLayout)
}

// UrgencyBadge renders the due caption in its urgency color. A nil
// urgency renders as a dimmed placeholder.
func UrgencyBadge(u *urgency.Urgency) string {
	if u == nil {
		return Dim("--")
	}
	return UrgencyStyle(*u).Render(u.Label)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// PadRight pads s with spaces to a visible width of n.
func PadRight(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
