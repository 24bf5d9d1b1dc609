package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/strata/internal/app"
	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/timeline"
)

const (
	// DefaultDaysPerCol compresses the axis to one terminal column per week.
	DefaultDaysPerCol  = 7
	// TimelineLabelWidth is the width of the row label column.
	TimelineLabelWidth = 26
)

// TimelineOptions controls how much of the axis is drawn and which rows
// are open.
type TimelineOptions struct {
	DaysPerCol int
	// Width is the number of axis columns shown. Zero shows all of them.
	Width int
	// Offset is the first axis column shown.
	Offset    int
	Expanded  func(id string) bool
	Highlight string
	// Cursor is the index of the selected framework. Use -1 for none.
	Cursor int
}

func (o TimelineOptions) pxPerCol() int {
	d := o.DaysPerCol
	if d <= 0 {
		d = DefaultDaysPerCol
	}
	return d * timeline.PixelsPerDay
}

func (o TimelineOptions) isExpanded(id string) bool {
	return o.Expanded != nil && o.Expanded(id)
}

// TimelineColumns returns the axis length in terminal columns.
func TimelineColumns(resp *app.TimelineResponse, daysPerCol int) int {
	px := TimelineOptions{DaysPerCol: daysPerCol}.pxPerCol()
	return (resp.AxisWidth + px - 1) / px
}

// TodayColumn returns the axis column holding today's marker.
func TodayColumn(resp *app.TimelineResponse, daysPerCol int) int {
	return resp.TodayPx / TimelineOptions{DaysPerCol: daysPerCol}.pxPerCol()
}

// axisRow is one line of the chart, one styled string per column.
type axisRow []string

func newAxisRow(width int) axisRow {
	r := make(axisRow, width)
	for i := range r {
		r[i] = " "
	}
	return r
}

func (r axisRow) set(col int, s string) {
	if col >= 0 && col < len(r) {
		r[col] = s
	}
}

func (r axisRow) fill(from, to int, s string) {
	for c := from; c <= to; c++ {
		r.set(c, s)
	}
}

func (r axisRow) String() string {
	return strings.Join(r, "")
}

// FormatTimeline renders strategies as bars on a month axis. Expanded
// strategies list their milestones and a row of action markers colored by
// urgency.
func FormatTimeline(resp *app.TimelineResponse, opts TimelineOptions) string {
	var b strings.Builder

	b.WriteString(Header("Timeline"))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%s → %s  ·  %s",
		resp.Range.MinDate.Format("Jan 2, 2006"),
		resp.Range.MaxDate.Format("Jan 2, 2006"),
		resp.Timezone)))
	b.WriteString("\n\n")

	if len(resp.Frameworks) == 0 {
		b.WriteString(Dim("No strategies yet. Run `strata sync` or `strata import FILE`."))
		b.WriteString("\n")
		return b.String()
	}

	px := opts.pxPerCol()
	total := TimelineColumns(resp, opts.DaysPerCol)
	width := opts.Width
	if width <= 0 || width > total {
		width = total
	}
	col := func(offsetPx int) int {
		return floorDiv(offsetPx, px) - opts.Offset
	}
	barCols := func(bar timeline.Bar) (int, int) {
		return col(bar.LeftPx), col(bar.LeftPx + bar.WidthPx - 1)
	}
	blank := strings.Repeat(" ", TimelineLabelWidth)

	months := newAxisRow(width)
	for _, span := range resp.Months {
		start, end := col(span.StartPx), col(span.EndPx-1)
		label := []rune(span.Label)
		if end-start+1 < len(label) {
			label = []rune(span.Month.Format("Jan"))
		}
		for i, r := range label {
			if start+i > end {
				break
			}
			months.set(start+i, StyleDim.Render(string(r)))
		}
	}
	b.WriteString(blank + months.String() + "\n")

	todayCol := col(resp.TodayPx)
	today := newAxisRow(width)
	if !resp.Today.IsOutsideRange {
		today.set(todayCol, StyleOrange.Render("▼"))
	}
	todayLabel := "today " + resp.Today.Date.Format("Jan 2")
	switch {
	case resp.Today.IsBeforeStart:
		todayLabel += " (before range)"
	case resp.Today.IsAfterEnd:
		todayLabel += " (after range)"
	}
	b.WriteString(PadRight(StyleOrange.Render(Truncate(todayLabel, TimelineLabelWidth-1)), TimelineLabelWidth))
	b.WriteString(today.String() + "\n")

	for i, fw := range resp.Frameworks {
		expanded := opts.isExpanded(fw.Strategy.ID)

		marker := "▸ "
		if expanded {
			marker = "▾ "
		}
		if i == opts.Cursor {
			marker = StyleYellowBold.Render(strings.TrimSpace(marker)) + " "
		}
		label := Truncate(fw.Strategy.Title, TimelineLabelWidth-3)
		if opts.Highlight == fw.Strategy.ID {
			label = StyleHighlight.Render(label)
		} else if i == opts.Cursor {
			label = StyleBold.Render(label)
		}

		row := newAxisRow(width)
		from, to := barCols(fw.Bar)
		row.fill(from, to, StrategyStyle(fw.Strategy).Render("━"))
		if !resp.Today.IsOutsideRange && todayCol >= 0 && todayCol < width && row[todayCol] == " " {
			row.set(todayCol, StyleDim.Render("┊"))
		}
		b.WriteString(PadRight(marker+label, TimelineLabelWidth))
		b.WriteString(row.String())
		b.WriteString("  " + Dim(fw.Actions.Label()))
		b.WriteString("\n")

		if !expanded {
			continue
		}
		for _, ms := range fw.Milestones {
			b.WriteString(formatMilestone(ms, opts, width, barCols))
		}
		if len(fw.Markers) > 0 {
			row := newAxisRow(width)
			for _, mk := range fw.Markers {
				c := col(mk.OffsetPx)
				glyph := "◆"
				if mk.Action.IsAchieved() {
					row.set(c, StyleDim.Render("◇"))
					continue
				}
				if opts.Highlight == mk.Action.ID {
					row.set(c, StyleHighlight.Render(glyph))
					continue
				}
				row.set(c, UrgencyStyle(mk.Urgency).Render(glyph))
			}
			b.WriteString(PadRight("    "+Dim("actions"), TimelineLabelWidth))
			b.WriteString(row.String() + "\n")
		}
	}
	return b.String()
}

func formatMilestone(ms app.MilestoneView, opts TimelineOptions, width int, barCols func(timeline.Bar) (int, int)) string {
	label := Truncate(ms.Project.Title, TimelineLabelWidth-5)
	if opts.Highlight == ms.Project.ID {
		label = StyleHighlight.Render(label)
	}
	line := PadRight("    "+label, TimelineLabelWidth)
	if !ms.HasBar {
		return line + Dim("(no dates)") + "\n"
	}
	row := newAxisRow(width)
	from, to := barCols(ms.Bar)
	row.fill(from, to, milestoneStyle(ms.Project.Status).Render("▬"))
	return line + row.String() + "  " + Dim(ms.Project.Status.Code()) + "\n"
}

func milestoneStyle(status domain.ProjectStatus) lipgloss.Style {
	switch status {
	case domain.ProjectCompleted:
		return StyleDim
	case domain.ProjectBehind:
		return StyleRed
	case domain.ProjectOnHold:
		return StyleYellow
	case domain.ProjectOnTrack:
		return StyleGreen
	default:
		return StyleBlue
	}
}

// floorDiv rounds toward negative infinity so dates before the axis land
// on negative columns.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
