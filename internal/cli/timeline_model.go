package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/strata/internal/app"
	"github.com/alexanderramin/strata/internal/cli/formatter"
	"github.com/alexanderramin/strata/internal/timeline"
	"github.com/alexanderramin/strata/internal/viewstate"
)

const (
	scrollStep = 4
	// captionWidth is reserved right of the axis for the completion caption.
	captionWidth = 16
	minAxisCols  = 10
)

type timelineKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Toggle      key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	Today       key.Binding
	Search      key.Binding
	Reload      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultTimelineKeys() timelineKeyMap {
	return timelineKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "earlier")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "later")),
		Toggle:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand/collapse")),
		ExpandAll:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "expand all")),
		CollapseAll: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collapse all")),
		Today:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k timelineKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Left, k.Right, k.Today, k.Search, k.Help, k.Quit}
}

func (k timelineKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.ExpandAll, k.CollapseAll},
		{k.Today, k.Search, k.Reload, k.Quit},
	}
}

type timelineLoadedMsg struct {
	resp *app.TimelineResponse
	err  error
}

// highlightExpiredMsg fires HighlightTTL after a highlight is set.
type highlightExpiredMsg struct{}

// timelineModel is the scrollable timeline. Expansion and highlight live
// in a viewstate.State; the response itself is never mutated.
type timelineModel struct {
	ctx context.Context
	svc app.TimelineUseCase
	req app.TimelineRequest
	now func() time.Time

	resp    *app.TimelineResponse
	err     error
	loading bool

	state      *viewstate.State
	cursor     int
	offset     int
	daysPerCol int
	width      int
	height     int
	// centeredOn is the layout the scroll was last centred for. Today is
	// re-centred only when it changes, so manual scrolling sticks.
	centeredOn string

	keys      timelineKeyMap
	help      help.Model
	search    textinput.Model
	searching bool
	notice    string
}

func newTimelineModel(ctx context.Context, svc app.TimelineUseCase, req app.TimelineRequest, daysPerCol int) *timelineModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "strategy, project or action"

	return &timelineModel{
		ctx:        ctx,
		svc:        svc,
		req:        req,
		now:        time.Now,
		loading:    true,
		state:      viewstate.New(),
		daysPerCol: daysPerCol,
		keys:       defaultTimelineKeys(),
		help:       help.New(),
		search:     ti,
	}
}

func (m *timelineModel) Init() tea.Cmd {
	return m.load()
}

func (m *timelineModel) load() tea.Cmd {
	ctx, svc, req := m.ctx, m.svc, m.req
	return func() tea.Msg {
		resp, err := svc.GetTimeline(ctx, req)
		return timelineLoadedMsg{resp: resp, err: err}
	}
}

func (m *timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timelineLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.resp = msg.resp
			m.clampCursor()
			m.centerToday(false)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.centerToday(false)
		m.clampOffset()
		return m, nil

	case highlightExpiredMsg:
		m.state.ClearExpired(m.now())
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *timelineModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cursor--
		m.clampCursor()
	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor()
	case key.Matches(msg, m.keys.Left):
		m.offset -= scrollStep
		m.clampOffset()
	case key.Matches(msg, m.keys.Right):
		m.offset += scrollStep
		m.clampOffset()
	case key.Matches(msg, m.keys.Toggle):
		if fw := m.selected(); fw != nil {
			m.state.Toggle(fw.Strategy.ID)
		}
	case key.Matches(msg, m.keys.ExpandAll):
		if m.resp != nil {
			ids := make([]string, len(m.resp.Frameworks))
			for i, fw := range m.resp.Frameworks {
				ids[i] = fw.Strategy.ID
			}
			m.state.ExpandAll(ids)
		}
	case key.Matches(msg, m.keys.CollapseAll):
		m.state.CollapseAll()
	case key.Matches(msg, m.keys.Today):
		m.centerToday(true)
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.notice = ""
		m.search.SetValue("")
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, m.load()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *timelineModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, m.jumpTo(m.search.Value())
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// jumpTo selects the first strategy, milestone or marker whose title
// contains query, scrolls it into view and highlights it.
func (m *timelineModel) jumpTo(query string) tea.Cmd {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || m.resp == nil {
		return nil
	}
	matches := func(title string) bool { return strings.Contains(strings.ToLower(title), q) }

	for i, fw := range m.resp.Frameworks {
		id, px, child := "", 0, false
		switch {
		case matches(fw.Strategy.Title):
			id, px = fw.Strategy.ID, fw.Bar.LeftPx
		default:
			for _, ms := range fw.Milestones {
				if matches(ms.Project.Title) {
					id, px, child = ms.Project.ID, ms.Bar.LeftPx, true
					break
				}
			}
			if id == "" {
				for _, mk := range fw.Markers {
					if matches(mk.Action.Title) {
						id, px, child = mk.Action.ID, mk.OffsetPx, true
						break
					}
				}
			}
		}
		if id == "" {
			continue
		}

		m.cursor = i
		if child {
			m.state.Expand(fw.Strategy.ID)
		}
		m.scrollTo(px)
		m.state.Highlight(id, m.now())
		return tea.Tick(viewstate.HighlightTTL, func(time.Time) tea.Msg { return highlightExpiredMsg{} })
	}

	m.notice = fmt.Sprintf("no match for %q", query)
	return nil
}

func (m *timelineModel) selected() *app.FrameworkView {
	if m.resp == nil || m.cursor < 0 || m.cursor >= len(m.resp.Frameworks) {
		return nil
	}
	return &m.resp.Frameworks[m.cursor]
}

func (m *timelineModel) clampCursor() {
	n := 0
	if m.resp != nil {
		n = len(m.resp.Frameworks)
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *timelineModel) totalCols() int {
	if m.resp == nil {
		return 0
	}
	return formatter.TimelineColumns(m.resp, m.daysPerCol)
}

// axisCols is the number of axis columns that fit beside the labels.
func (m *timelineModel) axisCols() int {
	w := m.width - formatter.TimelineLabelWidth - captionWidth
	if w < minAxisCols {
		return minAxisCols
	}
	return w
}

func (m *timelineModel) clampOffset() {
	maxOffset := m.totalCols() - m.axisCols()
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// scrollTo centres the axis column holding px.
func (m *timelineModel) scrollTo(px int) {
	perCol := m.daysPerCol * timeline.PixelsPerDay
	m.offset = timeline.CenterScroll(m.totalCols(), m.axisCols(), px/perCol)
}

// centerToday scrolls so today sits mid-viewport. Unless forced it runs
// once per distinct layout, which needs both data and a window size.
func (m *timelineModel) centerToday(force bool) {
	if m.resp == nil || m.width == 0 {
		return
	}
	layout := m.layoutKey()
	if !force && layout == m.centeredOn {
		return
	}
	m.centeredOn = layout
	m.offset = timeline.CenterScroll(m.totalCols(), m.axisCols(), formatter.TodayColumn(m.resp, m.daysPerCol))
}

// layoutKey identifies today's position and the set of strategies shown.
func (m *timelineModel) layoutKey() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d", m.resp.TodayPx, m.resp.AxisWidth)
	for _, fw := range m.resp.Frameworks {
		b.WriteString("/" + fw.Strategy.ID)
	}
	return b.String()
}

func (m *timelineModel) View() string {
	var b strings.Builder

	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.resp == nil:
		b.WriteString(formatter.Dim("Loading timeline..."))
		b.WriteString("\n")
	default:
		width := 0
		if m.width > 0 {
			width = m.axisCols()
		}
		b.WriteString(formatter.FormatTimeline(m.resp, formatter.TimelineOptions{
			DaysPerCol: m.daysPerCol,
			Width:      width,
			Offset:     m.offset,
			Expanded:   m.state.IsExpanded,
			Highlight:  m.state.Highlighted(m.now()),
			Cursor:     m.cursor,
		}))
	}

	b.WriteString("\n")
	if m.searching {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	} else if m.notice != "" {
		b.WriteString(formatter.StyleYellow.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
