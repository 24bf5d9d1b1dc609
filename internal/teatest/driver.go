// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver calls Update directly and runs each returned Cmd inline, feeding
// its message back in. Cmds that wait on timers (cursor blink, tea.Tick)
// are abandoned after a short timeout so tests never sleep.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many chained Cmds one Send may run.
const MaxDrainDepth = 100

// cmdTimeout separates immediate Cmds (loads, message factories) from
// timer-driven ones.
const cmdTimeout = 100 * time.Millisecond

// Driver is a synchronous harness for a tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a Cmd yields tea.QuitMsg. Later sends are ignored.
	Quitting bool
	// Skipped counts Cmds abandoned because they did not return in time.
	Skipped int
}

// Option configures a Driver before Init runs.
type Option func(*Driver)

// WithSize sends a WindowSizeMsg before Init.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Send(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model, applies opts and drains Init.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	d.drain(model.Init(), 0)
	return d
}

// Send dispatches msg and drains every resulting Cmd.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd, 0)
}

// Keys sends each named key in turn. Names follow tea.KeyMsg.String, so
// "enter", "esc", "left" and single runes all work.
func (d *Driver) Keys(names ...string) {
	d.T.Helper()
	for _, name := range names {
		d.Send(keyMsg(name))
	}
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// View renders the current model.
func (d *Driver) View() string {
	return d.Model.View()
}

var namedKeys = map[string]tea.KeyType{
	"enter":  tea.KeyEnter,
	"esc":    tea.KeyEsc,
	"up":     tea.KeyUp,
	"down":   tea.KeyDown,
	"left":   tea.KeyLeft,
	"right":  tea.KeyRight,
	"tab":    tea.KeyTab,
	"ctrl+c": tea.KeyCtrlC,
	" ":      tea.KeySpace,
}

func keyMsg(name string) tea.KeyMsg {
	if t, ok := namedKeys[name]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg, ok := run(cmd)
	if !ok {
		d.Skipped++
		return
	}

	switch msg := msg.(type) {
	case nil:
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
	default:
		var next tea.Cmd
		d.Model, next = d.Model.Update(msg)
		d.drain(next, depth+1)
	}
}

// run executes cmd, giving up after cmdTimeout.
func run(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdTimeout):
		return nil, false
	}
}
