// Package viewstate holds transient UI state for interactive views: which
// rows are expanded and which item is briefly highlighted.
package viewstate

import (
	"sort"
	"time"
)

// HighlightTTL is how long a highlight stays visible.
const HighlightTTL = 2 * time.Second

// State is not safe for concurrent use; the bubbletea update loop owns it.
type State struct {
	expanded    map[string]bool
	highlighted string
	expiresAt   time.Time
}

func New() *State {
	return &State{expanded: make(map[string]bool)}
}

// Toggle flips id and reports whether it is now expanded.
func (s *State) Toggle(id string) bool {
	if s.expanded[id] {
		delete(s.expanded, id)
		return false
	}
	s.expanded[id] = true
	return true
}

func (s *State) Expand(id string)   { s.expanded[id] = true }
func (s *State) Collapse(id string) { delete(s.expanded, id) }

func (s *State) IsExpanded(id string) bool {
	return s.expanded[id]
}

// ExpandAll marks every id expanded.
func (s *State) ExpandAll(ids []string) {
	for _, id := range ids {
		s.expanded[id] = true
	}
}

func (s *State) CollapseAll() {
	s.expanded = make(map[string]bool)
}

// Expanded returns the expanded ids in sorted order.
func (s *State) Expanded() []string {
	out := make([]string, 0, len(s.expanded))
	for id := range s.expanded {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Highlight marks id until now+HighlightTTL, replacing any earlier
// highlight.
func (s *State) Highlight(id string, now time.Time) {
	s.highlighted = id
	s.expiresAt = now.Add(HighlightTTL)
}

// Highlighted returns the highlighted id, or "" once it has expired.
func (s *State) Highlighted(now time.Time) string {
	if s.highlighted == "" || !now.Before(s.expiresAt) {
		return ""
	}
	return s.highlighted
}

// ClearExpired drops an expired highlight and reports whether one was
// cleared.
func (s *State) ClearExpired(now time.Time) bool {
	if s.highlighted != "" && !now.Before(s.expiresAt) {
		s.highlighted = ""
		return true
	}
	return false
}
