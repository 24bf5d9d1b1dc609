package timeline

import (
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/strata/internal/dates"
	"github.com/alexanderramin/strata/internal/domain"
)

// Framework is a strategy with its projects as milestones and its dated
// actions as markers.
type Framework struct {
	Strategy   domain.Strategy
	Milestones []domain.Project
	Markers    []domain.Action
}

// BuildFrameworks groups projects and dated actions under their strategies.
// Records pointing at an unknown strategy are dropped. Frameworks are
// ordered by start date, then title, then id.
func BuildFrameworks(strategies []domain.Strategy, projects []domain.Project, actions []domain.Action) []Framework {
	out := make([]Framework, 0, len(strategies))
	index := make(map[string]int, len(strategies))

	ordered := append([]domain.Strategy(nil), strategies...)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !dates.SameDay(a.StartDate, b.StartDate) {
			return dates.Before(a.StartDate, b.StartDate)
		}
		if ta, tb := strings.ToLower(a.Title), strings.ToLower(b.Title); ta != tb {
			return ta < tb
		}
		return a.ID < b.ID
	})
	for _, s := range ordered {
		index[s.ID] = len(out)
		out = append(out, Framework{Strategy: s})
	}

	for _, p := range projects {
		if i, ok := index[p.StrategyID]; ok {
			out[i].Milestones = append(out[i].Milestones, p)
		}
	}
	for _, a := range actions {
		if a.DueDate == nil {
			continue
		}
		if i, ok := index[a.StrategyID]; ok {
			out[i].Markers = append(out[i].Markers, a)
		}
	}

	for i := range out {
		sortMilestones(out[i].Milestones)
		sort.SliceStable(out[i].Markers, func(a, b int) bool {
			return dates.Before(*out[i].Markers[a].DueDate, *out[i].Markers[b].DueDate)
		})
	}
	return out
}

// sortMilestones orders projects by their first dated edge. Undated
// projects go last.
func sortMilestones(ps []domain.Project) {
	key := func(p *domain.Project) (time.Time, bool) {
		start, _, ok := p.Span()
		return start, ok
	}
	sort.SliceStable(ps, func(i, j int) bool {
		ti, oki := key(&ps[i])
		tj, okj := key(&ps[j])
		if oki != okj {
			return oki
		}
		if !oki {
			return false
		}
		return dates.Before(ti, tj)
	})
}

// StrategyBar returns the bar for a strategy's start-to-target interval.
func (r Range) StrategyBar(s domain.Strategy) Bar {
	return r.Bar(s.StartDate, s.TargetDate)
}

// MilestoneBar returns the bar for a project. ok is false for undated
// projects.
func (r Range) MilestoneBar(p domain.Project) (Bar, bool) {
	start, end, ok := p.Span()
	if !ok {
		return Bar{}, false
	}
	return r.Bar(start, end), true
}
