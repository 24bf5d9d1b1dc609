package rollup

import (
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/strata/internal/domain"
)

const (
	// UnlinkedGroupID is the ParentID of the bucket for actions without a
	// project.
	UnlinkedGroupID = "unlinked"

	// UnlinkedGroupTitle is shown as the heading of the unlinked bucket.
	UnlinkedGroupTitle = "Unlinked actions"
)

// ActionGroup is a project and the actions under it.
type ActionGroup struct {
	ParentID    string
	ParentTitle string
	Linked      bool
	Children    []domain.Action
	Progress    Completion
}

// ProjectGroup is a strategy and the projects under it.
type ProjectGroup struct {
	ParentID    string
	ParentTitle string
	Children    []domain.Project
	Progress    Completion
}

// GroupActionsByProject buckets actions by their parent project. Linked
// groups are ordered by project title then id; the unlinked bucket, when
// present, is always last. Children are ordered by CreatedAt, ties keeping
// input order.
func GroupActionsByProject(actions []domain.Action, projects []domain.Project) []ActionGroup {
	titles := make(map[string]string, len(projects))
	for _, p := range projects {
		titles[p.ID] = p.Title
	}

	byParent := make(map[string]*ActionGroup)
	var order []string
	for _, a := range actions {
		key := UnlinkedGroupID
		pid, linked := a.Project.ID()
		if linked {
			key = "p:" + pid
		}
		g, ok := byParent[key]
		if !ok {
			g = &ActionGroup{ParentID: UnlinkedGroupID, ParentTitle: UnlinkedGroupTitle}
			if linked {
				g.ParentID = pid
				g.ParentTitle = domain.CoalesceStr(titles[pid], pid)
				g.Linked = true
			}
			byParent[key] = g
			order = append(order, key)
		}
		g.Children = append(g.Children, a)
	}

	groups := make([]ActionGroup, 0, len(order))
	for _, key := range order {
		g := byParent[key]
		sortByCreated(g.Children, func(a domain.Action) time.Time { return a.CreatedAt })
		g.Progress = ActionCompletion(g.Children)
		groups = append(groups, *g)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if a.Linked != b.Linked {
			return a.Linked
		}
		if ta, tb := strings.ToLower(a.ParentTitle), strings.ToLower(b.ParentTitle); ta != tb {
			return ta < tb
		}
		return a.ParentID < b.ParentID
	})
	return groups
}

// GroupProjectsByStrategy buckets projects by strategy. Groups follow the
// order of strategies; projects for unknown strategies are dropped.
func GroupProjectsByStrategy(projects []domain.Project, strategies []domain.Strategy) []ProjectGroup {
	groups := make([]ProjectGroup, len(strategies))
	index := make(map[string]int, len(strategies))
	for i, s := range strategies {
		groups[i] = ProjectGroup{ParentID: s.ID, ParentTitle: s.Title}
		index[s.ID] = i
	}
	for _, p := range projects {
		if i, ok := index[p.StrategyID]; ok {
			groups[i].Children = append(groups[i].Children, p)
		}
	}
	for i := range groups {
		sortByCreated(groups[i].Children, func(p domain.Project) time.Time { return p.CreatedAt })
		groups[i].Progress = ProjectCompletion(groups[i].Children)
	}
	return groups
}

// sortByCreated orders items by creation instant, keeping input order for
// ties. Time.Before is valid for every representable year.
func sortByCreated[T any](items []T, created func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return created(items[i]).Before(created(items[j]))
	})
}
