// Package calendar builds month views of dated projects and actions.
package calendar

import (
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/strata/internal/domain"
)

type ItemType string

const (
	ItemProject ItemType = "project"
	ItemAction  ItemType = "action"
)

// Item is one entry on a calendar day. Items are derived on every build
// and never stored.
type Item struct {
	ID            string
	Title         string
	Type          ItemType
	Date          time.Time
	Status        string
	StrategyID    string
	StrategyTitle string
	Color         string
}

// BuildItems collects projects (by due date) and non-archived actions (by
// due date) that fall in the given month. Strategy title and color are
// copied from the parent strategy.
func BuildItems(year int, month time.Month, strategies []domain.Strategy, projects []domain.Project, actions []domain.Action) []Item {
	byID := make(map[string]*domain.Strategy, len(strategies))
	for i := range strategies {
		byID[strategies[i].ID] = &strategies[i]
	}
	inMonth := func(t *time.Time) bool {
		if t == nil {
			return false
		}
		y, m, _ := t.Date()
		return y == year && m == month
	}
	decorate := func(it Item) Item {
		if s, ok := byID[it.StrategyID]; ok {
			it.StrategyTitle = s.Title
			it.Color = s.DisplayColor()
		} else {
			it.Color = domain.DefaultStrategyColor
		}
		return it
	}

	var items []Item
	for _, p := range projects {
		if !inMonth(p.DueDate) {
			continue
		}
		items = append(items, decorate(Item{
			ID:         p.ID,
			Title:      p.Title,
			Type:       ItemProject,
			Date:       *p.DueDate,
			Status:     string(p.Status),
			StrategyID: p.StrategyID,
		}))
	}
	for _, a := range actions {
		if a.IsArchived || !inMonth(a.DueDate) {
			continue
		}
		items = append(items, decorate(Item{
			ID:         a.ID,
			Title:      a.Title,
			Type:       ItemAction,
			Date:       *a.DueDate,
			Status:     string(a.Status),
			StrategyID: a.StrategyID,
		}))
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Type != b.Type {
			return a.Type == ItemProject
		}
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	})
	return items
}
