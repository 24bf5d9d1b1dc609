package app

import (
	"time"

	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/rollup"
	"github.com/alexanderramin/strata/internal/urgency"
)

type ActionGrouping string

const (
	GroupByDue     ActionGrouping = "due"
	GroupByProject ActionGrouping = "project"
)

// ParseActionGrouping maps a flag value to a grouping. Empty means project.
func ParseActionGrouping(s string) (ActionGrouping, bool) {
	switch ActionGrouping(s) {
	case "", GroupByProject:
		return GroupByProject, true
	case GroupByDue:
		return GroupByDue, true
	}
	return "", false
}

type ActionListRequest struct {
	Now        *time.Time
	StrategyID string
	By         ActionGrouping
}

// ActionRow is one action with the context needed to render it outside
// its group.
type ActionRow struct {
	Action        domain.Action
	StrategyTitle string
	ProjectTitle  string
	Urgency       *urgency.Urgency
}

type ActionListResponse struct {
	By     ActionGrouping
	Today  time.Time
	Groups []ActionGroupView
	// Rows is populated when By is GroupByDue.
	Rows []ActionRow
}

type ActionGroupView struct {
	Group rollup.ActionGroup
	Rows  []ActionRow
}

type ActionShowRequest struct {
	ID  string
	Now *time.Time
}

type ActionDetail struct {
	Row       ActionRow
	Checklist []domain.ChecklistItem
	Progress  rollup.Completion
}
