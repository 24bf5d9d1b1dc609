package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/strata/internal/domain"
)

// Date returns midnight UTC of the given calendar date.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DatePtr is Date returning a pointer.
func DatePtr(y int, m time.Month, d int) *time.Time {
	t := Date(y, m, d)
	return &t
}

// Strategy options
type StrategyOption func(*domain.Strategy)

func WithStrategyDates(start, target time.Time) StrategyOption {
	return func(s *domain.Strategy) {
		s.StartDate = start
		s.TargetDate = target
	}
}

func WithStrategyStatus(st domain.StrategyStatus) StrategyOption {
	return func(s *domain.Strategy) {
		s.Status = st
	}
}

func WithColor(c string) StrategyOption {
	return func(s *domain.Strategy) {
		s.ColorCode = c
	}
}

func NewTestStrategy(title string, opts ...StrategyOption) *domain.Strategy {
	s := &domain.Strategy{
		ID:         uuid.New().String(),
		Title:      title,
		Status:     domain.StrategyActive,
		StartDate:  Date(2025, time.January, 1),
		TargetDate: Date(2025, time.June, 30),
		CreatedAt:  time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectDates(start, due *time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = start
		p.DueDate = due
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithProjectCreatedAt(t time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.CreatedAt = t
	}
}

func NewTestProject(strategyID, title string, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		ID:         uuid.New().String(),
		StrategyID: strategyID,
		Title:      title,
		Status:     domain.ProjectNotStarted,
		CreatedAt:  time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Action options
type ActionOption func(*domain.Action)

func WithProject(projectID string) ActionOption {
	return func(a *domain.Action) {
		a.Project = domain.Linked(projectID)
	}
}

func WithActionStatus(s domain.ActionStatus) ActionOption {
	return func(a *domain.Action) {
		a.Status = s
	}
}

func WithDueDate(d time.Time) ActionOption {
	return func(a *domain.Action) {
		a.DueDate = &d
	}
}

func WithArchived() ActionOption {
	return func(a *domain.Action) {
		a.IsArchived = true
	}
}

func WithActionCreatedAt(t time.Time) ActionOption {
	return func(a *domain.Action) {
		a.CreatedAt = t
	}
}

func NewTestAction(strategyID, title string, opts ...ActionOption) *domain.Action {
	a := &domain.Action{
		ID:         uuid.New().String(),
		StrategyID: strategyID,
		Project:    domain.Unlinked(),
		Title:      title,
		Status:     domain.ActionNotStarted,
		CreatedAt:  time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func NewTestChecklistItem(actionID, title string, order int, done bool) *domain.ChecklistItem {
	return &domain.ChecklistItem{
		ID:         uuid.New().String(),
		ActionID:   actionID,
		Title:      title,
		Done:       done,
		OrderIndex: order,
		CreatedAt:  time.Now().UTC(),
	}
}
