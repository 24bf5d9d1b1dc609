package repository

import (
	"context"

	"github.com/alexanderramin/strata/internal/domain"
)

type StrategyRepo interface {
	Create(ctx context.Context, s *domain.Strategy) error
	GetByID(ctx context.Context, id string) (*domain.Strategy, error)
	List(ctx context.Context) ([]*domain.Strategy, error)
	// DeleteAll removes every strategy. Projects, actions and checklist
	// items cascade.
	DeleteAll(ctx context.Context) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	ListByStrategy(ctx context.Context, strategyID string) ([]*domain.Project, error)
}

type ActionRepo interface {
	Create(ctx context.Context, a *domain.Action) error
	GetByID(ctx context.Context, id string) (*domain.Action, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Action, error)
	ListByStrategy(ctx context.Context, strategyID string, includeArchived bool) ([]*domain.Action, error)
	UpdateStatus(ctx context.Context, id string, status domain.ActionStatus) error
}

type ChecklistRepo interface {
	Create(ctx context.Context, c *domain.ChecklistItem) error
	List(ctx context.Context) ([]*domain.ChecklistItem, error)
	ListByAction(ctx context.Context, actionID string) ([]*domain.ChecklistItem, error)
}

type UserProfileRepo interface {
	Get(ctx context.Context) (*domain.UserProfile, error)
	Upsert(ctx context.Context, p *domain.UserProfile) error
	SetTimezone(ctx context.Context, tz string) error
}

type SyncStateRepo interface {
	Get(ctx context.Context) (*domain.SyncState, error)
	Put(ctx context.Context, s *domain.SyncState) error
}
