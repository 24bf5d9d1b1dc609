package app

import (
	"context"

	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/importer"
)

type SnapshotUseCase interface {
	SyncFromAPI(ctx context.Context) (*SyncResult, error)
	ImportFile(ctx context.Context, path string) (*SyncResult, error)
	ImportSchema(ctx context.Context, schema *importer.SnapshotSchema, source string) (*SyncResult, error)
}

type TimelineUseCase interface {
	GetTimeline(ctx context.Context, req TimelineRequest) (*TimelineResponse, error)
}

type CalendarUseCase interface {
	GetMonth(ctx context.Context, req CalendarRequest) (*CalendarResponse, error)
}

type ActionUseCase interface {
	List(ctx context.Context, req ActionListRequest) (*ActionListResponse, error)
	Show(ctx context.Context, req ActionShowRequest) (*ActionDetail, error)
	SetStatus(ctx context.Context, id string, status domain.ActionStatus) (*domain.Action, error)
}

type DashboardUseCase interface {
	GetDashboard(ctx context.Context, req DashboardRequest) (*DashboardResponse, error)
}

type ProfileUseCase interface {
	Show(ctx context.Context) (*ProfileView, error)
	SetTimezone(ctx context.Context, tz string) (*ProfileView, error)
	EffectiveTimezone(ctx context.Context) (string, error)
}
