package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/strata/internal/domain"
)

// Snapshot is a validated, converted planning snapshot.
type Snapshot struct {
	Strategies     []domain.Strategy
	Projects       []domain.Project
	Actions        []domain.Action
	ChecklistItems []domain.ChecklistItem
	Profile        *domain.UserProfile
}

// Convert validates schema and transforms it into domain records. Dates
// without an offset are read in loc. Any validation failure rejects the
// whole snapshot with a *ValidationError.
func Convert(schema *SnapshotSchema, loc *time.Location) (*Snapshot, error) {
	if errs := ValidateSnapshotSchema(schema, loc); len(errs) > 0 {
		return nil, &ValidationError{Errs: errs}
	}

	out := &Snapshot{
		Strategies:     make([]domain.Strategy, 0, len(schema.Strategies)),
		Projects:       make([]domain.Project, 0, len(schema.Projects)),
		Actions:        make([]domain.Action, 0, len(schema.Actions)),
		ChecklistItems: make([]domain.ChecklistItem, 0, len(schema.ChecklistItems)),
	}

	for _, s := range schema.Strategies {
		st, err := ConvertStrategy(s, loc)
		if err != nil {
			return nil, err
		}
		out.Strategies = append(out.Strategies, st)
	}
	for _, p := range schema.Projects {
		pr, err := ConvertProject(p, loc)
		if err != nil {
			return nil, err
		}
		out.Projects = append(out.Projects, pr)
	}
	for _, a := range schema.Actions {
		ac, err := ConvertAction(a, loc)
		if err != nil {
			return nil, err
		}
		out.Actions = append(out.Actions, ac)
	}
	for _, c := range schema.ChecklistItems {
		created, _ := ParseTimestamp(c.CreatedAt)
		out.ChecklistItems = append(out.ChecklistItems, domain.ChecklistItem{
			ID:         c.ID,
			ActionID:   c.ActionID,
			Title:      c.Title,
			Done:       c.IsCompleted,
			OrderIndex: c.OrderIndex,
			CreatedAt:  created,
		})
	}
	if schema.Profile != nil {
		out.Profile = ConvertProfile(*schema.Profile)
	}
	return out, nil
}

// ConvertStrategy converts a single record. Callers outside Convert must
// validate first.
func ConvertStrategy(s StrategyRecord, loc *time.Location) (domain.Strategy, error) {
	status, err := domain.ParseStrategyStatus(s.Status)
	if err != nil {
		return domain.Strategy{}, fmt.Errorf("strategy %s: %w", s.ID, err)
	}
	start, err := ParseDate(s.StartDate, loc)
	if err != nil {
		return domain.Strategy{}, fmt.Errorf("strategy %s startDate: %w", s.ID, err)
	}
	target, err := ParseDate(s.TargetDate, loc)
	if err != nil {
		return domain.Strategy{}, fmt.Errorf("strategy %s targetDate: %w", s.ID, err)
	}
	created, _ := ParseTimestamp(s.CreatedAt)
	return domain.Strategy{
		ID:             s.ID,
		Title:          s.Title,
		ColorCode:      s.ColorCode,
		Status:         status,
		StartDate:      start,
		TargetDate:     target,
		CompletionDate: parseOptionalDate(s.CompletionDate, loc),
		Progress:       domain.ClampPercent(domain.IntFromPtrWithDefault(0, s.Progress)),
		CreatedAt:      created,
	}, nil
}

func ConvertProject(p ProjectRecord, loc *time.Location) (domain.Project, error) {
	status := domain.ProjectNotStarted
	if p.Status != "" {
		st, err := domain.ParseProjectStatus(p.Status)
		if err != nil {
			return domain.Project{}, fmt.Errorf("project %s: %w", p.ID, err)
		}
		status = st
	}
	created, _ := ParseTimestamp(p.CreatedAt)
	return domain.Project{
		ID:         p.ID,
		StrategyID: p.StrategyID,
		Title:      p.Title,
		Status:     status,
		StartDate:  parseOptionalDate(p.StartDate, loc),
		DueDate:    parseOptionalDate(p.DueDate, loc),
		Progress:   domain.ClampPercent(domain.IntFromPtrWithDefault(0, p.Progress)),
		CreatedAt:  created,
	}, nil
}

func ConvertAction(a ActionRecord, loc *time.Location) (domain.Action, error) {
	status := domain.ActionNotStarted
	if a.Status != "" {
		st, err := domain.ParseActionStatus(a.Status)
		if err != nil {
			return domain.Action{}, fmt.Errorf("action %s: %w", a.ID, err)
		}
		status = st
	}
	ref := domain.Unlinked()
	if a.ProjectID != nil {
		ref = domain.Linked(*a.ProjectID)
	}
	created, _ := ParseTimestamp(a.CreatedAt)
	return domain.Action{
		ID:         a.ID,
		StrategyID: a.StrategyID,
		Project:    ref,
		Title:      a.Title,
		Status:     status,
		DueDate:    parseOptionalDate(a.DueDate, loc),
		IsArchived: a.IsArchived.Bool(),
		CreatedAt:  created,
	}, nil
}

func ConvertProfile(p ProfileRecord) *domain.UserProfile {
	return &domain.UserProfile{
		ID:          domain.CoalesceStr(p.ID, domain.DefaultProfileID),
		DisplayName: p.Name,
		Email:       p.Email,
		Timezone:    p.Timezone,
		Role:        domain.NormalizeRole(p.Role),
	}
}
