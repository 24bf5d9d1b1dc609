package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/strata/internal/dates"
	"github.com/alexanderramin/strata/internal/domain"
)

// ValidationError aggregates every problem found in a snapshot.
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("snapshot validation failed (%d errors):\n  - %s", len(e.Errs), strings.Join(msgs, "\n  - "))
}

// ValidateSnapshotSchema checks a snapshot before conversion and returns all
// errors found. Malformed dates, unknown statuses, missing required fields,
// duplicate ids and dangling references are all reported.
func ValidateSnapshotSchema(schema *SnapshotSchema, loc *time.Location) []error {
	var errs []error

	strategyIDs := make(map[string]bool)
	for i, s := range schema.Strategies {
		errs = append(errs, validateStrategy(fmt.Sprintf("strategies[%d]", i), &s, strategyIDs, loc)...)
	}

	projectIDs := make(map[string]bool)
	for i, p := range schema.Projects {
		errs = append(errs, validateProject(fmt.Sprintf("projects[%d]", i), &p, strategyIDs, projectIDs, loc)...)
	}

	actionIDs := make(map[string]bool)
	for i, a := range schema.Actions {
		errs = append(errs, validateAction(fmt.Sprintf("actions[%d]", i), &a, strategyIDs, projectIDs, actionIDs, loc)...)
	}

	checklistIDs := make(map[string]bool)
	for i, c := range schema.ChecklistItems {
		prefix := fmt.Sprintf("checklistItems[%d]", i)
		errs = append(errs, validateID(prefix, c.ID, checklistIDs)...)
		if c.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if !actionIDs[c.ActionID] {
			errs = append(errs, fmt.Errorf("%s.actionId %q references unknown action", prefix, c.ActionID))
		}
		errs = append(errs, validateTimestamp(prefix+".createdAt", c.CreatedAt)...)
	}

	if p := schema.Profile; p != nil && p.Timezone != "" {
		if _, err := time.LoadLocation(p.Timezone); err != nil {
			errs = append(errs, fmt.Errorf("profile.timezone: unknown zone %q", p.Timezone))
		}
	}

	return errs
}

func validateStrategy(prefix string, s *StrategyRecord, ids map[string]bool, loc *time.Location) []error {
	errs := validateID(prefix, s.ID, ids)
	if s.Title == "" {
		errs = append(errs, fmt.Errorf("%s.title is required", prefix))
	}
	if _, err := domain.ParseStrategyStatus(s.Status); err != nil {
		errs = append(errs, fmt.Errorf("%s.status: %w", prefix, err))
	}

	start, startErr := requiredDate(prefix+".startDate", s.StartDate, loc)
	target, targetErr := requiredDate(prefix+".targetDate", s.TargetDate, loc)
	if startErr != nil {
		errs = append(errs, startErr)
	}
	if targetErr != nil {
		errs = append(errs, targetErr)
	}
	if startErr == nil && targetErr == nil && dates.Before(target, start) {
		errs = append(errs, fmt.Errorf("%s.targetDate %q must not be before startDate %q", prefix, s.TargetDate, s.StartDate))
	}
	errs = append(errs, optionalDate(prefix+".completionDate", s.CompletionDate, loc)...)
	errs = append(errs, validateProgress(prefix, s.Progress)...)
	errs = append(errs, validateTimestamp(prefix+".createdAt", s.CreatedAt)...)
	return errs
}

func validateProject(prefix string, p *ProjectRecord, strategyIDs, ids map[string]bool, loc *time.Location) []error {
	errs := validateID(prefix, p.ID, ids)
	if p.Title == "" {
		errs = append(errs, fmt.Errorf("%s.title is required", prefix))
	}
	if !strategyIDs[p.StrategyID] {
		errs = append(errs, fmt.Errorf("%s.strategyId %q references unknown strategy", prefix, p.StrategyID))
	}
	if p.Status != "" {
		if _, err := domain.ParseProjectStatus(p.Status); err != nil {
			errs = append(errs, fmt.Errorf("%s.status: %w", prefix, err))
		}
	}
	errs = append(errs, optionalDate(prefix+".startDate", p.StartDate, loc)...)
	errs = append(errs, optionalDate(prefix+".dueDate", p.DueDate, loc)...)
	errs = append(errs, validateProgress(prefix, p.Progress)...)
	errs = append(errs, validateTimestamp(prefix+".createdAt", p.CreatedAt)...)
	return errs
}

func validateAction(prefix string, a *ActionRecord, strategyIDs, projectIDs, ids map[string]bool, loc *time.Location) []error {
	errs := validateID(prefix, a.ID, ids)
	if a.Title == "" {
		errs = append(errs, fmt.Errorf("%s.title is required", prefix))
	}
	if !strategyIDs[a.StrategyID] {
		errs = append(errs, fmt.Errorf("%s.strategyId %q references unknown strategy", prefix, a.StrategyID))
	}
	if a.ProjectID != nil && *a.ProjectID != "" && !projectIDs[*a.ProjectID] {
		errs = append(errs, fmt.Errorf("%s.projectId %q references unknown project", prefix, *a.ProjectID))
	}
	if a.Status != "" {
		if _, err := domain.ParseActionStatus(a.Status); err != nil {
			errs = append(errs, fmt.Errorf("%s.status: %w", prefix, err))
		}
	}
	if !a.IsArchived.Valid() {
		errs = append(errs, fmt.Errorf("%s.isArchived: expected \"true\" or \"false\", got %q", prefix, a.IsArchived.Raw))
	}
	errs = append(errs, optionalDate(prefix+".dueDate", a.DueDate, loc)...)
	errs = append(errs, validateTimestamp(prefix+".createdAt", a.CreatedAt)...)
	return errs
}

func validateID(prefix, id string, seen map[string]bool) []error {
	if id == "" {
		return []error{fmt.Errorf("%s.id is required", prefix)}
	}
	if seen[id] {
		return []error{fmt.Errorf("%s.id %q is duplicated", prefix, id)}
	}
	seen[id] = true
	return nil
}

func requiredDate(field, s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := ParseDate(s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, err)
	}
	return t, nil
}

func optionalDate(field string, s *string, loc *time.Location) []error {
	if s == nil || *s == "" {
		return nil
	}
	if _, err := ParseDate(*s, loc); err != nil {
		return []error{fmt.Errorf("%s: %w", field, err)}
	}
	return nil
}

func validateTimestamp(field, s string) []error {
	if _, err := ParseTimestamp(s); err != nil {
		return []error{fmt.Errorf("%s: %w", field, err)}
	}
	return nil
}

func validateProgress(prefix string, p *int) []error {
	if p != nil && (*p < 0 || *p > 100) {
		return []error{fmt.Errorf("%s.progress %d must be between 0 and 100", prefix, *p)}
	}
	return nil
}
