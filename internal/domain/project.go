package domain

import "time"

// Project is a milestone under a strategy. Both dates are optional.
type Project struct {
	ID         string
	StrategyID string
	Title      string
	Status     ProjectStatus
	StartDate  *time.Time
	DueDate    *time.Time
	Progress   int
	CreatedAt  time.Time
}

// IsCompleted reports whether the project counts toward a completed rollup.
func (p *Project) IsCompleted() bool {
	return p.Status == ProjectCompleted
}

// Span returns the project's bar extent. A missing start collapses onto the
// due date and vice versa. ok is false when neither date is set.
func (p *Project) Span() (start, end time.Time, ok bool) {
	switch {
	case p.StartDate != nil && p.DueDate != nil:
		if p.DueDate.Before(*p.StartDate) {
			return *p.DueDate, *p.StartDate, true
		}
		return *p.StartDate, *p.DueDate, true
	case p.StartDate != nil:
		return *p.StartDate, *p.StartDate, true
	case p.DueDate != nil:
		return *p.DueDate, *p.DueDate, true
	}
	return time.Time{}, time.Time{}, false
}

// ShortID returns the first 8 characters of ID for display.
func ShortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
