package domain

import "time"

// ProjectRef is an action's parent reference. It is either linked to a
// project id or explicitly unlinked; there is no empty-string form.
type ProjectRef struct {
	id string
}

// Linked returns a reference to the given project. An empty id yields
// an unlinked reference.
func Linked(projectID string) ProjectRef {
	return ProjectRef{id: projectID}
}

// Unlinked returns a reference that attaches the action directly to its
// strategy.
func Unlinked() ProjectRef {
	return ProjectRef{}
}

// ID returns the linked project id and true, or "" and false when unlinked.
func (r ProjectRef) ID() (string, bool) {
	return r.id, r.id != ""
}

func (r ProjectRef) IsLinked() bool {
	return r.id != ""
}

func (r ProjectRef) String() string {
	if r.id == "" {
		return "unlinked"
	}
	return r.id
}

// Action is a unit of work. It belongs to a strategy and optionally to one
// of that strategy's projects.
type Action struct {
	ID         string
	StrategyID string
	Project    ProjectRef
	Title      string
	Status     ActionStatus
	DueDate    *time.Time
	IsArchived bool
	CreatedAt  time.Time
}

// IsAchieved reports whether the action counts toward a completed rollup.
func (a *Action) IsAchieved() bool {
	return a.Status == ActionAchieved
}

// IsOpen reports whether the action still needs attention.
func (a *Action) IsOpen() bool {
	return !a.IsArchived && a.Status != ActionAchieved
}
