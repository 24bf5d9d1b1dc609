// Package rollup groups child records under their parents and derives
// completion percentages from them.
package rollup

import (
	"fmt"

	"github.com/alexanderramin/strata/internal/domain"
)

// Completion is a done/total pair with its rounded percentage. Label and
// Percent are always derived from the same two counts.
type Completion struct {
	Done    int
	Total   int
	Percent int
}

// NewCompletion builds a Completion from raw counts.
func NewCompletion(done, total int) Completion {
	return Completion{Done: done, Total: total, Percent: Percent(done, total)}
}

// Label renders the "x/y complete" caption shown next to a progress ring.
func (c Completion) Label() string {
	return fmt.Sprintf("%d/%d complete", c.Done, c.Total)
}

// Percent returns 100*done/total rounded half up. A zero total yields 0.
func Percent(done, total int) int {
	if total <= 0 || done <= 0 {
		return 0
	}
	if done >= total {
		return 100
	}
	// floor((100*done)/total + 1/2) without floating point.
	return (200*done + total) / (2 * total)
}

// ActionCompletion counts achieved actions.
func ActionCompletion(actions []domain.Action) Completion {
	done := 0
	for i := range actions {
		if actions[i].IsAchieved() {
			done++
		}
	}
	return NewCompletion(done, len(actions))
}

// ProjectCompletion counts completed projects.
func ProjectCompletion(projects []domain.Project) Completion {
	done := 0
	for i := range projects {
		if projects[i].IsCompleted() {
			done++
		}
	}
	return NewCompletion(done, len(projects))
}
