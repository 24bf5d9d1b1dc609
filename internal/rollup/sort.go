package rollup

import (
	"sort"

	"github.com/alexanderramin/strata/internal/dates"
	"github.com/alexanderramin/strata/internal/domain"
)

// SortByDueDate orders actions by due date ascending with undated actions
// last. Equal keys keep their input order.
func SortByDueDate(actions []domain.Action) {
	sort.SliceStable(actions, func(i, j int) bool {
		a, b := actions[i].DueDate, actions[j].DueDate
		if (a == nil) != (b == nil) {
			return a != nil
		}
		if a == nil {
			return false
		}
		return dates.Before(*a, *b)
	})
}

// SortChecklist orders checklist items by OrderIndex, then CreatedAt, then
// ID, so the result does not depend on fetch order.
func SortChecklist(items []domain.ChecklistItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.OrderIndex != b.OrderIndex {
			return a.OrderIndex < b.OrderIndex
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// ChecklistCompletion counts done checklist items.
func ChecklistCompletion(items []domain.ChecklistItem) Completion {
	done := 0
	for _, it := range items {
		if it.Done {
			done++
		}
	}
	return NewCompletion(done, len(items))
}
