package planner

import (
	"sort"

	"github.com/studybuddy/backend/domain"
)

// SortTasks orders tasks by priority rank descending, ties broken by
// ascending due date. Tasks missing a due date compare equal on the date
// leg, and the sort is stable, so equal inputs always produce the same
// order. The input slice is not modified.
func SortTasks(tasks []domain.Task) []domain.Task {
	sorted := make([]domain.Task, len(tasks))
	copy(sorted, tasks)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
			return ra > rb
		}
		if a.DueDate == nil || b.DueDate == nil {
			return false
		}
		return a.DueDate.Before(*b.DueDate)
	})

	return sorted
}
