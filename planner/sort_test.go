package planner

import (
	"testing"
	"time"

	"github.com/studybuddy/backend/domain"
)

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestSortTasksPriorityBeforeDate(t *testing.T) {
	tasks := []domain.Task{
		{ID: "low-early", Priority: domain.PriorityLow, DueDate: dayPtr(2026, 9, 1)},
		{ID: "high-late", Priority: domain.PriorityHigh, DueDate: dayPtr(2026, 9, 30)},
		{ID: "medium", Priority: domain.PriorityMedium, DueDate: dayPtr(2026, 9, 10)},
		{ID: "high-early", Priority: domain.PriorityHigh, DueDate: dayPtr(2026, 9, 5)},
	}

	sorted := SortTasks(tasks)

	want := []string{"high-early", "high-late", "medium", "low-early"}
	for i, id := range want {
		if sorted[i].ID != id {
			t.Fatalf("position %d = %q, want %q (order %v)", i, sorted[i].ID, id, ids(sorted))
		}
	}
}

func TestSortTasksAllHighBeforeMediumBeforeLow(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", Priority: domain.PriorityLow},
		{ID: "b", Priority: domain.PriorityHigh},
		{ID: "c", Priority: domain.PriorityMedium},
		{ID: "d", Priority: domain.PriorityHigh, DueDate: dayPtr(2026, 1, 1)},
		{ID: "e", Priority: domain.PriorityLow, DueDate: dayPtr(2025, 1, 1)},
		{ID: "f", Priority: domain.PriorityMedium, DueDate: dayPtr(2027, 1, 1)},
	}

	sorted := SortTasks(tasks)

	lastRank := 4
	for _, task := range sorted {
		rank := task.Priority.Rank()
		if rank > lastRank {
			t.Fatalf("rank increased mid-list: %v", ids(sorted))
		}
		lastRank = rank
	}
}

func TestSortTasksStableAndIdempotent(t *testing.T) {
	tasks := []domain.Task{
		{ID: "first-no-date", Priority: domain.PriorityMedium},
		{ID: "second-no-date", Priority: domain.PriorityMedium},
		{ID: "third-no-date", Priority: domain.PriorityMedium},
	}

	once := SortTasks(tasks)
	twice := SortTasks(once)

	// Tasks without due dates must not be reordered relative to each other.
	want := []string{"first-no-date", "second-no-date", "third-no-date"}
	for i, id := range want {
		if once[i].ID != id {
			t.Fatalf("stable sort reordered equal tasks: %v", ids(once))
		}
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("sort not idempotent: %v vs %v", ids(once), ids(twice))
		}
	}
}

func TestSortTasksNonDecreasingDatesWithinPriority(t *testing.T) {
	tasks := []domain.Task{
		{ID: "m3", Priority: domain.PriorityMedium, DueDate: dayPtr(2026, 9, 20)},
		{ID: "m1", Priority: domain.PriorityMedium, DueDate: dayPtr(2026, 9, 2)},
		{ID: "m2", Priority: domain.PriorityMedium, DueDate: dayPtr(2026, 9, 11)},
	}

	sorted := SortTasks(tasks)

	var prev *time.Time
	for _, task := range sorted {
		if task.DueDate == nil {
			continue
		}
		if prev != nil && task.DueDate.Before(*prev) {
			t.Fatalf("due dates decreased within priority: %v", ids(sorted))
		}
		prev = task.DueDate
	}
}

func TestSortTasksDoesNotMutateInput(t *testing.T) {
	tasks := []domain.Task{
		{ID: "z", Priority: domain.PriorityLow},
		{ID: "a", Priority: domain.PriorityHigh},
	}
	_ = SortTasks(tasks)
	if tasks[0].ID != "z" {
		t.Fatal("SortTasks mutated its input")
	}
}

func ids(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.ID
	}
	return out
}
