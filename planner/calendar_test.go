package planner

import (
	"testing"
	"time"

	"github.com/studybuddy/backend/domain"
)

func TestMonthGridShape(t *testing.T) {
	months := []time.Time{
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),  // Feb starts on Sunday
		time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), // mid-month reference
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), // leap February
		time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	for _, reference := range months {
		cells := MonthGrid(reference, time.Time{}, reference, nil)

		if len(cells) != GridCells {
			t.Fatalf("%v: grid has %d cells, want %d", reference.Month(), len(cells), GridCells)
		}
		if len(cells)%7 != 0 {
			t.Fatalf("%v: grid length %d not a multiple of 7", reference.Month(), len(cells))
		}
		if cells[0].Date.Weekday() != time.Sunday {
			t.Errorf("%v: grid starts on %v, want Sunday", reference.Month(), cells[0].Date.Weekday())
		}

		// Every day of the reference month must appear exactly once.
		lastDay := time.Date(reference.Year(), reference.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
		seen := make(map[int]int)
		for _, cell := range cells {
			if cell.IsCurrentMonth {
				seen[cell.Date.Day()]++
			}
		}
		for day := 1; day <= lastDay; day++ {
			if seen[day] != 1 {
				t.Errorf("%v: day %d appears %d times", reference.Month(), day, seen[day])
			}
		}
	}
}

func TestMonthGridTaskAppearsInExactlyOneCell(t *testing.T) {
	reference := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	// Due date with a late time-of-day component; bucketing must use
	// calendar-day equality, not a time-range comparison.
	due := time.Date(2026, 9, 18, 23, 45, 0, 0, time.UTC)
	tasks := []domain.Task{{ID: "t1", Priority: domain.PriorityHigh, DueDate: &due}}

	cells := MonthGrid(reference, time.Time{}, reference, tasks)

	hits := 0
	for _, cell := range cells {
		for _, task := range cell.Tasks {
			if task.ID == "t1" {
				hits++
				if !cell.HasTasks || !cell.HasHighPriority {
					t.Error("cell flags not set for contained task")
				}
				if cell.Date.Day() != 18 {
					t.Errorf("task bucketed on day %d, want 18", cell.Date.Day())
				}
			}
		}
	}
	if hits != 1 {
		t.Fatalf("task appears in %d cells, want exactly 1", hits)
	}
}

func TestMonthGridIndicators(t *testing.T) {
	reference := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	tasks := []domain.Task{
		{ID: "done", Status: domain.StatusCompleted, Priority: domain.PriorityLow, DueDate: dayPtr(2026, 9, 3)},
		{ID: "urgent", Status: domain.StatusPending, Priority: domain.PriorityHigh, DueDate: dayPtr(2026, 9, 3)},
		{ID: "dateless", Status: domain.StatusPending, Priority: domain.PriorityHigh},
	}

	cells := MonthGrid(reference, time.Time{}, reference, tasks)

	var target *DayCell
	for i := range cells {
		if cells[i].IsCurrentMonth && cells[i].Date.Day() == 3 {
			target = &cells[i]
		}
		for _, task := range cells[i].Tasks {
			if task.ID == "dateless" {
				t.Fatal("task without due date appeared in a cell")
			}
		}
	}
	if target == nil {
		t.Fatal("day 3 missing from grid")
	}
	if !target.HasTasks || !target.HasCompleted || !target.HasHighPriority {
		t.Errorf("indicators = tasks:%v completed:%v high:%v, want all true",
			target.HasTasks, target.HasCompleted, target.HasHighPriority)
	}
	if len(target.Tasks) != 2 {
		t.Errorf("day 3 holds %d tasks, want 2", len(target.Tasks))
	}
}

func TestMonthGridSelectedAndToday(t *testing.T) {
	reference := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	selected := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	today := time.Date(2026, 9, 21, 8, 0, 0, 0, time.UTC)

	cells := MonthGrid(reference, selected, today, nil)

	selectedCount, todayCount := 0, 0
	for _, cell := range cells {
		if cell.IsSelected {
			selectedCount++
			if cell.Date.Day() != 10 {
				t.Errorf("selected cell on day %d", cell.Date.Day())
			}
		}
		if cell.IsToday {
			todayCount++
			if cell.Date.Day() != 21 {
				t.Errorf("today cell on day %d", cell.Date.Day())
			}
		}
	}
	if selectedCount != 1 || todayCount != 1 {
		t.Errorf("selected=%d today=%d, want 1 each", selectedCount, todayCount)
	}
}

func TestTasksOn(t *testing.T) {
	day := time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC)
	tasks := []domain.Task{
		{ID: "match", DueDate: dayPtr(2026, 9, 18)},
		{ID: "other", DueDate: dayPtr(2026, 9, 19)},
		{ID: "none"},
	}

	due := TasksOn(day, tasks)
	if len(due) != 1 || due[0].ID != "match" {
		t.Fatalf("TasksOn = %v", ids(due))
	}
}
