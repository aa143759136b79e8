package planner

import (
	"time"

	"github.com/studybuddy/backend/domain"
)

// GridCells is the fixed calendar size: six Sunday-started weeks, enough to
// cover any month regardless of which weekday it opens on.
const GridCells = 6 * 7

// DayCell is a single calendar-grid entry. It has no lifecycle of its own;
// the grid is recomputed from the current task collection on every request.
type DayCell struct {
	Date            time.Time     `json:"date"`
	IsCurrentMonth  bool          `json:"is_current_month"`
	IsToday         bool          `json:"is_today"`
	IsSelected      bool          `json:"is_selected"`
	HasTasks        bool          `json:"has_tasks"`
	HasCompleted    bool          `json:"has_completed"`
	HasHighPriority bool          `json:"has_high_priority"`
	Tasks           []domain.Task `json:"tasks,omitempty"`
}

// MonthGrid buckets tasks into the six-week grid covering the month of
// reference. Cell membership uses calendar-day equality on the task's due
// date; tasks without one never appear in any cell. selected may be zero.
func MonthGrid(reference, selected, today time.Time, tasks []domain.Task) []DayCell {
	first := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, reference.Location())
	start := first.AddDate(0, 0, -int(first.Weekday()))

	cells := make([]DayCell, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		day := start.AddDate(0, 0, i)
		cell := DayCell{
			Date:           day,
			IsCurrentMonth: day.Month() == reference.Month() && day.Year() == reference.Year(),
			IsToday:        sameDay(day, today),
			IsSelected:     !selected.IsZero() && sameDay(day, selected),
		}
		for _, task := range tasks {
			if !task.DueOn(day) {
				continue
			}
			cell.HasTasks = true
			cell.Tasks = append(cell.Tasks, task)
			if task.Status == domain.StatusCompleted {
				cell.HasCompleted = true
			}
			if task.Priority == domain.PriorityHigh {
				cell.HasHighPriority = true
			}
		}
		cells = append(cells, cell)
	}
	return cells
}

// TasksOn filters tasks due on the given calendar day; it backs the
// single-day view shown when a cell is selected.
func TasksOn(day time.Time, tasks []domain.Task) []domain.Task {
	var due []domain.Task
	for _, task := range tasks {
		if task.DueOn(day) {
			due = append(due, task)
		}
	}
	return due
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
