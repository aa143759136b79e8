package planner

import (
	"fmt"
	"time"

	"github.com/studybuddy/backend/domain"
)

// examPrepWindowDays bounds how close an exam must be before a prep card is
// generated. Measured in whole calendar days, not wall-clock hours.
const examPrepWindowDays = 7

// Suggest derives recommendation cards from the current task collection and
// upcoming exams. Three baseline cards are always present; up to two
// exam-prep cards are added for exams within the prep window; a strategic
// break is appended when more than three high-priority tasks are pending.
// Subjects on the baseline cards come from the distinct subjects seen in
// the tasks (first and last), so output follows collection order and
// suggestion identity is advisory only.
func Suggest(tasks []domain.Task, exams []domain.Exam, now time.Time) []domain.Suggestion {
	subjects := distinctSubjects(tasks)

	first := "Priority Subject"
	last := "Recent Topic"
	if len(subjects) > 0 {
		first = subjects[0]
		last = subjects[len(subjects)-1]
	}

	suggestions := []domain.Suggestion{
		{
			ID:               "focus-block",
			Title:            "Focused Work Block",
			Type:             domain.SuggestionNew,
			Priority:         domain.PriorityHigh,
			EstimatedMinutes: 50,
			Reason:           "Optimal time for deep work based on your habits",
			Subject:          first,
		},
		{
			ID:               "active-recall",
			Title:            "Active Recall Session",
			Type:             domain.SuggestionPractice,
			Priority:         domain.PriorityMedium,
			EstimatedMinutes: 30,
			Reason:           "Boost retention for recently studied topics",
			Subject:          last,
		},
		{
			ID:               "weekly-review",
			Title:            "Weekly Knowledge Review",
			Type:             domain.SuggestionReview,
			Priority:         domain.PriorityMedium,
			EstimatedMinutes: 45,
			Reason:           "Consolidate learning from past 7 days",
			Subject:          "All Subjects",
		},
	}

	for i, exam := range exams {
		if i >= 2 {
			break
		}
		days := daysBetween(now, exam.Date)
		if days > examPrepWindowDays {
			continue
		}
		examDate := exam.Date
		suggestions = append(suggestions, domain.Suggestion{
			ID:               "exam-" + exam.ID,
			Title:            "Exam Prep: " + exam.Title,
			Type:             domain.SuggestionExamPrep,
			Priority:         domain.PriorityHigh,
			EstimatedMinutes: 90,
			Reason:           fmt.Sprintf("%d days until exam - focus on weak areas", days),
			Subject:          exam.Subject,
			ExamDate:         &examDate,
		})
	}

	if countHighPriority(tasks) > 3 {
		suggestions = append(suggestions, domain.Suggestion{
			ID:               "strategic-break",
			Title:            "Strategic Break",
			Type:             domain.SuggestionNew,
			Priority:         domain.PriorityLow,
			EstimatedMinutes: 15,
			Reason:           "Prevent burnout with a mindful break",
			Subject:          "Wellbeing",
		})
	}

	return suggestions
}

func distinctSubjects(tasks []domain.Task) []string {
	seen := make(map[string]bool)
	var subjects []string
	for _, task := range tasks {
		if task.Subject == "" || seen[task.Subject] {
			continue
		}
		seen[task.Subject] = true
		subjects = append(subjects, task.Subject)
	}
	return subjects
}

func countHighPriority(tasks []domain.Task) int {
	count := 0
	for _, task := range tasks {
		if task.Priority == domain.PriorityHigh {
			count++
		}
	}
	return count
}

// daysBetween counts whole calendar days from a to b, ignoring the
// time-of-day component on both sides.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
