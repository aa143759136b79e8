package planner

import (
	"testing"
	"time"

	"github.com/studybuddy/backend/domain"
)

var suggestNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func TestSuggestBaselineAlwaysPresent(t *testing.T) {
	suggestions := Suggest(nil, nil, suggestNow)

	if len(suggestions) != 3 {
		t.Fatalf("got %d suggestions, want 3 baseline", len(suggestions))
	}
	wantIDs := []string{"focus-block", "active-recall", "weekly-review"}
	for i, id := range wantIDs {
		if suggestions[i].ID != id {
			t.Errorf("suggestion %d = %q, want %q", i, suggestions[i].ID, id)
		}
	}
	// No subjects in the collection: placeholders fill in.
	if suggestions[0].Subject != "Priority Subject" {
		t.Errorf("focus subject = %q", suggestions[0].Subject)
	}
	if suggestions[1].Subject != "Recent Topic" {
		t.Errorf("recall subject = %q", suggestions[1].Subject)
	}
	if suggestions[2].Subject != "All Subjects" {
		t.Errorf("review subject = %q", suggestions[2].Subject)
	}
}

func TestSuggestSubjectsFromCollection(t *testing.T) {
	tasks := []domain.Task{
		{Subject: "Math"},
		{Subject: "Physics"},
		{Subject: "Math"}, // duplicate must not displace the last distinct
		{Subject: "Chemistry"},
	}

	suggestions := Suggest(tasks, nil, suggestNow)

	if suggestions[0].Subject != "Math" {
		t.Errorf("focus subject = %q, want first distinct", suggestions[0].Subject)
	}
	if suggestions[1].Subject != "Chemistry" {
		t.Errorf("recall subject = %q, want last distinct", suggestions[1].Subject)
	}
}

func TestSuggestExamPrepWithinWindow(t *testing.T) {
	exams := []domain.Exam{
		{ID: "e1", Title: "Calculus Final", Subject: "Math", Date: suggestNow.AddDate(0, 0, 3)},
		{ID: "e2", Title: "Physics Midterm", Subject: "Physics", Date: suggestNow.AddDate(0, 0, 20)},
	}

	suggestions := Suggest(nil, exams, suggestNow)

	if len(suggestions) != 4 {
		t.Fatalf("got %d suggestions, want 3 baseline + 1 exam prep", len(suggestions))
	}
	prep := suggestions[3]
	if prep.ID != "exam-e1" || prep.Type != domain.SuggestionExamPrep {
		t.Fatalf("exam suggestion = %+v", prep)
	}
	if prep.Reason != "3 days until exam - focus on weak areas" {
		t.Errorf("reason = %q", prep.Reason)
	}
	if prep.ExamDate == nil || !prep.ExamDate.Equal(exams[0].Date) {
		t.Errorf("exam date = %v", prep.ExamDate)
	}
}

func TestSuggestExamWindowUsesWholeDays(t *testing.T) {
	// 7 days minus two hours away by wall clock, but exactly 7 whole
	// calendar days apart: still inside the window.
	examDate := time.Date(2026, 9, 8, 10, 0, 0, 0, time.UTC)
	exams := []domain.Exam{{ID: "e1", Title: "Final", Subject: "Math", Date: examDate}}

	suggestions := Suggest(nil, exams, suggestNow)
	if len(suggestions) != 4 {
		t.Fatalf("got %d suggestions, want exam prep included at 7 whole days", len(suggestions))
	}
}

func TestSuggestAtMostTwoExamPreps(t *testing.T) {
	exams := []domain.Exam{
		{ID: "e1", Title: "A", Date: suggestNow.AddDate(0, 0, 1)},
		{ID: "e2", Title: "B", Date: suggestNow.AddDate(0, 0, 2)},
		{ID: "e3", Title: "C", Date: suggestNow.AddDate(0, 0, 3)},
	}

	suggestions := Suggest(nil, exams, suggestNow)

	preps := 0
	for _, s := range suggestions {
		if s.Type == domain.SuggestionExamPrep {
			preps++
		}
	}
	if preps != 2 {
		t.Fatalf("got %d exam preps, want 2", preps)
	}
}

func TestSuggestStrategicBreakRequiresMoreThanThreeHighPriority(t *testing.T) {
	high := func(n int) []domain.Task {
		tasks := make([]domain.Task, n)
		for i := range tasks {
			tasks[i] = domain.Task{Priority: domain.PriorityHigh}
		}
		return tasks
	}

	if s := Suggest(high(3), nil, suggestNow); len(s) != 3 {
		t.Fatalf("3 high-priority tasks: got %d suggestions, want no break", len(s))
	}

	suggestions := Suggest(high(4), nil, suggestNow)
	last := suggestions[len(suggestions)-1]
	if last.ID != "strategic-break" || last.Priority != domain.PriorityLow {
		t.Fatalf("last suggestion = %+v, want strategic break", last)
	}
}
