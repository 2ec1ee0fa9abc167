// Package stats derives aggregate counts and per-task due-date status
// from the task list.
package stats

import (
	"math"
	"time"

	"taskdeck/internal/task"
)

// Stats are the aggregate counts shown in the header. Percent is the
// completion percentage, rounded, and 0 for an empty list.
type Stats struct {
	Total     int
	Completed int
	Pending   int
	Overdue   int
	Percent   int
}

// DueStatus classifies a task's due date for display styling.
type DueStatus string

const (
	// StatusNormal covers completed tasks (always, whatever the date),
	// tasks without a due date, and due dates more than 2 days out.
	StatusNormal DueStatus = "normal"
	// StatusDueSoon marks incomplete tasks due within the next 2
	// calendar days, today included.
	StatusDueSoon DueStatus = "due-soon"
	// StatusOverdue marks incomplete tasks whose due day is strictly
	// before today. A task due today is not yet overdue.
	StatusOverdue DueStatus = "overdue"
)

// Compute tallies the list against the given moment.
func Compute(tasks []task.Task, now time.Time) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
		if Classify(t, now) == StatusOverdue {
			s.Overdue++
		}
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.Percent = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}

// Classify returns the due-date status of a single task.
func Classify(t task.Task, now time.Time) DueStatus {
	if t.Due == nil || t.Completed {
		return StatusNormal
	}
	days := daysUntil(t.Due.Time, now)
	switch {
	case days < 0:
		return StatusOverdue
	case days <= 2:
		return StatusDueSoon
	default:
		return StatusNormal
	}
}

// daysUntil counts whole calendar days from today to the due day, both
// truncated to midnight UTC (due dates carry no time component).
func daysUntil(due, now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	return int(day.Sub(today).Hours() / 24)
}
