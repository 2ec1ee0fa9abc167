package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taskdeck/internal/task"
)

var now = time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)

func due(s string) *task.Date {
	d, err := task.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestComputeEmptyList(t *testing.T) {
	s := Compute(nil, now)
	assert.Equal(t, Stats{}, s, "empty list yields all zeros, no division fault")
}

func TestComputeCounts(t *testing.T) {
	tasks := []task.Task{
		{Title: "done", Completed: true},
		{Title: "overdue", Due: due("2026-08-27")},
		{Title: "plain"},
	}
	s := Compute(tasks, now)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 2, s.Pending)
	assert.Equal(t, 1, s.Overdue)
	assert.Equal(t, 33, s.Percent)
}

func TestPercentRounds(t *testing.T) {
	tasks := []task.Task{
		{Completed: true},
		{Completed: true},
		{},
	}
	assert.Equal(t, 67, Compute(tasks, now).Percent)
}

func TestClassifyOverdue(t *testing.T) {
	yesterday := task.Task{Due: due("2026-08-27")}
	assert.Equal(t, StatusOverdue, Classify(yesterday, now))

	completed := yesterday
	completed.Completed = true
	assert.Equal(t, StatusNormal, Classify(completed, now), "completed tasks are always normal")
}

func TestClassifyDueToday(t *testing.T) {
	today := task.Task{Due: due("2026-08-28")}
	assert.Equal(t, StatusDueSoon, Classify(today, now), "due today is not yet overdue")
}

func TestClassifyDueSoonWindow(t *testing.T) {
	inTwoDays := task.Task{Due: due("2026-08-30")}
	assert.Equal(t, StatusDueSoon, Classify(inTwoDays, now))

	inThreeDays := task.Task{Due: due("2026-08-31")}
	assert.Equal(t, StatusNormal, Classify(inThreeDays, now))
}

func TestClassifyNoDueDate(t *testing.T) {
	assert.Equal(t, StatusNormal, Classify(task.Task{Title: "whenever"}, now))
}

func TestOverdueCountMatchesClassifier(t *testing.T) {
	tasks := []task.Task{
		{Due: due("2026-08-28")},                  // today: not overdue
		{Due: due("2026-08-27")},                  // yesterday: overdue
		{Due: due("2026-08-27"), Completed: true}, // completed: never overdue
	}
	assert.Equal(t, 1, Compute(tasks, now).Overdue)
}
