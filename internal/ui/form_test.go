package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/query"
	"taskdeck/internal/task"
)

var now = time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

func TestFormInputRejectsPastDueDate(t *testing.T) {
	f := &formState{title: "x", due: "2026-08-27"}
	_, err := f.input(now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "past")
}

func TestFormInputAcceptsTodayAndFuture(t *testing.T) {
	for _, due := range []string{"2026-08-28", "2027-01-01"} {
		f := &formState{title: "x", due: due}
		in, err := f.input(now)
		require.NoError(t, err, "due %s", due)
		require.NotNil(t, in.Due)
		assert.Equal(t, due, in.Due.String())
	}
}

func TestFormInputKeepsStoredPastDueDateOnEdit(t *testing.T) {
	// A past date already on the task stays valid when left untouched.
	f := &formState{taskID: "id", title: "x", due: "2026-01-01", originalDue: "2026-01-01"}
	in, err := f.input(now)
	require.NoError(t, err)
	require.NotNil(t, in.Due)
	assert.Equal(t, "2026-01-01", in.Due.String())
}

func TestFormInputValidatesPriority(t *testing.T) {
	f := &formState{title: "x", priority: "urgent"}
	_, err := f.input(now)
	require.Error(t, err)

	f.priority = "  HIGH "
	in, err := f.input(now)
	require.NoError(t, err)
	assert.Equal(t, task.PriorityHigh, in.Priority)

	f.priority = ""
	in, err = f.input(now)
	require.NoError(t, err)
	assert.Equal(t, task.Priority(""), in.Priority, "store defaults blank priority to medium")
}

func TestFormInputRejectsMalformedDate(t *testing.T) {
	f := &formState{title: "x", due: "tomorrow"}
	_, err := f.input(now)
	require.Error(t, err)
}

func TestNextStatusCycles(t *testing.T) {
	s := query.StatusAll
	s = nextStatus(s)
	assert.Equal(t, query.StatusActive, s)
	s = nextStatus(s)
	assert.Equal(t, query.StatusCompleted, s)
	s = nextStatus(s)
	assert.Equal(t, query.StatusAll, s)
}

func TestNextSortCycles(t *testing.T) {
	order := []query.Sort{query.SortDueDate, query.SortPriority, query.SortAlphabetical, query.SortDateAdded}
	s := query.SortDateAdded
	for _, want := range order {
		s = nextSort(s)
		assert.Equal(t, want, s)
	}
}

func TestNextCategoryCyclesThroughPresentCategories(t *testing.T) {
	tasks := []task.Task{
		{Category: "work"},
		{Category: "home"},
	}
	c := query.CategoryAll
	c = nextCategory(c, tasks)
	assert.Equal(t, "home", c)
	c = nextCategory(c, tasks)
	assert.Equal(t, "work", c)
	c = nextCategory(c, tasks)
	assert.Equal(t, query.CategoryAll, c)

	assert.Equal(t, query.CategoryAll, nextCategory("gone", tasks), "stale category resets to all")
}
