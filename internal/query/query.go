// Package query derives the displayed list from the raw task list. It
// is pure: same inputs, same output, inputs never mutated.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"taskdeck/internal/task"
)

// Status narrows the list by completion state.
type Status string

const (
	StatusAll       Status = "all"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Sort selects one of the four orderings.
type Sort string

const (
	SortDateAdded    Sort = "dateAdded"
	SortDueDate      Sort = "dueDate"
	SortPriority     Sort = "priority"
	SortAlphabetical Sort = "alphabetical"
)

// CategoryAll passes every category.
const CategoryAll = "all"

// Params is the complete filter state: each stage narrows the previous,
// then the sort is applied.
type Params struct {
	Status   Status
	Category string
	Search   string
	Sort     Sort
}

// FilterAndSort filters by status, then category, then search, then
// sorts. Sorting is stable, so priority ties keep their prior relative
// order. The input slice is never modified.
func FilterAndSort(tasks []task.Task, p Params) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	needle := strings.ToLower(strings.TrimSpace(p.Search))
	for _, t := range tasks {
		if !matchStatus(t, p.Status) {
			continue
		}
		if p.Category != "" && p.Category != CategoryAll && t.Category != p.Category {
			continue
		}
		if needle != "" && !matchSearch(t, needle) {
			continue
		}
		out = append(out, t)
	}
	sortTasks(out, p.Sort)
	return out
}

func matchStatus(t task.Task, s Status) bool {
	switch s {
	case StatusActive:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	default:
		return true
	}
}

func matchSearch(t task.Task, needle string) bool {
	return strings.Contains(strings.ToLower(t.Title), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle)
}

func sortTasks(tasks []task.Task, key Sort) {
	switch key {
	case SortDueDate:
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i], tasks[j]
			switch {
			case a.Due == nil && b.Due == nil:
				return a.CreatedAt.After(b.CreatedAt)
			case a.Due == nil:
				return false
			case b.Due == nil:
				return true
			default:
				return a.Due.Before(b.Due.Time)
			}
		})
	case SortPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Priority.Rank() > tasks[j].Priority.Rank()
		})
	case SortAlphabetical:
		c := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(tasks, func(i, j int) bool {
			return c.CompareString(tasks[i].Title, tasks[j].Title) < 0
		})
	default: // dateAdded, newest first
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	}
}

// Categories returns the distinct categories present, sorted, for the
// category filter to cycle through.
func Categories(tasks []task.Task) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range tasks {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	sort.Strings(out)
	return out
}
