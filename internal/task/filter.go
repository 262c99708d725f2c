package task

import (
	"sort"

	"github.com/taskbot-dev/taskbot/internal/clierr"
	"github.com/taskbot-dev/taskbot/internal/date"
)

// Filter selects a subset of the task list for display.
type Filter string

// Filter tags. FilterAll applies no predicate.
const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
	FilterToday     Filter = "today"
)

// Filters returns the filter tags in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterToday, FilterActive, FilterCompleted}
}

// ParseFilter validates a filter tag string.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case FilterAll, FilterActive, FilterCompleted, FilterToday:
		return Filter(s), nil
	}
	return "", clierr.Newf(clierr.InvalidFilter, "invalid filter %q; valid: all, active, completed, today", s).
		WithDetails(map[string]any{"filter": s})
}

// Matches reports whether the task passes the filter, with "today"
// evaluated date-only against the given day.
func (t *Task) Matches(f Filter, today date.Date) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	case FilterToday:
		return t.DueOn(today)
	default:
		return true
	}
}

// FilterTasks returns tasks matching the filter tag.
func FilterTasks(tasks []*Task, f Filter, today date.Date) []*Task {
	if f == FilterAll || f == "" {
		return tasks
	}
	var result []*Task
	for _, t := range tasks {
		if t.Matches(f, today) {
			result = append(result, t)
		}
	}
	return result
}

// SortTasks orders tasks in place: completed tasks after incomplete ones,
// ties broken by ascending due date+time. The presentation layer relies on
// this ordering, so every mutation path must reapply it.
func SortTasks(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		return a.EventAt().Before(b.EventAt())
	})
}
