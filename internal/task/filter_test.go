package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbot-dev/taskbot/internal/date"
)

func TestParseFilter(t *testing.T) {
	for _, s := range []string{"all", "today", "active", "completed"} {
		f, err := ParseFilter(s)
		require.NoError(t, err)
		assert.Equal(t, Filter(s), f)
	}

	_, err := ParseFilter("overdue")
	assert.Error(t, err)
}

func TestFilterTasks_TodayIsDateOnly(t *testing.T) {
	today := date.New(2024, time.May, 17)
	tasks := []*Task{
		{ID: 1, DueDate: today, DueTime: "00:00"},
		{ID: 2, DueDate: today, DueTime: "23:59", Completed: true},
		{ID: 3, DueDate: date.New(2024, time.May, 18), DueTime: "00:00"},
	}

	got := FilterTasks(tasks, FilterToday, today)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2, got[1].ID)
}

func TestFilterTasks_ActiveAndCompleted(t *testing.T) {
	today := date.New(2024, time.May, 17)
	tasks := []*Task{
		{ID: 1, DueDate: today, DueTime: "09:00"},
		{ID: 2, DueDate: today, DueTime: "09:00", Completed: true},
	}

	active := FilterTasks(tasks, FilterActive, today)
	require.Len(t, active, 1)
	assert.Equal(t, 1, active[0].ID)

	completed := FilterTasks(tasks, FilterCompleted, today)
	require.Len(t, completed, 1)
	assert.Equal(t, 2, completed[0].ID)
}

func TestFilterTasks_AllPassesThrough(t *testing.T) {
	today := date.New(2024, time.May, 17)
	tasks := []*Task{{ID: 1, DueDate: today, DueTime: "09:00"}}

	assert.Equal(t, tasks, FilterTasks(tasks, FilterAll, today))
	assert.Equal(t, tasks, FilterTasks(tasks, "", today))
}

func TestSortTasks_CompletedLast(t *testing.T) {
	d := date.New(2024, time.May, 17)
	tasks := []*Task{
		{ID: 1, DueDate: d, DueTime: "08:00", Completed: true},
		{ID: 2, DueDate: d, DueTime: "18:00"},
		{ID: 3, DueDate: d, DueTime: "09:00"},
	}

	SortTasks(tasks)

	assert.Equal(t, []int{3, 2, 1}, ids(tasks))
}

func TestSortTasks_AscendingWithinGroup(t *testing.T) {
	tasks := []*Task{
		{ID: 1, DueDate: date.New(2024, time.May, 18), DueTime: "09:00"},
		{ID: 2, DueDate: date.New(2024, time.May, 17), DueTime: "18:00"},
		{ID: 3, DueDate: date.New(2024, time.May, 17), DueTime: "08:00"},
		{ID: 4, DueDate: date.New(2024, time.May, 17), DueTime: "18:00", Completed: true},
		{ID: 5, DueDate: date.New(2024, time.May, 17), DueTime: "08:00", Completed: true},
	}

	SortTasks(tasks)

	assert.Equal(t, []int{3, 2, 1, 5, 4}, ids(tasks))
}

func TestSortTasks_StableForEqualKeys(t *testing.T) {
	d := date.New(2024, time.May, 17)
	tasks := []*Task{
		{ID: 1, DueDate: d, DueTime: "09:00"},
		{ID: 2, DueDate: d, DueTime: "09:00"},
		{ID: 3, DueDate: d, DueTime: "09:00"},
	}

	SortTasks(tasks)

	assert.Equal(t, []int{1, 2, 3}, ids(tasks))
}

func ids(tasks []*Task) []int {
	out := make([]int, len(tasks))
	for i, tk := range tasks {
		out[i] = tk.ID
	}
	return out
}
