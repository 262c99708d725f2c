package task

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbot-dev/taskbot/internal/clierr"
	"github.com/taskbot-dev/taskbot/internal/date"
)

func TestParseCategory(t *testing.T) {
	for _, s := range []string{"reminder", "task", "event"} {
		c, err := ParseCategory(s)
		require.NoError(t, err)
		assert.Equal(t, Category(s), c)
	}
}

func TestParseCategory_Unknown(t *testing.T) {
	_, err := ParseCategory("meeting")
	require.Error(t, err)

	var cliErr *clierr.Error
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, clierr.InvalidCategory, cliErr.Code)
}

func TestValidateDueTime(t *testing.T) {
	assert.NoError(t, ValidateDueTime("09:00"))
	assert.NoError(t, ValidateDueTime("23:59"))
	assert.NoError(t, ValidateDueTime("00:00"))

	assert.Error(t, ValidateDueTime("9:00"))
	assert.Error(t, ValidateDueTime("24:00"))
	assert.Error(t, ValidateDueTime("25:30"))
	assert.Error(t, ValidateDueTime("29:59"))
	assert.Error(t, ValidateDueTime("12:60"))
	assert.Error(t, ValidateDueTime("12:00:00"))
	assert.Error(t, ValidateDueTime(""))
}

func TestEventAt(t *testing.T) {
	tk := &Task{
		DueDate: date.New(2024, time.May, 17),
		DueTime: "14:30",
	}
	assert.Equal(t, time.Date(2024, 5, 17, 14, 30, 0, 0, time.UTC), tk.EventAt())
}

func TestCountTasks(t *testing.T) {
	today := date.New(2024, time.May, 17)
	tasks := []*Task{
		{ID: 1, DueDate: today, DueTime: "09:00"},
		{ID: 2, DueDate: today, DueTime: "18:00", Completed: true},
		{ID: 3, DueDate: date.New(2024, time.May, 20), DueTime: "09:00"},
	}

	c := CountTasks(tasks, today)
	assert.Equal(t, Counts{All: 3, Today: 2, Active: 2, Completed: 1}, c)
}

func TestCountTasks_Empty(t *testing.T) {
	c := CountTasks(nil, date.New(2024, time.May, 17))
	assert.Equal(t, Counts{}, c)
}
