package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbot-dev/taskbot/internal/date"
	"github.com/taskbot-dev/taskbot/internal/task"
)

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func testToday() date.Date {
	return date.New(2024, 5, 17)
}

func TestForm_EmptyTitleBlocksSubmit(t *testing.T) {
	f := newForm(nil, testToday())

	done, _ := f.update(enterKey())
	assert.False(t, done, "submit must be blocked client-side")
	assert.Equal(t, "Title cannot be empty", f.formErr)
	assert.False(t, f.canceled)

	// The error shows up in the rendered form.
	assert.Contains(t, f.view(lightThemeForTest(), 80), "Title cannot be empty")
}

func TestForm_ValidInputSubmits(t *testing.T) {
	f := newForm(nil, testToday())
	f.inputs[fieldTitle].SetValue("Buy milk")

	done, _ := f.update(enterKey())
	require.True(t, done)
	assert.False(t, f.canceled)
	assert.Empty(t, f.formErr)

	d := f.draft()
	assert.Equal(t, "Buy milk", d.Title)
	assert.Equal(t, testToday(), d.DueDate)
	assert.Equal(t, task.DefaultDueTime, d.DueTime)
}

func TestForm_BadTimeBlocksSubmit(t *testing.T) {
	f := newForm(nil, testToday())
	f.inputs[fieldTitle].SetValue("Buy milk")
	f.inputs[fieldTime].SetValue("27:30")

	done, _ := f.update(enterKey())
	assert.False(t, done)
	assert.Equal(t, "Time must be HH:MM", f.formErr)
}

func TestForm_EscCancels(t *testing.T) {
	f := newForm(nil, testToday())

	done, _ := f.update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, done)
	assert.True(t, f.canceled)
}

func TestEmptyLabelPerFilter(t *testing.T) {
	labels := map[task.Filter]string{
		task.FilterAll:       "No tasks yet. Press 'a' to add one.",
		task.FilterToday:     "Nothing scheduled for today.",
		task.FilterActive:    "All caught up.",
		task.FilterCompleted: "Nothing completed yet.",
	}
	for f, want := range labels {
		assert.Equal(t, want, emptyLabel(f))
	}
}
