package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbot-dev/taskbot/internal/backend"
	"github.com/taskbot-dev/taskbot/internal/date"
	"github.com/taskbot-dev/taskbot/internal/task"
)

var testNow = time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestFromWire_PrefersEventAt(t *testing.T) {
	w := WireTask{
		ID:       7,
		Text:     "Doctor appointment",
		Category: "event",
		EventAt:  strPtr("2024-06-01T10:30:00"),
		RemindAt: strPtr("2024-01-01T00:00:00"),
	}

	tk, err := fromWire(w, testNow)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", tk.DueDate.String())
	assert.Equal(t, "10:30", tk.DueTime)
}

func TestFromWire_FallsBackToRemindAt(t *testing.T) {
	w := WireTask{
		ID:       7,
		Text:     "Call mom",
		Category: "reminder",
		RemindAt: strPtr("2024-06-02T19:00:00"),
	}

	tk, err := fromWire(w, testNow)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-02", tk.DueDate.String())
	assert.Equal(t, "19:00", tk.DueTime)
}

func TestFromWire_NoTimestampDefaults(t *testing.T) {
	w := WireTask{ID: 7, Text: "Loose end", Category: "task"}

	tk, err := fromWire(w, testNow)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-17", tk.DueDate.String())
	assert.Equal(t, task.DefaultDueTime, tk.DueTime)
}

func TestFromWire_UnknownCategoryIsError(t *testing.T) {
	w := WireTask{ID: 7, Text: "x", Category: "meeting"}

	_, err := fromWire(w, testNow)
	assert.Error(t, err)
}

func TestFromWire_PreservesReminderDistinction(t *testing.T) {
	base := WireTask{ID: 1, Text: "x", Category: "task", EventAt: strPtr("2024-06-01T09:00:00")}

	none, err := fromWire(base, testNow)
	require.NoError(t, err)
	assert.Nil(t, none.ReminderMinutes)

	atTime := base
	atTime.ReminderOffsetMinutes = intPtr(0)
	zero, err := fromWire(atTime, testNow)
	require.NoError(t, err)
	require.NotNil(t, zero.ReminderMinutes)
	assert.Equal(t, 0, *zero.ReminderMinutes)
}

func TestSplitWireTimestamp_MangledClock(t *testing.T) {
	d, hhmm := splitWireTimestamp("2024-06-01T99:99:00")
	assert.Equal(t, "2024-06-01", d.String())
	assert.Equal(t, task.DefaultDueTime, hhmm)

	d, hhmm = splitWireTimestamp("2024-06-01")
	assert.Equal(t, "2024-06-01", d.String())
	assert.Equal(t, task.DefaultDueTime, hhmm)
}

func TestCreatePayload_TransmitsExplicitNullReminder(t *testing.T) {
	p := toCreatePayload(backend.Draft{
		Title:    "Buy groceries",
		Category: task.CategoryTask,
		DueDate:  date.New(2024, time.June, 1),
		DueTime:  "18:00",
	})

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	v, ok := raw["reminder_offset_minutes"]
	require.True(t, ok, "reminder_offset_minutes must not be omitted")
	assert.Equal(t, "null", string(v))
	assert.Equal(t, `"2024-06-01T18:00:00"`, string(raw["event_at"]))
}

func TestToUpdateBody_OmitsUntouchedFields(t *testing.T) {
	title := "New title"
	body := toUpdateBody(backend.Patch{Title: &title})

	assert.Equal(t, map[string]any{"text": "New title"}, body)
}

func TestToUpdateBody_ExplicitReminderNull(t *testing.T) {
	body := toUpdateBody(backend.Patch{ReminderSet: true})

	v, ok := body["reminder_offset_minutes"]
	require.True(t, ok)
	assert.Nil(t, v)
}

func TestToUpdateBody_CombinesDuePair(t *testing.T) {
	d := date.New(2024, time.June, 1)
	hhmm := "18:30"
	body := toUpdateBody(backend.Patch{DueDate: &d, DueTime: &hhmm})

	assert.Equal(t, "2024-06-01T18:30:00", body["event_at"])
}
