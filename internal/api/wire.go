package api

import (
	"strings"
	"time"

	"github.com/taskbot-dev/taskbot/internal/backend"
	"github.com/taskbot-dev/taskbot/internal/date"
	"github.com/taskbot-dev/taskbot/internal/task"
)

// WireTask is the backend's task representation. event_at is preferred;
// remind_at is a legacy fallback carrying the same timestamp.
type WireTask struct {
	ID                    int     `json:"id"`
	Text                  string  `json:"text"`
	Category              string  `json:"category"`
	EventAt               *string `json:"event_at,omitempty"`
	RemindAt              *string `json:"remind_at"`
	ReminderOffsetMinutes *int    `json:"reminder_offset_minutes,omitempty"`
	Completed             bool    `json:"completed"`
	CreatedAt             string  `json:"created_at"`
	UpdatedAt             string  `json:"updated_at"`
}

type listResponse struct {
	Tasks  []WireTask  `json:"tasks"`
	Counts task.Counts `json:"counts"`
}

type createResponse struct {
	Status string `json:"status"`
	ID     int    `json:"id"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type toggleRequest struct {
	TaskID int `json:"task_id"`
}

// createPayload is the POST body for task creation. ReminderOffsetMinutes
// deliberately has no omitempty: an explicit "unspecified" choice is
// transmitted as JSON null, never dropped.
type createPayload struct {
	Text                  string `json:"text"`
	Category              string `json:"category"`
	EventAt               string `json:"event_at"`
	ReminderOffsetMinutes *int   `json:"reminder_offset_minutes"`
}

const wireTimeLayout = "2006-01-02T15:04:05"

// fromWire translates a wire task into the view-model shape. Exactly one
// of event_at (preferred) and remind_at determines the due date and time;
// with neither present the due date falls back to now and the time to
// DefaultDueTime.
func fromWire(w WireTask, now time.Time) (*task.Task, error) {
	cat, err := task.ParseCategory(w.Category)
	if err != nil {
		return nil, err
	}

	t := &task.Task{
		ID:              w.ID,
		Title:           w.Text,
		Category:        cat,
		ReminderMinutes: w.ReminderOffsetMinutes,
		Completed:       w.Completed,
		CreatedAt:       parseWireTime(w.CreatedAt, now),
		UpdatedAt:       parseWireTime(w.UpdatedAt, now),
	}

	source := ""
	if w.EventAt != nil && *w.EventAt != "" {
		source = *w.EventAt
	} else if w.RemindAt != nil && *w.RemindAt != "" {
		source = *w.RemindAt
	}

	if source == "" {
		t.DueDate = date.FromTime(now)
		t.DueTime = task.DefaultDueTime
		return t, nil
	}

	t.DueDate, t.DueTime = splitWireTimestamp(source)
	return t, nil
}

// splitWireTimestamp derives the date and HH:MM parts of an ISO timestamp
// by splitting at the T separator, mirroring how the wire format is read
// everywhere else.
func splitWireTimestamp(iso string) (date.Date, string) {
	datePart, timePart, found := strings.Cut(iso, "T")
	d, err := date.Parse(datePart)
	if err != nil {
		d = date.Today()
	}
	if !found || len(timePart) < 5 {
		return d, task.DefaultDueTime
	}
	hhmm := timePart[:5]
	if task.ValidateDueTime(hhmm) != nil {
		return d, task.DefaultDueTime
	}
	return d, hhmm
}

func parseWireTime(s string, fallback time.Time) time.Time {
	for _, layout := range []string{time.RFC3339, wireTimeLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return fallback
}

func formatWireTime(t time.Time) string {
	return t.UTC().Format(wireTimeLayout)
}

// toCreatePayload translates a draft into the wire create body, combining
// DueDate and DueTime into a single event_at timestamp.
func toCreatePayload(d backend.Draft) createPayload {
	return createPayload{
		Text:                  d.Title,
		Category:              string(d.Category),
		EventAt:               formatWireTime(d.DueDate.At(d.DueTime)),
		ReminderOffsetMinutes: d.ReminderMinutes,
	}
}

// toUpdateBody translates a patch into the wire update body. DueDate and
// DueTime collapse into event_at; an explicit reminder null is kept.
// The map form keeps absent fields absent, which the struct+omitempty
// encoding cannot express for nullable fields.
func toUpdateBody(p backend.Patch) map[string]any {
	body := make(map[string]any)

	if p.Title != nil {
		body["text"] = *p.Title
	}
	if p.Category != nil {
		body["category"] = string(*p.Category)
	}
	if p.Completed != nil {
		body["completed"] = *p.Completed
	}
	if p.DueDate != nil {
		hhmm := task.DefaultDueTime
		if p.DueTime != nil {
			hhmm = *p.DueTime
		}
		body["event_at"] = formatWireTime(p.DueDate.At(hhmm))
	}
	if p.ReminderSet {
		if p.ReminderMinutes != nil {
			body["reminder_offset_minutes"] = *p.ReminderMinutes
		} else {
			body["reminder_offset_minutes"] = nil
		}
	}

	return body
}
