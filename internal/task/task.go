// Package task defines the task view model and pure list operations.
package task

import (
	"regexp"
	"time"

	"github.com/taskbot-dev/taskbot/internal/clierr"
	"github.com/taskbot-dev/taskbot/internal/date"
)

// Category classifies a task for display and reminder purposes.
type Category string

// Known categories. Reminder is the default for new tasks.
const (
	CategoryReminder Category = "reminder"
	CategoryTask     Category = "task"
	CategoryEvent    Category = "event"
)

// DefaultDueTime is assumed when the wire carries no clock time.
const DefaultDueTime = "09:00"

var dueTimeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ParseCategory validates a category string. Unrecognized values are a data
// error, not a silent default.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryReminder, CategoryTask, CategoryEvent:
		return Category(s), nil
	}
	return "", clierr.Newf(clierr.InvalidCategory, "invalid category %q", s).
		WithDetails(map[string]any{
			"category": s,
			"allowed":  []string{string(CategoryReminder), string(CategoryTask), string(CategoryEvent)},
		})
}

// ValidateDueTime checks that s is a 24-hour HH:MM clock time.
func ValidateDueTime(s string) error {
	if !dueTimeRe.MatchString(s) {
		return clierr.Newf(clierr.InvalidTime, "invalid time %q: expected HH:MM", s).
			WithDetails(map[string]any{"input": s})
	}
	return nil
}

// Task is the view-model shape. The wire format is the source of truth;
// DueDate and DueTime are derived by splitting the wire timestamp.
type Task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    Category  `json:"category"`
	DueDate     date.Date `json:"due_date"`
	DueTime     string    `json:"due_time"`

	// ReminderMinutes is how many minutes before the event a reminder
	// fires. nil means "unspecified" and is distinct from 0.
	ReminderMinutes *int `json:"reminder_minutes"`

	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EventAt combines DueDate and DueTime into a single timestamp, minute
// precision.
func (t *Task) EventAt() time.Time {
	return t.DueDate.At(t.DueTime)
}

// DueOn reports whether the task falls on the given calendar day,
// ignoring the clock time.
func (t *Task) DueOn(d date.Date) bool {
	return t.DueDate.Equal(d)
}

// Counts is the derived aggregate over a task list. The authoritative
// store may compute it server-side; CountTasks computes it client-side.
// Both must agree in steady state.
type Counts struct {
	All       int `json:"all"`
	Today     int `json:"today"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// CountTasks scans the full task list and derives Counts, with "today"
// evaluated against the given date.
func CountTasks(tasks []*Task, today date.Date) Counts {
	c := Counts{All: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
		} else {
			c.Active++
		}
		if t.DueOn(today) {
			c.Today++
		}
	}
	return c
}
