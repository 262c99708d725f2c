// Package backend defines the storage seam behind the task store.
// Two implementations exist: the wire-backed API client and the
// SQLite-backed local store, selected at composition time.
package backend

import (
	"context"

	"github.com/taskbot-dev/taskbot/internal/date"
	"github.com/taskbot-dev/taskbot/internal/task"
)

// Draft carries the fields of a task to be created. The authoritative
// store assigns the ID and timestamps.
type Draft struct {
	Title           string
	Description     string
	Category        task.Category
	DueDate         date.Date
	DueTime         string
	ReminderMinutes *int
}

// Patch is a partial update. Pointer fields that are nil are left
// untouched. Callers rescheduling a task set DueDate and DueTime
// together, since the wire collapses the pair into one timestamp.
// ReminderSet distinguishes "leave the reminder alone" from "set it to
// unspecified": when ReminderSet is true and ReminderMinutes is nil, the
// explicit null must reach the wire.
type Patch struct {
	Title           *string
	Description     *string
	Category        *task.Category
	DueDate         *date.Date
	DueTime         *string
	Completed       *bool
	ReminderSet     bool
	ReminderMinutes *int
}

// Backend is the authoritative task store behind the view model.
type Backend interface {
	// List returns tasks matching the filter plus the full-list counts.
	List(ctx context.Context, f task.Filter) ([]*task.Task, task.Counts, error)

	// Counts returns the aggregate counts without the task list.
	Counts(ctx context.Context) (task.Counts, error)

	// Create stores a new task and returns it with its assigned ID.
	Create(ctx context.Context, d Draft) (*task.Task, error)

	// Update applies a partial patch to the task with the given ID.
	Update(ctx context.Context, id int, p Patch) error

	// Toggle flips the completion flag of the task with the given ID.
	Toggle(ctx context.Context, id int) error

	// Delete removes the task with the given ID.
	Delete(ctx context.Context, id int) error
}
