package localstore

import (
	"context"
	"time"

	"github.com/taskbot-dev/taskbot/internal/backend"
	"github.com/taskbot-dev/taskbot/internal/date"
	"github.com/taskbot-dev/taskbot/internal/task"
)

func intPtr(n int) *int { return &n }

// demoTasks returns the starter list inserted into a fresh database so
// the app is never empty on first launch.
func demoTasks(now time.Time) []backend.Draft {
	today := date.FromTime(now)
	tomorrow := date.FromTime(now.AddDate(0, 0, 1))
	nextWeek := date.FromTime(now.AddDate(0, 0, 7))

	return []backend.Draft{
		{
			Title:           "Pick up parcel",
			Category:        task.CategoryReminder,
			DueDate:         today,
			DueTime:         "12:00",
			ReminderMinutes: intPtr(30),
		},
		{
			Title:           "Doctor appointment",
			Category:        task.CategoryEvent,
			DueDate:         tomorrow,
			DueTime:         "10:30",
			ReminderMinutes: intPtr(60),
		},
		{
			Title:    "Buy groceries",
			Category: task.CategoryTask,
			DueDate:  today,
			DueTime:  "18:00",
		},
		{
			Title:           "Call mom",
			Category:        task.CategoryReminder,
			DueDate:         tomorrow,
			DueTime:         "19:00",
			ReminderMinutes: intPtr(0),
		},
		{
			Title:    "Pay internet bill",
			Category: task.CategoryTask,
			DueDate:  nextWeek,
			DueTime:  task.DefaultDueTime,
		},
	}
}

func (s *Store) seedIfEmpty() error {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM tasks;`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, d := range demoTasks(s.now()) {
		if _, err := s.Create(context.Background(), d); err != nil {
			return err
		}
	}
	return nil
}
