// Package store keeps the in-memory task list the UI renders. Every
// mutation applies an optimistic local patch so the screen responds
// immediately, then refreshes from the backend so the list always
// converges on what the server holds.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/taskbot-dev/taskbot/internal/backend"
	"github.com/taskbot-dev/taskbot/internal/date"
	"github.com/taskbot-dev/taskbot/internal/task"
)

// Store is safe for concurrent use.
type Store struct {
	backend backend.Backend
	now     func() time.Time

	mu      sync.Mutex
	tasks   []*task.Task
	counts  task.Counts
	filter  task.Filter
	loading bool
	err     error
}

// Snapshot is an immutable copy of the store state at one instant.
type Snapshot struct {
	Tasks   []*task.Task
	Counts  task.Counts
	Filter  task.Filter
	Loading bool
	Err     error
}

func New(b backend.Backend) *Store {
	return &Store{
		backend: b,
		now:     time.Now,
		filter:  task.FilterAll,
	}
}

// SetNow overrides the clock used for optimistic timestamps (for testing).
func (s *Store) SetNow(fn func() time.Time) { s.now = fn }

// Snapshot returns a copy of the current state. The task slice is
// copied but the tasks themselves are shared; callers must not mutate
// them.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := make([]*task.Task, len(s.tasks))
	copy(tasks, s.tasks)
	return Snapshot{
		Tasks:   tasks,
		Counts:  s.counts,
		Filter:  s.filter,
		Loading: s.loading,
		Err:     s.err,
	}
}

// SetFilter changes the active filter and refreshes.
func (s *Store) SetFilter(ctx context.Context, f task.Filter) error {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// Refresh replaces tasks and counts with the backend's view. On
// failure the previous tasks are kept and Err records what went wrong;
// showing a stale list beats showing nothing.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	f := s.filter
	s.mu.Unlock()

	tasks, counts, err := s.backend.List(ctx, f)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return err
	}
	s.tasks = tasks
	s.counts = counts
	s.err = nil
	return nil
}

// Create sends the draft to the backend, prepends the confirmed task
// locally, then refreshes to pick up server ordering.
func (s *Store) Create(ctx context.Context, d backend.Draft) (*task.Task, error) {
	t, err := s.backend.Create(ctx, d)
	if err != nil {
		s.setErr(err)
		return nil, err
	}

	s.mu.Lock()
	s.tasks = append([]*task.Task{t}, s.tasks...)
	s.counts.All++
	s.counts.Active++
	if t.DueOn(date.FromTime(s.now())) {
		s.counts.Today++
	}
	s.mu.Unlock()

	s.refreshQuiet(ctx)
	return t, nil
}

// Update patches the task locally, sends the patch, then refreshes.
func (s *Store) Update(ctx context.Context, id int, p backend.Patch) error {
	s.mu.Lock()
	if t := s.find(id); t != nil {
		merge(t, p)
		t.UpdatedAt = s.now()
	}
	s.mu.Unlock()

	if err := s.backend.Update(ctx, id, p); err != nil {
		s.reconcile(ctx, err)
		return err
	}
	return s.Refresh(ctx)
}

// Toggle flips completion locally, sends the toggle, then refreshes.
func (s *Store) Toggle(ctx context.Context, id int) error {
	s.mu.Lock()
	if t := s.find(id); t != nil {
		t.Completed = !t.Completed
		t.UpdatedAt = s.now()
		if t.Completed {
			s.counts.Active--
			s.counts.Completed++
		} else {
			s.counts.Active++
			s.counts.Completed--
		}
	}
	s.mu.Unlock()

	if err := s.backend.Toggle(ctx, id); err != nil {
		s.reconcile(ctx, err)
		return err
	}
	return s.Refresh(ctx)
}

// Delete removes the task locally, sends the delete, then refreshes.
func (s *Store) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	s.remove(id)
	s.mu.Unlock()

	if err := s.backend.Delete(ctx, id); err != nil {
		s.reconcile(ctx, err)
		return err
	}
	return s.Refresh(ctx)
}

// refreshQuiet reconciles after a successful mutation without
// surfacing refresh errors; the mutation itself already succeeded.
func (s *Store) refreshQuiet(ctx context.Context) {
	_ = s.Refresh(ctx)
}

// reconcile restores server truth after a failed mutation. The
// mutation error stays visible even when the refresh succeeds.
func (s *Store) reconcile(ctx context.Context, cause error) {
	_ = s.Refresh(ctx)
	s.setErr(cause)
}

func (s *Store) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// find returns the stored task with the given id. Caller holds mu.
func (s *Store) find(id int) *task.Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// remove drops the task with the given id. Caller holds mu.
func (s *Store) remove(id int) {
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.counts.All--
			if t.Completed {
				s.counts.Completed--
			} else {
				s.counts.Active--
			}
			return
		}
	}
}

func merge(t *task.Task, p backend.Patch) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.DueTime != nil {
		t.DueTime = *p.DueTime
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.ReminderSet {
		t.ReminderMinutes = p.ReminderMinutes
	}
}
