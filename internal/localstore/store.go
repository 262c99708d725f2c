// Package localstore implements the offline/demo task backend on an
// embedded SQLite database. Filtering, sorting, and counts run
// client-side through the task package, since there is no server to do
// them.
package localstore

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/taskbot-dev/taskbot/internal/backend"
	"github.com/taskbot-dev/taskbot/internal/clierr"
	"github.com/taskbot-dev/taskbot/internal/date"
	"github.com/taskbot-dev/taskbot/internal/task"
)

// Store is a SQLite-backed backend.Backend.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (and if needed creates) the task database at dbPath and
// seeds the demo task set on first use.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}

	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.seedIfEmpty(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// SetNow overrides the clock used for timestamps (for testing).
func (s *Store) SetNow(fn func() time.Time) { s.now = fn }

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT 'reminder',
	event_at TEXT NOT NULL,
	reminder_minutes INTEGER DEFAULT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`
	_, err := s.db.Exec(ddl)
	return err
}

// List implements backend.Backend. Counts always cover the full list
// regardless of the filter, matching what the API backend returns.
func (s *Store) List(ctx context.Context, f task.Filter) ([]*task.Task, task.Counts, error) {
	all, err := s.fetchAll(ctx)
	if err != nil {
		return nil, task.Counts{}, err
	}

	today := date.FromTime(s.now())
	counts := task.CountTasks(all, today)
	tasks := task.FilterTasks(all, f, today)
	task.SortTasks(tasks)
	return tasks, counts, nil
}

// Counts implements backend.Backend.
func (s *Store) Counts(ctx context.Context) (task.Counts, error) {
	all, err := s.fetchAll(ctx)
	if err != nil {
		return task.Counts{}, err
	}
	return task.CountTasks(all, date.FromTime(s.now())), nil
}

// Create implements backend.Backend.
func (s *Store) Create(ctx context.Context, d backend.Draft) (*task.Task, error) {
	now := s.now()
	var reminder sql.NullInt64
	if d.ReminderMinutes != nil {
		reminder = sql.NullInt64{Int64: int64(*d.ReminderMinutes), Valid: true}
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (title, description, category, event_at, reminder_minutes, completed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, 0, ?, ?);`,
		d.Title, d.Description, string(d.Category),
		d.DueDate.At(d.DueTime).Format(time.RFC3339), reminder,
		now.UTC().Format(time.RFC3339), now.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &task.Task{
		ID:              int(id),
		Title:           d.Title,
		Description:     d.Description,
		Category:        d.Category,
		DueDate:         d.DueDate,
		DueTime:         d.DueTime,
		ReminderMinutes: d.ReminderMinutes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Update implements backend.Backend.
func (s *Store) Update(ctx context.Context, id int, p backend.Patch) error {
	t, err := s.fetchOne(ctx, id)
	if err != nil {
		return err
	}

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

	var reminder sql.NullInt64
	if t.ReminderMinutes != nil {
		reminder = sql.NullInt64{Int64: int64(*t.ReminderMinutes), Valid: true}
	}
	completed := 0
	if t.Completed {
		completed = 1
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, category = ?, event_at = ?, reminder_minutes = ?, completed = ?, updated_at = ? WHERE id = ?;`,
		t.Title, t.Description, string(t.Category),
		t.EventAt().Format(time.RFC3339), reminder, completed,
		s.now().UTC().Format(time.RFC3339), id)
	return err
}

// Toggle implements backend.Backend.
func (s *Store) Toggle(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET completed = 1 - completed, updated_at = ? WHERE id = ?;`,
		s.now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

// Delete implements backend.Backend.
func (s *Store) Delete(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?;`, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

func requireRow(res sql.Result, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return clierr.Newf(clierr.TaskNotFound, "task #%d not found", id).
			WithDetails(map[string]any{"id": id})
	}
	return nil
}

func (s *Store) fetchAll(ctx context.Context) ([]*task.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, category, event_at, reminder_minutes, completed, created_at, updated_at FROM tasks ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) fetchOne(ctx context.Context, id int) (*task.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, category, event_at, reminder_minutes, completed, created_at, updated_at FROM tasks WHERE id = ?;`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, clierr.Newf(clierr.TaskNotFound, "task #%d not found", id).
			WithDetails(map[string]any{"id": id})
	}
	return t, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*task.Task, error) {
	var t task.Task
	var category, eventStr, createdStr, updatedStr string
	var reminder sql.NullInt64
	var completed int

	if err := row.Scan(&t.ID, &t.Title, &t.Description, &category, &eventStr, &reminder, &completed, &createdStr, &updatedStr); err != nil {
		return nil, err
	}

	cat, err := task.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	t.Category = cat
	t.Completed = completed == 1

	if reminder.Valid {
		v := int(reminder.Int64)
		t.ReminderMinutes = &v
	}

	event, err := time.Parse(time.RFC3339, eventStr)
	if err != nil {
		return nil, err
	}
	t.DueDate = date.FromTime(event)
	t.DueTime = event.Format("15:04")

	if created, err := time.Parse(time.RFC3339, createdStr); err == nil {
		t.CreatedAt = created
	}
	if updated, err := time.Parse(time.RFC3339, updatedStr); err == nil {
		t.UpdatedAt = updated
	}
	return &t, nil
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
