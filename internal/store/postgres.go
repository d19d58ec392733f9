package store

import (
	"context"
	"database/sql"
	"fmt"
)

// editableColumns restricts SetField to the columns a user may edit.
var editableColumns = map[string]struct{}{
	"title":         {},
	"tag":           {},
	"project":       {},
	"priority_code": {},
	"due_code":      {},
}

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const taskColumns = `id, owner_id, task_number, title, tag, project, priority_code, due_code, completed, created_at`

func scanTask(row interface{ Scan(...any) error }) (Task, error) {
	var t Task
	err := row.Scan(&t.ID, &t.OwnerID, &t.Number, &t.Title, &t.Tag, &t.Project, &t.PriorityCode, &t.DueCode, &t.Completed, &t.CreatedAt)
	return t, err
}

// ListActive returns the owner's non-completed tasks, optionally filtered by
// exact tag or substring project match. Ordered by internal id ascending so
// equal-score tasks list deterministically.
func (s *PostgresStore) ListActive(ctx context.Context, ownerID int64, tag, project string) ([]Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE owner_id=$1 AND completed=FALSE
		  AND ($2='' OR tag=$2)
		  AND ($3='' OR project ILIKE '%' || $3 || '%')
		ORDER BY id ASC
	`, ownerID, tag, project)
	if err != nil {
		return nil, fmt.Errorf("list active tasks: %w", err)
	}
	defer rows.Close()

	items := make([]Task, 0)
	for rows.Next() {
		item, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return items, nil
}

// ActiveNumbers returns the task numbers currently held by the owner's
// active tasks. Input for smallest-free-number allocation.
func (s *PostgresStore) ActiveNumbers(ctx context.Context, ownerID int64) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT task_number FROM tasks WHERE owner_id=$1 AND completed=FALSE
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list active numbers: %w", err)
	}
	defer rows.Close()

	numbers := make([]int, 0)
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan task number: %w", err)
		}
		numbers = append(numbers, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate task numbers: %w", err)
	}
	return numbers, nil
}

// GetActiveByNumber resolves a user-typed task number against the owner's
// active tasks. Returns sql.ErrNoRows when nothing matches.
func (s *PostgresStore) GetActiveByNumber(ctx context.Context, ownerID int64, number int) (Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE owner_id=$1 AND task_number=$2 AND completed=FALSE
	`, ownerID, number)
	return scanTask(row)
}

func (s *PostgresStore) Insert(ctx context.Context, task Task) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO tasks (owner_id, task_number, title, tag, project, priority_code, due_code, completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, task.OwnerID, task.Number, task.Title, task.Tag, task.Project, task.PriorityCode, task.DueCode, task.Completed).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	return id, nil
}

// InsertWithID re-inserts a previously deleted task preserving its internal
// id and task number, so an undone delete restores the record verbatim.
func (s *PostgresStore) InsertWithID(ctx context.Context, task Task) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, owner_id, task_number, title, tag, project, priority_code, due_code, completed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`, task.ID, task.OwnerID, task.Number, task.Title, task.Tag, task.Project, task.PriorityCode, task.DueCode, task.Completed, task.CreatedAt)
	if err != nil {
		return fmt.Errorf("reinsert task: %w", err)
	}
	return nil
}

func (s *PostgresStore) SetCompleted(ctx context.Context, id int64, completed bool) error {
	_, err := s.db.ExecContext(ctx, `UPDATE tasks SET completed=$2 WHERE id=$1`, id, completed)
	if err != nil {
		return fmt.Errorf("set task completed: %w", err)
	}
	return nil
}

// SetField writes one editable column. The column name must come from the
// edit-field whitelist; anything else is rejected before touching SQL.
func (s *PostgresStore) SetField(ctx context.Context, id int64, column, value string) error {
	if _, ok := editableColumns[column]; !ok {
		return fmt.Errorf("set task field: column %q not editable", column)
	}
	_, err := s.db.ExecContext(ctx, `UPDATE tasks SET `+column+`=$2 WHERE id=$1`, id, value)
	if err != nil {
		return fmt.Errorf("set task %s: %w", column, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// Ping verifies the database connection is alive
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
