package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/rolodex/internal/types"
)

// -----------------------------------------------------------------------------
// Task Methods
// -----------------------------------------------------------------------------

const taskColumns = `id, project_id, title, status, assignee, contact_id, due_date, completed_at,
	notes, created_at, updated_at`

func scanTask(row pgx.Row) (*types.Task, error) {
	var t types.Task
	err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Status, &t.Assignee, &t.ContactID, &t.DueDate,
		&t.CompletedAt, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTask adds a task to a project
func (db *DB) CreateTask(ctx context.Context, projectID uuid.UUID, in *types.TaskInput) (*types.Task, error) {
	t, err := scanTask(db.pool.QueryRow(ctx,
		`INSERT INTO tasks (project_id, title, status, assignee, contact_id, due_date, notes, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, CASE WHEN $3 = 'done' THEN NOW() END)
		 RETURNING `+taskColumns,
		projectID, in.Title, in.Status, in.Assignee, in.ContactID, in.DueDate, in.Notes,
	))
	if err != nil {
		return nil, classify(err, "task", "failed to create task")
	}
	return t, nil
}

// GetTask retrieves a task by ID. Returns nil, nil when not found.
func (db *DB) GetTask(ctx context.Context, id uuid.UUID) (*types.Task, error) {
	t, err := scanTask(db.pool.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

// ListTasks retrieves a project's tasks, open tasks first then by due date
func (db *DB) ListTasks(ctx context.Context, projectID uuid.UUID) ([]types.Task, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE project_id = $1
		 ORDER BY (status = 'done'), due_date ASC NULLS LAST, created_at`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []types.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask replaces a task's fields. completed_at is stamped when the task
// moves to done and cleared when it moves out of done.
func (db *DB) UpdateTask(ctx context.Context, id uuid.UUID, in *types.TaskInput) (*types.Task, error) {
	t, err := scanTask(db.pool.QueryRow(ctx,
		`UPDATE tasks SET title = $2, status = $3, assignee = $4, contact_id = $5, due_date = $6,
		        notes = $7,
		        completed_at = CASE WHEN $3 = 'done' THEN COALESCE(completed_at, NOW()) END,
		        updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+taskColumns,
		id, in.Title, in.Status, in.Assignee, in.ContactID, in.DueDate, in.Notes,
	))
	if err != nil {
		if isNoRows(err) {
			return nil, &NotFoundError{Entity: "task", ID: id}
		}
		return nil, classify(err, "task", "failed to update task")
	}
	return t, nil
}

// CompleteTask marks a task done, keeping the first completion time
func (db *DB) CompleteTask(ctx context.Context, id uuid.UUID) (*types.Task, error) {
	t, err := scanTask(db.pool.QueryRow(ctx,
		`UPDATE tasks SET status = 'done', completed_at = COALESCE(completed_at, NOW()),
		        updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+taskColumns,
		id,
	))
	if err != nil {
		if isNoRows(err) {
			return nil, &NotFoundError{Entity: "task", ID: id}
		}
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}
	return t, nil
}

// DeleteTask deletes a task
func (db *DB) DeleteTask(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &NotFoundError{Entity: "task", ID: id}
	}
	return nil
}
