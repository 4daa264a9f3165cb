package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/rolodex/internal/types"
)

// -----------------------------------------------------------------------------
// Project Methods
// -----------------------------------------------------------------------------

const projectSelect = `SELECT p.id, p.name, p.description, p.status, p.owner, p.due_date,
		(SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.id AND t.status <> 'done') AS open_tasks,
		p.created_at, p.updated_at
	FROM projects p`

func scanProject(row pgx.Row) (*types.Project, error) {
	var p types.Project
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.Owner, &p.DueDate,
		&p.OpenTasks, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ProjectFilters holds optional filters for listing projects
type ProjectFilters struct {
	Status string
	Owner  string
	Limit  int
}

// CreateProject inserts a project
func (db *DB) CreateProject(ctx context.Context, in *types.ProjectInput) (*types.Project, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO projects (name, description, status, owner, due_date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		in.Name, in.Description, in.Status, in.Owner, in.DueDate,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return db.GetProject(ctx, id)
}

// GetProject retrieves a project with its open task count. Returns nil, nil when not found.
func (db *DB) GetProject(ctx context.Context, id uuid.UUID) (*types.Project, error) {
	p, err := scanProject(db.pool.QueryRow(ctx, projectSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// ListProjects retrieves projects, earliest due first
func (db *DB) ListProjects(ctx context.Context, filters ProjectFilters) ([]types.Project, error) {
	w := newWhere()
	if filters.Status != "" {
		w.add(`p.status = ?`, filters.Status)
	}
	if filters.Owner != "" {
		w.add(`p.owner = ?`, filters.Owner)
	}
	limit := w.next(listLimit(filters.Limit))

	rows, err := db.pool.Query(ctx,
		projectSelect+w.sql+` ORDER BY p.due_date ASC NULLS LAST, p.created_at DESC LIMIT `+limit,
		w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []types.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// UpdateProject replaces a project's fields
func (db *DB) UpdateProject(ctx context.Context, id uuid.UUID, in *types.ProjectInput) (*types.Project, error) {
	result, err := db.pool.Exec(ctx,
		`UPDATE projects SET name = $2, description = $3, status = $4, owner = $5, due_date = $6,
		        updated_at = NOW()
		 WHERE id = $1`,
		id, in.Name, in.Description, in.Status, in.Owner, in.DueDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, &NotFoundError{Entity: "project", ID: id}
	}
	return db.GetProject(ctx, id)
}

// DeleteProject deletes a project and its tasks (via cascade)
func (db *DB) DeleteProject(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &NotFoundError{Entity: "project", ID: id}
	}
	return nil
}
