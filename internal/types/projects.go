package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Project statuses
const (
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on_hold"
	ProjectStatusCompleted = "completed"
)

// Task statuses
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// Project is a business development project
type Project struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status"`
	Owner       *string    `json:"owner,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	OpenTasks   int        `json:"open_tasks"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ProjectInput is the create/replace payload for a project.
type ProjectInput struct {
	Name        string     `json:"name" validate:"required,max=200"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status,omitempty" validate:"omitempty,oneof=active on_hold completed"`
	Owner       *string    `json:"owner,omitempty" validate:"omitempty,max=100"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Validate validates the ProjectInput using the validator.
func (in *ProjectInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Status == "" {
		in.Status = ProjectStatusActive
	}
	return validate.Struct(in)
}

// Task is a unit of work within a project
type Task struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	Assignee    *string    `json:"assignee,omitempty"`
	ContactID   *uuid.UUID `json:"contact_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskInput is the create/replace payload for a task.
type TaskInput struct {
	Title     string     `json:"title" validate:"required,max=200"`
	Status    string     `json:"status,omitempty" validate:"omitempty,oneof=todo in_progress done"`
	Assignee  *string    `json:"assignee,omitempty" validate:"omitempty,max=100"`
	ContactID *uuid.UUID `json:"contact_id,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

// Validate validates the TaskInput using the validator.
func (in *TaskInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Status == "" {
		in.Status = TaskStatusTodo
	}
	return validate.Struct(in)
}
