package server

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/rolodex/internal/db"
	"github.com/jonathan/rolodex/internal/types"
)

// Store is the persistence surface the handlers need. *db.DB implements it.
type Store interface {
	Ping(ctx context.Context) error

	CreateContact(ctx context.Context, in *types.ContactInput) (*types.Contact, error)
	GetContact(ctx context.Context, id uuid.UUID) (*types.Contact, error)
	ListContacts(ctx context.Context, filters db.ContactFilters) ([]types.Contact, error)
	UpdateContact(ctx context.Context, id uuid.UUID, in *types.ContactInput) (*types.Contact, error)
	UpsertContactByEmail(ctx context.Context, in *types.ContactInput) (*types.Contact, bool, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error

	CreateEvent(ctx context.Context, in *types.EventInput) (*types.Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*types.Event, error)
	ListEvents(ctx context.Context, filters db.EventFilters) ([]types.Event, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, in *types.EventInput) (*types.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	AddAttendee(ctx context.Context, eventID uuid.UUID, in *types.AttendeeInput) error
	RemoveAttendee(ctx context.Context, eventID, contactID uuid.UUID) error
	ListAttendees(ctx context.Context, eventID uuid.UUID) ([]types.Attendee, error)

	CreatePipelineEntry(ctx context.Context, f db.EntryFields) (*types.PipelineEntry, error)
	GetPipelineItem(ctx context.Context, id uuid.UUID) (*types.PipelineItem, error)
	ListPipelineItems(ctx context.Context, filters db.PipelineFilters) ([]types.PipelineItem, error)
	UpdatePipelineEntry(ctx context.Context, id uuid.UUID, f db.EntryFields) (*types.PipelineEntry, error)
	RecordPipelineNextAction(ctx context.Context, id uuid.UUID, req *types.NextActionRequest) (*types.PipelineEntry, error)
	DeletePipelineEntry(ctx context.Context, id uuid.UUID) error

	CreateCTOEntry(ctx context.Context, f db.EntryFields) (*types.CTOEntry, error)
	GetCTOItem(ctx context.Context, id uuid.UUID) (*types.CTOItem, error)
	ListCTOItems(ctx context.Context, filters db.PipelineFilters) ([]types.CTOItem, error)
	UpdateCTOEntry(ctx context.Context, id uuid.UUID, f db.EntryFields) (*types.CTOEntry, error)
	RecordCTONextAction(ctx context.Context, id uuid.UUID, req *types.NextActionRequest) (*types.CTOEntry, error)
	DeleteCTOEntry(ctx context.Context, id uuid.UUID) error

	CreateVIP(ctx context.Context, in *types.VIPInput) (*types.VIP, error)
	GetVIP(ctx context.Context, id uuid.UUID) (*types.VIP, error)
	ListVIPs(ctx context.Context, filters db.VIPFilters) ([]types.VIP, error)
	UpdateVIP(ctx context.Context, id uuid.UUID, in *types.VIPInput) (*types.VIP, error)
	TouchVIP(ctx context.Context, id uuid.UUID, at time.Time) (*types.VIP, error)
	DeleteVIP(ctx context.Context, id uuid.UUID) error

	CreateProject(ctx context.Context, in *types.ProjectInput) (*types.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*types.Project, error)
	ListProjects(ctx context.Context, filters db.ProjectFilters) ([]types.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, in *types.ProjectInput) (*types.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
	CreateTask(ctx context.Context, projectID uuid.UUID, in *types.TaskInput) (*types.Task, error)
	ListTasks(ctx context.Context, projectID uuid.UUID) ([]types.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, in *types.TaskInput) (*types.Task, error)
	CompleteTask(ctx context.Context, id uuid.UUID) (*types.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

var _ Store = (*db.DB)(nil)
