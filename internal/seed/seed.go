// Package seed loads demo data from a JSON file into the database.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/rolodex/internal/db"
	"github.com/jonathan/rolodex/internal/pipeline"
	"github.com/jonathan/rolodex/internal/types"
	"go.uber.org/zap"
)

// File is the seed document. Everything except contacts refers to contacts by
// email address.
type File struct {
	Contacts []types.ContactInput `json:"contacts"`
	Events   []Event              `json:"events"`
	Pipeline []Entry              `json:"pipeline"`
	CTOClub  []Entry              `json:"cto_club"`
	VIPs     []VIP                `json:"vips"`
	Projects []Project            `json:"projects"`
}

// Event is an event plus the emails of the contacts invited to it.
type Event struct {
	types.EventInput
	Attendees []string `json:"attendees,omitempty"`
}

// Entry seeds a relationship pipeline or CTO club entry. A next action moves
// the stage the same way choosing it in the app would.
type Entry struct {
	ContactEmail   string     `json:"contact_email"`
	Stage          string     `json:"stage,omitempty"`
	LastAction     *string    `json:"last_action,omitempty"`
	NextAction     string     `json:"next_action,omitempty"`
	NextActionDate *time.Time `json:"next_action_date,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
}

// VIP seeds a VIP record.
type VIP struct {
	ContactEmail       string     `json:"contact_email"`
	Tier               string     `json:"tier"`
	Owner              *string    `json:"owner,omitempty"`
	TouchFrequencyDays int        `json:"touch_frequency_days,omitempty"`
	LastTouchAt        *time.Time `json:"last_touch_at,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
}

// Project is a project and its tasks.
type Project struct {
	types.ProjectInput
	Tasks []Task `json:"tasks,omitempty"`
}

// Task is a project task, optionally linked to a contact.
type Task struct {
	Title        string     `json:"title"`
	Status       string     `json:"status,omitempty"`
	Assignee     *string    `json:"assignee,omitempty"`
	ContactEmail string     `json:"contact_email,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

// Store is the persistence surface seeding needs. *db.DB implements it.
type Store interface {
	UpsertContactByEmail(ctx context.Context, in *types.ContactInput) (*types.Contact, bool, error)
	CreateEvent(ctx context.Context, in *types.EventInput) (*types.Event, error)
	AddAttendee(ctx context.Context, eventID uuid.UUID, in *types.AttendeeInput) error
	CreatePipelineEntry(ctx context.Context, f db.EntryFields) (*types.PipelineEntry, error)
	CreateCTOEntry(ctx context.Context, f db.EntryFields) (*types.CTOEntry, error)
	CreateVIP(ctx context.Context, in *types.VIPInput) (*types.VIP, error)
	CreateProject(ctx context.Context, in *types.ProjectInput) (*types.Project, error)
	CreateTask(ctx context.Context, projectID uuid.UUID, in *types.TaskInput) (*types.Task, error)
}

var _ Store = (*db.DB)(nil)

// Summary counts what a seed run wrote. Skipped counts records that already
// existed (one pipeline entry, CTO entry or VIP per contact).
type Summary struct {
	Contacts  int `json:"contacts"`
	Events    int `json:"events"`
	Attendees int `json:"attendees"`
	Pipeline  int `json:"pipeline"`
	CTOClub   int `json:"cto_club"`
	VIPs      int `json:"vips"`
	Projects  int `json:"projects"`
	Tasks     int `json:"tasks"`
	Skipped   int `json:"skipped"`
}

// UnknownContactError is returned when a record names an email that is not in
// the seed's contacts.
type UnknownContactError struct {
	Section string
	Index   int
	Email   string
}

func (e *UnknownContactError) Error() string {
	return fmt.Sprintf("%s[%d]: unknown contact %q", e.Section, e.Index, e.Email)
}

// Load reads, validates and decodes a seed file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(raw)
}

// Parse validates raw against the seed schema and decodes it.
func Parse(raw []byte) (*File, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	return &f, nil
}

// seeder carries the state of one Apply run.
type seeder struct {
	store    Store
	logger   *zap.Logger
	contacts map[string]uuid.UUID
	summary  Summary
}

// Apply writes f to store. Contacts are upserted by email so re-running a seed
// updates them in place; entries that already exist for a contact are skipped.
// Apply stops at the first error and returns what it wrote so far.
func Apply(ctx context.Context, store Store, f *File, logger *zap.Logger) (Summary, error) {
	s := &seeder{store: store, logger: logger, contacts: make(map[string]uuid.UUID, len(f.Contacts))}

	steps := []func(context.Context, *File) error{
		s.seedContacts,
		s.seedEvents,
		s.seedPipeline,
		s.seedCTOClub,
		s.seedVIPs,
		s.seedProjects,
	}
	for _, step := range steps {
		if err := step(ctx, f); err != nil {
			return s.summary, err
		}
	}
	return s.summary, nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *seeder) contactID(section string, i int, email string) (uuid.UUID, error) {
	id, ok := s.contacts[emailKey(email)]
	if !ok {
		return uuid.Nil, &UnknownContactError{Section: section, Index: i, Email: email}
	}
	return id, nil
}

// skip reports whether err means the record is already present.
func (s *seeder) skip(err error, section string, i int) bool {
	var conflict *db.ConflictError
	if !errors.As(err, &conflict) {
		return false
	}
	s.logger.Debug("seed record already exists",
		zap.String("section", section),
		zap.Int("index", i),
		zap.String("constraint", conflict.Constraint))
	s.summary.Skipped++
	return true
}

func (s *seeder) seedContacts(ctx context.Context, f *File) error {
	for i := range f.Contacts {
		in := f.Contacts[i]
		in.Normalize()
		if err := in.Validate(); err != nil {
			return fmt.Errorf("contacts[%d]: %w", i, err)
		}
		c, _, err := s.store.UpsertContactByEmail(ctx, &in)
		if err != nil {
			return fmt.Errorf("contacts[%d]: %w", i, err)
		}
		s.contacts[emailKey(*in.Email)] = c.ID
		s.summary.Contacts++
	}
	return nil
}

func (s *seeder) seedEvents(ctx context.Context, f *File) error {
	for i := range f.Events {
		ev := f.Events[i]
		in := ev.EventInput
		in.Normalize()
		if err := in.Validate(); err != nil {
			return fmt.Errorf("events[%d]: %w", i, err)
		}

		// Resolve attendees before writing anything for this event.
		ids := make([]uuid.UUID, 0, len(ev.Attendees))
		for _, email := range ev.Attendees {
			id, err := s.contactID("events", i, email)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}

		created, err := s.store.CreateEvent(ctx, &in)
		if err != nil {
			return fmt.Errorf("events[%d]: %w", i, err)
		}
		s.summary.Events++

		for _, id := range ids {
			err := s.store.AddAttendee(ctx, created.ID, &types.AttendeeInput{ContactID: id, Status: types.AttendeeStatusInvited})
			if err != nil {
				if s.skip(err, "events", i) {
					continue
				}
				return fmt.Errorf("events[%d]: %w", i, err)
			}
			s.summary.Attendees++
		}
	}
	return nil
}

// entryFields resolves an entry's stage: the seeded stage or the kind's
// default, then moved by the next action if one is given.
func (s *seeder) entryFields(kind pipeline.Kind, section string, i int, e Entry) (db.EntryFields, error) {
	id, err := s.contactID(section, i, e.ContactEmail)
	if err != nil {
		return db.EntryFields{}, err
	}

	stage := pipeline.Stage(e.Stage)
	if stage == "" {
		stage = pipeline.DefaultStage(kind)
	}
	if !pipeline.IsValidStage(kind, stage) {
		return db.EntryFields{}, fmt.Errorf("%s[%d]: unknown stage %q", section, i, e.Stage)
	}

	fields := db.EntryFields{
		ContactID:      id,
		LastAction:     e.LastAction,
		NextActionDate: e.NextActionDate,
		Notes:          e.Notes,
	}
	if next := strings.TrimSpace(e.NextAction); next != "" {
		u := pipeline.ApplyNextAction(kind, stage, pipeline.NextActionUpdate{NextAction: next})
		stage = u.Stage
		fields.NextAction = &u.NextAction
	}
	fields.Stage = string(stage)
	return fields, nil
}

func (s *seeder) seedPipeline(ctx context.Context, f *File) error {
	for i, e := range f.Pipeline {
		fields, err := s.entryFields(pipeline.KindRelationship, "pipeline", i, e)
		if err != nil {
			return err
		}
		if _, err := s.store.CreatePipelineEntry(ctx, fields); err != nil {
			if s.skip(err, "pipeline", i) {
				continue
			}
			return fmt.Errorf("pipeline[%d]: %w", i, err)
		}
		s.summary.Pipeline++
	}
	return nil
}

func (s *seeder) seedCTOClub(ctx context.Context, f *File) error {
	for i, e := range f.CTOClub {
		fields, err := s.entryFields(pipeline.KindCTO, "cto_club", i, e)
		if err != nil {
			return err
		}
		if _, err := s.store.CreateCTOEntry(ctx, fields); err != nil {
			if s.skip(err, "cto_club", i) {
				continue
			}
			return fmt.Errorf("cto_club[%d]: %w", i, err)
		}
		s.summary.CTOClub++
	}
	return nil
}

func (s *seeder) seedVIPs(ctx context.Context, f *File) error {
	for i, v := range f.VIPs {
		id, err := s.contactID("vips", i, v.ContactEmail)
		if err != nil {
			return err
		}
		in := types.VIPInput{
			ContactID:          id,
			Tier:               v.Tier,
			Owner:              v.Owner,
			TouchFrequencyDays: v.TouchFrequencyDays,
			LastTouchAt:        v.LastTouchAt,
			Notes:              v.Notes,
		}
		if err := in.Validate(); err != nil {
			return fmt.Errorf("vips[%d]: %w", i, err)
		}
		if _, err := s.store.CreateVIP(ctx, &in); err != nil {
			if s.skip(err, "vips", i) {
				continue
			}
			return fmt.Errorf("vips[%d]: %w", i, err)
		}
		s.summary.VIPs++
	}
	return nil
}

func (s *seeder) seedProjects(ctx context.Context, f *File) error {
	for i := range f.Projects {
		p := f.Projects[i]
		in := p.ProjectInput
		if err := in.Validate(); err != nil {
			return fmt.Errorf("projects[%d]: %w", i, err)
		}
		created, err := s.store.CreateProject(ctx, &in)
		if err != nil {
			return fmt.Errorf("projects[%d]: %w", i, err)
		}
		s.summary.Projects++

		for _, t := range p.Tasks {
			task := types.TaskInput{
				Title:    t.Title,
				Status:   t.Status,
				Assignee: t.Assignee,
				DueDate:  t.DueDate,
				Notes:    t.Notes,
			}
			if t.ContactEmail != "" {
				id, err := s.contactID("projects", i, t.ContactEmail)
				if err != nil {
					return err
				}
				task.ContactID = &id
			}
			if err := task.Validate(); err != nil {
				return fmt.Errorf("projects[%d] task %q: %w", i, t.Title, err)
			}
			if _, err := s.store.CreateTask(ctx, created.ID, &task); err != nil {
				return fmt.Errorf("projects[%d] task %q: %w", i, t.Title, err)
			}
			s.summary.Tasks++
		}
	}
	return nil
}
