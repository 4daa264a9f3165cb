package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/rolodex/internal/types"
)

// -----------------------------------------------------------------------------
// Event Methods
// -----------------------------------------------------------------------------

const eventColumns = `id, name, event_type, location, description, status, starts_at, ends_at,
	created_at, updated_at`

func scanEvent(row pgx.Row) (*types.Event, error) {
	var e types.Event
	err := row.Scan(&e.ID, &e.Name, &e.EventType, &e.Location, &e.Description, &e.Status,
		&e.StartsAt, &e.EndsAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// EventFilters holds optional filters for listing events
type EventFilters struct {
	Status    string
	EventType string
	Limit     int
	Offset    int
}

// CreateEvent inserts an event
func (db *DB) CreateEvent(ctx context.Context, in *types.EventInput) (*types.Event, error) {
	e, err := scanEvent(db.pool.QueryRow(ctx,
		`INSERT INTO events (name, event_type, location, description, status, starts_at, ends_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+eventColumns,
		in.Name, in.EventType, in.Location, in.Description, in.Status, in.StartsAt, in.EndsAt,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return e, nil
}

// GetEvent retrieves an event by ID. Returns nil, nil when not found.
func (db *DB) GetEvent(ctx context.Context, id uuid.UUID) (*types.Event, error) {
	e, err := scanEvent(db.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return e, nil
}

// ListEvents retrieves events, soonest first, with undated events last
func (db *DB) ListEvents(ctx context.Context, filters EventFilters) ([]types.Event, error) {
	w := newWhere()
	if filters.Status != "" {
		w.add(`status = ?`, filters.Status)
	}
	if filters.EventType != "" {
		w.add(`event_type = ?`, filters.EventType)
	}
	page := w.page(filters.Limit, filters.Offset)

	rows, err := db.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events`+w.sql+
			` ORDER BY starts_at ASC NULLS LAST, created_at DESC, id`+page,
		w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := []types.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// UpdateEvent replaces an event's fields
func (db *DB) UpdateEvent(ctx context.Context, id uuid.UUID, in *types.EventInput) (*types.Event, error) {
	e, err := scanEvent(db.pool.QueryRow(ctx,
		`UPDATE events SET name = $2, event_type = $3, location = $4, description = $5, status = $6,
		        starts_at = $7, ends_at = $8, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+eventColumns,
		id, in.Name, in.EventType, in.Location, in.Description, in.Status, in.StartsAt, in.EndsAt,
	))
	if err != nil {
		if isNoRows(err) {
			return nil, &NotFoundError{Entity: "event", ID: id}
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return e, nil
}

// DeleteEvent deletes an event and its attendee rows (via cascade)
func (db *DB) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &NotFoundError{Entity: "event", ID: id}
	}
	return nil
}

// -----------------------------------------------------------------------------
// Attendee Methods
// -----------------------------------------------------------------------------

// AddAttendee links a contact to an event, updating the status if already linked
func (db *DB) AddAttendee(ctx context.Context, eventID uuid.UUID, in *types.AttendeeInput) error {
	status := in.Status
	if status == "" {
		status = types.AttendeeStatusInvited
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO event_attendees (event_id, contact_id, status)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (event_id, contact_id) DO UPDATE SET status = $3`,
		eventID, in.ContactID, status,
	)
	if err != nil {
		return classify(err, "attendee", "failed to add attendee")
	}
	return nil
}

// RemoveAttendee unlinks a contact from an event
func (db *DB) RemoveAttendee(ctx context.Context, eventID, contactID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM event_attendees WHERE event_id = $1 AND contact_id = $2`,
		eventID, contactID)
	if err != nil {
		return fmt.Errorf("failed to remove attendee: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &NotFoundError{Entity: "attendee", ID: contactID}
	}
	return nil
}

// ListAttendees returns an event's attendees with their contact details
func (db *DB) ListAttendees(ctx context.Context, eventID uuid.UUID) ([]types.Attendee, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT a.event_id, a.contact_id, c.first_name, c.last_name, c.email, c.company,
		        a.status, a.created_at
		 FROM event_attendees a
		 JOIN contacts c ON c.id = a.contact_id
		 WHERE a.event_id = $1
		 ORDER BY c.last_name, c.first_name`,
		eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendees: %w", err)
	}
	defer rows.Close()

	attendees := []types.Attendee{}
	for rows.Next() {
		var a types.Attendee
		var first, last string
		if err := rows.Scan(&a.EventID, &a.ContactID, &first, &last, &a.Email, &a.Company,
			&a.Status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendee: %w", err)
		}
		a.Name = types.DisplayName(first, last, a.Email)
		attendees = append(attendees, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list attendees: %w", err)
	}
	return attendees, nil
}
