package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event statuses
const (
	EventStatusPlanned   = "planned"
	EventStatusConfirmed = "confirmed"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

// Attendee statuses
const (
	AttendeeStatusInvited    = "invited"
	AttendeeStatusRegistered = "registered"
	AttendeeStatusAttended   = "attended"
	AttendeeStatusNoShow     = "no_show"
)

// Event represents an event the team hosts or attends
type Event struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	EventType   *string    `json:"event_type,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// EventInput is the create/replace payload for an event.
type EventInput struct {
	Name        string     `json:"name" validate:"required,max=200"`
	EventType   *string    `json:"event_type,omitempty" validate:"omitempty,max=100"`
	Location    *string    `json:"location,omitempty" validate:"omitempty,max=200"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=planned confirmed completed cancelled"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty" validate:"omitempty,gtefield=StartsAt"`
}

// Validate validates the EventInput using the validator.
func (in *EventInput) Validate() error {
	return validate.Struct(in)
}

// Normalize trims string fields and turns blank optional fields into nil.
func (in *EventInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.EventType = blankToNil(in.EventType)
	in.Location = blankToNil(in.Location)
	in.Description = blankToNil(in.Description)
	in.Status = blankToNil(in.Status)
	if in.Status == nil {
		in.Status = StringPtr(EventStatusPlanned)
	}
}

// Attendee links a contact to an event
type Attendee struct {
	EventID   uuid.UUID `json:"event_id"`
	ContactID uuid.UUID `json:"contact_id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Company   *string   `json:"company,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// AttendeeInput adds a contact to an event.
type AttendeeInput struct {
	ContactID uuid.UUID `json:"contact_id" validate:"required"`
	Status    string    `json:"status,omitempty" validate:"omitempty,oneof=invited registered attended no_show"`
}

// Validate validates the AttendeeInput using the validator.
func (in *AttendeeInput) Validate() error {
	return validate.Struct(in)
}
