package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PipelineEntry is a relationship pipeline record for one contact
type PipelineEntry struct {
	ID             uuid.UUID  `json:"id"`
	ContactID      uuid.UUID  `json:"contact_id"`
	Stage          string     `json:"stage"`
	LastAction     *string    `json:"last_action,omitempty"`
	LastActionDate *time.Time `json:"last_action_date,omitempty"`
	NextAction     *string    `json:"next_action,omitempty"`
	NextActionDate *time.Time `json:"next_action_date,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ContactSummary is the subset of a contact joined onto pipeline rows
type ContactSummary struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     *string   `json:"email,omitempty"`
	Company   *string   `json:"company,omitempty"`
	JobTitle  *string   `json:"job_title,omitempty"`
}

// DisplayName returns the contact's formatted name.
func (c *ContactSummary) DisplayName() string {
	return DisplayName(c.FirstName, c.LastName, c.Email)
}

// PipelineItem is a pipeline entry joined with its contact
type PipelineItem struct {
	PipelineEntry
	Contact ContactSummary `json:"contact"`
}

// PipelineEntryInput is the create/replace payload for a relationship pipeline entry.
type PipelineEntryInput struct {
	ContactID      uuid.UUID  `json:"contact_id" validate:"required"`
	Stage          string     `json:"stage,omitempty" validate:"omitempty,relationship_stage"`
	LastAction     *string    `json:"last_action,omitempty" validate:"omitempty,max=200"`
	LastActionDate *time.Time `json:"last_action_date,omitempty"`
	NextAction     *string    `json:"next_action,omitempty" validate:"omitempty,max=200"`
	NextActionDate *time.Time `json:"next_action_date,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
}

// Validate validates the PipelineEntryInput using the validator.
func (in *PipelineEntryInput) Validate() error {
	return validate.Struct(in)
}

// CTOEntry is a CTO club recruitment record for one contact
type CTOEntry struct {
	ID             uuid.UUID  `json:"id"`
	ContactID      uuid.UUID  `json:"contact_id"`
	Status         string     `json:"status"`
	LastAction     *string    `json:"last_action,omitempty"`
	LastActionDate *time.Time `json:"last_action_date,omitempty"`
	NextAction     *string    `json:"next_action,omitempty"`
	NextActionDate *time.Time `json:"next_action_date,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CTOItem is a CTO club entry joined with its contact
type CTOItem struct {
	CTOEntry
	Contact ContactSummary `json:"contact"`
}

// CTOEntryInput is the create/replace payload for a CTO club entry.
type CTOEntryInput struct {
	ContactID      uuid.UUID  `json:"contact_id" validate:"required"`
	Status         string     `json:"status,omitempty" validate:"omitempty,cto_status"`
	LastAction     *string    `json:"last_action,omitempty" validate:"omitempty,max=200"`
	LastActionDate *time.Time `json:"last_action_date,omitempty"`
	NextAction     *string    `json:"next_action,omitempty" validate:"omitempty,max=200"`
	NextActionDate *time.Time `json:"next_action_date,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
}

// Validate validates the CTOEntryInput using the validator.
func (in *CTOEntryInput) Validate() error {
	return validate.Struct(in)
}

// NextActionRequest records a newly chosen next action on a pipeline or CTO entry.
// The previous next action becomes the last action unless LastAction is given.
type NextActionRequest struct {
	NextAction     string     `json:"next_action" validate:"required,max=200"`
	NextActionDate *time.Time `json:"next_action_date,omitempty"`
	LastAction     *string    `json:"last_action,omitempty" validate:"omitempty,max=200"`
	Notes          *string    `json:"notes,omitempty"`
}

// Validate validates the NextActionRequest using the validator.
func (r *NextActionRequest) Validate() error {
	r.NextAction = strings.TrimSpace(r.NextAction)
	return validate.Struct(r)
}
