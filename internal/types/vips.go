package types

import (
	"time"

	"github.com/google/uuid"
)

// VIP tiers
const (
	VIPTierPlatinum = "platinum"
	VIPTierGold     = "gold"
	VIPTierSilver   = "silver"
)

// DefaultTouchFrequencyDays applies when a VIP has no explicit cadence.
const DefaultTouchFrequencyDays = 30

// VIP tracks a high-value relationship and how often it should be touched
type VIP struct {
	ID                 uuid.UUID      `json:"id"`
	ContactID          uuid.UUID      `json:"contact_id"`
	Tier               string         `json:"tier"`
	Owner              *string        `json:"owner,omitempty"`
	TouchFrequencyDays int            `json:"touch_frequency_days"`
	LastTouchAt        *time.Time     `json:"last_touch_at,omitempty"`
	Notes              *string        `json:"notes,omitempty"`
	Contact            ContactSummary `json:"contact"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// NextTouchDue returns when the VIP should next be contacted. A VIP never
// touched is due immediately (the zero time).
func (v *VIP) NextTouchDue() time.Time {
	if v.LastTouchAt == nil {
		return time.Time{}
	}
	days := v.TouchFrequencyDays
	if days <= 0 {
		days = DefaultTouchFrequencyDays
	}
	return v.LastTouchAt.AddDate(0, 0, days)
}

// IsOverdue returns true if the next touch is due before now.
func (v *VIP) IsOverdue(now time.Time) bool {
	return !v.NextTouchDue().After(now)
}

// VIPInput is the create/replace payload for a VIP.
type VIPInput struct {
	ContactID          uuid.UUID  `json:"contact_id" validate:"required"`
	Tier               string     `json:"tier" validate:"required,oneof=platinum gold silver"`
	Owner              *string    `json:"owner,omitempty" validate:"omitempty,max=100"`
	TouchFrequencyDays int        `json:"touch_frequency_days,omitempty" validate:"omitempty,min=1,max=365"`
	LastTouchAt        *time.Time `json:"last_touch_at,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
}

// Validate validates the VIPInput using the validator.
func (in *VIPInput) Validate() error {
	return validate.Struct(in)
}
