// Package types provides the record and request types shared by the Rolodex
// storage, search and HTTP layers.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UnnamedContact is shown for contacts with neither a name nor an email.
const UnnamedContact = "Unnamed Contact"

// Contact types offered by the contact form
const (
	ContactTypeProspect = "prospect"
	ContactTypeClient   = "client"
	ContactTypePartner  = "partner"
	ContactTypeInvestor = "investor"
	ContactTypeVendor   = "vendor"
	ContactTypeOther    = "other"
)

// Contact represents a person in the Rolodex
type Contact struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       *string   `json:"email,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Company     *string   `json:"company,omitempty"`
	JobTitle    *string   `json:"job_title,omitempty"`
	ContactType *string   `json:"contact_type,omitempty"`
	LinkedInURL *string   `json:"linkedin_url,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DisplayName returns the name shown for the contact everywhere in the tool.
func (c *Contact) DisplayName() string {
	return DisplayName(c.FirstName, c.LastName, c.Email)
}

// DisplayName formats a contact name: the trimmed full name, else the local part
// of the email address, else UnnamedContact.
func DisplayName(firstName, lastName string, email *string) string {
	full := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	if full != "" {
		return full
	}
	if email != nil {
		local, _, _ := strings.Cut(strings.TrimSpace(*email), "@")
		if local != "" {
			return local
		}
	}
	return UnnamedContact
}

// ContactInput is the create/replace payload for a contact.
type ContactInput struct {
	FirstName   string  `json:"first_name" validate:"required_without=Email,max=100"`
	LastName    string  `json:"last_name" validate:"max=100"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Company     *string `json:"company,omitempty" validate:"omitempty,max=200"`
	JobTitle    *string `json:"job_title,omitempty" validate:"omitempty,max=200"`
	ContactType *string `json:"contact_type,omitempty" validate:"omitempty,oneof=prospect client partner investor vendor other"`
	LinkedInURL *string `json:"linkedin_url,omitempty" validate:"omitempty,url"`
	Notes       *string `json:"notes,omitempty"`
}

// Validate validates the ContactInput using the validator.
func (in *ContactInput) Validate() error {
	return validate.Struct(in)
}

// Normalize trims string fields and turns blank optional fields into nil.
func (in *ContactInput) Normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = blankToNil(in.Email)
	if in.Email != nil {
		lower := strings.ToLower(*in.Email)
		in.Email = &lower
	}
	in.Phone = blankToNil(in.Phone)
	in.Company = blankToNil(in.Company)
	in.JobTitle = blankToNil(in.JobTitle)
	in.ContactType = blankToNil(in.ContactType)
	in.LinkedInURL = blankToNil(in.LinkedInURL)
	in.Notes = blankToNil(in.Notes)
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
