package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/rolodex/internal/types"
)

// -----------------------------------------------------------------------------
// Contact Methods
// -----------------------------------------------------------------------------

const contactColumns = `id, first_name, last_name, email, phone, company, job_title,
	contact_type, linkedin_url, notes, created_at, updated_at`

func scanContact(row pgx.Row) (*types.Contact, error) {
	var c types.Contact
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Company, &c.JobTitle,
		&c.ContactType, &c.LinkedInURL, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ContactFilters holds optional filters for listing contacts
type ContactFilters struct {
	Query       string // ILIKE across name, email and company
	ContactType string
	Company     string
	Limit       int
	Offset      int
}

// CreateContact inserts a contact and returns the stored record
func (db *DB) CreateContact(ctx context.Context, in *types.ContactInput) (*types.Contact, error) {
	c, err := scanContact(db.pool.QueryRow(ctx,
		`INSERT INTO contacts (first_name, last_name, email, phone, company, job_title,
		                       contact_type, linkedin_url, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+contactColumns,
		in.FirstName, in.LastName, in.Email, in.Phone, in.Company, in.JobTitle,
		in.ContactType, in.LinkedInURL, in.Notes,
	))
	if err != nil {
		return nil, classify(err, "contact", "failed to create contact")
	}
	return c, nil
}

// GetContact retrieves a contact by ID. Returns nil, nil when not found.
func (db *DB) GetContact(ctx context.Context, id uuid.UUID) (*types.Contact, error) {
	c, err := scanContact(db.pool.QueryRow(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return c, nil
}

// GetContactByEmail retrieves a contact by email (case-insensitive)
func (db *DB) GetContactByEmail(ctx context.Context, email string) (*types.Contact, error) {
	c, err := scanContact(db.pool.QueryRow(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE lower(email) = lower($1)`,
		strings.TrimSpace(email)))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contact by email: %w", err)
	}
	return c, nil
}

// ListContacts retrieves contacts with optional filters, ordered by name
func (db *DB) ListContacts(ctx context.Context, filters ContactFilters) ([]types.Contact, error) {
	query, args := buildContactListQuery(filters)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	contacts := []types.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

func buildContactListQuery(filters ContactFilters) (string, []any) {
	w := newWhere()
	if q := strings.TrimSpace(filters.Query); q != "" {
		w.add(`(first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR company ILIKE ?)`, "%"+q+"%")
	}
	if filters.ContactType != "" {
		w.add(`contact_type = ?`, filters.ContactType)
	}
	if filters.Company != "" {
		w.add(`company ILIKE ?`, "%"+filters.Company+"%")
	}
	query := `SELECT ` + contactColumns + ` FROM contacts` + w.sql +
		` ORDER BY last_name, first_name, created_at, id` + w.page(filters.Limit, filters.Offset)
	return query, w.args
}

// UpdateContact replaces a contact's fields
func (db *DB) UpdateContact(ctx context.Context, id uuid.UUID, in *types.ContactInput) (*types.Contact, error) {
	c, err := scanContact(db.pool.QueryRow(ctx,
		`UPDATE contacts SET first_name = $2, last_name = $3, email = $4, phone = $5, company = $6,
		        job_title = $7, contact_type = $8, linkedin_url = $9, notes = $10, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+contactColumns,
		id, in.FirstName, in.LastName, in.Email, in.Phone, in.Company, in.JobTitle,
		in.ContactType, in.LinkedInURL, in.Notes,
	))
	if err != nil {
		if isNoRows(err) {
			return nil, &NotFoundError{Entity: "contact", ID: id}
		}
		return nil, classify(err, "contact", "failed to update contact")
	}
	return c, nil
}

// UpsertContactByEmail inserts a contact or, when the email already exists,
// fills in the fields the import provides. Returns the record and whether it was created.
func (db *DB) UpsertContactByEmail(ctx context.Context, in *types.ContactInput) (*types.Contact, bool, error) {
	if in.Email == nil {
		c, err := db.CreateContact(ctx, in)
		return c, err == nil, err
	}

	var created bool
	var c types.Contact
	err := db.pool.QueryRow(ctx,
		`INSERT INTO contacts (first_name, last_name, email, phone, company, job_title,
		                       contact_type, linkedin_url, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (email) DO UPDATE SET
		     first_name   = COALESCE(NULLIF(EXCLUDED.first_name, ''), contacts.first_name),
		     last_name    = COALESCE(NULLIF(EXCLUDED.last_name, ''), contacts.last_name),
		     phone        = COALESCE(EXCLUDED.phone, contacts.phone),
		     company      = COALESCE(EXCLUDED.company, contacts.company),
		     job_title    = COALESCE(EXCLUDED.job_title, contacts.job_title),
		     contact_type = COALESCE(EXCLUDED.contact_type, contacts.contact_type),
		     linkedin_url = COALESCE(EXCLUDED.linkedin_url, contacts.linkedin_url),
		     notes        = COALESCE(EXCLUDED.notes, contacts.notes),
		     updated_at   = NOW()
		 RETURNING `+contactColumns+`, (xmax = 0) AS inserted`,
		in.FirstName, in.LastName, in.Email, in.Phone, in.Company, in.JobTitle,
		in.ContactType, in.LinkedInURL, in.Notes,
	).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Company, &c.JobTitle,
		&c.ContactType, &c.LinkedInURL, &c.Notes, &c.CreatedAt, &c.UpdatedAt, &created)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert contact: %w", err)
	}
	return &c, created, nil
}

// DeleteContact deletes a contact and its pipeline, VIP and attendee rows (via cascade)
func (db *DB) DeleteContact(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &NotFoundError{Entity: "contact", ID: id}
	}
	return nil
}
