package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/rolodex/internal/types"
)

// -----------------------------------------------------------------------------
// VIP Methods
// -----------------------------------------------------------------------------

const vipSelect = `SELECT v.id, v.contact_id, v.tier, v.owner, v.touch_frequency_days, v.last_touch_at,
		v.notes, v.created_at, v.updated_at,
		c.id, c.first_name, c.last_name, c.email, c.company, c.job_title
	FROM vips v
	JOIN contacts c ON c.id = v.contact_id`

func scanVIP(row pgx.Row) (*types.VIP, error) {
	var v types.VIP
	c := &v.Contact
	err := row.Scan(&v.ID, &v.ContactID, &v.Tier, &v.Owner, &v.TouchFrequencyDays, &v.LastTouchAt,
		&v.Notes, &v.CreatedAt, &v.UpdatedAt,
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Company, &c.JobTitle)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// VIPFilters holds optional filters for listing VIPs
type VIPFilters struct {
	Tier      string
	Owner     string
	OverdueAt *time.Time // next touch due on or before
	Limit     int
	Offset    int
}

func touchFrequency(days int) int {
	if days <= 0 {
		return types.DefaultTouchFrequencyDays
	}
	return days
}

// CreateVIP marks a contact as a VIP and returns the record with its contact
func (db *DB) CreateVIP(ctx context.Context, in *types.VIPInput) (*types.VIP, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO vips (contact_id, tier, owner, touch_frequency_days, last_touch_at, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		in.ContactID, in.Tier, in.Owner, touchFrequency(in.TouchFrequencyDays), in.LastTouchAt, in.Notes,
	).Scan(&id)
	if err != nil {
		return nil, classify(err, "vip", "failed to create vip")
	}
	return db.GetVIP(ctx, id)
}

// GetVIP retrieves a VIP by ID. Returns nil, nil when not found.
func (db *DB) GetVIP(ctx context.Context, id uuid.UUID) (*types.VIP, error) {
	v, err := scanVIP(db.pool.QueryRow(ctx, vipSelect+` WHERE v.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vip: %w", err)
	}
	return v, nil
}

// ListVIPs retrieves VIPs, least recently touched first
func (db *DB) ListVIPs(ctx context.Context, filters VIPFilters) ([]types.VIP, error) {
	query, args := buildVIPListQuery(filters)
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vips: %w", err)
	}
	defer rows.Close()

	vips := []types.VIP{}
	for rows.Next() {
		v, err := scanVIP(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vip: %w", err)
		}
		vips = append(vips, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list vips: %w", err)
	}
	return vips, nil
}

// overdueCond matches VIPs never touched or whose last touch plus cadence has passed.
var overdueCond = fmt.Sprintf(`(v.last_touch_at IS NULL OR v.last_touch_at + make_interval(days =>
		CASE WHEN v.touch_frequency_days > 0 THEN v.touch_frequency_days ELSE %d END) <= ?)`,
	types.DefaultTouchFrequencyDays)

func buildVIPListQuery(filters VIPFilters) (string, []any) {
	w := newWhere()
	if filters.Tier != "" {
		w.add(`v.tier = ?`, filters.Tier)
	}
	if filters.Owner != "" {
		w.add(`v.owner = ?`, filters.Owner)
	}
	if filters.OverdueAt != nil {
		w.add(overdueCond, *filters.OverdueAt)
	}
	query := vipSelect + w.sql + ` ORDER BY v.last_touch_at ASC NULLS FIRST, c.last_name, v.id` +
		w.page(filters.Limit, filters.Offset)
	return query, w.args
}

// UpdateVIP replaces a VIP's fields
func (db *DB) UpdateVIP(ctx context.Context, id uuid.UUID, in *types.VIPInput) (*types.VIP, error) {
	result, err := db.pool.Exec(ctx,
		`UPDATE vips SET contact_id = $2, tier = $3, owner = $4, touch_frequency_days = $5,
		        last_touch_at = $6, notes = $7, updated_at = NOW()
		 WHERE id = $1`,
		id, in.ContactID, in.Tier, in.Owner, touchFrequency(in.TouchFrequencyDays), in.LastTouchAt, in.Notes,
	)
	if err != nil {
		return nil, classify(err, "vip", "failed to update vip")
	}
	if result.RowsAffected() == 0 {
		return nil, &NotFoundError{Entity: "vip", ID: id}
	}
	return db.GetVIP(ctx, id)
}

// TouchVIP records a touch at the given time
func (db *DB) TouchVIP(ctx context.Context, id uuid.UUID, at time.Time) (*types.VIP, error) {
	result, err := db.pool.Exec(ctx,
		`UPDATE vips SET last_touch_at = $2, updated_at = NOW() WHERE id = $1`, id, at)
	if err != nil {
		return nil, fmt.Errorf("failed to touch vip: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, &NotFoundError{Entity: "vip", ID: id}
	}
	return db.GetVIP(ctx, id)
}

// DeleteVIP removes a contact's VIP designation
func (db *DB) DeleteVIP(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM vips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vip: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &NotFoundError{Entity: "vip", ID: id}
	}
	return nil
}
