package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/rolodex/internal/pipeline"
	"github.com/jonathan/rolodex/internal/types"
)

// -----------------------------------------------------------------------------
// Pipeline Methods
//
// The relationship pipeline and the CTO club pipeline share one row shape; they
// differ only in table and stage column. Table and column names below are
// constants, never user input.
// -----------------------------------------------------------------------------

type entryTable struct {
	kind     pipeline.Kind
	name     string
	stageCol string
	entity   string
}

var (
	relationshipTable = entryTable{kind: pipeline.KindRelationship, name: "pipeline_entries", stageCol: "stage", entity: "pipeline entry"}
	ctoTable          = entryTable{kind: pipeline.KindCTO, name: "cto_pipeline_entries", stageCol: "status", entity: "cto club entry"}
)

func (t entryTable) columns(prefix string) string {
	return fmt.Sprintf(`%[1]sid, %[1]scontact_id, %[1]s%[2]s, %[1]slast_action, %[1]slast_action_date,
		%[1]snext_action, %[1]snext_action_date, %[1]snotes, %[1]screated_at, %[1]supdated_at`, prefix, t.stageCol)
}

func (t entryTable) itemQuery() string {
	return `SELECT ` + t.columns("p.") + `,
		c.id, c.first_name, c.last_name, c.email, c.company, c.job_title
		FROM ` + t.name + ` p
		JOIN contacts c ON c.id = p.contact_id`
}

func scanEntry(row pgx.Row) (*types.PipelineEntry, error) {
	var e types.PipelineEntry
	err := row.Scan(&e.ID, &e.ContactID, &e.Stage, &e.LastAction, &e.LastActionDate,
		&e.NextAction, &e.NextActionDate, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func scanItem(row pgx.Row) (*types.PipelineItem, error) {
	var it types.PipelineItem
	e := &it.PipelineEntry
	c := &it.Contact
	err := row.Scan(&e.ID, &e.ContactID, &e.Stage, &e.LastAction, &e.LastActionDate,
		&e.NextAction, &e.NextActionDate, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Company, &c.JobTitle)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// EntryFields are the writable columns of a pipeline or CTO entry
type EntryFields struct {
	ContactID      uuid.UUID
	Stage          string
	LastAction     *string
	LastActionDate *time.Time
	NextAction     *string
	NextActionDate *time.Time
	Notes          *string
}

// PipelineFields maps a relationship pipeline payload to entry columns
func PipelineFields(in *types.PipelineEntryInput) EntryFields {
	return EntryFields{
		ContactID:      in.ContactID,
		Stage:          in.Stage,
		LastAction:     in.LastAction,
		LastActionDate: in.LastActionDate,
		NextAction:     in.NextAction,
		NextActionDate: in.NextActionDate,
		Notes:          in.Notes,
	}
}

// CTOFields maps a CTO club payload to entry columns
func CTOFields(in *types.CTOEntryInput) EntryFields {
	return EntryFields{
		ContactID:      in.ContactID,
		Stage:          in.Status,
		LastAction:     in.LastAction,
		LastActionDate: in.LastActionDate,
		NextAction:     in.NextAction,
		NextActionDate: in.NextActionDate,
		Notes:          in.Notes,
	}
}

// PipelineFilters holds optional filters for listing pipeline items
type PipelineFilters struct {
	Stage     string
	ContactID uuid.UUID
	DueBefore *time.Time // next action date on or before
	Limit     int
	Offset    int
}

func (db *DB) createEntry(ctx context.Context, t entryTable, f EntryFields) (*types.PipelineEntry, error) {
	stage := f.Stage
	if stage == "" {
		stage = string(pipeline.DefaultStage(t.kind))
	}
	e, err := scanEntry(db.pool.QueryRow(ctx,
		`INSERT INTO `+t.name+` (contact_id, `+t.stageCol+`, last_action, last_action_date,
		                         next_action, next_action_date, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+t.columns(""),
		f.ContactID, stage, f.LastAction, f.LastActionDate, f.NextAction, f.NextActionDate, f.Notes,
	))
	if err != nil {
		return nil, classify(err, t.entity, "failed to create "+t.entity)
	}
	return e, nil
}

func (db *DB) getItem(ctx context.Context, t entryTable, id uuid.UUID) (*types.PipelineItem, error) {
	it, err := scanItem(db.pool.QueryRow(ctx, t.itemQuery()+` WHERE p.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s: %w", t.entity, err)
	}
	return it, nil
}

func (db *DB) listItems(ctx context.Context, t entryTable, filters PipelineFilters) ([]types.PipelineItem, error) {
	w := newWhere()
	if filters.Stage != "" {
		w.add(`p.`+t.stageCol+` = ?`, filters.Stage)
	}
	if filters.ContactID != uuid.Nil {
		w.add(`p.contact_id = ?`, filters.ContactID)
	}
	if filters.DueBefore != nil {
		w.add(`p.next_action_date <= ?`, *filters.DueBefore)
	}
	page := w.page(filters.Limit, filters.Offset)

	rows, err := db.pool.Query(ctx,
		t.itemQuery()+w.sql+` ORDER BY p.next_action_date ASC NULLS LAST, p.updated_at DESC, p.id`+page,
		w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s items: %w", t.entity, err)
	}
	defer rows.Close()

	items := []types.PipelineItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", t.entity, err)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list %s items: %w", t.entity, err)
	}
	return items, nil
}

func (db *DB) updateEntry(ctx context.Context, t entryTable, id uuid.UUID, f EntryFields) (*types.PipelineEntry, error) {
	stage := f.Stage
	if stage == "" {
		stage = string(pipeline.DefaultStage(t.kind))
	}
	e, err := scanEntry(db.pool.QueryRow(ctx,
		`UPDATE `+t.name+` SET contact_id = $2, `+t.stageCol+` = $3, last_action = $4,
		        last_action_date = $5, next_action = $6, next_action_date = $7, notes = $8,
		        updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+t.columns(""),
		id, f.ContactID, stage, f.LastAction, f.LastActionDate, f.NextAction, f.NextActionDate, f.Notes,
	))
	if err != nil {
		if isNoRows(err) {
			return nil, &NotFoundError{Entity: t.entity, ID: id}
		}
		return nil, classify(err, t.entity, "failed to update "+t.entity)
	}
	return e, nil
}

// recordNextAction locks the entry, resolves its new stage from the chosen
// action and writes stage, last action, next action, date and notes in one
// statement.
func (db *DB) recordNextAction(ctx context.Context, t entryTable, id uuid.UUID, req *types.NextActionRequest) (*types.PipelineEntry, error) {
	var out *types.PipelineEntry
	err := pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		var current string
		err := tx.QueryRow(ctx,
			`SELECT `+t.stageCol+` FROM `+t.name+` WHERE id = $1 FOR UPDATE`, id,
		).Scan(&current)
		if err != nil {
			if isNoRows(err) {
				return &NotFoundError{Entity: t.entity, ID: id}
			}
			return fmt.Errorf("failed to lock %s: %w", t.entity, err)
		}

		u := pipeline.ApplyNextAction(t.kind, pipeline.Stage(current), pipeline.NextActionUpdate{
			LastAction:     req.LastAction,
			NextAction:     req.NextAction,
			NextActionDate: req.NextActionDate,
			Notes:          req.Notes,
		})

		out, err = scanEntry(tx.QueryRow(ctx,
			`UPDATE `+t.name+` SET `+t.stageCol+` = $2,
			        last_action = COALESCE($3, next_action),
			        last_action_date = CASE WHEN COALESCE($3, next_action) IS NULL
			                                THEN last_action_date ELSE NOW() END,
			        next_action = $4, next_action_date = $5,
			        notes = COALESCE($6, notes), updated_at = NOW()
			 WHERE id = $1
			 RETURNING `+t.columns(""),
			id, string(u.Stage), u.LastAction, u.NextAction, u.NextActionDate, u.Notes,
		))
		if err != nil {
			return fmt.Errorf("failed to record next action on %s: %w", t.entity, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (db *DB) deleteEntry(ctx context.Context, t entryTable, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM `+t.name+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", t.entity, err)
	}
	if result.RowsAffected() == 0 {
		return &NotFoundError{Entity: t.entity, ID: id}
	}
	return nil
}

// -----------------------------------------------------------------------------
// Relationship pipeline
// -----------------------------------------------------------------------------

// CreatePipelineEntry adds a contact to the relationship pipeline
func (db *DB) CreatePipelineEntry(ctx context.Context, f EntryFields) (*types.PipelineEntry, error) {
	return db.createEntry(ctx, relationshipTable, f)
}

// GetPipelineItem retrieves a relationship pipeline entry with its contact
func (db *DB) GetPipelineItem(ctx context.Context, id uuid.UUID) (*types.PipelineItem, error) {
	return db.getItem(ctx, relationshipTable, id)
}

// ListPipelineItems retrieves relationship pipeline entries joined with contacts
func (db *DB) ListPipelineItems(ctx context.Context, filters PipelineFilters) ([]types.PipelineItem, error) {
	return db.listItems(ctx, relationshipTable, filters)
}

// UpdatePipelineEntry replaces a relationship pipeline entry's fields
func (db *DB) UpdatePipelineEntry(ctx context.Context, id uuid.UUID, f EntryFields) (*types.PipelineEntry, error) {
	return db.updateEntry(ctx, relationshipTable, id, f)
}

// RecordPipelineNextAction applies a chosen next action to a relationship pipeline entry
func (db *DB) RecordPipelineNextAction(ctx context.Context, id uuid.UUID, req *types.NextActionRequest) (*types.PipelineEntry, error) {
	return db.recordNextAction(ctx, relationshipTable, id, req)
}

// DeletePipelineEntry removes a contact from the relationship pipeline
func (db *DB) DeletePipelineEntry(ctx context.Context, id uuid.UUID) error {
	return db.deleteEntry(ctx, relationshipTable, id)
}

// -----------------------------------------------------------------------------
// CTO club pipeline
// -----------------------------------------------------------------------------

func toCTOEntry(e *types.PipelineEntry) *types.CTOEntry {
	if e == nil {
		return nil
	}
	return &types.CTOEntry{
		ID:             e.ID,
		ContactID:      e.ContactID,
		Status:         e.Stage,
		LastAction:     e.LastAction,
		LastActionDate: e.LastActionDate,
		NextAction:     e.NextAction,
		NextActionDate: e.NextActionDate,
		Notes:          e.Notes,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func toCTOItem(it *types.PipelineItem) *types.CTOItem {
	if it == nil {
		return nil
	}
	return &types.CTOItem{CTOEntry: *toCTOEntry(&it.PipelineEntry), Contact: it.Contact}
}

// CreateCTOEntry adds a contact to the CTO club pipeline
func (db *DB) CreateCTOEntry(ctx context.Context, f EntryFields) (*types.CTOEntry, error) {
	e, err := db.createEntry(ctx, ctoTable, f)
	return toCTOEntry(e), err
}

// GetCTOItem retrieves a CTO club entry with its contact
func (db *DB) GetCTOItem(ctx context.Context, id uuid.UUID) (*types.CTOItem, error) {
	it, err := db.getItem(ctx, ctoTable, id)
	return toCTOItem(it), err
}

// ListCTOItems retrieves CTO club entries joined with contacts
func (db *DB) ListCTOItems(ctx context.Context, filters PipelineFilters) ([]types.CTOItem, error) {
	items, err := db.listItems(ctx, ctoTable, filters)
	if err != nil {
		return nil, err
	}
	out := make([]types.CTOItem, 0, len(items))
	for i := range items {
		out = append(out, *toCTOItem(&items[i]))
	}
	return out, nil
}

// UpdateCTOEntry replaces a CTO club entry's fields
func (db *DB) UpdateCTOEntry(ctx context.Context, id uuid.UUID, f EntryFields) (*types.CTOEntry, error) {
	e, err := db.updateEntry(ctx, ctoTable, id, f)
	return toCTOEntry(e), err
}

// RecordCTONextAction applies a chosen next action to a CTO club entry
func (db *DB) RecordCTONextAction(ctx context.Context, id uuid.UUID, req *types.NextActionRequest) (*types.CTOEntry, error) {
	e, err := db.recordNextAction(ctx, ctoTable, id, req)
	return toCTOEntry(e), err
}

// DeleteCTOEntry removes a contact from the CTO club pipeline
func (db *DB) DeleteCTOEntry(ctx context.Context, id uuid.UUID) error {
	return db.deleteEntry(ctx, ctoTable, id)
}
