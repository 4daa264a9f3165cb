package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jonathan/rolodex/internal/pipeline"
	"github.com/jonathan/rolodex/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplacePlaceholder(t *testing.T) {
	assert.Equal(t, "status = $3", replacePlaceholder("status = ?", 3))
	assert.Equal(t, "(a ILIKE $1 OR b ILIKE $1)", replacePlaceholder("(a ILIKE ? OR b ILIKE ?)", 1))
	assert.Equal(t, "x = 1", replacePlaceholder("x = 1", 2))
}

func TestWhereClause(t *testing.T) {
	w := newWhere()
	assert.Equal(t, " WHERE 1=1", w.sql)
	assert.Empty(t, w.args)

	w.add("status = ?", "planned")
	w.add("event_type = ?", "dinner")
	limit := w.next(25)

	assert.Equal(t, " WHERE 1=1 AND status = $1 AND event_type = $2", w.sql)
	assert.Equal(t, "$3", limit)
	assert.Equal(t, []any{"planned", "dinner", 25}, w.args)
}

func TestBuildContactListQuery(t *testing.T) {
	t.Run("no filters uses default limit", func(t *testing.T) {
		query, args := buildContactListQuery(ContactFilters{})
		assert.Contains(t, query, "FROM contacts WHERE 1=1 ORDER BY")
		assert.True(t, strings.HasSuffix(query, "LIMIT $1"))
		assert.Equal(t, []any{DefaultListLimit}, args)
	})

	t.Run("query reuses one argument across columns", func(t *testing.T) {
		query, args := buildContactListQuery(ContactFilters{Query: "  acme ", Limit: 5})
		assert.Contains(t, query, "first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR company ILIKE $1")
		assert.Equal(t, []any{"%acme%", 5}, args)
	})

	t.Run("all filters", func(t *testing.T) {
		query, args := buildContactListQuery(ContactFilters{Query: "jo", ContactType: "client", Company: "Acme"})
		assert.Contains(t, query, "contact_type = $2")
		assert.Contains(t, query, "company ILIKE $3")
		assert.True(t, strings.HasSuffix(query, "LIMIT $4"))
		assert.Equal(t, []any{"%jo%", "client", "%Acme%", DefaultListLimit}, args)
	})
}

func TestWhereClause_Page(t *testing.T) {
	w := newWhere()
	w.add("status = ?", "planned")
	assert.Equal(t, " LIMIT $2", w.page(0, 0))
	assert.Equal(t, []any{"planned", DefaultListLimit}, w.args)

	w = newWhere()
	assert.Equal(t, " LIMIT $1 OFFSET $2", w.page(50, 100))
	assert.Equal(t, []any{50, 100}, w.args)
}

func TestBuildContactListQuery_Offset(t *testing.T) {
	query, args := buildContactListQuery(ContactFilters{ContactType: "client", Limit: 20, Offset: 40})
	assert.Contains(t, query, "ORDER BY last_name, first_name, created_at, id LIMIT $2 OFFSET $3")
	assert.Equal(t, []any{"client", 20, 40}, args)
}

func TestBuildVIPListQuery(t *testing.T) {
	t.Run("no filters", func(t *testing.T) {
		query, args := buildVIPListQuery(VIPFilters{})
		assert.NotContains(t, query, "make_interval")
		assert.True(t, strings.HasSuffix(query, "LIMIT $1"))
		assert.Equal(t, []any{DefaultListLimit}, args)
	})

	t.Run("overdue filter precedes the limit", func(t *testing.T) {
		now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
		query, args := buildVIPListQuery(VIPFilters{Tier: "gold", OverdueAt: &now, Limit: 10})
		assert.Contains(t, query, "v.tier = $1")
		assert.Contains(t, query, "v.last_touch_at IS NULL OR v.last_touch_at + make_interval(days =>")
		assert.Contains(t, query, "ELSE 30 END) <= $2")
		assert.True(t, strings.HasSuffix(query, "LIMIT $3"))
		assert.Equal(t, []any{"gold", now, 10}, args)
	})
}

func TestCollectPages(t *testing.T) {
	rows := make([]int, 7)
	for i := range rows {
		rows[i] = i
	}
	var offsets []int
	fetch := func(_ context.Context, limit, offset int) ([]int, error) {
		offsets = append(offsets, offset)
		return rows[min(offset, len(rows)):min(offset+limit, len(rows))], nil
	}

	got, err := CollectPages(context.Background(), 3, fetch)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
	assert.Equal(t, []int{0, 3, 6}, offsets)

	// An exact multiple of the page size needs one empty page to stop.
	offsets = nil
	rows = rows[:6]
	got, err = CollectPages(context.Background(), 3, fetch)
	require.NoError(t, err)
	assert.Len(t, got, 6)
	assert.Equal(t, []int{0, 3, 6}, offsets)
}

func TestCollectPages_Errors(t *testing.T) {
	boom := errors.New("boom")
	_, err := CollectPages(context.Background(), 10, func(context.Context, int, int) ([]string, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	_, err = CollectPages(ctx, 10, func(context.Context, int, int) ([]string, error) {
		called = true
		return nil, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestCollectPages_EmptyIsNonNil(t *testing.T) {
	got, err := CollectPages(context.Background(), 0, func(_ context.Context, limit, _ int) ([]string, error) {
		assert.Equal(t, DefaultListLimit, limit)
		return nil, nil
	})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListLimit(t *testing.T) {
	assert.Equal(t, DefaultListLimit, listLimit(0))
	assert.Equal(t, DefaultListLimit, listLimit(-3))
	assert.Equal(t, 7, listLimit(7))
}

func TestNotFoundError(t *testing.T) {
	id := uuid.New()
	err := fmt.Errorf("handler: %w", &NotFoundError{Entity: "contact", ID: id})

	assert.True(t, IsNotFound(err))
	assert.Equal(t, "handler: contact not found: "+id.String(), err.Error())
	assert.False(t, IsNotFound(errors.New("contact not found")))
	assert.False(t, IsNotFound(nil))
}

func TestEntryTables(t *testing.T) {
	assert.Equal(t, "pipeline_entries", relationshipTable.name)
	assert.Equal(t, "stage", relationshipTable.stageCol)
	assert.Equal(t, pipeline.KindRelationship, relationshipTable.kind)

	assert.Equal(t, "cto_pipeline_entries", ctoTable.name)
	assert.Equal(t, "status", ctoTable.stageCol)
	assert.Equal(t, pipeline.KindCTO, ctoTable.kind)
}

func TestEntryTableColumns(t *testing.T) {
	cols := ctoTable.columns("p.")
	assert.Contains(t, cols, "p.status")
	assert.Contains(t, cols, "p.next_action_date")
	assert.NotContains(t, cols, "p.stage")

	assert.Contains(t, relationshipTable.itemQuery(), "FROM pipeline_entries p")
}

func TestToCTOEntry(t *testing.T) {
	assert.Nil(t, toCTOEntry(nil))
	assert.Nil(t, toCTOItem(nil))

	next := "Send club invitation"
	id := uuid.New()
	out := toCTOEntry(&types.PipelineEntry{ID: id, Stage: "in progress", NextAction: &next})
	assert.Equal(t, id, out.ID)
	assert.Equal(t, "in progress", out.Status)
	assert.Equal(t, &next, out.NextAction)
}

func TestClassify(t *testing.T) {
	unique := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "pipeline_entries_contact_id_key"}
	err := classify(fmt.Errorf("insert: %w", unique), "pipeline entry", "failed to create pipeline entry")
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "pipeline entry", conflict.Entity)
	assert.Equal(t, "pipeline_entries_contact_id_key", conflict.Constraint)

	fk := &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "vips_contact_id_fkey"}
	var ref *ReferenceError
	require.ErrorAs(t, classify(fk, "vip", "failed to create vip"), &ref)

	plain := errors.New("connection reset")
	err = classify(plain, "vip", "failed to create vip")
	assert.ErrorIs(t, err, plain)
	assert.Equal(t, "failed to create vip: connection reset", err.Error())
}
