package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/rolodex/internal/db"
	"github.com/jonathan/rolodex/internal/types"
	"golang.org/x/sync/errgroup"
)

// Source lists the records global search runs over. *db.DB implements it.
type Source interface {
	ListContacts(ctx context.Context, filters db.ContactFilters) ([]types.Contact, error)
	ListEvents(ctx context.Context, filters db.EventFilters) ([]types.Event, error)
	ListPipelineItems(ctx context.Context, filters db.PipelineFilters) ([]types.PipelineItem, error)
}

// Global loads every contact, event and relationship pipeline item from src,
// pageSize rows per query with the three collections fetched concurrently, and
// ranks them against query. Short queries return before touching src.
func Global(ctx context.Context, src Source, query string, pageSize int) ([]Result, error) {
	if len([]rune(strings.TrimSpace(query))) < MinQueryLength {
		return []Result{}, nil
	}

	var (
		contacts []types.Contact
		events   []types.Event
		items    []types.PipelineItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contacts, err = db.CollectPages(gctx, pageSize, func(ctx context.Context, limit, offset int) ([]types.Contact, error) {
			return src.ListContacts(ctx, db.ContactFilters{Limit: limit, Offset: offset})
		})
		if err != nil {
			return fmt.Errorf("failed to load contacts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		events, err = db.CollectPages(gctx, pageSize, func(ctx context.Context, limit, offset int) ([]types.Event, error) {
			return src.ListEvents(ctx, db.EventFilters{Limit: limit, Offset: offset})
		})
		if err != nil {
			return fmt.Errorf("failed to load events: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		items, err = db.CollectPages(gctx, pageSize, func(ctx context.Context, limit, offset int) ([]types.PipelineItem, error) {
			return src.ListPipelineItems(ctx, db.PipelineFilters{Limit: limit, Offset: offset})
		})
		if err != nil {
			return fmt.Errorf("failed to load pipeline items: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Search(query, contacts, events, items), nil
}
