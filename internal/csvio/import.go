package csvio

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/rolodex/internal/types"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds concurrent upserts during an import.
const DefaultWorkers = 4

// Upserter stores an imported contact, matching existing contacts by email.
type Upserter interface {
	UpsertContactByEmail(ctx context.Context, in *types.ContactInput) (*types.Contact, bool, error)
}

// Result summarizes an import.
type Result struct {
	Imported int        `json:"imported"`
	Created  int        `json:"created"`
	Updated  int        `json:"updated"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors"`
}

// Import parses r and upserts every valid row. Rows sharing an email are
// applied in file order by one worker; distinct emails run concurrently.
// A failed upsert skips the row; only context cancellation aborts the import.
func Import(ctx context.Context, r io.Reader, store Upserter, workers int) (*Result, error) {
	rows, skipped, err := ParseContacts(r)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}

	res := &Result{Errors: skipped}
	if res.Errors == nil {
		res.Errors = []RowError{}
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, group := range groupByEmail(rows) {
		g.Go(func() error {
			for _, row := range group {
				_, created, err := store.UpsertContactByEmail(gctx, &row.Input)
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}

				mu.Lock()
				switch {
				case err != nil:
					res.Errors = append(res.Errors, RowError{Line: row.Line, Reason: err.Error()})
				case created:
					res.Created++
				default:
					res.Updated++
				}
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.Imported = res.Created + res.Updated
	res.Skipped = len(res.Errors)
	sort.Slice(res.Errors, func(i, j int) bool { return res.Errors[i].Line < res.Errors[j].Line })
	return res, nil
}

// groupByEmail buckets rows by lowercased email in first-seen order. Rows
// without an email each form their own group.
func groupByEmail(rows []Row) [][]Row {
	var groups [][]Row
	byEmail := make(map[string]int)
	for _, row := range rows {
		if row.Input.Email == nil {
			groups = append(groups, []Row{row})
			continue
		}
		key := strings.ToLower(*row.Input.Email)
		if i, ok := byEmail[key]; ok {
			groups[i] = append(groups[i], row)
			continue
		}
		byEmail[key] = len(groups)
		groups = append(groups, []Row{row})
	}
	return groups
}
