package search

import (
	"sort"
	"strings"

	"github.com/jonathan/rolodex/internal/types"
)

const (
	// MinQueryLength is the shortest trimmed query that triggers a search.
	MinQueryLength = 2
	// MaxResults caps the ranked result list.
	MaxResults = 10
)

// Search scores every contact, event and pipeline item against query and
// returns at most MaxResults results ordered by descending relevance. Equal
// scores keep input order: contacts, then events, then pipeline items.
//
// Queries shorter than MinQueryLength after trimming return an empty list
// without scoring anything.
func Search(query string, contacts []types.Contact, events []types.Event, items []types.PipelineItem) []Result {
	candidates := make([]Searchable, 0, len(contacts)+len(events)+len(items))
	for i := range contacts {
		candidates = append(candidates, Contact{&contacts[i]})
	}
	for i := range events {
		candidates = append(candidates, Event{&events[i]})
	}
	for i := range items {
		candidates = append(candidates, PipelineItem{&items[i]})
	}
	return Rank(query, candidates)
}

// Rank is Search over any Searchable records.
func Rank(query string, candidates []Searchable) []Result {
	q := strings.TrimSpace(query)
	if len([]rune(q)) < MinQueryLength {
		return []Result{}
	}
	q = strings.ToLower(q)

	results := make([]Result, 0)
	for _, c := range candidates {
		if score := Score(c, q); score > 0 {
			results = append(results, c.Result(score))
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})

	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results
}
