// Package search ranks contacts, events and pipeline items against a free-text
// query for the global search dialog.
package search

import (
	"strings"
)

// Field weights for contacts
const (
	contactNameWeight    = 100
	contactEmailWeight   = 80
	contactCompanyWeight = 60
	contactTitleWeight   = 40
	contactTypeWeight    = 30
	contactNotesWeight   = 20
)

// Field weights for events
const (
	eventNameWeight        = 100
	eventTypeWeight        = 80
	eventLocationWeight    = 60
	eventDescriptionWeight = 40
	eventStatusWeight      = 30
)

// Field weights for pipeline items
const (
	pipelineContactWeight    = 80
	pipelineStageWeight      = 60
	pipelineNextActionWeight = 50
	pipelineCompanyWeight    = 40
)

// Field is one searchable text value and the points it contributes on a match.
type Field struct {
	Value  string
	Weight int
}

// Searchable is a record the aggregator can score and turn into a result.
type Searchable interface {
	SearchableFields() []Field
	Result(relevance int) Result
}

// Score returns the summed weight of every field of item containing query.
// query must already be lowercased. Empty fields never match.
func Score(item Searchable, query string) int {
	if query == "" {
		return 0
	}
	score := 0
	for _, f := range item.SearchableFields() {
		if f.Value == "" || f.Weight <= 0 {
			continue
		}
		if strings.Contains(strings.ToLower(f.Value), query) {
			score += f.Weight
		}
	}
	return score
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
