package search

import (
	"fmt"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/rolodex/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func janeDoe() types.Contact {
	return types.Contact{
		ID:        uuid.New(),
		FirstName: "Jane",
		LastName:  "Doe",
		Company:   strPtr("Acme"),
	}
}

func TestSearch_CompanyMatchOnly(t *testing.T) {
	jane := janeDoe()

	results := Search("acme", []types.Contact{jane}, nil, nil)

	require.Len(t, results, 1)
	assert.Equal(t, jane.ID.String(), results[0].ID)
	assert.Equal(t, TypeContact, results[0].Type)
	assert.Equal(t, "Jane Doe", results[0].Title)
	assert.Equal(t, 60, results[0].Relevance)
	assert.Equal(t, "/contacts/"+jane.ID.String(), results[0].URL)
}

func TestSearch_ShortQueriesReturnNothing(t *testing.T) {
	contacts := []types.Contact{janeDoe()}
	events := []types.Event{{ID: uuid.New(), Name: "x marks the spot"}}

	for _, q := range []string{"", "x", " x ", "   ", "\tA\n"} {
		t.Run(fmt.Sprintf("%q", q), func(t *testing.T) {
			results := Search(q, contacts, events, nil)
			assert.NotNil(t, results)
			assert.Empty(t, results)
		})
	}
}

func TestSearch_QueryIsTrimmedAndLowercased(t *testing.T) {
	results := Search("  ACME ", []types.Contact{janeDoe()}, nil, nil)
	require.Len(t, results, 1)
	assert.Equal(t, 60, results[0].Relevance)
}

func TestSearch_NoMatchesExcluded(t *testing.T) {
	results := Search("globex", []types.Contact{janeDoe()}, nil, nil)
	assert.Empty(t, results)
}

func TestSearch_RanksAcrossTypes(t *testing.T) {
	contact := types.Contact{ID: uuid.New(), FirstName: "Sam", LastName: "Summit", Notes: strPtr("met at summit")}
	event := types.Event{ID: uuid.New(), Name: "Dinner", Location: strPtr("Summit Hotel")}
	item := types.PipelineItem{
		PipelineEntry: types.PipelineEntry{ID: uuid.New(), Stage: "Initial Outreach", NextAction: strPtr("Invite to summit")},
		Contact:       types.ContactSummary{FirstName: "Alex", LastName: "Kim"},
	}

	results := Search("summit", []types.Contact{contact}, []types.Event{event}, []types.PipelineItem{item})

	require.Len(t, results, 3)
	assert.Equal(t, TypeContact, results[0].Type)
	assert.Equal(t, 120, results[0].Relevance) // name + notes
	assert.Equal(t, TypeEvent, results[1].Type)
	assert.Equal(t, 60, results[1].Relevance)
	assert.Equal(t, TypePipeline, results[2].Type)
	assert.Equal(t, 50, results[2].Relevance)
	assert.Equal(t, "/pipeline/"+item.ID.String(), results[2].URL)
}

func TestSearch_TruncatesAndSortsDescending(t *testing.T) {
	var contacts []types.Contact
	for i := 0; i < 15; i++ {
		c := types.Contact{ID: uuid.New(), FirstName: fmt.Sprintf("Person%d", i), Company: strPtr("Initech")}
		if i%3 == 0 {
			c.Notes = strPtr("initech alumni")
		}
		contacts = append(contacts, c)
	}

	results := Search("initech", contacts, nil, nil)

	require.Len(t, results, MaxResults)
	assert.True(t, sort.SliceIsSorted(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	}))
	assert.Equal(t, 80, results[0].Relevance)
	assert.Equal(t, 60, results[MaxResults-1].Relevance)
}

func TestSearch_TiesKeepInsertionOrder(t *testing.T) {
	var contacts []types.Contact
	for i := 0; i < 4; i++ {
		contacts = append(contacts, types.Contact{ID: uuid.New(), FirstName: "Tie", Company: strPtr("Hooli")})
	}
	event := types.Event{ID: uuid.New(), Name: "Launch", Location: strPtr("Hooli HQ")}

	results := Search("hooli", contacts, []types.Event{event}, nil)

	require.Len(t, results, 5)
	for i := 0; i < 4; i++ {
		assert.Equal(t, contacts[i].ID.String(), results[i].ID)
	}
	assert.Equal(t, event.ID.String(), results[4].ID)
}

func TestSearch_EmptyCollections(t *testing.T) {
	assert.Empty(t, Search("anything", nil, nil, nil))
}
