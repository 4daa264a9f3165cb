package search

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/rolodex/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestScore_ContactWeights(t *testing.T) {
	c := &types.Contact{
		ID:          uuid.New(),
		FirstName:   "Quinn",
		LastName:    "Zed",
		Email:       strPtr("qz@zeta.io"),
		Company:     strPtr("Zeta Labs"),
		JobTitle:    strPtr("CTO"),
		ContactType: strPtr("partner"),
		Notes:       strPtr("intro via Rana"),
	}

	tests := []struct {
		query    string
		expected int
	}{
		{"quinn", 100},
		{"qz@", 80},
		{"labs", 60},
		{"cto", 40},
		{"partner", 30},
		{"rana", 20},
		{"ze", 100 + 80 + 60}, // "Quinn Zed", "qz@zeta.io", "Zeta Labs"
		{"nomatch", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.expected, Score(Contact{c}, tt.query))
		})
	}
}

func TestScore_EventWeights(t *testing.T) {
	e := &types.Event{
		ID:          uuid.New(),
		Name:        "Founders Breakfast",
		EventType:   strPtr("networking"),
		Location:    strPtr("Denver"),
		Description: strPtr("Quarterly founders meetup"),
		Status:      strPtr("confirmed"),
	}

	assert.Equal(t, 100+40, Score(Event{e}, "founders"))
	assert.Equal(t, 80, Score(Event{e}, "network"))
	assert.Equal(t, 60, Score(Event{e}, "denver"))
	assert.Equal(t, 40, Score(Event{e}, "meetup"))
	assert.Equal(t, 30, Score(Event{e}, "confirmed"))
}

func TestScore_PipelineItemWeights(t *testing.T) {
	p := &types.PipelineItem{
		PipelineEntry: types.PipelineEntry{
			ID:         uuid.New(),
			Stage:      "Forming the Relationship",
			NextAction: strPtr("Schedule coffee chat"),
		},
		Contact: types.ContactSummary{FirstName: "Priya", LastName: "Shah", Company: strPtr("Northwind")},
	}

	assert.Equal(t, 80, Score(PipelineItem{p}, "priya"))
	assert.Equal(t, 60, Score(PipelineItem{p}, "forming"))
	assert.Equal(t, 50, Score(PipelineItem{p}, "coffee"))
	assert.Equal(t, 40, Score(PipelineItem{p}, "northwind"))
}

func TestScore_MissingOptionalFieldsNeverMatch(t *testing.T) {
	c := &types.Contact{ID: uuid.New(), FirstName: "Lee"}
	assert.Equal(t, 100, Score(Contact{c}, "lee"))
	assert.Equal(t, 0, Score(Contact{c}, "acme"))

	e := &types.Event{ID: uuid.New(), Name: "Summit"}
	assert.Equal(t, 0, Score(Event{e}, "denver"))
}

func TestScore_AddingMatchingFieldNeverLowersScore(t *testing.T) {
	c := &types.Contact{ID: uuid.New(), FirstName: "Avery"}
	prev := Score(Contact{c}, "orbit")
	assert.GreaterOrEqual(t, prev, 0)

	steps := []func(){
		func() { c.Notes = strPtr("orbit offsite") },
		func() { c.JobTitle = strPtr("Orbit lead") },
		func() { c.Company = strPtr("Orbit Inc") },
		func() { c.Email = strPtr("avery@orbit.dev") },
		func() { c.LastName = "Orbitson" },
	}
	for _, step := range steps {
		step()
		next := Score(Contact{c}, "orbit")
		assert.GreaterOrEqual(t, next, prev)
		prev = next
	}
	assert.Equal(t, 100+80+60+40+20, prev)
}

func TestScore_EmptyQuery(t *testing.T) {
	c := &types.Contact{ID: uuid.New(), FirstName: "Lee"}
	assert.Equal(t, 0, Score(Contact{c}, ""))
}

func TestResultFields(t *testing.T) {
	c := &types.Contact{ID: uuid.New(), FirstName: "Jo", Company: strPtr("Acme"), JobTitle: strPtr("VP Eng")}
	r := Contact{c}.Result(60)
	assert.Equal(t, "VP Eng at Acme", r.Description)

	e := &types.Event{ID: uuid.New(), Name: "Mixer", Location: strPtr("Austin")}
	er := Event{e}.Result(100)
	assert.Equal(t, "Austin", er.Subtitle)
	assert.Equal(t, "/events/"+e.ID.String(), er.URL)
}
