package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStages(t *testing.T) {
	assert.Equal(t, []Stage{
		"Initial Outreach",
		"Forming the Relationship",
		"Maintaining the Relationship",
	}, Stages(KindRelationship))

	assert.Equal(t, []Stage{
		"not started",
		"in progress",
		"awaiting response",
		"ready for next step",
	}, Stages(KindCTO))

	assert.Nil(t, Stages(Kind("unknown")))
}

func TestStages_ReturnsCopy(t *testing.T) {
	s := Stages(KindRelationship)
	s[0] = "mutated"
	assert.Equal(t, StageInitialOutreach, Stages(KindRelationship)[0])
}

func TestDefaultStage(t *testing.T) {
	assert.Equal(t, StageInitialOutreach, DefaultStage(KindRelationship))
	assert.Equal(t, StatusNotStarted, DefaultStage(KindCTO))
	assert.Equal(t, StageUnchanged, DefaultStage(Kind("x")))
}

func TestIsValidStage(t *testing.T) {
	assert.True(t, IsValidStage(KindRelationship, StageForming))
	assert.True(t, IsValidStage(KindCTO, StatusAwaitingResponse))
	assert.False(t, IsValidStage(KindRelationship, StatusAwaitingResponse))
	assert.False(t, IsValidStage(KindCTO, StageForming))
	assert.False(t, IsValidStage(KindCTO, StageUnchanged))
	assert.False(t, IsValidStage(Kind("x"), StageForming))
}

func TestActionCatalogShape(t *testing.T) {
	rel := Actions(KindRelationship)
	assert.Len(t, rel, 11)
	for _, d := range rel {
		assert.True(t, IsValidStage(KindRelationship, d.Stage), "action %q", d.Label)
		assert.Equal(t, string(d.Stage), d.Category)
	}

	cto := Actions(KindCTO)
	assert.Len(t, cto, 9)
	unchanged := 0
	for _, d := range cto {
		if d.Stage == StageUnchanged {
			unchanged++
			assert.Equal(t, ActionOther, d.Label)
			continue
		}
		assert.True(t, IsValidStage(KindCTO, d.Stage), "action %q", d.Label)
	}
	assert.Equal(t, 1, unchanged)

	// every status is reachable from some action
	reached := make(map[Stage]bool)
	for _, d := range cto {
		reached[d.Stage] = true
	}
	for _, s := range Stages(KindCTO) {
		assert.True(t, reached[s], "status %q unreachable", s)
	}
}

func TestActionSetsAreDisjoint(t *testing.T) {
	for _, d := range Actions(KindRelationship) {
		_, ok := LookupAction(KindCTO, d.Label)
		assert.False(t, ok, "action %q appears in both catalogs", d.Label)
	}
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{
		"Initial Outreach", "Forming the Relationship", "Maintaining the Relationship",
	}, Categories(KindRelationship))
	assert.Equal(t, []string{
		CategoryProspecting, CategoryOutreach, CategoryFollowUp, CategoryOnboarding, CategoryOther,
	}, Categories(KindCTO))
}

func TestActionsByCategory(t *testing.T) {
	groups := ActionsByCategory(KindCTO)
	assert.Equal(t, []string{"Follow up on invitation", "Waiting on decision"}, groups[CategoryFollowUp])
	assert.Equal(t, []string{ActionOther}, groups[CategoryOther])
}

func TestLookupAction(t *testing.T) {
	def, ok := LookupAction(KindRelationship, "Invite to event")
	assert.True(t, ok)
	assert.Equal(t, StageForming, def.Stage)

	_, ok = LookupAction(KindRelationship, "nope")
	assert.False(t, ok)
}
