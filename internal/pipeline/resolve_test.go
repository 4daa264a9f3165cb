package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_CatalogActionsOverwriteCurrentStage(t *testing.T) {
	for _, kind := range Kinds() {
		for _, def := range Actions(kind) {
			if def.Stage == StageUnchanged {
				continue
			}
			for _, current := range Stages(kind) {
				got := Resolve(kind, current, def.Label)
				assert.Equal(t, def.Stage, got, "kind=%s current=%q action=%q", kind, current, def.Label)
			}
		}
	}
}

func TestResolve_Examples(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		current  Stage
		action   string
		expected Stage
	}{
		{
			name:     "moves backward to initial outreach",
			kind:     KindRelationship,
			current:  StageMaintaining,
			action:   "Connect on LinkedIn",
			expected: StageInitialOutreach,
		},
		{
			name:     "forming to maintaining",
			kind:     KindRelationship,
			current:  StageForming,
			action:   "Send valuable insight",
			expected: StageMaintaining,
		},
		{
			name:     "cto other keeps status",
			kind:     KindCTO,
			current:  StatusReadyForNextStep,
			action:   ActionOther,
			expected: StatusReadyForNextStep,
		},
		{
			name:     "unknown relationship action keeps stage",
			kind:     KindRelationship,
			current:  StageForming,
			action:   "Bake them a cake",
			expected: StageForming,
		},
		{
			name:     "unknown cto action keeps status",
			kind:     KindCTO,
			current:  StatusInProgress,
			action:   "Something custom",
			expected: StatusInProgress,
		},
		{
			name:     "maps are never mixed",
			kind:     KindCTO,
			current:  StatusNotStarted,
			action:   "Connect on LinkedIn",
			expected: StatusNotStarted,
		},
		{
			name:     "unknown kind is a no-op",
			kind:     Kind("sales"),
			current:  Stage("anything"),
			action:   "Send valuable insight",
			expected: Stage("anything"),
		},
		{
			name:     "empty action",
			kind:     KindRelationship,
			current:  StageInitialOutreach,
			action:   "",
			expected: StageInitialOutreach,
		},
		{
			name:     "cto agreement moves to ready",
			kind:     KindCTO,
			current:  StatusAwaitingResponse,
			action:   "Send membership agreement",
			expected: StatusReadyForNextStep,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Resolve(tt.kind, tt.current, tt.action))
		})
	}
}

func TestResolve_UnknownActionIsIdempotent(t *testing.T) {
	current := StageForming
	for i := 0; i < 3; i++ {
		current = Resolve(KindRelationship, current, "custom text")
	}
	assert.Equal(t, StageForming, current)
}

func TestApplyNextAction(t *testing.T) {
	notes := "met at the summit"
	when := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	u := ApplyNextAction(KindRelationship, StageInitialOutreach, NextActionUpdate{
		NextAction:     "Schedule coffee chat",
		NextActionDate: &when,
		Notes:          &notes,
	})

	assert.Equal(t, StageForming, u.Stage)
	assert.Equal(t, "Schedule coffee chat", u.NextAction)
	require.NotNil(t, u.NextActionDate)
	assert.True(t, when.Equal(*u.NextActionDate))
	assert.Equal(t, &notes, u.Notes)

	u = ApplyNextAction(KindCTO, StatusInProgress, NextActionUpdate{NextAction: ActionOther})
	assert.Equal(t, StatusInProgress, u.Stage)
}
