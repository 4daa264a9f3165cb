// Package pipeline defines the stage taxonomy, the next-action catalog and the
// stage transition rule for the relationship and CTO club pipelines.
package pipeline

// Kind selects one of the two independent pipelines.
type Kind string

const (
	KindRelationship Kind = "relationship"
	KindCTO          Kind = "cto"
)

// Stage is a pipeline stage (relationship pipeline) or status (CTO club pipeline).
type Stage string

// StageUnchanged marks a catalog action that intentionally does not prescribe a
// stage. Resolving it leaves the current stage in place.
const StageUnchanged Stage = ""

// Relationship pipeline stages, in nominal order.
const (
	StageInitialOutreach Stage = "Initial Outreach"
	StageForming         Stage = "Forming the Relationship"
	StageMaintaining     Stage = "Maintaining the Relationship"
)

// CTO club recruitment statuses, in nominal order.
const (
	StatusNotStarted       Stage = "not started"
	StatusInProgress       Stage = "in progress"
	StatusAwaitingResponse Stage = "awaiting response"
	StatusReadyForNextStep Stage = "ready for next step"
)

var relationshipStages = []Stage{
	StageInitialOutreach,
	StageForming,
	StageMaintaining,
}

var ctoStatuses = []Stage{
	StatusNotStarted,
	StatusInProgress,
	StatusAwaitingResponse,
	StatusReadyForNextStep,
}

// Kinds returns every known pipeline kind.
func Kinds() []Kind {
	return []Kind{KindRelationship, KindCTO}
}

// Stages returns the ordered stage enumeration for kind, or nil for an unknown kind.
func Stages(kind Kind) []Stage {
	var src []Stage
	switch kind {
	case KindRelationship:
		src = relationshipStages
	case KindCTO:
		src = ctoStatuses
	default:
		return nil
	}
	out := make([]Stage, len(src))
	copy(out, src)
	return out
}

// DefaultStage returns the first stage of kind's enumeration.
func DefaultStage(kind Kind) Stage {
	switch kind {
	case KindRelationship:
		return relationshipStages[0]
	case KindCTO:
		return ctoStatuses[0]
	default:
		return StageUnchanged
	}
}

// IsValidStage reports whether stage belongs to kind's enumeration.
func IsValidStage(kind Kind, stage Stage) bool {
	var src []Stage
	switch kind {
	case KindRelationship:
		src = relationshipStages
	case KindCTO:
		src = ctoStatuses
	}
	for _, s := range src {
		if s == stage {
			return true
		}
	}
	return false
}

// IsValidKind reports whether kind names a known pipeline.
func IsValidKind(kind Kind) bool {
	return kind == KindRelationship || kind == KindCTO
}
