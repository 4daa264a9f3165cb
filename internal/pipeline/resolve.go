package pipeline

import "time"

// Resolve returns the stage an entry should hold after action is chosen.
//
// A catalog action overwrites current with its mapped stage, including moves
// backwards through the nominal order: the stage records the category of the
// most recent action, not monotonic progress. Unknown actions, unknown kinds and
// actions mapped to StageUnchanged leave current as is.
func Resolve(kind Kind, current Stage, action string) Stage {
	next, ok := transitions[kind][action]
	if !ok || next == StageUnchanged {
		return current
	}
	return next
}

// NextActionUpdate carries the fields written together when a next action is
// chosen for a pipeline entry.
type NextActionUpdate struct {
	Stage          Stage
	LastAction     *string
	NextAction     string
	NextActionDate *time.Time
	Notes          *string
}

// ApplyNextAction resolves the stage for u.NextAction starting from current and
// returns u with Stage set.
func ApplyNextAction(kind Kind, current Stage, u NextActionUpdate) NextActionUpdate {
	u.Stage = Resolve(kind, current, u.NextAction)
	return u
}
