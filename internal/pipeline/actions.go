package pipeline

// ActionDefinition describes a catalog next action and the stage it implies.
type ActionDefinition struct {
	Label    string `json:"label"`
	Category string `json:"category"`
	Stage    Stage  `json:"stage"`
}

// ActionOther is the CTO catalog's free-form entry. It never moves the status.
const ActionOther = "Other (specify in notes)"

// CTO catalog categories
const (
	CategoryProspecting = "Prospecting"
	CategoryOutreach    = "Outreach"
	CategoryFollowUp    = "Follow-up"
	CategoryOnboarding  = "Onboarding"
	CategoryOther       = "Other"
)

// relationshipActions is the relationship pipeline catalog. Categories are the
// stage names.
var relationshipActions = []ActionDefinition{
	{Label: "Connect on LinkedIn", Category: string(StageInitialOutreach), Stage: StageInitialOutreach},
	{Label: "Send intro email", Category: string(StageInitialOutreach), Stage: StageInitialOutreach},
	{Label: "Request warm introduction", Category: string(StageInitialOutreach), Stage: StageInitialOutreach},
	{Label: "Comment on their post", Category: string(StageInitialOutreach), Stage: StageInitialOutreach},

	{Label: "Schedule coffee chat", Category: string(StageForming), Stage: StageForming},
	{Label: "Invite to event", Category: string(StageForming), Stage: StageForming},
	{Label: "Follow up after meeting", Category: string(StageForming), Stage: StageForming},
	{Label: "Offer an introduction", Category: string(StageForming), Stage: StageForming},

	{Label: "Send valuable insight", Category: string(StageMaintaining), Stage: StageMaintaining},
	{Label: "Quarterly check-in", Category: string(StageMaintaining), Stage: StageMaintaining},
	{Label: "Share relevant opportunity", Category: string(StageMaintaining), Stage: StageMaintaining},
}

var ctoActions = []ActionDefinition{
	{Label: "Add to prospect list", Category: CategoryProspecting, Stage: StatusNotStarted},

	{Label: "Send club invitation", Category: CategoryOutreach, Stage: StatusInProgress},
	{Label: "Schedule intro call", Category: CategoryOutreach, Stage: StatusInProgress},
	{Label: "Share club overview", Category: CategoryOutreach, Stage: StatusInProgress},

	{Label: "Follow up on invitation", Category: CategoryFollowUp, Stage: StatusAwaitingResponse},
	{Label: "Waiting on decision", Category: CategoryFollowUp, Stage: StatusAwaitingResponse},

	{Label: "Send membership agreement", Category: CategoryOnboarding, Stage: StatusReadyForNextStep},
	{Label: "Schedule onboarding", Category: CategoryOnboarding, Stage: StatusReadyForNextStep},

	{Label: ActionOther, Category: CategoryOther, Stage: StageUnchanged},
}

// transitions maps each kind's action labels to the stage they imply.
// Built once from the catalogs above and never written afterwards.
var transitions = map[Kind]map[string]Stage{
	KindRelationship: buildTransitions(relationshipActions),
	KindCTO:          buildTransitions(ctoActions),
}

func buildTransitions(defs []ActionDefinition) map[string]Stage {
	m := make(map[string]Stage, len(defs))
	for _, d := range defs {
		m[d.Label] = d.Stage
	}
	return m
}

func catalog(kind Kind) []ActionDefinition {
	switch kind {
	case KindRelationship:
		return relationshipActions
	case KindCTO:
		return ctoActions
	default:
		return nil
	}
}

// Actions returns kind's catalog in display order.
func Actions(kind Kind) []ActionDefinition {
	src := catalog(kind)
	if src == nil {
		return nil
	}
	out := make([]ActionDefinition, len(src))
	copy(out, src)
	return out
}

// Categories returns kind's action categories in first-seen catalog order.
func Categories(kind Kind) []string {
	var out []string
	seen := make(map[string]bool)
	for _, d := range catalog(kind) {
		if !seen[d.Category] {
			seen[d.Category] = true
			out = append(out, d.Category)
		}
	}
	return out
}

// ActionsByCategory groups kind's action labels by category.
func ActionsByCategory(kind Kind) map[string][]string {
	out := make(map[string][]string)
	for _, d := range catalog(kind) {
		out[d.Category] = append(out[d.Category], d.Label)
	}
	return out
}

// LookupAction returns the catalog definition for label.
func LookupAction(kind Kind, label string) (ActionDefinition, bool) {
	for _, d := range catalog(kind) {
		if d.Label == label {
			return d, true
		}
	}
	return ActionDefinition{}, false
}
