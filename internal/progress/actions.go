package progress

// Action is a command a stage can offer to the user.
type Action string

const (
	ActionUpdate   Action = "update"
	ActionSummary  Action = "summary"
	ActionContinue Action = "continue"
)

// Label returns the button caption for a.
func (a Action) Label() string {
	switch a {
	case ActionUpdate:
		return "Update"
	case ActionSummary:
		return "Summary"
	case ActionContinue:
		return "Continue"
	default:
		return ""
	}
}

// actionOrder is the fixed display order of an action row.
var actionOrder = []Action{ActionUpdate, ActionSummary, ActionContinue}

// Capabilities declares which actions a stage supports in principle.
type Capabilities struct {
	CanUpdate    bool `json:"can_update,omitempty" yaml:"can_update,omitempty"`
	CanSummarize bool `json:"can_summarize,omitempty" yaml:"can_summarize,omitempty"`
	CanContinue  bool `json:"can_continue,omitempty" yaml:"can_continue,omitempty"`
}

// ActionSet is an unordered set of actions. The zero value is empty.
type ActionSet uint8

func actionBit(a Action) ActionSet {
	switch a {
	case ActionUpdate:
		return 1 << 0
	case ActionSummary:
		return 1 << 1
	case ActionContinue:
		return 1 << 2
	default:
		return 0
	}
}

// NewActionSet builds a set from the given actions. Unknown actions are ignored.
func NewActionSet(actions ...Action) ActionSet {
	var set ActionSet
	for _, a := range actions {
		set |= actionBit(a)
	}
	return set
}

// Has reports whether a is a member of the set.
func (s ActionSet) Has(a Action) bool {
	bit := actionBit(a)
	return bit != 0 && s&bit != 0
}

// Empty reports whether the set has no members.
func (s ActionSet) Empty() bool {
	return s == 0
}

// Actions lists the members in display order: update, summary, continue.
func (s ActionSet) Actions() []Action {
	var out []Action
	for _, a := range actionOrder {
		if s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// VisibleActions is the per-action visibility rule:
//
//	continue: CanContinue and pending
//	update:   CanUpdate and completed
//	summary:  CanSummarize and not pending
//
// An invalid status yields the empty set.
func VisibleActions(status Status, caps Capabilities) ActionSet {
	var set ActionSet
	switch status {
	case StatusPending:
		if caps.CanContinue {
			set |= actionBit(ActionContinue)
		}
	case StatusInProgress:
		if caps.CanSummarize {
			set |= actionBit(ActionSummary)
		}
	case StatusCompleted:
		if caps.CanUpdate {
			set |= actionBit(ActionUpdate)
		}
		if caps.CanSummarize {
			set |= actionBit(ActionSummary)
		}
	default:
		return 0
	}
	return set
}

// ActionRow is the set of actions actually rendered for a stage. A stage that
// is in progress shows no action row at all; every other status falls through
// to VisibleActions.
func ActionRow(status Status, caps Capabilities) ActionSet {
	if status == StatusInProgress {
		return 0
	}
	return VisibleActions(status, caps)
}
