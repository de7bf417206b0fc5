package tui

import "github.com/kingrea/stagetrack/internal/progress"

// ControlKind identifies what pressing a control means.
type ControlKind int

const (
	ControlToggle ControlKind = iota
	ControlAction
	ControlSubItem
	ControlStep
)

func (k ControlKind) String() string {
	switch k {
	case ControlToggle:
		return "toggle"
	case ControlAction:
		return "action"
	case ControlSubItem:
		return "sub-item"
	case ControlStep:
		return "step"
	default:
		return "unknown"
	}
}

// Control is an interactive element produced by a render pass. Pressing it
// emits the intent that was bound when the frame was built.
type Control struct {
	Kind    ControlKind
	StageID string
	ItemID  string
	Action  progress.Action
	Label   string

	onPress func()
}

// Press fires the control's intent. Inert controls do nothing.
func (c Control) Press() {
	if c.onPress == nil {
		return
	}
	c.onPress()
}

// Interactive reports whether pressing the control has any effect.
func (c Control) Interactive() bool {
	return c.onPress != nil
}

// Key identifies a control across renders so focus can survive a re-render.
func (c Control) Key() string {
	switch c.Kind {
	case ControlAction:
		return c.Kind.String() + ":" + c.StageID + ":" + string(c.Action)
	case ControlSubItem:
		return c.Kind.String() + ":" + c.StageID + ":" + c.ItemID
	case ControlStep:
		return c.Kind.String() + ":" + c.ItemID
	default:
		return c.Kind.String() + ":" + c.StageID
	}
}
