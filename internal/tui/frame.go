package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/stagetrack/internal/progress"
)

// Frame is the output of one engine render: an optional step strip plus the
// visible stage blocks.
type Frame struct {
	Mode        Mode
	Controlled  bool
	CurrentStep int
	Steps       *StepStrip
	Stages      []StageBlock
}

// Controls lists every control in focus order: the step strip first, then each
// stage's controls.
func (f Frame) Controls() []Control {
	var out []Control
	if f.Steps != nil {
		out = append(out, f.Steps.Controls()...)
	}
	for _, block := range f.Stages {
		out = append(out, block.Controls()...)
	}
	return out
}

// Control finds a control by key.
func (f Frame) Control(key string) (Control, bool) {
	for _, ctl := range f.Controls() {
		if ctl.Key() == key {
			return ctl, true
		}
	}
	return Control{}, false
}

// Stage returns the rendered block for a stage id, if it is visible.
func (f Frame) Stage(id string) (StageBlock, bool) {
	for _, block := range f.Stages {
		if block.StageID == id {
			return block, true
		}
	}
	return StageBlock{}, false
}

// Toggle presses the expand control of a visible stage. It reports whether a
// toggle control existed.
func (f Frame) Toggle(stageID string) bool {
	block, ok := f.Stage(stageID)
	if !ok || block.Toggle == nil {
		return false
	}
	block.Toggle.Press()
	return true
}

// ClickStep presses the step strip entry for id.
func (f Frame) ClickStep(id string) bool {
	ctl, ok := f.Control(Control{Kind: ControlStep, ItemID: id}.Key())
	if !ok {
		return false
	}
	ctl.Press()
	return true
}

// ClickAction presses an action button of a visible stage.
func (f Frame) ClickAction(stageID string, action progress.Action) bool {
	ctl, ok := f.Control(Control{Kind: ControlAction, StageID: stageID, Action: action}.Key())
	if !ok {
		return false
	}
	ctl.Press()
	return true
}

// ClickSubItem presses a sub-step entry of an expanded stage.
func (f Frame) ClickSubItem(stageID, subItemID string) bool {
	ctl, ok := f.Control(Control{Kind: ControlSubItem, StageID: stageID, ItemID: subItemID}.Key())
	if !ok {
		return false
	}
	ctl.Press()
	return true
}

// Render draws the frame, highlighting the control whose key matches focus.
func (f Frame) Render(focus string) string {
	var sections []string
	if f.Steps != nil {
		sections = append(sections, f.Steps.Render(focus))
		if len(f.Stages) == 0 {
			sections = append(sections, detailTextStyle.Render(fmt.Sprintf("No stage at step %d", f.CurrentStep+1)))
		}
	}
	for _, block := range f.Stages {
		sections = append(sections, block.Render(focus))
	}
	if len(sections) == 0 {
		return detailTextStyle.Render("No stages to show")
	}
	sep := "\n"
	if f.Mode == ModeStepper {
		sep = "\n\n"
	}
	return strings.Join(sections, sep)
}

// Line reports the zero-based line of Render output on which the control
// with the given key is drawn.
func (f Frame) Line(key string) (int, bool) {
	gap := 0
	if f.Mode == ModeStepper {
		gap = 1
	}
	line := 0
	if f.Steps != nil {
		for _, ctl := range f.Steps.Controls() {
			if ctl.Key() == key {
				return 0, true
			}
		}
		line += lipgloss.Height(f.Steps.Render(key)) + gap
		if len(f.Stages) == 0 {
			return 0, false
		}
	}
	for _, block := range f.Stages {
		if offset, ok := block.line(key); ok {
			return line + offset, true
		}
		line += lipgloss.Height(block.Render(key)) + gap
	}
	return 0, false
}

func (f Frame) String() string {
	return f.Render("")
}
