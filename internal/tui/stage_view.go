package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/stagetrack/internal/progress"
)

// StageProps is everything StageView needs to draw one stage. Callbacks may be
// nil; the matching control is then drawn but inert.
type StageProps struct {
	Stage         progress.Stage
	Expanded      bool
	ShowConnector bool

	OnToggleExpand func()
	OnUpdate       func()
	OnSummary      func()
	OnContinue     func()
	OnSubItemClick func(subStepID string)

	// DescriptionRenderer formats the description, e.g. as markdown.
	DescriptionRenderer func(string) string
}

// StageBlock is the rendered form of one stage.
type StageBlock struct {
	StageID       string
	Glyph         progress.Glyph
	StatusLabel   string
	Status        progress.Status
	OrdinalLabel  string
	Title         string
	Description   string
	Expandable    bool
	Expanded      bool
	ShowConnector bool

	Toggle   *Control
	SubSteps *StepStrip
	Actions  []Control

	reasons map[string]string
}

// RenderStage derives a StageBlock from props. It never fails: a stage with an
// unknown status renders without glyph, label or actions.
func RenderStage(props StageProps) StageBlock {
	stage := props.Stage
	block := StageBlock{
		StageID:       stage.ID,
		Glyph:         progress.GlyphFor(stage.Status),
		StatusLabel:   stage.Status.Label(),
		Status:        stage.Status,
		OrdinalLabel:  stage.OrdinalLabel(),
		Title:         stage.DisplayTitle(),
		Description:   strings.TrimSpace(stage.Description),
		Expandable:    stage.Expandable(),
		ShowConnector: props.ShowConnector,
	}
	if block.Description != "" && props.DescriptionRenderer != nil {
		block.Description = strings.TrimSpace(props.DescriptionRenderer(block.Description))
	}

	if block.Expandable {
		block.Expanded = props.Expanded
		label := "Show steps"
		if block.Expanded {
			label = "Hide steps"
		}
		block.Toggle = &Control{Kind: ControlToggle, StageID: stage.ID, Label: label, onPress: props.OnToggleExpand}
	}

	if block.Expanded {
		items := make([]StepItem, 0, len(stage.SubSteps))
		block.reasons = map[string]string{}
		for _, sub := range stage.SubSteps {
			items = append(items, StepItem{ID: sub.ID, Label: sub.Label, Completed: sub.Completed})
			if reason := strings.TrimSpace(sub.Reason); reason != "" {
				block.reasons[sub.ID] = reason
			}
		}
		strip := RenderSteps(items, Vertical, props.OnSubItemClick)
		for i := range strip.Items {
			if ctl := strip.Items[i].Control; ctl != nil {
				ctl.Kind = ControlSubItem
				ctl.StageID = stage.ID
			}
		}
		block.SubSteps = &strip
	}

	for _, action := range progress.ActionRow(stage.Status, stage.Capabilities).Actions() {
		block.Actions = append(block.Actions, Control{
			Kind:    ControlAction,
			StageID: stage.ID,
			Action:  action,
			Label:   action.Label(),
			onPress: actionHandler(props, action),
		})
	}
	return block
}

func actionHandler(props StageProps, action progress.Action) func() {
	switch action {
	case progress.ActionUpdate:
		return props.OnUpdate
	case progress.ActionSummary:
		return props.OnSummary
	case progress.ActionContinue:
		return props.OnContinue
	default:
		return nil
	}
}

// HasAction reports whether the action row offers a.
func (b StageBlock) HasAction(a progress.Action) bool {
	for _, ctl := range b.Actions {
		if ctl.Action == a {
			return true
		}
	}
	return false
}

// Controls returns the block's controls in visual order: toggle, sub-steps,
// actions.
func (b StageBlock) Controls() []Control {
	var out []Control
	if b.Toggle != nil {
		out = append(out, *b.Toggle)
	}
	if b.SubSteps != nil {
		out = append(out, b.SubSteps.Controls()...)
	}
	out = append(out, b.Actions...)
	return out
}

// Render draws the block, highlighting the control whose key matches focus.
func (b StageBlock) Render(focus string) string {
	var header []string
	if glyph := b.Glyph.Symbol(); glyph != "" {
		header = append(header, statusStyle(b.Status).Render(glyph))
	}
	if b.OrdinalLabel != "" {
		header = append(header, ordinalStyle.Render(b.OrdinalLabel))
	}
	header = append(header, titleStyle.Render(b.Title))
	if b.StatusLabel != "" {
		header = append(header, statusStyle(b.Status).Render("["+b.StatusLabel+"]"))
	}
	if b.Toggle != nil {
		marker := "▸ "
		if b.Expanded {
			marker = "▾ "
		}
		header = append(header, renderControl(*b.Toggle, marker+b.Toggle.Label, focus, false))
	}
	lines := []string{strings.Join(header, " ")}

	if b.Description != "" {
		lines = append(lines, indent(detailTextStyle.Render(b.Description), "  "))
	}
	if b.SubSteps != nil {
		strip := b.SubSteps.render(focus, func(item RenderedStep) string {
			if reason := b.reasons[item.ID]; reason != "" {
				return reasonStyle.Render("(" + reason + ")")
			}
			return ""
		})
		if strip != "" {
			lines = append(lines, indent(strip, "    "))
		}
	}
	if len(b.Actions) > 0 {
		buttons := make([]string, 0, len(b.Actions))
		for _, ctl := range b.Actions {
			buttons = append(buttons, renderControl(ctl, ctl.Label, focus, true))
		}
		lines = append(lines, "  "+lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(buttons)...))
	}
	if b.ShowConnector {
		lines = append(lines, connectorStyle.Render("│"))
	}
	return strings.Join(lines, "\n")
}

// line mirrors the layout of Render to find the row holding a control.
func (b StageBlock) line(key string) (int, bool) {
	if b.Toggle != nil && b.Toggle.Key() == key {
		return 0, true
	}
	line := 1
	if b.Description != "" {
		line += lipgloss.Height(detailTextStyle.Render(b.Description))
	}
	if b.SubSteps != nil {
		for i, item := range b.SubSteps.Items {
			if item.Control != nil && item.Control.Key() == key {
				return line + i, true
			}
		}
		line += len(b.SubSteps.Items)
	}
	for _, ctl := range b.Actions {
		if ctl.Key() == key {
			return line, true
		}
	}
	return 0, false
}

func (b StageBlock) String() string {
	return b.Render("")
}

func renderControl(ctl Control, text, focus string, button bool) string {
	focused := focus != "" && ctl.Key() == focus
	if button {
		if focused {
			return focusedButtonStyle.Render(text)
		}
		return buttonStyle.Render(text)
	}
	if focused {
		return focusMarkStyle.Render("› " + text)
	}
	return ordinalStyle.Render(text)
}

func joinWithGap(parts []string) []string {
	if len(parts) < 2 {
		return parts
	}
	out := make([]string, 0, len(parts)*2-1)
	for i, part := range parts {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, part)
	}
	return out
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
