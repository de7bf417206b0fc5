package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kingrea/stagetrack/internal/progress"
)

// Mode selects how the engine lays out stages.
type Mode string

const (
	// ModeTimeline shows every stage stacked vertically.
	ModeTimeline Mode = "timeline"
	// ModeStepper shows a step strip and the detail of a single stage.
	ModeStepper Mode = "stepper"
)

// ErrUnknownMode is returned by ParseMode for values other than timeline or stepper.
var ErrUnknownMode = errors.New("unknown presentation mode")

// ParseMode parses a mode name. An empty value selects the timeline.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case "", ModeTimeline:
		return ModeTimeline, nil
	case ModeStepper:
		return ModeStepper, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, value)
	}
}

// Callbacks are the intents the engine reports to its host. All are optional.
type Callbacks struct {
	OnStageToggle  func(stageID string)
	OnStepChange   func(stepIndex int)
	OnStageAction  func(stageID string, action progress.Action)
	OnSubItemClick func(stageID, subItemID string)
}

// Props are the inputs of one render pass.
type Props struct {
	Stages      []progress.Stage
	Mode        Mode
	CurrentStep int

	// ExpandedIDs puts the engine in controlled mode when non-nil: the host owns
	// expansion and must apply toggles itself. When nil the engine keeps its own
	// expansion set.
	ExpandedIDs progress.IDSet

	Callbacks

	DescriptionRenderer func(string) string
}

// Controlled reports whether the host owns expansion state.
func (p Props) Controlled() bool {
	return p.ExpandedIDs != nil
}

// Engine renders an application's stages and routes the intents of the
// resulting controls. Its only state is the expansion set used when the host
// does not supply one.
type Engine struct {
	expanded progress.IDSet
}

// NewEngine returns an engine with an empty self-managed expansion set.
func NewEngine() *Engine {
	return &Engine{expanded: progress.IDSet{}}
}

// Expanded returns a copy of the self-managed expansion set.
func (e *Engine) Expanded() progress.IDSet {
	out := e.expanded.Clone()
	if out == nil {
		out = progress.IDSet{}
	}
	return out
}

// Reset forgets every self-managed expansion.
func (e *Engine) Reset() {
	e.expanded = progress.IDSet{}
}

// Render builds a frame from props. It does not change engine state; the same
// props and expansion set always produce the same frame.
func (e *Engine) Render(props Props) Frame {
	frame := Frame{Mode: ModeTimeline, Controlled: props.Controlled()}
	if props.Mode == ModeStepper {
		frame.Mode = ModeStepper
	}
	switch frame.Mode {
	case ModeStepper:
		items := make([]StepItem, 0, len(props.Stages))
		for _, stage := range props.Stages {
			items = append(items, StepItem{
				ID:        stage.ID,
				Label:     stage.DisplayTitle(),
				Completed: stage.Status == progress.StatusCompleted,
			})
		}
		strip := RenderSteps(items, Horizontal, e.stepClickHandler(props))
		frame.Steps = &strip
		frame.CurrentStep = props.CurrentStep
		if props.CurrentStep >= 0 && props.CurrentStep < len(props.Stages) {
			frame.Stages = []StageBlock{e.renderStage(props, props.Stages[props.CurrentStep], false)}
		}
	default:
		last := len(props.Stages) - 1
		for i, stage := range props.Stages {
			frame.Stages = append(frame.Stages, e.renderStage(props, stage, i < last))
		}
	}
	return frame
}

func (e *Engine) renderStage(props Props, stage progress.Stage, connector bool) StageBlock {
	id := stage.ID
	stageProps := StageProps{
		Stage:               stage,
		Expanded:            e.isExpanded(props, id),
		ShowConnector:       connector,
		OnToggleExpand:      func() { e.toggle(props, id) },
		DescriptionRenderer: props.DescriptionRenderer,
	}
	if cb := props.OnStageAction; cb != nil {
		stageProps.OnUpdate = func() { cb(id, progress.ActionUpdate) }
		stageProps.OnSummary = func() { cb(id, progress.ActionSummary) }
		stageProps.OnContinue = func() { cb(id, progress.ActionContinue) }
	}
	if cb := props.OnSubItemClick; cb != nil {
		stageProps.OnSubItemClick = func(subID string) { cb(id, subID) }
	}
	return RenderStage(stageProps)
}

func (e *Engine) isExpanded(props Props, id string) bool {
	if props.Controlled() {
		return props.ExpandedIDs.Has(id)
	}
	return e.expanded.Has(id)
}

// toggle is the single update path for expansion intents. Controlled engines
// only forward; uncontrolled engines fold the toggle into their own set first
// and then notify.
func (e *Engine) toggle(props Props, id string) {
	if !props.Controlled() {
		e.expanded = progress.ToggleSet(e.expanded, id)
	}
	if props.OnStageToggle != nil {
		props.OnStageToggle(id)
	}
}

// stepClickHandler resolves a clicked step id against the stage list of the
// render that produced it. Ids that no longer resolve are ignored.
func (e *Engine) stepClickHandler(props Props) func(string) {
	stages := props.Stages
	onChange := props.OnStepChange
	return func(id string) {
		idx, ok := progress.Index(stages, id)
		if !ok || onChange == nil {
			return
		}
		onChange(idx)
	}
}
