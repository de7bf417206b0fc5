package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/stagetrack/internal/progress"
)

func TestTimelineExampleScenario(t *testing.T) {
	frame := NewEngine().Render(Props{Stages: exampleStages(), Mode: ModeTimeline})
	require.Nil(t, frame.Steps)
	require.Len(t, frame.Stages, 2)

	s1 := frame.Stages[0]
	assert.Equal(t, "s1", s1.StageID)
	assert.Equal(t, []progress.Action{progress.ActionUpdate, progress.ActionSummary}, actionsOf(s1))
	assert.NotNil(t, s1.Toggle)
	assert.True(t, s1.ShowConnector)

	s2 := frame.Stages[1]
	assert.Equal(t, []progress.Action{progress.ActionContinue}, actionsOf(s2))
	assert.Nil(t, s2.Toggle)
	assert.False(t, s2.ShowConnector)
}

func TestStepperExampleScenario(t *testing.T) {
	frame := NewEngine().Render(Props{Stages: exampleStages(), Mode: ModeStepper, CurrentStep: 1})
	require.NotNil(t, frame.Steps)
	require.Len(t, frame.Steps.Items, 2)
	assert.True(t, frame.Steps.Items[0].Completed)
	assert.Equal(t, stepGlyphDone, frame.Steps.Items[0].Glyph())
	assert.Equal(t, stepGlyphPending, frame.Steps.Items[1].Glyph())
	assert.Equal(t, "KYC", frame.Steps.Items[0].Label)

	require.Len(t, frame.Stages, 1)
	detail := frame.Stages[0]
	assert.Equal(t, "s2", detail.StageID)
	assert.False(t, detail.ShowConnector)
	assert.Equal(t, []progress.Action{progress.ActionContinue}, actionsOf(detail))
}

func TestModeDefaultsToTimeline(t *testing.T) {
	frame := NewEngine().Render(Props{Stages: exampleStages()})
	assert.Equal(t, ModeTimeline, frame.Mode)
	assert.Len(t, frame.Stages, 2)
}

func TestStepperOutOfRangeShowsStripOnly(t *testing.T) {
	stages := exampleStages()
	for _, step := range []int{len(stages), len(stages) + 5, -1} {
		var frame Frame
		require.NotPanics(t, func() {
			frame = NewEngine().Render(Props{Stages: stages, Mode: ModeStepper, CurrentStep: step})
		})
		require.NotNil(t, frame.Steps)
		assert.Len(t, frame.Steps.Items, 2)
		assert.Empty(t, frame.Stages, "step %d", step)
		assert.NotEmpty(t, frame.String())
	}
}

func TestStepperEmptyStageList(t *testing.T) {
	frame := NewEngine().Render(Props{Mode: ModeStepper})
	require.NotNil(t, frame.Steps)
	assert.Empty(t, frame.Steps.Items)
	assert.Empty(t, frame.Stages)
}

func TestStepClickResolvesByID(t *testing.T) {
	stages := threeStages()
	var got []int
	props := Props{Stages: stages, Mode: ModeStepper, Callbacks: Callbacks{OnStepChange: func(i int) { got = append(got, i) }}}

	frame := NewEngine().Render(props)
	for i, stage := range stages {
		got = nil
		require.True(t, frame.ClickStep(stage.ID))
		assert.Equal(t, []int{i}, got)
	}

	reordered := []progress.Stage{stages[2], stages[0], stages[1]}
	props.Stages = reordered
	frame = NewEngine().Render(props)
	for i, stage := range reordered {
		got = nil
		require.True(t, frame.ClickStep(stage.ID))
		assert.Equal(t, []int{i}, got, "stage %s", stage.ID)
	}
}

func TestStaleStepIDIsIgnored(t *testing.T) {
	called := false
	engine := NewEngine()
	props := Props{Stages: exampleStages(), Mode: ModeStepper, Callbacks: Callbacks{OnStepChange: func(int) { called = true }}}
	frame := engine.Render(props)
	assert.False(t, frame.ClickStep("ghost"))

	engine.stepClickHandler(props)("ghost")
	assert.False(t, called)
}

func TestStepClickWithoutCallbackIsSafe(t *testing.T) {
	frame := NewEngine().Render(Props{Stages: exampleStages(), Mode: ModeStepper})
	assert.NotPanics(t, func() { frame.ClickStep("s1") })
}

func TestUncontrolledToggleFoldsAndNotifies(t *testing.T) {
	engine := NewEngine()
	var notified []string
	props := Props{Stages: threeStages(), Callbacks: Callbacks{OnStageToggle: func(id string) { notified = append(notified, id) }}}

	require.True(t, engine.Render(props).Toggle("s1"))
	assert.True(t, engine.Expanded().Has("s1"))

	frame := engine.Render(props)
	block, ok := frame.Stage("s1")
	require.True(t, ok)
	assert.True(t, block.Expanded)
	require.NotNil(t, block.SubSteps)

	require.True(t, frame.Toggle("s1"))
	assert.False(t, engine.Expanded().Has("s1"))
	assert.Equal(t, []string{"s1", "s1"}, notified)
}

func TestUncontrolledToggleWithoutCallback(t *testing.T) {
	engine := NewEngine()
	props := Props{Stages: threeStages()}
	require.True(t, engine.Render(props).Toggle("s2"))
	assert.True(t, engine.Expanded().Has("s2"))
}

func TestControlledToggleOnlyForwards(t *testing.T) {
	engine := NewEngine()
	var notified []string
	props := Props{
		Stages:      threeStages(),
		ExpandedIDs: progress.NewIDSet(),
		Callbacks:   Callbacks{OnStageToggle: func(id string) { notified = append(notified, id) }},
	}
	frame := engine.Render(props)
	assert.True(t, frame.Controlled)
	require.True(t, frame.Toggle("s3"))
	assert.Equal(t, []string{"s3"}, notified)
	assert.Empty(t, engine.Expanded())

	block, _ := engine.Render(props).Stage("s3")
	assert.False(t, block.Expanded, "caller did not apply the toggle")

	props.ExpandedIDs = progress.NewIDSet("s3")
	block, _ = engine.Render(props).Stage("s3")
	assert.True(t, block.Expanded)
}

func TestControlledAndUncontrolledAgree(t *testing.T) {
	sequence := []string{"s1", "s3", "s1", "s2", "s3", "s3", "s2"}
	stages := threeStages()

	uncontrolled := NewEngine()
	for _, id := range sequence {
		require.True(t, uncontrolled.Render(Props{Stages: stages}).Toggle(id))
	}

	controlled := NewEngine()
	external := progress.NewIDSet()
	for _, id := range sequence {
		props := Props{
			Stages:      stages,
			ExpandedIDs: external,
			Callbacks:   Callbacks{OnStageToggle: func(id string) { external = progress.ToggleSet(external, id) }},
		}
		require.True(t, controlled.Render(props).Toggle(id))
	}

	assert.Equal(t, uncontrolled.Expanded(), external)
	assert.Empty(t, controlled.Expanded())

	want := uncontrolled.Render(Props{Stages: stages}).String()
	got := controlled.Render(Props{Stages: stages, ExpandedIDs: external}).String()
	assert.Equal(t, want, got)
}

func TestStaleExpandedIDsAreHarmless(t *testing.T) {
	props := Props{Stages: exampleStages(), ExpandedIDs: progress.NewIDSet("gone", "s1")}
	var frame Frame
	require.NotPanics(t, func() { frame = NewEngine().Render(props) })
	block, ok := frame.Stage("s1")
	require.True(t, ok)
	assert.True(t, block.Expanded)
	_, ok = frame.Stage("gone")
	assert.False(t, ok)
}

func TestActionAndSubItemForwarding(t *testing.T) {
	type action struct {
		stage  string
		action progress.Action
	}
	var actions []action
	var subs [][2]string
	props := Props{
		Stages:      exampleStages(),
		ExpandedIDs: progress.NewIDSet("s1"),
		Callbacks: Callbacks{
			OnStageAction:  func(id string, a progress.Action) { actions = append(actions, action{id, a}) },
			OnSubItemClick: func(stageID, subID string) { subs = append(subs, [2]string{stageID, subID}) },
		},
	}
	frame := NewEngine().Render(props)
	require.True(t, frame.ClickAction("s1", progress.ActionUpdate))
	require.True(t, frame.ClickAction("s1", progress.ActionSummary))
	require.True(t, frame.ClickAction("s2", progress.ActionContinue))
	assert.False(t, frame.ClickAction("s2", progress.ActionUpdate))
	require.True(t, frame.ClickSubItem("s1", "a"))

	assert.Equal(t, []action{
		{"s1", progress.ActionUpdate},
		{"s1", progress.ActionSummary},
		{"s2", progress.ActionContinue},
	}, actions)
	assert.Equal(t, [][2]string{{"s1", "a"}}, subs)
}

func TestInProgressStageHasNoActionsInEngine(t *testing.T) {
	stages := []progress.Stage{{ID: "w", Status: progress.StatusInProgress, Capabilities: allCaps()}}
	frame := NewEngine().Render(Props{Stages: stages})
	assert.Empty(t, frame.Stages[0].Actions)
}

func TestUnknownStatusInList(t *testing.T) {
	stages := append(exampleStages(), progress.Stage{ID: "odd", Title: "Odd", Status: "unknown", Capabilities: allCaps()})
	var frame Frame
	require.NotPanics(t, func() { frame = NewEngine().Render(Props{Stages: stages}) })
	block, ok := frame.Stage("odd")
	require.True(t, ok)
	assert.Equal(t, progress.GlyphNone, block.Glyph)
	assert.Empty(t, block.Actions)
	assert.Len(t, frame.Stages, 3)
}

func TestRenderIsIdempotent(t *testing.T) {
	engine := NewEngine()
	for _, mode := range []Mode{ModeTimeline, ModeStepper} {
		props := Props{Stages: exampleStages(), Mode: mode, CurrentStep: 0, ExpandedIDs: progress.NewIDSet("s1")}
		assert.Equal(t, engine.Render(props).String(), engine.Render(props).String())
	}
	props := Props{Stages: exampleStages()}
	first := engine.Render(props).Render("toggle:s1")
	assert.Equal(t, first, engine.Render(props).Render("toggle:s1"))
	assert.Empty(t, engine.Expanded())
}

func TestResetClearsSelfManagedState(t *testing.T) {
	engine := NewEngine()
	require.True(t, engine.Render(Props{Stages: threeStages()}).Toggle("s1"))
	engine.Reset()
	assert.Empty(t, engine.Expanded())
}

func TestFrameControlsOrder(t *testing.T) {
	frame := NewEngine().Render(Props{
		Stages:      exampleStages(),
		Mode:        ModeStepper,
		ExpandedIDs: progress.NewIDSet("s1"),
		Callbacks:   Callbacks{OnStepChange: func(int) {}, OnSubItemClick: func(string, string) {}},
	})
	var keys []string
	for _, ctl := range frame.Controls() {
		keys = append(keys, ctl.Key())
	}
	assert.Equal(t, []string{"step:s1", "step:s2", "toggle:s1", "sub-item:s1:a", "action:s1:update", "action:s1:summary"}, keys)
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeTimeline, mode)

	mode, err = ParseMode(" Stepper ")
	require.NoError(t, err)
	assert.Equal(t, ModeStepper, mode)

	_, err = ParseMode("carousel")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownMode))
}

func TestFrameLineLocatesEveryControl(t *testing.T) {
	stages := exampleStages()
	stages[0].Description = "Identity documents\nchecked by the branch"
	for _, mode := range []Mode{ModeTimeline, ModeStepper} {
		t.Run(string(mode), func(t *testing.T) {
			frame := NewEngine().Render(Props{
				Stages:      stages,
				Mode:        mode,
				ExpandedIDs: progress.NewIDSet("s1"),
			})
			for _, ctl := range frame.Controls() {
				line, ok := frame.Line(ctl.Key())
				require.True(t, ok, ctl.Key())
				rendered := strings.Split(frame.Render(ctl.Key()), "\n")
				require.Less(t, line, len(rendered), ctl.Key())
				assert.Contains(t, rendered[line], ctl.Label, ctl.Key())
			}
			_, ok := frame.Line("action:missing:update")
			assert.False(t, ok)
		})
	}
}
