// internal/tui/model.go
//
// Model hosts the stage engine inside a bubbletea program. It plays the part
// of the engine's caller: it owns the current step (and, in controlled mode,
// the expansion set), turns key presses into control presses, and journals
// every intent the engine reports.

package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/stagetrack/internal/logbook"
	"github.com/kingrea/stagetrack/internal/progress"
)

const (
	// journalLines is how many recent journal entries the footer panel shows.
	journalLines = 3
	// chromeHeight is the number of lines reserved for header and footer,
	// including the bordered journal panel.
	chromeHeight = 7 + journalLines + 3
)

// Options configures a Model.
type Options struct {
	Mode        Mode
	CurrentStep int
	// Controlled makes the model own the expansion set and pass it to the
	// engine, instead of letting the engine manage it.
	Controlled  bool
	ExpandedIDs []string

	Logbook             *logbook.Logbook
	DescriptionRenderer func(string) string
}

// StageActionMsg is emitted when the user presses an action button. Model
// only reports it in the status line and journal; a parent model embedding
// Model receives the message from the returned command and acts on it.
type StageActionMsg struct {
	ApplicationID string
	StageID       string
	Action        progress.Action
}

// SubItemMsg is emitted when the user presses a sub-step entry. Like
// StageActionMsg it is meant for an embedding parent model.
type SubItemMsg struct {
	ApplicationID string
	StageID       string
	SubItemID     string
}

// Model is the bubbletea model for one application's progress view.
type Model struct {
	application progress.Application
	engine      *Engine
	mode        Mode
	currentStep int
	expanded    progress.IDSet
	render      func(string) string

	focus    string
	keys     keyMap
	help     help.Model
	viewport viewport.Model
	ready    bool
	width    int
	height   int

	logbook       *logbook.Logbook
	statusMsg     string
	lastLogStatus string
	pending       []tea.Msg
}

// NewModel builds a Model for app. Lint findings are journaled as warnings;
// they never prevent the view from rendering.
func NewModel(app progress.Application, opts Options) *Model {
	mode := opts.Mode
	if mode == "" {
		mode = ModeTimeline
	}
	m := &Model{
		application: app,
		engine:      NewEngine(),
		mode:        mode,
		currentStep: opts.CurrentStep,
		render:      opts.DescriptionRenderer,
		keys:        defaultKeyMap(),
		help:        help.New(),
		logbook:     opts.Logbook.WithScope(app.ID),
	}
	if opts.Controlled {
		m.expanded = progress.NewIDSet(opts.ExpandedIDs...)
	}
	m.viewport = viewport.New(0, 0)
	m.viewport.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
	}
	m.logbook.Info("Opened application · %d stage(s) · %s mode", len(app.Stages), m.mode)
	m.logbook.WarnErrors("stage data", progress.Lint(app.Stages))
	m.focus = m.firstControlKey(m.frame())
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(3, msg.Height-chromeHeight)
		m.help.Width = msg.Width
		m.ready = true
		m.syncViewport()
		return m, nil
	case StageActionMsg, SubItemMsg:
		// Already journaled when emitted; nothing else to do standalone.
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.logbook.Info("Session closed")
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Next):
			m.moveFocus(1)
		case key.Matches(msg, m.keys.Prev):
			m.moveFocus(-1)
		case key.Matches(msg, m.keys.Press):
			m.pressFocused()
		case key.Matches(msg, m.keys.Mode):
			m.switchMode()
		case key.Matches(msg, m.keys.StepPrev):
			m.stepBy(-1)
		case key.Matches(msg, m.keys.StepNext):
			m.stepBy(1)
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		m.syncViewport()
		return m, m.flush()
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	body := m.frame().Render(m.focus)
	if m.ready {
		body = m.viewport.View()
	}
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(m.statusMsg)
	sections := []string{m.renderHeader(), body, footer}
	if panel := m.renderJournalPanel(); panel != "" {
		sections = append(sections, panel)
	}
	sections = append(sections, m.help.View(m.keys))
	return strings.Join(sections, "\n")
}

// Frame renders the current state without touching focus or the viewport.
func (m *Model) Frame() Frame {
	return m.frame()
}

// CurrentStep returns the step the host is showing in stepper mode.
func (m *Model) CurrentStep() int {
	return m.currentStep
}

// Mode returns the active presentation mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// Focus returns the key of the focused control.
func (m *Model) Focus() string {
	return m.focus
}

// Status returns the last status line.
func (m *Model) Status() string {
	return m.statusMsg
}

func (m *Model) props() Props {
	return Props{
		Stages:      m.application.Stages,
		Mode:        m.mode,
		CurrentStep: m.currentStep,
		ExpandedIDs: m.expanded,
		Callbacks: Callbacks{
			OnStageToggle:  m.handleStageToggle,
			OnStepChange:   m.handleStepChange,
			OnStageAction:  m.handleStageAction,
			OnSubItemClick: m.handleSubItemClick,
		},
		DescriptionRenderer: m.render,
	}
}

func (m *Model) frame() Frame {
	return m.engine.Render(m.props())
}

func (m *Model) handleStageToggle(stageID string) {
	if m.expanded != nil {
		m.expanded = progress.ToggleSet(m.expanded, stageID)
	}
	verb := "Collapsed"
	if m.isExpanded(stageID) {
		verb = "Expanded"
	}
	m.setStatus(fmt.Sprintf("%s %s", verb, m.stageTitle(stageID)))
}

func (m *Model) handleStepChange(index int) {
	m.currentStep = index
	m.setStatus(fmt.Sprintf("Step %d · %s", index+1, m.application.Stages[index].DisplayTitle()))
}

func (m *Model) handleStageAction(stageID string, action progress.Action) {
	m.setStatus(fmt.Sprintf("%s requested for %s", action.Label(), m.stageTitle(stageID)))
	m.pending = append(m.pending, StageActionMsg{ApplicationID: m.application.ID, StageID: stageID, Action: action})
}

func (m *Model) handleSubItemClick(stageID, subItemID string) {
	m.setStatus(fmt.Sprintf("Opened %s · %s", m.stageTitle(stageID), subItemID))
	m.pending = append(m.pending, SubItemMsg{ApplicationID: m.application.ID, StageID: stageID, SubItemID: subItemID})
}

func (m *Model) isExpanded(stageID string) bool {
	if m.expanded != nil {
		return m.expanded.Has(stageID)
	}
	return m.engine.Expanded().Has(stageID)
}

func (m *Model) stageTitle(stageID string) string {
	if idx, ok := progress.Index(m.application.Stages, stageID); ok {
		return m.application.Stages[idx].DisplayTitle()
	}
	return stageID
}

func (m *Model) moveFocus(delta int) {
	controls := m.frame().Controls()
	if len(controls) == 0 {
		m.focus = ""
		return
	}
	idx := indexOfControl(controls, m.focus)
	if idx < 0 {
		m.focus = controls[0].Key()
		return
	}
	idx = (idx + delta + len(controls)) % len(controls)
	m.focus = controls[idx].Key()
}

func (m *Model) pressFocused() {
	frame := m.frame()
	ctl, ok := frame.Control(m.focus)
	if !ok {
		m.focus = m.firstControlKey(frame)
		return
	}
	ctl.Press()
	m.ensureFocus()
}

func (m *Model) switchMode() {
	if m.mode == ModeStepper {
		m.mode = ModeTimeline
	} else {
		m.mode = ModeStepper
	}
	m.setStatus(fmt.Sprintf("Switched to %s view", m.mode))
	m.ensureFocus()
}

func (m *Model) stepBy(delta int) {
	if m.mode != ModeStepper || len(m.application.Stages) == 0 {
		return
	}
	last := len(m.application.Stages) - 1
	next := m.currentStep + delta
	if m.currentStep < 0 || m.currentStep > last {
		// Recover from a step that points past the list.
		next = min(max(next, 0), last)
	}
	if next < 0 || next > last || next == m.currentStep {
		return
	}
	m.handleStepChange(next)
	m.ensureFocus()
}

// ensureFocus keeps focus on a control that still exists after a re-render.
func (m *Model) ensureFocus() {
	frame := m.frame()
	if _, ok := frame.Control(m.focus); ok {
		return
	}
	m.focus = m.firstControlKey(frame)
}

func (m *Model) firstControlKey(frame Frame) string {
	controls := frame.Controls()
	if len(controls) == 0 {
		return ""
	}
	return controls[0].Key()
}

func (m *Model) flush() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(m.pending))
	for _, msg := range m.pending {
		msg := msg
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	m.pending = nil
	return tea.Batch(cmds...)
}

func (m *Model) syncViewport() {
	if !m.ready {
		return
	}
	frame := m.frame()
	m.viewport.SetContent(frame.Render(m.focus))
	line, ok := frame.Line(m.focus)
	if !ok {
		return
	}
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

func (m *Model) renderHeader() string {
	title := m.application.ID
	if title == "" {
		title = "Application"
	}
	if applicant := strings.TrimSpace(m.application.Applicant); applicant != "" {
		title += " · " + applicant
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		Render("⬡ " + title)
	done := 0
	items := make([]StepItem, 0, len(m.application.Stages))
	for _, stage := range m.application.Stages {
		completed := stage.Status == progress.StatusCompleted
		if completed {
			done++
		}
		items = append(items, StepItem{ID: stage.ID, Label: stage.DisplayTitle(), Completed: completed})
	}
	summary := detailTextStyle.Render(fmt.Sprintf("%d/%d stages complete · %s view", done, len(items), m.mode))
	lines := []string{head, summary}
	if m.mode == ModeTimeline && len(items) > 0 {
		lines = append(lines, RenderSteps(items, Horizontal, nil).String())
	}
	return strings.Join(lines, "\n") + "\n"
}

func (m *Model) renderJournalPanel() string {
	lines, total := m.logbook.Tail(journalLines)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(m.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "journal"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("JOURNAL · %s · %d entries", fileName, total))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(head + "\n" + body)
}

func (m *Model) setStatus(message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	m.statusMsg = message
	m.logProgress(message)
}

func (m *Model) logProgress(status string) {
	if status == m.lastLogStatus {
		return
	}
	m.lastLogStatus = status
	m.logbook.Info("%s", status)
}

func indexOfControl(controls []Control, key string) int {
	for i, ctl := range controls {
		if ctl.Key() == key {
			return i
		}
	}
	return -1
}
