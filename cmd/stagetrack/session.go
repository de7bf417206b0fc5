package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/kingrea/stagetrack/internal/config"
	"github.com/kingrea/stagetrack/internal/logbook"
	"github.com/kingrea/stagetrack/internal/progress"
	"github.com/kingrea/stagetrack/internal/tui"
)

const defaultRenderWidth = 80

// session is everything a command needs after flags and config are merged.
type session struct {
	cfg     *config.Config
	app     progress.Application
	opts    tui.Options
	logbook *logbook.Logbook
}

// loadSession reads the project config, applies flag overrides and loads the
// application document named by args[0] or by the config.
func loadSession(cmd *cobra.Command, args []string) (*session, error) {
	flags := cmd.Flags()
	dir, _ := flags.GetString("dir")
	if err := config.InitDir(dir); err != nil {
		return nil, err
	}
	cfg, err := config.New(dir)
	if err != nil {
		return nil, err
	}
	view := cfg.Project.View

	modeName := view.Mode
	if flags.Changed("mode") {
		modeName, _ = flags.GetString("mode")
	}
	mode, err := tui.ParseMode(modeName)
	if err != nil {
		return nil, err
	}
	step := view.CurrentStep
	if flags.Changed("step") {
		step, _ = flags.GetInt("step")
	}
	controlled := view.Controlled
	if flags.Changed("controlled") {
		controlled, _ = flags.GetBool("controlled")
	}
	expanded := view.Expanded
	if flags.Changed("expand") {
		expanded, _ = flags.GetStringSlice("expand")
		controlled = true
	}
	plain := view.Plain
	if flags.Changed("plain") {
		plain, _ = flags.GetBool("plain")
	}
	markdown := view.Markdown
	if flags.Changed("markdown") {
		markdown, _ = flags.GetBool("markdown")
	}
	if plain {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	path := cfg.ApplicationPath()
	if len(args) > 0 {
		path = args[0]
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("no application document given and none configured in %s", cfg.ProjectConfigPath())
	}
	app, err := progress.LoadApplicationFile(path)
	if err != nil {
		return nil, err
	}

	book, err := logbook.New(cfg.JournalPath())
	if err != nil {
		return nil, err
	}
	s := &session{
		cfg: cfg,
		app: app,
		opts: tui.Options{
			Mode:        mode,
			CurrentStep: step,
			Controlled:  controlled,
			ExpandedIDs: expanded,
			Logbook:     book,
		},
		logbook: book,
	}
	if markdown {
		s.opts.DescriptionRenderer = tui.NewMarkdownRenderer(defaultRenderWidth, plain)
	}
	return s, nil
}

// props converts the session options into engine props for a one-shot render.
func (s *session) props() tui.Props {
	props := tui.Props{
		Stages:              s.app.Stages,
		Mode:                s.opts.Mode,
		CurrentStep:         s.opts.CurrentStep,
		DescriptionRenderer: s.opts.DescriptionRenderer,
	}
	if s.opts.Controlled {
		props.ExpandedIDs = progress.NewIDSet(s.opts.ExpandedIDs...)
	}
	return props
}
