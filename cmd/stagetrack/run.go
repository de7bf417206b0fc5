package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kingrea/stagetrack/internal/tui"
)

var runCmd = &cobra.Command{
	Use:   "run [application.yaml]",
	Short: "Browse an application's progress interactively",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(cmd, args)
		if err != nil {
			return err
		}
		if remember, _ := cmd.Flags().GetBool("remember"); remember {
			if err := s.cfg.SetDefaultMode(string(s.opts.Mode)); err != nil {
				return err
			}
		}
		p := tea.NewProgram(
			tui.NewModel(s.app, s.opts),
			tea.WithAltScreen(),
		)
		if _, err := p.Run(); err != nil {
			s.logbook.Error("TUI exited: %v", err)
			return fmt.Errorf("run tui: %w", err)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().Bool("remember", false, "Save --mode as the project default")
	rootCmd.AddCommand(runCmd)
}
