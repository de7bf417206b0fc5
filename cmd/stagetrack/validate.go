package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/stagetrack/internal/progress"
)

var validateCmd = &cobra.Command{
	Use:   "validate [application.yaml]",
	Short: "Check an application document for malformed stages",
	Long: `Loads the application document and reports stages the view would tolerate but
probably should not see: unknown statuses and duplicate stage or sub-step ids.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(cmd, args)
		if err != nil {
			return err
		}
		scoped := s.logbook.WithScope(s.app.ID)
		if err := progress.Lint(s.app.Stages); err != nil {
			scoped.WarnErrors("validate", err)
			return fmt.Errorf("application %s has problems:\n%w", s.app.ID, err)
		}
		scoped.Info("Validated %d stage(s)", len(s.app.Stages))
		fmt.Fprintf(cmd.OutOrStdout(), "Application %s: %d stage(s) OK\n", s.app.ID, len(s.app.Stages))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
