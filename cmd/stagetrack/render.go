package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/stagetrack/internal/tui"
)

var renderCmd = &cobra.Command{
	Use:   "render [application.yaml]",
	Short: "Print one frame of the progress view and exit",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(cmd, args)
		if err != nil {
			return err
		}
		frame := tui.NewEngine().Render(s.props())
		s.logbook.WithScope(s.app.ID).Info("Rendered %s frame · %d stage(s) shown", frame.Mode, len(frame.Stages))
		fmt.Fprintln(cmd.OutOrStdout(), frame.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
