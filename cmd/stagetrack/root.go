package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stagetrack",
	Short: "Show a loan application's progress stage by stage",
	Long: `stagetrack renders the stages of a loan application, their status, sub-steps
and the actions each stage offers, as a timeline or a one-stage-at-a-time stepper.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("dir", ".", "Project directory containing .stagetrack/config.yaml")
	flags.Bool("plain", false, "Disable colours and styling")
	flags.String("mode", "", "Presentation mode: timeline or stepper")
	flags.Int("step", 0, "Current step in stepper mode (0-based)")
	flags.Bool("controlled", false, "Let the host own expansion state")
	flags.StringSlice("expand", nil, "Stage ids to start expanded (implies --controlled)")
	flags.Bool("markdown", false, "Render stage descriptions as markdown")
}
