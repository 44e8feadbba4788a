package cmd

import (
	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show learner progress",
}

var progressShowCmd = &cobra.Command{
	Use:   "show <user> <set>",
	Short: "Show a learner's progress through one vocabulary set",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.Progress.GetProgress(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return emit(cmd, p, renderer(cmd).Progress(p))
	},
}

var progressOverviewCmd = &cobra.Command{
	Use:   "overview <user>",
	Short: "Show a learner's progress across every vocabulary set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		all, err := e.Progress.Overview(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return emit(cmd, all, renderer(cmd).Overview(args[0], all))
	},
}

func init() {
	addFormatFlag(progressShowCmd)
	addFormatFlag(progressOverviewCmd)

	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressOverviewCmd)
}
