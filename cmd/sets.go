package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordpath/internal/vocab"
)

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "Browse vocabulary sets",
}

var setsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all vocabulary sets (optionally filtered by level)",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("level")

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		sets := e.Catalog.List()
		if level != "" {
			l := vocab.Level(level)
			if l.Rank() < 0 {
				return fmt.Errorf("unknown level %q (want beginner, intermediate or advanced)", level)
			}
			sets = e.Catalog.ByLevel(l)
		}

		return emit(cmd, sets, renderer(cmd).Sets(sets))
	},
}

var setsShowCmd = &cobra.Command{
	Use:   "show <set>",
	Short: "Show a vocabulary set and its symbols",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		set, err := e.Catalog.Get(args[0])
		if err != nil {
			return err
		}
		return emit(cmd, set, renderer(cmd).Set(cmd.Context(), set, e.Symbols))
	},
}

func init() {
	setsListCmd.Flags().String("level", "", "Filter by level (beginner, intermediate or advanced)")
	addFormatFlag(setsListCmd)
	addFormatFlag(setsShowCmd)

	setsCmd.AddCommand(setsListCmd)
	setsCmd.AddCommand(setsShowCmd)
}
