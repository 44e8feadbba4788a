package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordpath/internal/mastery"
)

var masteryCmd = &cobra.Command{
	Use:   "mastery",
	Short: "Record symbol mastery",
}

var masterySetCmd = &cobra.Command{
	Use:   "set <user> <set> <symbol> <state>",
	Short: "Set a symbol's mastery state (not-started, learning or mastered)",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := mastery.ParseState(args[3])
		if err != nil {
			return err
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		tr, err := e.Mastery.UpdateSymbolMastery(cmd.Context(), args[0], args[1], args[2], state)
		if err != nil {
			return err
		}
		if tr == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is already %s\n", args[2], state)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s\n", tr.SymbolID, tr.From, tr.To)
		return nil
	},
}

var masteryResetCmd = &cobra.Command{
	Use:   "reset <user> <set>",
	Short: "Reset every symbol of a set to not-started",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		changed, err := e.Mastery.ResetSet(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reset %d symbols in %s\n", len(changed), args[1])
		return nil
	},
}

var masteryListCmd = &cobra.Command{
	Use:   "list <user> <set>",
	Short: "List the mastered symbols of a set",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		ids, err := e.Mastery.MasteredSymbols(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if ids == nil {
			ids = []string{}
		}

		var text strings.Builder
		for _, id := range ids {
			fmt.Fprintln(&text, id)
		}
		fmt.Fprintf(&text, "%d mastered\n", len(ids))
		return emit(cmd, ids, text.String())
	},
}

func init() {
	addFormatFlag(masteryListCmd)

	masteryCmd.AddCommand(masterySetCmd)
	masteryCmd.AddCommand(masteryListCmd)
	masteryCmd.AddCommand(masteryResetCmd)
}
