package cmd

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordpath/internal/errs"
	"github.com/abhisek/wordpath/internal/goals"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Track educational goals and milestones",
}

var goalCreateCmd = &cobra.Command{
	Use:   "create <user>",
	Short: "Create a goal with milestones",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		desc, _ := cmd.Flags().GetString("description")
		typ, _ := cmd.Flags().GetString("type")
		target, _ := cmd.Flags().GetString("target")
		milestones, _ := cmd.Flags().GetStringArray("milestone")

		targetDate, err := time.Parse(time.DateOnly, target)
		if err != nil {
			return errs.Invalid("target", "%q is not a YYYY-MM-DD date", target)
		}
		specs := make([]goals.MilestoneSpec, 0, len(milestones))
		for _, m := range milestones {
			specs = append(specs, goals.MilestoneSpec{Title: m})
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		g, err := e.Goals.CreateGoal(cmd.Context(), args[0], title, desc, goals.Type(typ), targetDate, specs)
		if err != nil {
			return err
		}
		return emit(cmd, g, renderer(cmd).Goal(g))
	},
}

var goalListCmd = &cobra.Command{
	Use:   "list <user>",
	Short: "List a learner's goals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		all, err := e.Store.GoalsForUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return emit(cmd, all, renderer(cmd).Goals(all))
	},
}

var goalShowCmd = &cobra.Command{
	Use:   "show <goal>",
	Short: "Show a goal and its milestones",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		g, err := e.Goals.Goal(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return emit(cmd, g, renderer(cmd).Goal(g))
	},
}

var goalProgressCmd = &cobra.Command{
	Use:   "progress <goal> <milestone> <percent>",
	Short: "Set a milestone's progress (clamped to 0-100)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		pct, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return errs.Invalid("progress", "%q is not a number", args[2])
		}
		return updateGoal(cmd, args[0], func(t *goals.Tracker) error {
			return t.UpdateMilestoneProgress(cmd.Context(), args[0], args[1], pct)
		})
	},
}

var goalCompleteMilestoneCmd = &cobra.Command{
	Use:   "complete-milestone <goal> <milestone>",
	Short: "Mark a milestone completed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateGoal(cmd, args[0], func(t *goals.Tracker) error {
			return t.MarkMilestoneCompleted(cmd.Context(), args[0], args[1])
		})
	},
}

var goalCompleteCmd = &cobra.Command{
	Use:   "complete <goal>",
	Short: "Mark a goal completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateGoal(cmd, args[0], func(t *goals.Tracker) error {
			return t.MarkGoalCompleted(cmd.Context(), args[0])
		})
	},
}

// updateGoal applies fn and prints the goal afterwards.
func updateGoal(cmd *cobra.Command, goalID string, fn func(*goals.Tracker) error) error {
	e, err := openEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	if err := fn(e.Goals); err != nil {
		return err
	}
	g, err := e.Goals.Goal(cmd.Context(), goalID)
	if err != nil {
		return err
	}
	log.Info("goal updated", "goal_id", g.ID, "progress", g.Progress, "completed", g.IsCompleted)
	return emit(cmd, g, renderer(cmd).Goal(g))
}

func init() {
	f := goalCreateCmd.Flags()
	f.String("title", "", "Goal title")
	f.String("description", "", "Goal description")
	f.String("type", string(goals.TypeVocabulary), "Goal type: vocabulary, communication, social or academic")
	f.String("target", "", "Target date (YYYY-MM-DD)")
	f.StringArray("milestone", nil, "Milestone title (repeatable)")
	_ = goalCreateCmd.MarkFlagRequired("title")
	_ = goalCreateCmd.MarkFlagRequired("target")

	for _, c := range []*cobra.Command{goalCreateCmd, goalListCmd, goalShowCmd, goalProgressCmd, goalCompleteMilestoneCmd, goalCompleteCmd} {
		addFormatFlag(c)
	}

	goalCmd.AddCommand(goalCreateCmd)
	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalShowCmd)
	goalCmd.AddCommand(goalProgressCmd)
	goalCmd.AddCommand(goalCompleteMilestoneCmd)
	goalCmd.AddCommand(goalCompleteCmd)
}
