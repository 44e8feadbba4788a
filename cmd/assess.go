package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/wordpath/internal/app"
	"github.com/abhisek/wordpath/internal/assessment"
	"github.com/abhisek/wordpath/internal/errs"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Generate, take and review assessments",
}

var assessGenerateCmd = &cobra.Command{
	Use:   "generate <user> <set>",
	Short: "Generate an assessment without recording it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := typeFlag(cmd)
		if err != nil {
			return err
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		set, err := e.Catalog.Get(args[1])
		if err != nil {
			return err
		}
		a, err := e.Generator.Generate(cmd.Context(), args[0], set, typ)
		if err != nil {
			return err
		}
		return emit(cmd, a, renderer(cmd).Assessment(a))
	},
}

var assessTakeCmd = &cobra.Command{
	Use:   "take <user> <set>",
	Short: "Score answers from a file and record the assessment",
	Long: "Generates the assessment for the set, scores the answers read from --answers\n" +
		"and records the result. The answers file maps question ids to answers:\n\n" +
		"  q_0: {answer: Want, time_spent: 3.5}\n" +
		"  q_5: {answer: I want drink, time_spent: 6, used_hints: 1}",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := typeFlag(cmd)
		if err != nil {
			return err
		}
		path, _ := cmd.Flags().GetString("answers")
		answers, err := readAnswers(path)
		if err != nil {
			return err
		}

		var link *app.GoalLink
		goalID, _ := cmd.Flags().GetString("goal")
		milestoneID, _ := cmd.Flags().GetString("milestone")
		switch {
		case goalID != "" && milestoneID != "":
			link = &app.GoalLink{GoalID: goalID, MilestoneID: milestoneID}
		case goalID != "" || milestoneID != "":
			return fmt.Errorf("use --goal and --milestone together")
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		done, err := e.TakeAssessment(cmd.Context(), args[0], args[1], typ, answers, link)
		if err != nil {
			return err
		}
		return emit(cmd, done, renderer(cmd).Results(done))
	},
}

var assessShowCmd = &cobra.Command{
	Use:   "show <assessment>",
	Short: "Show a recorded assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		a, err := e.Store.LoadAssessment(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return emit(cmd, a, renderer(cmd).Results(a))
	},
}

var assessHistoryCmd = &cobra.Command{
	Use:   "history <user> <set>",
	Short: "List recorded assessments, newest first",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		recs, err := e.Store.AssessmentHistory(cmd.Context(), args[0], args[1], limit)
		if err != nil {
			return err
		}
		return emit(cmd, recs, renderer(cmd).History(recs))
	},
}

func typeFlag(cmd *cobra.Command) (assessment.Type, error) {
	s, _ := cmd.Flags().GetString("type")
	return assessment.ParseType(s)
}

// readAnswers decodes a YAML (or JSON) answers file keyed by question id.
func readAnswers(path string) (map[string]assessment.Answer, error) {
	if path == "" {
		return nil, errs.Invalid("answers", "--answers is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}

	answers := map[string]assessment.Answer{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&answers); err != nil {
		return nil, errs.Invalid("answers", "%s: %v", path, err)
	}
	return answers, nil
}

func init() {
	for _, c := range []*cobra.Command{assessGenerateCmd, assessTakeCmd} {
		c.Flags().String("type", string(assessment.TypeProgress), "Assessment type: placement, progress, mastery or custom")
	}
	assessTakeCmd.Flags().String("answers", "", "YAML or JSON file of answers keyed by question id")
	assessTakeCmd.Flags().String("goal", "", "Goal whose milestone progress is set to the accuracy")
	assessTakeCmd.Flags().String("milestone", "", "Milestone of --goal to update")
	assessHistoryCmd.Flags().Int("limit", 10, "Maximum number of assessments (0 for all)")

	for _, c := range []*cobra.Command{assessGenerateCmd, assessTakeCmd, assessShowCmd, assessHistoryCmd} {
		addFormatFlag(c)
	}

	assessCmd.AddCommand(assessGenerateCmd)
	assessCmd.AddCommand(assessTakeCmd)
	assessCmd.AddCommand(assessShowCmd)
	assessCmd.AddCommand(assessHistoryCmd)
}
