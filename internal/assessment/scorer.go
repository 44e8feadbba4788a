package assessment

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/abhisek/wordpath/internal/errs"
	"github.com/abhisek/wordpath/internal/vocab"
)

const scheduleRecommendation = "Schedule the next assessment to keep tracking progress"

var typeRecommendations = map[QuestionType]string{
	QuestionSymbolRecognition: "Review symbol names with short flashcard-style practice",
	QuestionWordCompletion:    "Practice spelling the words behind each symbol",
	QuestionSentenceBuilding:  "Practice combining symbols into short sentences",
	QuestionContextUsage:      "Use the symbols in everyday routines and conversations",
}

// Scorer turns submitted answers into Results. It never reads the clock, so
// the same inputs always produce the same Results.
type Scorer struct {
	cfg ScoringConfig
}

// NewScorer creates a scorer with the given thresholds.
func NewScorer(cfg ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score grades every question of the assessment against answers, keyed by
// question id. Unanswered questions count as incorrect. An answer for an
// unknown question id is a *errs.ValidationError.
func (s *Scorer) Score(a *Assessment, answers map[string]Answer) (*Results, error) {
	graded, err := grade(a.Questions, answers)
	if err != nil {
		return nil, err
	}
	return s.summarize(graded), nil
}

// Complete returns a scored copy of the assessment with answers, results,
// completion time and duration filled in. a is not modified.
func (s *Scorer) Complete(a *Assessment, answers map[string]Answer, completedAt time.Time) (*Assessment, error) {
	graded, err := grade(a.Questions, answers)
	if err != nil {
		return nil, err
	}

	out := *a
	out.Questions = graded
	out.Results = *s.summarize(graded)
	done := completedAt
	out.CompletedAt = &done
	d := completedAt.Sub(a.StartedAt)
	if d < 0 {
		d = 0
	}
	out.Duration = &d
	return &out, nil
}

// Classify maps an overall accuracy percentage to a mastery level.
func (s *Scorer) Classify(accuracy float64) vocab.Level {
	switch {
	case accuracy < s.cfg.BeginnerBelow:
		return vocab.LevelBeginner
	case accuracy < s.cfg.IntermediateBelow:
		return vocab.LevelIntermediate
	default:
		return vocab.LevelAdvanced
	}
}

// grade validates answers and returns copies of the questions with
// UserAnswer, IsCorrect, TimeSpent and UsedHints set.
func grade(questions []Question, answers map[string]Answer) ([]Question, error) {
	known := make(map[string]bool, len(questions))
	for _, q := range questions {
		known[q.ID] = true
	}

	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var unknown, problems []string
	for _, id := range ids {
		ans := answers[id]
		if !known[id] {
			unknown = append(unknown, id)
			continue
		}
		if ans.TimeSpent < 0 || math.IsNaN(ans.TimeSpent) || math.IsInf(ans.TimeSpent, 0) {
			problems = append(problems, fmt.Sprintf("question %q has invalid time spent %v", id, ans.TimeSpent))
		}
		if ans.UsedHints < 0 {
			problems = append(problems, fmt.Sprintf("question %q has negative hint count", id))
		}
	}
	if len(unknown) > 0 {
		problems = append([]string{"unknown question ids: " + strings.Join(unknown, ", ")}, problems...)
	}
	if len(problems) > 0 {
		return nil, errs.Invalid("answers", "%s", strings.Join(problems, "; "))
	}

	graded := make([]Question, len(questions))
	for i, q := range questions {
		q.Options = append([]string(nil), q.Options...)
		q.Hints = append([]string(nil), q.Hints...)

		correct := false
		if ans, ok := answers[q.ID]; ok {
			submitted := ans.Answer
			q.UserAnswer = &submitted
			q.TimeSpent = ans.TimeSpent
			q.UsedHints = ans.UsedHints
			correct = submitted == q.CorrectAnswer
		} else {
			q.UserAnswer = nil
			q.TimeSpent = 0
		}
		q.IsCorrect = &correct
		graded[i] = q
	}
	return graded, nil
}

func (s *Scorer) summarize(graded []Question) *Results {
	r := &Results{
		TotalQuestions:  len(graded),
		Strengths:       []string{},
		Weaknesses:      []string{},
		Recommendations: []string{},
		NextSteps:       []string{},
		ByType:          []TypeResult{},
	}

	perType := make(map[QuestionType]*TypeResult)
	for _, q := range graded {
		tr, ok := perType[q.Type]
		if !ok {
			tr = &TypeResult{Type: q.Type}
			perType[q.Type] = tr
		}
		tr.Total++
		r.TotalTime += q.TimeSpent
		if q.IsCorrect != nil && *q.IsCorrect {
			r.CorrectAnswers++
			tr.Correct++
		}
	}

	r.Accuracy = percent(r.CorrectAnswers, r.TotalQuestions)
	if r.TotalQuestions > 0 {
		r.AverageTimePerQuestion = r.TotalTime / float64(r.TotalQuestions)
	}
	r.MasteryLevel = s.Classify(r.Accuracy)

	var weak []QuestionType
	for _, qt := range orderedTypes(perType) {
		tr := perType[qt]
		tr.Accuracy = percent(tr.Correct, tr.Total)
		r.ByType = append(r.ByType, *tr)

		label := fmt.Sprintf("%s (%.0f%% correct)", qt.DisplayName(), tr.Accuracy)
		switch {
		case tr.Accuracy >= s.cfg.StrengthThreshold:
			r.Strengths = append(r.Strengths, label)
		case tr.Accuracy < s.cfg.WeaknessThreshold:
			r.Weaknesses = append(r.Weaknesses, label)
			weak = append(weak, qt)
		}
	}

	for _, qt := range weak {
		r.Recommendations = append(r.Recommendations, recommendationFor(qt))
		r.NextSteps = append(r.NextSteps,
			fmt.Sprintf("Focus the next practice sessions on %s", strings.ToLower(qt.DisplayName())))
	}
	r.Recommendations = append(r.Recommendations, scheduleRecommendation)

	if len(weak) == 0 {
		if r.MasteryLevel == vocab.LevelAdvanced {
			r.NextSteps = append(r.NextSteps, "Move on to a more advanced vocabulary set")
		} else {
			r.NextSteps = append(r.NextSteps, "Keep practicing this vocabulary set to build accuracy")
		}
	}

	return r
}

// orderedTypes returns the present question types in canonical order,
// followed by any unknown types sorted by name.
func orderedTypes(perType map[QuestionType]*TypeResult) []QuestionType {
	var out []QuestionType
	seen := make(map[QuestionType]bool)
	for _, qt := range AllQuestionTypes() {
		if _, ok := perType[qt]; ok {
			out = append(out, qt)
			seen[qt] = true
		}
	}
	var extra []string
	for qt := range perType {
		if !seen[qt] {
			extra = append(extra, string(qt))
		}
	}
	sort.Strings(extra)
	for _, qt := range extra {
		out = append(out, QuestionType(qt))
	}
	return out
}

func recommendationFor(qt QuestionType) string {
	if rec, ok := typeRecommendations[qt]; ok {
		return rec
	}
	return fmt.Sprintf("Practice more %s questions", strings.ToLower(qt.DisplayName()))
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
