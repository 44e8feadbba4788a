package progress

import "fmt"

// StepType is the kind of activity a learning step asks for.
type StepType string

const (
	StepIntroduction StepType = "introduction"
	StepPractice     StepType = "practice"
	StepAssessment   StepType = "assessment"
	// StepMastery is part of the model but not assigned by GeneratePath.
	StepMastery StepType = "mastery"
)

// Difficulty of a learning step.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// LearningStep is one per-symbol step of a learning path.
type LearningStep struct {
	ID          string     `json:"id"`
	Type        StepType   `json:"type"`
	SymbolID    string     `json:"symbol_id"`
	Completed   bool       `json:"completed"`
	Attempts    int        `json:"attempts"`
	SuccessRate float64    `json:"success_rate"`
	Difficulty  Difficulty `json:"difficulty"`
}

// Positional thresholds of the placeholder path policy. They do not reflect
// learner performance; real attempts/success rates must come from
// interaction logs.
const (
	introductionSteps = 3
	practiceSteps     = 6
	completedSteps    = 4

	completedAttempts    = 3
	completedSuccessRate = 0.8
)

// GeneratePath builds one learning step per symbol, in the given order.
// The output depends only on the input sequence.
func GeneratePath(symbols []string) []LearningStep {
	steps := make([]LearningStep, len(symbols))
	for i, id := range symbols {
		step := LearningStep{
			ID:       fmt.Sprintf("step_%d", i),
			SymbolID: id,
		}

		switch {
		case i < introductionSteps:
			step.Type = StepIntroduction
			step.Difficulty = DifficultyEasy
		case i < practiceSteps:
			step.Type = StepPractice
			step.Difficulty = DifficultyMedium
		default:
			step.Type = StepAssessment
			step.Difficulty = DifficultyHard
		}

		if i < completedSteps {
			step.Completed = true
			step.Attempts = completedAttempts
			step.SuccessRate = completedSuccessRate
		}

		steps[i] = step
	}
	return steps
}

// NextStep returns the first incomplete step, or nil if every step is done.
func NextStep(path []LearningStep) *LearningStep {
	for i := range path {
		if !path[i].Completed {
			return &path[i]
		}
	}
	return nil
}
