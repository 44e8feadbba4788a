package assessment

import "github.com/abhisek/wordpath/internal/errs"

// GeneratorConfig controls how many questions of each template are built.
type GeneratorConfig struct {
	// RecognitionQuestions is taken from the start of the set (default 5).
	RecognitionQuestions int `yaml:"recognition_questions"`
	// SentenceQuestions is taken from the symbols that follow (default 3).
	SentenceQuestions int `yaml:"sentence_questions"`
}

// DefaultGeneratorConfig returns the default question counts.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{RecognitionQuestions: 5, SentenceQuestions: 3}
}

// Validate checks the question counts.
func (c GeneratorConfig) Validate() error {
	if c.RecognitionQuestions < 0 || c.SentenceQuestions < 0 {
		return errs.Invalid("assessment config", "question counts must be >= 0, got %+v", c)
	}
	return nil
}

// ScoringConfig holds the policy thresholds used by the scorer. All values
// are accuracy percentages.
type ScoringConfig struct {
	// A question type is a strength at or above this accuracy (default 80).
	StrengthThreshold float64 `yaml:"strength_threshold"`
	// A question type is a weakness below this accuracy (default 50).
	WeaknessThreshold float64 `yaml:"weakness_threshold"`
	// Overall accuracy below this is classified beginner (default 60).
	BeginnerBelow float64 `yaml:"beginner_below"`
	// Overall accuracy below this (and not beginner) is intermediate (default 85).
	IntermediateBelow float64 `yaml:"intermediate_below"`
}

// DefaultScoringConfig returns the default thresholds.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		StrengthThreshold: 80,
		WeaknessThreshold: 50,
		BeginnerBelow:     60,
		IntermediateBelow: 85,
	}
}

// Validate checks that thresholds are percentages and consistently ordered.
func (c ScoringConfig) Validate() error {
	for name, v := range map[string]float64{
		"strength_threshold": c.StrengthThreshold,
		"weakness_threshold": c.WeaknessThreshold,
		"beginner_below":     c.BeginnerBelow,
		"intermediate_below": c.IntermediateBelow,
	} {
		if v < 0 || v > 100 {
			return errs.Invalid("scoring config", "%s must be within [0, 100], got %v", name, v)
		}
	}
	if c.WeaknessThreshold > c.StrengthThreshold {
		return errs.Invalid("scoring config", "weakness_threshold %v exceeds strength_threshold %v", c.WeaknessThreshold, c.StrengthThreshold)
	}
	if c.BeginnerBelow > c.IntermediateBelow {
		return errs.Invalid("scoring config", "beginner_below %v exceeds intermediate_below %v", c.BeginnerBelow, c.IntermediateBelow)
	}
	return nil
}
