// Package assessment builds template-based vocabulary assessments and scores
// submitted answers into feedback.
package assessment

import (
	"time"

	"github.com/abhisek/wordpath/internal/errs"
	"github.com/abhisek/wordpath/internal/vocab"
)

// Type is the purpose of an assessment.
type Type string

const (
	TypePlacement Type = "placement"
	TypeProgress  Type = "progress"
	TypeMastery   Type = "mastery"
	TypeCustom    Type = "custom"
)

// ParseType converts a string to a Type, rejecting unknown values.
func ParseType(s string) (Type, error) {
	t := Type(s)
	switch t {
	case TypePlacement, TypeProgress, TypeMastery, TypeCustom:
		return t, nil
	}
	return "", errs.Invalid("assessment type", "%q (want placement, progress, mastery or custom)", s)
}

// QuestionType is the kind of task a question poses.
type QuestionType string

const (
	QuestionSymbolRecognition QuestionType = "symbol_recognition"
	QuestionWordCompletion    QuestionType = "word_completion"
	QuestionSentenceBuilding  QuestionType = "sentence_building"
	QuestionContextUsage      QuestionType = "context_usage"
)

// AllQuestionTypes returns every question type in canonical order.
func AllQuestionTypes() []QuestionType {
	return []QuestionType{
		QuestionSymbolRecognition,
		QuestionWordCompletion,
		QuestionSentenceBuilding,
		QuestionContextUsage,
	}
}

// DisplayName returns a human-readable name for a question type.
func (q QuestionType) DisplayName() string {
	switch q {
	case QuestionSymbolRecognition:
		return "Symbol recognition"
	case QuestionWordCompletion:
		return "Word completion"
	case QuestionSentenceBuilding:
		return "Sentence building"
	case QuestionContextUsage:
		return "Context usage"
	default:
		return string(q)
	}
}

// Question is a single multiple-choice question. Options contain
// CorrectAnswer exactly once.
type Question struct {
	ID            string       `json:"id" yaml:"id"`
	Type          QuestionType `json:"type" yaml:"type"`
	SymbolID      string       `json:"symbol_id" yaml:"symbol_id"`
	Text          string       `json:"question" yaml:"question"`
	Options       []string     `json:"options" yaml:"options"`
	CorrectAnswer string       `json:"correct_answer" yaml:"correct_answer"`
	UserAnswer    *string      `json:"user_answer,omitempty" yaml:"user_answer,omitempty"`
	IsCorrect     *bool        `json:"is_correct,omitempty" yaml:"is_correct,omitempty"`
	TimeSpent     float64      `json:"time_spent" yaml:"time_spent"`
	Hints         []string     `json:"hints" yaml:"hints"`
	UsedHints     int          `json:"used_hints" yaml:"used_hints"`
}

// Assessment is a generated set of questions for one learner and set.
type Assessment struct {
	ID              string         `json:"id" yaml:"id"`
	UserID          string         `json:"user_id" yaml:"user_id"`
	VocabularySetID string         `json:"vocabulary_set_id" yaml:"vocabulary_set_id"`
	Type            Type           `json:"type" yaml:"type"`
	Questions       []Question     `json:"questions" yaml:"questions"`
	Results         Results        `json:"results" yaml:"results"`
	StartedAt       time.Time      `json:"started_at" yaml:"started_at"`
	CompletedAt     *time.Time     `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	Duration        *time.Duration `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// Answer is a learner's submission for one question.
type Answer struct {
	Answer    string  `json:"answer" yaml:"answer"`
	TimeSpent float64 `json:"time_spent" yaml:"time_spent"` // seconds
	UsedHints int     `json:"used_hints,omitempty" yaml:"used_hints,omitempty"`
}

// TypeResult is the aggregate for one question type.
type TypeResult struct {
	Type     QuestionType `json:"type" yaml:"type"`
	Total    int          `json:"total" yaml:"total"`
	Correct  int          `json:"correct" yaml:"correct"`
	Accuracy float64      `json:"accuracy" yaml:"accuracy"`
}

// Results summarizes a scored assessment.
type Results struct {
	TotalQuestions         int          `json:"total_questions" yaml:"total_questions"`
	CorrectAnswers         int          `json:"correct_answers" yaml:"correct_answers"`
	Accuracy               float64      `json:"accuracy" yaml:"accuracy"`
	AverageTimePerQuestion float64      `json:"average_time_per_question" yaml:"average_time_per_question"`
	TotalTime              float64      `json:"total_time" yaml:"total_time"`
	Strengths              []string     `json:"strengths" yaml:"strengths"`
	Weaknesses             []string     `json:"weaknesses" yaml:"weaknesses"`
	Recommendations        []string     `json:"recommendations" yaml:"recommendations"`
	NextSteps              []string     `json:"next_steps" yaml:"next_steps"`
	MasteryLevel           vocab.Level  `json:"mastery_level" yaml:"mastery_level"`
	ByType                 []TypeResult `json:"by_type" yaml:"by_type"`
}
