package report

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordpath/internal/assessment"
	"github.com/abhisek/wordpath/internal/goals"
	"github.com/abhisek/wordpath/internal/progress"
	"github.com/abhisek/wordpath/internal/schedule"
	"github.com/abhisek/wordpath/internal/vocab"
)

var now = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

func plain() *Renderer {
	r := New(false)
	r.now = func() time.Time { return now }
	return r
}

func TestProgressBarCells(t *testing.T) {
	tests := []struct {
		percent       float64
		filled, empty int
	}{
		{0, 0, 20},
		{50, 10, 10},
		{100, 20, 0},
		{150, 20, 0},
		{-5, 0, 20},
	}
	for _, tt := range tests {
		f, e := ProgressBar{Percent: tt.percent}.cells(20)
		assert.Equal(t, tt.filled, f, "percent %v", tt.percent)
		assert.Equal(t, tt.empty, e, "percent %v", tt.percent)
	}
}

func TestProgressBarRender(t *testing.T) {
	out := ProgressBar{Label: "Mastery", Percent: 50, Width: 41}.render(plainStyles())
	assert.True(t, strings.HasPrefix(out, "Mastery  "))
	assert.True(t, strings.HasSuffix(out, " 50%"))
	assert.Equal(t, strings.Count(out, barFilledRune), strings.Count(out, barEmptyRune))
}

func TestSets(t *testing.T) {
	out := plain().Sets([]vocab.Set{
		{ID: "first-words", Name: "First Words", Level: vocab.LevelBeginner, AgeRange: vocab.AgeRange{Min: 2, Max: 6}, Symbols: []string{"a", "b"}},
		{ID: "x", Name: "A very long vocabulary set name indeed", Level: vocab.LevelAdvanced},
	})
	assert.Contains(t, out, "first-words")
	assert.Contains(t, out, "Beginner")
	assert.Contains(t, out, "2-6")
	assert.Contains(t, out, "A very long vocabular...")
	assert.Contains(t, out, "2 sets")
}

func TestFit(t *testing.T) {
	assert.Equal(t, "Feelings  ", fit("Feelings", 10))

	long := strings.Repeat("Ééé ", 10)
	got := fit(long, 24)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, 24, ansi.StringWidth(got))
}

func TestSets_MultibyteNames(t *testing.T) {
	out := New(false).Sets([]vocab.Set{{ID: "gefuehle", Name: "Gefühle und Empfindungen für jeden Tag", Level: vocab.LevelAdvanced}})
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, "Gefühle")
	assert.Contains(t, out, "...")
}

func TestSet_ResolvesSymbolNames(t *testing.T) {
	idx := vocab.NewSymbolIndex([]vocab.Symbol{{ID: "want", Name: "Want"}})
	out := plain().Set(context.Background(), vocab.Set{
		ID: "s", Name: "Starter", Level: vocab.LevelBeginner, Symbols: []string{"want", "ghost"},
	}, idx)
	assert.Contains(t, out, "Want")
	assert.Contains(t, out, "ghost")
	assert.Contains(t, out, "?")
}

func TestProgress(t *testing.T) {
	last := now.AddDate(0, 0, -2)
	next := now.AddDate(0, 0, 5)
	p := &progress.VocabularyProgress{
		UserID:            "u1",
		VocabularySetID:   "first-words",
		TotalSymbols:      4,
		MasteredSymbols:   []string{"a"},
		LearningSymbols:   []string{"b"},
		NotStartedSymbols: []string{"c", "d"},
		MasteryLevel:      25,
		LastAssessment:    &last,
		NextAssessment:    &next,
		LearningPath:      progress.GeneratePath([]string{"a", "b", "c", "d"}),
	}
	out := plain().Progress(p)
	assert.Contains(t, out, "first-words")
	assert.Contains(t, out, " 25%")
	assert.Contains(t, out, "mastered 1")
	assert.Contains(t, out, "not started 2")
	assert.Contains(t, out, "in 5 days")
	assert.Contains(t, out, "2026-05-08")
}

func TestProgress_NeverAssessed(t *testing.T) {
	out := plain().Progress(&progress.VocabularyProgress{UserID: "u1", VocabularySetID: "s"})
	assert.Contains(t, out, "Not assessed yet")
}

func TestOverview_FlagsDueSets(t *testing.T) {
	later := now.AddDate(0, 0, 3)
	out := plain().Overview("u1", []progress.VocabularyProgress{
		{VocabularySetID: "due", MasteryLevel: 10},
		{VocabularySetID: "later", MasteryLevel: 90, NextAssessment: &later},
	})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "assessment due")
	assert.NotContains(t, lines[3], "assessment due")
}

func TestResults(t *testing.T) {
	a := &assessment.Assessment{
		VocabularySetID: "first-words",
		Results: assessment.Results{
			TotalQuestions: 8,
			CorrectAnswers: 6,
			Accuracy:       75,
			MasteryLevel:   vocab.LevelIntermediate,
			Strengths:      []string{"Symbol recognition (100% correct)"},
			Weaknesses:     []string{"Sentence building (33% correct)"},
			ByType: []assessment.TypeResult{
				{Type: assessment.QuestionSymbolRecognition, Total: 5, Correct: 5, Accuracy: 100},
			},
		},
	}
	out := plain().Results(a)
	assert.Contains(t, out, "6 of 8 correct")
	assert.Contains(t, out, "Intermediate")
	assert.Contains(t, out, "Symbol recognition   5/5")
	assert.Contains(t, out, "Needs work")
	assert.NotContains(t, out, "Recommendations")
}

func TestAssessment_ListsQuestions(t *testing.T) {
	out := plain().Assessment(&assessment.Assessment{
		ID:   "a1",
		Type: assessment.TypeProgress,
		Questions: []assessment.Question{
			{ID: "q_0", Text: "What does this symbol mean?", Options: []string{"Want", "Help"}},
		},
	})
	assert.Contains(t, out, "q_0")
	assert.Contains(t, out, "- Help")

	empty := plain().Assessment(&assessment.Assessment{ID: "a2"})
	assert.Contains(t, empty, "No questions")
}

func TestHistory(t *testing.T) {
	assert.Equal(t, "No assessments recorded.\n", plain().History(nil))

	out := plain().History([]schedule.Record{{
		AssessmentID: "a1", Type: "progress", Accuracy: 62.5,
		MasteryLevel: vocab.LevelIntermediate, CompletedAt: now,
	}})
	assert.Contains(t, out, "62.5%")
	assert.Contains(t, out, "2026-05-10")
}

func TestGoal(t *testing.T) {
	g := &goals.Goal{
		ID:         "g1",
		Title:      "Request items",
		Type:       goals.TypeCommunication,
		TargetDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Progress:   50,
		Milestones: []goals.Milestone{
			{ID: "m1", Title: "Use want", IsCompleted: true, Progress: 100},
			{ID: "m2", Title: "Use more", Progress: 0},
		},
	}
	out := plain().Goal(g)
	assert.Contains(t, out, "active")
	assert.Contains(t, out, "[x] Use want")
	assert.Contains(t, out, "[ ] Use more")
	assert.Contains(t, out, "2026-06-01")

	g.IsCompleted = true
	assert.Contains(t, plain().Goal(g), "completed")
}

func TestGoals(t *testing.T) {
	assert.Equal(t, "No goals yet.\n", plain().Goals(nil))
	out := plain().Goals([]goals.Goal{{ID: "g1", Title: "Say hello", Progress: 40}})
	assert.Contains(t, out, "Say hello")
	assert.Contains(t, out, "40%")
}

func TestColorRendererKeepsText(t *testing.T) {
	out := New(true).Goal(&goals.Goal{ID: "g1", Title: "Request items"})
	assert.Contains(t, out, "Request items")
}
