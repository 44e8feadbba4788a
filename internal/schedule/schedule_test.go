package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordpath/internal/errs"
	"github.com/abhisek/wordpath/internal/vocab"
)

type brokenHistory struct{ err error }

func (b brokenHistory) RecordAssessment(context.Context, Record) error { return b.err }
func (b brokenHistory) LatestAssessment(context.Context, string, string) (*Record, error) {
	return nil, b.err
}

var base = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func TestIntervals_Days(t *testing.T) {
	iv := DefaultIntervals()
	tests := []struct {
		level vocab.Level
		want  int
	}{
		{vocab.LevelBeginner, 3},
		{vocab.LevelIntermediate, 7},
		{vocab.LevelAdvanced, 14},
		{vocab.Level(""), 3},
	}
	for _, tt := range tests {
		if got := iv.Days(tt.level); got != tt.want {
			t.Errorf("Days(%q) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestIntervals_Validate(t *testing.T) {
	require.NoError(t, DefaultIntervals().Validate())
	err := Intervals{Beginner: 1, Intermediate: 0, Advanced: 5}.Validate()
	assert.True(t, errs.IsValidation(err))
}

func TestAssessmentDates_NeverAssessed(t *testing.T) {
	s := NewScheduler(NewMemoryHistory(), DefaultIntervals())
	last, next, err := s.AssessmentDates(context.Background(), "u1", "core")
	require.NoError(t, err)
	assert.Nil(t, last)
	assert.Nil(t, next)
	assert.True(t, IsDue(next, base))
}

func TestAssessmentDates_UsesLatestRecord(t *testing.T) {
	ctx := context.Background()
	s := NewScheduler(NewMemoryHistory(), DefaultIntervals())

	require.NoError(t, s.Record(ctx, Record{
		UserID: "u1", SetID: "core", AssessmentID: "a1",
		MasteryLevel: vocab.LevelBeginner, CompletedAt: base,
	}))
	require.NoError(t, s.Record(ctx, Record{
		UserID: "u1", SetID: "core", AssessmentID: "a2",
		MasteryLevel: vocab.LevelAdvanced, CompletedAt: base.Add(48 * time.Hour),
	}))
	// Another learner does not affect u1.
	require.NoError(t, s.Record(ctx, Record{
		UserID: "u2", SetID: "core", AssessmentID: "a3",
		MasteryLevel: vocab.LevelBeginner, CompletedAt: base.Add(96 * time.Hour),
	}))

	last, next, err := s.AssessmentDates(ctx, "u1", "core")
	require.NoError(t, err)
	require.NotNil(t, last)
	require.NotNil(t, next)
	assert.Equal(t, base.Add(48*time.Hour), *last)
	assert.Equal(t, base.Add(48*time.Hour).AddDate(0, 0, 14), *next)

	assert.False(t, IsDue(next, base.Add(72*time.Hour)))
	assert.Equal(t, 13, DaysUntil(next, base.Add(72*time.Hour)))
	assert.True(t, IsDue(next, *next))
	assert.Equal(t, 0, DaysUntil(next, next.Add(time.Hour)))
}

func TestRecord_Validation(t *testing.T) {
	s := NewScheduler(NewMemoryHistory(), DefaultIntervals())
	ctx := context.Background()

	err := s.Record(ctx, Record{UserID: "u1", SetID: "core", CompletedAt: base})
	assert.True(t, errs.IsValidation(err))

	err = s.Record(ctx, Record{UserID: "u1", SetID: "core", AssessmentID: "a"})
	assert.True(t, errs.IsValidation(err))
}

func TestScheduler_PropagatesHistoryErrors(t *testing.T) {
	boom := errors.New("db locked")
	s := NewScheduler(brokenHistory{err: boom}, DefaultIntervals())
	ctx := context.Background()

	_, _, err := s.AssessmentDates(ctx, "u1", "core")
	assert.ErrorIs(t, err, boom)

	err = s.Record(ctx, Record{UserID: "u1", SetID: "core", AssessmentID: "a", CompletedAt: base})
	assert.ErrorIs(t, err, boom)
}
