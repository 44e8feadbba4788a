// Package schedule decides when a learner should next be assessed on a
// vocabulary set, based on their most recent assessment.
package schedule

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/abhisek/wordpath/internal/errs"
	"github.com/abhisek/wordpath/internal/vocab"
)

// Intervals holds the days until the next assessment, keyed by the mastery
// classification of the last one. Weaker results are reassessed sooner.
type Intervals struct {
	Beginner     int `yaml:"beginner"`
	Intermediate int `yaml:"intermediate"`
	Advanced     int `yaml:"advanced"`
}

// DefaultIntervals returns the default reassessment intervals.
func DefaultIntervals() Intervals {
	return Intervals{Beginner: 3, Intermediate: 7, Advanced: 14}
}

// Days returns the interval in days for a classification. Unknown levels
// use the shortest interval.
func (iv Intervals) Days(level vocab.Level) int {
	switch level {
	case vocab.LevelAdvanced:
		return iv.Advanced
	case vocab.LevelIntermediate:
		return iv.Intermediate
	default:
		return iv.Beginner
	}
}

// Validate checks that every interval is positive.
func (iv Intervals) Validate() error {
	if iv.Beginner <= 0 || iv.Intermediate <= 0 || iv.Advanced <= 0 {
		return errs.Invalid("schedule intervals", "all intervals must be > 0 days, got %+v", iv)
	}
	return nil
}

// Record is a completed assessment as seen by the scheduler.
type Record struct {
	UserID       string      `json:"user_id"`
	SetID        string      `json:"vocabulary_set_id"`
	AssessmentID string      `json:"assessment_id"`
	Type         string      `json:"type"`
	Accuracy     float64     `json:"accuracy"`
	MasteryLevel vocab.Level `json:"mastery_level"`
	CompletedAt  time.Time   `json:"completed_at"`
}

// History stores completed assessments.
type History interface {
	RecordAssessment(ctx context.Context, rec Record) error

	// LatestAssessment returns the most recently completed assessment for the
	// pair, or nil if there is none.
	LatestAssessment(ctx context.Context, userID, setID string) (*Record, error)
}

// Scheduler supplies last/next assessment dates from a History.
type Scheduler struct {
	history   History
	intervals Intervals
}

// NewScheduler creates a scheduler over the given history.
func NewScheduler(history History, intervals Intervals) *Scheduler {
	return &Scheduler{history: history, intervals: intervals}
}

// AssessmentDates returns when the learner was last assessed on the set and
// when the next assessment is due. Both are nil if the learner has never
// been assessed on it.
func (s *Scheduler) AssessmentDates(ctx context.Context, userID, setID string) (last, next *time.Time, err error) {
	rec, err := s.history.LatestAssessment(ctx, userID, setID)
	if err != nil {
		return nil, nil, fmt.Errorf("latest assessment: %w", err)
	}
	if rec == nil {
		return nil, nil, nil
	}
	l := rec.CompletedAt
	n := s.NextAssessment(*rec)
	return &l, &n, nil
}

// NextAssessment returns the due date following a completed assessment.
func (s *Scheduler) NextAssessment(rec Record) time.Time {
	return rec.CompletedAt.AddDate(0, 0, s.intervals.Days(rec.MasteryLevel))
}

// Record validates and stores a completed assessment.
func (s *Scheduler) Record(ctx context.Context, rec Record) error {
	if rec.UserID == "" || rec.SetID == "" || rec.AssessmentID == "" {
		return errs.Invalid("assessment record", "user, set and assessment ids are required")
	}
	if rec.CompletedAt.IsZero() {
		return errs.Invalid("assessment record", "completion time is required")
	}
	if err := s.history.RecordAssessment(ctx, rec); err != nil {
		return fmt.Errorf("record assessment: %w", err)
	}
	return nil
}

// IsDue returns true if an assessment is due at now. A learner who has
// never been assessed is always due.
func IsDue(next *time.Time, now time.Time) bool {
	return next == nil || !now.Before(*next)
}

// DaysUntil returns the number of days until next, rounded up, or 0 if due.
func DaysUntil(next *time.Time, now time.Time) int {
	if IsDue(next, now) {
		return 0
	}
	return int(math.Ceil(next.Sub(now).Hours() / 24.0))
}
