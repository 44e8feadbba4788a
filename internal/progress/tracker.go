// Package progress derives a learner's progress through a vocabulary set
// from per-symbol mastery state.
package progress

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/wordpath/internal/errs"
	"github.com/abhisek/wordpath/internal/mastery"
	"github.com/abhisek/wordpath/internal/vocab"
)

// VocabularyProgress is a snapshot of a learner's progress through one set.
// MasteredSymbols, LearningSymbols and NotStartedSymbols partition the set's
// symbols, each in catalog order.
type VocabularyProgress struct {
	UserID            string         `json:"user_id"`
	VocabularySetID   string         `json:"vocabulary_set_id"`
	TotalSymbols      int            `json:"total_symbols"`
	MasteredSymbols   []string       `json:"mastered_symbols"`
	LearningSymbols   []string       `json:"learning_symbols"`
	NotStartedSymbols []string       `json:"not_started_symbols"`
	MasteryLevel      int            `json:"mastery_level"`
	LastAssessment    *time.Time     `json:"last_assessment,omitempty"`
	NextAssessment    *time.Time     `json:"next_assessment,omitempty"`
	LearningPath      []LearningStep `json:"learning_path"`
}

// Scheduler supplies assessment dates for a (user, set) pair.
type Scheduler interface {
	AssessmentDates(ctx context.Context, userID, setID string) (last, next *time.Time, err error)
}

// Tracker computes VocabularyProgress from the catalog and a mastery store.
type Tracker struct {
	catalog   vocab.Catalog
	store     mastery.Store
	scheduler Scheduler
}

// NewTracker creates a tracker. scheduler may be nil, in which case
// assessment dates are left empty.
func NewTracker(catalog vocab.Catalog, store mastery.Store, scheduler Scheduler) *Tracker {
	return &Tracker{catalog: catalog, store: store, scheduler: scheduler}
}

// GetProgress returns the learner's progress through a vocabulary set.
// It does not modify any state.
func (t *Tracker) GetProgress(ctx context.Context, userID, setID string) (*VocabularyProgress, error) {
	set, err := t.catalog.Get(setID)
	if err != nil {
		return nil, err
	}
	return t.progressFor(ctx, userID, set)
}

func (t *Tracker) progressFor(ctx context.Context, userID string, set vocab.Set) (*VocabularyProgress, error) {
	p := &VocabularyProgress{
		UserID:            userID,
		VocabularySetID:   set.ID,
		TotalSymbols:      len(set.Symbols),
		MasteredSymbols:   []string{},
		LearningSymbols:   []string{},
		NotStartedSymbols: []string{},
	}

	for _, symbolID := range set.Symbols {
		st, err := t.store.GetMastery(ctx, userID, set.ID, symbolID)
		if err != nil {
			return nil, fmt.Errorf("get mastery for %q: %w", symbolID, err)
		}
		switch st {
		case mastery.StateMastered:
			p.MasteredSymbols = append(p.MasteredSymbols, symbolID)
		case mastery.StateLearning:
			p.LearningSymbols = append(p.LearningSymbols, symbolID)
		case mastery.StateNotStarted:
			p.NotStartedSymbols = append(p.NotStartedSymbols, symbolID)
		default:
			return nil, errs.Invalid("mastery state", "store returned %q for symbol %q", st, symbolID)
		}
	}

	p.MasteryLevel = MasteryLevel(len(p.MasteredSymbols), p.TotalSymbols)
	p.LearningPath = GeneratePath(set.Symbols)

	if t.scheduler != nil {
		last, next, err := t.scheduler.AssessmentDates(ctx, userID, set.ID)
		if err != nil {
			return nil, fmt.Errorf("assessment dates: %w", err)
		}
		p.LastAssessment = last
		p.NextAssessment = next
	}

	return p, nil
}

// Overview returns progress for every set in the catalog, in catalog order.
// Sets are computed concurrently; the first error aborts the rest.
func (t *Tracker) Overview(ctx context.Context, userID string) ([]VocabularyProgress, error) {
	sets := t.catalog.List()
	out := make([]VocabularyProgress, len(sets))

	g, gctx := errgroup.WithContext(ctx)
	for i, set := range sets {
		g.Go(func() error {
			p, err := t.progressFor(gctx, userID, set)
			if err != nil {
				return fmt.Errorf("vocabulary set %q: %w", set.ID, err)
			}
			out[i] = *p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// MasteryLevel returns floor(mastered / total * 100), or 0 when total is 0.
func MasteryLevel(mastered, total int) int {
	if total <= 0 {
		return 0
	}
	level := mastered * 100 / total
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}
