package progress

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordpath/internal/errs"
	"github.com/abhisek/wordpath/internal/mastery"
	"github.com/abhisek/wordpath/internal/vocab"
)

// stubScheduler implements Scheduler with fixed dates.
type stubScheduler struct {
	last, next *time.Time
	err        error
}

func (s stubScheduler) AssessmentDates(context.Context, string, string) (*time.Time, *time.Time, error) {
	return s.last, s.next, s.err
}

// badStore returns a fixed state (or error) for every symbol.
type badStore struct {
	state mastery.State
	err   error
}

func (b badStore) GetMastery(context.Context, string, string, string) (mastery.State, error) {
	return b.state, b.err
}
func (b badStore) SetMastery(context.Context, string, string, string, mastery.State) error {
	return nil
}

func symbols(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("sym-%02d", i)
	}
	return out
}

func newCatalog(t *testing.T, sets ...vocab.Set) vocab.Catalog {
	t.Helper()
	c, err := vocab.NewCatalog(sets)
	require.NoError(t, err)
	return c
}

func TestGetProgress_FirstSixMastered(t *testing.T) {
	syms := symbols(10)
	catalog := newCatalog(t, vocab.Set{ID: "ten", Name: "Ten", Level: vocab.LevelBeginner, Symbols: syms})
	store := mastery.NewMemoryStore()
	ctx := context.Background()
	for _, id := range syms[:6] {
		require.NoError(t, store.SetMastery(ctx, "u1", "ten", id, mastery.StateMastered))
	}

	p, err := NewTracker(catalog, store, nil).GetProgress(ctx, "u1", "ten")
	require.NoError(t, err)

	assert.Equal(t, 60, p.MasteryLevel)
	assert.Equal(t, 10, p.TotalSymbols)
	assert.Equal(t, syms[:6], p.MasteredSymbols)
	assert.Empty(t, p.LearningSymbols)
	assert.Equal(t, syms[6:], p.NotStartedSymbols)
	assert.Len(t, p.LearningPath, 10)
	assert.Nil(t, p.LastAssessment)
	assert.Nil(t, p.NextAssessment)
}

func TestGetProgress_PartitionPreservesOrder(t *testing.T) {
	syms := symbols(7)
	catalog := newCatalog(t, vocab.Set{ID: "mix", Name: "Mix", Level: vocab.LevelBeginner, Symbols: syms})
	store := mastery.NewMemoryStore()
	ctx := context.Background()

	states := []mastery.State{
		mastery.StateLearning, mastery.StateMastered, mastery.StateNotStarted,
		mastery.StateMastered, mastery.StateLearning, mastery.StateNotStarted, mastery.StateMastered,
	}
	for i, st := range states {
		require.NoError(t, store.SetMastery(ctx, "u1", "mix", syms[i], st))
	}

	p, err := NewTracker(catalog, store, nil).GetProgress(ctx, "u1", "mix")
	require.NoError(t, err)

	assert.Equal(t, []string{syms[1], syms[3], syms[6]}, p.MasteredSymbols)
	assert.Equal(t, []string{syms[0], syms[4]}, p.LearningSymbols)
	assert.Equal(t, []string{syms[2], syms[5]}, p.NotStartedSymbols)
	assert.Equal(t, 42, p.MasteryLevel) // floor(3/7*100)

	// Union equals the set, no duplicates.
	seen := make(map[string]int)
	for _, group := range [][]string{p.MasteredSymbols, p.LearningSymbols, p.NotStartedSymbols} {
		for _, id := range group {
			seen[id]++
		}
	}
	assert.Len(t, seen, len(syms))
	for _, id := range syms {
		assert.Equal(t, 1, seen[id], id)
	}
}

func TestGetProgress_EmptySet(t *testing.T) {
	catalog := newCatalog(t, vocab.Set{ID: "empty", Name: "Empty", Level: vocab.LevelBeginner})

	p, err := NewTracker(catalog, mastery.NewMemoryStore(), nil).GetProgress(context.Background(), "u1", "empty")
	require.NoError(t, err)
	assert.Equal(t, 0, p.MasteryLevel)
	assert.Equal(t, 0, p.TotalSymbols)
	assert.Empty(t, p.LearningPath)
	assert.NotNil(t, p.MasteredSymbols)
}

func TestGetProgress_UnknownSet(t *testing.T) {
	catalog := newCatalog(t)
	_, err := NewTracker(catalog, mastery.NewMemoryStore(), nil).GetProgress(context.Background(), "u1", "nope")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestGetProgress_StoreErrors(t *testing.T) {
	catalog := newCatalog(t, vocab.Set{ID: "s", Name: "S", Level: vocab.LevelBeginner, Symbols: []string{"a"}})
	ctx := context.Background()

	boom := errors.New("connection reset")
	_, err := NewTracker(catalog, badStore{err: boom}, nil).GetProgress(ctx, "u1", "s")
	assert.ErrorIs(t, err, boom)

	_, err = NewTracker(catalog, badStore{state: "rusty"}, nil).GetProgress(ctx, "u1", "s")
	assert.True(t, errs.IsValidation(err))
}

func TestGetProgress_AssessmentDates(t *testing.T) {
	catalog := newCatalog(t, vocab.Set{ID: "s", Name: "S", Level: vocab.LevelBeginner, Symbols: []string{"a"}})
	last := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	next := last.AddDate(0, 0, 7)

	p, err := NewTracker(catalog, mastery.NewMemoryStore(), stubScheduler{last: &last, next: &next}).
		GetProgress(context.Background(), "u1", "s")
	require.NoError(t, err)
	assert.Equal(t, &last, p.LastAssessment)
	assert.Equal(t, &next, p.NextAssessment)

	boom := errors.New("history unavailable")
	_, err = NewTracker(catalog, mastery.NewMemoryStore(), stubScheduler{err: boom}).
		GetProgress(context.Background(), "u1", "s")
	assert.ErrorIs(t, err, boom)
}

func TestMasteryLevel_Range(t *testing.T) {
	for total := 0; total <= 25; total++ {
		for mastered := 0; mastered <= total; mastered++ {
			lvl := MasteryLevel(mastered, total)
			if lvl < 0 || lvl > 100 {
				t.Fatalf("MasteryLevel(%d, %d) = %d out of range", mastered, total, lvl)
			}
		}
	}
	assert.Equal(t, 0, MasteryLevel(0, 0))
	assert.Equal(t, 100, MasteryLevel(3, 3))
	assert.Equal(t, 33, MasteryLevel(1, 3))
}

func TestOverview(t *testing.T) {
	catalog := newCatalog(t,
		vocab.Set{ID: "adv", Name: "Adv", Level: vocab.LevelAdvanced, Symbols: []string{"x", "y"}},
		vocab.Set{ID: "beg", Name: "Beg", Level: vocab.LevelBeginner, Symbols: []string{"a", "b", "c", "d"}},
	)
	store := mastery.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.SetMastery(ctx, "u1", "beg", "a", mastery.StateMastered))
	require.NoError(t, store.SetMastery(ctx, "u1", "adv", "y", mastery.StateMastered))

	all, err := NewTracker(catalog, store, nil).Overview(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "beg", all[0].VocabularySetID)
	assert.Equal(t, 25, all[0].MasteryLevel)
	assert.Equal(t, "adv", all[1].VocabularySetID)
	assert.Equal(t, 50, all[1].MasteryLevel)
}

func TestOverview_Error(t *testing.T) {
	catalog := newCatalog(t, vocab.Set{ID: "s", Name: "S", Level: vocab.LevelBeginner, Symbols: []string{"a"}})
	boom := errors.New("timeout")

	_, err := NewTracker(catalog, badStore{err: boom}, nil).Overview(context.Background(), "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
