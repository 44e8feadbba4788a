package mastery

import (
	"context"
	"fmt"

	"github.com/abhisek/wordpath/internal/errs"
	"github.com/abhisek/wordpath/internal/vocab"
)

// Service applies validated mastery updates to a Store.
type Service struct {
	catalog vocab.Catalog
	store   Store
}

// NewService creates a mastery service over the given catalog and store.
func NewService(catalog vocab.Catalog, store Store) *Service {
	return &Service{catalog: catalog, store: store}
}

// UpdateSymbolMastery sets the learner's state for one symbol of a set.
// The set must exist and contain the symbol. Returns the transition, or nil
// when the state did not change.
func (s *Service) UpdateSymbolMastery(ctx context.Context, userID, setID, symbolID string, state State) (*Transition, error) {
	if userID == "" {
		return nil, errs.Invalid("user id", "must not be empty")
	}
	if !state.Valid() {
		return nil, errs.Invalid("mastery state", "%q", state)
	}

	set, err := s.catalog.Get(setID)
	if err != nil {
		return nil, err
	}
	if !set.Contains(symbolID) {
		return nil, errs.Invalid("symbol", "%q is not part of vocabulary set %q", symbolID, setID)
	}

	current, err := s.store.GetMastery(ctx, userID, setID, symbolID)
	if err != nil {
		return nil, fmt.Errorf("get mastery: %w", err)
	}
	if current == state {
		return nil, nil
	}

	if err := s.store.SetMastery(ctx, userID, setID, symbolID, state); err != nil {
		return nil, fmt.Errorf("set mastery: %w", err)
	}

	return &Transition{
		UserID:   userID,
		SetID:    setID,
		SymbolID: symbolID,
		From:     current,
		To:       state,
	}, nil
}

// MasteredSymbols returns the mastered symbol ids of a set, in set order.
func (s *Service) MasteredSymbols(ctx context.Context, userID, setID string) ([]string, error) {
	set, err := s.catalog.Get(setID)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, id := range set.Symbols {
		st, err := s.store.GetMastery(ctx, userID, setID, id)
		if err != nil {
			return nil, fmt.Errorf("get mastery: %w", err)
		}
		if st == StateMastered {
			out = append(out, id)
		}
	}
	return out, nil
}

// ResetSet moves every symbol of the set back to StateNotStarted and
// returns the transitions that were applied.
func (s *Service) ResetSet(ctx context.Context, userID, setID string) ([]Transition, error) {
	set, err := s.catalog.Get(setID)
	if err != nil {
		return nil, err
	}

	var transitions []Transition
	for _, id := range set.Symbols {
		t, err := s.UpdateSymbolMastery(ctx, userID, setID, id, StateNotStarted)
		if err != nil {
			return transitions, err
		}
		if t != nil {
			transitions = append(transitions, *t)
		}
	}
	return transitions, nil
}
