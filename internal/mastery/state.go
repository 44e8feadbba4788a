package mastery

import (
	"context"

	"github.com/abhisek/wordpath/internal/errs"
)

// State represents a symbol's position in the mastery lifecycle.
type State string

const (
	StateNotStarted State = "not-started"
	StateLearning   State = "learning"
	StateMastered   State = "mastered"
)

// AllStates returns every valid state in lifecycle order.
func AllStates() []State {
	return []State{StateNotStarted, StateLearning, StateMastered}
}

// Valid reports whether s is a known state.
func (s State) Valid() bool {
	switch s {
	case StateNotStarted, StateLearning, StateMastered:
		return true
	}
	return false
}

// ParseState converts a string to a State, rejecting unknown values.
func ParseState(s string) (State, error) {
	st := State(s)
	if !st.Valid() {
		return "", errs.Invalid("mastery state", "%q (want not-started, learning or mastered)", s)
	}
	return st, nil
}

// Transition records a mastery state change for display and logging.
type Transition struct {
	UserID   string `json:"user_id"`
	SetID    string `json:"vocabulary_set_id"`
	SymbolID string `json:"symbol_id"`
	From     State  `json:"from"`
	To       State  `json:"to"`
}

// Store persists per-user, per-symbol mastery state. Implementations must
// apply each (user, set, symbol) write atomically. A symbol with no record
// reads as StateNotStarted.
type Store interface {
	GetMastery(ctx context.Context, userID, setID, symbolID string) (State, error)
	SetMastery(ctx context.Context, userID, setID, symbolID string, state State) error
}
