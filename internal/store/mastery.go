package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/wordpath/internal/mastery"
)

const masteryTable = "symbol_mastery"

// GetMastery implements mastery.Store. Missing rows read as not started.
func (s *Store) GetMastery(ctx context.Context, userID, setID, symbolID string) (mastery.State, error) {
	b := builder()
	query, args := b.Select("state").
		From(b.Table(masteryTable)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("set_id", setID),
			entsql.EQ("symbol_id", symbolID),
		)).
		Query()

	var state string
	err := s.db.GetContext(ctx, &state, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return mastery.StateNotStarted, nil
	}
	if err != nil {
		return "", fmt.Errorf("query mastery: %w", err)
	}
	return mastery.State(state), nil
}

// SetMastery implements mastery.Store as a single upsert.
func (s *Store) SetMastery(ctx context.Context, userID, setID, symbolID string, state mastery.State) error {
	query, args := builder().Insert(masteryTable).
		Columns("user_id", "set_id", "symbol_id", "state", "updated_at").
		Values(userID, setID, symbolID, string(state), toMillis(time.Now())).
		OnConflict(
			entsql.ConflictColumns("user_id", "set_id", "symbol_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert mastery: %w", err)
	}
	return nil
}
