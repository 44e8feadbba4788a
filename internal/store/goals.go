package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/wordpath/internal/errs"
	"github.com/abhisek/wordpath/internal/goals"
)

const (
	goalsTable      = "goals"
	milestonesTable = "milestones"
)

var goalColumns = []string{
	"id", "user_id", "title", "description", "type", "target_date",
	"is_completed", "progress", "created_at", "completed_at",
}

var milestoneColumns = []string{
	"id", "goal_id", "position", "title", "description",
	"is_completed", "progress", "completed_at",
}

type goalRow struct {
	ID          string        `db:"id"`
	UserID      string        `db:"user_id"`
	Title       string        `db:"title"`
	Description string        `db:"description"`
	Type        string        `db:"type"`
	TargetDate  int64         `db:"target_date"`
	IsCompleted bool          `db:"is_completed"`
	Progress    float64       `db:"progress"`
	CreatedAt   int64         `db:"created_at"`
	CompletedAt sql.NullInt64 `db:"completed_at"`
}

type milestoneRow struct {
	ID          string        `db:"id"`
	GoalID      string        `db:"goal_id"`
	Position    int           `db:"position"`
	Title       string        `db:"title"`
	Description string        `db:"description"`
	IsCompleted bool          `db:"is_completed"`
	Progress    float64       `db:"progress"`
	CompletedAt sql.NullInt64 `db:"completed_at"`
}

func (r goalRow) toGoal(ms []milestoneRow) *goals.Goal {
	g := &goals.Goal{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Type:        goals.Type(r.Type),
		TargetDate:  fromMillis(r.TargetDate),
		IsCompleted: r.IsCompleted,
		Progress:    r.Progress,
		CreatedAt:   fromMillis(r.CreatedAt),
		CompletedAt: fromNullMillis(r.CompletedAt),
		Milestones:  make([]goals.Milestone, 0, len(ms)),
	}
	for _, m := range ms {
		g.Milestones = append(g.Milestones, goals.Milestone{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			IsCompleted: m.IsCompleted,
			Progress:    m.Progress,
			CompletedAt: fromNullMillis(m.CompletedAt),
		})
	}
	return g
}

// SaveGoal implements goals.Store. The goal row and its milestones are
// replaced in one transaction.
func (s *Store) SaveGoal(ctx context.Context, g *goals.Goal) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	b := builder()
	query, args := b.Insert(goalsTable).
		Columns(goalColumns...).
		Values(g.ID, g.UserID, g.Title, g.Description, string(g.Type), toMillis(g.TargetDate),
			g.IsCompleted, g.Progress, toMillis(g.CreatedAt), nullMillis(g.CompletedAt)).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert goal: %w", err)
	}

	query, args = b.Delete(milestonesTable).Where(entsql.EQ("goal_id", g.ID)).Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear milestones: %w", err)
	}

	if len(g.Milestones) > 0 {
		ins := b.Insert(milestonesTable).Columns(milestoneColumns...)
		for i, m := range g.Milestones {
			ins.Values(m.ID, g.ID, i, m.Title, m.Description, m.IsCompleted, m.Progress, nullMillis(m.CompletedAt))
		}
		query, args = ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert milestones: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit goal: %w", err)
	}
	return nil
}

// LoadGoal implements goals.Store.
func (s *Store) LoadGoal(ctx context.Context, id string) (*goals.Goal, error) {
	b := builder()
	query, args := b.Select(goalColumns...).
		From(b.Table(goalsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	var row goalRow
	err := s.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("goal", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query goal: %w", err)
	}

	ms, err := s.milestones(ctx, id)
	if err != nil {
		return nil, err
	}
	return row.toGoal(ms), nil
}

// GoalsForUser returns the user's goals ordered by creation time.
func (s *Store) GoalsForUser(ctx context.Context, userID string) ([]goals.Goal, error) {
	b := builder()
	query, args := b.Select(goalColumns...).
		From(b.Table(goalsTable)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("created_at", "id").
		Query()

	var rows []goalRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}

	out := make([]goals.Goal, 0, len(rows))
	for _, r := range rows {
		ms, err := s.milestones(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *r.toGoal(ms))
	}
	return out, nil
}

func (s *Store) milestones(ctx context.Context, goalID string) ([]milestoneRow, error) {
	b := builder()
	query, args := b.Select(milestoneColumns...).
		From(b.Table(milestonesTable)).
		Where(entsql.EQ("goal_id", goalID)).
		OrderBy("position").
		Query()

	var rows []milestoneRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query milestones: %w", err)
	}
	return rows, nil
}
