package goals

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/wordpath/internal/errs"
)

// Tracker creates goals and applies milestone and completion updates.
type Tracker struct {
	store Store
	now   func() time.Time
	newID func() string
}

// NewTracker creates a tracker backed by store.
func NewTracker(store Store) *Tracker {
	return &Tracker{store: store, now: time.Now, newID: uuid.NewString}
}

// CreateGoal creates and saves an active goal with zero progress.
func (t *Tracker) CreateGoal(ctx context.Context, userID, title, description string, typ Type, targetDate time.Time, specs []MilestoneSpec) (*Goal, error) {
	if userID == "" {
		return nil, errs.Invalid("user id", "must not be empty")
	}
	if title == "" {
		return nil, errs.Invalid("goal title", "must not be empty")
	}
	if typ == "" {
		return nil, errs.Invalid("goal type", "must not be empty")
	}

	g := &Goal{
		ID:          t.newID(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Type:        typ,
		TargetDate:  targetDate,
		CreatedAt:   t.now(),
		Milestones:  make([]Milestone, 0, len(specs)),
	}
	for i, spec := range specs {
		if spec.Title == "" {
			return nil, errs.Invalid("milestone title", "milestone #%d has an empty title", i)
		}
		g.Milestones = append(g.Milestones, Milestone{
			ID:          t.newID(),
			Title:       spec.Title,
			Description: spec.Description,
		})
	}

	if err := t.store.SaveGoal(ctx, g); err != nil {
		return nil, fmt.Errorf("save goal: %w", err)
	}
	return g, nil
}

// Goal loads a goal by id.
func (t *Tracker) Goal(ctx context.Context, goalID string) (*Goal, error) {
	return t.store.LoadGoal(ctx, goalID)
}

// UpdateMilestoneProgress sets a milestone's progress, clamped to [0, 100],
// and recomputes the goal's progress. It never completes the goal or the
// milestone. A completed milestone keeps its progress of 100 and rejects
// updates.
func (t *Tracker) UpdateMilestoneProgress(ctx context.Context, goalID, milestoneID string, progress float64) error {
	if math.IsNaN(progress) {
		return errs.Invalid("milestone progress", "must be a number")
	}

	g, m, err := t.loadUpdatable(ctx, goalID, milestoneID)
	if err != nil {
		return err
	}

	m.Progress = clamp(progress, 0, 100)
	g.recomputeProgress()
	return t.save(ctx, g)
}

// MarkMilestoneCompleted completes a milestone and sets its progress to 100.
// Completing an already completed milestone is a no-op.
func (t *Tracker) MarkMilestoneCompleted(ctx context.Context, goalID, milestoneID string) error {
	g, m, err := t.loadActive(ctx, goalID, milestoneID)
	if err != nil {
		return err
	}
	if m.IsCompleted {
		return nil
	}

	now := t.now()
	m.IsCompleted = true
	m.CompletedAt = &now
	m.Progress = 100
	g.recomputeProgress()
	return t.save(ctx, g)
}

// MarkGoalCompleted moves a goal from active to completed. The transition
// is one-way; calling it on a completed goal is a no-op.
func (t *Tracker) MarkGoalCompleted(ctx context.Context, goalID string) error {
	g, err := t.store.LoadGoal(ctx, goalID)
	if err != nil {
		return err
	}
	if g.IsCompleted {
		return nil
	}

	now := t.now()
	g.IsCompleted = true
	g.CompletedAt = &now
	return t.save(ctx, g)
}

// loadActive loads a goal that is not completed and one of its milestones.
func (t *Tracker) loadActive(ctx context.Context, goalID, milestoneID string) (*Goal, *Milestone, error) {
	g, err := t.store.LoadGoal(ctx, goalID)
	if err != nil {
		return nil, nil, err
	}
	if g.IsCompleted {
		return nil, nil, errs.Invalid("goal", "%q is already completed", goalID)
	}
	m := g.Milestone(milestoneID)
	if m == nil {
		return nil, nil, errs.NotFound("milestone", milestoneID)
	}
	return g, m, nil
}

// CheckMilestone reports the error UpdateMilestoneProgress would return for
// the goal and milestone without changing anything.
func (t *Tracker) CheckMilestone(ctx context.Context, goalID, milestoneID string) error {
	_, _, err := t.loadUpdatable(ctx, goalID, milestoneID)
	return err
}

func (t *Tracker) loadUpdatable(ctx context.Context, goalID, milestoneID string) (*Goal, *Milestone, error) {
	g, m, err := t.loadActive(ctx, goalID, milestoneID)
	if err != nil {
		return nil, nil, err
	}
	if m.IsCompleted {
		return nil, nil, errs.Invalid("milestone", "%q is already completed", milestoneID)
	}
	return g, m, nil
}

func (t *Tracker) save(ctx context.Context, g *Goal) error {
	if err := t.store.SaveGoal(ctx, g); err != nil {
		return fmt.Errorf("save goal: %w", err)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
