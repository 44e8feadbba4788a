// Package goals tracks educational goals and their milestones.
package goals

import (
	"context"
	"time"
)

// Type categorizes a goal. Any non-empty value is accepted; the constants
// are the ones the CLI offers.
type Type string

const (
	TypeVocabulary    Type = "vocabulary"
	TypeCommunication Type = "communication"
	TypeSocial        Type = "social"
	TypeAcademic      Type = "academic"
)

// Milestone is a sub-goal whose progress contributes to the goal's progress.
type Milestone struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsCompleted bool       `json:"is_completed"`
	Progress    float64    `json:"progress"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Goal is an educational goal. Progress is the mean of its milestones'
// progress. Once IsCompleted is set it is never cleared.
type Goal struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Type        Type        `json:"type"`
	TargetDate  time.Time   `json:"target_date"`
	IsCompleted bool        `json:"is_completed"`
	Progress    float64     `json:"progress"`
	Milestones  []Milestone `json:"milestones"`
	CreatedAt   time.Time   `json:"created_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

// Milestone returns a pointer to the milestone with the given id, or nil.
func (g *Goal) Milestone(id string) *Milestone {
	for i := range g.Milestones {
		if g.Milestones[i].ID == id {
			return &g.Milestones[i]
		}
	}
	return nil
}

// recomputeProgress sets Progress to the mean milestone progress.
func (g *Goal) recomputeProgress() {
	if len(g.Milestones) == 0 {
		g.Progress = 0
		return
	}
	var sum float64
	for _, m := range g.Milestones {
		sum += m.Progress
	}
	g.Progress = sum / float64(len(g.Milestones))
}

// MilestoneSpec describes a milestone to create with a goal.
type MilestoneSpec struct {
	Title       string
	Description string
}

// Store persists goals. LoadGoal returns a *errs.NotFoundError for an
// unknown id.
type Store interface {
	LoadGoal(ctx context.Context, id string) (*Goal, error)
	SaveGoal(ctx context.Context, goal *Goal) error
}
