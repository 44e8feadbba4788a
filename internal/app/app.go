// Package app assembles the wordpath engine from configuration.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/wordpath/internal/assessment"
	"github.com/abhisek/wordpath/internal/config"
	"github.com/abhisek/wordpath/internal/errs"
	"github.com/abhisek/wordpath/internal/goals"
	"github.com/abhisek/wordpath/internal/logger"
	"github.com/abhisek/wordpath/internal/mastery"
	"github.com/abhisek/wordpath/internal/progress"
	"github.com/abhisek/wordpath/internal/schedule"
	"github.com/abhisek/wordpath/internal/store"
	"github.com/abhisek/wordpath/internal/vocab"
)

// Engine holds the wired components. Fields are exported for the CLI.
type Engine struct {
	Catalog   *vocab.StaticCatalog
	Symbols   *vocab.SymbolIndex
	Store     *store.Store
	Mastery   *mastery.Service
	Progress  *progress.Tracker
	Generator *assessment.Generator
	Scorer    *assessment.Scorer
	Scheduler *schedule.Scheduler
	Goals     *goals.Tracker

	log *logger.Logger
	now func() time.Time
}

// Open builds the catalog from bundle, opens the database at dbPath and
// wires every component. The caller must Close the engine.
func Open(cfg config.Config, bundle *vocab.Bundle, dbPath string, log *logger.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if bundle == nil {
		return nil, errs.Invalid("catalog", "must not be nil")
	}

	catalog, err := bundle.Catalog()
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	symbols := bundle.SymbolIndex()
	log.Debug("catalog loaded", "version", bundle.Version,
		"sets", len(catalog.List()), "symbols", symbols.Len())

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", "path", dbPath)

	masteryStore := mastery.WithLogging(st, log)
	scheduler := schedule.NewScheduler(st, cfg.Schedule)

	return &Engine{
		Catalog:   catalog,
		Symbols:   symbols,
		Store:     st,
		Mastery:   mastery.NewService(catalog, masteryStore),
		Progress:  progress.NewTracker(catalog, masteryStore, scheduler),
		Generator: assessment.NewGenerator(symbols, cfg.Assessment),
		Scorer:    assessment.NewScorer(cfg.Scoring),
		Scheduler: scheduler,
		Goals:     goals.NewTracker(st),
		log:       log,
		now:       time.Now,
	}, nil
}

// Close releases the database.
func (e *Engine) Close() error {
	return e.Store.Close()
}

// GoalLink names a goal milestone whose progress is set to the accuracy of
// a completed assessment.
type GoalLink struct {
	GoalID      string
	MilestoneID string
}

// TakeAssessment generates an assessment for the set, scores the answers,
// stores the result and records it in the assessment history. When link is
// non-nil the milestone's progress is updated to the accuracy.
func (e *Engine) TakeAssessment(ctx context.Context, userID, setID string, typ assessment.Type, answers map[string]assessment.Answer, link *GoalLink) (*assessment.Assessment, error) {
	set, err := e.Catalog.Get(setID)
	if err != nil {
		return nil, err
	}

	a, err := e.Generator.Generate(ctx, userID, set, typ)
	if err != nil {
		return nil, fmt.Errorf("generate assessment: %w", err)
	}

	done, err := e.Scorer.Complete(a, answers, e.now())
	if err != nil {
		return nil, err
	}

	// A bad link must fail before anything is written.
	if link != nil {
		if err := e.Goals.CheckMilestone(ctx, link.GoalID, link.MilestoneID); err != nil {
			return nil, fmt.Errorf("goal link: %w", err)
		}
	}

	if err := e.Store.SaveAssessment(ctx, done); err != nil {
		return nil, err
	}
	err = e.Scheduler.Record(ctx, schedule.Record{
		UserID:       userID,
		SetID:        setID,
		AssessmentID: done.ID,
		Type:         string(done.Type),
		Accuracy:     done.Results.Accuracy,
		MasteryLevel: done.Results.MasteryLevel,
		CompletedAt:  *done.CompletedAt,
	})
	if err != nil {
		return nil, err
	}
	e.log.Info("assessment completed", "user_id", userID, "set_id", setID,
		"assessment_id", done.ID, "accuracy", done.Results.Accuracy,
		"level", string(done.Results.MasteryLevel))

	if link != nil {
		if err := e.Goals.UpdateMilestoneProgress(ctx, link.GoalID, link.MilestoneID, done.Results.Accuracy); err != nil {
			return done, fmt.Errorf("update milestone: %w", err)
		}
		e.log.Info("milestone progress updated", "goal_id", link.GoalID,
			"milestone_id", link.MilestoneID, "progress", done.Results.Accuracy)
	}
	return done, nil
}
