package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/wordpath/internal/assessment"
	"github.com/abhisek/wordpath/internal/errs"
	"github.com/abhisek/wordpath/internal/schedule"
	"github.com/abhisek/wordpath/internal/vocab"
)

const (
	historyTable = "assessment_history"
	resultsTable = "assessment_results"
)

var historyColumns = []string{
	"assessment_id", "user_id", "set_id", "type", "accuracy", "mastery_level", "completed_at",
}

type historyRow struct {
	AssessmentID string  `db:"assessment_id"`
	UserID       string  `db:"user_id"`
	SetID        string  `db:"set_id"`
	Type         string  `db:"type"`
	Accuracy     float64 `db:"accuracy"`
	MasteryLevel string  `db:"mastery_level"`
	CompletedAt  int64   `db:"completed_at"`
}

func (r historyRow) toRecord() schedule.Record {
	return schedule.Record{
		UserID:       r.UserID,
		SetID:        r.SetID,
		AssessmentID: r.AssessmentID,
		Type:         r.Type,
		Accuracy:     r.Accuracy,
		MasteryLevel: vocab.Level(r.MasteryLevel),
		CompletedAt:  fromMillis(r.CompletedAt),
	}
}

// RecordAssessment implements schedule.History. Recording the same
// assessment id twice keeps the first record. The sequence column is
// assigned by SQLite and orders records completed in the same millisecond.
func (s *Store) RecordAssessment(ctx context.Context, rec schedule.Record) error {
	query, args := builder().Insert(historyTable).
		Columns(historyColumns...).
		Values(rec.AssessmentID, rec.UserID, rec.SetID, rec.Type, rec.Accuracy,
			string(rec.MasteryLevel), toMillis(rec.CompletedAt)).
		OnConflict(entsql.ConflictColumns("assessment_id"), entsql.DoNothing()).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert assessment history: %w", err)
	}
	return nil
}

// LatestAssessment implements schedule.History.
func (s *Store) LatestAssessment(ctx context.Context, userID, setID string) (*schedule.Record, error) {
	recs, err := s.AssessmentHistory(ctx, userID, setID, 1)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// AssessmentHistory returns up to limit records for the pair, newest first.
// A limit of 0 returns all of them.
func (s *Store) AssessmentHistory(ctx context.Context, userID, setID string, limit int) ([]schedule.Record, error) {
	b := builder()
	sel := b.Select(historyColumns...).
		From(b.Table(historyTable)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("set_id", setID),
		)).
		OrderBy(entsql.Desc("completed_at"), entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	var rows []historyRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query assessment history: %w", err)
	}
	out := make([]schedule.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toRecord())
	}
	return out, nil
}

// SaveAssessment stores a completed assessment with its questions, answers
// and results as a JSON document.
func (s *Store) SaveAssessment(ctx context.Context, a *assessment.Assessment) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal assessment: %w", err)
	}

	query, args := builder().Insert(resultsTable).
		Columns("assessment_id", "user_id", "set_id", "saved_at", "data").
		Values(a.ID, a.UserID, a.VocabularySetID, toMillis(time.Now()), string(data)).
		OnConflict(entsql.ConflictColumns("assessment_id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save assessment: %w", err)
	}
	return nil
}

// LoadAssessment returns a stored assessment by id.
func (s *Store) LoadAssessment(ctx context.Context, id string) (*assessment.Assessment, error) {
	b := builder()
	query, args := b.Select("data").
		From(b.Table(resultsTable)).
		Where(entsql.EQ("assessment_id", id)).
		Query()

	var data string
	err := s.db.GetContext(ctx, &data, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("assessment", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query assessment: %w", err)
	}

	var a assessment.Assessment
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		return nil, fmt.Errorf("unmarshal assessment: %w", err)
	}
	return &a, nil
}
