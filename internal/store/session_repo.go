package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// sessionRepo implements SessionRepo on the sessions and mistakes tables.
type sessionRepo struct {
	db *sql.DB
}

var sessionColumns = []string{
	"id", "started_at", "completed_at", "problem_count", "total_attempts",
	"total_correct", "accuracy", "score", "blocks_awarded", "perfect",
}

func (r *sessionRepo) SaveSummary(ctx context.Context, rec SessionRecord, mistakes []MistakeRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("save session: empty id")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save session: %w", err)
	}
	defer tx.Rollback()

	query, args := builder.Insert(tableSessions).
		Columns(sessionColumns...).
		Values(rec.ID, toMillis(rec.StartedAt), toMillis(rec.CompletedAt),
			rec.ProblemCount, rec.TotalAttempts, rec.TotalCorrect, rec.Accuracy,
			rec.Score, rec.BlocksAwarded, rec.Perfect).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	for i, m := range mistakes {
		attempts, err := json.Marshal(m.Attempts)
		if err != nil {
			return fmt.Errorf("encode attempts for %s: %w", m.ProblemID, err)
		}
		query, args := builder.Insert(tableMistakes).
			Columns("session_id", "position", "problem_id", "question",
				"correct_answer", "mistake_count", "attempts", "category", "misconception").
			Values(rec.ID, i, m.ProblemID, m.Question, m.CorrectAnswer,
				m.MistakeCount, string(attempts), m.Category, m.Misconception).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert mistake %s: %w", m.ProblemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

func (r *sessionRepo) ListSessions(ctx context.Context, opts QueryOpts) ([]SessionRecord, error) {
	sel := builder.Select(sessionColumns...).
		From(builder.Table(tableSessions)).
		OrderBy(entsql.Desc("completed_at"))
	applyOpts(sel, "completed_at", opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			rec                SessionRecord
			started, completed int64
		)
		if err := rows.Scan(&rec.ID, &started, &completed, &rec.ProblemCount,
			&rec.TotalAttempts, &rec.TotalCorrect, &rec.Accuracy, &rec.Score,
			&rec.BlocksAwarded, &rec.Perfect); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.StartedAt = fromMillis(started)
		rec.CompletedAt = fromMillis(completed)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *sessionRepo) Mistakes(ctx context.Context, sessionID string) ([]MistakeRecord, error) {
	query, args := builder.Select("problem_id", "question", "correct_answer", "mistake_count",
		"attempts", "category", "misconception").
		From(builder.Table(tableMistakes)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("position").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query mistakes: %w", err)
	}
	defer rows.Close()

	var out []MistakeRecord
	for rows.Next() {
		var (
			m        MistakeRecord
			attempts string
		)
		if err := rows.Scan(&m.ProblemID, &m.Question, &m.CorrectAnswer, &m.MistakeCount,
			&attempts, &m.Category, &m.Misconception); err != nil {
			return nil, fmt.Errorf("scan mistake: %w", err)
		}
		if err := json.Unmarshal([]byte(attempts), &m.Attempts); err != nil {
			return nil, fmt.Errorf("decode attempts for %s: %w", m.ProblemID, err)
		}
		m.SessionID = sessionID
		out = append(out, m)
	}
	return out, rows.Err()
}

// applyOpts adds the time window and limit of opts to sel.
func applyOpts(sel *entsql.Selector, timeColumn string, opts QueryOpts) {
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE(timeColumn, toMillis(opts.From)))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE(timeColumn, toMillis(opts.To)))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
