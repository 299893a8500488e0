package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type blockRepo struct {
	db *sql.DB
}

func (r *blockRepo) AppendBlock(ctx context.Context, rec BlockRecord) error {
	awarded := rec.AwardedAt
	if awarded.IsZero() {
		awarded = time.Now()
	}

	query, args := builder.Insert(tableBlocks).
		Columns("session_id", "problem_id", "kind", "rarity", "reason", "awarded_at").
		Values(rec.SessionID, rec.ProblemID, rec.Kind, rec.Rarity, rec.Reason, toMillis(awarded)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save block: %w", err)
	}
	return nil
}

func (r *blockRepo) ListBlocks(ctx context.Context, opts QueryOpts) ([]BlockRecord, error) {
	sel := builder.Select("id", "session_id", "problem_id", "kind", "rarity", "reason", "awarded_at").
		From(builder.Table(tableBlocks)).
		OrderBy(entsql.Desc("id"))
	applyOpts(sel, "awarded_at", opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query blocks: %w", err)
	}
	defer rows.Close()

	var out []BlockRecord
	for rows.Next() {
		var (
			rec     BlockRecord
			awarded int64
		)
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.ProblemID, &rec.Kind, &rec.Rarity, &rec.Reason, &awarded); err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}
		rec.AwardedAt = fromMillis(awarded)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *blockRepo) BlockCounts(ctx context.Context) (map[string]int, error) {
	query, args := builder.Select("kind", entsql.Count("*")).
		From(builder.Table(tableBlocks)).
		GroupBy("kind").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count blocks: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			kind string
			n    int
		)
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan block count: %w", err)
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}
