package store

import (
	"context"
	"database/sql"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableSessions = "sessions"
	tableMistakes = "mistakes"
	tableBlocks   = "blocks"
	tableLLMCalls = "llm_calls"
)

// tables describes the database schema in dependency order. It returns
// fresh values on each call because the migrator annotates them.
func tables() []*schema.Table {
	sessionsColumns := []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "started_at", Type: field.TypeInt64},
		{Name: "completed_at", Type: field.TypeInt64},
		{Name: "problem_count", Type: field.TypeInt},
		{Name: "total_attempts", Type: field.TypeInt},
		{Name: "total_correct", Type: field.TypeInt},
		{Name: "accuracy", Type: field.TypeFloat64},
		{Name: "score", Type: field.TypeInt, Default: 0},
		{Name: "blocks_awarded", Type: field.TypeInt, Default: 0},
		{Name: "perfect", Type: field.TypeBool},
	}
	sessions := &schema.Table{
		Name:       tableSessions,
		Columns:    sessionsColumns,
		PrimaryKey: []*schema.Column{sessionsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "session_completed_at", Columns: []*schema.Column{sessionsColumns[2]}},
		},
	}

	mistakesColumns := []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "session_id", Type: field.TypeString},
		{Name: "position", Type: field.TypeInt},
		{Name: "problem_id", Type: field.TypeString},
		{Name: "question", Type: field.TypeString},
		{Name: "correct_answer", Type: field.TypeString},
		{Name: "mistake_count", Type: field.TypeInt},
		{Name: "attempts", Type: field.TypeString},
		{Name: "category", Type: field.TypeString, Default: ""},
		{Name: "misconception", Type: field.TypeString, Default: ""},
	}
	mistakes := &schema.Table{
		Name:       tableMistakes,
		Columns:    mistakesColumns,
		PrimaryKey: []*schema.Column{mistakesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "mistakes_sessions_mistakes",
				Columns:    []*schema.Column{mistakesColumns[1]},
				RefTable:   sessions,
				RefColumns: []*schema.Column{sessionsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "mistake_session_id_position", Columns: []*schema.Column{mistakesColumns[1], mistakesColumns[2]}},
		},
	}

	blocksColumns := []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "session_id", Type: field.TypeString},
		{Name: "problem_id", Type: field.TypeString, Default: ""},
		{Name: "kind", Type: field.TypeString},
		{Name: "rarity", Type: field.TypeString},
		{Name: "reason", Type: field.TypeString},
		{Name: "awarded_at", Type: field.TypeInt64},
	}
	blocks := &schema.Table{
		Name:       tableBlocks,
		Columns:    blocksColumns,
		PrimaryKey: []*schema.Column{blocksColumns[0]},
		Indexes: []*schema.Index{
			{Name: "block_kind", Columns: []*schema.Column{blocksColumns[3]}},
		},
	}

	llmColumns := []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Default: ""},
		{Name: "response_body", Type: field.TypeString, Default: ""},
	}
	llmCalls := &schema.Table{
		Name:       tableLLMCalls,
		Columns:    llmColumns,
		PrimaryKey: []*schema.Column{llmColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmcall_purpose", Columns: []*schema.Column{llmColumns[4]}},
		},
	}

	return []*schema.Table{sessions, mistakes, blocks, llmCalls}
}

// migrate creates missing tables, columns and indexes.
func migrate(ctx context.Context, db *sql.DB) error {
	drv := entsql.OpenDB(dialect.SQLite, db)
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables()...)
}
