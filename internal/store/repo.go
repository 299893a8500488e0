package store

import (
	"context"
	"time"
)

// QueryOpts configures list queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To

	Purpose string // LLM calls only; empty matches every purpose
}

// SessionRecord is the persisted summary of one completed session.
type SessionRecord struct {
	ID            string
	StartedAt     time.Time
	CompletedAt   time.Time
	ProblemCount  int
	TotalAttempts int
	TotalCorrect  int
	Accuracy      float64
	Score         int
	BlocksAwarded int
	Perfect       bool
}

// AttemptRecord is one stored answer inside a mistake report.
type AttemptRecord struct {
	Answer    string    `json:"answer"`
	Correct   bool      `json:"correct"`
	Timestamp time.Time `json:"timestamp"`
}

// MistakeRecord is a problem the learner missed at least once, in the
// order it was first missed.
type MistakeRecord struct {
	SessionID     string
	ProblemID     string
	Question      string
	CorrectAnswer string
	MistakeCount  int
	Attempts      []AttemptRecord

	// Category and Misconception hold the error diagnosis, if any.
	Category      string
	Misconception string
}

// SessionRepo persists completed session summaries.
type SessionRepo interface {
	// SaveSummary stores a session and its mistake reports atomically.
	SaveSummary(ctx context.Context, rec SessionRecord, mistakes []MistakeRecord) error

	// ListSessions returns sessions newest first.
	ListSessions(ctx context.Context, opts QueryOpts) ([]SessionRecord, error)

	// Mistakes returns the mistake reports of a session in first-missed order.
	Mistakes(ctx context.Context, sessionID string) ([]MistakeRecord, error)
}

// BlockRecord is one awarded building block.
type BlockRecord struct {
	ID        int64
	SessionID string
	ProblemID string // empty for streak and completion blocks
	Kind      string
	Rarity    string
	Reason    string
	AwardedAt time.Time
}

// BlockRepo persists awarded blocks.
type BlockRepo interface {
	// AppendBlock records an awarded block.
	AppendBlock(ctx context.Context, rec BlockRecord) error

	// ListBlocks returns blocks newest first.
	ListBlocks(ctx context.Context, opts QueryOpts) ([]BlockRecord, error)

	// BlockCounts returns the number of blocks per kind.
	BlockCounts(ctx context.Context) (map[string]int, error)
}

// LLMCallData captures the data for a single LLM request.
type LLMCallData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMCallRecord is a stored LLM request.
type LLMCallRecord struct {
	ID        int64
	Timestamp time.Time
	LLMCallData
}

// EventRepo provides append and query access to LLM call records.
type EventRepo interface {
	// AppendLLMCall records an LLM API call.
	AppendLLMCall(ctx context.Context, data LLMCallData) error

	// QueryLLMCalls returns LLM calls newest first.
	QueryLLMCalls(ctx context.Context, opts QueryOpts) ([]LLMCallRecord, error)

	// GetLLMCall returns one LLM call by ID, or nil if none exists.
	GetLLMCall(ctx context.Context, id int64) (*LLMCallRecord, error)

	// LLMUsageByPurpose aggregates calls per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates calls per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}

// LLMUsage is the token usage of a group of LLM calls. Group is the
// purpose or model the calls share.
type LLMUsage struct {
	Group        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}
