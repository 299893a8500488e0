// Package blocks awards structure blocks for mastered problems, answer
// streaks and completed sessions.
package blocks

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/blockmath/internal/store"
)

// Service computes block awards and records them.
type Service struct {
	repo store.BlockRepo
	now  func() time.Time

	// sessionAwards accumulates blocks awarded in the current session.
	sessionAwards []Award
}

// NewService creates a Service. A nil repo keeps awards in memory only.
func NewService(repo store.BlockRepo) *Service {
	return &Service{repo: repo, now: time.Now}
}

// AwardMastered awards the block for a newly mastered problem: stone when
// it was never missed, wood when it was recovered after misses.
func (s *Service) AwardMastered(ctx context.Context, sessionID, problemID, question string, mistakes int) Award {
	award := Award{
		Kind:      KindStone,
		Rarity:    RarityCommon,
		SessionID: sessionID,
		ProblemID: problemID,
		Reason:    fmt.Sprintf("Mastered %s", question),
	}
	if mistakes > 0 {
		award.Kind = KindWood
		award.Rarity = RecoveryRarity(mistakes)
		award.Reason = fmt.Sprintf("Recovered %s", question)
	}
	return s.record(ctx, award)
}

// AwardStreak awards a glass block for consecutive correct answers.
func (s *Service) AwardStreak(ctx context.Context, sessionID string, length int) Award {
	return s.record(ctx, Award{
		Kind:      KindGlass,
		Rarity:    StreakRarity(length),
		SessionID: sessionID,
		Reason:    fmt.Sprintf("%d correct in a row!", length),
	})
}

// AwardCompletion awards the gold block for finishing a session.
func (s *Service) AwardCompletion(ctx context.Context, sessionID string, accuracy float64) Award {
	return s.record(ctx, Award{
		Kind:      KindGold,
		Rarity:    SessionRarity(accuracy),
		SessionID: sessionID,
		Reason:    fmt.Sprintf("Session complete (%.0f%% accuracy)", accuracy*100),
	})
}

// SessionAwards returns a copy of the blocks awarded since the last
// ResetSession.
func (s *Service) SessionAwards() []Award {
	return append([]Award(nil), s.sessionAwards...)
}

// ResetSession clears the session accumulator. Called at session start.
func (s *Service) ResetSession() {
	s.sessionAwards = nil
}

// Inventory returns the stored block counts, or the session's awards when
// there is no store.
func (s *Service) Inventory(ctx context.Context) (Inventory, error) {
	if s.repo == nil {
		inv := NewInventory(nil)
		inv.Add(s.sessionAwards...)
		return inv, nil
	}
	counts, err := s.repo.BlockCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load block inventory: %w", err)
	}
	return NewInventory(counts), nil
}

// Recent returns up to n stored blocks, newest first. Without a store it
// returns the session's awards, newest first.
func (s *Service) Recent(ctx context.Context, n int) ([]Award, error) {
	if s.repo == nil {
		var out []Award
		for i := len(s.sessionAwards) - 1; i >= 0 && (n <= 0 || len(out) < n); i-- {
			out = append(out, s.sessionAwards[i])
		}
		return out, nil
	}
	recs, err := s.repo.ListBlocks(ctx, store.QueryOpts{Limit: n})
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	out := make([]Award, len(recs))
	for i, r := range recs {
		out[i] = Award{
			Kind:      Kind(r.Kind),
			Rarity:    Rarity(r.Rarity),
			SessionID: r.SessionID,
			ProblemID: r.ProblemID,
			Reason:    r.Reason,
			AwardedAt: r.AwardedAt,
		}
	}
	return out, nil
}

func (s *Service) record(ctx context.Context, award Award) Award {
	award.AwardedAt = s.now()
	s.sessionAwards = append(s.sessionAwards, award)
	if s.repo == nil {
		return award
	}

	err := s.repo.AppendBlock(ctx, store.BlockRecord{
		SessionID: award.SessionID,
		ProblemID: award.ProblemID,
		Kind:      string(award.Kind),
		Rarity:    string(award.Rarity),
		Reason:    award.Reason,
		AwardedAt: award.AwardedAt,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to save block: %v\n", err)
	}
	return award
}
