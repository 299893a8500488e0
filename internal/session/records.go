package session

import (
	"github.com/abhisek/blockmath/internal/diagnosis"
	"github.com/abhisek/blockmath/internal/queue"
	"github.com/abhisek/blockmath/internal/store"
)

// toRecords converts a finished session into its stored form. diagnoses
// is keyed by problem ID and may be nil.
func toRecords(id string, state *queue.SessionState, sum *queue.SessionSummary, diagnoses map[string]diagnosis.Result) (store.SessionRecord, []store.MistakeRecord) {
	rec := store.SessionRecord{
		ID:            id,
		StartedAt:     state.StartedAt,
		CompletedAt:   state.CompletedAt,
		ProblemCount:  sum.ProblemCount,
		TotalAttempts: sum.TotalAttempts,
		TotalCorrect:  sum.TotalCorrect,
		Accuracy:      sum.Accuracy,
		Score:         sum.Score,
		BlocksAwarded: sum.BlocksAwarded,
		Perfect:       sum.Perfect,
	}

	mistakes := make([]store.MistakeRecord, 0, len(sum.Mistakes))
	for _, m := range sum.Mistakes {
		attempts := make([]store.AttemptRecord, len(m.History))
		for i, a := range m.History {
			attempts[i] = store.AttemptRecord{
				Answer:    a.Answer.String(),
				Correct:   a.Correct,
				Timestamp: a.Timestamp,
			}
		}
		d := diagnoses[m.ProblemID]
		mistakes = append(mistakes, store.MistakeRecord{
			SessionID:     id,
			ProblemID:     m.ProblemID,
			Question:      m.Question,
			CorrectAnswer: m.CorrectAnswer.String(),
			MistakeCount:  m.MistakeCount,
			Attempts:      attempts,
			Category:      string(d.Category),
			Misconception: d.MisconceptionID,
		})
	}
	return rec, mistakes
}
