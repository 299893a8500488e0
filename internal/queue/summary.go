package queue

import "time"

// MistakeReport describes one problem that was missed at least once.
type MistakeReport struct {
	ProblemID     string    `json:"problem_id"`
	Question      string    `json:"question"`
	CorrectAnswer Answer    `json:"correct_answer"`
	MistakeCount  int       `json:"mistake_count"`
	History       []Attempt `json:"history"`
}

// SessionSummary is the end-of-session report. It shares no memory with
// the SessionState it was built from.
type SessionSummary struct {
	// Perfect is true when no problem was ever missed.
	Perfect bool `json:"perfect"`

	// Mistakes lists missed problems in the order they were first missed.
	Mistakes []MistakeReport `json:"mistakes"`

	ProblemCount  int           `json:"problem_count"`
	TotalAttempts int           `json:"total_attempts"`
	TotalCorrect  int           `json:"total_correct"`
	Accuracy      float64       `json:"accuracy"`
	Duration      time.Duration `json:"duration"`
	Score         int           `json:"score"`
	BlocksAwarded int           `json:"blocks_awarded"`
}

// BuildSessionSummary assembles the mistake report for a completed session.
// Repeated calls on an unchanged state return equal summaries.
func (m *Manager) BuildSessionSummary(state *SessionState) (*SessionSummary, error) {
	if state == nil || !state.Complete {
		return nil, ErrSessionNotComplete
	}

	mistakes := make([]MistakeReport, 0, len(state.MistakesLog))
	for _, e := range state.MistakesLog {
		mistakes = append(mistakes, MistakeReport{
			ProblemID:     e.Spec.ID,
			Question:      e.Spec.Question,
			CorrectAnswer: e.Spec.Answer,
			MistakeCount:  e.MistakeCount,
			History:       copyHistory(e.History),
		})
	}

	var attempts, correct int
	for _, e := range state.Entries {
		attempts += len(e.History)
		for _, a := range e.History {
			if a.Correct {
				correct++
			}
		}
	}

	var accuracy float64
	if attempts > 0 {
		accuracy = float64(correct) / float64(attempts)
	}

	return &SessionSummary{
		Perfect:       len(mistakes) == 0,
		Mistakes:      mistakes,
		ProblemCount:  len(state.Entries),
		TotalAttempts: attempts,
		TotalCorrect:  correct,
		Accuracy:      accuracy,
		Duration:      state.CompletedAt.Sub(state.StartedAt),
		Score:         state.Score,
		BlocksAwarded: state.BlocksAwarded,
	}, nil
}
