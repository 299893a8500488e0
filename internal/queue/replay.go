package queue

import "fmt"

// ReplayStep is a recorded answer to re-apply. Correct is checked against
// the regraded outcome.
type ReplayStep struct {
	ProblemID string
	Answer    Answer
	Correct   bool
}

// StepsFrom converts a session's attempts into replay steps.
func StepsFrom(state *SessionState) []ReplayStep {
	attempts := state.Attempts()
	steps := make([]ReplayStep, len(attempts))
	for i, a := range attempts {
		steps[i] = ReplayStep{
			ProblemID: a.ProblemID,
			Answer:    a.Attempt.Answer,
			Correct:   a.Attempt.Correct,
		}
	}
	return steps
}

// Replay initializes a fresh session from specs and submits each step in
// order. With the same clock and offset source as the original run it
// reproduces the original mistake log and mastery states.
func (m *Manager) Replay(specs []ProblemSpec, steps []ReplayStep) (*SessionState, error) {
	state, err := m.Initialize(specs)
	if err != nil {
		return nil, err
	}

	for i, step := range steps {
		cur := m.CurrentProblem(state)
		if cur == nil {
			return nil, fmt.Errorf("%w: step %d for %q after session completed",
				ErrReplayMismatch, i, step.ProblemID)
		}
		if cur.ID != step.ProblemID {
			return nil, fmt.Errorf("%w: step %d answers %q but current problem is %q",
				ErrReplayMismatch, i, step.ProblemID, cur.ID)
		}
		res, err := m.SubmitAnswer(state, step.Answer)
		if err != nil {
			return nil, fmt.Errorf("replay step %d: %w", i, err)
		}
		if res.Correct != step.Correct {
			return nil, fmt.Errorf("%w: step %d for %q graded %t, recorded %t",
				ErrReplayMismatch, i, step.ProblemID, res.Correct, step.Correct)
		}
	}
	return state, nil
}
