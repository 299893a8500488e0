package queue

import (
	"sort"
	"time"
)

// SessionState is owned by the caller that created it via Initialize.
// Only Manager methods mutate the queue and mastery fields; it is not safe
// for concurrent use.
type SessionState struct {
	// Queue holds entries awaiting presentation. Queue[0] is current.
	Queue []*Entry

	// Entries holds every entry in initial order, mastered or not.
	Entries []*Entry

	// MistakesLog holds each entry that was ever missed, in the order of
	// its first miss. An entry appears at most once.
	MistakesLog []*Entry

	// Complete is set once every entry is mastered.
	Complete bool

	// Score and BlocksAwarded are caller-maintained counters that the
	// session summary reports. The scheduler never changes them.
	Score         int
	BlocksAwarded int

	StartedAt   time.Time
	CompletedAt time.Time

	// submissions counts SubmitAnswer calls; it orders attempts that
	// share a timestamp.
	submissions int
}

// AddScore adds n points to the score counter.
func (s *SessionState) AddScore(n int) {
	s.Score += n
}

// AwardBlocks adds n to the structure-block counter.
func (s *SessionState) AwardBlocks(n int) {
	s.BlocksAwarded += n
}

// Remaining returns the number of entries still in the queue.
func (s *SessionState) Remaining() int {
	return len(s.Queue)
}

// MasteredCount returns how many entries are mastered.
func (s *SessionState) MasteredCount() int {
	n := 0
	for _, e := range s.Entries {
		if e.Mastered {
			n++
		}
	}
	return n
}

// Entry returns the entry for a problem ID, or nil.
func (s *SessionState) Entry(id string) *Entry {
	for _, e := range s.Entries {
		if e.Spec.ID == id {
			return e
		}
	}
	return nil
}

// Step is one submitted answer attributed to its problem.
type Step struct {
	ProblemID string
	Attempt   Attempt
}

// Attempts returns every attempt across all entries in submission order.
func (s *SessionState) Attempts() []Step {
	var steps []Step
	for _, e := range s.Entries {
		for _, a := range e.History {
			steps = append(steps, Step{ProblemID: e.Spec.ID, Attempt: a})
		}
	}
	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].Attempt.seq < steps[j].Attempt.seq
	})
	return steps
}
