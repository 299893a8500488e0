package queue

import "time"

// ProblemSpec is an immutable problem produced by a generator at session
// start.
type ProblemSpec struct {
	// ID is unique within a session.
	ID string `json:"id"`

	// Question is the display text, e.g. "7 + 5".
	Question string `json:"question"`

	// Answer is the canonical correct value.
	Answer Answer `json:"answer"`

	// Choices are candidate answers in display order. May be empty, in
	// which case the learner types the answer.
	Choices []Answer `json:"choices,omitempty"`
}

// Attempt records one submitted answer.
type Attempt struct {
	Answer    Answer    `json:"answer"`
	Correct   bool      `json:"correct"`
	Timestamp time.Time `json:"timestamp"`

	// seq orders attempts that share a timestamp.
	seq int
}

// EntryState is the position of an entry in the mastery lifecycle.
type EntryState string

const (
	StateFresh    EntryState = "fresh"
	StateCycling  EntryState = "cycling"
	StateMissed   EntryState = "missed"
	StateMastered EntryState = "mastered"
)

// Entry tracks mastery for one problem for the lifetime of a session.
// Entries are created by Initialize and only ever move within the queue.
type Entry struct {
	Spec             ProblemSpec
	CorrectStreak    int
	MistakeCount     int
	History          []Attempt
	MasteryThreshold int
	Mastered         bool
}

// State derives the lifecycle state from the counters.
func (e *Entry) State() EntryState {
	switch {
	case e.Mastered:
		return StateMastered
	case e.MistakeCount > 0:
		return StateMissed
	case len(e.History) == 0:
		return StateFresh
	default:
		return StateCycling
	}
}

// Snapshot returns a deep copy of the entry's counters and history.
func (e *Entry) Snapshot() EntrySnapshot {
	return EntrySnapshot{
		ProblemID:        e.Spec.ID,
		State:            e.State(),
		CorrectStreak:    e.CorrectStreak,
		MistakeCount:     e.MistakeCount,
		MasteryThreshold: e.MasteryThreshold,
		Mastered:         e.Mastered,
		History:          copyHistory(e.History),
	}
}

// EntrySnapshot is a point-in-time copy of an Entry.
type EntrySnapshot struct {
	ProblemID        string     `json:"problem_id"`
	State            EntryState `json:"state"`
	CorrectStreak    int        `json:"correct_streak"`
	MistakeCount     int        `json:"mistake_count"`
	MasteryThreshold int        `json:"mastery_threshold"`
	Mastered         bool       `json:"mastered"`
	History          []Attempt  `json:"history"`
}

// Transition records a lifecycle change caused by a single answer. From
// and To are equal when the answer did not change the state.
type Transition struct {
	ProblemID string
	From      EntryState
	To        EntryState
}

// Changed reports whether the state moved.
func (t Transition) Changed() bool {
	return t.From != t.To
}

func copyHistory(h []Attempt) []Attempt {
	if h == nil {
		return nil
	}
	out := make([]Attempt, len(h))
	copy(out, h)
	return out
}
