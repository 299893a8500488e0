// Package queue schedules which math problem to present next. It tracks
// per-problem mastery, reinserts missed problems a few slots ahead, and
// assembles the end-of-session mistake report.
package queue

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Rand is the source of reinsertion offsets. *rand.Rand satisfies it.
type Rand interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// Manager applies the scheduling rules to a SessionState. A Manager holds
// no session data and may drive any number of independent sessions.
type Manager struct {
	cfg Config
	now func() time.Time
	rng Rand
}

// Option configures a Manager.
type Option func(*Manager)

// WithConfig overrides the mastery and reinsertion tunables.
func WithConfig(cfg Config) Option {
	return func(m *Manager) { m.cfg = cfg }
}

// WithClock sets the timestamp source for attempt history.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithRand sets the reinsertion offset source.
func WithRand(r Rand) Option {
	return func(m *Manager) { m.rng = r }
}

// NewManager creates a Manager. Without options it uses DefaultConfig, the
// wall clock and an unseeded generator.
func NewManager(opts ...Option) (*Manager, error) {
	m := &Manager{
		now: time.Now,
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.cfg.Validate(); err != nil {
		return nil, err
	}
	m.cfg = m.cfg.withDefaults()
	return m, nil
}

// Config returns the effective tunables.
func (m *Manager) Config() Config {
	return m.cfg
}

// Initialize creates a session with one fresh entry per spec, queued in
// the given order.
func (m *Manager) Initialize(specs []ProblemSpec) (*SessionState, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: no problems", ErrInvalidInput)
	}

	seen := make(map[string]bool, len(specs))
	entries := make([]*Entry, 0, len(specs))
	for i, spec := range specs {
		if spec.ID == "" {
			return nil, fmt.Errorf("%w: problem %d has an empty id", ErrInvalidInput, i)
		}
		if seen[spec.ID] {
			return nil, fmt.Errorf("%w: duplicate problem id %q", ErrInvalidInput, spec.ID)
		}
		seen[spec.ID] = true

		spec.Choices = append([]Answer(nil), spec.Choices...)
		entries = append(entries, &Entry{
			Spec:             spec,
			MasteryThreshold: m.cfg.FreshThreshold,
		})
	}

	queue := make([]*Entry, len(entries))
	copy(queue, entries)

	return &SessionState{
		Queue:     queue,
		Entries:   entries,
		StartedAt: m.now(),
	}, nil
}

// CurrentProblem returns a copy of the problem at the front of the queue,
// or nil once the session is complete. Changing the copy does not affect
// grading.
func (m *Manager) CurrentProblem(state *SessionState) *ProblemSpec {
	if state == nil || len(state.Queue) == 0 {
		return nil
	}
	spec := state.Queue[0].Spec
	spec.Choices = append([]Answer(nil), spec.Choices...)
	return &spec
}

// SubmitResult describes the outcome of one answer.
type SubmitResult struct {
	Correct bool

	// State is the session that was updated in place.
	State *SessionState

	// Entry is a snapshot of the answered entry after the update.
	Entry EntrySnapshot

	Transition Transition
}

// SubmitAnswer grades answer against the current problem, records the
// attempt, updates mastery, and moves the entry:
//
//   - correct and mastered: removed from the queue for good
//   - correct, streak short of the threshold: moved to the end
//   - incorrect: reinserted MinReinsertOffset..MaxReinsertOffset slots
//     ahead, or at the end when the queue is shorter than that
func (m *Manager) SubmitAnswer(state *SessionState, answer Answer) (SubmitResult, error) {
	if state == nil || len(state.Queue) == 0 {
		return SubmitResult{}, ErrNoActiveProblem
	}

	entry := state.Queue[0]
	from := entry.State()
	correct := answer.Equal(entry.Spec.Answer)

	state.submissions++
	entry.History = append(entry.History, Attempt{
		Answer:    answer,
		Correct:   correct,
		Timestamp: m.now(),
		seq:       state.submissions,
	})

	// Dequeue; every branch below decides where, if anywhere, it goes back.
	rest := state.Queue[1:]

	if correct {
		entry.CorrectStreak++
		if entry.CorrectStreak >= entry.MasteryThreshold {
			entry.Mastered = true
			state.Queue = rest
			if len(state.Queue) == 0 {
				state.Complete = true
				state.CompletedAt = m.now()
			}
		} else {
			state.Queue = append(rest, entry)
		}
	} else {
		entry.CorrectStreak = 0
		entry.MistakeCount++
		entry.MasteryThreshold = m.cfg.MissedThreshold
		if entry.MistakeCount == 1 {
			state.MistakesLog = append(state.MistakesLog, entry)
		}
		state.Queue = insertAt(rest, m.reinsertOffset(), entry)
	}

	return SubmitResult{
		Correct: correct,
		State:   state,
		Entry:   entry.Snapshot(),
		Transition: Transition{
			ProblemID: entry.Spec.ID,
			From:      from,
			To:        entry.State(),
		},
	}, nil
}

// reinsertOffset draws an offset in [MinReinsertOffset, MaxReinsertOffset].
func (m *Manager) reinsertOffset() int {
	span := m.cfg.MaxReinsertOffset - m.cfg.MinReinsertOffset + 1
	return m.cfg.MinReinsertOffset + m.rng.IntN(span)
}

// insertAt returns a new slice with e placed at index i of q, clamping i
// to len(q).
func insertAt(q []*Entry, i int, e *Entry) []*Entry {
	if i > len(q) {
		i = len(q)
	}
	if i < 0 {
		i = 0
	}
	out := make([]*Entry, 0, len(q)+1)
	out = append(out, q[:i]...)
	out = append(out, e)
	out = append(out, q[i:]...)
	return out
}
