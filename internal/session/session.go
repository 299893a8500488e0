// Package session runs one play-through of a problem set. It drives the
// queue scheduler and layers scoring, block awards, observers and
// persistence on top.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/blockmath/internal/blocks"
	"github.com/abhisek/blockmath/internal/diagnosis"
	"github.com/abhisek/blockmath/internal/queue"
	"github.com/abhisek/blockmath/internal/store"
)

// DefaultPointsPerCorrect is the score for each correct answer.
const DefaultPointsPerCorrect = 10

// DiagnosisWait bounds how long a finishing session waits for queued LLM
// diagnoses.
const DiagnosisWait = 3 * time.Second

// ErrComplete is returned by Submit once every problem is mastered.
var ErrComplete = errors.New("session: already complete")

// Session is not safe for concurrent use.
type Session struct {
	id        string
	specs     []queue.ProblemSpec
	manager   *queue.Manager
	state     *queue.SessionState
	summary   *queue.SessionSummary
	streak    blocks.Streak
	points    int
	blocks    *blocks.Service
	repo      store.SessionRepo
	observers []Observer
	newID     func() string

	diagnosis *diagnosis.Service
	diagnoses map[string]diagnosis.Result
}

// Option configures a Session.
type Option func(*Session)

// WithManager sets the scheduler. The default uses queue.DefaultConfig.
func WithManager(m *queue.Manager) Option {
	return func(s *Session) { s.manager = m }
}

// WithBlocks sets the block service. The default keeps awards in memory.
func WithBlocks(svc *blocks.Service) Option {
	return func(s *Session) { s.blocks = svc }
}

// WithStore persists the summary of each completed session.
func WithStore(repo store.SessionRepo) Option {
	return func(s *Session) { s.repo = repo }
}

// WithDiagnosis tags each wrong answer with an error category. A nil
// service disables diagnosis.
func WithDiagnosis(svc *diagnosis.Service) Option {
	return func(s *Session) { s.diagnosis = svc }
}

// WithObserver registers an observer.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observers = append(s.observers, o) }
}

// WithPointsPerCorrect overrides the per-answer score.
func WithPointsPerCorrect(n int) Option {
	return func(s *Session) { s.points = n }
}

// withIDFunc overrides session ID generation in tests.
func withIDFunc(f func() string) Option {
	return func(s *Session) { s.newID = f }
}

// New starts a session over specs.
func New(specs []queue.ProblemSpec, opts ...Option) (*Session, error) {
	s := &Session{
		specs:  append([]queue.ProblemSpec(nil), specs...),
		points: DefaultPointsPerCorrect,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.manager == nil {
		m, err := queue.NewManager()
		if err != nil {
			return nil, err
		}
		s.manager = m
	}
	if s.blocks == nil {
		s.blocks = blocks.NewService(nil)
	}
	if err := s.start(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) start() error {
	state, err := s.manager.Initialize(s.specs)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	s.id = s.newID()
	s.state = state
	s.summary = nil
	s.diagnoses = nil
	s.streak = blocks.Streak{}
	s.blocks.ResetSession()
	return nil
}

// Reset discards all progress and starts over with the same problems
// under a new session ID. Blocks already saved stay saved.
func (s *Session) Reset() error {
	return s.start()
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// State returns the live scheduler state. Callers must not mutate it.
func (s *Session) State() *queue.SessionState { return s.state }

// Current returns the problem to show, or nil when complete.
func (s *Session) Current() *queue.ProblemSpec {
	return s.manager.CurrentProblem(s.state)
}

// Complete reports whether every problem is mastered.
func (s *Session) Complete() bool { return s.state.Complete }

// Summary returns the report of a completed session, or nil.
func (s *Session) Summary() *queue.SessionSummary { return s.summary }

// Diagnoses returns the error category of each missed problem, keyed by
// problem ID, once the session is complete. Problems no rule or model
// could explain are absent.
func (s *Session) Diagnoses() map[string]diagnosis.Result {
	out := make(map[string]diagnosis.Result, len(s.diagnoses))
	for k, v := range s.diagnoses {
		out[k] = v
	}
	return out
}

// Awards returns the blocks earned in this session.
func (s *Session) Awards() []blocks.Award { return s.blocks.SessionAwards() }

// Progress returns mastered and total problem counts.
func (s *Session) Progress() Progress {
	return Progress{Mastered: s.state.MasteredCount(), Total: len(s.state.Entries)}
}

// Outcome is the result of one Submit.
type Outcome struct {
	queue.SubmitResult

	// Points added to the score by this answer.
	Points int

	// Awards are the blocks earned by this answer, in award order.
	Awards []blocks.Award

	// Diagnosis is set for wrong answers when diagnosis is enabled. An
	// LLM diagnosis may still replace it before the session ends.
	Diagnosis *diagnosis.Result

	// Summary is set when this answer completed the session.
	Summary *queue.SessionSummary
}

// Submit grades answer against the current problem and applies scoring
// and awards. Observers are notified before it returns.
func (s *Session) Submit(ctx context.Context, answer queue.Answer) (Outcome, error) {
	if s.state.Complete {
		return Outcome{}, ErrComplete
	}
	attempts, correct, prev := s.tally()
	res, err := s.manager.SubmitAnswer(s.state, answer)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{SubmitResult: res}
	if !res.Correct && s.diagnosis != nil {
		out.Diagnosis = s.diagnose(ctx, res, answer, attempts, correct, prev)
	}

	if res.Correct {
		s.state.AddScore(s.points)
		out.Points = s.points
	}
	if s.streak.Record(res.Correct) {
		out.Awards = append(out.Awards, s.award(s.blocks.AwardStreak(ctx, s.id, s.streak.Len())))
	}

	var mastered *MasteredEvent
	if res.Transition.Changed() && res.Transition.To == queue.StateMastered {
		spec := s.state.Entry(res.Entry.ProblemID).Spec
		block := s.award(s.blocks.AwardMastered(ctx, s.id, spec.ID, spec.Question, res.Entry.MistakeCount))
		out.Awards = append(out.Awards, block)
		mastered = &MasteredEvent{
			SessionID: s.id,
			ProblemID: spec.ID,
			Mistakes:  res.Entry.MistakeCount,
			Block:     block,
		}
	}

	for _, o := range s.observers {
		o.OnAnswer(AnswerEvent{
			SessionID: s.id,
			ProblemID: res.Entry.ProblemID,
			Correct:   res.Correct,
			Entry:     res.Entry,
			Score:     s.state.Score,
		})
		if mastered != nil {
			o.OnMastered(*mastered)
		}
	}

	if s.state.Complete {
		gold, sum, err := s.finish(ctx)
		if err != nil {
			return out, err
		}
		out.Awards = append(out.Awards, gold)
		out.Summary = sum
	}
	return out, nil
}

// tally counts the answers so far and returns the time of the latest one,
// or the session start when there are none.
func (s *Session) tally() (attempts, correct int, last time.Time) {
	last = s.state.StartedAt
	for _, e := range s.state.Entries {
		for _, a := range e.History {
			attempts++
			if a.Correct {
				correct++
			}
			if a.Timestamp.After(last) {
				last = a.Timestamp
			}
		}
	}
	return attempts, correct, last
}

func (s *Session) diagnose(ctx context.Context, res queue.SubmitResult, answer queue.Answer, attempts, correct int, prev time.Time) *diagnosis.Result {
	spec := s.state.Entry(res.Entry.ProblemID).Spec
	in := &diagnosis.ClassifyInput{
		SessionID:     s.id,
		ProblemID:     spec.ID,
		Question:      spec.Question,
		CorrectAnswer: spec.Answer.String(),
		LearnerAnswer: answer.String(),
		Attempts:      attempts,
	}
	if attempts > 0 {
		in.Accuracy = float64(correct) / float64(attempts)
	}
	if h := res.Entry.History; len(h) > 0 {
		in.ResponseTime = h[len(h)-1].Timestamp.Sub(prev)
	}
	r := s.diagnosis.Diagnose(ctx, in)
	return &r
}

// collectDiagnoses gathers the final diagnosis of each missed problem.
// LLM answers still pending after DiagnosisWait are dropped.
func (s *Session) collectDiagnoses(ctx context.Context, sum *queue.SessionSummary) {
	if s.diagnosis == nil {
		return
	}
	wctx, cancel := context.WithTimeout(ctx, DiagnosisWait)
	defer cancel()
	_ = s.diagnosis.Wait(wctx)

	s.diagnoses = make(map[string]diagnosis.Result, len(sum.Mistakes))
	for _, m := range sum.Mistakes {
		if r, ok := s.diagnosis.Result(s.id, m.ProblemID); ok && r.Classified() {
			s.diagnoses[m.ProblemID] = r
		}
	}
}

func (s *Session) award(a blocks.Award) blocks.Award {
	s.state.AwardBlocks(1)
	return a
}

// finish awards the completion block, builds the summary and saves it.
func (s *Session) finish(ctx context.Context) (blocks.Award, *queue.SessionSummary, error) {
	pre, err := s.manager.BuildSessionSummary(s.state)
	if err != nil {
		return blocks.Award{}, nil, err
	}
	gold := s.award(s.blocks.AwardCompletion(ctx, s.id, pre.Accuracy))

	sum, err := s.manager.BuildSessionSummary(s.state)
	if err != nil {
		return blocks.Award{}, nil, err
	}
	s.summary = sum
	s.collectDiagnoses(ctx, sum)

	if s.repo != nil {
		rec, mistakes := toRecords(s.id, s.state, sum, s.diagnoses)
		if err := s.repo.SaveSummary(ctx, rec, mistakes); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to save session: %v\n", err)
		}
	}
	for _, o := range s.observers {
		o.OnComplete(sum)
	}
	return gold, sum, nil
}
