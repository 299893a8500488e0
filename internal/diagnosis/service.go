package diagnosis

import (
	"context"
	"sync"

	"github.com/abhisek/blockmath/internal/llm"
	"github.com/abhisek/blockmath/internal/problemgen"
)

// Service diagnoses wrong answers and remembers the best diagnosis per
// problem. It is safe for concurrent use.
type Service struct {
	classifiers []Classifier
	diagnoser   *Diagnoser
	pending     chan diagnosisJob
	inflight    sync.WaitGroup

	mu      sync.Mutex
	closed  bool
	results map[resultKey]Result
}

type resultKey struct {
	session, problem string
}

type diagnosisJob struct {
	ctx context.Context
	key resultKey
	req *DiagnosisRequest
}

// NewService creates a diagnosis service. With a nil provider only the
// rules run.
func NewService(provider llm.Provider) *Service {
	s := &Service{
		classifiers: DefaultClassifiers(),
		pending:     make(chan diagnosisJob, 32),
		results:     make(map[resultKey]Result),
	}
	if provider != nil {
		s.diagnoser = NewDiagnoser(provider, DefaultDiagnoserConfig())
		go s.processLoop()
	}
	return s
}

// Diagnose classifies a wrong answer. Rules run synchronously. When none
// apply and an LLM is available, the answer is queued for the model and
// the unclassified result is returned at once; Wait collects the rest.
func (s *Service) Diagnose(ctx context.Context, in *ClassifyInput) Result {
	key := resultKey{in.SessionID, in.ProblemID}

	if r := RunClassifiers(s.classifiers, in); r != nil {
		s.record(key, *r)
		return *r
	}

	if s.diagnoser != nil {
		s.dispatchLLM(ctx, key, in)
	}
	r := Result{Category: CategoryUnclassified, ClassifierName: "none"}
	s.record(key, r)
	return r
}

func (s *Service) dispatchLLM(ctx context.Context, key resultKey, in *ClassifyInput) {
	var op problemgen.Operation
	if _, parsed, _, err := problemgen.ParseExpression(in.Question); err == nil {
		op = parsed
	}
	req := &DiagnosisRequest{
		Question:      in.Question,
		CorrectAnswer: in.CorrectAnswer,
		LearnerAnswer: in.LearnerAnswer,
		Candidates:    MisconceptionsFor(op),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.inflight.Add(1)
	select {
	case s.pending <- diagnosisJob{ctx: ctx, key: key, req: req}:
	default:
		// Queue full; this answer stays unclassified.
		s.inflight.Done()
	}
}

func (s *Service) processLoop() {
	for job := range s.pending {
		res, err := s.diagnoser.Diagnose(job.ctx, job.req)
		if err == nil && res != nil {
			s.record(job.key, *res)
		}
		s.inflight.Done()
	}
}

// record keeps the more specific of the stored and new results.
func (s *Service) record(key resultKey, r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.results[key]; ok && cur.Category.rank() >= r.Category.rank() {
		return
	}
	s.results[key] = r
}

// Result returns the diagnosis recorded for a problem in a session.
func (s *Service) Result(sessionID, problemID string) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.results[resultKey{sessionID, problemID}]
	return r, ok
}

// Wait blocks until queued LLM diagnoses finish or ctx is done.
func (s *Service) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the LLM worker. Later answers get rules only.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.pending)
}
