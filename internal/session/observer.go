package session

import (
	"github.com/abhisek/blockmath/internal/blocks"
	"github.com/abhisek/blockmath/internal/queue"
)

// AnswerEvent is delivered after every submitted answer.
type AnswerEvent struct {
	SessionID string
	ProblemID string
	Correct   bool
	Entry     queue.EntrySnapshot
	Score     int
}

// MasteredEvent is delivered when a problem leaves the queue for good.
type MasteredEvent struct {
	SessionID string
	ProblemID string
	Mistakes  int
	Block     blocks.Award
}

// Observer receives session notifications synchronously, in registration
// order, on the goroutine that called Submit.
type Observer interface {
	OnAnswer(AnswerEvent)
	OnMastered(MasteredEvent)
	OnComplete(*queue.SessionSummary)
}

// Hooks adapts optional functions to Observer. Nil fields are skipped.
type Hooks struct {
	Answer   func(AnswerEvent)
	Mastered func(MasteredEvent)
	Complete func(*queue.SessionSummary)
}

func (h Hooks) OnAnswer(ev AnswerEvent) {
	if h.Answer != nil {
		h.Answer(ev)
	}
}

func (h Hooks) OnMastered(ev MasteredEvent) {
	if h.Mastered != nil {
		h.Mastered(ev)
	}
}

func (h Hooks) OnComplete(s *queue.SessionSummary) {
	if h.Complete != nil {
		h.Complete(s)
	}
}
