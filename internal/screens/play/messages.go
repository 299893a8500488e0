package play

import "github.com/abhisek/blockmath/internal/queue"

// problemsReadyMsg is sent when problem generation finishes.
type problemsReadyMsg struct {
	Specs []queue.ProblemSpec
	Err   error
}
