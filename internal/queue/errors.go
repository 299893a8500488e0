package queue

import "errors"

// Sentinel errors for the queue package. All of them signal a broken caller
// contract rather than a runtime condition; check with errors.Is.
var (
	ErrInvalidInput       = errors.New("queue: invalid input")
	ErrNoActiveProblem    = errors.New("queue: no active problem")
	ErrSessionNotComplete = errors.New("queue: session not complete")
	ErrInvalidConfig      = errors.New("queue: invalid config")
	ErrReplayMismatch     = errors.New("queue: replay does not match session")
)
