// Package problemgen builds the problem sets a session plays through,
// either from plain arithmetic or from LLM word problems.
package problemgen

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/blockmath/internal/queue"
)

// Generator produces a problem set for a request. Every returned spec has
// a unique non-empty ID.
type Generator interface {
	Generate(ctx context.Context, req Request) ([]queue.ProblemSpec, error)
}

// ErrNotEnoughProblems is returned when fewer distinct problems exist or
// were produced than the request asks for.
var ErrNotEnoughProblems = errors.New("problemgen: not enough distinct problems")

// FallbackGenerator tries Primary and uses Secondary when it fails.
type FallbackGenerator struct {
	Primary   Generator
	Secondary Generator
}

// Generate returns the primary's problems, or the secondary's when the
// primary errors. Invalid requests are not retried.
func (f *FallbackGenerator) Generate(ctx context.Context, req Request) ([]queue.ProblemSpec, error) {
	specs, err := f.Primary.Generate(ctx, req)
	if err == nil {
		return specs, nil
	}
	if errors.Is(err, ErrInvalidRequest) || ctx.Err() != nil {
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "warning: problem generation failed, using fallback: %v\n", err)
	specs, ferr := f.Secondary.Generate(ctx, req)
	if ferr != nil {
		return nil, fmt.Errorf("fallback after %v: %w", err, ferr)
	}
	return specs, nil
}
