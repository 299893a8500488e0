package problemgen

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/abhisek/blockmath/internal/queue"
)

// ArithmeticGenerator builds problems from random operands. Subtraction
// never goes negative and division always has a whole answer.
type ArithmeticGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewArithmeticGenerator returns a generator whose output is fully
// determined by seed.
func NewArithmeticGenerator(seed uint64) *ArithmeticGenerator {
	return &ArithmeticGenerator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// attemptsPerProblem bounds the search for a fresh question.
const attemptsPerProblem = 64

func (g *ArithmeticGenerator) Generate(ctx context.Context, req Request) ([]queue.ProblemSpec, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	seen := make(map[string]bool, req.Count)
	specs := make([]queue.ProblemSpec, 0, req.Count)
	for tries := 0; len(specs) < req.Count; tries++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if tries >= req.Count*attemptsPerProblem {
			return nil, fmt.Errorf("%w: found %d of %d in range %d..%d",
				ErrNotEnoughProblems, len(specs), req.Count, req.Min, req.Max)
		}

		op := req.Operations[g.rng.IntN(len(req.Operations))]
		a, b, ans := g.operands(op, req.Min, req.Max)
		question := fmt.Sprintf("%d %s %d", a, op.Symbol(), b)
		if seen[question] {
			continue
		}
		seen[question] = true

		spec := queue.ProblemSpec{
			ID:       fmt.Sprintf("%s-%d-%d", op, a, b),
			Question: question,
			Answer:   queue.Number(float64(ans)),
		}
		if req.Choices > 0 {
			spec.Choices = g.choices(ans, req.Choices)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// operands picks a and b for op in [lo, hi] and returns the answer.
func (g *ArithmeticGenerator) operands(op Operation, lo, hi int) (a, b, ans int) {
	pick := func(lo, hi int) int { return lo + g.rng.IntN(hi-lo+1) }

	switch op {
	case OpSub:
		a, b = pick(lo, hi), pick(lo, hi)
		if a < b {
			a, b = b, a
		}
		return a, b, a - b
	case OpMul:
		a, b = pick(lo, hi), pick(lo, hi)
		return a, b, a * b
	case OpDiv:
		// a = b × q keeps the quotient whole.
		b = pick(max(lo, 1), hi)
		q := pick(lo, hi)
		return b * q, b, q
	default:
		a, b = pick(lo, hi), pick(lo, hi)
		return a, b, a + b
	}
}

// choices returns n distinct non-negative options including ans, shuffled.
func (g *ArithmeticGenerator) choices(ans, n int) []queue.Answer {
	opts := []int{ans}
	spread := max(3, ans/4+1)
	for tries := 0; len(opts) < n && tries < 100; tries++ {
		d := 1 + g.rng.IntN(spread)
		if g.rng.IntN(2) == 0 {
			d = -d
		}
		if c := ans + d; c >= 0 && !slices.Contains(opts, c) {
			opts = append(opts, c)
		}
	}
	for c := ans + 1; len(opts) < n; c++ {
		if !slices.Contains(opts, c) {
			opts = append(opts, c)
		}
	}
	g.rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })

	out := make([]queue.Answer, n)
	for i, c := range opts {
		out[i] = queue.Number(float64(c))
	}
	return out
}
