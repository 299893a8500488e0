package diagnosis

import (
	"strconv"
	"strings"

	"github.com/abhisek/blockmath/internal/problemgen"
)

// ArithmeticClassifier recomputes an "a op b" question and matches the
// learner's answer against the misconception taxonomy. Word problems and
// non-whole answers are left to the LLM.
type ArithmeticClassifier struct{}

func (c *ArithmeticClassifier) Name() string { return "arithmetic" }

func (c *ArithmeticClassifier) Classify(in *ClassifyInput) *Result {
	a, op, b, err := problemgen.ParseExpression(in.Question)
	if err != nil {
		return nil
	}
	want, err := problemgen.Evaluate(a, op, b)
	if err != nil {
		return nil
	}
	got, err := strconv.ParseInt(strings.TrimSpace(in.LearnerAnswer), 10, 64)
	if err != nil || got == want {
		return nil
	}

	id, conf := matchMisconception(a, op, b, want, got)
	if id == "" {
		return nil
	}
	return &Result{Category: CategoryMisconception, MisconceptionID: id, Confidence: conf}
}

func matchMisconception(a int64, op problemgen.Operation, b, want, got int64) (string, float64) {
	for _, other := range problemgen.AllOperations {
		if other == op {
			continue
		}
		if v, err := problemgen.Evaluate(a, other, b); err == nil && v == got {
			return MisconceptionWrongOperation, 0.85
		}
	}

	switch op {
	case problemgen.OpMul:
		if got == a*(b+1) || got == a*(b-1) || got == (a+1)*b || got == (a-1)*b {
			return MisconceptionTableNeighbor, 0.75
		}
	case problemgen.OpAdd:
		if p := powerOfTen(want - got); p > 1 && a%p+b%p >= p {
			return MisconceptionCarrySlip, 0.8
		}
	case problemgen.OpSub:
		if p := powerOfTen(got - want); p > 1 && a%p < b%p {
			return MisconceptionBorrowSlip, 0.8
		}
	}

	if got-want == 1 || want-got == 1 {
		return MisconceptionOffByOne, 0.6
	}
	return "", 0
}

// powerOfTen returns n when it is 1, 10, 100 and so on, or 0.
func powerOfTen(n int64) int64 {
	if n < 1 {
		return 0
	}
	p := int64(1)
	for p < n {
		p *= 10
	}
	if p != n {
		return 0
	}
	return p
}
