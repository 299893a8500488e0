package problemgen

import (
	"fmt"
	"math"
	"strings"
)

// Length limits for model output.
const (
	maxQuestionLen   = 300
	maxExpressionLen = 40
)

// StructuralValidator checks field presence, length and answer shape.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(c *Candidate, _ Request) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	q := strings.TrimSpace(c.Question)
	switch {
	case q == "":
		return fail("question is empty")
	case len(q) > maxQuestionLen:
		return fail("question exceeds %d characters", maxQuestionLen)
	case strings.TrimSpace(c.Expression) == "":
		return fail("expression is empty")
	case len(c.Expression) > maxExpressionLen:
		return fail("expression exceeds %d characters", maxExpressionLen)
	case math.IsNaN(c.Answer) || math.IsInf(c.Answer, 0):
		return fail("answer is not a finite number")
	case c.Answer < 0:
		return fail("answer %v is negative", c.Answer)
	case c.Answer != math.Trunc(c.Answer):
		return fail("answer %v is not a whole number", c.Answer)
	}
	return nil
}
