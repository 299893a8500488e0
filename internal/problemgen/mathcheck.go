package problemgen

import (
	"fmt"
	"regexp"
	"strconv"
)

// MathCheckValidator recomputes the expression and compares it with the
// claimed answer. It also rejects operations the request did not ask for
// and results that break the whole, non-negative rules.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(c *Candidate, req Request) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	a, op, b, err := ParseExpression(c.Expression)
	if err != nil {
		return fail("expression %q: %v", c.Expression, err)
	}
	if !req.allows(op) {
		return fail("operation %s was not requested", op)
	}
	got, err := Evaluate(a, op, b)
	if err != nil {
		return fail("expression %q: %v", c.Expression, err)
	}

	// Division is built as divisor × quotient, so those two carry the range.
	x, y := a, b
	if op == OpDiv {
		x = got
	}
	inRange := func(n int64) bool { return n >= int64(req.Min) && n <= int64(req.Max) }
	if !inRange(x) || !inRange(y) {
		return fail("operands of %q outside %d..%d", c.Expression, req.Min, req.Max)
	}

	if float64(got) != c.Answer {
		return fail("computed %d but model claimed %v", got, c.Answer)
	}
	return nil
}

// exprRe matches "a op b" with whole operands. Division accepts / as well
// as ÷, and multiplication accepts * x and ×.
var exprRe = regexp.MustCompile(`^\s*(\d+)\s*([+\-*x×/÷])\s*(\d+)\s*(?:=\s*\??\s*)?$`)

// ParseExpression splits an expression such as "12 ÷ 3" into its operands
// and operation.
func ParseExpression(expr string) (int64, Operation, int64, error) {
	m := exprRe.FindStringSubmatch(expr)
	if m == nil {
		return 0, "", 0, fmt.Errorf("not of the form \"a op b\"")
	}
	a, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, "", 0, err
	}
	b, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return 0, "", 0, err
	}

	var op Operation
	switch m[2] {
	case "+":
		op = OpAdd
	case "-":
		op = OpSub
	case "*", "x", "×":
		op = OpMul
	case "/", "÷":
		op = OpDiv
	}
	return a, op, b, nil
}

// Evaluate computes a op b under the whole, non-negative rules.
func Evaluate(a int64, op Operation, b int64) (int64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		if a < b {
			return 0, fmt.Errorf("negative result")
		}
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		if b == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		if a%b != 0 {
			return 0, fmt.Errorf("%d is not divisible by %d", a, b)
		}
		return a / b, nil
	}
	return 0, fmt.Errorf("unsupported operation %q", op)
}
