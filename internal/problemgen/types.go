package problemgen

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Operation is an arithmetic operation a problem set may use.
type Operation string

const (
	OpAdd Operation = "add"
	OpSub Operation = "sub"
	OpMul Operation = "mul"
	OpDiv Operation = "div"
)

// AllOperations lists every supported operation.
var AllOperations = []Operation{OpAdd, OpSub, OpMul, OpDiv}

// Symbol returns the sign shown in question text.
func (o Operation) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "×"
	case OpDiv:
		return "÷"
	}
	return "?"
}

// ParseOperations parses a comma separated list such as "add,mul".
func ParseOperations(s string) ([]Operation, error) {
	var ops []Operation
	for _, part := range strings.Split(s, ",") {
		op := Operation(strings.ToLower(strings.TrimSpace(part)))
		if op == "" {
			continue
		}
		if !slices.Contains(AllOperations, op) {
			return nil, fmt.Errorf("unknown operation %q (want add, sub, mul or div)", part)
		}
		if !slices.Contains(ops, op) {
			ops = append(ops, op)
		}
	}
	if len(ops) == 0 {
		return nil, fmt.Errorf("no operations in %q", s)
	}
	return ops, nil
}

// Request describes the problem set to build.
type Request struct {
	Operations []Operation
	Min, Max   int // operand range, inclusive
	Count      int // number of problems
	Choices    int // options per problem; 0 means typed answers
}

// DefaultRequest is a short addition and subtraction round.
func DefaultRequest() Request {
	return Request{
		Operations: []Operation{OpAdd, OpSub},
		Min:        1,
		Max:        10,
		Count:      5,
	}
}

// MaxChoices bounds Request.Choices.
const MaxChoices = 6

// MaxOperand bounds Request.Max. Products of two operands stay well inside
// int and float64 precision.
const MaxOperand = 10000

// ErrInvalidRequest is returned for requests no generator can satisfy.
var ErrInvalidRequest = errors.New("problemgen: invalid request")

// Validate checks that the request is satisfiable in principle.
func (r Request) Validate() error {
	switch {
	case len(r.Operations) == 0:
		return fmt.Errorf("%w: no operations", ErrInvalidRequest)
	case r.Count < 1:
		return fmt.Errorf("%w: count must be at least 1", ErrInvalidRequest)
	case r.Min < 0:
		return fmt.Errorf("%w: min must not be negative", ErrInvalidRequest)
	case r.Max < r.Min:
		return fmt.Errorf("%w: max %d below min %d", ErrInvalidRequest, r.Max, r.Min)
	case r.Max > MaxOperand:
		return fmt.Errorf("%w: max %d above %d", ErrInvalidRequest, r.Max, MaxOperand)
	case r.Choices == 1 || r.Choices < 0 || r.Choices > MaxChoices:
		return fmt.Errorf("%w: choices must be 0 or between 2 and %d", ErrInvalidRequest, MaxChoices)
	}
	for _, op := range r.Operations {
		if !slices.Contains(AllOperations, op) {
			return fmt.Errorf("%w: unknown operation %q", ErrInvalidRequest, op)
		}
		if op == OpDiv && r.Max < 1 {
			return fmt.Errorf("%w: division needs max of at least 1", ErrInvalidRequest)
		}
	}
	return nil
}

func (r Request) allows(op Operation) bool {
	return slices.Contains(r.Operations, op)
}
