package problemgen

import "fmt"

// ChoicesValidator checks multiple-choice options: the requested count,
// all distinct, exactly one equal to the answer. Typed-answer requests
// must come without options.
type ChoicesValidator struct{}

func (v *ChoicesValidator) Name() string { return "choices" }

func (v *ChoicesValidator) Validate(c *Candidate, req Request) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	if req.Choices == 0 {
		if len(c.Choices) > 0 {
			return fail("got %d choices for a typed-answer set", len(c.Choices))
		}
		return nil
	}
	if len(c.Choices) != req.Choices {
		return fail("want %d choices, got %d", req.Choices, len(c.Choices))
	}

	seen := make(map[float64]bool, len(c.Choices))
	hasAnswer := false
	for i, ch := range c.Choices {
		if seen[ch] {
			return fail("choice %d (%v) is a duplicate", i+1, ch)
		}
		seen[ch] = true
		if ch < 0 {
			return fail("choice %d (%v) is negative", i+1, ch)
		}
		if ch == c.Answer {
			hasAnswer = true
		}
	}
	if !hasAnswer {
		return fail("answer %v is not among the choices", c.Answer)
	}
	return nil
}
