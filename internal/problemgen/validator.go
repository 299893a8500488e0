package problemgen

import "fmt"

// Candidate is one problem as proposed by the model, before validation.
type Candidate struct {
	Question   string    `json:"question"`
	Expression string    `json:"expression"`
	Answer     float64   `json:"answer"`
	Choices    []float64 `json:"choices"`
}

// Validator checks a candidate problem. Implementations are stateless.
type Validator interface {
	// Name is a short identifier used in error messages.
	Name() string

	// Validate returns nil when c is acceptable for req.
	Validate(c *Candidate, req Request) *ValidationError
}

// ValidationError describes why a candidate was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultValidators is the standard chain, run in order.
func DefaultValidators() []Validator {
	return []Validator{
		&StructuralValidator{},
		&ChoicesValidator{},
		&MathCheckValidator{},
	}
}

// runValidators returns the first failure of the chain.
func runValidators(vs []Validator, c *Candidate, req Request) *ValidationError {
	for _, v := range vs {
		if err := v.Validate(c, req); err != nil {
			return err
		}
	}
	return nil
}
