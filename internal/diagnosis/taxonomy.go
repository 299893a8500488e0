package diagnosis

import (
	"slices"

	"github.com/abhisek/blockmath/internal/problemgen"
)

// Misconception is a known wrong-answer pattern.
type Misconception struct {
	ID          string
	Label       string
	Description string
	Operations  []problemgen.Operation
	Example     string
}

// Misconception IDs.
const (
	MisconceptionWrongOperation = "wrong-operation"
	MisconceptionOffByOne       = "off-by-one"
	MisconceptionCarrySlip      = "carry-slip"
	MisconceptionBorrowSlip     = "borrow-slip"
	MisconceptionTableNeighbor  = "times-table-neighbor"
)

var misconceptions = []Misconception{
	{
		ID:          MisconceptionWrongOperation,
		Label:       "Used the wrong operation",
		Description: "Answered with the result of a different operation on the same numbers, such as adding instead of multiplying.",
		Operations:  problemgen.AllOperations,
		Example:     "4 × 3 = 7",
	},
	{
		ID:          MisconceptionOffByOne,
		Label:       "Off by one",
		Description: "Counted one too many or one too few, often when counting on from the first number.",
		Operations:  problemgen.AllOperations,
		Example:     "8 + 5 = 12",
	},
	{
		ID:          MisconceptionCarrySlip,
		Label:       "Forgot to carry",
		Description: "A column added up to ten or more and the carried ten was dropped.",
		Operations:  []problemgen.Operation{problemgen.OpAdd},
		Example:     "47 + 38 = 75",
	},
	{
		ID:          MisconceptionBorrowSlip,
		Label:       "Forgot to borrow",
		Description: "A column needed to borrow from the next one and the smaller digit was taken from the larger instead.",
		Operations:  []problemgen.Operation{problemgen.OpSub},
		Example:     "52 - 17 = 45",
	},
	{
		ID:          MisconceptionTableNeighbor,
		Label:       "Mixed up the times table",
		Description: "Gave a neighbouring fact from the times table, one group too many or too few.",
		Operations:  []problemgen.Operation{problemgen.OpMul},
		Example:     "7 × 8 = 63",
	},
}

var registry = func() map[string]*Misconception {
	m := make(map[string]*Misconception, len(misconceptions))
	for i := range misconceptions {
		m[misconceptions[i].ID] = &misconceptions[i]
	}
	return m
}()

// GetMisconception returns a misconception by ID, or nil if not found.
func GetMisconception(id string) *Misconception {
	return registry[id]
}

// MisconceptionsFor returns the misconceptions that apply to op. An empty
// op, as for a word problem, returns all of them.
func MisconceptionsFor(op problemgen.Operation) []*Misconception {
	var out []*Misconception
	for i := range misconceptions {
		m := &misconceptions[i]
		if op == "" || slices.Contains(m.Operations, op) {
			out = append(out, m)
		}
	}
	return out
}
