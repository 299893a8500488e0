package problemgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write arithmetic word problems for children aged 6 to 10 who play a block-building game.

Rules:
- Each problem is one or two short sentences of plain ASCII text about everyday things: blocks, pets, snacks, toys.
- Each problem uses exactly one operation from the allowed list, with both operands inside the given range.
- Subtraction never goes below zero. Division always comes out even.
- "expression" restates the arithmetic as "a op b", using + - * / only.
- "answer" is the whole-number result of the expression.
- When choices are requested, give exactly that many distinct whole numbers, one of them the answer. Make the others plausible slips, not random values. Otherwise leave choices empty.
- Do not repeat any problem from the "already used" list.`

var opNames = map[Operation]string{
	OpAdd: "addition (+)",
	OpSub: "subtraction (-)",
	OpMul: "multiplication (*)",
	OpDiv: "division (/)",
}

// buildUserMessage describes the wanted set. used holds questions already
// accepted, which the model must not repeat.
func buildUserMessage(req Request, want int, used []string, maxUsed int) string {
	var b strings.Builder

	names := make([]string, len(req.Operations))
	for i, op := range req.Operations {
		names[i] = opNames[op]
	}
	fmt.Fprintf(&b, "Problems wanted: %d\n", want)
	fmt.Fprintf(&b, "Allowed operations: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(&b, "Operand range: %d to %d\n", req.Min, req.Max)
	if req.Choices > 0 {
		fmt.Fprintf(&b, "Choices per problem: %d\n", req.Choices)
	} else {
		b.WriteString("Choices per problem: none\n")
	}

	b.WriteString("\nAlready used:\n")
	b.WriteString(buildDedup(used, maxUsed))
	return b.String()
}

// buildDedup numbers the most recent max entries, or returns "None".
func buildDedup(items []string, max int) string {
	if len(items) == 0 {
		return "None"
	}
	if max > 0 && len(items) > max {
		items = items[len(items)-max:]
	}

	var b strings.Builder
	for i, q := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
