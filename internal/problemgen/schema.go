package problemgen

import "github.com/abhisek/blockmath/internal/llm"

// ProblemSetSchema is the JSON shape requested from the model.
var ProblemSetSchema = &llm.Schema{
	Name:        "problem-set",
	Description: "A list of short arithmetic word problems for children",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problems": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The word problem shown to the player, plain text, one or two sentences",
						},
						"expression": map[string]any{
							"type":        "string",
							"description": "The arithmetic behind the problem as \"a op b\" with op one of + - * /",
						},
						"answer": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"description": "The whole-number answer",
						},
						"choices": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "integer"},
							"description": "Answer options including the correct one. Empty when no options were requested.",
						},
					},
					"required":             []any{"question", "expression", "answer", "choices"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"problems"},
		"additionalProperties": false,
	},
}

// problemSetOutput is the decoded model response.
type problemSetOutput struct {
	Problems []Candidate `json:"problems"`
}
