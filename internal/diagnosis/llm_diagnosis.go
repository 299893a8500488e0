package diagnosis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/abhisek/blockmath/internal/llm"
)

// DiagnoserConfig holds configuration for the LLM diagnoser.
type DiagnoserConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultDiagnoserConfig returns the settings used by NewService.
func DefaultDiagnoserConfig() DiagnoserConfig {
	return DiagnoserConfig{
		MaxTokens:   256,
		Temperature: 0.3,
	}
}

// Diagnoser asks an LLM which known misconception, if any, explains a
// wrong answer.
type Diagnoser struct {
	provider llm.Provider
	cfg      DiagnoserConfig
}

// NewDiagnoser creates an LLM-based diagnoser.
func NewDiagnoser(provider llm.Provider, cfg DiagnoserConfig) *Diagnoser {
	return &Diagnoser{provider: provider, cfg: cfg}
}

// DiagnosisRequest is the input for LLM misconception identification.
type DiagnosisRequest struct {
	Question      string
	CorrectAnswer string
	LearnerAnswer string
	Candidates    []*Misconception
}

type diagnosisOutput struct {
	MisconceptionID *string `json:"misconception_id"`
	Confidence      float64 `json:"confidence"`
	Reasoning       string  `json:"reasoning"`
}

// DiagnosisSchema is the JSON shape requested from the model.
var DiagnosisSchema = &llm.Schema{
	Name:        "error-diagnosis",
	Description: "Classification of a wrong answer against a known misconception list",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"misconception_id": map[string]any{
				"type":        []any{"string", "null"},
				"description": "The ID of the matching misconception from the candidate list, or null if none match",
			},
			"confidence": map[string]any{
				"type":        "number",
				"minimum":     0.0,
				"maximum":     1.0,
				"description": "How well the error matches the misconception, from 0 to 1",
			},
			"reasoning": map[string]any{
				"type":        "string",
				"description": "One short sentence explaining the choice",
			},
		},
		"required":             []any{"misconception_id", "confidence", "reasoning"},
		"additionalProperties": false,
	},
}

// Diagnose sends a wrong answer to the LLM. IDs outside the candidate
// list come back unclassified.
func (d *Diagnoser) Diagnose(ctx context.Context, req *DiagnosisRequest) (*Result, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeDiagnosis)

	userMsg, err := buildDiagnosisMessage(req)
	if err != nil {
		return nil, fmt.Errorf("build diagnosis prompt: %w", err)
	}
	llmReq := llm.UserPrompt(diagnosisSystemPrompt, userMsg, DiagnosisSchema, d.cfg.MaxTokens)
	llmReq.Temperature = d.cfg.Temperature

	resp, err := d.provider.Generate(ctx, llmReq)
	if err != nil {
		return nil, fmt.Errorf("LLM diagnosis failed: %w", err)
	}

	var raw diagnosisOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse diagnosis response: %w", err)
	}

	res := &Result{
		Category:       CategoryUnclassified,
		Confidence:     raw.Confidence,
		ClassifierName: "llm",
		Reasoning:      raw.Reasoning,
	}
	if raw.MisconceptionID == nil {
		return res, nil
	}
	for _, c := range req.Candidates {
		if c.ID == *raw.MisconceptionID {
			res.Category = CategoryMisconception
			res.MisconceptionID = c.ID
			break
		}
	}
	return res, nil
}

const diagnosisSystemPrompt = `You help a children's math game explain mistakes. A child answered a question incorrectly. Decide whether the wrong answer matches one of the listed misconceptions.

Rules:
- If the error clearly matches a listed misconception, return its ID.
- Otherwise return null for misconception_id.
- Only use IDs from the list. Never invent new ones.
- Keep the reasoning to one short sentence.`

var diagnosisUserTemplate = template.Must(template.New("diagnosis").Parse(`Question: {{.Question}}
Correct answer: {{.CorrectAnswer}}
Child's answer: {{.LearnerAnswer}}

Known misconceptions:
{{range .Candidates}}- {{.ID}}: {{.Description}} (e.g. {{.Example}})
{{end}}`))

func buildDiagnosisMessage(req *DiagnosisRequest) (string, error) {
	var buf bytes.Buffer
	if err := diagnosisUserTemplate.Execute(&buf, req); err != nil {
		return "", err
	}
	return buf.String(), nil
}
