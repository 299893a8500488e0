package problemgen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/blockmath/internal/llm"
	"github.com/abhisek/blockmath/internal/queue"
)

// LLMGenerator asks a model for word problems and keeps the candidates
// that pass the validator chain. It asks again for the shortfall, up to
// Config.MaxRounds requests.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// NewLLMGenerator creates an LLMGenerator.
func NewLLMGenerator(provider llm.Provider, cfg Config) *LLMGenerator {
	if cfg.MaxRounds < 1 {
		cfg.MaxRounds = 1
	}
	return &LLMGenerator{provider: provider, config: cfg}
}

func (g *LLMGenerator) Generate(ctx context.Context, req Request) ([]queue.ProblemSpec, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeProblemSet)

	var (
		specs    []queue.ProblemSpec
		used     []string
		seen     = make(map[string]bool)
		rejected int
	)
	for round := 0; round < g.config.MaxRounds && len(specs) < req.Count; round++ {
		want := req.Count - len(specs)
		llmReq := llm.UserPrompt(systemPrompt,
			buildUserMessage(req, want, used, g.config.MaxUsedInPrompt),
			ProblemSetSchema, g.config.MaxTokens)
		llmReq.Temperature = g.config.Temperature

		resp, err := g.provider.Generate(ctx, llmReq)
		if err != nil {
			return nil, fmt.Errorf("LLM generation failed: %w", err)
		}
		var out problemSetOutput
		if err := json.Unmarshal(resp.Content, &out); err != nil {
			return nil, fmt.Errorf("failed to parse LLM response: %w", err)
		}

		for i := range out.Problems {
			c := &out.Problems[i]
			c.Question = strings.TrimSpace(c.Question)
			key := strings.ToLower(c.Question)
			if seen[key] {
				rejected++
				continue
			}
			if verr := runValidators(g.config.Validators, c, req); verr != nil {
				fmt.Fprintf(os.Stderr, "warning: dropped generated problem %q: %v\n", c.Question, verr)
				rejected++
				continue
			}
			seen[key] = true
			used = append(used, c.Question)
			specs = append(specs, toSpec(len(specs)+1, c))
			if len(specs) == req.Count {
				break
			}
		}
	}

	if len(specs) < req.Count {
		return nil, fmt.Errorf("%w: model produced %d valid of %d (%d rejected)",
			ErrNotEnoughProblems, len(specs), req.Count, rejected)
	}
	return specs, nil
}

func toSpec(n int, c *Candidate) queue.ProblemSpec {
	spec := queue.ProblemSpec{
		ID:       fmt.Sprintf("word-%d", n),
		Question: c.Question,
		Answer:   queue.Number(c.Answer),
	}
	for _, ch := range c.Choices {
		spec.Choices = append(spec.Choices, queue.Number(ch))
	}
	return spec
}
