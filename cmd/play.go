package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/blockmath/internal/llm"
	"github.com/abhisek/blockmath/internal/problemgen"
	"github.com/abhisek/blockmath/internal/queue"
	"github.com/abhisek/blockmath/internal/store"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session right away",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, true)
	},
}

func init() {
	addPlayFlags(playCmd)
}

// addPlayFlags registers the flags that shape a problem set and the
// mastery rules.
func addPlayFlags(cmd *cobra.Command) {
	d := problemgen.DefaultRequest()
	q := queue.DefaultConfig()

	f := cmd.Flags()
	f.String("ops", joinOperations(d.Operations), "Operations to practice: add, sub, mul, div (comma separated)")
	f.Int("min", d.Min, "Smallest operand")
	f.Int("max", d.Max, "Largest operand")
	f.Int("count", d.Count, "Number of problems in the set")
	f.Int("choices", d.Choices, "Answer choices per problem (0 to type answers)")
	f.Uint64("seed", 0, "Random seed for arithmetic problems (0 picks one)")
	f.Bool("ai", false, "Ask the configured LLM for word problems")
	f.Int("fresh", q.FreshThreshold, "Correct answers in a row to master a problem never missed")
	f.Int("missed", q.MissedThreshold, "Correct answers in a row to master a problem after a miss")
}

func joinOperations(ops []problemgen.Operation) string {
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = string(op)
	}
	return strings.Join(names, ",")
}

// requestFromFlags builds and validates a problem request.
func requestFromFlags(cmd *cobra.Command) (problemgen.Request, error) {
	f := cmd.Flags()
	opsVal, _ := f.GetString("ops")
	ops, err := problemgen.ParseOperations(opsVal)
	if err != nil {
		return problemgen.Request{}, err
	}

	req := problemgen.Request{Operations: ops}
	req.Min, _ = f.GetInt("min")
	req.Max, _ = f.GetInt("max")
	req.Count, _ = f.GetInt("count")
	req.Choices, _ = f.GetInt("choices")
	if err := req.Validate(); err != nil {
		return problemgen.Request{}, err
	}
	return req, nil
}

// managerFromFlags builds the scheduler from the mastery flags.
func managerFromFlags(cmd *cobra.Command) (*queue.Manager, error) {
	cfg := queue.DefaultConfig()
	cfg.FreshThreshold, _ = cmd.Flags().GetInt("fresh")
	cfg.MissedThreshold, _ = cmd.Flags().GetInt("missed")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return queue.NewManager(queue.WithConfig(cfg))
}

// providerFromFlags returns the LLM provider when --ai is set, or nil when
// it is not or no provider is configured. A nil repo skips LLM call
// logging.
func providerFromFlags(ctx context.Context, cmd *cobra.Command, repo store.EventRepo) llm.Provider {
	if ai, _ := cmd.Flags().GetBool("ai"); !ai {
		return nil
	}
	provider, err := llm.NewProviderFromEnv(ctx, repo)
	switch {
	case err != nil:
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
	case provider == nil:
		fmt.Fprintln(os.Stderr, "LLM provider not configured: set BLOCKMATH_LLM_PROVIDER or an API key.")
	default:
		return provider
	}
	fmt.Fprintln(os.Stderr, "Using arithmetic problems instead.")
	return nil
}

// generatorFromFlags returns the arithmetic generator, wrapped behind the
// LLM generator when provider is set.
func generatorFromFlags(cmd *cobra.Command, provider llm.Provider) problemgen.Generator {
	seed, _ := cmd.Flags().GetUint64("seed")
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	arith := problemgen.NewArithmeticGenerator(seed)
	if provider == nil {
		return arith
	}
	return &problemgen.FallbackGenerator{
		Primary:   problemgen.NewLLMGenerator(provider, problemgen.DefaultConfig()),
		Secondary: arith,
	}
}
