package cmd

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/abhisek/blockmath/internal/llm"
	"github.com/abhisek/blockmath/internal/store"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// llmPurposes are the call purposes the game records, with the label
// shown by `llm stats`.
var llmPurposes = []struct {
	name  string
	label string
}{
	{llm.PurposeProblemSet, "problem sets"},
	{llm.PurposeDiagnosis, "mistake diagnosis"},
	{llm.PurposeHealth, "provider checks"},
}

func purposeLabel(purpose string) string {
	for _, p := range llmPurposes {
		if p.name == purpose {
			return p.label
		}
	}
	return purpose
}

func validatePurpose(purpose string) error {
	if purpose == "" {
		return nil
	}
	names := make([]string, len(llmPurposes))
	for i, p := range llmPurposes {
		names[i] = p.name
	}
	if !slices.Contains(names, purpose) {
		return fmt.Errorf("unknown purpose %q (want one of %s)", purpose, strings.Join(names, ", "))
	}
	return nil
}

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the LLM calls made for problem sets and mistake diagnosis",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		if err := validatePurpose(purpose); err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		calls, err := s.EventRepo().QueryLLMCalls(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query LLM calls: %w", err)
		}
		return writeCalls(cmd.OutOrStdout(), calls)
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the request and response of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		call, err := s.EventRepo().GetLLMCall(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get LLM call: %w", err)
		}
		if call == nil {
			return fmt.Errorf("LLM call %d not found", id)
		}
		writeCall(cmd.OutOrStdout(), call)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per purpose and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		return writeUsage(cmd.OutOrStdout(), byPurpose, byModel)
	},
}

func writeCalls(out io.Writer, calls []store.LLMCallRecord) error {
	if len(calls) == 0 {
		_, err := fmt.Fprintln(out, "No LLM calls recorded.")
		return err
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTime\tPurpose\tModel\tTokens\tMs\tOK")
	for _, c := range calls {
		ok := "✓"
		if !c.Success {
			ok = "✗"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s/%s\t%d\t%s\n",
			c.ID, c.Timestamp.Local().Format("2006-01-02 15:04"), c.Purpose, truncate(c.Model, 28),
			humanize.Comma(int64(c.InputTokens)), humanize.Comma(int64(c.OutputTokens)), c.LatencyMs, ok)
	}
	return w.Flush()
}

func writeCall(out io.Writer, c *store.LLMCallRecord) {
	fmt.Fprintf(out, "Call %d, %s (%s)\n", c.ID, c.Purpose, purposeLabel(c.Purpose))
	fmt.Fprintf(out, "  %s via %s at %s\n", c.Model, c.Provider, c.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "  %s in, %s out, %dms\n",
		humanize.Comma(int64(c.InputTokens)), humanize.Comma(int64(c.OutputTokens)), c.LatencyMs)
	if !c.Success {
		fmt.Fprintf(out, "  failed: %s\n", c.ErrorMessage)
	}

	for _, part := range []struct{ title, body string }{
		{"Request", c.RequestBody},
		{"Response", c.ResponseBody},
	} {
		fmt.Fprintf(out, "\n%s\n%s\n", part.title, strings.Repeat("─", len(part.title)))
		if part.body == "" {
			fmt.Fprintln(out, "(not captured)")
			continue
		}
		fmt.Fprintln(out, part.body)
	}
}

func writeUsage(out io.Writer, byPurpose, byModel []store.LLMUsage) error {
	if len(byPurpose) == 0 {
		_, err := fmt.Fprintln(out, "No LLM usage recorded yet.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Purpose\tCalls\tInput\tOutput\tAvg ms\t")
	var total store.LLMUsage
	for _, u := range byPurpose {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d\t\n", purposeLabel(u.Group), u.Calls,
			humanize.Comma(int64(u.InputTokens)), humanize.Comma(int64(u.OutputTokens)), u.AvgLatencyMs)
		total.Calls += u.Calls
		total.InputTokens += u.InputTokens
		total.OutputTokens += u.OutputTokens
	}
	fmt.Fprintf(w, "total\t%d\t%s\t%s\t\t\n", total.Calls,
		humanize.Comma(int64(total.InputTokens)), humanize.Comma(int64(total.OutputTokens)))
	if err := w.Flush(); err != nil {
		return err
	}

	var (
		cost    float64
		unknown []string
	)
	for _, u := range byModel {
		price := llm.LookupCost(u.Group)
		if price == nil {
			unknown = append(unknown, u.Group)
			continue
		}
		cost += price.Cost(u.InputTokens, u.OutputTokens)
	}
	fmt.Fprintf(out, "\nEstimated cost: %s\n", formatCost(cost))
	if len(unknown) > 0 {
		fmt.Fprintf(out, "No pricing for: %s\n", strings.Join(unknown, ", "))
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show calls for one purpose (problem-set, error-diagnosis, health-check)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
