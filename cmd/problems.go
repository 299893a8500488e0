package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/abhisek/blockmath/internal/diagnosis"
	"github.com/abhisek/blockmath/internal/problemgen"
	"github.com/abhisek/blockmath/internal/queue"
	"github.com/abhisek/blockmath/internal/session"
	"github.com/spf13/cobra"
)

var problemsCmd = &cobra.Command{
	Use:   "problems",
	Short: "Print a generated problem set (no database)",
	Long: `Generate a problem set and print it.

With --quiz the set is played in the terminal under the normal mastery
rules. Nothing is saved: no database, no blocks, no history.
Useful for checking problem quality and testing mastery settings.`,
	RunE: runProblems,
}

func init() {
	addPlayFlags(problemsCmd)
	problemsCmd.Flags().Bool("json", false, "Print the set as JSON")
	problemsCmd.Flags().Bool("quiz", false, "Play the set in the terminal")
}

func runProblems(cmd *cobra.Command, args []string) error {
	req, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	provider := providerFromFlags(ctx, cmd, nil)
	gen := generatorFromFlags(cmd, provider)
	specs, err := gen.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("generate problems: %w", err)
	}

	if quiz, _ := cmd.Flags().GetBool("quiz"); quiz {
		mgr, err := managerFromFlags(cmd)
		if err != nil {
			return err
		}
		diag := diagnosis.NewService(provider)
		defer diag.Close()
		return runQuiz(ctx, specs, mgr, diag)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(specs)
	}

	for i, s := range specs {
		fmt.Printf("%2d. %-40s = %s\n", i+1, s.Question, s.Answer)
		if len(s.Choices) > 0 {
			opts := make([]string, len(s.Choices))
			for j, c := range s.Choices {
				opts[j] = fmt.Sprintf("%d) %s", j+1, c)
			}
			fmt.Printf("    %s\n", strings.Join(opts, "   "))
		}
	}
	return nil
}

// runQuiz plays specs on stdin/stdout until every problem is mastered or
// input ends.
func runQuiz(ctx context.Context, specs []queue.ProblemSpec, mgr *queue.Manager, diag *diagnosis.Service) error {
	sess, err := session.New(specs, session.WithManager(mgr), session.WithDiagnosis(diag))
	if err != nil {
		return err
	}
	scanner := bufio.NewScanner(os.Stdin)

	for !sess.Complete() {
		p := sess.Current()
		prog := sess.Progress()
		fmt.Printf("── %d/%d mastered ──\n", prog.Mastered, prog.Total)
		fmt.Println(p.Question)
		for j, c := range p.Choices {
			fmt.Printf("  %d) %s\n", j+1, c)
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			return nil
		}
		answer, err := quizAnswer(scanner.Text(), p)
		if err != nil {
			fmt.Printf("(%v)\n\n", err)
			continue
		}

		out, err := sess.Submit(ctx, answer)
		if err != nil {
			return err
		}
		if out.Correct {
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Not quite.\033[0m Answer: %s\n", p.Answer)
			if out.Diagnosis != nil && out.Diagnosis.Classified() {
				fmt.Printf("  (%s)\n", out.Diagnosis.Label())
			}
		}
		for _, a := range out.Awards {
			fmt.Printf("  + %s block (%s): %s\n", a.Kind, a.Rarity, a.Reason)
		}
		fmt.Println()
	}

	sum := sess.Summary()
	fmt.Printf("── Done: %d/%d correct (%.0f%%), score %d ──\n",
		sum.TotalCorrect, sum.TotalAttempts, sum.Accuracy*100, sum.Score)
	if sum.Perfect {
		fmt.Println("Perfect session!")
		return nil
	}
	fmt.Println("Practice these:")
	diagnoses := sess.Diagnoses()
	for _, m := range sum.Mistakes {
		line := fmt.Sprintf("  %s = %s (missed %d×)", m.Question, m.CorrectAnswer, m.MistakeCount)
		if label := diagnoses[m.ProblemID].Label(); label != "" {
			line += "  " + label
		}
		fmt.Println(line)
	}
	return nil
}

// quizAnswer reads a choice number when the problem has choices, and a
// typed answer otherwise.
func quizAnswer(text string, p *queue.ProblemSpec) (queue.Answer, error) {
	if len(p.Choices) > 0 {
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || n < 1 || n > len(p.Choices) {
			return queue.Answer{}, fmt.Errorf("pick 1-%d", len(p.Choices))
		}
		return p.Choices[n-1], nil
	}
	return problemgen.ParseInput(text, p.Answer.Kind())
}
