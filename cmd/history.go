package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/blockmath/internal/diagnosis"
	"github.com/abhisek/blockmath/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		showMistakes, _ := cmd.Flags().GetBool("mistakes")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.SessionRepo()
		sessions, err := repo.ListSessions(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions played yet.")
			return nil
		}

		fmt.Printf("%-19s  %8s  %8s  %8s  %6s  %6s  %s\n",
			"Completed", "Problems", "Attempts", "Accuracy", "Score", "Blocks", "")
		fmt.Println(strings.Repeat("─", 80))

		for _, sess := range sessions {
			mark := ""
			if sess.Perfect {
				mark = "★ perfect"
			}
			fmt.Printf("%-19s  %8d  %8d  %7.0f%%  %6d  %6d  %s\n",
				sess.CompletedAt.Local().Format("2006-01-02 15:04:05"),
				sess.ProblemCount,
				sess.TotalAttempts,
				sess.Accuracy*100,
				sess.Score,
				sess.BlocksAwarded,
				mark,
			)
			if !showMistakes || sess.Perfect {
				continue
			}
			mistakes, err := repo.Mistakes(ctx, sess.ID)
			if err != nil {
				return fmt.Errorf("load mistakes: %w", err)
			}
			for _, m := range mistakes {
				answers := make([]string, 0, len(m.Attempts))
				for _, a := range m.Attempts {
					if !a.Correct {
						answers = append(answers, a.Answer)
					}
				}
				line := fmt.Sprintf("    %s = %s  (missed %d×: %s)",
					m.Question, m.CorrectAnswer, m.MistakeCount, strings.Join(answers, ", "))
				if label := diagnosis.Label(diagnosis.Category(m.Category), m.Misconception); label != "" {
					line += "  " + label
				}
				fmt.Println(line)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
	historyCmd.Flags().BoolP("mistakes", "m", false, "List the missed problems of each session")
}
