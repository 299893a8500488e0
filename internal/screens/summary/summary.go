// Package summary shows the end-of-session report.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/blockmath/internal/blocks"
	"github.com/abhisek/blockmath/internal/diagnosis"
	"github.com/abhisek/blockmath/internal/queue"
	"github.com/abhisek/blockmath/internal/router"
	"github.com/abhisek/blockmath/internal/screen"
	"github.com/abhisek/blockmath/internal/ui/components"
	"github.com/abhisek/blockmath/internal/ui/layout"
	"github.com/abhisek/blockmath/internal/ui/theme"
)

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary   *queue.SessionSummary
	awards    []blocks.Award
	diagnoses map[string]diagnosis.Result
	playAgain func() screen.Screen
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// Option configures a SummaryScreen.
type Option func(*SummaryScreen)

// WithPlayAgain enables the play-again key. f builds the next play screen.
func WithPlayAgain(f func() screen.Screen) Option {
	return func(s *SummaryScreen) { s.playAgain = f }
}

// WithDiagnoses labels each mistake with its error category, keyed by
// problem ID.
func WithDiagnoses(d map[string]diagnosis.Result) Option {
	return func(s *SummaryScreen) { s.diagnoses = d }
}

// New creates a new SummaryScreen.
func New(summary *queue.SessionSummary, awards []blocks.Award, opts ...Option) *SummaryScreen {
	s := &SummaryScreen{summary: summary, awards: awards}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Home"}}
	if s.playAgain != nil {
		hints = append(hints, layout.KeyHint{Key: "P", Description: "Play again"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "p":
			if s.playAgain != nil {
				next := s.playAgain()
				return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))

	var b strings.Builder
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Session complete!")))
	b.WriteString("\n\n")

	if sum.Perfect {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).
			Render("★ PERFECT! No mistakes at all! ★")))
		b.WriteString("\n\n")
	}

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	stats := fmt.Sprintf("Problems: %d    Answers: %d    Correct: %d    Accuracy: %.0f%%    Time: %d:%02d",
		sum.ProblemCount, sum.TotalAttempts, sum.TotalCorrect, sum.Accuracy*100, mins, secs)
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Render(stats)))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Gold).
		Render(fmt.Sprintf("Score: %d    Blocks: %d", sum.Score, sum.BlocksAwarded))))
	b.WriteString("\n\n")

	if len(sum.Mistakes) > 0 {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Practice these")))
		b.WriteString("\n")
		b.WriteString(center(divider))
		b.WriteString("\n")
		var lines []string
		for _, m := range sum.Mistakes {
			lines = append(lines, components.MistakeLines(mistakeView(m, s.diagnoses[m.ProblemID].Label())))
		}
		b.WriteString(center(lipgloss.NewStyle().Align(lipgloss.Left).Render(strings.Join(lines, "\n"))))
		b.WriteString("\n\n")
	}

	if len(s.awards) > 0 {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Blocks earned")))
		b.WriteString("\n")
		b.WriteString(center(divider))
		b.WriteString("\n")
		for _, a := range s.awards {
			line := fmt.Sprintf("%s %s %s  %s", a.Kind.Icon(), a.Rarity.DisplayName(), a.Kind.DisplayName(), a.Reason)
			b.WriteString(center(lipgloss.NewStyle().Foreground(theme.RarityColor(string(a.Rarity))).Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func mistakeView(m queue.MistakeReport, label string) components.Mistake {
	var tries []string
	for _, a := range m.History {
		if !a.Correct {
			tries = append(tries, a.Answer.String())
		}
	}
	return components.Mistake{
		Question:      m.Question,
		CorrectAnswer: m.CorrectAnswer.String(),
		MistakeCount:  m.MistakeCount,
		Tries:         tries,
		Diagnosis:     label,
	}
}
