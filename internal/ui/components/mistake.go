package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/blockmath/internal/ui/theme"
)

// Mistake is the display form of a missed problem.
type Mistake struct {
	Question      string
	CorrectAnswer string
	MistakeCount  int
	Tries         []string // wrong answers, in order
	Diagnosis     string   // error category label, may be empty
}

// MistakeLines renders a missed problem as two lines: the question with
// its answer, then the wrong tries and the diagnosis.
func MistakeLines(m Mistake) string {
	times := "time"
	if m.MistakeCount != 1 {
		times = "times"
	}
	head := lipgloss.NewStyle().Foreground(theme.Text).Render(m.Question) +
		lipgloss.NewStyle().Foreground(theme.Success).Render(" = "+m.CorrectAnswer)
	tail := fmt.Sprintf("missed %d %s", m.MistakeCount, times)
	if len(m.Tries) > 0 {
		tail += ": " + strings.Join(m.Tries, ", ")
	}
	line := lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + tail)
	if m.Diagnosis != "" {
		line += lipgloss.NewStyle().Foreground(theme.Accent).Render("  (" + m.Diagnosis + ")")
	}
	return head + "\n" + line
}
