package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/blockmath/internal/blocks"
	"github.com/abhisek/blockmath/internal/ui/components"
	"github.com/abhisek/blockmath/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, height, s.errMsg)
	case s.sess == nil:
		return renderLoading(width, height)
	case s.confirmQuit:
		return renderQuitConfirm(width, height)
	case s.feedback != nil:
		return s.renderFeedback(width, height)
	}
	return s.renderQuestion(width, height)
}

func centered(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}

func (s *PlayScreen) renderInfoLine(width int) string {
	st := s.sess.State()
	p := s.sess.Progress()

	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Left in queue: %d", st.Remaining()))

	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d/%d  %s %d",
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			p.Mastered, p.Total,
			lipgloss.NewStyle().Foreground(theme.Gold).Render("★"),
			st.Score,
		))

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

func (s *PlayScreen) renderQuestion(width, height int) string {
	cur := s.sess.Current()
	if cur == nil {
		return renderLoading(width, height)
	}
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	p := s.sess.Progress()
	bar := components.NewProgressBar("Mastered", p.Mastered, p.Total, cw)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.Card(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(cur.Question), cw)))
	b.WriteString("\n\n")

	if s.choiceMode() {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))
	} else {
		b.WriteString(centered(width, lipgloss.NewStyle(), "Answer: "+s.input.View()))
	}

	if s.hint != "" {
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.Hint, s.hint))
	}
	return b.String()
}

func (s *PlayScreen) renderFeedback(width, height int) string {
	fb := s.feedback

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n\n\n")

	if fb.correct {
		b.WriteString(centered(width, theme.Correct, "Correct!"))
		if fb.points > 0 {
			b.WriteString("\n")
			b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Gold),
				fmt.Sprintf("+%d points", fb.points)))
		}
	} else {
		b.WriteString(centered(width, theme.Incorrect, "Not quite"))
		b.WriteString("\n")
		b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.TextDim),
			fmt.Sprintf("You said %s. The answer was %s.", fb.given, fb.want)))
		b.WriteString("\n")
		if fb.reason != "" {
			b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Accent), fb.reason))
			b.WriteString("\n")
		}
		b.WriteString(centered(width, theme.Hint, "It will come back soon, so you can try again."))
	}
	b.WriteString("\n\n")

	if fb.mastered != "" {
		b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
			fmt.Sprintf("Mastered: %s", fb.mastered)))
		b.WriteString("\n")
	}
	for _, a := range fb.awards {
		b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.BlockColor(string(a.Kind))),
			awardLine(a)))
		b.WriteString("\n")
	}

	if fb.summary != nil {
		b.WriteString("\n")
		b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Gold).Bold(true),
			"Every problem mastered! Press any key for your summary."))
	}
	return b.String()
}

func awardLine(a blocks.Award) string {
	return fmt.Sprintf("%s +1 %s %s block  %s", a.Kind.Icon(), a.Rarity.DisplayName(), a.Kind.DisplayName(), a.Reason)
}

func renderLoading(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Building your problems..."))
}

func renderError(width, height int, msg string) string {
	body := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Something went wrong") +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Width(min(width-8, 70)).Render(msg)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func renderQuitConfirm(width, height int) string {
	body := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Leave this session?") +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Progress on unmastered problems will be lost. (y/n)")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.Card(body, components.ContentWidth(width)))
}
