package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/blockmath/internal/ui/theme"
)

// MultiChoice is a numbered option picker. Options are chosen with the
// arrows and Enter, or directly with keys 1 to 9.
type MultiChoice struct {
	Options  []string
	Selected int
}

// NewMultiChoice creates a picker with the first option selected.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options}
}

// Update handles navigation. It returns the index of the picked option,
// or -1 when nothing was picked.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, int) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Options) == 0 {
		return m, -1
	}

	key := kmsg.String()
	switch key {
	case "up", "k", "left":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j", "right":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		return m, m.Selected
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Options) {
				m.Selected = i
				return m, i
			}
		}
	}
	return m, -1
}

// View renders the options, one per line.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		line := fmt.Sprintf("  %d)  %s", i+1, opt)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == m.Selected {
			line = fmt.Sprintf("▸ %d)  %s", i+1, opt)
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line))
		if i < len(m.Options)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
