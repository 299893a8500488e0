package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/blockmath/internal/ui/theme"
)

// MenuButtonWidth is the width of each button in a full-size menu.
const MenuButtonWidth = 22

// MenuItem is one entry of a Menu. Disabled items are drawn dimmed and
// cannot be selected.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of buttons. Arrow keys (or j/k) move the
// selection and wrap around, Enter runs the selected item, and the digit
// keys 1-9 run an item directly.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	return m
}

// move steps the selection by dir, skipping disabled items. It leaves the
// selection unchanged when no item is enabled.
func (m *Menu) move(dir int) {
	n := len(m.Items)
	for step := 1; step <= n; step++ {
		i := ((m.Selected+dir*step)%n + n) % n
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) || m.Items[i].Disabled || m.Items[i].Action == nil {
		return nil
	}
	return m.Items[i].Action()
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch k := kmsg.String(); k {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		return m, m.activate(m.Selected)
	default:
		if n, err := strconv.Atoi(k); err == nil && n >= 1 && n <= 9 {
			if i := n - 1; i < len(m.Items) && !m.Items[i].Disabled {
				m.Selected = i
				return m, m.activate(i)
			}
		}
	}
	return m, nil
}

// View draws the menu centered in width cw. Compact mode drops the button
// borders for short terminals.
func (m Menu) View(cw int, compact bool) string {
	lines := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		state := ButtonNormal
		switch {
		case item.Disabled:
			state = ButtonDisabled
		case i == m.Selected:
			state = ButtonSelected
		}
		if compact {
			lines = append(lines, compactItem(item.Label, state))
		} else {
			lines = append(lines, Button(item.Label, state, MenuButtonWidth))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func compactItem(label string, state ButtonState) string {
	switch state {
	case ButtonSelected:
		return lipgloss.NewStyle().
			Foreground(theme.BgDark).
			Background(theme.Gold).
			Bold(true).
			Render(" ▸ " + label + " ")
	case ButtonDisabled:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label)
	default:
		return lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
	}
}
