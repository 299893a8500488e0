package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/blockmath/internal/ui/theme"
)

const (
	maxContentWidth = 60
	minContentWidth = 20
	// frameInset is the frame border plus its inner padding.
	frameInset = 6
)

// ContentWidth is the width every boxed section inside a Frame is
// rendered at, so their borders line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-frameInset, minContentWidth), maxContentWidth)
}

// Frame draws the thick outer border of a full screen and centers content
// inside it.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card boxes content at content width cw.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// ButtonState selects how a Button is drawn.
type ButtonState int

const (
	ButtonNormal ButtonState = iota
	ButtonSelected
	ButtonDisabled
)

// Button renders a bordered, fixed-width button.
func Button(label string, state ButtonState, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	switch state {
	case ButtonSelected:
		return style.Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Gold).
			BorderForeground(theme.Gold).
			Render("▸ " + label)
	case ButtonDisabled:
		return style.Foreground(theme.TextDim).Render(label)
	default:
		return style.Foreground(theme.Text).Render(label)
	}
}
