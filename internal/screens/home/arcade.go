package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/blockmath/internal/ui/theme"
)

const arcadeTitleBlock = `██████╗ ██╗      ██████╗  ██████╗██╗  ██╗
██╔══██╗██║     ██╔═══██╗██╔════╝██║ ██╔╝
██████╔╝██║     ██║   ██║██║     █████╔╝
██╔══██╗██║     ██║   ██║██║     ██╔═██╗
██████╔╝███████╗╚██████╔╝╚██████╗██║  ██╗
╚═════╝ ╚══════╝ ╚═════╝  ╚═════╝╚═╝  ╚═╝`

const arcadeTitleMath = `███╗   ███╗ █████╗ ████████╗██╗  ██╗
████╗ ████║██╔══██╗╚══██╔══╝██║  ██║
██╔████╔██║███████║   ██║   ███████║
██║╚██╔╝██║██╔══██║   ██║   ██╔══██║
██║ ╚═╝ ██║██║  ██║   ██║   ██║  ██║
╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝`

const arcadeTitleCompact = "B · L · O · C · K · M · A · T · H"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)
	if compact {
		return center.Render(lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).Render(arcadeTitleCompact))
	}
	block := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).Render(arcadeTitleBlock)
	math := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(arcadeTitleMath)
	return center.Render(block + "\n" + math)
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(st stats, cw int, compact bool) string {
	blockStyle := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	sessionStyle := lipgloss.NewStyle().Foreground(theme.Cyan).Bold(true)
	perfectStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s",
			blockStyle.Render(fmt.Sprintf("▣%d", st.blocks)),
			sessionStyle.Render(fmt.Sprintf("▶%d", st.sessions)),
			perfectStyle.Render(fmt.Sprintf("★%d", st.perfect)),
		)
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			blockStyle.Render(fmt.Sprintf("▣ %d BLOCKS", st.blocks)),
			sessionStyle.Render(fmt.Sprintf("▶ %d PLAYED", st.sessions)),
			perfectStyle.Render(fmt.Sprintf("★ %d PERFECT", st.perfect)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Cyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// renderUpdateNote renders a dim one-line update notification.
func renderUpdateNote(latestVersion string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("New version %s available. Run: blockmath update", latestVersion))
}
