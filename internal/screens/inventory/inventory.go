// Package inventory shows every structure block the learner has earned.
package inventory

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/blockmath/internal/blocks"
	"github.com/abhisek/blockmath/internal/router"
	"github.com/abhisek/blockmath/internal/screen"
	"github.com/abhisek/blockmath/internal/ui/layout"
	"github.com/abhisek/blockmath/internal/ui/theme"
)

type blocksLoadedMsg struct {
	Inventory blocks.Inventory
	Awards    []blocks.Award
	Err       error
}

// InventoryScreen displays block counts per kind and the blocks of the
// selected kind.
type InventoryScreen struct {
	svc          *blocks.Service
	inv          blocks.Inventory
	awards       []blocks.Award
	selectedKind int // index into blocks.AllKinds
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*InventoryScreen)(nil)
var _ screen.KeyHintProvider = (*InventoryScreen)(nil)

// New creates a new InventoryScreen.
func New(svc *blocks.Service) *InventoryScreen {
	return &InventoryScreen{svc: svc}
}

func (s *InventoryScreen) Init() tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		ctx := context.Background()
		inv, err := svc.Inventory(ctx)
		if err != nil {
			return blocksLoadedMsg{Err: err}
		}
		awards, err := svc.Recent(ctx, 0)
		return blocksLoadedMsg{Inventory: inv, Awards: awards, Err: err}
	}
}

func (s *InventoryScreen) Title() string {
	return "Blocks"
}

func (s *InventoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch kind"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *InventoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case blocksLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.inv = msg.Inventory
			s.awards = msg.Awards
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		kinds := blocks.AllKinds()
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "right", "l":
			s.selectedKind = (s.selectedKind + 1) % len(kinds)
			s.scrollOffset = 0
		case "shift+tab", "left", "h":
			s.selectedKind = (s.selectedKind - 1 + len(kinds)) % len(kinds)
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.filtered())-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

func (s *InventoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading blocks...")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Gold).Bold(true).
		Render(fmt.Sprintf("\nTotal: %d blocks\n", s.inv.Total())))
	b.WriteString("\n")

	var tabs []string
	for i, k := range blocks.AllKinds() {
		label := fmt.Sprintf("%s %s (%d)", k.Icon(), k.DisplayName(), s.inv[k])
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i == s.selectedKind {
			style = lipgloss.NewStyle().Foreground(theme.BlockColor(string(k))).Bold(true)
		}
		tabs = append(tabs, style.Render(label))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "   ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	filtered := s.filtered()
	if len(filtered) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No blocks of this kind yet"))
		return b.String()
	}

	maxVisible := max(height-10, 3)
	start := s.scrollOffset
	end := min(start+maxVisible, len(filtered))

	for _, a := range filtered[start:end] {
		line := fmt.Sprintf("  %-10s %-36s %s", a.Rarity.DisplayName(), a.Reason, a.AwardedAt.Local().Format("Jan 02, 2006"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.RarityColor(string(a.Rarity))).Render(line)))
		b.WriteString("\n")
	}

	if end < len(filtered) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(filtered)-end)))
	}
	return b.String()
}

func (s *InventoryScreen) filtered() []blocks.Award {
	kind := blocks.AllKinds()[s.selectedKind]
	var out []blocks.Award
	for _, a := range s.awards {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}
