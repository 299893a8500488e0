package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/blockmath/internal/diagnosis"
	"github.com/abhisek/blockmath/internal/router"
	"github.com/abhisek/blockmath/internal/screen"
	"github.com/abhisek/blockmath/internal/store"
	"github.com/abhisek/blockmath/internal/ui/components"
	"github.com/abhisek/blockmath/internal/ui/layout"
	"github.com/abhisek/blockmath/internal/ui/theme"
)

// historyLimit caps how many past sessions are listed.
const historyLimit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionRecord
	Err      error
}

type mistakesLoadedMsg struct {
	SessionID string
	Mistakes  []store.MistakeRecord
	Err       error
}

// HistoryScreen lists past sessions. Expanding a session shows its mistakes.
type HistoryScreen struct {
	repo     store.SessionRepo
	sessions []store.SessionRecord
	mistakes map[string][]store.MistakeRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.SessionRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		mistakes: make(map[string][]store.MistakeRecord),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		sessions, err := repo.ListSessions(context.Background(), store.QueryOpts{Limit: historyLimit})
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) loadMistakes(id string) tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		mistakes, err := repo.Mistakes(context.Background(), id)
		return mistakesLoadedMsg{SessionID: id, Mistakes: mistakes, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Mistakes"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case mistakesLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.mistakes[msg.SessionID] = msg.Mistakes
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if len(s.sessions) == 0 {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			rec := s.sessions[s.selected]
			if _, ok := s.mistakes[rec.ID]; s.expanded[s.selected] && !ok && !rec.Perfect {
				return s, s.loadMistakes(rec.ID)
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Go build something!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		mins := int(rec.CompletedAt.Sub(rec.StartedAt).Minutes())
		secs := int(rec.CompletedAt.Sub(rec.StartedAt).Seconds()) % 60

		perfect := ""
		if rec.Perfect {
			perfect = "  ★ perfect"
		}
		line := fmt.Sprintf("%s%s  %d:%02d  %d problems  %.0f%%  %d pts  %d blocks%s",
			prefix, rec.StartedAt.Local().Format("Jan 02, 2006 15:04"), mins, secs,
			rec.ProblemCount, rec.Accuracy*100, rec.Score, rec.BlocksAwarded, perfect)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderMistakes(rec, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderMistakes(rec store.SessionRecord, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if rec.Perfect {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    No mistakes this session")) + "\n"
	}
	mistakes, ok := s.mistakes[rec.ID]
	if !ok {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    Loading...")) + "\n"
	}

	var lines []string
	for _, m := range mistakes {
		var tries []string
		for _, a := range m.Attempts {
			if !a.Correct {
				tries = append(tries, a.Answer)
			}
		}
		lines = append(lines, components.MistakeLines(components.Mistake{
			Question:      m.Question,
			CorrectAnswer: m.CorrectAnswer,
			MistakeCount:  m.MistakeCount,
			Tries:         tries,
			Diagnosis:     diagnosis.Label(diagnosis.Category(m.Category), m.Misconception),
		}))
	}
	block := lipgloss.NewStyle().PaddingLeft(4).Render(strings.Join(lines, "\n"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block) + "\n"
}
