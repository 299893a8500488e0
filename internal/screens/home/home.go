package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/blockmath/internal/blocks"
	"github.com/abhisek/blockmath/internal/router"
	"github.com/abhisek/blockmath/internal/screen"
	"github.com/abhisek/blockmath/internal/screens/history"
	"github.com/abhisek/blockmath/internal/screens/inventory"
	"github.com/abhisek/blockmath/internal/screens/play"
	"github.com/abhisek/blockmath/internal/store"
	"github.com/abhisek/blockmath/internal/ui/components"
	"github.com/abhisek/blockmath/internal/ui/layout"
)

// UpdateCheck reports the latest release version when it is newer than
// the running one.
type UpdateCheck func(ctx context.Context) (latest string, ok bool)

type stats struct {
	blocks   int
	sessions int
	perfect  int
}

type statsLoadedMsg struct {
	stats stats
}

type updateAvailableMsg struct {
	version string
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps        play.Deps
	menu        components.Menu
	stats       stats
	updateCheck UpdateCheck
	newVersion  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// Option configures the home screen.
type Option func(*HomeScreen)

// WithUpdateCheck shows a note when check finds a newer release.
func WithUpdateCheck(check UpdateCheck) Option {
	return func(h *HomeScreen) { h.updateCheck = check }
}

// New creates a new HomeScreen. Blocks earned are kept in memory when
// deps has no block service.
func New(deps play.Deps, opts ...Option) *HomeScreen {
	if deps.Blocks == nil {
		deps.Blocks = blocks.NewService(nil)
	}

	items := []components.MenuItem{
		{Label: "PLAY", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: play.New(deps)} }
		}},
		{Label: "HISTORY", Disabled: deps.Sessions == nil, Action: func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: history.New(deps.Sessions)} }
		}},
		{Label: "BLOCKS", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: inventory.New(deps.Blocks)} }
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h := &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{h.loadStats()}
	if h.updateCheck != nil {
		check := h.updateCheck
		cmds = append(cmds, func() tea.Msg {
			if v, ok := check(context.Background()); ok {
				return updateAvailableMsg{version: v}
			}
			return nil
		})
	}
	return tea.Batch(cmds...)
}

// Resume reloads the stats after a session or another screen closes.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	svc, repo := h.deps.Blocks, h.deps.Sessions
	return func() tea.Msg {
		ctx := context.Background()
		var st stats
		if inv, err := svc.Inventory(ctx); err == nil {
			st.blocks = inv.Total()
		}
		if repo != nil {
			if sessions, err := repo.ListSessions(ctx, store.QueryOpts{}); err == nil {
				st.sessions = len(sessions)
				for _, s := range sessions {
					if s.Perfect {
						st.perfect++
					}
				}
			}
		}
		return statsLoadedMsg{stats: st}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		h.stats = msg.stats
		return h, nil
	case updateAvailableMsg:
		h.newVersion = msg.version
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer.
	termHeight := height + layout.HeaderHeight + layout.FooterHeight
	compact := termHeight < 40 || layout.IsCompactWidth(width)
	tiny := layout.IsCompactHeight(termHeight)

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	sections = append(sections, h.menu.View(cw, tiny))
	if h.newVersion != "" {
		sections = append(sections, renderUpdateNote(h.newVersion, cw))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter/1-4", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
