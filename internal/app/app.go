// Package app hosts the terminal UI: a stack of screens inside a common
// header and footer.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/blockmath/internal/router"
	"github.com/abhisek/blockmath/internal/screen"
	"github.com/abhisek/blockmath/internal/screens/home"
	"github.com/abhisek/blockmath/internal/screens/play"
	"github.com/abhisek/blockmath/internal/ui/layout"
)

// Options wires the UI to the rest of the program.
type Options struct {
	Play        play.Deps
	UpdateCheck home.UpdateCheck

	// PlayNow skips the home screen and starts a session.
	PlayNow bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	init   tea.Cmd
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen at the bottom
// of the stack.
func newAppModel(opts Options) AppModel {
	var homeOpts []home.Option
	if opts.UpdateCheck != nil {
		homeOpts = append(homeOpts, home.WithUpdateCheck(opts.UpdateCheck))
	}
	homeScreen := home.New(opts.Play, homeOpts...)
	r := router.New(homeScreen)
	init := homeScreen.Init()
	if opts.PlayNow {
		init = tea.Batch(init, r.Push(play.New(opts.Play)))
	}
	return AppModel{router: r, init: init}
}

func (m AppModel) Init() tea.Cmd {
	return m.init
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	var title, status string
	footerHints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
		if kp, ok := active.(screen.KeyHintProvider); ok {
			footerHints = kp.KeyHints()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
