package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/blockmath/internal/problemgen"
	"github.com/abhisek/blockmath/internal/queue"
	"github.com/abhisek/blockmath/internal/screens/play"
)

type staticGenerator struct{}

func (staticGenerator) Generate(context.Context, problemgen.Request) ([]queue.ProblemSpec, error) {
	return []queue.ProblemSpec{{ID: "p", Question: "2 + 2", Answer: queue.Number(4)}}, nil
}

func TestNewAppModel_StartsAtHome(t *testing.T) {
	m := newAppModel(Options{})
	if m.router.Depth() != 1 || m.router.Active().Title() != "Home" {
		t.Errorf("expected home at the bottom, got %q depth %d", m.router.Active().Title(), m.router.Depth())
	}
	if m.Init() == nil {
		t.Error("expected home Init command")
	}
}

func TestNewAppModel_PlayNow(t *testing.T) {
	m := newAppModel(Options{Play: play.Deps{Generator: staticGenerator{}}, PlayNow: true})
	if m.router.Depth() != 2 || m.router.Active().Title() != "Play" {
		t.Errorf("expected play on top, got %q depth %d", m.router.Active().Title(), m.router.Depth())
	}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := newAppModel(Options{})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestAppModel_ViewTooSmall(t *testing.T) {
	m := newAppModel(Options{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	v := updated.(AppModel).View()
	if v.Content == nil {
		t.Fatal("expected content")
	}
}

func TestAppModel_ViewShowsHeaderAndHints(t *testing.T) {
	m := newAppModel(Options{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	am := updated.(AppModel)
	content := am.View().Content
	s, ok := content.(interface{ String() string })
	if !ok {
		t.Skip("view content does not expose String")
	}
	out := s.String()
	for _, want := range []string{"BlockMath", "Navigate"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
