package inventory

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/blockmath/internal/blocks"
	"github.com/abhisek/blockmath/internal/router"
)

func testService() *blocks.Service {
	svc := blocks.NewService(nil)
	ctx := context.Background()
	svc.AwardMastered(ctx, "s", "p1", "2 + 2", 0)
	svc.AwardMastered(ctx, "s", "p2", "7 + 5", 3)
	svc.AwardCompletion(ctx, "s", 0.8)
	return svc
}

func load(s *InventoryScreen) {
	s.Update(s.Init()())
}

func TestInventory_Counts(t *testing.T) {
	s := New(testService())
	load(s)

	view := s.View(120, 30)
	for _, want := range []string{"Total: 3 blocks", "Stone (1)", "Wood (1)", "Gold (1)", "Dirt (0)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if !strings.Contains(view, "No blocks of this kind yet") {
		t.Error("dirt tab should be empty")
	}
}

func TestInventory_TabCyclesKinds(t *testing.T) {
	s := New(testService())
	load(s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if !strings.Contains(s.View(120, 30), "Recovered 7 + 5") {
		t.Error("wood tab should list the recovered block")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if got := blocks.AllKinds()[s.selectedKind]; got != blocks.KindGold {
		t.Errorf("selected kind = %s, want gold after wrapping", got)
	}
}

func TestInventory_EscPops(t *testing.T) {
	s := New(testService())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
