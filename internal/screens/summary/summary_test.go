package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/blockmath/internal/blocks"
	"github.com/abhisek/blockmath/internal/diagnosis"
	"github.com/abhisek/blockmath/internal/queue"
	"github.com/abhisek/blockmath/internal/router"
	"github.com/abhisek/blockmath/internal/screen"
)

func testSummary() *queue.SessionSummary {
	return &queue.SessionSummary{
		Mistakes: []queue.MistakeReport{
			{
				ProblemID:     "add-7-5",
				Question:      "7 + 5",
				CorrectAnswer: queue.Number(12),
				MistakeCount:  2,
				History: []queue.Attempt{
					{Answer: queue.Number(11), Correct: false},
					{Answer: queue.Number(13), Correct: false},
					{Answer: queue.Number(12), Correct: true},
				},
			},
		},
		ProblemCount:  3,
		TotalAttempts: 12,
		TotalCorrect:  10,
		Accuracy:      10.0 / 12.0,
		Duration:      4 * time.Minute,
		Score:         100,
		BlocksAwarded: 4,
	}
}

func testAwards() []blocks.Award {
	return []blocks.Award{
		{Kind: blocks.KindWood, Rarity: blocks.RarityRare, Reason: "Recovered 7 + 5"},
		{Kind: blocks.KindGold, Rarity: blocks.RarityRare, Reason: "Session complete (83% accuracy)"},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary(), nil)
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_ShowsMistakes(t *testing.T) {
	view := New(testSummary(), testAwards()).View(100, 30)
	for _, want := range []string{"7 + 5", "= 12", "missed 2 times: 11, 13", "Recovered 7 + 5", "Score: 100"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "PERFECT") {
		t.Error("imperfect session should not show the perfect banner")
	}
}

func TestSummaryScreen_ShowsDiagnosis(t *testing.T) {
	if view := New(testSummary(), nil).View(100, 30); strings.Contains(view, "Off by one") {
		t.Error("label shown without diagnoses")
	}

	d := map[string]diagnosis.Result{
		"add-7-5": {Category: diagnosis.CategoryMisconception, MisconceptionID: diagnosis.MisconceptionOffByOne},
	}
	view := New(testSummary(), nil, WithDiagnoses(d)).View(100, 30)
	if !strings.Contains(view, "(Off by one)") {
		t.Errorf("view missing diagnosis label:\n%s", view)
	}
}

func TestSummaryScreen_Perfect(t *testing.T) {
	sum := &queue.SessionSummary{Perfect: true, ProblemCount: 2, TotalAttempts: 4, TotalCorrect: 4, Accuracy: 1}
	view := New(sum, nil).View(100, 30)
	if !strings.Contains(view, "PERFECT") {
		t.Error("expected perfect banner")
	}
	if strings.Contains(view, "Practice these") {
		t.Error("perfect session should list no mistakes")
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: tea.KeyEscape}} {
		_, cmd := New(testSummary(), nil).Update(key)
		if cmd == nil {
			t.Fatalf("expected a command on %v", key)
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Errorf("expected PopScreenMsg on %v", key)
		}
	}
}

type stubScreen struct{}

func (stubScreen) Init() tea.Cmd                           { return nil }
func (s stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (stubScreen) View(int, int) string                    { return "" }
func (stubScreen) Title() string                           { return "stub" }

func TestSummaryScreen_PlayAgain(t *testing.T) {
	s := New(testSummary(), nil)
	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'p', Text: "p"}); cmd != nil {
		t.Error("play again should be disabled without WithPlayAgain")
	}
	if len(s.KeyHints()) != 1 {
		t.Errorf("KeyHints length = %d, want 1", len(s.KeyHints()))
	}

	s = New(testSummary(), nil, WithPlayAgain(func() screen.Screen { return stubScreen{} }))
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'p', Text: "p"})
	if cmd == nil {
		t.Fatal("expected a command on p")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok || msg.Screen.Title() != "stub" {
		t.Errorf("expected ReplaceScreenMsg with the next screen, got %#v", msg)
	}
}
