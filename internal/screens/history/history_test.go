package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/blockmath/internal/router"
	"github.com/abhisek/blockmath/internal/store"
)

type mockSessionRepo struct {
	sessions     []store.SessionRecord
	mistakes     map[string][]store.MistakeRecord
	listErr      error
	mistakeCalls int
}

func (m *mockSessionRepo) SaveSummary(context.Context, store.SessionRecord, []store.MistakeRecord) error {
	return nil
}
func (m *mockSessionRepo) ListSessions(context.Context, store.QueryOpts) ([]store.SessionRecord, error) {
	return m.sessions, m.listErr
}
func (m *mockSessionRepo) Mistakes(_ context.Context, id string) ([]store.MistakeRecord, error) {
	m.mistakeCalls++
	return m.mistakes[id], nil
}

func testRepo() *mockSessionRepo {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return &mockSessionRepo{
		sessions: []store.SessionRecord{
			{ID: "s2", StartedAt: start, CompletedAt: start.Add(3 * time.Minute), ProblemCount: 5, Accuracy: 0.8, Score: 90, BlocksAwarded: 7},
			{ID: "s1", StartedAt: start.Add(-time.Hour), CompletedAt: start.Add(-time.Hour + time.Minute), ProblemCount: 3, Accuracy: 1, Perfect: true},
		},
		mistakes: map[string][]store.MistakeRecord{
			"s2": {
				{SessionID: "s2", Question: "7 + 5", CorrectAnswer: "12", MistakeCount: 1,
					Attempts: []store.AttemptRecord{{Answer: "11"}, {Answer: "12", Correct: true}},
					Category: "misconception", Misconception: "off-by-one"},
				{SessionID: "s2", Question: "9 - 3", CorrectAnswer: "6", MistakeCount: 1,
					Attempts: []store.AttemptRecord{{Answer: "5"}, {Answer: "6", Correct: true}},
					Category: "speed-rush"},
			},
		},
	}
}

func load(s *HistoryScreen) {
	s.Update(s.Init()())
}

func TestHistory_ListsSessions(t *testing.T) {
	s := New(testRepo())
	if !strings.Contains(s.View(120, 30), "Loading") {
		t.Error("expected loading view before data arrives")
	}
	load(s)

	view := s.View(120, 30)
	for _, want := range []string{"5 problems", "80%", "90 pts", "7 blocks", "★ perfect"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistory_ExpandLoadsMistakesOnce(t *testing.T) {
	repo := testRepo()
	s := New(repo)
	load(s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command to load mistakes")
	}
	s.Update(cmd())
	view := s.View(120, 30)
	for _, want := range []string{"missed 1 time: 11", "(Off by one)", "(Rushed)"} {
		if !strings.Contains(view, want) {
			t.Errorf("expanded view missing %q", want)
		}
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("mistakes should be cached after the first load")
	}
	if repo.mistakeCalls != 1 {
		t.Errorf("Mistakes called %d times, want 1", repo.mistakeCalls)
	}
}

func TestHistory_PerfectSessionNeedsNoLoad(t *testing.T) {
	s := New(testRepo())
	load(s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("perfect session should not load mistakes")
	}
	if !strings.Contains(s.View(120, 30), "No mistakes this session") {
		t.Error("expected no-mistakes note")
	}
}

func TestHistory_Empty(t *testing.T) {
	s := New(&mockSessionRepo{})
	load(s)
	if !strings.Contains(s.View(120, 30), "No sessions yet") {
		t.Error("expected empty state")
	}
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("enter on empty list should do nothing")
	}
}

func TestHistory_LoadError(t *testing.T) {
	s := New(&mockSessionRepo{listErr: errors.New("disk gone")})
	load(s)
	if !strings.Contains(s.View(120, 30), "disk gone") {
		t.Error("expected error in view")
	}
}

func TestHistory_EscPops(t *testing.T) {
	s := New(testRepo())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
