package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/abhisek/blockmath/internal/diagnosis"
	"github.com/abhisek/blockmath/internal/llm"
	"github.com/abhisek/blockmath/internal/queue"
)

// slowManager spaces answers five seconds apart, well clear of a rush.
func slowManager(t *testing.T) *queue.Manager {
	t.Helper()
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	clock := func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * 5 * time.Second)
	}
	m, err := queue.NewManager(queue.WithClock(clock), queue.WithRand(zeroRand{}))
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m
}

// missFirst answers the first problem with wrong, then plays the rest
// correctly.
func missFirst(t *testing.T, s *Session, wrong float64) Outcome {
	t.Helper()
	out, err := s.Submit(context.Background(), queue.Number(wrong))
	if err != nil {
		t.Fatal(err)
	}
	if out.Correct {
		t.Fatalf("answer %v was graded correct", wrong)
	}
	playCorrectly(t, s)
	return out
}

func TestDiagnosis_SpeedRushFromAttemptGaps(t *testing.T) {
	svc := diagnosis.NewService(nil)
	defer svc.Close()
	repo := &fakeSessionRepo{}
	s := newTestSession(t, 2, WithStore(repo), WithDiagnosis(svc))

	out := missFirst(t, s, 99)
	if out.Diagnosis == nil || out.Diagnosis.Category != diagnosis.CategorySpeedRush {
		t.Fatalf("outcome diagnosis = %+v, want speed-rush", out.Diagnosis)
	}

	got := s.Diagnoses()
	if got["add-0-1"].Category != diagnosis.CategorySpeedRush {
		t.Errorf("diagnoses = %+v", got)
	}
	m := repo.mistakes[0]
	if len(m) != 1 || m[0].Category != "speed-rush" || m[0].Misconception != "" {
		t.Errorf("saved mistakes = %+v", m)
	}
}

func TestDiagnosis_ArithmeticMisconception(t *testing.T) {
	svc := diagnosis.NewService(nil)
	defer svc.Close()
	repo := &fakeSessionRepo{}
	s := newTestSession(t, 2, WithManager(slowManager(t)), WithStore(repo), WithDiagnosis(svc))

	// 0 × 1 = 0 where 0 + 1 was asked.
	missFirst(t, s, 0)

	d, ok := s.Diagnoses()["add-0-1"]
	if !ok || d.Category != diagnosis.CategoryMisconception || d.MisconceptionID != diagnosis.MisconceptionWrongOperation {
		t.Fatalf("diagnosis = %+v, %v", d, ok)
	}
	m := repo.mistakes[0][0]
	if m.Category != "misconception" || m.Misconception != diagnosis.MisconceptionWrongOperation {
		t.Errorf("saved = %q/%q", m.Category, m.Misconception)
	}
}

func TestDiagnosis_LLMResultSaved(t *testing.T) {
	resp := json.RawMessage(`{"misconception_id":"off-by-one","confidence":0.7,"reasoning":"Counted on one too far"}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: resp})
	svc := diagnosis.NewService(mock)
	defer svc.Close()
	repo := &fakeSessionRepo{}
	s := newTestSession(t, 2, WithManager(slowManager(t)), WithStore(repo), WithDiagnosis(svc))

	out := missFirst(t, s, 99)
	if out.Diagnosis == nil || out.Diagnosis.Category != diagnosis.CategoryUnclassified {
		t.Errorf("immediate diagnosis = %+v, want unclassified", out.Diagnosis)
	}
	if mock.CallCount() != 1 {
		t.Errorf("LLM calls = %d, want 1", mock.CallCount())
	}

	d := s.Diagnoses()["add-0-1"]
	if d.MisconceptionID != diagnosis.MisconceptionOffByOne || d.ClassifierName != "llm" {
		t.Errorf("diagnosis = %+v, want off-by-one from llm", d)
	}
	if m := repo.mistakes[0][0]; m.Misconception != diagnosis.MisconceptionOffByOne {
		t.Errorf("saved misconception = %q", m.Misconception)
	}
}

func TestDiagnosis_Disabled(t *testing.T) {
	repo := &fakeSessionRepo{}
	s := newTestSession(t, 2, WithStore(repo))

	out := missFirst(t, s, 99)
	if out.Diagnosis != nil {
		t.Errorf("diagnosis = %+v, want nil", out.Diagnosis)
	}
	if len(s.Diagnoses()) != 0 {
		t.Errorf("diagnoses = %+v, want none", s.Diagnoses())
	}
	if m := repo.mistakes[0][0]; m.Category != "" {
		t.Errorf("saved category = %q, want empty", m.Category)
	}
}
