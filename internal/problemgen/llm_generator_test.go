package problemgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/blockmath/internal/llm"
	"github.com/abhisek/blockmath/internal/queue"
)

func problemSet(problems ...string) llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(`{"problems":[` + strings.Join(problems, ",") + `]}`)}
}

const (
	applesOK  = `{"question":"Ana has 3 apples and picks 4 more. How many apples?","expression":"3 + 4","answer":7,"choices":[]}`
	blocksOK  = `{"question":"Leo stacks 9 blocks and 2 fall. How many are left?","expression":"9 - 2","answer":7,"choices":[]}`
	catsOK    = `{"question":"There are 5 cats and 5 more arrive. How many cats?","expression":"5 + 5","answer":10,"choices":[]}`
	wrongMath = `{"question":"Sam has 2 kites and buys 2 more. How many kites?","expression":"2 + 2","answer":5,"choices":[]}`
)

func TestLLMGenerator_HappyPath(t *testing.T) {
	mock := llm.NewMockProvider(problemSet(applesOK, blocksOK, catsOK))
	gen := NewLLMGenerator(mock, DefaultConfig())

	req := Request{Operations: []Operation{OpAdd, OpSub}, Min: 1, Max: 10, Count: 3}
	specs, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specs) != 3 {
		t.Fatalf("got %d specs, want 3", len(specs))
	}
	if specs[0].ID != "word-1" || !specs[0].Answer.Equal(queue.Number(7)) {
		t.Errorf("first spec = %+v", specs[0])
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}

	call := mock.Calls()[0]
	if call.Schema != ProblemSetSchema || call.System != systemPrompt {
		t.Error("request should carry the problem-set schema and system prompt")
	}
	msg := call.Messages[0].Content
	for _, want := range []string{"Problems wanted: 3", "addition (+), subtraction (-)", "Operand range: 1 to 10", "Already used:\nNone"} {
		if !strings.Contains(msg, want) {
			t.Errorf("user message missing %q:\n%s", want, msg)
		}
	}
}

func TestLLMGenerator_RefillsAfterRejects(t *testing.T) {
	mock := llm.NewMockProvider(problemSet(applesOK, wrongMath, applesOK))
	mock.AddResponse(problemSet(blocksOK))
	gen := NewLLMGenerator(mock, DefaultConfig())

	req := Request{Operations: []Operation{OpAdd, OpSub}, Min: 1, Max: 10, Count: 2}
	specs, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specs) != 2 || specs[1].ID != "word-2" {
		t.Fatalf("specs = %+v", specs)
	}

	second := mock.Calls()[1].Messages[0].Content
	if !strings.Contains(second, "Problems wanted: 1") || !strings.Contains(second, "1. Ana has 3 apples") {
		t.Errorf("second prompt should ask for the shortfall and list used problems:\n%s", second)
	}
}

func TestLLMGenerator_GivesUpAfterMaxRounds(t *testing.T) {
	mock := llm.NewMockProvider(problemSet(wrongMath), problemSet(wrongMath), problemSet(wrongMath))
	gen := NewLLMGenerator(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Request{Operations: []Operation{OpAdd}, Min: 1, Max: 10, Count: 1})
	if !errors.Is(err, ErrNotEnoughProblems) {
		t.Fatalf("err = %v, want ErrNotEnoughProblems", err)
	}
	if mock.CallCount() != DefaultConfig().MaxRounds {
		t.Errorf("calls = %d, want %d", mock.CallCount(), DefaultConfig().MaxRounds)
	}
}

func TestLLMGenerator_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	gen := NewLLMGenerator(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), DefaultRequest())
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("err = %v, want wrapped ErrProviderUnavailable", err)
	}
}

func TestLLMGenerator_Choices(t *testing.T) {
	withChoices := `{"question":"Ana has 3 apples and picks 4 more. How many apples?","expression":"3 + 4","answer":7,"choices":[6,7,9]}`
	mock := llm.NewMockProvider(problemSet(withChoices))
	gen := NewLLMGenerator(mock, DefaultConfig())

	specs, err := gen.Generate(context.Background(), Request{Operations: []Operation{OpAdd}, Min: 1, Max: 10, Count: 1, Choices: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specs[0].Choices) != 3 || !specs[0].Choices[1].Equal(queue.Number(7)) {
		t.Errorf("choices = %v", specs[0].Choices)
	}
}

func TestLLMGenerator_FallsBackToArithmetic(t *testing.T) {
	gen := &FallbackGenerator{
		Primary:   NewLLMGenerator(llm.NewMockProvider(), DefaultConfig()),
		Secondary: NewArithmeticGenerator(9),
	}
	specs, err := gen.Generate(context.Background(), DefaultRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(specs[0].ID, "add-") && !strings.HasPrefix(specs[0].ID, "sub-") {
		t.Errorf("expected arithmetic fallback, got %q", specs[0].ID)
	}
}

func TestBuildDedup(t *testing.T) {
	if got := buildDedup(nil, 5); got != "None" {
		t.Errorf("buildDedup(nil) = %q", got)
	}
	got := buildDedup([]string{"a", "b", "c"}, 2)
	if got != "1. b\n2. c" {
		t.Errorf("buildDedup = %q", got)
	}
}
