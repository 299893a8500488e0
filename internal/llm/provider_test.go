package llm

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/abhisek/blockmath/internal/store"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: newUsage(10, 5)},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp, err := mock.Generate(context.Background(), UserPrompt("", "first", nil, 64))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"a":1}` || resp.Usage.TotalTokens != 15 || resp.StopReason != StopEnd {
		t.Fatalf("first response = %+v", resp)
	}

	resp, err = mock.Generate(context.Background(), UserPrompt("", "second", nil, 64))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"b":2}` {
		t.Fatalf("second content = %s", resp.Content)
	}

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("empty queue: expected ErrProviderUnavailable, got %T", err)
	}
	if mock.CallCount() != 3 || mock.Calls()[0].Messages[0].Content != "first" {
		t.Fatalf("calls not recorded: %+v", mock.Calls())
	}
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"question":"2 + 2"}`)})
	_, err := mock.Generate(context.Background(), UserPrompt("", "q", problemSchema(), 64))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("PurposeFrom(empty) = %q", p)
	}
	ctx = WithPurpose(ctx, PurposeProblemSet)
	if p := PurposeFrom(ctx); p != PurposeProblemSet {
		t.Fatalf("PurposeFrom = %q, want %q", p, PurposeProblemSet)
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		aliases map[string]string
		in      string
		want    string
	}{
		{anthropicAliases, "claude-haiku", "claude-haiku-4-5-20251001"},
		{anthropicAliases, "claude-opus-4-1", "claude-opus-4-1"},
		{openaiAliases, "gpt-mini", "gpt-4o-mini"},
		{geminiAliases, "gemini-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.in, tt.aliases); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: ProviderConfig{APIKey: "k"}}, false},
		{"openrouter with key", Config{Provider: ProviderOpenRouter, OpenRouter: ProviderConfig{APIKey: "k"}}, false},
		{"gemini key on wrong provider", Config{Provider: ProviderOpenAI, Gemini: ProviderConfig{APIKey: "k"}}, true},
		{"mock needs no key", Config{Provider: ProviderMock}, false},
		{"unknown provider", Config{Provider: "llama"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"BLOCKMATH_LLM_PROVIDER", "BLOCKMATH_LLM_TIMEOUT",
		"BLOCKMATH_ANTHROPIC_API_KEY", "BLOCKMATH_OPENAI_API_KEY",
		"BLOCKMATH_GEMINI_API_KEY", "BLOCKMATH_OPENROUTER_API_KEY",
		"BLOCKMATH_OPENAI_MODEL", "BLOCKMATH_OPENAI_BASE_URL",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("BLOCKMATH_LLM_PROVIDER", "openai")
	t.Setenv("BLOCKMATH_OPENAI_API_KEY", "sk-1")
	t.Setenv("BLOCKMATH_OPENAI_MODEL", "gpt-4.1")
	t.Setenv("BLOCKMATH_OPENAI_BASE_URL", "http://localhost:1234/v1")
	t.Setenv("BLOCKMATH_LLM_TIMEOUT", "5s")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderOpenAI {
		t.Fatalf("provider = %q", cfg.Provider)
	}
	sel := cfg.Selected()
	if sel.APIKey != "sk-1" || sel.Model != "gpt-4.1" || sel.BaseURL != "http://localhost:1234/v1" {
		t.Errorf("selected = %+v", sel)
	}
	if cfg.Timeout.Seconds() != 5 {
		t.Errorf("timeout = %v, want 5s", cfg.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestDiscoverConfig(t *testing.T) {
	clearLLMEnv(t)
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "a")
	t.Setenv("OPENAI_API_KEY", "o")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "o" {
		t.Fatalf("DiscoverConfig = %+v, %v; want openai first", cfg, ok)
	}
}

func TestNewProviderFromEnv_NoneConfigured(t *testing.T) {
	clearLLMEnv(t)
	p, err := NewProviderFromEnv(context.Background(), nil)
	if err != nil || p != nil {
		t.Fatalf("got (%v, %v), want (nil, nil)", p, err)
	}

	t.Setenv("BLOCKMATH_LLM_PROVIDER", "anthropic")
	if _, err := NewProviderFromEnv(context.Background(), nil); err == nil {
		t.Fatal("expected error when a provider is named without a key")
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock}, nil)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if p.ModelID() != ProviderMock {
		t.Errorf("model = %q", p.ModelID())
	}
}

type recordingRepo struct {
	calls []store.LLMCallData
	err   error
}

func (r *recordingRepo) AppendLLMCall(_ context.Context, data store.LLMCallData) error {
	r.calls = append(r.calls, data)
	return r.err
}

func (r *recordingRepo) QueryLLMCalls(context.Context, store.QueryOpts) ([]store.LLMCallRecord, error) {
	return nil, nil
}

func (r *recordingRepo) GetLLMCall(context.Context, int64) (*store.LLMCallRecord, error) {
	return nil, nil
}

func (r *recordingRepo) LLMUsageByPurpose(context.Context) ([]store.LLMUsage, error) {
	return nil, nil
}

func (r *recordingRepo) LLMUsageByModel(context.Context) ([]store.LLMUsage, error) {
	return nil, nil
}

func TestLoggingProvider(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`), Usage: newUsage(7, 3)},
		MockResponse{Err: errDown},
	)
	p := WithLogging(mock, "mock", repo)
	ctx := WithPurpose(context.Background(), PurposeProblemSet)

	if _, err := p.Generate(ctx, UserPrompt("be brief", "2 + 2?", nil, 32)); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := p.Generate(ctx, UserPrompt("", "again", nil, 32)); err == nil {
		t.Fatal("second call should fail")
	}

	if len(repo.calls) != 2 {
		t.Fatalf("logged %d calls, want 2", len(repo.calls))
	}
	first, second := repo.calls[0], repo.calls[1]
	if !first.Success || first.InputTokens != 7 || first.OutputTokens != 3 || first.Purpose != PurposeProblemSet {
		t.Errorf("first = %+v", first)
	}
	if first.ResponseBody != `{"ok":true}` {
		t.Errorf("response body = %q", first.ResponseBody)
	}
	if want := "[system]\nbe brief\n\n[user]\n2 + 2?\n\n"; first.RequestBody != want {
		t.Errorf("request body = %q, want %q", first.RequestBody, want)
	}
	if second.Success || second.ErrorMessage == "" {
		t.Errorf("second = %+v", second)
	}
}

func TestLoggingProvider_RepoFailureDoesNotFailCall(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), "mock", repo)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestModelCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("expected pricing for gpt-4o-mini")
	}
	if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("cost = %v, want 0.75", got)
	}
	if LookupCost("unknown-model") != nil {
		t.Error("expected nil for unknown model")
	}
}
