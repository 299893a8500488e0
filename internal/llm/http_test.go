package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const problemJSON = `{"question":"Sam has 3 apples and finds 4 more. How many now?","answer":7}`

func serve(t *testing.T, status int, body any) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func anthropicError(kind string) map[string]any {
	return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": kind}}
}

func TestAnthropicProvider(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		check  func(t *testing.T, resp *Response, err error)
	}{
		{
			name: "happy path", status: http.StatusOK, body: anthropicMessage(problemJSON, "end_turn"),
			check: func(t *testing.T, resp *Response, err error) {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if resp.Usage.InputTokens != 50 || resp.Usage.TotalTokens != 80 || resp.StopReason != StopEnd {
					t.Errorf("resp = %+v", resp)
				}
			},
		},
		{
			name: "truncated", status: http.StatusOK, body: anthropicMessage(`{"question":"Sam`, "max_tokens"),
			check: func(t *testing.T, _ *Response, err error) {
				var mt *ErrMaxTokensExceeded
				if !errors.As(err, &mt) {
					t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
				}
			},
		},
		{
			name: "rate limit", status: http.StatusTooManyRequests, body: anthropicError("rate_limit_error"),
			check: func(t *testing.T, _ *Response, err error) {
				var rl *ErrRateLimit
				if !errors.As(err, &rl) {
					t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
				}
			},
		},
		{
			name: "server error", status: http.StatusInternalServerError, body: anthropicError("api_error"),
			check: func(t *testing.T, _ *Response, err error) {
				var un *ErrProviderUnavailable
				if !errors.As(err, &un) {
					t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := serve(t, tt.status, tt.body)
			p, err := NewAnthropicProvider(ProviderConfig{APIKey: "test-key", Model: "claude-haiku", BaseURL: url})
			if err != nil {
				t.Fatalf("new provider: %v", err)
			}
			resp, err := p.Generate(context.Background(), UserPrompt("You write math problems.", "One problem.", nil, 256))
			tt.check(t, resp, err)
		})
	}
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAIProvider(t *testing.T) {
	schema := &Schema{
		Name: "http-problem",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string"},
				"answer":   map[string]any{"type": "integer"},
			},
			"required": []any{"question", "answer"},
		},
	}

	t.Run("happy path with schema", func(t *testing.T) {
		url := serve(t, http.StatusOK, chatCompletion(problemJSON, "stop"))
		p, _ := NewOpenAIProvider(ProviderConfig{APIKey: "k", Model: "gpt-mini", BaseURL: url + "/v1"})
		resp, err := p.Generate(context.Background(), UserPrompt("sys", "one", schema, 256))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Usage.OutputTokens != 25 || resp.Model != "gpt-4o-mini" {
			t.Errorf("resp = %+v", resp)
		}
	})

	t.Run("schema violation", func(t *testing.T) {
		url := serve(t, http.StatusOK, chatCompletion(`{"question":"x"}`, "stop"))
		p, _ := NewOpenAIProvider(ProviderConfig{APIKey: "k", BaseURL: url + "/v1"})
		_, err := p.Generate(context.Background(), UserPrompt("", "one", schema, 256))
		var inv *ErrInvalidResponse
		if !errors.As(err, &inv) {
			t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
		}
	})

	t.Run("length finish", func(t *testing.T) {
		url := serve(t, http.StatusOK, chatCompletion(`{"question":`, "length"))
		p, _ := NewOpenAIProvider(ProviderConfig{APIKey: "k", BaseURL: url + "/v1"})
		_, err := p.Generate(context.Background(), UserPrompt("", "one", nil, 8))
		var mt *ErrMaxTokensExceeded
		if !errors.As(err, &mt) {
			t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
		}
	})

	t.Run("rate limit", func(t *testing.T) {
		url := serve(t, http.StatusTooManyRequests, map[string]any{
			"error": map[string]any{"message": "slow down", "type": "rate_limit", "code": "rate_limit"},
		})
		p, _ := NewOpenAIProvider(ProviderConfig{APIKey: "k", BaseURL: url + "/v1"})
		_, err := p.Generate(context.Background(), UserPrompt("", "one", nil, 8))
		var rl *ErrRateLimit
		if !errors.As(err, &rl) {
			t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
		}
	})
}

func TestOpenRouterProvider_DefaultBaseURL(t *testing.T) {
	if _, err := NewOpenRouterProvider(ProviderConfig{}); err == nil {
		t.Fatal("expected error without key")
	}
	p, err := NewOpenRouterProvider(ProviderConfig{APIKey: "k", Model: "meta/llama"})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if p.name != ProviderOpenRouter || p.ModelID() != "meta/llama" {
		t.Errorf("provider = %s %s", p.name, p.ModelID())
	}
	if !strings.HasPrefix(defaultOpenRouterBaseURL, "https://openrouter.ai") {
		t.Errorf("base url = %s", defaultOpenRouterBaseURL)
	}
}
