package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func problemSchema() *Schema {
	return &Schema{
		Name: "test-problem",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string", "minLength": 1},
				"answer":   map[string]any{"type": "integer", "minimum": 0},
				"op":       map[string]any{"type": "string", "enum": []any{"add", "sub"}},
			},
			"required":             []any{"question", "answer"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"question":"2 + 2","answer":4,"op":"add"}`, false},
		{"optional omitted", `{"question":"2 + 2","answer":4}`, false},
		{"missing required", `{"question":"2 + 2"}`, true},
		{"wrong type", `{"question":"2 + 2","answer":"four"}`, true},
		{"below minimum", `{"question":"2 - 5","answer":-3}`, true},
		{"bad enum", `{"question":"2 * 2","answer":4,"op":"mul"}`, true},
		{"extra field", `{"question":"2 + 2","answer":4,"hint":"count"}`, true},
		{"not json", `the answer is 4`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(problemSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse(%s) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
				if string(inv.Content) != tt.raw {
					t.Errorf("content = %s, want %s", inv.Content, tt.raw)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not json`)); err != nil {
		t.Fatalf("nil schema should accept anything, got %v", err)
	}
}

func TestValidateResponse_CachesCompiledSchema(t *testing.T) {
	s := problemSchema()
	s.Name = "cache-check"
	for i := 0; i < 2; i++ {
		if err := validateResponse(s, json.RawMessage(`{"question":"1 + 1","answer":2}`)); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if _, ok := compiled.Load("cache-check"); !ok {
		t.Fatal("expected schema to be cached")
	}
}
