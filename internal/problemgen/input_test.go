package problemgen

import (
	"errors"
	"testing"

	"github.com/abhisek/blockmath/internal/queue"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		text    string
		kind    queue.AnswerKind
		want    queue.Answer
		wantErr bool
	}{
		{"7", queue.KindNumber, queue.Number(7), false},
		{"  007 ", queue.KindNumber, queue.Number(7), false},
		{"3.50", queue.KindNumber, queue.Number(3.5), false},
		{"1,000", queue.KindNumber, queue.Number(1000), false},
		{"6/3", queue.KindNumber, queue.Number(2), false},
		{"-4", queue.KindNumber, queue.Number(-4), false},
		{"seven", queue.KindNumber, queue.Answer{}, true},
		{"1/0", queue.KindNumber, queue.Answer{}, true},
		{"NaN", queue.KindNumber, queue.Answer{}, true},
		{"  big   red ", queue.KindText, queue.Text("big red"), false},
		{"7", queue.KindText, queue.Text("7"), false},
	}
	for _, tt := range tests {
		got, err := ParseInput(tt.text, tt.kind)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseInput(%q, %s) error = %v, wantErr %v", tt.text, tt.kind, err, tt.wantErr)
			continue
		}
		if err == nil && !got.Equal(tt.want) {
			t.Errorf("ParseInput(%q, %s) = %v, want %v", tt.text, tt.kind, got, tt.want)
		}
	}
}

func TestParseInput_Empty(t *testing.T) {
	for _, kind := range []queue.AnswerKind{queue.KindNumber, queue.KindText} {
		if _, err := ParseInput("   ", kind); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("kind %s: err = %v, want ErrEmptyInput", kind, err)
		}
	}
}

func TestParseInput_TextNeverEqualsNumber(t *testing.T) {
	typed, err := ParseInput("7", queue.KindText)
	if err != nil {
		t.Fatal(err)
	}
	if typed.Equal(queue.Number(7)) {
		t.Error("text input must not match a numeric answer")
	}
}
