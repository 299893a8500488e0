package queue

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// AnswerKind distinguishes numeric answers from text answers.
type AnswerKind string

const (
	KindNumber AnswerKind = "number"
	KindText   AnswerKind = "text"
)

// Answer is a canonical or submitted answer value. It holds either a
// number or a string; the zero value is an empty text answer.
type Answer struct {
	kind AnswerKind
	num  float64
	text string
}

// Number returns a numeric Answer.
func Number(n float64) Answer {
	return Answer{kind: KindNumber, num: n}
}

// Text returns a string Answer.
func Text(s string) Answer {
	return Answer{kind: KindText, text: s}
}

// Kind reports whether the answer is numeric or text.
func (a Answer) Kind() AnswerKind {
	if a.kind == "" {
		return KindText
	}
	return a.kind
}

// Float returns the numeric value and true for numeric answers.
func (a Answer) Float() (float64, bool) {
	return a.num, a.Kind() == KindNumber
}

// Equal reports exact equality: numbers compare numerically, text compares
// byte for byte, and a number never equals a text answer.
func (a Answer) Equal(b Answer) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	if a.Kind() == KindNumber {
		return a.num == b.num
	}
	return a.text == b.text
}

// String renders the answer for display. Whole numbers print without a
// decimal point.
func (a Answer) String() string {
	if a.Kind() == KindNumber {
		return strconv.FormatFloat(a.num, 'f', -1, 64)
	}
	return a.text
}

type answerJSON struct {
	Kind  AnswerKind `json:"kind"`
	Value any        `json:"value"`
}

// MarshalJSON encodes the answer with its kind so numbers and numeric-looking
// strings survive a round trip.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Kind() == KindNumber {
		return json.Marshal(answerJSON{Kind: KindNumber, Value: a.num})
	}
	return json.Marshal(answerJSON{Kind: KindText, Value: a.text})
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var raw struct {
		Kind  AnswerKind      `json:"kind"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Kind {
	case KindNumber:
		var n float64
		if err := json.Unmarshal(raw.Value, &n); err != nil {
			return fmt.Errorf("decode number answer: %w", err)
		}
		*a = Number(n)
	case KindText, "":
		var s string
		if err := json.Unmarshal(raw.Value, &s); err != nil {
			return fmt.Errorf("decode text answer: %w", err)
		}
		*a = Text(s)
	default:
		return fmt.Errorf("unknown answer kind %q", raw.Kind)
	}
	return nil
}
