package problemgen

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/abhisek/blockmath/internal/queue"
)

// ErrEmptyInput is returned by ParseInput for blank text.
var ErrEmptyInput = errors.New("problemgen: empty answer")

// ParseInput turns typed text into an Answer of the given kind.
//
// Normalization rules:
//   - whitespace is trimmed, and inner runs collapse to one space for text
//   - numbers accept leading zeros ("007" is 7) and trailing decimal
//     zeros ("3.50" is 3.5)
//   - numbers accept thousands separators ("1,000") and simple fractions
//     ("6/3" is 2)
func ParseInput(text string, kind queue.AnswerKind) (queue.Answer, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return queue.Answer{}, ErrEmptyInput
	}
	if kind == queue.KindText {
		return queue.Text(strings.Join(strings.Fields(text), " ")), nil
	}

	n, err := parseNumber(text)
	if err != nil {
		return queue.Answer{}, err
	}
	return queue.Number(n), nil
}

func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", "")
	if num, den, ok := strings.Cut(s, "/"); ok {
		a, err := parseNumber(strings.TrimSpace(num))
		if err != nil {
			return 0, err
		}
		b, err := parseNumber(strings.TrimSpace(den))
		if err != nil {
			return 0, err
		}
		if b == 0 {
			return 0, fmt.Errorf("invalid number %q: zero denominator", s)
		}
		return a / b, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}
