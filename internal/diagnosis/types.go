// Package diagnosis tags wrong answers with an error category: a rushed
// answer, a careless slip, or a known arithmetic misconception. Rules run
// synchronously; an optional LLM looks at the answers the rules leave
// unclassified.
package diagnosis

import "time"

// Category classifies a wrong answer.
type Category string

const (
	CategoryCareless      Category = "careless"
	CategorySpeedRush     Category = "speed-rush"
	CategoryMisconception Category = "misconception"
	CategoryUnclassified  Category = "unclassified"
)

// ClassifyInput is one wrong answer and the session context around it.
type ClassifyInput struct {
	SessionID     string
	ProblemID     string
	Question      string
	CorrectAnswer string
	LearnerAnswer string

	// ResponseTime is the gap since the previous answer, or since the
	// session started. Zero means unknown.
	ResponseTime time.Duration

	// Accuracy and Attempts describe the session before this answer.
	Accuracy float64
	Attempts int
}

// Result is the diagnosis of a wrong answer.
type Result struct {
	Category        Category
	MisconceptionID string // set only for CategoryMisconception
	Confidence      float64
	ClassifierName  string
	Reasoning       string // LLM only
}

// Classified reports whether any rule or model explained the answer.
func (r Result) Classified() bool {
	return r.Category != "" && r.Category != CategoryUnclassified
}

// Label is a short description for summary and history screens. It is
// empty for unclassified answers.
func (r Result) Label() string {
	return Label(r.Category, r.MisconceptionID)
}

// Label describes a stored category and misconception ID.
func Label(cat Category, misconceptionID string) string {
	switch cat {
	case CategorySpeedRush:
		return "Rushed"
	case CategoryCareless:
		return "Careless slip"
	case CategoryMisconception:
		if m := GetMisconception(misconceptionID); m != nil {
			return m.Label
		}
		return "Misconception"
	}
	return ""
}

// rank orders categories by how much they tell a learner. A problem
// missed several times keeps its most specific diagnosis.
func (c Category) rank() int {
	switch c {
	case CategoryMisconception:
		return 3
	case CategoryCareless:
		return 2
	case CategorySpeedRush:
		return 1
	}
	return 0
}
