package diagnosis

import "time"

// Classifier is a rule-based error classifier. Classify returns nil when
// the rule does not apply.
type Classifier interface {
	Name() string
	Classify(in *ClassifyInput) *Result
}

// DefaultClassifiers returns classifiers in priority order. A fast wrong
// answer is a rush even for a strong learner, and a strong learner's
// miss is a slip before it is a misconception.
func DefaultClassifiers() []Classifier {
	return []Classifier{
		&SpeedRushClassifier{},
		&CarelessClassifier{},
		&ArithmeticClassifier{},
	}
}

// RunClassifiers returns the first match, or nil when no rule applies.
func RunClassifiers(classifiers []Classifier, in *ClassifyInput) *Result {
	for _, c := range classifiers {
		if r := c.Classify(in); r != nil {
			r.ClassifierName = c.Name()
			return r
		}
	}
	return nil
}

// SpeedRushThreshold is the response time (exclusive) under which a wrong
// answer counts as rushed.
const SpeedRushThreshold = 2 * time.Second

// SpeedRushClassifier flags answers submitted too quickly.
type SpeedRushClassifier struct{}

func (c *SpeedRushClassifier) Name() string { return "speed-rush" }

func (c *SpeedRushClassifier) Classify(in *ClassifyInput) *Result {
	if in.ResponseTime > 0 && in.ResponseTime < SpeedRushThreshold {
		return &Result{Category: CategorySpeedRush, Confidence: 0.9}
	}
	return nil
}

const (
	// CarelessAccuracyThreshold is the session accuracy (exclusive) above
	// which a miss counts as a slip.
	CarelessAccuracyThreshold = 0.80

	// CarelessMinAttempts is how many answers the session needs before
	// its accuracy means anything.
	CarelessMinAttempts = 5
)

// CarelessClassifier flags misses by a learner who is otherwise getting
// nearly everything right.
type CarelessClassifier struct{}

func (c *CarelessClassifier) Name() string { return "careless" }

func (c *CarelessClassifier) Classify(in *ClassifyInput) *Result {
	if in.Attempts >= CarelessMinAttempts && in.Accuracy > CarelessAccuracyThreshold {
		return &Result{Category: CategoryCareless, Confidence: 0.8}
	}
	return nil
}
