package llm

import "context"

type purposeKey struct{}

// Purposes recorded with each call.
const (
	PurposeProblemSet = "problem-set"
	PurposeDiagnosis  = "error-diagnosis"
	PurposeHealth     = "health-check"
)

// WithPurpose labels calls made with ctx for the call log.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
