package llm

import "context"

// Purpose labels a request in the event log. `smartprep llm list -p`
// filters on it.
type Purpose string

const (
	PurposeQuestions      Purpose = "questions"
	PurposeMixedQuestions Purpose = "mixed-questions"
	PurposeChallenge      Purpose = "challenge"
	PurposeRunCode        Purpose = "run-code"
	PurposeEvaluateCode   Purpose = "evaluate-code"
	PurposeRoadmap        Purpose = "roadmap"
	PurposeUnknown        Purpose = "unknown"
)

// Purposes lists the labels content requests are issued under.
var Purposes = []Purpose{
	PurposeQuestions,
	PurposeMixedQuestions,
	PurposeChallenge,
	PurposeRunCode,
	PurposeEvaluateCode,
	PurposeRoadmap,
}

// ParsePurpose returns the known purpose named s.
func ParsePurpose(s string) (Purpose, bool) {
	for _, p := range Purposes {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

type purposeKey struct{}

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey{}, p)
}

// PurposeFrom extracts the purpose label, or PurposeUnknown.
func PurposeFrom(ctx context.Context) Purpose {
	if v, ok := ctx.Value(purposeKey{}).(Purpose); ok {
		return v
	}
	return PurposeUnknown
}
