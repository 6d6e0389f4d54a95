// Package content produces interview preparation content (questions, coding
// challenges, simulated runs, evaluations and roadmaps) from an LLM provider.
package content

import "context"

// ComprehensiveTopic is the topic name of the full interview assessment.
// Roadmaps for it use the multi-round prompt.
const ComprehensiveTopic = "Comprehensive Interview Prep"

// Generator produces assessment and planning content.
type Generator interface {
	// Questions returns up to n multiple-choice questions on topic.
	Questions(ctx context.Context, topic string, n int) ([]Question, error)

	// MixedQuestions returns n screening questions split between
	// aptitude and core CS, each carrying a category.
	MixedQuestions(ctx context.Context, n int) ([]Question, error)

	// Challenge returns one coding problem for topic.
	Challenge(ctx context.Context, topic string) (*Challenge, error)

	// Roadmap returns a day-by-day plan.
	Roadmap(ctx context.Context, req RoadmapRequest) (*Roadmap, error)
}

// CodeRunner runs and evaluates submitted code. The LLM implementation
// simulates both; a sandboxed executor can replace it behind this interface.
type CodeRunner interface {
	RunTests(ctx context.Context, problem, code, language string, cases []TestCase) (*RunResult, error)
	Evaluate(ctx context.Context, problem, code, language string) (*Evaluation, error)
}
