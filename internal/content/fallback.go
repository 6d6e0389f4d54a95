package content

import (
	"fmt"

	"github.com/abhisek/smartprep/internal/llm"
)

// PlaceholderQuestion is served when a topic quiz cannot be generated.
func PlaceholderQuestion(topic string) Question {
	return Question{
		ID:           1,
		Text:         fmt.Sprintf("What is a core concept of %s?", topic),
		Options:      []string{"Concept A", "Concept B", "Concept C", "Concept D"},
		CorrectIndex: 0,
	}
}

// PlaceholderMixedQuestion is served when the screening quiz cannot be
// generated.
func PlaceholderMixedQuestion() Question {
	return Question{
		ID:           1,
		Text:         "Failed to load. Correct is A.",
		Options:      []string{"A", "B", "C", "D"},
		CorrectIndex: 0,
		Category:     "Error",
	}
}

// FallbackChallenge is served when a coding problem cannot be generated.
func FallbackChallenge(language string) *Challenge {
	return &Challenge{
		Name:        "Sum of Array",
		Description: "Write a function to return the sum of all elements in an array.",
		Constraints: "Array length <= 1000",
		TestCases:   []TestCase{{Input: "[1,2,3]", Output: "6"}},
		StarterCode: "// Write your code here",
		Language:    language,
	}
}

// RunFailure converts a runner error into a displayable failed run.
func RunFailure(err error) *RunResult {
	if err == nil {
		return &RunResult{Error: "No response from execution engine"}
	}
	return &RunResult{Error: "Runtime Error: " + llm.Describe(err)}
}
