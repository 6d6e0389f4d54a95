package content

import (
	"errors"
	"fmt"
)

// validateQuestion applies the structural checks every question must pass
// before it reaches an assessment.
func validateQuestion(q Question, requireCategory bool) error {
	if q.Text == "" {
		return errors.New("question text is empty")
	}
	if len(q.Options) != 4 {
		return fmt.Errorf("question has %d options, want 4", len(q.Options))
	}
	for i, o := range q.Options {
		if o == "" {
			return fmt.Errorf("option %d is empty", i)
		}
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("correct index %d out of range", q.CorrectIndex)
	}
	if requireCategory && q.Category == "" {
		return errors.New("question category is empty")
	}
	return nil
}

func validateChallenge(c *Challenge) error {
	if c.Name == "" || c.Description == "" {
		return errors.New("challenge is missing name or description")
	}
	return nil
}
