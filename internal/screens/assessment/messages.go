package assessment

import (
	"errors"

	asmt "github.com/abhisek/smartprep/internal/assessment"
	"github.com/abhisek/smartprep/internal/content"
)

var errNoRunner = errors.New("no code runner configured")

// questionsMsg carries the quiz for the load identified by token.
type questionsMsg struct {
	token     uint64
	questions []content.Question
	err       error
}

// challengeMsg carries the coding problem for the load identified by token.
type challengeMsg struct {
	token     uint64
	challenge *content.Challenge
	err       error
}

type runMsg struct {
	token uint64
	run   *content.RunResult
	err   error
}

type evalMsg struct {
	token uint64
	ev    *content.Evaluation
	err   error
}

// fullLoadedMsg carries both halves of a full-assessment load.
type fullLoadedMsg struct {
	token uint64
	load  asmt.FullLoad
}

// scoredMsg ends the calculating pause.
type scoredMsg struct {
	token uint64
}
