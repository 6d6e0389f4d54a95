package assessment

import (
	"github.com/abhisek/smartprep/internal/content"
)

// State is the stage of a single-topic assessment.
type State int

const (
	StateLoading State = iota
	StateMCQ
	StateCoding
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateMCQ:
		return "mcq"
	case StateCoding:
		return "coding"
	case StateComplete:
		return "complete"
	}
	return "unknown"
}

// Engine is the state of a topic assessment. Provider round trips happen
// outside; their outcomes are fed back through the *Loaded, RunFinished and
// Evaluated methods.
type Engine struct {
	Topic  string
	Coding bool

	state     State
	questions []content.Question
	answers   []int

	challenge  *content.Challenge
	code       string
	lastRun    *content.RunResult
	submitting bool
	evaluation *content.Evaluation

	result       *Result
	usedFallback bool
}

// NewEngine starts a topic assessment in the loading state.
func NewEngine(topic string) *Engine {
	return &Engine{Topic: topic, Coding: IsCodingTopic(topic)}
}

func (e *Engine) State() State                  { return e.state }
func (e *Engine) Questions() []content.Question { return e.questions }
func (e *Engine) Answers() []int                { return e.answers }
func (e *Engine) Challenge() *content.Challenge { return e.challenge }
func (e *Engine) Code() string                  { return e.code }
func (e *Engine) LastRun() *content.RunResult   { return e.lastRun }
func (e *Engine) Submitting() bool              { return e.submitting }
func (e *Engine) Evaluation() *content.Evaluation {
	return e.evaluation
}

// UsedFallback reports whether static content replaced a failed load.
func (e *Engine) UsedFallback() bool { return e.usedFallback }

// Result is nil until the assessment completes.
func (e *Engine) Result() *Result { return e.result }

// Index is the position of the current question.
func (e *Engine) Index() int { return len(e.answers) }

// Current returns the question awaiting an answer.
func (e *Engine) Current() (content.Question, bool) {
	if e.state != StateMCQ || len(e.answers) >= len(e.questions) {
		return content.Question{}, false
	}
	return e.questions[len(e.answers)], true
}

// QuestionsLoaded moves to the MCQ stage. A failed or empty load is
// replaced by a single placeholder question.
func (e *Engine) QuestionsLoaded(qs []content.Question, err error) {
	if e.state != StateLoading {
		return
	}
	if err != nil || len(qs) == 0 {
		qs = []content.Question{content.PlaceholderQuestion(e.Topic)}
		e.usedFallback = true
	}
	e.questions = qs
	e.state = StateMCQ
}

// ChallengeLoaded moves to the coding stage with the editor seeded from the
// starter code. A failed load is replaced by the fallback challenge.
func (e *Engine) ChallengeLoaded(c *content.Challenge, err error) {
	if e.state != StateLoading {
		return
	}
	if err != nil || c == nil {
		c = content.FallbackChallenge(e.Topic)
		e.usedFallback = true
	}
	e.challenge = c
	e.code = c.StarterCode
	e.state = StateCoding
}

// Answer records option i for the current question and reports whether
// that finished the quiz.
func (e *Engine) Answer(i int) bool {
	if _, ok := e.Current(); !ok {
		return false
	}
	e.answers = append(e.answers, i)
	if len(e.answers) == len(e.questions) {
		e.finishMCQ()
		return true
	}
	return false
}

func (e *Engine) finishMCQ() {
	r := MCQResult(e.Topic, e.questions, e.answers)
	e.result = &r
	e.state = StateComplete
}

// Expire handles the timer running out. A quiz finalizes with the answers
// so far. A coding stage reports true when the caller must submit the
// current code for evaluation.
func (e *Engine) Expire() bool {
	switch e.state {
	case StateMCQ:
		e.finishMCQ()
	case StateCoding:
		return e.BeginSubmit()
	}
	return false
}

// SetCode replaces the editor buffer.
func (e *Engine) SetCode(code string) {
	if e.state == StateCoding && !e.submitting {
		e.code = code
	}
}

// RunFinished stores the outcome of a test run. A runner error becomes a
// failed run carrying the error text.
func (e *Engine) RunFinished(r *content.RunResult, err error) {
	if e.state != StateCoding {
		return
	}
	if err != nil || r == nil {
		r = content.RunFailure(err)
	}
	e.lastRun = r
}

// BeginSubmit marks a submission in flight and reports whether the caller
// should issue the evaluation request. Repeated submits are ignored.
func (e *Engine) BeginSubmit() bool {
	if e.state != StateCoding || e.submitting {
		return false
	}
	e.submitting = true
	return true
}

// Evaluated completes the coding stage.
func (e *Engine) Evaluated(ev *content.Evaluation, err error) {
	if e.state != StateCoding {
		return
	}
	if err == nil {
		e.evaluation = ev
	}
	r := CodingResult(ev, err)
	e.result = &r
	e.submitting = false
	e.state = StateComplete
}
