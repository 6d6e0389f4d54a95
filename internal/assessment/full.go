package assessment

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/smartprep/internal/content"
)

// FullState is the stage of the combined screening assessment.
type FullState int

const (
	FullLoading FullState = iota
	FullMCQ
	FullTransition
	FullCoding
	FullCalculating
	FullComplete
)

func (s FullState) String() string {
	switch s {
	case FullLoading:
		return "loading"
	case FullMCQ:
		return "mcq"
	case FullTransition:
		return "transition"
	case FullCoding:
		return "coding"
	case FullCalculating:
		return "calculating"
	case FullComplete:
		return "complete"
	}
	return "unknown"
}

// CodingBonus is the weight of the coding stage in the combined score.
const CodingBonus = 5

// Full is the state of a combined assessment: a mixed quiz followed by a
// coding stage.
type Full struct {
	state     FullState
	questions []content.Question
	answers   []int
	challenge *content.Challenge

	codingPassed bool
	result       *Result
	usedFallback bool
}

// NewFull starts a combined assessment in the loading state.
func NewFull() *Full {
	return &Full{}
}

func (f *Full) State() FullState               { return f.state }
func (f *Full) Questions() []content.Question { return f.questions }
func (f *Full) Answers() []int                { return f.answers }
func (f *Full) Challenge() *content.Challenge { return f.challenge }
func (f *Full) CodingPassed() bool            { return f.codingPassed }
func (f *Full) UsedFallback() bool            { return f.usedFallback }
func (f *Full) Result() *Result               { return f.result }
func (f *Full) Index() int                    { return len(f.answers) }

// Current returns the question awaiting an answer.
func (f *Full) Current() (content.Question, bool) {
	if f.state != FullMCQ || len(f.answers) >= len(f.questions) {
		return content.Question{}, false
	}
	return f.questions[len(f.answers)], true
}

// FullLoad carries the outcome of both loading requests.
type FullLoad struct {
	Questions    []content.Question
	QuestionsErr error
	Challenge    *content.Challenge
	ChallengeErr error
}

// LoadFull fetches the mixed questions and the coding challenge
// concurrently. Each request's failure is reported separately so either
// half can fall back on its own.
func LoadFull(ctx context.Context, gen content.Generator, n int, challengeTopic string) FullLoad {
	var out FullLoad
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		out.Questions, out.QuestionsErr = gen.MixedQuestions(gctx, n)
		return nil
	})
	g.Go(func() error {
		out.Challenge, out.ChallengeErr = gen.Challenge(gctx, challengeTopic)
		return nil
	})

	_ = g.Wait()
	return out
}

// Loaded moves to the quiz, substituting fallbacks for failed halves.
func (f *Full) Loaded(l FullLoad, challengeTopic string) {
	if f.state != FullLoading {
		return
	}
	qs := l.Questions
	if l.QuestionsErr != nil || len(qs) == 0 {
		qs = []content.Question{content.PlaceholderMixedQuestion()}
		f.usedFallback = true
	}
	ch := l.Challenge
	if l.ChallengeErr != nil || ch == nil {
		ch = content.FallbackChallenge(challengeTopic)
		f.usedFallback = true
	}
	f.questions = qs
	f.challenge = ch
	f.state = FullMCQ
}

// Answer records option i and reports whether the quiz is finished, which
// moves the assessment to the transition stage.
func (f *Full) Answer(i int) bool {
	if _, ok := f.Current(); !ok {
		return false
	}
	f.answers = append(f.answers, i)
	if len(f.answers) == len(f.questions) {
		f.state = FullTransition
		return true
	}
	return false
}

// Expire handles the timer running out: the quiz moves on to the
// transition stage and the coding stage counts as skipped.
func (f *Full) Expire() {
	switch f.state {
	case FullMCQ:
		f.state = FullTransition
	case FullCoding:
		f.CodingSkipped()
	}
}

// BeginCoding leaves the transition stage. The caller re-arms the timer.
func (f *Full) BeginCoding() bool {
	if f.state != FullTransition {
		return false
	}
	f.state = FullCoding
	return true
}

// CodingSucceeded records a passing coding submission.
func (f *Full) CodingSucceeded() {
	if f.state != FullCoding {
		return
	}
	f.codingPassed = true
	f.state = FullCalculating
}

// CodingSkipped records an abandoned or timed-out coding stage.
func (f *Full) CodingSkipped() {
	if f.state != FullCoding {
		return
	}
	f.codingPassed = false
	f.state = FullCalculating
}

// Finalize scores the assessment and completes it.
func (f *Full) Finalize() *Result {
	if f.state != FullCalculating {
		return f.result
	}
	r := FullResult(f.questions, f.answers, f.codingPassed)
	f.result = &r
	f.state = FullComplete
	return f.result
}

// FullResult scores a combined assessment. Weak areas are the categories of
// wrongly answered questions in first-seen order, plus the coding stage when
// it did not pass.
func FullResult(questions []content.Question, answers []int, codingPassed bool) Result {
	correct := 0
	var weak []string
	seen := map[string]bool{}
	addWeak := func(a string) {
		if a == "" || seen[a] {
			return
		}
		seen[a] = true
		weak = append(weak, a)
	}

	for i, a := range answers {
		if i >= len(questions) {
			break
		}
		if questions[i].CorrectIndex == a {
			correct++
		} else {
			addWeak(questions[i].Category)
		}
	}

	score := correct
	if codingPassed {
		score += CodingBonus
	} else {
		addWeak("Technical Coding Implementation")
	}
	if len(weak) == 0 {
		weak = []string{"Advanced System Design"}
	}

	return Result{
		Score:       score,
		Total:       len(questions) + CodingBonus,
		WeakAreas:   weak,
		StrongAreas: []string{"Perseverance"},
	}
}
