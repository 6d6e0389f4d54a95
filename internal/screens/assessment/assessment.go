package assessment

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	asmt "github.com/abhisek/smartprep/internal/assessment"
	"github.com/abhisek/smartprep/internal/screen"
	"github.com/abhisek/smartprep/internal/screens"
	"github.com/abhisek/smartprep/internal/screens/workspace"
	"github.com/abhisek/smartprep/internal/session"
	"github.com/abhisek/smartprep/internal/timer"
	"github.com/abhisek/smartprep/internal/ui/components"
	"github.com/abhisek/smartprep/internal/ui/layout"
)

// AssessmentScreen runs a single-topic assessment: a timed quiz, or a timed
// coding problem for programming topics.
type AssessmentScreen struct {
	deps   *screens.Deps
	engine *asmt.Engine
	timer  timer.Countdown

	loadToken uint64
	runToken  uint64
	evalToken uint64
	running   bool

	choice  components.MultiChoice
	editor  components.CodeEditor
	tabs    components.Tabs
	console bool

	confirmQuit bool
	finished    bool

	width, height int
}

var _ screen.Screen = (*AssessmentScreen)(nil)
var _ screen.KeyHintProvider = (*AssessmentScreen)(nil)

// New creates an AssessmentScreen for the session's topic.
func New(deps *screens.Deps) *AssessmentScreen {
	return &AssessmentScreen{
		deps:   deps,
		engine: asmt.NewEngine(deps.State().Topic),
	}
}

func (s *AssessmentScreen) Title() string {
	return "Assessment: " + s.engine.Topic
}

func (s *AssessmentScreen) Init() tea.Cmd {
	s.loadToken = screens.NextToken()
	token, gen, topic := s.loadToken, s.deps.Generator, s.engine.Topic

	if s.engine.Coding {
		return func() tea.Msg {
			c, err := gen.Challenge(context.Background(), topic)
			return challengeMsg{token: token, challenge: c, err: err}
		}
	}
	n := s.deps.Questions
	return func() tea.Msg {
		qs, err := gen.Questions(context.Background(), topic, n)
		return questionsMsg{token: token, questions: qs, err: err}
	}
}

func (s *AssessmentScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsMsg:
		if msg.token != s.loadToken {
			return s, nil
		}
		s.engine.QuestionsLoaded(msg.questions, msg.err)
		if s.engine.UsedFallback() {
			s.deps.Log().Warn("question generation failed, using placeholder",
				zap.String("topic", s.engine.Topic), zap.Error(msg.err))
		}
		s.nextChoice()
		return s, s.startTimer(s.deps.QuizTime)

	case challengeMsg:
		if msg.token != s.loadToken {
			return s, nil
		}
		s.engine.ChallengeLoaded(msg.challenge, msg.err)
		if s.engine.UsedFallback() {
			s.deps.Log().Warn("challenge generation failed, using fallback",
				zap.String("topic", s.engine.Topic), zap.Error(msg.err))
		}
		s.editor = components.NewCodeEditor(s.engine.Code(), 60, 12)
		s.tabs = workspace.CaseTabs(s.engine.Challenge())
		return s, s.startTimer(s.deps.CodingTime)

	case timer.TickMsg:
		if msg.Gen != s.timer.Generation() || s.finished {
			return s, nil
		}
		if s.timer.Tick() {
			return s, s.expire()
		}
		return s, timer.TickCmd(msg.Gen)

	case runMsg:
		if msg.token != s.runToken {
			return s, nil
		}
		s.running = false
		if msg.err != nil {
			s.deps.Log().Warn("test run failed", zap.String("topic", s.engine.Topic), zap.Error(msg.err))
		}
		s.engine.RunFinished(msg.run, msg.err)
		if s.tabs.Selected >= len(s.tabs.Labels) {
			s.tabs.Selected = 0
		}
		return s, nil

	case evalMsg:
		if msg.token != s.evalToken {
			return s, nil
		}
		if msg.err != nil {
			s.deps.Log().Warn("code review failed", zap.String("topic", s.engine.Topic), zap.Error(msg.err))
		}
		s.engine.Evaluated(msg.ev, msg.err)
		return s, s.finish()

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *AssessmentScreen) startTimer(d time.Duration) tea.Cmd {
	s.timer.Start(d)
	return timer.TickCmd(s.timer.Generation())
}

// expire ends the running stage when the countdown reaches zero.
func (s *AssessmentScreen) expire() tea.Cmd {
	s.confirmQuit = false
	if s.engine.Expire() {
		return s.evaluate()
	}
	if s.engine.State() == asmt.StateComplete {
		return s.finish()
	}
	return nil
}

func (s *AssessmentScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.finished {
		return nil
	}
	if s.confirmQuit {
		switch msg.String() {
		case "y", "Y":
			s.finished = true
			s.timer.SetActive(false)
			return screens.Dispatch(session.Navigate{View: session.ViewDashboard})
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return nil
	}
	if msg.String() == "esc" {
		s.confirmQuit = true
		return nil
	}

	switch s.engine.State() {
	case asmt.StateMCQ:
		return s.handleQuizKey(msg)
	case asmt.StateCoding:
		return s.handleCodingKey(msg)
	}
	return nil
}

func (s *AssessmentScreen) handleQuizKey(msg tea.KeyMsg) tea.Cmd {
	s.choice, _ = s.choice.Update(msg)
	if !s.choice.Answered() {
		return nil
	}
	if s.engine.Answer(s.choice.Choice()) {
		return s.finish()
	}
	s.nextChoice()
	return nil
}

func (s *AssessmentScreen) nextChoice() {
	if q, ok := s.engine.Current(); ok {
		s.choice = components.NewMultiChoice(q.Text, q.Options)
	}
}

func (s *AssessmentScreen) handleCodingKey(msg tea.KeyMsg) tea.Cmd {
	if s.engine.Submitting() {
		return nil
	}
	switch msg.String() {
	case "ctrl+r":
		return s.run()
	case "ctrl+s":
		return s.evaluate()
	case "ctrl+t":
		s.console = !s.console
		return nil
	}
	if s.console {
		s.tabs = s.tabs.Update(msg)
		return nil
	}
	var cmd tea.Cmd
	s.editor, cmd = s.editor.Update(msg)
	s.engine.SetCode(s.editor.Value())
	return cmd
}

func (s *AssessmentScreen) run() tea.Cmd {
	if s.running || s.deps.Runner == nil {
		return nil
	}
	s.running = true
	s.runToken = screens.NextToken()
	token, runner, c, code := s.runToken, s.deps.Runner, s.engine.Challenge(), s.engine.Code()
	return func() tea.Msg {
		r, err := runner.RunTests(context.Background(), c.Description, code, c.Language, c.TestCases)
		return runMsg{token: token, run: r, err: err}
	}
}

// evaluate submits the current code. The timer stops while the review is
// in flight; expiry can no longer change the outcome.
func (s *AssessmentScreen) evaluate() tea.Cmd {
	if !s.engine.Submitting() && !s.engine.BeginSubmit() {
		return nil
	}
	s.timer.SetActive(false)
	s.running = false
	s.runToken = 0
	s.evalToken = screens.NextToken()
	token, runner, c, code := s.evalToken, s.deps.Runner, s.engine.Challenge(), s.engine.Code()
	if runner == nil {
		return func() tea.Msg { return evalMsg{token: token, err: errNoRunner} }
	}
	return func() tea.Msg {
		ev, err := runner.Evaluate(context.Background(), c.Description, code, c.Language)
		return evalMsg{token: token, ev: ev, err: err}
	}
}

// finish records the attempt and hands the result to the session.
func (s *AssessmentScreen) finish() tea.Cmd {
	r := s.engine.Result()
	if s.finished || r == nil {
		return nil
	}
	s.finished = true
	s.timer.SetActive(false)

	kind := asmt.KindMCQ
	if s.engine.Coding {
		kind = asmt.KindCoding
	}
	result, user, topic := *r, s.deps.State().User, s.engine.Topic
	events, logger := s.deps.Events, s.deps.Log()

	return func() tea.Msg {
		if events != nil {
			if _, err := asmt.Record(context.Background(), events, user, topic, kind, result); err != nil {
				logger.Warn("failed to record assessment", zap.Error(err))
			}
		}
		return screens.ActionMsg{Action: session.CompleteAssessment{Result: result}}
	}
}

func (s *AssessmentScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.engine.State() {
	case asmt.StateMCQ:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Answer"},
			{Key: "A-D", Description: "Quick answer"},
			{Key: "Esc", Description: "Leave"},
		}
	case asmt.StateCoding:
		if s.console {
			return []layout.KeyHint{
				{Key: "←→", Description: "Test case"},
				{Key: "Ctrl+T", Description: "Back to editor"},
			}
		}
		return []layout.KeyHint{
			{Key: "Ctrl+R", Description: "Run tests"},
			{Key: "Ctrl+S", Description: "Submit"},
			{Key: "Ctrl+T", Description: "Console"},
			{Key: "Esc", Description: "Leave"},
		}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}
