package assessment

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	asmt "github.com/abhisek/smartprep/internal/assessment"
	"github.com/abhisek/smartprep/internal/content"
	"github.com/abhisek/smartprep/internal/screen"
	"github.com/abhisek/smartprep/internal/screens"
	"github.com/abhisek/smartprep/internal/screens/workspace"
	"github.com/abhisek/smartprep/internal/session"
	"github.com/abhisek/smartprep/internal/timer"
	"github.com/abhisek/smartprep/internal/ui/components"
	"github.com/abhisek/smartprep/internal/ui/layout"
	"github.com/abhisek/smartprep/internal/ui/theme"
)

// calculatingPause is how long the scoring screen shows before the result.
const calculatingPause = 1500 * time.Millisecond

// FullScreen runs the combined interview assessment: a mixed quiz, then a
// coding problem in the workspace.
type FullScreen struct {
	deps  *screens.Deps
	full  *asmt.Full
	timer timer.Countdown

	loadToken  uint64
	scoreToken uint64

	choice    components.MultiChoice
	workspace *workspace.Model

	confirmQuit bool
	finished    bool
}

var _ screen.Screen = (*FullScreen)(nil)
var _ screen.KeyHintProvider = (*FullScreen)(nil)

// NewFull creates a FullScreen.
func NewFull(deps *screens.Deps) *FullScreen {
	return &FullScreen{deps: deps, full: asmt.NewFull()}
}

func (f *FullScreen) Title() string {
	return content.ComprehensiveTopic
}

func (f *FullScreen) Init() tea.Cmd {
	f.loadToken = screens.NextToken()
	token, gen := f.loadToken, f.deps.Generator
	n, topic := f.deps.MixedQuestions, f.deps.FullChallenge
	return func() tea.Msg {
		return fullLoadedMsg{token: token, load: asmt.LoadFull(context.Background(), gen, n, topic)}
	}
}

func (f *FullScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case fullLoadedMsg:
		if msg.token != f.loadToken {
			return f, nil
		}
		if msg.load.QuestionsErr != nil {
			f.deps.Log().Warn("mixed question generation failed, using placeholder", zap.Error(msg.load.QuestionsErr))
		}
		if msg.load.ChallengeErr != nil {
			f.deps.Log().Warn("challenge generation failed, using fallback", zap.Error(msg.load.ChallengeErr))
		}
		f.full.Loaded(msg.load, f.deps.FullChallenge)
		f.nextChoice()
		f.timer.Start(f.deps.QuizTime)
		return f, timer.TickCmd(f.timer.Generation())

	case timer.TickMsg:
		if msg.Gen != f.timer.Generation() || f.finished {
			return f, nil
		}
		if f.timer.Tick() {
			return f, f.expire()
		}
		return f, timer.TickCmd(msg.Gen)

	case workspace.SolvedMsg:
		if f.workspace == nil || msg.Token != f.workspace.ID() {
			return f, nil
		}
		f.full.CodingSucceeded()
		return f, f.calculate()

	case workspace.CancelledMsg:
		if f.workspace == nil || msg.Token != f.workspace.ID() {
			return f, nil
		}
		f.full.CodingSkipped()
		return f, f.calculate()

	case scoredMsg:
		if msg.token != f.scoreToken {
			return f, nil
		}
		return f, f.finish()

	case tea.KeyMsg:
		return f, f.handleKey(msg)
	}

	if f.full.State() == asmt.FullCoding && f.workspace != nil {
		return f, f.workspace.Update(msg)
	}
	return f, nil
}

// expire moves the quiz on to the transition stage, or skips the coding
// stage.
func (f *FullScreen) expire() tea.Cmd {
	f.confirmQuit = false
	if f.full.State() == asmt.FullCoding && f.workspace != nil && f.workspace.Solved() {
		f.full.CodingSucceeded()
	} else {
		f.full.Expire()
	}
	switch f.full.State() {
	case asmt.FullTransition:
		f.timer.SetActive(false)
	case asmt.FullCalculating:
		return f.calculate()
	}
	return nil
}

func (f *FullScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if f.finished {
		return nil
	}
	state := f.full.State()

	if state == asmt.FullCoding {
		return f.workspace.Update(msg)
	}

	if f.confirmQuit {
		switch msg.String() {
		case "y", "Y":
			f.finished = true
			f.timer.SetActive(false)
			return screens.Dispatch(session.Navigate{View: session.ViewDashboard})
		case "n", "N", "esc":
			f.confirmQuit = false
		}
		return nil
	}
	if msg.String() == "esc" && (state == asmt.FullMCQ || state == asmt.FullTransition) {
		f.confirmQuit = true
		return nil
	}

	switch state {
	case asmt.FullMCQ:
		f.choice, _ = f.choice.Update(msg)
		if !f.choice.Answered() {
			return nil
		}
		if f.full.Answer(f.choice.Choice()) {
			f.timer.SetActive(false)
			return nil
		}
		f.nextChoice()
	case asmt.FullTransition:
		if msg.String() == "enter" {
			return f.beginCoding()
		}
	}
	return nil
}

func (f *FullScreen) nextChoice() {
	if q, ok := f.full.Current(); ok {
		f.choice = components.NewMultiChoice(q.Text, q.Options)
	}
}

func (f *FullScreen) beginCoding() tea.Cmd {
	if !f.full.BeginCoding() {
		return nil
	}
	f.workspace = workspace.New(f.deps, f.full.Challenge())
	f.workspace.Clock = f.timer.Format
	f.timer.Start(f.deps.CodingTime)
	return timer.TickCmd(f.timer.Generation())
}

// calculate pauses on the scoring screen before finalizing.
func (f *FullScreen) calculate() tea.Cmd {
	if f.full.State() != asmt.FullCalculating || f.scoreToken != 0 {
		return nil
	}
	f.timer.SetActive(false)
	f.scoreToken = screens.NextToken()
	token := f.scoreToken
	return tea.Tick(calculatingPause, func(time.Time) tea.Msg { return scoredMsg{token: token} })
}

// finish scores the assessment, records it and hands the result to the
// session.
func (f *FullScreen) finish() tea.Cmd {
	r := f.full.Finalize()
	if f.finished || r == nil {
		return nil
	}
	f.finished = true

	result, user := *r, f.deps.State().User
	events, logger := f.deps.Events, f.deps.Log()
	return func() tea.Msg {
		if events != nil {
			if _, err := asmt.Record(context.Background(), events, user, content.ComprehensiveTopic, asmt.KindFull, result); err != nil {
				logger.Warn("failed to record assessment", zap.Error(err))
			}
		}
		return screens.ActionMsg{Action: session.CompleteAssessment{Result: result}}
	}
}

func (f *FullScreen) View(width, height int) string {
	if f.confirmQuit {
		return renderQuitConfirm(width, height)
	}
	switch f.full.State() {
	case asmt.FullLoading:
		return screens.RenderLoading(width, height, "Preparing your interview: aptitude, core CS and a coding round...")
	case asmt.FullMCQ:
		q, ok := f.full.Current()
		if !ok {
			return ""
		}
		return renderQuestion(q, f.choice, f.full.Index(), len(f.full.Questions()), &f.timer, width, height)
	case asmt.FullTransition:
		return renderTransition(f.full, width, height)
	case asmt.FullCoding:
		return f.workspace.View(width, height)
	}
	return screens.RenderLoading(width, height, "Calculating your results...")
}

func renderTransition(full *asmt.Full, width, height int) string {
	answered := len(full.Answers())
	total := len(full.Questions())

	lines := []string{
		theme.Heading.Render("Part 1 complete"),
		"",
		lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("You answered " + screens.Plural(answered, "question") + " of " + screens.Plural(total, "question") + "."),
		lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("Next: one coding problem in the workspace. Solving it adds " + screens.Plural(asmt.CodingBonus, "point") + "."),
		"",
		components.Button("Enter", "Start coding round", true),
	}
	return components.Center(theme.Card.Render(strings.Join(lines, "\n")), width, height)
}

func (f *FullScreen) KeyHints() []layout.KeyHint {
	if f.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch f.full.State() {
	case asmt.FullMCQ:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Answer"},
			{Key: "A-D", Description: "Quick answer"},
			{Key: "Esc", Description: "Leave"},
		}
	case asmt.FullTransition:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start coding"},
			{Key: "Esc", Description: "Leave"},
		}
	case asmt.FullCoding:
		hints := f.workspace.KeyHints()
		for i := range hints {
			if hints[i].Key == "Esc" {
				hints[i].Description = "Skip coding"
			}
		}
		return hints
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}
