package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/smartprep/internal/content"
	"github.com/abhisek/smartprep/internal/roadmap"
	"github.com/abhisek/smartprep/internal/router"
	"github.com/abhisek/smartprep/internal/screen"
	"github.com/abhisek/smartprep/internal/screens"
	"github.com/abhisek/smartprep/internal/screens/assessment"
	"github.com/abhisek/smartprep/internal/screens/dashboard"
	"github.com/abhisek/smartprep/internal/screens/login"
	"github.com/abhisek/smartprep/internal/screens/result"
	roadmapscreen "github.com/abhisek/smartprep/internal/screens/roadmap"
	"github.com/abhisek/smartprep/internal/screens/timetable"
	"github.com/abhisek/smartprep/internal/screens/topics"
	"github.com/abhisek/smartprep/internal/session"
	"github.com/abhisek/smartprep/internal/store"
	"github.com/abhisek/smartprep/internal/streak"
	"github.com/abhisek/smartprep/internal/ui/layout"
)

// Options holds the dependencies built by the CLI.
type Options struct {
	Generator content.Generator
	Runner    content.CodeRunner
	Planner   *roadmap.Planner
	Events    store.EventRepo
	Logger    *zap.Logger
	Streak    streak.State
	Now       func() time.Time

	QuizTime       time.Duration
	CodingTime     time.Duration
	Questions      int
	MixedQuestions int
	FullChallenge  string
}

// AppModel is the root Bubble Tea model. It owns the session and swaps the
// base screen whenever the session's view changes.
type AppModel struct {
	router *router.Router
	state  session.State
	deps   *screens.Deps
	log    *zap.Logger
	width  int
	height int
}

// New creates an AppModel on the login screen.
func New(opts Options) *AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &AppModel{
		state: session.New(opts.Streak.Count, opts.Streak.LastActive),
		log:   logger,
	}
	m.deps = &screens.Deps{
		Generator:      opts.Generator,
		Runner:         opts.Runner,
		Planner:        opts.Planner,
		Events:         opts.Events,
		Logger:         logger,
		QuizTime:       opts.QuizTime,
		CodingTime:     opts.CodingTime,
		Questions:      opts.Questions,
		MixedQuestions: opts.MixedQuestions,
		FullChallenge:  opts.FullChallenge,
		State:          func() session.State { return m.state },
		Now:            opts.Now,
	}
	m.router = router.New(m.screenFor(m.state.View))
	return m
}

// State returns the current session.
func (m *AppModel) State() session.State {
	return m.state
}

func (m *AppModel) screenFor(v session.View) screen.Screen {
	switch v {
	case session.ViewDashboard:
		return dashboard.New(m.deps)
	case session.ViewTopicSelection:
		return topics.New()
	case session.ViewAssessment:
		return assessment.New(m.deps)
	case session.ViewFullAssessment:
		return assessment.NewFull(m.deps)
	case session.ViewAssessmentResult:
		return result.New(m.deps)
	case session.ViewRoadmap:
		return roadmapscreen.New(m.deps)
	case session.ViewTimetable:
		return timetable.New(m.deps)
	}
	return login.New()
}

func (m *AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case screens.ActionMsg:
		return m, m.apply(msg.Action)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// apply runs a session action. A view change replaces the whole screen
// stack, so overlays never outlive the view they were opened from.
func (m *AppModel) apply(a session.Action) tea.Cmd {
	prev := m.state
	m.state = session.Apply(m.state, a)
	if m.state.View == prev.View {
		return nil
	}
	m.log.Info("view changed",
		zap.Stringer("from", prev.View),
		zap.Stringer("to", m.state.View),
		zap.String("topic", m.state.Topic),
	)
	return m.router.Reset(m.screenFor(m.state.View))
}

func (m *AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the header, the active screen and its key hints.
func (m *AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.Header{
		Breadcrumb: m.router.Breadcrumb(),
		User:       m.state.User,
		Streak:     m.state.Streak,
	}.Render(m.width)

	footerHints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	body := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, body, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
