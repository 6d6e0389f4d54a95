// Package workspace is the coding editor shared by roadmap practice tasks
// and the coding stage of the full assessment.
package workspace

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/smartprep/internal/content"
	"github.com/abhisek/smartprep/internal/screens"
	"github.com/abhisek/smartprep/internal/ui/components"
	"github.com/abhisek/smartprep/internal/ui/layout"
	"github.com/abhisek/smartprep/internal/ui/theme"
)

// solvedDelay keeps the accepted verdict on screen before moving on.
const solvedDelay = 2 * time.Second

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

// SolvedMsg is sent solvedDelay after an accepted submission. Token is the
// ID of the workspace that produced it.
type SolvedMsg struct {
	Token uint64
}

// CancelledMsg is sent when the user closes the workspace before a
// submission was accepted.
type CancelledMsg struct {
	Token uint64
}

// Model is one editing session on a challenge.
type Model struct {
	deps      *screens.Deps
	id        uint64
	challenge *content.Challenge

	editor  components.CodeEditor
	tabs    components.Tabs
	console bool

	runToken   uint64
	evalToken  uint64
	running    bool
	evaluating bool
	solved     bool

	lastRun    *content.RunResult
	evaluation *content.Evaluation
	errText    string

	// Clock is shown above the editor when set.
	Clock func() string

	width, height int
}

// New opens c in a fresh editor seeded with its starter code.
func New(deps *screens.Deps, c *content.Challenge) *Model {
	return &Model{
		deps:      deps,
		id:        screens.NextToken(),
		challenge: c,
		editor:    components.NewCodeEditor(c.StarterCode, 60, 12),
		tabs:      CaseTabs(c),
	}
}

// ID identifies this workspace in SolvedMsg and CancelledMsg.
func (m *Model) ID() uint64 { return m.id }

// Code returns the editor contents.
func (m *Model) Code() string { return m.editor.Value() }

// Solved reports whether a submission was accepted.
func (m *Model) Solved() bool { return m.solved }

// Busy reports whether a run or review is in flight.
func (m *Model) Busy() bool { return m.running || m.evaluating }

// KeyHints lists the workspace bindings.
func (m *Model) KeyHints() []layout.KeyHint {
	if m.console {
		return []layout.KeyHint{
			{Key: "←→", Description: "Test case"},
			{Key: "Ctrl+T", Description: "Back to editor"},
		}
	}
	return []layout.KeyHint{
		{Key: "Ctrl+R", Description: "Run tests"},
		{Key: "Ctrl+S", Description: "Submit"},
		{Key: "Ctrl+T", Description: "Console"},
		{Key: "Esc", Description: "Close"},
	}
}

// Update handles input and provider responses.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case runMsg:
		if msg.token != m.runToken {
			return nil
		}
		m.running = false
		if msg.err != nil || msg.run == nil {
			m.deps.Log().Warn("test run failed", zap.String("challenge", m.challenge.Name), zap.Error(msg.err))
			msg.run = content.RunFailure(msg.err)
		}
		m.lastRun = msg.run
		if m.tabs.Selected >= len(m.tabs.Labels) {
			m.tabs.Selected = 0
		}
		return nil

	case evalMsg:
		if msg.token != m.evalToken {
			return nil
		}
		m.evaluating = false
		if msg.err != nil || msg.ev == nil {
			m.deps.Log().Warn("code review failed", zap.String("challenge", m.challenge.Name), zap.Error(msg.err))
			m.errText = "Could not review your code. Try again."
			return nil
		}
		m.evaluation = msg.ev
		if !msg.ev.Success {
			return nil
		}
		m.solved = true
		id := m.id
		return tea.Tick(solvedDelay, func(time.Time) tea.Msg { return SolvedMsg{Token: id} })

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		id := m.id
		if m.solved {
			// Closing during the wrap-up pause still counts as solved.
			return func() tea.Msg { return SolvedMsg{Token: id} }
		}
		return func() tea.Msg { return CancelledMsg{Token: id} }
	case "ctrl+t":
		m.console = !m.console
		return nil
	case "ctrl+r":
		return m.run()
	case "ctrl+s":
		return m.submit()
	}

	if m.solved {
		return nil
	}
	if m.console {
		m.tabs = m.tabs.Update(msg)
		return nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return cmd
}

func (m *Model) run() tea.Cmd {
	if m.Busy() || m.solved || m.deps.Runner == nil {
		return nil
	}
	m.running = true
	m.errText = ""
	m.runToken = screens.NextToken()
	token, runner, c, code := m.runToken, m.deps.Runner, m.challenge, m.editor.Value()
	return func() tea.Msg {
		r, err := runner.RunTests(context.Background(), c.Description, code, c.Language, c.TestCases)
		return runMsg{token: token, run: r, err: err}
	}
}

func (m *Model) submit() tea.Cmd {
	if m.Busy() || m.solved || m.deps.Runner == nil {
		return nil
	}
	m.evaluating = true
	m.errText = ""
	m.evalToken = screens.NextToken()
	token, runner, c, code := m.evalToken, m.deps.Runner, m.challenge, m.editor.Value()
	return func() tea.Msg {
		ev, err := runner.Evaluate(context.Background(), c.Description, code, c.Language)
		return evalMsg{token: token, ev: ev, err: err}
	}
}

// View renders problem and console on the left, the editor on the right.
func (m *Model) View(width, height int) string {
	left, right := SplitWidths(width)

	editorHeight := height - 4
	if m.Clock != nil {
		editorHeight--
	}
	if editorHeight < 3 {
		editorHeight = 3
	}
	// The editor is sized here because only View knows the content area.
	if width != m.width || height != m.height {
		m.editor.SetSize(right-2, editorHeight)
		m.width, m.height = width, height
	}

	status := ""
	switch {
	case m.running:
		status = "Running tests..."
	case m.evaluating:
		status = "Reviewing your solution..."
	}

	var lb strings.Builder
	lb.WriteString(RenderProblem(m.challenge, left))
	lb.WriteString("\n\n")
	lb.WriteString(RenderConsole(m.tabs, m.lastRun, status, left))
	if m.evaluation != nil {
		lb.WriteString("\n\n")
		lb.WriteString(RenderEvaluation(m.evaluation, left))
		if m.solved {
			lb.WriteString("\n")
			lb.WriteString(theme.Correct.Render("Solved! Wrapping up..."))
		}
	}
	if m.errText != "" {
		lb.WriteString("\n\n")
		lb.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(m.errText))
	}

	leftCol := lipgloss.NewStyle().Width(left).MaxHeight(height).Render(lb.String())

	rightCol := m.editor.View()
	if m.Clock != nil {
		rightCol = theme.Timer.Render("⏱ "+m.Clock()) + "\n" + rightCol
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "   ", rightCol)
}
