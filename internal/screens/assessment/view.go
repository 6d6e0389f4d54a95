package assessment

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	asmt "github.com/abhisek/smartprep/internal/assessment"
	"github.com/abhisek/smartprep/internal/content"
	"github.com/abhisek/smartprep/internal/screens"
	"github.com/abhisek/smartprep/internal/screens/workspace"
	"github.com/abhisek/smartprep/internal/timer"
	"github.com/abhisek/smartprep/internal/ui/components"
	"github.com/abhisek/smartprep/internal/ui/theme"
)

// lowTime is when the clock turns red.
const lowTime = time.Minute

func (s *AssessmentScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width, height)
	}
	switch s.engine.State() {
	case asmt.StateLoading:
		what := "questions"
		if s.engine.Coding {
			what = "a coding problem"
		}
		return screens.RenderLoading(width, height, fmt.Sprintf("Preparing %s on %s...", what, s.engine.Topic))
	case asmt.StateMCQ:
		return s.renderQuiz(width, height)
	case asmt.StateCoding:
		return s.renderCoding(width, height)
	}
	return screens.RenderLoading(width, height, "Scoring your answers...")
}

func (s *AssessmentScreen) renderQuiz(width, height int) string {
	q, ok := s.engine.Current()
	if !ok {
		return ""
	}
	return renderQuestion(q, s.choice, s.engine.Index(), len(s.engine.Questions()), &s.timer, width, height)
}

// renderQuestion renders the question card with position and clock above.
func renderQuestion(q content.Question, choice components.MultiChoice, idx, total int, clock *timer.Countdown, width, height int) string {
	cw := components.ContentWidth(width)

	info := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("Question %d of %d", idx+1, total))
	if q.Category != "" {
		info += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  · " + q.Category)
	}
	c := renderClock(clock)
	gap := cw - lipgloss.Width(info) - lipgloss.Width(c)
	if gap < 1 {
		gap = 1
	}
	header := info + strings.Repeat(" ", gap) + c

	bar := components.NewProgressBar("", float64(idx)/float64(total), false, cw)
	body := lipgloss.NewStyle().Width(cw - 6).Render(choice.View())

	card := lipgloss.JoinVertical(lipgloss.Left,
		header, bar.View(), "", components.Panel(body, cw))
	return components.Center(card, width, height)
}

func (s *AssessmentScreen) renderCoding(width, height int) string {
	left, right := workspace.SplitWidths(width)

	editorHeight := height - 5
	if editorHeight < 3 {
		editorHeight = 3
	}
	// The editor is sized here because only View knows the content area.
	if width != s.width || height != s.height {
		s.editor.SetSize(right-2, editorHeight)
		s.width, s.height = width, height
	}

	status := ""
	switch {
	case s.engine.Submitting():
		status = "Submitting for review..."
	case s.running:
		status = "Running tests..."
	}

	var lb strings.Builder
	lb.WriteString(workspace.RenderProblem(s.engine.Challenge(), left))
	lb.WriteString("\n\n")
	lb.WriteString(workspace.RenderConsole(s.tabs, s.engine.LastRun(), status, left))
	leftCol := lipgloss.NewStyle().Width(left).MaxHeight(height).Render(lb.String())

	rightCol := renderClock(&s.timer) + "\n" + s.editor.View()

	return lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "   ", rightCol)
}

func renderClock(c *timer.Countdown) string {
	style := theme.Timer
	if c.Remaining() <= lowTime {
		style = theme.TimerLow
	}
	return style.Render("⏱ " + c.Format())
}

func renderQuitConfirm(width, height int) string {
	body := theme.Heading.Render("Leave this assessment?") + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Your answers so far will not be scored.") + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Error).Render("[Y] Leave") + "    " +
		lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] Keep going")
	return components.Center(theme.Card.Render(body), width, height)
}
