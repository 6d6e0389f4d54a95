package result

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartprep/internal/assessment"
	"github.com/abhisek/smartprep/internal/screen"
	"github.com/abhisek/smartprep/internal/screens"
	"github.com/abhisek/smartprep/internal/session"
	"github.com/abhisek/smartprep/internal/ui/components"
	"github.com/abhisek/smartprep/internal/ui/layout"
	"github.com/abhisek/smartprep/internal/ui/theme"
)

// ResultScreen shows the outcome of the last assessment.
type ResultScreen struct {
	deps *screens.Deps
	done bool
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen.
func New(deps *screens.Deps) *ResultScreen {
	return &ResultScreen{deps: deps}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Assessment Result"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Build my roadmap"},
		{Key: "Esc", Description: "Dashboard"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || s.done {
		return s, nil
	}
	switch kmsg.String() {
	case "enter":
		s.done = true
		return s, screens.Dispatch(session.ContinueToRoadmap{})
	case "esc":
		s.done = true
		return s, screens.Dispatch(session.Navigate{View: session.ViewDashboard})
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	st := s.deps.State()
	if st.Result == nil {
		return screens.RenderLoading(width, height, "No result yet.")
	}
	r := *st.Result
	cw := components.ContentWidth(width)
	pct := assessment.RoundPercent(r)

	var b strings.Builder

	b.WriteString(theme.Heading.Render("Assessment complete: " + st.Topic))
	b.WriteString("\n\n")

	score := lipgloss.NewStyle().Foreground(levelColor(st.Level)).Bold(true).
		Render(fmt.Sprintf("%d / %d", r.Score, r.Total))
	b.WriteString(score + lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("   %d%%   ", pct)))
	b.WriteString(lipgloss.NewStyle().Foreground(levelColor(st.Level)).Bold(true).
		Render(string(st.Level)))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("", float64(pct)/100, false, cw-8).WithGrade()
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	b.WriteString(renderAreas("Focus areas", r.WeakAreas, theme.Warning))
	b.WriteString("\n")
	b.WriteString(renderAreas("Strengths", r.StrongAreas, theme.Success))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Your roadmap will be tailored to this level and your focus areas."))

	return components.Center(components.Panel(b.String(), cw), width, height)
}

func renderAreas(label string, areas []string, c color.Color) string {
	head := lipgloss.NewStyle().Foreground(theme.TextDim).Render(label + ": ")
	if len(areas) == 0 {
		return head + lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("none")
	}
	return head + lipgloss.NewStyle().Foreground(c).Render(strings.Join(areas, ", "))
}

func levelColor(l assessment.Level) color.Color {
	switch l {
	case assessment.Advanced:
		return theme.Success
	case assessment.Intermediate:
		return theme.Secondary
	default:
		return theme.Accent
	}
}
