package timetable

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	rmap "github.com/abhisek/smartprep/internal/roadmap"
	"github.com/abhisek/smartprep/internal/screen"
	"github.com/abhisek/smartprep/internal/screens"
	"github.com/abhisek/smartprep/internal/session"
	"github.com/abhisek/smartprep/internal/ui/components"
	"github.com/abhisek/smartprep/internal/ui/layout"
	"github.com/abhisek/smartprep/internal/ui/theme"
)

// TimetableScreen lays the roadmap out over the coming week.
type TimetableScreen struct {
	deps   *screens.Deps
	cursor int
}

var _ screen.Screen = (*TimetableScreen)(nil)
var _ screen.KeyHintProvider = (*TimetableScreen)(nil)

// New creates a TimetableScreen.
func New(deps *screens.Deps) *TimetableScreen {
	return &TimetableScreen{deps: deps}
}

func (s *TimetableScreen) Init() tea.Cmd {
	return nil
}

func (s *TimetableScreen) Title() string {
	return "Timetable"
}

func (s *TimetableScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Day"},
		{Key: "Esc", Description: "Roadmap"},
		{Key: "D", Description: "Dashboard"},
	}
}

func (s *TimetableScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < 6 {
			s.cursor++
		}
	case "esc":
		return s, screens.Dispatch(session.Navigate{View: session.ViewRoadmap})
	case "d":
		return s, screens.Dispatch(session.Navigate{View: session.ViewDashboard})
	}
	return s, nil
}

func (s *TimetableScreen) View(width, height int) string {
	st := s.deps.State()
	if st.Roadmap == nil {
		return screens.RenderLoading(width, height, "No roadmap yet.")
	}
	slots := rmap.Week(st.Roadmap, s.deps.Today())
	cw := components.ContentWidth(width)

	lines := make([]string, 0, len(slots))
	for i, slot := range slots {
		lines = append(lines, renderSlot(slot, i == s.cursor, i == 0, cw))
	}

	detail := renderTasks(slots[s.cursor], st.Completed, cw)
	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.Heading.Render("Your week"),
		"",
		strings.Join(lines, "\n"),
		"",
		detail,
	)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func renderSlot(slot rmap.Slot, selected, today bool, cw int) string {
	date := slot.Date.Format("Mon Jan 02")
	if today {
		date += " (today)"
	}
	dateStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(20)
	if selected {
		dateStyle = dateStyle.Foreground(theme.Primary).Bold(true)
	}

	label := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("Free day")
	if slot.Day != nil {
		label = lipgloss.NewStyle().Foreground(theme.Text).
			Render(fmt.Sprintf("Day %d: %s", slot.Day.Day, slot.Day.Topic))
	}

	prefix := "  "
	if selected {
		prefix = theme.Selected.Render("▸ ")
	}
	return lipgloss.NewStyle().MaxWidth(cw).Render(prefix + dateStyle.Render(date) + label)
}

// renderTasks lists the selected day's tasks with their completion marks.
func renderTasks(slot rmap.Slot, done rmap.Completion, cw int) string {
	if slot.Day == nil {
		return theme.Hint.Render("Nothing planned. Revise earlier days or rest.")
	}
	var b strings.Builder
	for i, t := range slot.Day.Tasks {
		check := "[ ]"
		title := t.Title
		if done.Has(rmap.TaskID(slot.Day.Day, i)) {
			check = theme.Correct.Render("[✓]")
			title = theme.Done.Render(title)
		}
		fmt.Fprintf(&b, "%s %s %s\n", check, title,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("· "+t.Duration))
	}
	if len(slot.Day.Tasks) == 0 {
		b.WriteString(theme.Hint.Render("No tasks for this day."))
	}
	return theme.Card.Width(cw).Render(strings.TrimRight(b.String(), "\n"))
}
