package roadmap

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/smartprep/internal/content"
	rmap "github.com/abhisek/smartprep/internal/roadmap"
	"github.com/abhisek/smartprep/internal/router"
	"github.com/abhisek/smartprep/internal/screen"
	"github.com/abhisek/smartprep/internal/screens"
	"github.com/abhisek/smartprep/internal/screens/workspace"
	"github.com/abhisek/smartprep/internal/session"
	"github.com/abhisek/smartprep/internal/ui/components"
	"github.com/abhisek/smartprep/internal/ui/layout"
	"github.com/abhisek/smartprep/internal/ui/theme"
)

type planMsg struct {
	token   uint64
	roadmap *rmap.Roadmap
	err     error
}

// row is one selectable line: a day header, or a task of the expanded day.
type row struct {
	day  int // index into Days
	task int // -1 for the day header
}

// RoadmapScreen shows the study plan, generating it on first entry.
type RoadmapScreen struct {
	deps     *screens.Deps
	expander rmap.Expander
	cursor   int
	token    uint64
	failed   bool
}

var _ screen.Screen = (*RoadmapScreen)(nil)
var _ screen.KeyHintProvider = (*RoadmapScreen)(nil)

// New creates a RoadmapScreen.
func New(deps *screens.Deps) *RoadmapScreen {
	return &RoadmapScreen{deps: deps, expander: rmap.NewExpander()}
}

func (s *RoadmapScreen) Title() string {
	return "Roadmap"
}

func (s *RoadmapScreen) Init() tea.Cmd {
	if s.deps.State().Roadmap != nil {
		return nil
	}
	return s.generate()
}

// generate requests a plan for the session's topic, level and weak areas.
func (s *RoadmapScreen) generate() tea.Cmd {
	st := s.deps.State()
	s.failed = false
	s.token = screens.NextToken()

	var weak []string
	if st.Result != nil {
		weak = st.Result.WeakAreas
	}
	token, planner, topic, level := s.token, s.deps.Planner, st.Topic, st.Level
	if topic == "" {
		topic = content.ComprehensiveTopic
	}
	return func() tea.Msg {
		rm, err := planner.Plan(context.Background(), topic, level, weak)
		return planMsg{token: token, roadmap: rm, err: err}
	}
}

func (s *RoadmapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case planMsg:
		if msg.token != s.token {
			return s, nil
		}
		if msg.err != nil || msg.roadmap == nil {
			s.failed = true
			s.deps.Log().Warn("roadmap generation failed", zap.Error(msg.err))
			return s, nil
		}
		return s, screens.Dispatch(session.SaveRoadmap{Roadmap: msg.roadmap})

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *RoadmapScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "esc" {
		return screens.Dispatch(session.Navigate{View: session.ViewDashboard})
	}

	rm := s.deps.State().Roadmap
	if rm == nil {
		if key == "r" && s.failed {
			return s.generate()
		}
		return nil
	}

	rows := s.rows(rm)
	if len(rows) == 0 {
		return nil
	}
	if s.cursor >= len(rows) {
		s.cursor = len(rows) - 1
	}

	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(rows)-1 {
			s.cursor++
		}
	case "t":
		return screens.Dispatch(session.Navigate{View: session.ViewTimetable})
	case "space", " ":
		r := rows[s.cursor]
		if r.task >= 0 {
			return screens.Dispatch(session.ToggleTask{ID: s.taskID(rm, r)})
		}
		s.toggleDay(rm, r.day)
	case "enter":
		r := rows[s.cursor]
		if r.task < 0 {
			s.toggleDay(rm, r.day)
			return nil
		}
		task := rm.Days[r.day].Tasks[r.task]
		if task.Type == content.TaskCoding && task.Challenge != nil {
			ws := workspace.NewScreen(s.deps, s.taskID(rm, r), task.Challenge)
			return func() tea.Msg { return router.PushScreenMsg{Screen: ws} }
		}
		return screens.Dispatch(session.ToggleTask{ID: s.taskID(rm, r)})
	}
	return nil
}

// toggleDay expands or collapses a day and keeps the cursor on its header.
func (s *RoadmapScreen) toggleDay(rm *rmap.Roadmap, day int) {
	s.expander.Toggle(rm.Days[day].Day)
	for i, r := range s.rows(rm) {
		if r.day == day && r.task < 0 {
			s.cursor = i
			return
		}
	}
}

func (s *RoadmapScreen) taskID(rm *rmap.Roadmap, r row) string {
	return rmap.TaskID(rm.Days[r.day].Day, r.task)
}

func (s *RoadmapScreen) rows(rm *rmap.Roadmap) []row {
	var rows []row
	for i, d := range rm.Days {
		rows = append(rows, row{day: i, task: -1})
		if s.expander.Expanded(d.Day) {
			for j := range d.Tasks {
				rows = append(rows, row{day: i, task: j})
			}
		}
	}
	return rows
}

func (s *RoadmapScreen) View(width, height int) string {
	st := s.deps.State()
	rm := st.Roadmap
	switch {
	case rm == nil && s.failed:
		return screens.RenderError(width, height, "Error loading roadmap.", "Press R to try again or Esc for the dashboard.")
	case rm == nil:
		return screens.RenderLoading(width, height, "Building your personalised roadmap...")
	}

	cw := components.ContentWidth(width)
	total := rm.TotalTasks()
	done := rmap.CompletedIn(rm, st.Completed)

	var head strings.Builder
	head.WriteString(theme.Heading.Render(rm.Title))
	head.WriteString("\n")
	ratio := 0.0
	if total > 0 {
		ratio = float64(done) / float64(total)
	}
	head.WriteString(components.NewProgressBar(fmt.Sprintf("%d/%d tasks", done, total), ratio, true, cw).View())

	rows := s.rows(rm)
	if s.cursor >= len(rows) {
		s.cursor = len(rows) - 1
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = s.renderRow(rm, st.Completed, r, i == s.cursor, cw)
	}

	detail := s.renderDetail(rm, rows, cw)
	listHeight := height - lipgloss.Height(head.String()) - lipgloss.Height(detail) - 3
	list := strings.Join(window(lines, s.cursor, listHeight), "\n")

	body := lipgloss.JoinVertical(lipgloss.Left, head.String(), "", list, "", detail)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func (s *RoadmapScreen) renderRow(rm *rmap.Roadmap, done rmap.Completion, r row, selected bool, cw int) string {
	d := rm.Days[r.day]
	if r.task < 0 {
		arrow := "▸"
		if s.expander.Expanded(d.Day) {
			arrow = "▾"
		}
		pct := rmap.DayPercent(d, done)
		label := fmt.Sprintf("%s Day %d: %s", arrow, d.Day, d.Topic)
		style := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
		if selected {
			style = style.Foreground(theme.Primary)
		}
		pctStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
		if pct == 100 {
			pctStyle = pctStyle.Foreground(theme.Success)
		}
		right := pctStyle.Render(fmt.Sprintf("%3d%%", pct))
		gap := cw - lipgloss.Width(label) - lipgloss.Width(right)
		if gap < 1 {
			gap = 1
		}
		return style.Render(label) + strings.Repeat(" ", gap) + right
	}

	t := d.Tasks[r.task]
	id := rmap.TaskID(d.Day, r.task)
	check := "[ ]"
	title := lipgloss.NewStyle().Foreground(theme.Text).Render(t.Title)
	if done.Has(id) {
		check = theme.Correct.Render("[✓]")
		title = theme.Done.Render(t.Title)
	}
	prefix := "    "
	if selected {
		prefix = theme.Selected.Render("  ▸ ")
	}
	badge := theme.TaskBadge(string(t.Type)).Render(strings.ToUpper(string(t.Type)))
	meta := lipgloss.NewStyle().Foreground(theme.TextDim).Render(" · " + t.Duration)
	return prefix + check + " " + badge + " " + title + meta
}

// renderDetail describes the selected row: day summary or task resource.
func (s *RoadmapScreen) renderDetail(rm *rmap.Roadmap, rows []row, cw int) string {
	if s.cursor < 0 || s.cursor >= len(rows) {
		return ""
	}
	r := rows[s.cursor]
	d := rm.Days[r.day]
	wrap := lipgloss.NewStyle().Width(cw).Foreground(theme.TextDim)
	if r.task < 0 {
		return wrap.Render(d.Summary)
	}
	t := d.Tasks[r.task]
	text := "Resource: " + rmap.ResourceURL(t)
	if t.Platform != "" {
		text = t.Platform + " · " + text
	}
	if t.Type == content.TaskCoding && t.Challenge != nil {
		text += "\nPress Enter to solve it in the workspace."
	}
	return wrap.Render(text)
}

// window returns at most n lines around the cursor.
func window(lines []string, cursor, n int) []string {
	if n <= 0 || len(lines) <= n {
		return lines
	}
	start := cursor - n/2
	if start < 0 {
		start = 0
	}
	if start+n > len(lines) {
		start = len(lines) - n
	}
	return lines[start : start+n]
}

func (s *RoadmapScreen) KeyHints() []layout.KeyHint {
	if s.deps.State().Roadmap == nil {
		if s.failed {
			return []layout.KeyHint{
				{Key: "R", Description: "Retry"},
				{Key: "Esc", Description: "Dashboard"},
			}
		}
		return []layout.KeyHint{{Key: "Esc", Description: "Dashboard"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Space", Description: "Done"},
		{Key: "T", Description: "Timetable"},
		{Key: "Esc", Description: "Dashboard"},
	}
}
