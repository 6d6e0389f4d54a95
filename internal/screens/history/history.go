// Package history lists a user's past assessments with their focus areas.
package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartprep/internal/router"
	"github.com/abhisek/smartprep/internal/screen"
	"github.com/abhisek/smartprep/internal/store"
	"github.com/abhisek/smartprep/internal/ui/components"
	"github.com/abhisek/smartprep/internal/ui/layout"
	"github.com/abhisek/smartprep/internal/ui/theme"
)

const limit = 50

type loadedMsg struct {
	attempts []store.AssessmentEvent
	err      error
}

type HistoryScreen struct {
	events   store.EventRepo
	user     string
	attempts []store.AssessmentEvent
	table    table.Model
	details  bool
	loaded   bool
	err      error
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

func New(events store.EventRepo, user string) *HistoryScreen {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Topic", Width: 30},
			{Title: "Kind", Width: 7},
			{Title: "Score", Width: 7},
			{Title: "Level", Width: 13},
		}),
		table.WithFocused(true),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.Foreground(theme.Secondary).Bold(true).
		BorderStyle(lipgloss.NormalBorder()).BorderForeground(theme.Border).BorderBottom(true)
	st.Selected = st.Selected.Foreground(theme.Primary).Bold(true)
	t.SetStyles(st)

	return &HistoryScreen{events: events, user: user, table: t}
}

func (s *HistoryScreen) Init() tea.Cmd {
	events, user := s.events, s.user
	return func() tea.Msg {
		attempts, err := events.QueryAssessments(context.Background(),
			store.QueryOpts{Limit: limit, Username: user})
		return loadedMsg{attempts: attempts, err: err}
	}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Focus areas"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded, s.err = true, msg.err
		s.attempts = msg.attempts
		s.table.SetRows(rows(msg.attempts))
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			s.details = !s.details
			return s, nil
		}
		var cmd tea.Cmd
		s.table, cmd = s.table.Update(msg)
		return s, cmd
	}
	return s, nil
}

func rows(attempts []store.AssessmentEvent) []table.Row {
	out := make([]table.Row, len(attempts))
	for i, a := range attempts {
		out[i] = table.Row{
			a.Timestamp.Local().Format("Jan 02, 2006"),
			a.Topic,
			a.Kind,
			fmt.Sprintf("%d/%d", a.Score, a.Total),
			a.Level,
		}
	}
	return out
}

func (s *HistoryScreen) View(width, height int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	switch {
	case s.err != nil:
		return components.Center(lipgloss.NewStyle().Foreground(theme.Error).
			Render("Could not load history: "+s.err.Error()), width, height)
	case !s.loaded:
		return components.Center(dim.Render("Loading history..."), width, height)
	case len(s.attempts) == 0:
		return components.Center(dim.Italic(true).
			Render("No assessments yet. Pick a category on the dashboard to take one."), width, height)
	}

	detail := ""
	if s.details {
		detail = s.focusAreas(s.attempts[s.table.Cursor()])
	}
	s.table.SetWidth(min(width-4, 76))
	s.table.SetHeight(max(height-lipgloss.Height(detail)-4, 3))

	return components.Center(lipgloss.JoinVertical(lipgloss.Left, s.table.View(), detail), width, height)
}

func (s *HistoryScreen) focusAreas(a store.AssessmentEvent) string {
	list := func(areas []string) string {
		if len(areas) == 0 {
			return "none"
		}
		return strings.Join(areas, ", ")
	}
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(10)
	return "\n" + lipgloss.JoinVertical(lipgloss.Left,
		label.Render("Focus on")+lipgloss.NewStyle().Foreground(theme.Warning).Render(list(a.WeakAreas)),
		label.Render("Strong")+lipgloss.NewStyle().Foreground(theme.Success).Render(list(a.StrongAreas)),
	)
}
