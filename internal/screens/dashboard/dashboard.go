package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartprep/internal/router"
	"github.com/abhisek/smartprep/internal/screen"
	"github.com/abhisek/smartprep/internal/screens"
	"github.com/abhisek/smartprep/internal/screens/history"
	"github.com/abhisek/smartprep/internal/session"
	"github.com/abhisek/smartprep/internal/streak"
	"github.com/abhisek/smartprep/internal/ui/components"
	"github.com/abhisek/smartprep/internal/ui/layout"
	"github.com/abhisek/smartprep/internal/ui/theme"
)

// tileMinHeight is the content height needed to draw categories as tiles.
const tileMinHeight = 40

var categoryHints = map[string]string{
	session.CategoryAptitude:        "Quant, logical reasoning, verbal",
	session.CategoryCoding:          "Pick a language, solve a problem",
	session.CategoryCoreSubjects:    "OS, DBMS, networks, OOP",
	session.CategoryCommunication:   "Workplace scenarios and etiquette",
	session.CategoryGroupDiscussion: "Structuring arguments, moderating",
}

// DashboardScreen is the hub after login: readiness, streak and entry
// points into every flow.
type DashboardScreen struct {
	deps *screens.Deps
	menu components.Menu
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a DashboardScreen for the current session.
func New(deps *screens.Deps) *DashboardScreen {
	st := deps.State()
	noPlan := st.Roadmap == nil

	var items []components.MenuItem
	for _, c := range session.Categories {
		items = append(items, components.MenuItem{
			Label:  c,
			Hint:   categoryHints[c],
			Action: func() tea.Cmd { return screens.Dispatch(session.SelectCategory{Category: c}) },
		})
	}
	items = append(items,
		components.MenuItem{
			Label:  "Full Interview Assessment",
			Action: func() tea.Cmd { return screens.Dispatch(session.StartFullAssessment{}) },
		},
		components.MenuItem{
			Label:    "My Roadmap",
			Disabled: noPlan,
			Action:   func() tea.Cmd { return screens.Dispatch(session.Navigate{View: session.ViewRoadmap}) },
		},
		components.MenuItem{
			Label:    "Timetable",
			Disabled: noPlan,
			Action:   func() tea.Cmd { return screens.Dispatch(session.Navigate{View: session.ViewTimetable}) },
		},
		components.MenuItem{
			Label:    "History",
			Disabled: deps.Events == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(deps.Events, st.User)}
				}
			},
		},
		components.MenuItem{
			Label:  "Log out",
			Action: func() tea.Cmd { return screens.Dispatch(session.Logout{}) },
		},
	)

	return &DashboardScreen{deps: deps, menu: components.NewMenu(items)}
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DashboardScreen) View(width, height int) string {
	st := d.deps.State()
	cw := components.ContentWidth(width)
	compact := height < tileMinHeight

	var sections []string

	greeting := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("Hi %s, ready to practice?", st.User))
	sections = append(sections, greeting)

	sections = append(sections, renderStats(st, cw))
	sections = append(sections, renderMenu(d.menu, cw, compact))

	return components.Center(strings.Join(sections, "\n\n"), width, height)
}

// renderStats renders readiness, streak and task counts in one card.
func renderStats(st session.State, cw int) string {
	readiness := components.NewProgressBar("Readiness", float64(st.Readiness())/100, true, cw-8).WithGrade()

	streakStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	next := streak.NextMilestone(st.Streak)
	streakLine := streakStyle.Render("🔥 "+screens.Plural(st.Streak, "day")+" streak") +
		dim.Render(fmt.Sprintf("   next milestone: %d", next))

	tasksLine := dim.Render("No roadmap yet. Take an assessment to get one.")
	if st.Roadmap != nil {
		tasksLine = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(fmt.Sprintf("✓ %d / %d tasks done", st.CompletedCount(), st.Roadmap.TotalTasks()))
		if st.Topic != "" {
			tasksLine += dim.Render(fmt.Sprintf("   %s · %s", st.Topic, st.Level))
		}
	}

	lines := []string{readiness.View(), streakLine, tasksLine}
	if st.Result != nil {
		lines = append(lines, dim.Render(fmt.Sprintf("Last assessment: %d/%d", st.Result.Score, st.Result.Total)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Padding(0, 2).
		Render(strings.Join(lines, "\n"))
}

// renderMenu draws categories as tiles with their hint when there is
// room, and everything else as plain menu lines.
func renderMenu(menu components.Menu, cw int, compact bool) string {
	lines := make([]string, len(menu.Items))
	for i, item := range menu.Items {
		if item.Hint != "" && !compact {
			lines[i] = components.Tile(item.Label, item.Hint, i == menu.Selected, cw-2)
			continue
		}
		lines[i] = menu.Line(i)
	}
	return strings.Join(lines, "\n")
}
