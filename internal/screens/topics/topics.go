package topics

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartprep/internal/screen"
	"github.com/abhisek/smartprep/internal/screens"
	"github.com/abhisek/smartprep/internal/session"
	"github.com/abhisek/smartprep/internal/ui/components"
	"github.com/abhisek/smartprep/internal/ui/layout"
	"github.com/abhisek/smartprep/internal/ui/theme"
)

const customLabel = "Something else..."

// TopicsScreen picks the language or framework for a coding assessment.
type TopicsScreen struct {
	menu      components.Menu
	input     components.TextInput
	custom    bool
	submitted bool
}

var _ screen.Screen = (*TopicsScreen)(nil)
var _ screen.KeyHintProvider = (*TopicsScreen)(nil)

// New creates a TopicsScreen.
func New() *TopicsScreen {
	t := &TopicsScreen{
		input: components.NewTextInput("Topic to be assessed on", "e.g. Go, Rust, System Design", 48),
	}
	t.input.Validate = components.Required("Enter a topic or press Esc.")
	var items []components.MenuItem
	for _, topic := range session.CodingTopics {
		items = append(items, components.MenuItem{
			Label:  topic,
			Action: func() tea.Cmd { return t.choose(topic) },
		})
	}
	items = append(items, components.MenuItem{
		Label: customLabel,
		Action: func() tea.Cmd {
			t.custom = true
			return t.input.Init()
		},
	})
	t.menu = components.NewMenu(items)
	return t
}

func (t *TopicsScreen) choose(topic string) tea.Cmd {
	if t.submitted {
		return nil
	}
	t.submitted = true
	return screens.Dispatch(session.SelectTopic{Topic: topic})
}

func (t *TopicsScreen) Init() tea.Cmd {
	return nil
}

func (t *TopicsScreen) Title() string {
	return "Choose a Topic"
}

func (t *TopicsScreen) KeyHints() []layout.KeyHint {
	if t.custom {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back to list"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Dashboard"},
	}
}

func (t *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			if t.custom {
				t.custom = false
				return t, nil
			}
			return t, screens.Dispatch(session.Navigate{View: session.ViewDashboard})
		case "enter":
			if t.custom {
				topic, ok := t.input.Submit()
				if !ok {
					return t, nil
				}
				return t, t.choose(topic)
			}
		}
	}

	var cmd tea.Cmd
	if t.custom {
		t.input, cmd = t.input.Update(msg)
	} else {
		t.menu, cmd = t.menu.Update(msg)
	}
	return t, cmd
}

func (t *TopicsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	heading := theme.Heading.Render("What do you want to be assessed on?")
	sub := theme.Hint.Render("Coding topics get a timed problem with test runs and AI review.")

	body := t.menu.View()
	if t.custom {
		body = t.input.View()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		heading, sub, "", components.Panel(body, cw))
	return components.Center(content, width, height)
}
