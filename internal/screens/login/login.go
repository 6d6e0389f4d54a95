package login

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartprep/internal/screen"
	"github.com/abhisek/smartprep/internal/screens"
	"github.com/abhisek/smartprep/internal/session"
	"github.com/abhisek/smartprep/internal/ui/components"
	"github.com/abhisek/smartprep/internal/ui/layout"
	"github.com/abhisek/smartprep/internal/ui/theme"
)

const maxNameLen = 32

// LoginScreen asks for a display name. There is no authentication; the
// name only labels the session and its history.
type LoginScreen struct {
	input     components.TextInput
	submitted bool
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen.
func New() *LoginScreen {
	input := components.NewTextInput("What should we call you?", "your name", maxNameLen)
	input.Validate = components.Required("Please enter a name to continue.")
	return &LoginScreen{input: input}
}

func (l *LoginScreen) Title() string {
	return "Welcome"
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start preparing"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (l *LoginScreen) Init() tea.Cmd {
	return l.input.Init()
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		if l.submitted {
			return l, nil
		}
		name, ok := l.input.Submit()
		if !ok {
			return l, nil
		}
		l.submitted = true
		return l, screens.Dispatch(session.Login{User: name})
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

func (l *LoginScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	tagline := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("Assess yourself. Get a plan. Show up every day.")

	sections := []string{
		RenderBanner(width),
		"",
		tagline,
		"",
		components.Panel(l.input.View(), cw),
	}

	return components.Center(strings.Join(sections, "\n"), width, height)
}
