// Package screen defines what the router stacks.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/smartprep/internal/ui/layout"
)

// Screen is one page of the app. Screens draw only their body; the app
// adds the header and footer around it.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View draws the body into width x height cells.
	View(width, height int) string

	// Title is the screen's breadcrumb entry. Empty leaves it out.
	Title() string
}

// KeyHintProvider is implemented by screens whose footer differs from the
// default "Ctrl+C Quit".
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
