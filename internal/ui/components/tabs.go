package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartprep/internal/ui/theme"
)

// Tabs is a horizontal tab strip switched with left/right.
type Tabs struct {
	Labels   []string
	Selected int
}

// Update moves the selection.
func (t Tabs) Update(msg tea.Msg) Tabs {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(t.Labels) == 0 {
		return t
	}
	switch kmsg.String() {
	case "left", "h":
		if t.Selected > 0 {
			t.Selected--
		}
	case "right", "l":
		if t.Selected < len(t.Labels)-1 {
			t.Selected++
		}
	}
	return t
}

// View renders the strip; marks carries an optional status glyph per tab.
func (t Tabs) View(marks []string) string {
	parts := make([]string, len(t.Labels))
	for i, l := range t.Labels {
		if i < len(marks) && marks[i] != "" {
			l = marks[i] + " " + l
		}
		style := lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 1)
		if i == t.Selected {
			style = style.Foreground(theme.Text).Background(theme.Primary).Bold(true)
		}
		parts[i] = style.Render(l)
	}
	return strings.Join(parts, " ")
}
