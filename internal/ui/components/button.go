package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartprep/internal/ui/theme"
)

// Button renders a call to action labelled with the key that triggers it,
// e.g. "Enter  Start coding round". The owning screen handles the key.
func Button(key, label string, focused bool) string {
	style := theme.ButtonInactive
	if focused {
		style = theme.ButtonActive
	}
	keycap := lipgloss.NewStyle().Bold(true).Render(key)
	return style.Render(keycap + "  " + label)
}
