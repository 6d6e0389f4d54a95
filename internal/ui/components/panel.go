package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartprep/internal/ui/theme"
)

// ContentWidth returns the inner width used for centered panels so stacked
// boxes line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Center places content in the middle of the given area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Panel wraps content in a rounded card at content width cw.
func Panel(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(1, 2).
		Render(content)
}

// Tile renders a selectable card with a title and one line of detail.
func Tile(title, detail string, selected bool, width int) string {
	border := theme.Border
	titleStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if selected {
		border = theme.Primary
		titleStyle = titleStyle.Foreground(theme.Primary)
		title = "▸ " + title
	}
	body := titleStyle.Render(title)
	if detail != "" {
		body += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(detail)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width).
		Padding(0, 1).
		Render(body)
}
