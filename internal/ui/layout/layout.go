// Package layout draws the chrome around the active screen: a header
// with the breadcrumb, signed-in user and streak, and a footer of key
// hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartprep/internal/ui/theme"
)

// The quiz card and the code editor need at least this much room.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one "Key Description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("SmartPrep needs a %d x %d terminal.\n\nCurrent size: %d x %d\nResize to continue.",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg))
}

// Header is the top bar. An empty User hides the user and streak, which
// is how the login screen looks.
type Header struct {
	Breadcrumb []string
	User       string
	Streak     int
}

func (h Header) Render(width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("SmartPrep")

	crumbs := make([]string, len(h.Breadcrumb))
	for i, c := range h.Breadcrumb {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i == len(h.Breadcrumb)-1 {
			style = lipgloss.NewStyle().Foreground(theme.Text)
		}
		crumbs[i] = style.Render(c)
	}
	left := brand
	if len(crumbs) > 0 {
		left += theme.Hint.Render("  ·  ") + strings.Join(crumbs, theme.Hint.Render(" › "))
	}

	right := ""
	if h.User != "" {
		unit := "days"
		if h.Streak == 1 {
			unit = "day"
		}
		right = lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.User) + "   " +
			lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("🔥 %d %s", h.Streak, unit))
	}

	return bar(spread(left, right, width-4), width)
}

// RenderFooter lays hints out left to right and drops the ones that do not
// fit rather than wrapping.
func RenderFooter(hints []KeyHint, width int) string {
	inner := width - 4
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	var line string
	for _, h := range hints {
		part := key.Render(h.Key) + " " + desc.Render(h.Description)
		if line != "" {
			part = "   " + part
		}
		if lipgloss.Width(line+part) > inner {
			break
		}
		line += part
	}
	return bar(line, width)
}

// RenderFrame stacks header, body and footer, padding the body so the
// footer stays on the last rows.
func RenderFrame(header, body, footer string, width, height int) string {
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body = lipgloss.NewStyle().Width(width).Height(bodyHeight).MaxHeight(bodyHeight).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// spread puts left and right at the edges of a line of the given width.
func spread(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}
