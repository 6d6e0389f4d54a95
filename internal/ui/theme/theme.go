// Package theme holds the SmartPrep palette and the shared text styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette. Indigo marks focus, teal marks information and the warm colours
// carry scores and time pressure.
var (
	Primary   = lipgloss.Color("#6366F1")
	Secondary = lipgloss.Color("#14B8A6")
	Accent    = lipgloss.Color("#F97316")
	Warning   = lipgloss.Color("#EAB308")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var (
	Heading    = fg(Text).Bold(true)
	Body       = fg(Text)
	Hint       = fg(TextDim).Italic(true)
	Mono       = fg(Secondary)
	Selected   = fg(Primary).Bold(true)
	Unselected = fg(Text)
	Correct    = fg(Success).Bold(true)
	Incorrect  = fg(Error).Bold(true)
	Done       = fg(TextDim).Strikethrough(true)

	// Timer is the countdown; TimerLow takes over in the last minute.
	Timer    = fg(Warning).Bold(true)
	TimerLow = fg(Error).Bold(true)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	ButtonActive   = lipgloss.NewStyle().Background(Primary).Foreground(Text).Bold(true).Padding(0, 2)
	ButtonInactive = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 2)
)

var taskColors = map[string]color.Color{
	"video":    Error,
	"reading":  Secondary,
	"coding":   Primary,
	"practice": Accent,
}

// TaskBadge styles the type label of a roadmap task. Unknown types are dim.
func TaskBadge(kind string) lipgloss.Style {
	c, ok := taskColors[kind]
	if !ok {
		c = TextDim
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}
