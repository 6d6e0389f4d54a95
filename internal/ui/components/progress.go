package components

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartprep/internal/ui/theme"
)

// ProgressBar is a one-line bar for a ratio in [0, 1].
type ProgressBar struct {
	Label       string
	Ratio       float64
	ShowPercent bool
	Width       int

	// Graded colours the fill by score band instead of the neutral teal.
	Graded bool
}

func NewProgressBar(label string, ratio float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Ratio: ratio, ShowPercent: showPercent, Width: width}
}

// WithGrade returns a copy that colours its fill by score band.
func (p ProgressBar) WithGrade() ProgressBar {
	p.Graded = true
	return p
}

// GradeColor maps a ratio to the band colour used for scores and
// readiness: rose below 40%, amber below 70%, green above.
func GradeColor(ratio float64) lipgloss.Style {
	switch {
	case ratio < 0.4:
		return lipgloss.NewStyle().Foreground(theme.Error)
	case ratio < 0.7:
		return lipgloss.NewStyle().Foreground(theme.Warning)
	default:
		return lipgloss.NewStyle().Foreground(theme.Success)
	}
}

func (p ProgressBar) View() string {
	ratio := math.Max(0, math.Min(1, p.Ratio))

	var label, percent string
	if p.Label != "" {
		label = theme.Body.Render(p.Label) + "  "
	}
	if p.ShowPercent {
		percent = theme.Hint.Render(fmt.Sprintf(" %3d%%", int(math.Round(ratio*100))))
	}

	width := max(p.Width-lipgloss.Width(label)-lipgloss.Width(percent), 4)
	filled := int(math.Round(float64(width) * ratio))

	fill := lipgloss.NewStyle().Foreground(theme.Secondary)
	if p.Graded {
		fill = GradeColor(ratio)
	}
	track := lipgloss.NewStyle().Foreground(theme.Border)

	return label +
		fill.Render(strings.Repeat("█", filled)) +
		track.Render(strings.Repeat("░", width-filled)) +
		percent
}
