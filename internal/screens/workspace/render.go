package workspace

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartprep/internal/content"
	"github.com/abhisek/smartprep/internal/ui/components"
	"github.com/abhisek/smartprep/internal/ui/theme"
)

// RenderProblem renders the statement, constraints and sample cases of c
// wrapped to width.
func RenderProblem(c *content.Challenge, width int) string {
	if c == nil {
		return ""
	}
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(theme.Heading.Render(c.Name))
	if c.Language != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  · " + c.Language))
	}
	b.WriteString("\n\n")
	b.WriteString(wrap.Foreground(theme.Text).Render(c.Description))
	b.WriteString("\n")
	if c.Constraints != "" {
		b.WriteString("\n")
		b.WriteString(wrap.Foreground(theme.TextDim).Render("Constraints: " + c.Constraints))
		b.WriteString("\n")
	}
	for i, tc := range c.TestCases {
		if i == 2 {
			break
		}
		b.WriteString("\n")
		b.WriteString(theme.Mono.Render(fmt.Sprintf("Example %d: %s → %s", i+1, tc.Input, tc.Output)))
	}
	return b.String()
}

// CaseTabs builds one tab per test case of c.
func CaseTabs(c *content.Challenge) components.Tabs {
	var labels []string
	if c != nil {
		for i := range c.TestCases {
			labels = append(labels, fmt.Sprintf("Case %d", i+1))
		}
	}
	return components.Tabs{Labels: labels}
}

// RenderConsole renders the last test run with the selected case expanded.
// status, when set, replaces the run summary (e.g. while a request is in
// flight).
func RenderConsole(tabs components.Tabs, run *content.RunResult, status string, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(dim.Render("Console"))
	b.WriteString("\n")

	switch {
	case status != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render(status))
		return b.String()
	case run == nil:
		b.WriteString(dim.Italic(true).Render("Run your code to see results."))
		return b.String()
	}

	if run.Error != "" {
		b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.Error).Render(run.Error))
		b.WriteString("\n")
	} else if run.Passed {
		b.WriteString(theme.Correct.Render("All test cases passed"))
		b.WriteString("\n")
	} else {
		b.WriteString(theme.Incorrect.Render("Some test cases failed"))
		b.WriteString("\n")
	}

	if len(run.Results) == 0 {
		return b.String()
	}

	marks := make([]string, len(tabs.Labels))
	for i := range marks {
		if i < len(run.Results) {
			marks[i] = "✗"
			if run.Results[i].Passed {
				marks[i] = "✓"
			}
		}
	}
	b.WriteString(tabs.View(marks))
	b.WriteString("\n")

	if tabs.Selected >= len(run.Results) {
		return b.String()
	}
	cr := run.Results[tabs.Selected]
	field := func(label, value string) {
		b.WriteString(dim.Render(fmt.Sprintf("%-9s", label)))
		b.WriteString(theme.Mono.Render(value))
		b.WriteString("\n")
	}
	field("Input", cr.Input)
	field("Expected", cr.Expected)
	field("Output", cr.Actual)
	if cr.Error != "" {
		b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.Error).Render(cr.Error))
	}
	return b.String()
}

// RenderEvaluation renders review feedback.
func RenderEvaluation(ev *content.Evaluation, width int) string {
	if ev == nil {
		return ""
	}
	verdict := theme.Incorrect.Render("Needs work")
	if ev.Success {
		verdict = theme.Correct.Render("Accepted")
	}
	if ev.Score != nil {
		verdict += lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  score %d/100", *ev.Score))
	}
	return verdict + "\n" + lipgloss.NewStyle().Width(width).Foreground(theme.Text).Render(ev.Feedback)
}

// SplitWidths divides the content width between the problem column and
// the editor column.
func SplitWidths(width int) (left, right int) {
	left = width * 2 / 5
	if left < 28 {
		left = 28
	}
	right = width - left - 3
	if right < 20 {
		right = 20
	}
	return left, right
}
