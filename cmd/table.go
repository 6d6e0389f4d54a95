package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/dustin/go-humanize"

	"github.com/abhisek/smartprep/internal/ui/theme"
)

const timeLayout = "2006-01-02 15:04"

// writeTable renders rows under headers. A non-empty footer is drawn as
// a bold last row, used for totals.
func writeTable(w io.Writer, headers []string, rows [][]string, footer []string) {
	if footer != nil {
		rows = append(rows, footer)
	}
	last := len(rows) - 1

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return s.Bold(true).Foreground(theme.Primary)
			case footer != nil && row == last:
				return s.Bold(true)
			}
			return s
		})
	fmt.Fprintln(w, t.String())
}

// writeJSON is the --json output of the inspection commands.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

// tokens groups digits, e.g. 1,048,576.
func tokens(n int) string {
	return humanize.Comma(int64(n))
}
