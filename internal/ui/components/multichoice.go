package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartprep/internal/ui/theme"
)

// MultiChoice asks one question and records a single pick. Answers are
// locked on the first pick and never marked right or wrong on screen;
// scoring happens when the assessment ends.
type MultiChoice struct {
	Question string
	Options  []string
	Cursor   int
	chosen   int
}

func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{Question: question, Options: options, chosen: -1}
}

// Answered reports whether an option has been picked.
func (m MultiChoice) Answered() bool { return m.chosen >= 0 }

// Choice is the picked option index, or -1.
func (m MultiChoice) Choice() int { return m.chosen }

// Update moves the cursor with up/down (or k/j) and picks with enter,
// space, the option letter or its 1-based number.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || m.Answered() || len(m.Options) == 0 {
		return m, nil
	}

	switch k := key.String(); k {
	case "up", "k":
		m.Cursor = max(m.Cursor-1, 0)
	case "down", "j":
		m.Cursor = min(m.Cursor+1, len(m.Options)-1)
	case "enter", "space":
		m.chosen = m.Cursor
	default:
		if i := shortcut(k); i >= 0 && i < len(m.Options) {
			m.Cursor, m.chosen = i, i
		}
	}
	return m, nil
}

// shortcut maps "a".."z" and "1".."9" to an option index, or -1.
func shortcut(k string) int {
	if len(k) != 1 {
		return -1
	}
	switch c := k[0]; {
	case c >= 'a' && c <= 'z':
		return int(c - 'a')
	case c >= '1' && c <= '9':
		return int(c - '1')
	}
	return -1
}

func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n")

	for i, opt := range m.Options {
		marker, style := "  ", lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == m.chosen:
			marker, style = "✓ ", style.Foreground(theme.Accent).Bold(true)
		case i == m.Cursor && !m.Answered():
			marker, style = "▸ ", style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString("\n")
		b.WriteString(style.Render(marker + string(rune('A'+i)) + ")  " + opt))
	}
	return b.String()
}
