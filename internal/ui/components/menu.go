package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartprep/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Hint is an optional one-line blurb
// that callers may draw under the label.
type MenuItem struct {
	Label    string
	Hint     string
	Disabled bool
	Action   func() tea.Cmd
}

// Menu is a vertical list with a cursor that skips disabled items and
// wraps at both ends. Digits 1-9 jump straight to an item.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.Selected = m.next(-1, 1)
	return m
}

// next finds the first enabled item after from in direction dir,
// wrapping around. It returns from when nothing else is enabled.
func (m Menu) next(from, dir int) int {
	n := len(m.Items)
	for step := 1; step <= n; step++ {
		i := ((from+dir*step)%n + n) % n
		if !m.Items[i].Disabled {
			return i
		}
	}
	if from < 0 {
		return 0
	}
	return from
}

// Current returns the item under the cursor.
func (m Menu) Current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k", "shift+tab":
		m.Selected = m.next(m.Selected, -1)
	case "down", "j", "tab":
		m.Selected = m.next(m.Selected, 1)
	case "home", "g":
		m.Selected = m.next(-1, 1)
	case "end", "G":
		m.Selected = m.next(len(m.Items), -1)
	case "enter", "space":
		return m, m.activate()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(m.Items) && !m.Items[i].Disabled {
				m.Selected = i
				return m, m.activate()
			}
		}
	}
	return m, nil
}

func (m Menu) activate() tea.Cmd {
	item, ok := m.Current()
	if !ok || item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

// View renders one line per item.
func (m Menu) View() string {
	lines := make([]string, len(m.Items))
	for i := range m.Items {
		lines[i] = m.Line(i)
	}
	return strings.Join(lines, "\n")
}

// Line renders item i with its cursor marker.
func (m Menu) Line(i int) string {
	item := m.Items[i]
	switch {
	case item.Disabled:
		return lipgloss.NewStyle().Foreground(theme.Border).Render("    " + item.Label)
	case i == m.Selected:
		return theme.Selected.Render("  ▸ " + item.Label)
	default:
		return theme.Unselected.Render("    " + item.Label)
	}
}
