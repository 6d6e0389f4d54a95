package components

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartprep/internal/ui/theme"
)

// tabWidth is the number of spaces inserted for the tab key.
const tabWidth = 4

// CodeEditor wraps bubbles/textarea as a multi-line code buffer with line
// numbers. Tab inserts spaces instead of moving focus.
type CodeEditor struct {
	Model textarea.Model
}

// NewCodeEditor creates a focused editor seeded with code.
func NewCodeEditor(code string, width, height int) CodeEditor {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.Placeholder = "// Write your code here"
	ta.SetWidth(width)
	ta.SetHeight(height)
	ta.SetValue(code)
	ta.Focus()
	return CodeEditor{Model: ta}
}

// Update forwards input to the textarea.
func (e CodeEditor) Update(msg tea.Msg) (CodeEditor, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "tab" {
		e.Model.InsertString(strings.Repeat(" ", tabWidth))
		return e, nil
	}
	var cmd tea.Cmd
	e.Model, cmd = e.Model.Update(msg)
	return e, cmd
}

// SetSize resizes the editing area.
func (e *CodeEditor) SetSize(width, height int) {
	e.Model.SetWidth(width)
	e.Model.SetHeight(height)
}

// Value returns the buffer contents.
func (e CodeEditor) Value() string {
	return e.Model.Value()
}

// View renders the editor inside a border.
func (e CodeEditor) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Render(e.Model.View())
}
