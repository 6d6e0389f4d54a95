package components

import (
	"errors"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartprep/internal/ui/theme"
)

// Required rejects blank input with msg.
func Required(msg string) func(string) error {
	return func(s string) error {
		if s == "" {
			return errors.New(msg)
		}
		return nil
	}
}

// TextInput is a labelled single-line field. Submit trims and validates
// the value; a failure is shown under the field until the next keystroke.
type TextInput struct {
	Label    string
	Validate func(string) error

	field textinput.Model
	err   error
}

// NewTextInput returns a focused field. limit <= 0 leaves length unbounded.
func NewTextInput(label, placeholder string, limit int) TextInput {
	f := textinput.New()
	f.Prompt = "› "
	f.Placeholder = placeholder
	if limit > 0 {
		f.CharLimit = limit
	}
	f.Focus()
	return TextInput{Label: label, field: f}
}

func (t TextInput) Init() tea.Cmd { return t.field.Focus() }

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		t.err = nil
	}
	var cmd tea.Cmd
	t.field, cmd = t.field.Update(msg)
	return t, cmd
}

// Submit returns the trimmed value and whether it passed Validate. With no
// validator any value passes.
func (t *TextInput) Submit() (string, bool) {
	v := strings.TrimSpace(t.field.Value())
	if t.Validate != nil {
		t.err = t.Validate(v)
	}
	return v, t.err == nil
}

func (t TextInput) Value() string { return t.field.Value() }

// Error is the message shown under the field, or "".
func (t TextInput) Error() string {
	if t.err == nil {
		return ""
	}
	return t.err.Error()
}

func (t TextInput) View() string {
	var lines []string
	if t.Label != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render(t.Label))
	}
	lines = append(lines, t.field.View())
	if t.err != nil {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Error).Render(t.err.Error()))
	}
	return strings.Join(lines, "\n")
}
