// Package screens holds what every view shares: injected dependencies,
// the action message that hands session changes to the app, and request
// tokens for dropping stale provider responses.
package screens

import (
	"fmt"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/smartprep/internal/content"
	"github.com/abhisek/smartprep/internal/roadmap"
	"github.com/abhisek/smartprep/internal/session"
	"github.com/abhisek/smartprep/internal/store"
	"github.com/abhisek/smartprep/internal/ui/theme"
)

// Deps is shared by every screen. State returns the live session so a
// screen revealed by a pop never renders a stale copy.
type Deps struct {
	Generator content.Generator
	Runner    content.CodeRunner
	Planner   *roadmap.Planner
	Events    store.EventRepo
	Logger    *zap.Logger

	QuizTime       time.Duration
	CodingTime     time.Duration
	Questions      int
	MixedQuestions int
	FullChallenge  string

	State func() session.State
	Now   func() time.Time
}

// Log returns the logger, or a no-op logger when none was injected.
func (d *Deps) Log() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// Today returns the current time from the injected clock.
func (d *Deps) Today() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// ActionMsg asks the app to apply Action to the session.
type ActionMsg struct {
	Action session.Action
}

// Dispatch returns a command delivering a.
func Dispatch(a session.Action) tea.Cmd {
	return func() tea.Msg { return ActionMsg{Action: a} }
}

var tokens atomic.Uint64

// NextToken returns a request token unique for the process. Screens keep
// the token of their outstanding request and drop responses carrying any
// other.
func NextToken() uint64 {
	return tokens.Add(1)
}

// RenderLoading renders a centered status line.
func RenderLoading(width, height int, text string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(text))
}

// RenderError renders a centered error with a hint line below it.
func RenderError(width, height int, text, hint string) string {
	body := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(text)
	if hint != "" {
		body += "\n\n" + theme.Hint.Render(hint)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

// Plural formats n with unit, adding an s when n != 1.
func Plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
