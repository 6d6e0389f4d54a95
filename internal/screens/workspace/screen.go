package workspace

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/smartprep/internal/content"
	"github.com/abhisek/smartprep/internal/router"
	"github.com/abhisek/smartprep/internal/screen"
	"github.com/abhisek/smartprep/internal/screens"
	"github.com/abhisek/smartprep/internal/session"
	"github.com/abhisek/smartprep/internal/ui/layout"
)

// WorkspaceScreen is the overlay opened from a roadmap coding task. An
// accepted submission marks the task complete and closes the overlay.
type WorkspaceScreen struct {
	model  *Model
	taskID string
	closed bool
}

var _ screen.Screen = (*WorkspaceScreen)(nil)
var _ screen.KeyHintProvider = (*WorkspaceScreen)(nil)

// NewScreen opens c for the roadmap task taskID.
func NewScreen(deps *screens.Deps, taskID string, c *content.Challenge) *WorkspaceScreen {
	return &WorkspaceScreen{model: New(deps, c), taskID: taskID}
}

func (w *WorkspaceScreen) Init() tea.Cmd {
	return nil
}

func (w *WorkspaceScreen) Title() string {
	return "Workspace"
}

func (w *WorkspaceScreen) KeyHints() []layout.KeyHint {
	return w.model.KeyHints()
}

func (w *WorkspaceScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case SolvedMsg:
		if msg.Token != w.model.ID() || w.closed {
			return w, nil
		}
		w.closed = true
		return w, tea.Sequence(
			screens.Dispatch(session.CompleteTask{ID: w.taskID}),
			func() tea.Msg { return router.PopScreenMsg{} },
		)
	case CancelledMsg:
		if msg.Token != w.model.ID() || w.closed {
			return w, nil
		}
		w.closed = true
		return w, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return w, w.model.Update(msg)
}

func (w *WorkspaceScreen) View(width, height int) string {
	return w.model.View(width, height)
}
