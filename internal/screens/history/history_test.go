package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/smartprep/internal/router"
	"github.com/abhisek/smartprep/internal/store"
)

// fakeRepo serves canned assessments; other methods are unused.
type fakeRepo struct {
	store.EventRepo
	attempts []store.AssessmentEvent
	err      error
	opts     store.QueryOpts
}

func (f *fakeRepo) QueryAssessments(_ context.Context, opts store.QueryOpts) ([]store.AssessmentEvent, error) {
	f.opts = opts
	var out []store.AssessmentEvent
	for _, a := range f.attempts {
		if opts.Username == "" || strings.EqualFold(a.Username, opts.Username) {
			out = append(out, a)
		}
	}
	return out, f.err
}

func attempt(user, topic string, weak ...string) store.AssessmentEvent {
	return store.AssessmentEvent{
		Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		AssessmentEventData: store.AssessmentEventData{
			Username:  user,
			Topic:     topic,
			Kind:      "mcq",
			Score:     7,
			Total:     10,
			Level:     "Intermediate",
			WeakAreas: weak,
		},
	}
}

func loaded(repo *fakeRepo, user string) *HistoryScreen {
	s := New(repo, user)
	s.Update(s.Init()())
	return s
}

func TestHistory_QueriesCurrentUser(t *testing.T) {
	repo := &fakeRepo{attempts: []store.AssessmentEvent{
		attempt("ada", "Aptitude"),
		attempt("bob", "Java"),
	}}
	s := loaded(repo, "ada")

	assert.Equal(t, store.QueryOpts{Limit: limit, Username: "ada"}, repo.opts)
	view := s.View(100, 30)
	assert.Contains(t, view, "Aptitude")
	assert.Contains(t, view, "7/10")
	assert.NotContains(t, view, "Java")
}

func TestHistory_EnterTogglesFocusAreas(t *testing.T) {
	s := loaded(&fakeRepo{attempts: []store.AssessmentEvent{
		attempt("ada", "Aptitude", "Advanced Concepts"),
		attempt("ada", "SQL", "Joins"),
	}}, "ada")
	enter := tea.KeyPressMsg{Code: tea.KeyEnter}

	assert.NotContains(t, s.View(100, 30), "Advanced Concepts")

	s.Update(enter)
	view := s.View(100, 30)
	assert.Contains(t, view, "Advanced Concepts")
	assert.Contains(t, view, "none", "no strong areas recorded")

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Contains(t, s.View(100, 30), "Joins", "details follow the cursor")

	s.Update(enter)
	assert.NotContains(t, s.View(100, 30), "Joins")
}

func TestHistory_EscPops(t *testing.T) {
	s := New(&fakeRepo{}, "ada")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestHistory_States(t *testing.T) {
	assert.Contains(t, New(&fakeRepo{}, "ada").View(100, 30), "Loading history")
	assert.Contains(t, loaded(&fakeRepo{}, "ada").View(100, 30), "No assessments yet")
	assert.Contains(t, loaded(&fakeRepo{err: errors.New("disk I/O error")}, "ada").View(100, 30),
		"Could not load history: disk I/O error")
}
