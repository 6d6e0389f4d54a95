package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/smartprep/internal/assessment"
	"github.com/abhisek/smartprep/internal/roadmap"
	"github.com/abhisek/smartprep/internal/router"
	"github.com/abhisek/smartprep/internal/screens"
	"github.com/abhisek/smartprep/internal/screens/dashboard"
	"github.com/abhisek/smartprep/internal/screens/login"
	"github.com/abhisek/smartprep/internal/screens/result"
	"github.com/abhisek/smartprep/internal/screens/topics"
	"github.com/abhisek/smartprep/internal/session"
	"github.com/abhisek/smartprep/internal/streak"
)

func newModel() *AppModel {
	return New(Options{Streak: streak.State{Count: 3, LastActive: "Mon Mar 09 2026"}})
}

func dispatch(m *AppModel, a session.Action) tea.Cmd {
	_, cmd := m.Update(screens.ActionMsg{Action: a})
	return cmd
}

func TestStartsOnLogin(t *testing.T) {
	m := newModel()
	_, ok := m.router.Active().(*login.LoginScreen)
	assert.True(t, ok)
	assert.Equal(t, 3, m.State().Streak)
}

func TestLoginFlow(t *testing.T) {
	m := newModel()
	for _, r := range "ada" {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Equal(t, session.ViewDashboard, m.State().View)
	assert.Equal(t, "ada", m.State().User)
	_, ok := m.router.Active().(*dashboard.DashboardScreen)
	assert.True(t, ok)
}

func TestViewChangeResetsStack(t *testing.T) {
	m := newModel()
	dispatch(m, session.Login{User: "ada"})
	m.Update(router.PushScreenMsg{Screen: login.New()})
	require.Equal(t, 2, m.router.Depth())

	dispatch(m, session.SelectCategory{Category: session.CategoryCoding})
	assert.Equal(t, 1, m.router.Depth())
	_, ok := m.router.Active().(*topics.TopicsScreen)
	assert.True(t, ok)
}

func TestRefusedNavigationKeepsScreen(t *testing.T) {
	m := newModel()
	dispatch(m, session.Login{User: "ada"})
	before := m.router.Active()

	assert.Nil(t, dispatch(m, session.Navigate{View: session.ViewRoadmap}))
	assert.Same(t, before, m.router.Active())
	assert.Equal(t, session.ViewDashboard, m.State().View)
}

func TestSameViewActionKeepsScreen(t *testing.T) {
	m := newModel()
	dispatch(m, session.Login{User: "ada"})
	dispatch(m, session.CompleteAssessment{Result: assessment.Result{Score: 3, Total: 10}})
	screen := m.router.Active()
	_, ok := screen.(*result.ResultScreen)
	require.True(t, ok)

	dispatch(m, session.SaveRoadmap{Roadmap: &roadmap.Roadmap{Title: "x"}})
	assert.Same(t, screen, m.router.Active())
	assert.NotNil(t, m.State().Roadmap)
}

func TestLogoutReturnsToLogin(t *testing.T) {
	m := newModel()
	dispatch(m, session.Login{User: "ada"})
	dispatch(m, session.Logout{})

	_, ok := m.router.Active().(*login.LoginScreen)
	assert.True(t, ok)
	assert.Equal(t, 3, m.State().Streak)
}

func TestCtrlCQuits(t *testing.T) {
	m := newModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestViewRendersHeaderUser(t *testing.T) {
	m := newModel()
	dispatch(m, session.Login{User: "ada"})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	frame := m.render()
	assert.Contains(t, frame, "ada")
	assert.Contains(t, frame, "Dashboard")
}
