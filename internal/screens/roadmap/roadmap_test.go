package roadmap

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/smartprep/internal/assessment"
	"github.com/abhisek/smartprep/internal/content"
	rmap "github.com/abhisek/smartprep/internal/roadmap"
	"github.com/abhisek/smartprep/internal/router"
	"github.com/abhisek/smartprep/internal/screens"
	"github.com/abhisek/smartprep/internal/screens/workspace"
	"github.com/abhisek/smartprep/internal/session"
)

// mockGenerator serves a fixed roadmap and records the request.
type mockGenerator struct {
	content.Generator
	roadmap *content.Roadmap
	err     error
	reqs    []content.RoadmapRequest
}

func (m *mockGenerator) Roadmap(_ context.Context, req content.RoadmapRequest) (*content.Roadmap, error) {
	m.reqs = append(m.reqs, req)
	return m.roadmap, m.err
}

func sampleRoadmap() *content.Roadmap {
	return &content.Roadmap{
		Title: "Java in 2 days",
		Days: []content.DayPlan{
			{Day: 1, Topic: "Basics", Summary: "Syntax and types", Tasks: []content.Task{
				{Title: "Intro video", Duration: "20m", Type: content.TaskVideo, Platform: "YouTube"},
				{Title: "Reverse a list", Duration: "30m", Type: content.TaskCoding, Challenge: content.FallbackChallenge("Java")},
			}},
			{Day: 2, Topic: "OOP", Summary: "Classes", Tasks: []content.Task{
				{Title: "Read on classes", Duration: "15m", Type: content.TaskReading, Link: "docs.oracle.com/javase/tutorial"},
			}},
		},
	}
}

// harness keeps a live session the way the app does.
type harness struct {
	st   session.State
	deps *screens.Deps
	gen  *mockGenerator
}

func newHarness(gen *mockGenerator) *harness {
	h := &harness{gen: gen}
	h.st = session.Apply(session.New(1, ""), session.Login{User: "ada"})
	h.st = session.Apply(h.st, session.SelectTopic{Topic: "Java"})
	h.st = session.Apply(h.st, session.CompleteAssessment{Result: assessment.Result{
		Score: 1, Total: 10, WeakAreas: []string{"Java Basics"},
	}})
	h.st = session.Apply(h.st, session.ContinueToRoadmap{})
	h.deps = &screens.Deps{
		Planner: &rmap.Planner{Generator: gen, Days: 5, ComprehensiveDays: 14},
		State:   func() session.State { return h.st },
	}
	return h
}

// apply runs cmd and applies the action it dispatches.
func (h *harness) apply(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(screens.ActionMsg)
	require.True(t, ok, "expected ActionMsg")
	h.st = session.Apply(h.st, msg.Action)
}

func loaded(t *testing.T, h *harness) *RoadmapScreen {
	t.Helper()
	s := New(h.deps)
	cmd := s.Init()
	require.NotNil(t, cmd)
	_, cmd = s.Update(cmd())
	h.apply(t, cmd)
	require.NotNil(t, h.st.Roadmap)
	return s
}

func TestGeneratesWithLevelAndWeakAreas(t *testing.T) {
	h := newHarness(&mockGenerator{roadmap: sampleRoadmap()})
	s := loaded(t, h)

	require.Len(t, h.gen.reqs, 1)
	req := h.gen.reqs[0]
	assert.Equal(t, "Java", req.Topic)
	assert.Equal(t, string(assessment.Beginner), req.Level)
	assert.Equal(t, []string{"Java Basics"}, req.WeakAreas)
	assert.Equal(t, 5, req.Days)
	assert.Contains(t, s.View(100, 30), "Java in 2 days")
}

func TestCachedRoadmapSkipsGeneration(t *testing.T) {
	h := newHarness(&mockGenerator{roadmap: sampleRoadmap()})
	loaded(t, h)

	assert.Nil(t, New(h.deps).Init())
	assert.Len(t, h.gen.reqs, 1)
}

func TestFailureShowsErrorAndRetries(t *testing.T) {
	h := newHarness(&mockGenerator{err: errors.New("quota")})
	s := New(h.deps)
	_, cmd := s.Update(s.Init()())
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(100, 30), "Error loading roadmap.")

	_, cmd = s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	assert.NotNil(t, cmd, "r retries generation")
}

func TestToggleTask(t *testing.T) {
	h := newHarness(&mockGenerator{roadmap: sampleRoadmap()})
	s := loaded(t, h)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	h.apply(t, cmd)
	assert.True(t, h.st.Completed.Has("day-1-task-0"))
	assert.Equal(t, 1, h.st.CompletedCount())

	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	h.apply(t, cmd)
	assert.False(t, h.st.Completed.Has("day-1-task-0"))
}

func TestCodingTaskOpensWorkspace(t *testing.T) {
	h := newHarness(&mockGenerator{roadmap: sampleRoadmap()})
	s := loaded(t, h)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, ok = push.Screen.(*workspace.WorkspaceScreen)
	assert.True(t, ok)
}

func TestSingleDayExpanded(t *testing.T) {
	h := newHarness(&mockGenerator{roadmap: sampleRoadmap()})
	s := loaded(t, h)
	rm := h.st.Roadmap

	assert.Len(t, s.rows(rm), 4, "day 1 starts expanded")

	// Move to the day 2 header and expand it.
	for i := 0; i < 3; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	rows := s.rows(rm)
	assert.Len(t, rows, 3, "expanding day 2 collapses day 1")
	assert.Equal(t, row{day: 1, task: -1}, rows[s.cursor])
}

func TestResourceDetail(t *testing.T) {
	h := newHarness(&mockGenerator{roadmap: sampleRoadmap()})
	s := loaded(t, h)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	view := s.View(120, 40)
	assert.True(t, strings.Contains(view, "google.com/search"), "missing link falls back to a search")
}
