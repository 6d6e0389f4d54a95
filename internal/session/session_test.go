package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/smartprep/internal/assessment"
	"github.com/abhisek/smartprep/internal/content"
	"github.com/abhisek/smartprep/internal/roadmap"
)

func loggedIn() State {
	return Apply(New(4, "Mon Mar 09 2026"), Login{User: "asha"})
}

func TestLoginResetsButKeepsStreak(t *testing.T) {
	s := loggedIn()
	s = Apply(s, SelectTopic{Topic: "Java"})
	s = Apply(s, CompleteAssessment{Result: assessment.Result{Score: 9, Total: 10}})
	s = Apply(s, SaveRoadmap{Roadmap: &roadmap.Roadmap{Title: "x"}})
	s = Apply(s, ToggleTask{ID: roadmap.TaskID(1, 0)})

	out := Apply(s, Logout{})
	assert.Equal(t, ViewLogin, out.View)
	assert.Empty(t, out.User)
	assert.Nil(t, out.Roadmap)
	assert.Nil(t, out.Result)
	assert.Empty(t, out.Topic)
	assert.Empty(t, out.Level)
	assert.Equal(t, 0, out.Completed.Len())
	assert.Equal(t, 4, out.Streak)

	back := Apply(out, Login{User: "ravi"})
	assert.Equal(t, ViewDashboard, back.View)
	assert.Equal(t, "ravi", back.User)
	assert.Equal(t, 4, back.Streak)
}

func TestSelectCategory(t *testing.T) {
	s := Apply(loggedIn(), SelectCategory{Category: CategoryCoding})
	assert.Equal(t, ViewTopicSelection, s.View)
	assert.Empty(t, s.Topic)

	s = Apply(loggedIn(), SelectCategory{Category: CategoryAptitude})
	assert.Equal(t, ViewAssessment, s.View)
	assert.Equal(t, "Aptitude", s.Topic)
}

func TestStartFullAssessment(t *testing.T) {
	s := Apply(loggedIn(), StartFullAssessment{})
	assert.Equal(t, ViewFullAssessment, s.View)
	assert.Equal(t, content.ComprehensiveTopic, s.Topic)
}

func TestCompleteAssessmentDerivesLevel(t *testing.T) {
	tests := []struct {
		score int
		want  assessment.Level
	}{
		{16, assessment.Advanced},
		{8, assessment.Intermediate},
		{2, assessment.Beginner},
	}
	for _, tt := range tests {
		s := Apply(loggedIn(), CompleteAssessment{Result: assessment.Result{Score: tt.score, Total: 20}})
		assert.Equal(t, ViewAssessmentResult, s.View)
		assert.Equal(t, tt.want, s.Level)
		assert.Equal(t, tt.score, s.Result.Score)
	}
}

func TestViewGuard(t *testing.T) {
	s := loggedIn()
	for _, v := range []View{ViewRoadmap, ViewTimetable} {
		out := Apply(s, Navigate{View: v})
		assert.Equal(t, ViewDashboard, out.View, "navigating to %s without a roadmap", v)
	}

	s = Apply(s, SaveRoadmap{Roadmap: &roadmap.Roadmap{}})
	assert.Equal(t, ViewTimetable, Apply(s, Navigate{View: ViewTimetable}).View)
}

func TestContinueToRoadmapAllowedWithoutPlan(t *testing.T) {
	s := Apply(loggedIn(), ContinueToRoadmap{})
	assert.Equal(t, ViewRoadmap, s.View)
}

func TestSaveRoadmapKeepsFirst(t *testing.T) {
	first := &roadmap.Roadmap{Title: "first"}
	s := Apply(loggedIn(), SaveRoadmap{Roadmap: first})
	s = Apply(s, SaveRoadmap{Roadmap: &roadmap.Roadmap{Title: "second"}})
	assert.Same(t, first, s.Roadmap)
}

func TestTaskActionsCopyOnWrite(t *testing.T) {
	id := roadmap.TaskID(2, 1)
	before := loggedIn()
	after := Apply(before, ToggleTask{ID: id})
	assert.True(t, after.Completed.Has(id))
	assert.False(t, before.Completed.Has(id), "earlier state must not change")

	same := Apply(after, CompleteTask{ID: id})
	assert.True(t, same.Completed.Has(id))
	assert.Equal(t, 1, same.Completed.Len())

	off := Apply(after, ToggleTask{ID: id})
	assert.False(t, off.Completed.Has(id))
	assert.True(t, after.Completed.Has(id))
}

func TestReadiness(t *testing.T) {
	rm := &roadmap.Roadmap{Days: []roadmap.DayPlan{
		{Day: 1, Tasks: make([]roadmap.Task, 3)},
		{Day: 2, Tasks: make([]roadmap.Task, 3)},
	}}
	s := loggedIn()
	s = Apply(s, CompleteAssessment{Result: assessment.Result{Score: 8, Total: 10}})
	s = Apply(s, SaveRoadmap{Roadmap: rm})
	for _, id := range []string{roadmap.TaskID(1, 0), roadmap.TaskID(1, 1), roadmap.TaskID(2, 2), "day-9-task-0"} {
		s = Apply(s, ToggleTask{ID: id})
	}
	assert.Equal(t, 3, s.CompletedCount())
	assert.Equal(t, 62, s.Readiness())
}
