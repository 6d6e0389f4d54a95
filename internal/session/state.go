// Package session holds the navigation state of one run of the app and the
// transitions between views.
package session

import (
	"github.com/abhisek/smartprep/internal/assessment"
	"github.com/abhisek/smartprep/internal/roadmap"
)

// View identifies a top-level screen.
type View int

const (
	ViewLogin View = iota
	ViewTopicSelection
	ViewDashboard
	ViewAssessment
	ViewFullAssessment
	ViewAssessmentResult
	ViewRoadmap
	ViewTimetable
)

func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewTopicSelection:
		return "topic-selection"
	case ViewDashboard:
		return "dashboard"
	case ViewAssessment:
		return "assessment"
	case ViewFullAssessment:
		return "full-assessment"
	case ViewAssessmentResult:
		return "assessment-result"
	case ViewRoadmap:
		return "roadmap"
	case ViewTimetable:
		return "timetable"
	}
	return "unknown"
}

// Dashboard categories.
const (
	CategoryAptitude        = "Aptitude"
	CategoryCoding          = "Coding"
	CategoryCoreSubjects    = "Core Subjects"
	CategoryCommunication   = "Communication"
	CategoryGroupDiscussion = "Group Discussion"
)

// Categories lists the dashboard categories in display order.
var Categories = []string{
	CategoryAptitude,
	CategoryCoding,
	CategoryCoreSubjects,
	CategoryCommunication,
	CategoryGroupDiscussion,
}

// CodingTopics lists the languages offered on topic selection. A custom
// topic may also be entered.
var CodingTopics = []string{"Java", "Python", "JavaScript", "C++", "SQL", "Spring Boot"}

// State is the whole session. Treat it as a value: Apply returns a new
// State and never mutates its input.
type State struct {
	View       View
	User       string
	Topic      string
	Level      assessment.Level
	Roadmap    *roadmap.Roadmap
	Result     *assessment.Result
	Completed  roadmap.Completion
	Streak     int
	LastActive string
}

// New returns the state shown at startup.
func New(streak int, lastActive string) State {
	return State{
		View:       ViewLogin,
		Completed:  roadmap.Completion{},
		Streak:     streak,
		LastActive: lastActive,
	}
}

// Readiness is the dashboard readiness score for s.
func (s State) Readiness() int {
	return roadmap.Readiness(s.Result, s.CompletedCount(), s.Roadmap.TotalTasks())
}

// CompletedCount counts completed tasks that belong to the current roadmap.
func (s State) CompletedCount() int {
	return roadmap.CompletedIn(s.Roadmap, s.Completed)
}
