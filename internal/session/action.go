package session

import (
	"github.com/abhisek/smartprep/internal/assessment"
	"github.com/abhisek/smartprep/internal/content"
	"github.com/abhisek/smartprep/internal/roadmap"
)

// Action is a request to change the session.
type Action interface {
	isAction()
}

type (
	Login               struct{ User string }
	Logout              struct{}
	SelectCategory      struct{ Category string }
	SelectTopic         struct{ Topic string }
	StartFullAssessment struct{}
	CompleteAssessment  struct{ Result assessment.Result }
	ContinueToRoadmap   struct{}
	SaveRoadmap         struct{ Roadmap *roadmap.Roadmap }
	ToggleTask          struct{ ID string }
	CompleteTask        struct{ ID string }
	Navigate            struct{ View View }
)

func (Login) isAction()               {}
func (Logout) isAction()              {}
func (SelectCategory) isAction()      {}
func (SelectTopic) isAction()         {}
func (StartFullAssessment) isAction() {}
func (CompleteAssessment) isAction()  {}
func (ContinueToRoadmap) isAction()   {}
func (SaveRoadmap) isAction()         {}
func (ToggleTask) isAction()          {}
func (CompleteTask) isAction()        {}
func (Navigate) isAction()            {}

// Apply returns the state after a. Refused actions return s unchanged.
func Apply(s State, a Action) State {
	switch a := a.(type) {
	case Login:
		s = reset(s)
		s.User = a.User
		s.View = ViewDashboard

	case Logout:
		s = reset(s)
		s.User = ""
		s.View = ViewLogin

	case SelectCategory:
		if a.Category == CategoryCoding {
			s.View = ViewTopicSelection
			return s
		}
		s.Topic = a.Category
		s.View = ViewAssessment

	case SelectTopic:
		s.Topic = a.Topic
		s.View = ViewAssessment

	case StartFullAssessment:
		s.Topic = content.ComprehensiveTopic
		s.View = ViewFullAssessment

	case CompleteAssessment:
		r := a.Result
		s.Result = &r
		s.Level = assessment.LevelFor(r)
		s.View = ViewAssessmentResult

	case ContinueToRoadmap:
		s.View = ViewRoadmap

	case SaveRoadmap:
		if s.Roadmap == nil && a.Roadmap != nil {
			s.Roadmap = a.Roadmap
		}

	case ToggleTask:
		s.Completed = s.Completed.Clone()
		s.Completed.Toggle(a.ID)

	case CompleteTask:
		if s.Completed.Has(a.ID) {
			return s
		}
		s.Completed = s.Completed.Clone()
		s.Completed.Complete(a.ID)

	case Navigate:
		if (a.View == ViewRoadmap || a.View == ViewTimetable) && s.Roadmap == nil {
			return s
		}
		s.View = a.View
	}
	return s
}

// reset clears everything scoped to a login, keeping the streak.
func reset(s State) State {
	return State{
		View:       s.View,
		User:       s.User,
		Completed:  roadmap.Completion{},
		Streak:     s.Streak,
		LastActive: s.LastActive,
	}
}
