package assessment

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	asmt "github.com/abhisek/smartprep/internal/assessment"
	"github.com/abhisek/smartprep/internal/content"
	"github.com/abhisek/smartprep/internal/screens"
	"github.com/abhisek/smartprep/internal/screens/workspace"
	"github.com/abhisek/smartprep/internal/session"
	"github.com/abhisek/smartprep/internal/timer"
)

func mixedQuestions() []content.Question {
	qs := threeQuestions()
	qs[0].Category = content.CategoryAptitude
	qs[1].Category = content.CategoryCoreCS
	qs[2].Category = content.CategoryAptitude
	return qs
}

func newFull(gen content.Generator, events *mockEventRepo) *FullScreen {
	st := session.Apply(session.New(1, ""), session.Login{User: "ada"})
	st = session.Apply(st, session.StartFullAssessment{})
	deps := &screens.Deps{
		Generator:      gen,
		Runner:         &mockRunner{ev: &content.Evaluation{Success: true}},
		QuizTime:       20 * time.Minute,
		CodingTime:     20 * time.Minute,
		MixedQuestions: 3,
		FullChallenge:  "Python (Basic DSA)",
		State:          func() session.State { return st },
	}
	if events != nil {
		deps.Events = events
	}
	return NewFull(deps)
}

// toCoding answers a, a, c and starts the coding round.
func toCoding(t *testing.T, f *FullScreen) {
	t.Helper()
	f.Update(f.Init()())
	require.Equal(t, asmt.FullMCQ, f.full.State())

	f.Update(key('a'))
	f.Update(key('a'))
	f.Update(key('c'))
	require.Equal(t, asmt.FullTransition, f.full.State())
	assert.False(t, f.timer.Active(), "transition stage pauses the clock")

	_, cmd := f.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd, "starting the coding round re-arms the timer")
	require.Equal(t, asmt.FullCoding, f.full.State())
	require.NotNil(t, f.workspace)
}

func finishFull(t *testing.T, f *FullScreen) asmt.Result {
	t.Helper()
	require.Equal(t, asmt.FullCalculating, f.full.State())
	_, cmd := f.Update(scoredMsg{token: f.scoreToken})
	return completed(t, cmd)
}

func TestFullWithSolvedCoding(t *testing.T) {
	repo := &mockEventRepo{}
	f := newFull(&mockGenerator{questions: mixedQuestions(), challenge: content.FallbackChallenge("Python")}, repo)
	toCoding(t, f)

	_, cmd := f.Update(workspace.SolvedMsg{Token: f.workspace.ID()})
	require.NotNil(t, cmd)

	r := finishFull(t, f)
	assert.Equal(t, 7, r.Score)
	assert.Equal(t, 8, r.Total)
	assert.Equal(t, []string{content.CategoryCoreCS}, r.WeakAreas)
	require.Len(t, repo.records, 1)
	assert.Equal(t, asmt.KindFull, repo.records[0].Kind)
	assert.Equal(t, content.ComprehensiveTopic, repo.records[0].Topic)
}

func TestFullSkipCoding(t *testing.T) {
	f := newFull(&mockGenerator{questions: mixedQuestions(), challenge: content.FallbackChallenge("Python")}, nil)
	toCoding(t, f)

	_, cmd := f.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	f.Update(cmd())

	r := finishFull(t, f)
	assert.Equal(t, 2, r.Score)
	assert.Equal(t, 8, r.Total)
	assert.Equal(t, []string{content.CategoryCoreCS, "Technical Coding Implementation"}, r.WeakAreas)
}

func TestFullCodingExpiry(t *testing.T) {
	f := newFull(&mockGenerator{questions: mixedQuestions(), challenge: content.FallbackChallenge("Python")}, nil)
	toCoding(t, f)

	gen := f.timer.Generation()
	for i := 0; i < 1200; i++ {
		f.Update(timer.TickMsg{Gen: gen})
	}
	r := finishFull(t, f)
	assert.Equal(t, 2, r.Score)
}

func TestFullQuizExpiryMovesToTransition(t *testing.T) {
	f := newFull(&mockGenerator{questions: mixedQuestions(), challenge: content.FallbackChallenge("Python")}, nil)
	f.Update(f.Init()())
	f.Update(key('a'))

	gen := f.timer.Generation()
	for i := 0; i < 1200; i++ {
		f.Update(timer.TickMsg{Gen: gen})
	}
	assert.Equal(t, asmt.FullTransition, f.full.State())
	assert.Len(t, f.full.Answers(), 1)
}

func TestFullForeignWorkspaceMessagesIgnored(t *testing.T) {
	f := newFull(&mockGenerator{questions: mixedQuestions(), challenge: content.FallbackChallenge("Python")}, nil)
	toCoding(t, f)

	f.Update(workspace.SolvedMsg{Token: f.workspace.ID() + 1})
	assert.Equal(t, asmt.FullCoding, f.full.State())
}

func TestFullStaleScoreIgnored(t *testing.T) {
	f := newFull(&mockGenerator{questions: mixedQuestions(), challenge: content.FallbackChallenge("Python")}, nil)
	toCoding(t, f)
	f.Update(workspace.SolvedMsg{Token: f.workspace.ID()})

	_, cmd := f.Update(scoredMsg{token: f.scoreToken + 1})
	assert.Nil(t, cmd)
	assert.Equal(t, asmt.FullCalculating, f.full.State())
}

// solveCoding submits the workspace code and feeds back the accepted review.
func solveCoding(t *testing.T, f *FullScreen) {
	t.Helper()
	_, cmd := f.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, tick := f.Update(cmd())
	require.NotNil(t, tick, "accepted review schedules the wrap-up")
	require.True(t, f.workspace.Solved())
	require.Equal(t, asmt.FullCoding, f.full.State())
}

func TestFullEscAfterSolveKeepsCodingBonus(t *testing.T) {
	f := newFull(&mockGenerator{questions: mixedQuestions(), challenge: content.FallbackChallenge("Python")}, nil)
	toCoding(t, f)
	solveCoding(t, f)

	_, cmd := f.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, workspace.SolvedMsg{}, msg)
	f.Update(msg)

	_, late := f.Update(workspace.SolvedMsg{Token: f.workspace.ID()})
	assert.Nil(t, late)

	r := finishFull(t, f)
	assert.Equal(t, 7, r.Score)
	assert.Equal(t, 8, r.Total)
	assert.Equal(t, []string{content.CategoryCoreCS}, r.WeakAreas)
}

func TestFullExpiryAfterSolveKeepsCodingBonus(t *testing.T) {
	f := newFull(&mockGenerator{questions: mixedQuestions(), challenge: content.FallbackChallenge("Python")}, nil)
	toCoding(t, f)
	solveCoding(t, f)

	gen := f.timer.Generation()
	for i := 0; i < 1200; i++ {
		f.Update(timer.TickMsg{Gen: gen})
	}
	r := finishFull(t, f)
	assert.Equal(t, 7, r.Score)
	assert.Equal(t, []string{content.CategoryCoreCS}, r.WeakAreas)
}
