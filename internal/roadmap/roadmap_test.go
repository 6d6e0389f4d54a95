package roadmap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/smartprep/internal/assessment"
	"github.com/abhisek/smartprep/internal/content"
)

func sampleRoadmap() *Roadmap {
	return &Roadmap{
		Title: "Java in 5 days",
		Days: []DayPlan{
			{Day: 1, Topic: "OOP", Tasks: []Task{{Title: "a"}, {Title: "b"}, {Title: "c"}}},
			{Day: 2, Topic: "Collections", Tasks: []Task{{Title: "d"}, {Title: "e"}, {Title: "f"}}},
			{Day: 3, Topic: "Review"},
		},
	}
}

func TestTaskID_Deterministic(t *testing.T) {
	assert.Equal(t, "day-2-task-0", TaskID(2, 0))
	assert.Equal(t, TaskID(3, 1), TaskID(3, 1))
	assert.NotEqual(t, TaskID(1, 2), TaskID(2, 1))
}

func TestCompletion(t *testing.T) {
	c := Completion{}
	id := TaskID(1, 0)
	c.Toggle(id)
	assert.True(t, c.Has(id))
	c.Toggle(id)
	assert.False(t, c.Has(id))

	c.Complete(id)
	c.Complete(id)
	assert.Equal(t, 1, c.Len())

	clone := c.Clone()
	clone.Toggle(TaskID(2, 2))
	assert.Equal(t, 1, c.Len(), "clone must not share storage")
}

func TestDayPercent(t *testing.T) {
	rm := sampleRoadmap()
	c := Completion{}
	c.Complete(TaskID(1, 0))
	c.Complete(TaskID(1, 2))

	assert.Equal(t, 67, DayPercent(rm.Days[0], c))
	assert.Equal(t, 0, DayPercent(rm.Days[1], c))
	assert.Equal(t, 0, DayPercent(rm.Days[2], c), "empty day")
	assert.Equal(t, 2, CompletedIn(rm, c))
	assert.Equal(t, 6, rm.TotalTasks())
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name      string
		result    *assessment.Result
		completed int
		total     int
		want      int
	}{
		{"blended", &assessment.Result{Score: 8, Total: 10}, 3, 6, 62},
		{"no result", nil, 3, 6, 30},
		{"no tasks", &assessment.Result{Score: 8, Total: 10}, 0, 0, 32},
		{"zero total result", &assessment.Result{Score: 0, Total: 0}, 6, 6, 60},
		{"perfect", &assessment.Result{Score: 10, Total: 10}, 6, 6, 100},
		{"over-complete clamps", &assessment.Result{Score: 15, Total: 15}, 9, 6, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Readiness(tt.result, tt.completed, tt.total))
		})
	}
}

func TestExpander(t *testing.T) {
	e := NewExpander()
	assert.True(t, e.Expanded(1))
	e.Toggle(3)
	assert.False(t, e.Expanded(1))
	assert.True(t, e.Expanded(3))
	e.Toggle(3)
	assert.False(t, e.Expanded(3))
	assert.False(t, e.Expanded(0))
}

func TestResourceURL(t *testing.T) {
	tests := []struct {
		task Task
		want string
	}{
		{Task{Link: " https://go.dev/tour "}, "https://go.dev/tour"},
		{Task{Link: "leetcode.com/problems/two-sum"}, "https://leetcode.com/problems/two-sum"},
		{Task{Link: "null", Platform: "YouTube", Title: "Joins"}, "https://www.google.com/search?q=YouTube+Joins+tutorial"},
		{Task{Title: "Normalization"}, "https://www.google.com/search?q=Normalization+tutorial"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResourceURL(tt.task))
	}
}

func TestWeek(t *testing.T) {
	today := time.Date(2026, time.May, 30, 15, 4, 0, 0, time.UTC)
	slots := Week(sampleRoadmap(), today)
	require.Len(t, slots, 7)
	assert.Equal(t, time.Date(2026, time.May, 30, 0, 0, 0, 0, time.UTC), slots[0].Date)
	assert.Equal(t, time.June, slots[2].Date.Month())
	assert.Equal(t, 1, slots[0].Day.Day)
	assert.Equal(t, 3, slots[2].Day.Day)
	assert.Nil(t, slots[3].Day)

	assert.Len(t, Week(nil, today), 7)
}

type stubGenerator struct {
	content.Generator
	req content.RoadmapRequest
	err error
}

func (s *stubGenerator) Roadmap(_ context.Context, req content.RoadmapRequest) (*content.Roadmap, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return sampleRoadmap(), nil
}

func TestPlanner(t *testing.T) {
	gen := &stubGenerator{}
	p := &Planner{Generator: gen, Days: 5, ComprehensiveDays: 14}

	rm, err := p.Plan(context.Background(), "SQL", assessment.Beginner, []string{"SQL Basics"})
	require.NoError(t, err)
	assert.NotNil(t, rm)
	assert.Equal(t, 5, gen.req.Days)
	assert.Equal(t, "Beginner", gen.req.Level)
	assert.Equal(t, []string{"SQL Basics"}, gen.req.WeakAreas)

	_, err = p.Plan(context.Background(), content.ComprehensiveTopic, assessment.Advanced, nil)
	require.NoError(t, err)
	assert.Equal(t, 14, gen.req.Days)

	gen.err = errors.New("quota")
	_, err = p.Plan(context.Background(), "SQL", assessment.Beginner, nil)
	assert.ErrorContains(t, err, "quota")
}
