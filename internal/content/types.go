package content

import "time"

// Question is one multiple-choice item. Options always holds exactly four
// entries once it leaves this package.
type Question struct {
	ID           int
	Text         string
	Options      []string
	CorrectIndex int
	Category     string // optional; set for mixed assessments
}

// TestCase pairs an input with its expected output, both as display text.
type TestCase struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// Challenge is a coding problem with starter code.
type Challenge struct {
	Name        string
	Description string
	Constraints string
	TestCases   []TestCase
	StarterCode string
	Language    string
}

// CaseResult is the simulated outcome of one test case.
type CaseResult struct {
	Input    string
	Expected string
	Actual   string
	Passed   bool
	Error    string
}

// RunResult is the simulated outcome of running code against test cases.
// Error is set when the run as a whole failed.
type RunResult struct {
	Passed  bool
	Results []CaseResult
	Error   string
}

// Evaluation is a holistic review of a submission. Score is nil and the
// area lists are nil when the provider omitted them.
type Evaluation struct {
	Success     bool
	Feedback    string
	Score       *int
	WeakAreas   []string
	StrongAreas []string
}

// TaskType classifies a roadmap task.
type TaskType string

const (
	TaskVideo    TaskType = "video"
	TaskReading  TaskType = "reading"
	TaskCoding   TaskType = "coding"
	TaskPractice TaskType = "practice"
)

// Task is one actionable item in a day plan.
type Task struct {
	Title     string
	Duration  string
	Type      TaskType
	Platform  string
	Link      string
	Challenge *Challenge
}

// DayPlan groups the tasks for one day.
type DayPlan struct {
	Day     int
	Topic   string
	Summary string
	Tasks   []Task
}

// Roadmap is a generated multi-day study plan.
type Roadmap struct {
	Title       string
	GeneratedAt time.Time
	Days        []DayPlan
}

// TotalTasks counts the tasks across all days.
func (r *Roadmap) TotalTasks() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, d := range r.Days {
		n += len(d.Tasks)
	}
	return n
}

// RoadmapRequest carries the inputs for roadmap generation.
type RoadmapRequest struct {
	Topic     string
	Level     string
	WeakAreas []string
	Days      int
}
