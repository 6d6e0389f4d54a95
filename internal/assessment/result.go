// Package assessment runs topic quizzes, coding challenges and the combined
// screening assessment, and scores them.
package assessment

import (
	"math"
	"strings"

	"github.com/abhisek/smartprep/internal/content"
)

// Result is the outcome of one assessment.
type Result struct {
	Score       int
	Total       int
	WeakAreas   []string
	StrongAreas []string
}

// Percent returns the score as a percentage of total, 0 when total is 0.
func (r Result) Percent() float64 {
	if r.Total <= 0 {
		return 0
	}
	return float64(r.Score) / float64(r.Total) * 100
}

// Level is the skill level derived from an assessment.
type Level string

const (
	Beginner     Level = "Beginner"
	Intermediate Level = "Intermediate"
	Advanced     Level = "Advanced"
)

// LevelFor derives a level: above 75% is advanced, 40% and up intermediate.
func LevelFor(r Result) Level {
	pct := r.Percent()
	switch {
	case pct > 75:
		return Advanced
	case pct >= 40:
		return Intermediate
	default:
		return Beginner
	}
}

// codingTopics route an assessment to the coding flow when any of them
// appears in the topic.
var codingTopics = []string{
	"Java", "Python", "JavaScript", "C++", "SQL", "Spring Boot", "Go", "Rust",
	"TypeScript", "Technical Coding", "Coding", "DSA",
}

// IsCodingTopic reports whether topic is assessed with a coding challenge.
func IsCodingTopic(topic string) bool {
	t := strings.ToLower(topic)
	for _, c := range codingTopics {
		if strings.Contains(t, strings.ToLower(c)) {
			return true
		}
	}
	return false
}

// CountCorrect scores answers positionally against questions. Answers
// beyond the question list are ignored.
func CountCorrect(questions []content.Question, answers []int) int {
	n := 0
	for i, a := range answers {
		if i < len(questions) && questions[i].CorrectIndex == a {
			n++
		}
	}
	return n
}

// MCQResult scores a topic quiz. Scoring at least half counts as strong.
func MCQResult(topic string, questions []content.Question, answers []int) Result {
	score := CountCorrect(questions, answers)
	total := len(questions)
	if float64(score) < float64(total)/2 {
		return Result{
			Score:       score,
			Total:       total,
			WeakAreas:   []string{topic + " Basics", "Problem Solving"},
			StrongAreas: []string{},
		}
	}
	return Result{
		Score:       score,
		Total:       total,
		WeakAreas:   []string{"Advanced Concepts"},
		StrongAreas: []string{"Syntax", "Core Logic"},
	}
}

// CodingResult converts an evaluation into a result out of 100. A missing
// or zero score falls back to 100 on success and 40 otherwise. A failed
// evaluation yields a fixed half score.
func CodingResult(ev *content.Evaluation, err error) Result {
	if err != nil || ev == nil {
		return Result{Score: 50, Total: 100, WeakAreas: []string{"Error Handling"}, StrongAreas: []string{}}
	}

	score := 40
	if ev.Success {
		score = 100
	}
	if ev.Score != nil && *ev.Score != 0 {
		score = *ev.Score
	}

	weak := ev.WeakAreas
	if weak == nil {
		weak = []string{"Optimization", "Edge Cases"}
	}
	strong := ev.StrongAreas
	if strong == nil {
		strong = []string{"Basic Logic"}
	}
	return Result{Score: score, Total: 100, WeakAreas: weak, StrongAreas: strong}
}

// RoundPercent rounds a ratio to a whole percentage.
func RoundPercent(r Result) int {
	return int(math.Round(r.Percent()))
}
