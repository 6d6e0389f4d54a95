// Package roadmap plans study roadmaps and tracks progress through them.
package roadmap

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/abhisek/smartprep/internal/assessment"
	"github.com/abhisek/smartprep/internal/content"
)

// The roadmap types are shared with the content layer that generates them.
type (
	Roadmap = content.Roadmap
	DayPlan = content.DayPlan
	Task    = content.Task
)

// TaskID derives a task's completion identity from its day number and
// position within the day.
func TaskID(day, index int) string {
	return fmt.Sprintf("day-%d-task-%d", day, index)
}

// Planner requests roadmaps sized to the topic.
type Planner struct {
	Generator         content.Generator
	Days              int
	ComprehensiveDays int
}

// DaysFor returns the plan length for topic.
func (p *Planner) DaysFor(topic string) int {
	if topic == content.ComprehensiveTopic {
		return p.ComprehensiveDays
	}
	return p.Days
}

// Plan asks the generator for a roadmap. Callers cache the result; a
// failure leaves no roadmap.
func (p *Planner) Plan(ctx context.Context, topic string, level assessment.Level, weak []string) (*Roadmap, error) {
	rm, err := p.Generator.Roadmap(ctx, content.RoadmapRequest{
		Topic:     topic,
		Level:     string(level),
		WeakAreas: weak,
		Days:      p.DaysFor(topic),
	})
	if err != nil {
		return nil, fmt.Errorf("plan roadmap: %w", err)
	}
	return rm, nil
}

// Expander tracks which single day is expanded.
type Expander struct {
	day int // 0 when all days are collapsed
}

// NewExpander starts with day 1 expanded.
func NewExpander() Expander { return Expander{day: 1} }

// Toggle expands day, or collapses it when already expanded.
func (e *Expander) Toggle(day int) {
	if e.day == day {
		e.day = 0
		return
	}
	e.day = day
}

// Expanded reports whether day is open.
func (e Expander) Expanded(day int) bool { return day != 0 && e.day == day }

// Completion is the set of completed task ids.
type Completion map[string]struct{}

// Toggle flips id's membership.
func (c Completion) Toggle(id string) {
	if _, ok := c[id]; ok {
		delete(c, id)
		return
	}
	c[id] = struct{}{}
}

// Complete marks id done; already complete ids are left alone.
func (c Completion) Complete(id string) {
	c[id] = struct{}{}
}

// Has reports whether id is complete.
func (c Completion) Has(id string) bool {
	_, ok := c[id]
	return ok
}

// Len returns the number of completed tasks.
func (c Completion) Len() int { return len(c) }

// Clone returns an independent copy.
func (c Completion) Clone() Completion {
	out := make(Completion, len(c))
	for k := range c {
		out[k] = struct{}{}
	}
	return out
}

// CompletedIn counts the completed tasks that belong to rm.
func CompletedIn(rm *Roadmap, c Completion) int {
	if rm == nil {
		return 0
	}
	n := 0
	for _, d := range rm.Days {
		for i := range d.Tasks {
			if c.Has(TaskID(d.Day, i)) {
				n++
			}
		}
	}
	return n
}

// DayPercent is the rounded share of day's tasks that are complete.
func DayPercent(day DayPlan, c Completion) int {
	if len(day.Tasks) == 0 {
		return 0
	}
	done := 0
	for i := range day.Tasks {
		if c.Has(TaskID(day.Day, i)) {
			done++
		}
	}
	return roundPct(float64(done) / float64(len(day.Tasks)))
}

// Readiness blends quiz performance (40 points) with task completion
// (60 points). A term with a zero denominator contributes nothing. The sum
// is clamped to [0, 100].
func Readiness(result *assessment.Result, completed, total int) int {
	score := 0
	if result != nil && result.Total > 0 {
		score += int(math.Round(float64(result.Score) / float64(result.Total) * 40))
	}
	if total > 0 {
		score += int(math.Round(float64(completed) / float64(total) * 60))
	}
	return max(0, min(100, score))
}

func roundPct(ratio float64) int {
	return int(math.Round(ratio * 100))
}

// ResourceURL returns the task's link, or a web search for the task when
// the link is missing.
func ResourceURL(t Task) string {
	link := strings.TrimSpace(t.Link)
	if link != "" && !strings.EqualFold(link, "null") {
		if !strings.Contains(link, "://") {
			link = "https://" + link
		}
		return link
	}
	q := strings.TrimSpace(fmt.Sprintf("%s %s tutorial", t.Platform, t.Title))
	return "https://www.google.com/search?q=" + url.QueryEscape(q)
}

// Slot is one calendar day of the timetable.
type Slot struct {
	Date time.Time
	Day  *DayPlan // nil when the roadmap is shorter than the week
}

// Week maps roadmap day N onto the date today+N-1 for seven days.
func Week(rm *Roadmap, today time.Time) []Slot {
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, today.Location())

	slots := make([]Slot, 7)
	for i := range slots {
		slots[i].Date = start.AddDate(0, 0, i)
		if rm != nil && i < len(rm.Days) {
			slots[i].Day = &rm.Days[i]
		}
	}
	return slots
}
