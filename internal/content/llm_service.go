package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/smartprep/internal/llm"
)

// LLMService implements Generator and CodeRunner on top of an LLM provider.
type LLMService struct {
	provider llm.Provider
	config   Config
	now      func() time.Time
}

// New creates an LLMService with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMService {
	return &LLMService{provider: provider, config: cfg, now: time.Now}
}

// ErrEmpty is returned when the provider produced no usable items.
var ErrEmpty = errors.New("provider returned no usable content")

type questionOutput struct {
	ID           int      `json:"id"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Category     string   `json:"category"`
}

type questionListOutput struct {
	Questions []questionOutput `json:"questions"`
}

type challengeOutput struct {
	ProblemName        string     `json:"problemName"`
	ProblemDescription string     `json:"problemDescription"`
	Constraints        string     `json:"constraints"`
	TestCases          []TestCase `json:"testCases"`
	StarterCode        string     `json:"starterCode"`
	SolutionLanguage   string     `json:"solutionLanguage"`
}

type caseOutput struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Passed   bool   `json:"passed"`
	Error    string `json:"error"`
}

type runOutput struct {
	Passed  bool         `json:"passed"`
	Results []caseOutput `json:"results"`
}

type evaluationOutput struct {
	Success     bool     `json:"success"`
	Feedback    string   `json:"feedback"`
	Score       *int     `json:"score"`
	WeakAreas   []string `json:"weakAreas"`
	StrongAreas []string `json:"strongAreas"`
}

type taskOutput struct {
	Title           string           `json:"title"`
	Duration        string           `json:"duration"`
	Type            string           `json:"type"`
	Platform        string           `json:"platform"`
	Link            string           `json:"link"`
	CodingChallenge *challengeOutput `json:"codingChallenge"`
}

type dayOutput struct {
	Day     int          `json:"day"`
	Topic   string       `json:"topic"`
	Summary string       `json:"summary"`
	Tasks   []taskOutput `json:"tasks"`
}

type roadmapOutput struct {
	Title string      `json:"title"`
	Days  []dayOutput `json:"days"`
}

// generate issues a single-turn request and decodes the response into out.
func (s *LLMService) generate(ctx context.Context, purpose llm.Purpose, system, userMsg string, schema *llm.Schema, out any) error {
	ctx = llm.WithPurpose(ctx, purpose)

	req := llm.Request{
		System: system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      schema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("LLM generation failed: %w", err)
	}
	if len(resp.Content) == 0 {
		return fmt.Errorf("%s: %w", purpose, ErrEmpty)
	}
	if err := json.Unmarshal(resp.Content, out); err != nil {
		return fmt.Errorf("failed to parse LLM response: %w", err)
	}
	return nil
}

// Questions returns up to n topic questions. Malformed items are dropped;
// an entirely unusable list is reported as ErrEmpty.
func (s *LLMService) Questions(ctx context.Context, topic string, n int) ([]Question, error) {
	var raw questionListOutput
	if err := s.generate(ctx, llm.PurposeQuestions, systemPrompt, buildQuestionsMessage(topic, n), QuestionListSchema, &raw); err != nil {
		return nil, err
	}
	return toQuestions(raw.Questions, n, false)
}

// MixedQuestions returns n aptitude and core CS questions.
func (s *LLMService) MixedQuestions(ctx context.Context, n int) ([]Question, error) {
	var raw questionListOutput
	if err := s.generate(ctx, llm.PurposeMixedQuestions, systemPrompt, buildMixedMessage(n), MixedQuestionListSchema, &raw); err != nil {
		return nil, err
	}
	return toQuestions(raw.Questions, n, true)
}

func toQuestions(raw []questionOutput, limit int, requireCategory bool) ([]Question, error) {
	out := make([]Question, 0, len(raw))
	for _, r := range raw {
		q := Question{
			ID:           r.ID,
			Text:         strings.TrimSpace(r.Text),
			Options:      r.Options,
			CorrectIndex: r.CorrectIndex,
			Category:     strings.TrimSpace(r.Category),
		}
		if err := validateQuestion(q, requireCategory); err != nil {
			continue
		}
		out = append(out, q)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("questions: %w", ErrEmpty)
	}
	return out, nil
}

// Challenge returns one coding problem for topic. The language defaults to
// the topic when the provider leaves it blank.
func (s *LLMService) Challenge(ctx context.Context, topic string) (*Challenge, error) {
	var raw challengeOutput
	if err := s.generate(ctx, llm.PurposeChallenge, systemPrompt, buildChallengeMessage(topic), ChallengeSchema, &raw); err != nil {
		return nil, err
	}
	c := raw.toChallenge(topic)
	if err := validateChallenge(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *challengeOutput) toChallenge(defaultLanguage string) *Challenge {
	lang := strings.TrimSpace(r.SolutionLanguage)
	if lang == "" {
		lang = defaultLanguage
	}
	return &Challenge{
		Name:        strings.TrimSpace(r.ProblemName),
		Description: strings.TrimSpace(r.ProblemDescription),
		Constraints: strings.TrimSpace(r.Constraints),
		TestCases:   r.TestCases,
		StarterCode: r.StarterCode,
		Language:    lang,
	}
}

// RunTests asks the provider to simulate code against the test cases.
func (s *LLMService) RunTests(ctx context.Context, problem, code, language string, cases []TestCase) (*RunResult, error) {
	var raw runOutput
	if err := s.generate(ctx, llm.PurposeRunCode, runnerSystemPrompt, buildRunMessage(problem, code, language, cases), RunResultSchema, &raw); err != nil {
		return nil, err
	}

	res := &RunResult{Passed: raw.Passed, Results: make([]CaseResult, 0, len(raw.Results))}
	for _, c := range raw.Results {
		errMsg := strings.TrimSpace(c.Error)
		if errMsg == "null" {
			errMsg = ""
		}
		res.Results = append(res.Results, CaseResult{
			Input:    c.Input,
			Expected: c.Expected,
			Actual:   c.Actual,
			Passed:   c.Passed,
			Error:    errMsg,
		})
	}
	return res, nil
}

// Evaluate asks the provider for a holistic review of a submission.
func (s *LLMService) Evaluate(ctx context.Context, problem, code, language string) (*Evaluation, error) {
	var raw evaluationOutput
	if err := s.generate(ctx, llm.PurposeEvaluateCode, evaluatorSystemPrompt, buildEvaluateMessage(problem, code, language), EvaluationSchema, &raw); err != nil {
		return nil, err
	}
	if raw.Score != nil && (*raw.Score < 0 || *raw.Score > 100) {
		return nil, fmt.Errorf("evaluation score %d out of range", *raw.Score)
	}
	return &Evaluation{
		Success:     raw.Success,
		Feedback:    raw.Feedback,
		Score:       raw.Score,
		WeakAreas:   raw.WeakAreas,
		StrongAreas: raw.StrongAreas,
	}, nil
}

// Roadmap asks the provider for a study plan. Days are renumbered by
// position so task ids stay unique even when the provider repeats a number.
func (s *LLMService) Roadmap(ctx context.Context, req RoadmapRequest) (*Roadmap, error) {
	var raw roadmapOutput
	if err := s.generate(ctx, llm.PurposeRoadmap, systemPrompt, buildRoadmapMessage(req), RoadmapSchema, &raw); err != nil {
		return nil, err
	}
	if len(raw.Days) == 0 {
		return nil, fmt.Errorf("roadmap: %w", ErrEmpty)
	}

	rm := &Roadmap{
		Title:       strings.TrimSpace(raw.Title),
		GeneratedAt: s.now(),
		Days:        make([]DayPlan, 0, len(raw.Days)),
	}
	for i, d := range raw.Days {
		day := DayPlan{
			Day:     i + 1,
			Topic:   d.Topic,
			Summary: d.Summary,
			Tasks:   make([]Task, 0, len(d.Tasks)),
		}
		for _, t := range d.Tasks {
			task := Task{
				Title:    t.Title,
				Duration: t.Duration,
				Type:     TaskType(t.Type),
				Platform: t.Platform,
				Link:     t.Link,
			}
			if t.CodingChallenge != nil {
				c := t.CodingChallenge.toChallenge("JavaScript")
				if validateChallenge(c) == nil {
					task.Challenge = c
				}
			}
			day.Tasks = append(day.Tasks, task)
		}
		rm.Days = append(rm.Days, day)
	}
	return rm, nil
}
