package content

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/smartprep/internal/llm"
)

func newTestService(responses ...llm.MockResponse) (*LLMService, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	svc := New(mock, DefaultConfig())
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }
	return svc, mock
}

func TestQuestions(t *testing.T) {
	svc, mock := newTestService(llm.MockResponse{Content: json.RawMessage(`{"questions":[
		{"id":1,"text":"What does JVM stand for?","options":["Java Virtual Machine","Joint VM","Java Variable Model","None"],"correctIndex":0},
		{"id":2,"text":"Broken","options":["a","b"],"correctIndex":0},
		{"id":3,"text":"Which keyword declares a constant?","options":["var","final","const","static"],"correctIndex":1}
	]}`)})

	qs, err := svc.Questions(context.Background(), "Java", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected malformed question dropped, got %d questions", len(qs))
	}
	if qs[1].CorrectIndex != 1 || qs[1].Options[1] != "final" {
		t.Errorf("unexpected second question: %+v", qs[1])
	}

	call := mock.Calls[0]
	if call.Schema != QuestionListSchema {
		t.Errorf("expected question-list schema, got %q", call.Schema.Name)
	}
	if !strings.Contains(call.Messages[0].Content, "Generate 20 beginner-friendly") {
		t.Errorf("prompt missing count: %q", call.Messages[0].Content)
	}
	if call.MaxTokens != DefaultConfig().MaxTokens {
		t.Errorf("max tokens = %d", call.MaxTokens)
	}
}

func TestQuestions_TruncatesToLimit(t *testing.T) {
	svc, _ := newTestService(llm.MockResponse{Content: json.RawMessage(`{"questions":[
		{"id":1,"text":"Q1","options":["a","b","c","d"],"correctIndex":0},
		{"id":2,"text":"Q2","options":["a","b","c","d"],"correctIndex":1},
		{"id":3,"text":"Q3","options":["a","b","c","d"],"correctIndex":2}
	]}`)})

	qs, err := svc.Questions(context.Background(), "SQL", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
}

func TestQuestions_Errors(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider failure", llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}}},
		{"empty list", llm.MockResponse{Content: json.RawMessage(`{"questions":[]}`)}},
		{"all malformed", llm.MockResponse{Content: json.RawMessage(`{"questions":[{"id":1,"text":"","options":["a","b","c","d"],"correctIndex":0}]}`)}},
		{"bad json", llm.MockResponse{Content: json.RawMessage(`{nope`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(tt.resp)
			if _, err := svc.Questions(context.Background(), "Java", 20); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	svc, _ := newTestService(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}})
	_, err := svc.Questions(context.Background(), "Java", 20)
	var rl *llm.ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected wrapped ErrRateLimit, got %v", err)
	}
}

func TestMixedQuestions_RequireCategory(t *testing.T) {
	svc, mock := newTestService(llm.MockResponse{Content: json.RawMessage(`{"questions":[
		{"id":1,"text":"2+2?","options":["3","4","5","6"],"correctIndex":1,"category":"Aptitude"},
		{"id":2,"text":"No category","options":["a","b","c","d"],"correctIndex":0,"category":""},
		{"id":3,"text":"What is a deadlock?","options":["a","b","c","d"],"correctIndex":2,"category":"Core CS"}
	]}`)})

	qs, err := svc.MixedQuestions(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 || qs[0].Category != CategoryAptitude || qs[1].Category != CategoryCoreCS {
		t.Fatalf("unexpected questions: %+v", qs)
	}
	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "5 questions on Quantitative Aptitude") || !strings.Contains(msg, "5 questions on Core Computer Science") {
		t.Errorf("unexpected split in prompt: %q", msg)
	}
}

func TestChallenge(t *testing.T) {
	svc, mock := newTestService(llm.MockResponse{Content: json.RawMessage(`{
		"problemName":"Two Sum",
		"problemDescription":"Return indices of two numbers adding to target.",
		"constraints":"2 <= n <= 10^4",
		"testCases":[{"input":"[2,7,11,15], 9","output":"[0,1]"}],
		"starterCode":"def two_sum(nums, target):\n    pass",
		"solutionLanguage":""
	}`)})

	c, err := svc.Challenge(context.Background(), "Python")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name != "Two Sum" || len(c.TestCases) != 1 {
		t.Errorf("unexpected challenge: %+v", c)
	}
	if c.Language != "Python" {
		t.Errorf("language should default to topic, got %q", c.Language)
	}
	if mock.Calls[0].Schema.Name != "coding-challenge" || !mock.Calls[0].Schema.Strict {
		t.Error("expected strict coding-challenge schema")
	}
}

func TestRunTests(t *testing.T) {
	svc, mock := newTestService(llm.MockResponse{Content: json.RawMessage(`{
		"passed":false,
		"results":[
			{"input":"[1,2,3]","expected":"6","actual":"6","passed":true,"error":"null"},
			{"input":"[]","expected":"0","actual":"","passed":false,"error":"IndexError"}
		]
	}`)})

	cases := []TestCase{{Input: "[1,2,3]", Output: "6"}, {Input: "[]", Output: "0"}}
	res, err := svc.RunTests(context.Background(), "Sum", "return sum(a)", "Python", cases)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Passed || len(res.Results) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Results[0].Error != "" {
		t.Errorf("literal null should be cleared, got %q", res.Results[0].Error)
	}
	if res.Results[1].Error != "IndexError" {
		t.Errorf("error = %q", res.Results[1].Error)
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, `[{"input":"[1,2,3]","output":"6"}`) {
		t.Errorf("test cases not serialized into prompt: %q", mock.Calls[0].Messages[0].Content)
	}
}

func TestEvaluate(t *testing.T) {
	svc, _ := newTestService(
		llm.MockResponse{Content: json.RawMessage(`{"success":true,"feedback":"Clean.","score":92,"weakAreas":["Edge Cases"]}`)},
		llm.MockResponse{Content: json.RawMessage(`{"success":false,"feedback":"?","score":140}`)},
	)

	ev, err := svc.Evaluate(context.Background(), "Sum", "code", "Go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ev.Success || ev.Score == nil || *ev.Score != 92 {
		t.Errorf("unexpected evaluation: %+v", ev)
	}
	if ev.StrongAreas != nil {
		t.Errorf("omitted strong areas should stay nil, got %v", ev.StrongAreas)
	}

	if _, err := svc.Evaluate(context.Background(), "Sum", "code", "Go"); err == nil {
		t.Error("expected error for out-of-range score")
	}
}

func TestRoadmap(t *testing.T) {
	svc, mock := newTestService(llm.MockResponse{Content: json.RawMessage(`{
		"title":"5-Day Java Plan",
		"days":[
			{"day":1,"topic":"OOP","summary":"Classes","tasks":[
				{"title":"Watch OOP intro","duration":"30 mins","type":"video","platform":"YouTube"},
				{"title":"Implement a stack","duration":"45 mins","type":"coding","platform":"LeetCode",
				 "codingChallenge":{"problemName":"Stack","problemDescription":"Build a stack.","constraints":"","testCases":[],"starterCode":"class Stack {}","solutionLanguage":""}}
			]},
			{"day":1,"topic":"Collections","summary":"Lists","tasks":[]}
		]
	}`)})

	rm, err := svc.Roadmap(context.Background(), RoadmapRequest{Topic: "Java", Level: "Beginner", Days: 5, WeakAreas: []string{"Java Basics"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rm.Title != "5-Day Java Plan" || len(rm.Days) != 2 {
		t.Fatalf("unexpected roadmap: %+v", rm)
	}
	if rm.Days[1].Day != 2 {
		t.Errorf("days should be renumbered by position, got %d", rm.Days[1].Day)
	}
	if rm.TotalTasks() != 2 {
		t.Errorf("total tasks = %d", rm.TotalTasks())
	}
	task := rm.Days[0].Tasks[1]
	if task.Type != TaskCoding || task.Challenge == nil || task.Challenge.Language != "JavaScript" {
		t.Errorf("unexpected coding task: %+v", task)
	}
	if !rm.GeneratedAt.Equal(svc.now()) {
		t.Errorf("generated at = %v", rm.GeneratedAt)
	}

	msg := mock.Calls[0].Messages[0].Content
	for _, want := range []string{"5-day", "ZERO prior knowledge", "extra help with: Java Basics"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestRoadmap_EmptyDays(t *testing.T) {
	svc, _ := newTestService(llm.MockResponse{Content: json.RawMessage(`{"title":"x","days":[]}`)})
	_, err := svc.Roadmap(context.Background(), RoadmapRequest{Topic: "SQL", Level: "Advanced", Days: 5})
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}
