package content

import "github.com/abhisek/smartprep/internal/llm"

// Mixed assessment categories.
const (
	CategoryAptitude = "Aptitude"
	CategoryCoreCS   = "Core CS"
)

func questionItem(requireCategory bool) map[string]any {
	required := []any{"id", "text", "options", "correctIndex"}
	if requireCategory {
		required = append(required, "category")
	}
	category := map[string]any{
		"type":        "string",
		"description": "Subject area of the question",
	}
	if requireCategory {
		category["enum"] = []any{CategoryAptitude, CategoryCoreCS}
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":   map[string]any{"type": "integer"},
			"text": map[string]any{"type": "string", "description": "The question prompt"},
			"options": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 4,
				"maxItems": 4,
			},
			"correctIndex": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 3,
			},
			"category": category,
		},
		"required":             required,
		"additionalProperties": false,
	}
}

func questionList(item map[string]any) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":  "array",
				"items": item,
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	}
}

// QuestionListSchema is the response shape for topic quizzes. Category is
// optional, so strict decoding stays off.
var QuestionListSchema = &llm.Schema{
	Name:        "question-list",
	Description: "A list of multiple-choice interview questions",
	Definition:  questionList(questionItem(false)),
}

// MixedQuestionListSchema requires a category on every question.
var MixedQuestionListSchema = &llm.Schema{
	Name:        "mixed-question-list",
	Description: "A mixed aptitude and core CS screening quiz",
	Definition:  questionList(questionItem(true)),
	Strict:      true,
}

func testCaseDef() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"input":  map[string]any{"type": "string"},
			"output": map[string]any{"type": "string"},
		},
		"required":             []any{"input", "output"},
		"additionalProperties": false,
	}
}

func challengeDef() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problemName":        map[string]any{"type": "string"},
			"problemDescription": map[string]any{"type": "string"},
			"constraints":        map[string]any{"type": "string"},
			"testCases": map[string]any{
				"type":  "array",
				"items": testCaseDef(),
			},
			"starterCode":      map[string]any{"type": "string"},
			"solutionLanguage": map[string]any{"type": "string"},
		},
		"required":             []any{"problemName", "problemDescription", "constraints", "testCases", "starterCode", "solutionLanguage"},
		"additionalProperties": false,
	}
}

// ChallengeSchema is the response shape for a standalone coding problem.
var ChallengeSchema = &llm.Schema{
	Name:        "coding-challenge",
	Description: "A coding interview problem with test cases and starter code",
	Definition:  challengeDef(),
	Strict:      true,
}

// RunResultSchema is the response shape for a simulated test run.
var RunResultSchema = &llm.Schema{
	Name:        "run-result",
	Description: "Simulated execution results, one entry per test case",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"passed": map[string]any{"type": "boolean"},
			"results": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"input":    map[string]any{"type": "string"},
						"expected": map[string]any{"type": "string"},
						"actual":   map[string]any{"type": "string"},
						"passed":   map[string]any{"type": "boolean"},
						"error":    map[string]any{"type": "string", "description": "Compile or runtime error, empty when none"},
					},
					"required":             []any{"input", "expected", "actual", "passed"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"passed", "results"},
		"additionalProperties": false,
	},
}

// EvaluationSchema is the response shape for a submission review. The area
// lists are optional.
var EvaluationSchema = &llm.Schema{
	Name:        "code-evaluation",
	Description: "A holistic evaluation of submitted code",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"success":  map[string]any{"type": "boolean"},
			"feedback": map[string]any{"type": "string"},
			"score": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 100,
			},
			"weakAreas": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"strongAreas": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required":             []any{"success", "feedback", "score"},
		"additionalProperties": false,
	},
}

// RoadmapSchema is the response shape for a study plan. Links and embedded
// challenges are optional per task.
var RoadmapSchema = &llm.Schema{
	Name:        "interview-roadmap",
	Description: "A day-by-day interview preparation plan",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
			"days": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"day":     map[string]any{"type": "integer", "minimum": 1},
						"topic":   map[string]any{"type": "string"},
						"summary": map[string]any{"type": "string"},
						"tasks": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"title":    map[string]any{"type": "string"},
									"duration": map[string]any{"type": "string", "description": "Human readable, e.g. 30 mins"},
									"type": map[string]any{
										"type": "string",
										"enum": []any{"video", "reading", "coding", "practice"},
									},
									"platform":        map[string]any{"type": "string"},
									"link":            map[string]any{"type": "string"},
									"codingChallenge": challengeDef(),
								},
								"required":             []any{"title", "duration", "type", "platform"},
								"additionalProperties": false,
							},
						},
					},
					"required":             []any{"day", "topic", "summary", "tasks"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "days"},
		"additionalProperties": false,
	},
}
