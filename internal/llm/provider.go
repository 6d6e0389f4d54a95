package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one completion. Every SmartPrep content request
// (question sets, challenges, code runs, evaluations, roadmaps) goes
// through a single Generate call.
type Provider interface {
	// Generate returns the model reply. When req.Schema is set the reply
	// has been extracted and validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

// Request is a single-turn prompt plus the shape the answer must take.
type Request struct {
	// System sets the interviewer or judge persona.
	System string

	Messages []Message

	// Schema, when set, is passed to the vendor's structured output mode
	// and checked again locally. A nil schema asks for free text.
	Schema *Schema

	// MaxTokens bounds the reply. Long roadmaps need the most.
	MaxTokens int

	// Temperature in 0..1. Zero leaves the vendor default.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for a structured reply.
type Schema struct {
	// Name is sent to vendors that want one and keys the compiled schema
	// cache, so it must be unique per definition. Kebab-case.
	Name string

	Description string

	Definition map[string]any

	// Strict enables OpenAI strict decoding. Strict mode requires every
	// property to be required, so schemas with optional fields leave it off.
	Strict bool
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response is a completed generation.
type Response struct {
	// Content is the validated JSON document when a schema was given,
	// otherwise the raw reply text.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request, which may be a
	// dated variant of the configured one.
	Model string

	// StopReason is StopEnd or StopMaxTokens.
	StopReason string
}

// Usage is token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finish turns a vendor reply into a Response. Truncated replies are
// reported as ErrMaxTokensExceeded before any schema check, since a cut
// JSON document would only surface as a confusing parse error.
func finish(req Request, reply, stop string, usage Usage, model string) (*Response, error) {
	if stop == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Limit: req.MaxTokens, Content: json.RawMessage(reply)}
	}
	content, err := structuredContent(req.Schema, reply)
	if err != nil {
		return nil, err
	}
	return &Response{
		Content:    content,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}
