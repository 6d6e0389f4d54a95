package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskSchema() *Schema {
	return &Schema{
		Name:        "test-task",
		Description: "A single study task",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":    map[string]any{"type": "string"},
				"minutes":  map[string]any{"type": "integer", "minimum": 0},
				"type":     map[string]any{"type": "string", "enum": []any{"video", "reading", "coding", "practice"}},
				"platform": map[string]any{"type": "string"},
			},
			"required": []any{"title", "minutes"},
		},
	}
}

func TestStructuredContent(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    string
		wantErr bool
	}{
		{"valid", `{"title":"Joins","minutes":30,"type":"reading"}`, `{"title":"Joins","minutes":30,"type":"reading"}`, false},
		{"valid without optional", `{"title":"Indexes","minutes":20}`, `{"title":"Indexes","minutes":20}`, false},
		{"json fence", "```json\n{\"title\":\"Joins\",\"minutes\":30}\n```", `{"title":"Joins","minutes":30}`, false},
		{"bare fence", "```\n{\"title\":\"Joins\",\"minutes\":30}\n```\n", `{"title":"Joins","minutes":30}`, false},
		{"leading prose", "Here is your task:\n{\"title\":\"Joins\",\"minutes\":30}\nGood luck!", `{"title":"Joins","minutes":30}`, false},
		{"missing required", `{"title":"Views"}`, "", true},
		{"wrong type", `{"title":"Triggers","minutes":"ten"}`, "", true},
		{"invalid enum", `{"title":"CTEs","minutes":15,"type":"podcast"}`, "", true},
		{"negative minimum", `{"title":"Locks","minutes":-1}`, "", true},
		{"malformed JSON", `{not json}`, "", true},
		{"empty", ``, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := structuredContent(taskSchema(), tt.reply)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.want, string(got))
				return
			}
			var invErr *ErrInvalidResponse
			require.Error(t, err)
			assert.True(t, errors.As(err, &invErr), "expected ErrInvalidResponse, got %T", err)
		})
	}
}

func TestStructuredContent_NilSchemaPassesThrough(t *testing.T) {
	got, err := structuredContent(nil, "```not json```")
	require.NoError(t, err)
	assert.Equal(t, "```not json```", string(got))
}

func TestStructuredContent_NestedObjects(t *testing.T) {
	schema := &Schema{
		Name:        "test-nested-day",
		Description: "Nested test",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"day": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"topic": map[string]any{"type": "string"},
					},
					"required": []any{"topic"},
				},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 4,
					"maxItems": 4,
				},
			},
			"required": []any{"day", "options"},
		},
	}

	_, err := structuredContent(schema, `{"day":{"topic":"Arrays"},"options":["a","b","c","d"]}`)
	assert.NoError(t, err)

	_, err = structuredContent(schema, `{"day":{"topic":"Arrays"},"options":[1,2,3,4]}`)
	assert.Error(t, err, "wrong array item type")

	_, err = structuredContent(schema, `{"day":{"topic":"Arrays"},"options":["a","b","c"]}`)
	assert.Error(t, err, "three options")
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`  {"a":1}  `, `{"a":1}`},
		{"```json\n[1,2]\n```", `[1,2]`},
		{"Sure! [1,2] done", `[1,2]`},
		{"no json here", "no json here"},
		{"```", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractJSON(tt.in), "input %q", tt.in)
	}
}
