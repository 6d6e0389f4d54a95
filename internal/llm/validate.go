package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled holds compiled schemas by name. Content requests use a handful
// of fixed schemas, so the cache stays tiny.
var compiled sync.Map // map[string]*jsonschema.Schema

// structuredContent turns a model reply into the JSON document it carries
// and checks it against schema. With a nil schema the reply is returned
// as is. Models without native structured output tend to wrap JSON in a
// markdown fence or add a sentence before it; both are stripped.
func structuredContent(schema *Schema, reply string) (json.RawMessage, error) {
	if schema == nil {
		return json.RawMessage(reply), nil
	}

	doc := extractJSON(reply)
	var parsed any
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		return nil, &ErrInvalidResponse{
			Content: json.RawMessage(reply),
			Err:     fmt.Errorf("invalid JSON: %w", err),
		}
	}

	s, err := compileSchema(schema)
	if err != nil {
		return nil, &ErrInvalidResponse{
			Content: json.RawMessage(reply),
			Err:     fmt.Errorf("compile schema %q: %w", schema.Name, err),
		}
	}
	if err := s.Validate(parsed); err != nil {
		return nil, &ErrInvalidResponse{
			Content: json.RawMessage(doc),
			Err:     fmt.Errorf("%s: schema validation failed: %w", schema.Name, err),
		}
	}
	return json.RawMessage(doc), nil
}

// extractJSON strips a markdown fence and any prose around the outermost
// JSON object or array.
func extractJSON(reply string) string {
	s := strings.TrimSpace(reply)
	if strings.HasPrefix(s, "```") {
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:]
		} else {
			s = strings.TrimLeft(s, "`")
		}
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
	}
	if s == "" || s[0] == '{' || s[0] == '[' {
		return s
	}

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return s
	}
	closer := byte('}')
	if s[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(s, closer)
	if end < start {
		return s
	}
	return s[start : end+1]
}

func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	if s, ok := compiled.Load(schema.Name); ok {
		return s.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, not Go map literals with
	// int keywords, so round-trip the definition.
	raw, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	var def any
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := "schema://smartprep/" + schema.Name + ".json"
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	compiled.Store(schema.Name, s)
	return s, nil
}
