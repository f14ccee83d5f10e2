package main

import (
	"fmt"
	"strings"

	"github.com/agenthub/runtime/pkg/executor"
	"github.com/agenthub/runtime/pkg/schema"
	"github.com/agenthub/runtime/pkg/skill"
)

// builtinSkills returns the deterministic and LLM skill catalog agentctl
// ships with: no external registration step is required to try the runtime
// end to end.
func builtinSkills() []skill.Definition {
	return []skill.Definition{
		{
			ID: "word_count",
			InputSchema: schema.New(map[string]any{
				"type":       "object",
				"required":   []any{"text"},
				"properties": map[string]any{"text": map[string]any{"type": "string"}},
			}),
			OutputSchema: schema.New(map[string]any{
				"type":       "object",
				"required":   []any{"count"},
				"properties": map[string]any{"count": map[string]any{"type": "number"}},
			}),
			ExecutionMode:   skill.Deterministic,
			MaxOutputTokens: 50,
		},
		{
			ID: "char_count",
			InputSchema: schema.New(map[string]any{
				"type":       "object",
				"required":   []any{"text"},
				"properties": map[string]any{"text": map[string]any{"type": "string"}},
			}),
			OutputSchema: schema.New(map[string]any{
				"type":       "object",
				"required":   []any{"count"},
				"properties": map[string]any{"count": map[string]any{"type": "number"}},
			}),
			ExecutionMode:   skill.Deterministic,
			MaxOutputTokens: 50,
		},
		{
			ID: "summarize",
			InputSchema: schema.New(map[string]any{
				"type":       "object",
				"properties": map[string]any{"text": map[string]any{"type": "string"}},
			}),
			OutputSchema: schema.New(map[string]any{
				"type":       "object",
				"required":   []any{"summary"},
				"properties": map[string]any{"summary": map[string]any{"type": "string"}},
			}),
			ExecutionMode:   skill.LLM,
			MaxOutputTokens: 300,
		},
	}
}

// registerBuiltinHandlers wires the deterministic skills' handlers into exec.
func registerBuiltinHandlers(exec *executor.Executor) {
	exec.RegisterDeterministic("word_count", func(input map[string]any) (map[string]any, error) {
		text, _ := input["text"].(string)
		return map[string]any{"count": float64(len(strings.Fields(text)))}, nil
	})
	exec.RegisterDeterministic("char_count", func(input map[string]any) (map[string]any, error) {
		text, ok := input["text"].(string)
		if !ok {
			return nil, fmt.Errorf("char_count: missing text input")
		}
		return map[string]any{"count": float64(len(text))}, nil
	})
}
