package executor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthub/runtime/pkg/provider"
	"github.com/agenthub/runtime/pkg/schema"
	"github.com/agenthub/runtime/pkg/skill"
)

type mockProvider struct {
	response string
}

func (m mockProvider) CallModel(_ context.Context, _ provider.Request) (provider.Response, error) {
	return provider.Response{
		Content: m.response,
		Usage:   provider.Usage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30},
		Model:   "mock",
	}, nil
}

func wordCountSkill() skill.Definition {
	return skill.Definition{
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
		MaxOutputTokens: 100,
	}
}

func summarizeSkill() skill.Definition {
	return skill.Definition{
		ID: "summarize",
		InputSchema: schema.New(map[string]any{
			"type":       "object",
			"required":   []any{"text"},
			"properties": map[string]any{"text": map[string]any{"type": "string"}},
		}),
		OutputSchema: schema.New(map[string]any{
			"type":       "object",
			"required":   []any{"summary"},
			"properties": map[string]any{"summary": map[string]any{"type": "string"}},
		}),
		ExecutionMode:   skill.LLM,
		MaxOutputTokens: 500,
	}
}

func TestDeterministicExecution(t *testing.T) {
	exec := New()
	exec.RegisterDeterministic("word_count", func(input map[string]any) (map[string]any, error) {
		text, _ := input["text"].(string)
		return map[string]any{"count": float64(len(strings.Fields(text)))}, nil
	})

	result, err := exec.Execute(context.Background(), wordCountSkill(),
		map[string]any{"text": "hello world foo"}, skill.StrictJson, mockProvider{}, "", "mock")
	require.NoError(t, err)
	assert.Equal(t, float64(3), result.Output["count"])
	assert.False(t, result.Cached)
}

func TestLLMExecution(t *testing.T) {
	exec := New()
	prov := mockProvider{response: `{"summary":"short"}`}

	result, err := exec.Execute(context.Background(), summarizeSkill(),
		map[string]any{"text": "some long text"}, skill.StrictJson, prov, "Summarize.", "gpt-4o")
	require.NoError(t, err)
	assert.Equal(t, "short", result.Output["summary"])
}

func TestRejectsFreeTextResponse(t *testing.T) {
	exec := New()
	prov := mockProvider{response: `"just a string"`}

	_, err := exec.Execute(context.Background(), summarizeSkill(),
		map[string]any{"text": "some text"}, skill.StrictJson, prov, "Summarize.", "gpt-4o")
	require.Error(t, err)
	var execErr *Error
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, KindFreeTextRejected, execErr.Kind)
}

func TestCachesResult(t *testing.T) {
	exec := New()
	exec.RegisterDeterministic("word_count", func(input map[string]any) (map[string]any, error) {
		text, _ := input["text"].(string)
		return map[string]any{"count": float64(len(strings.Fields(text)))}, nil
	})

	input := map[string]any{"text": "hello world"}
	_, err := exec.Execute(context.Background(), wordCountSkill(), input, skill.StrictJson, mockProvider{}, "", "mock")
	require.NoError(t, err)

	second, err := exec.Execute(context.Background(), wordCountSkill(), input, skill.StrictJson, mockProvider{}, "", "mock")
	require.NoError(t, err)
	assert.True(t, second.Cached)
}

func TestDeterministicMissingHandler(t *testing.T) {
	exec := New()
	_, err := exec.Execute(context.Background(), wordCountSkill(),
		map[string]any{"text": "x"}, skill.StrictJson, mockProvider{}, "", "mock")
	require.Error(t, err)
	var execErr *Error
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, KindDeterministicError, execErr.Kind)
}

func TestInputSchemaViolation(t *testing.T) {
	exec := New()
	_, err := exec.Execute(context.Background(), wordCountSkill(),
		map[string]any{"wrong_field": "x"}, skill.StrictJson, mockProvider{}, "", "mock")
	require.Error(t, err)
	var execErr *Error
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, KindSchemaViolation, execErr.Kind)
}

func TestOutputTooLarge(t *testing.T) {
	exec := New()
	def := summarizeSkill()
	def.MaxOutputTokens = 1
	prov := mockProvider{response: `{"summary":"this summary is long enough to exceed one token of budget"}`}

	_, err := exec.Execute(context.Background(), def,
		map[string]any{"text": "x"}, skill.StrictJson, prov, "Summarize.", "gpt-4o")
	require.Error(t, err)
	var execErr *Error
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, KindOutputTooLarge, execErr.Kind)
}

func TestCompactJsonRenamesTopLevelKeys(t *testing.T) {
	exec := New()
	def := summarizeSkill()
	def.CompactKeys = map[string]string{"summary": "s"}
	prov := mockProvider{response: `{"summary":"short"}`}

	result, err := exec.Execute(context.Background(), def,
		map[string]any{"text": "x"}, skill.CompactJson, prov, "Summarize.", "gpt-4o")
	require.NoError(t, err)
	// Output itself keeps the schema's field names; compacting only applies
	// to the serialized form used for the size check.
	assert.Equal(t, "short", result.Output["summary"])
}
