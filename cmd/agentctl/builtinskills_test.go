package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthub/runtime/pkg/executor"
	"github.com/agenthub/runtime/pkg/provider"
)

func TestBuiltinSkillsAreWellFormed(t *testing.T) {
	skills := builtinSkills()
	require.Len(t, skills, 3)

	ids := map[string]bool{}
	for _, s := range skills {
		ids[s.ID] = true
	}
	assert.True(t, ids["word_count"])
	assert.True(t, ids["char_count"])
	assert.True(t, ids["summarize"])
}

func TestRegisterBuiltinHandlersWordCount(t *testing.T) {
	exec := executor.New()
	registerBuiltinHandlers(exec)

	def := builtinSkills()[0]
	result, err := exec.Execute(context.Background(), def, map[string]any{"text": "three little words"}, "", mockProvider{}, "", "local")
	require.NoError(t, err)
	assert.Equal(t, float64(3), result.Output["count"])
}

func TestMockProviderReturnsSummaryJSON(t *testing.T) {
	resp, err := mockProvider{}.CallModel(context.Background(), provider.Request{UserContent: "hello world", Model: "local"})
	require.NoError(t, err)
	assert.Contains(t, resp.Content, "summary")
}
