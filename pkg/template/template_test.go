package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthub/runtime/pkg/memory"
	"github.com/agenthub/runtime/pkg/skill"
)

func sampleTemplate() AgentTemplate {
	return AgentTemplate{
		ID:                "research",
		AllowedSkills:     []string{"search", "summarize"},
		DefaultMemoryTier: memory.TierDelta,
		ResponseMode:      skill.StrictJson,
		MaxBudget:         5000,
		SystemInstruction: "You are a research agent.",
		OutputSchema:      map[string]any{"type": "object"},
	}
}

func TestRegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(sampleTemplate()))

	_, ok := reg.Get("research")
	assert.True(t, ok)
	_, ok = reg.Get("unknown")
	assert.False(t, ok)
}

func TestSkillAllowedCheck(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(sampleTemplate()))

	assert.True(t, reg.SkillAllowed("research", "search"))
	assert.False(t, reg.SkillAllowed("research", "delete"))
	assert.False(t, reg.SkillAllowed("unknown", "search"))
}

func TestListIDsSorted(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(AgentTemplate{ID: "zeta"}))
	require.NoError(t, reg.Register(AgentTemplate{ID: "alpha"}))

	assert.Equal(t, []string{"alpha", "zeta"}, reg.ListIDs())
}
