package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthub/runtime/pkg/schema"
)

func TestIsDeterministic(t *testing.T) {
	det := Definition{ExecutionMode: Deterministic}
	llm := Definition{ExecutionMode: LLM}

	assert.True(t, det.IsDeterministic())
	assert.False(t, llm.IsDeterministic())
}

func TestDefinitionCarriesSchemas(t *testing.T) {
	def := Definition{
		ID:          "search",
		InputSchema: schema.New(map[string]any{"type": "object"}),
		CompactKeys: map[string]string{"results": "r"},
	}
	assert.Equal(t, "search", def.ID)
	assert.Equal(t, "r", def.CompactKeys["results"])
}
