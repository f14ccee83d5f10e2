package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearOrder(t *testing.T) {
	g := New([]Node{
		{SkillID: "a"},
		{SkillID: "b", Dependencies: []DependencySpec{{SourceSkill: "a", Fields: []string{"result"}}}},
		{SkillID: "c", Dependencies: []DependencySpec{{SourceSkill: "b"}}},
	})
	order, err := g.TopologicalOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestDiamondOrder(t *testing.T) {
	g := New([]Node{
		{SkillID: "a"},
		{SkillID: "b", Dependencies: []DependencySpec{{SourceSkill: "a"}}},
		{SkillID: "c", Dependencies: []DependencySpec{{SourceSkill: "a"}}},
		{SkillID: "d", Dependencies: []DependencySpec{{SourceSkill: "b"}, {SourceSkill: "c"}}},
	})
	order, err := g.TopologicalOrder()
	require.NoError(t, err)
	assert.Equal(t, "a", order[0])
	assert.Equal(t, "d", order[3])
}

func TestTieBreakDeterminism(t *testing.T) {
	g := New([]Node{
		{SkillID: "z"},
		{SkillID: "a"},
		{SkillID: "m"},
	})
	first, err := g.TopologicalOrder()
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		next, err := g.TopologicalOrder()
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}
	assert.Equal(t, []string{"a", "m", "z"}, first)
}

func TestDetectsCycle(t *testing.T) {
	g := New([]Node{
		{SkillID: "a", Dependencies: []DependencySpec{{SourceSkill: "b"}}},
		{SkillID: "b", Dependencies: []DependencySpec{{SourceSkill: "a"}}},
	})
	_, err := g.TopologicalOrder()
	assert.ErrorIs(t, err, ErrCycleDetected)
}

func TestMissingDependency(t *testing.T) {
	g := New([]Node{
		{SkillID: "a", Dependencies: []DependencySpec{{SourceSkill: "nonexistent"}}},
	})
	err := g.Validate()
	require.Error(t, err)
	var missing *MissingDependencyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "a", missing.Skill)
	assert.Equal(t, "nonexistent", missing.Missing)
}

func TestTopologicalCorrectness(t *testing.T) {
	g := New([]Node{
		{SkillID: "d", Dependencies: []DependencySpec{{SourceSkill: "b"}, {SourceSkill: "c"}}},
		{SkillID: "c", Dependencies: []DependencySpec{{SourceSkill: "a"}}},
		{SkillID: "b", Dependencies: []DependencySpec{{SourceSkill: "a"}}},
		{SkillID: "a"},
	})
	order, err := g.TopologicalOrder()
	require.NoError(t, err)
	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, n := range g.Nodes {
		for _, dep := range n.Dependencies {
			assert.Less(t, pos[dep.SourceSkill], pos[n.SkillID])
		}
	}
}
