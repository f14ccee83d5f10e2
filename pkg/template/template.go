// Package template defines the agent template: a named, pre-authored bundle
// of allowed skills, default memory tier, response mode, and budget that the
// compiler checks a user's agent configuration against.
package template

import (
	"github.com/agenthub/runtime/internal/registry"
	"github.com/agenthub/runtime/pkg/memory"
	"github.com/agenthub/runtime/pkg/skill"
)

// AgentTemplate is an immutable, pre-authored agent shape.
type AgentTemplate struct {
	ID                string
	AllowedSkills     []string
	DefaultMemoryTier memory.Tier
	ResponseMode      skill.ResponseMode
	MaxBudget         int
	SystemInstruction string
	OutputSchema      map[string]any
}

// Registry holds agent templates by id.
type Registry struct {
	base *registry.BaseRegistry[AgentTemplate]
}

// NewRegistry returns an empty template registry.
func NewRegistry() *Registry {
	return &Registry{base: registry.New[AgentTemplate]()}
}

// Register stores t under its ID, overwriting any previous entry.
func (r *Registry) Register(t AgentTemplate) error {
	return r.base.Register(t.ID, t)
}

// Get returns the template registered under id, if any.
func (r *Registry) Get(id string) (AgentTemplate, bool) {
	return r.base.Get(id)
}

// SkillAllowed reports whether templateID's allow-list includes skillID.
// An unknown template allows nothing.
func (r *Registry) SkillAllowed(templateID, skillID string) bool {
	t, ok := r.base.Get(templateID)
	if !ok {
		return false
	}
	for _, s := range t.AllowedSkills {
		if s == skillID {
			return true
		}
	}
	return false
}

// ListIDs returns every registered template id, sorted ascending.
func (r *Registry) ListIDs() []string {
	return r.base.ListIDs()
}
