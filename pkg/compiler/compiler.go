package compiler

import (
	"github.com/agenthub/runtime/internal/obslog"
	"github.com/agenthub/runtime/pkg/graph"
	"github.com/agenthub/runtime/pkg/memory"
	"github.com/agenthub/runtime/pkg/skill"
	"github.com/agenthub/runtime/pkg/template"
)

// SkillDep names one edge a user's config adds to the skill graph:
// skill_id depends on depends_on, optionally narrowed to Fields.
type SkillDep struct {
	SkillID   string
	DependsOn string
	Fields    []string
}

// UserAgentConfig is what a user submits to build an agent from a template.
type UserAgentConfig struct {
	Name               string
	BaseTemplate       string
	SelectedSkills     []string
	MemoryTierOverride *memory.Tier
	BudgetLimit        *int
	SkillDependencies  []SkillDep
}

// CompiledAgent is a fully resolved, ready-to-execute agent: its skills,
// their dependency graph, and the effective runtime parameters drawn from
// its template and the user's overrides.
type CompiledAgent struct {
	Name              string
	TemplateID        string
	SystemInstruction string
	ResponseMode      skill.ResponseMode
	MemoryTier        memory.Tier
	Budget            int
	Skills            []skill.Definition
	Graph             *graph.Graph
}

// Compile resolves config against templateRegistry and skillDefs into a
// CompiledAgent: template lookup, per-skill allow-list and catalog checks,
// budget-ceiling enforcement, and dependency-graph construction and
// validation, in that order.
func Compile(config UserAgentConfig, templateRegistry *template.Registry, skillDefs []skill.Definition) (*CompiledAgent, error) {
	tmpl, ok := templateRegistry.Get(config.BaseTemplate)
	if !ok {
		err := &Error{Kind: KindTemplateNotFound, Template: config.BaseTemplate}
		logCompileError(err, config.BaseTemplate)
		return nil, err
	}

	for _, skillID := range config.SelectedSkills {
		if !templateRegistry.SkillAllowed(config.BaseTemplate, skillID) {
			err := &Error{Kind: KindSkillNotAllowed, Skill: skillID, Template: tmpl.ID}
			logCompileError(err, tmpl.ID)
			return nil, err
		}
	}

	defsByID := make(map[string]skill.Definition, len(skillDefs))
	for _, def := range skillDefs {
		defsByID[def.ID] = def
	}

	resolvedSkills := make([]skill.Definition, 0, len(config.SelectedSkills))
	for _, skillID := range config.SelectedSkills {
		def, ok := defsByID[skillID]
		if !ok {
			err := &Error{Kind: KindUnknownSkill, Skill: skillID}
			logCompileError(err, tmpl.ID)
			return nil, err
		}
		resolvedSkills = append(resolvedSkills, def)
	}

	effectiveBudget := tmpl.MaxBudget
	if config.BudgetLimit != nil {
		effectiveBudget = *config.BudgetLimit
	}
	if effectiveBudget > tmpl.MaxBudget {
		err := &Error{Kind: KindBudgetExceeded, Requested: effectiveBudget, Max: tmpl.MaxBudget}
		logCompileError(err, tmpl.ID)
		return nil, err
	}

	memoryTier := tmpl.DefaultMemoryTier
	if config.MemoryTierOverride != nil {
		memoryTier = *config.MemoryTierOverride
	}

	g, err := buildGraph(config)
	if err != nil {
		logCompileError(err, tmpl.ID)
		return nil, err
	}

	return &CompiledAgent{
		Name:              config.Name,
		TemplateID:        tmpl.ID,
		SystemInstruction: tmpl.SystemInstruction,
		ResponseMode:      tmpl.ResponseMode,
		MemoryTier:        memoryTier,
		Budget:            effectiveBudget,
		Skills:            resolvedSkills,
		Graph:             g,
	}, nil
}

func buildGraph(config UserAgentConfig) (*graph.Graph, error) {
	nodes := make([]graph.Node, 0, len(config.SelectedSkills))
	for _, skillID := range config.SelectedSkills {
		var deps []graph.DependencySpec
		for _, d := range config.SkillDependencies {
			if d.SkillID == skillID {
				deps = append(deps, graph.DependencySpec{SourceSkill: d.DependsOn, Fields: d.Fields})
			}
		}
		nodes = append(nodes, graph.Node{SkillID: skillID, Dependencies: deps})
	}

	g := graph.New(nodes)
	if err := g.Validate(); err != nil {
		return nil, &Error{Kind: KindGraphError, Detail: err.Error(), Cause: err}
	}
	return g, nil
}

func logCompileError(err *Error, templateID string) {
	obslog.Default().Warn("agent compilation failed",
		"template_id", templateID,
		"error_kind", string(err.Kind),
		"skill_id", err.Skill,
	)
}
