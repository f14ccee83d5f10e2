package main

import (
	"fmt"

	"github.com/agenthub/runtime/internal/configio"
	"github.com/agenthub/runtime/pkg/compiler"
	"github.com/agenthub/runtime/pkg/template"
)

// CompileCmd resolves a user agent config against a template set and the
// built-in skill catalog, printing the resulting execution order.
type CompileCmd struct {
	Templates string `name:"template" help:"Path to templates.yaml." type:"path" required:""`
	Agent     string `name:"agent" help:"Path to agent.yaml." type:"path" required:""`
}

func (c *CompileCmd) Run(cli *CLI) error {
	agent, err := compileFromFiles(c.Templates, c.Agent)
	if err != nil {
		return err
	}

	order, err := agent.Graph.TopologicalOrder()
	if err != nil {
		return fmt.Errorf("compiled agent has an invalid graph: %w", err)
	}

	fmt.Printf("compiled agent %q: template=%s budget=%d memory_tier=%s\n",
		agent.Name, agent.TemplateID, agent.Budget, agent.MemoryTier)
	fmt.Println("execution order:")
	for i, skillID := range order {
		fmt.Printf("  %d. %s\n", i+1, skillID)
	}
	return nil
}

func compileFromFiles(templatesPath, agentPath string) (*compiler.CompiledAgent, error) {
	templates, err := configio.LoadTemplates(templatesPath)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	reg := template.NewRegistry()
	for _, t := range templates {
		if err := reg.Register(t); err != nil {
			return nil, fmt.Errorf("registering template %q: %w", t.ID, err)
		}
	}

	config, err := configio.LoadAgentConfig(agentPath)
	if err != nil {
		return nil, fmt.Errorf("loading agent config: %w", err)
	}

	agent, err := compiler.Compile(config, reg, builtinSkills())
	if err != nil {
		return nil, fmt.Errorf("compiling agent: %w", err)
	}
	return agent, nil
}
