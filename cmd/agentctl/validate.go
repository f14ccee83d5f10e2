package main

import (
	"fmt"

	"github.com/agenthub/runtime/internal/configio"
)

// ValidateCmd validates a template or agent config file's shape without
// compiling it against a template registry.
type ValidateCmd struct {
	Config string `arg:"" name:"config" help:"Path to a templates.yaml or agent.yaml file." type:"path"`
	Kind   string `help:"Config kind: templates or agent." enum:"templates,agent" default:"agent"`
}

func (c *ValidateCmd) Run(cli *CLI) error {
	switch c.Kind {
	case "templates":
		templates, err := configio.LoadTemplates(c.Config)
		if err != nil {
			return fmt.Errorf("invalid: %w", err)
		}
		fmt.Printf("valid: %d template(s)\n", len(templates))
	default:
		cfg, err := configio.LoadAgentConfig(c.Config)
		if err != nil {
			return fmt.Errorf("invalid: %w", err)
		}
		fmt.Printf("valid: agent %q based on template %q\n", cfg.Name, cfg.BaseTemplate)
	}
	return nil
}
