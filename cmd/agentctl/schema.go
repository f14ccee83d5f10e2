package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"

	"github.com/agenthub/runtime/pkg/compiler"
	"github.com/agenthub/runtime/pkg/template"
)

// SchemaCmd generates JSON Schema for the runtime's user-facing config
// types, for editor tooling or a config-builder UI.
type SchemaCmd struct {
	Type    string `help:"Config type: agent or template." enum:"agent,template" default:"agent"`
	Compact bool   `short:"c" help:"Compact JSON output (no indentation)."`
}

func (c *SchemaCmd) Run(cli *CLI) error {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	var schema *jsonschema.Schema
	switch c.Type {
	case "template":
		schema = reflector.Reflect(&template.AgentTemplate{})
		schema.Title = "Agent Template Schema"
	default:
		schema = reflector.Reflect(&compiler.UserAgentConfig{})
		schema.Title = "User Agent Config Schema"
	}
	schema.Version = "http://json-schema.org/draft-07/schema#"

	encoder := json.NewEncoder(os.Stdout)
	if !c.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(schema); err != nil {
		return fmt.Errorf("encoding schema: %w", err)
	}
	return nil
}
