// Command agentctl is the CLI for the agent execution runtime.
//
// Usage:
//
//	agentctl validate config.yaml
//	agentctl compile --template templates.yaml --agent agent.yaml
//	agentctl run --template templates.yaml --agent agent.yaml
//	agentctl schema --compact
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/agenthub/runtime/internal/obslog"
)

// CLI defines the command-line interface.
type CLI struct {
	Validate ValidateCmd `cmd:"" help:"Validate a template or agent config file."`
	Compile  CompileCmd  `cmd:"" help:"Compile a user agent config against a template set."`
	Run      RunCmd      `cmd:"" help:"Compile and run an agent against the built-in mock provider."`
	Schema   SchemaCmd   `cmd:"" help:"Generate JSON Schema for config types."`

	LogLevel string `help:"Log level (debug, info, warn, error)." default:"info"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("agentctl"),
		kong.Description("Compile and run deterministic, budget-governed agents."),
		kong.UsageOnError(),
	)

	obslog.SetLevel(obslog.ParseLevel(cli.LogLevel))

	if err := ctx.Run(&cli); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
