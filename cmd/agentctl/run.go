package main

import (
	"context"
	"fmt"

	"github.com/agenthub/runtime/internal/obsmetrics"
	"github.com/agenthub/runtime/internal/obstrace"
	"github.com/agenthub/runtime/pkg/engine"
	"github.com/agenthub/runtime/pkg/executor"
	"github.com/agenthub/runtime/pkg/memory"
)

// RunCmd compiles an agent and executes it against the built-in mock
// provider and deterministic skills, printing the per-skill token report.
type RunCmd struct {
	Templates string `name:"template" help:"Path to templates.yaml." type:"path" required:""`
	Agent     string `name:"agent" help:"Path to agent.yaml." type:"path" required:""`
	Trace     bool   `help:"Export skill spans to stdout via OpenTelemetry."`
}

func (c *RunCmd) Run(cli *CLI) error {
	agent, err := compileFromFiles(c.Templates, c.Agent)
	if err != nil {
		return err
	}

	tracerProvider, err := obstrace.Init(obstrace.Config{Enabled: c.Trace, ServiceName: "agentctl"})
	if err != nil {
		return fmt.Errorf("initializing tracer: %w", err)
	}
	if sdkProvider, ok := tracerProvider.(interface{ Shutdown(context.Context) error }); ok {
		defer sdkProvider.Shutdown(context.Background())
	}
	tracer := obstrace.NewSkillTracer(tracerProvider, "agentctl")
	metrics := obsmetrics.New()

	exec := executor.New()
	registerBuiltinHandlers(exec)

	eng := engine.New(exec, engine.WithTracer(tracer), engine.WithMetrics(metrics))
	mem := memory.NewPool()

	result, err := eng.Execute(context.Background(), agent, mem, mockProvider{})
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	fmt.Print(result.Report)
	fmt.Printf("total cost: $%.6f | total tokens: %d\n", result.TotalCost, result.TotalTokens)
	return nil
}
