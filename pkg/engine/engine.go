package engine

import (
	"context"
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/agenthub/runtime/internal/obslog"
	"github.com/agenthub/runtime/internal/obsmetrics"
	"github.com/agenthub/runtime/internal/obstrace"
	"github.com/agenthub/runtime/internal/tokencount"
	"github.com/agenthub/runtime/pkg/compiler"
	"github.com/agenthub/runtime/pkg/executor"
	"github.com/agenthub/runtime/pkg/memory"
	"github.com/agenthub/runtime/pkg/optimizer"
	"github.com/agenthub/runtime/pkg/provider"
	"github.com/agenthub/runtime/pkg/skill"
)

// compressorMaxStringLen bounds how long a string value in a skill's output
// may be before the engine's semantic compressor truncates it.
const compressorMaxStringLen = 200

// Engine drives a CompiledAgent's skills to completion, wiring the token
// optimizer's caches and estimator around every call.
type Engine struct {
	executor    *executor.Executor
	promptCache *optimizer.StaticPromptCache
	schemaCache *optimizer.ToolSchemaCache
	deltaEngine *optimizer.DeltaContextEngine
	compressor  *optimizer.SemanticCompressor
	tracker     *optimizer.TokenTracker
	skillTracer *obstrace.SkillTracer
	metrics     *obsmetrics.Metrics
}

// Option configures optional engine behavior beyond the caches and tracker
// every engine always carries.
type Option func(*Engine)

// WithTracer attaches a skill-level OpenTelemetry tracer to the engine.
func WithTracer(tracer *obstrace.SkillTracer) Option {
	return func(e *Engine) { e.skillTracer = tracer }
}

// WithMetrics attaches a Prometheus metrics collector to the engine.
func WithMetrics(metrics *obsmetrics.Metrics) Option {
	return func(e *Engine) { e.metrics = metrics }
}

// New returns an engine that dispatches skill calls through exec.
func New(exec *executor.Executor, opts ...Option) *Engine {
	e := &Engine{
		executor:    exec,
		promptCache: optimizer.NewStaticPromptCache(),
		schemaCache: optimizer.NewToolSchemaCache(),
		deltaEngine: optimizer.NewDeltaContextEngine(),
		compressor:  optimizer.NewSemanticCompressor(compressorMaxStringLen),
		tracker:     optimizer.NewTokenTracker(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of a completed run.
type Result struct {
	Outputs     map[string]map[string]any
	Report      string
	TotalCost   float64
	TotalTokens int
}

// Tracker exposes the engine's accumulated token tracker.
func (e *Engine) Tracker() *optimizer.TokenTracker {
	return e.tracker
}

// Execute runs agent's skills in topological order against mem and prov,
// computing each skill's delta context and memory slice, estimating its
// token cost, selecting a model, dispatching it, compressing and storing
// its output, and deducting its realized token usage from the agent's budget.
// It stops with a budget-exhausted error once an estimate overshoots the
// remaining budget by more than 25%.
func (e *Engine) Execute(ctx context.Context, agent *compiler.CompiledAgent, mem memory.Source, prov provider.Provider) (*Result, error) {
	order, err := agent.Graph.TopologicalOrder()
	if err != nil {
		graphErr := &Error{Kind: KindGraphError, Detail: err.Error(), Cause: err}
		obslog.Default().Warn("run aborted on graph error", "template_id", agent.TemplateID,
			"error_kind", string(graphErr.Kind))
		return nil, graphErr
	}

	budgetRemaining := agent.Budget
	outputs := make(map[string]map[string]any, len(order))

	for _, skillID := range order {
		def, ok := findSkill(agent, skillID)
		if !ok {
			obslog.Default().Warn("skill in graph has no matching definition, skipping",
				"skill_id", skillID, "template_id", agent.TemplateID)
			continue
		}

		deps := dependenciesFor(agent, skillID)
		delta := e.deltaEngine.ComputeDelta(deps)
		deltaJSON, _ := json.Marshal(delta)
		deltaTokens := estimateTokens(string(deltaJSON))

		memText := mem.SelectAndTrim(agent.MemoryTier, budgetRemaining/4)
		memTokens := memory.EstimateTokens(memText)

		schemaHash := optimizer.SchemaHash(skillID)
		schemaJSON, _ := json.Marshal(def.OutputSchema.Raw())
		e.schemaCache.GetOrInsert(schemaHash, string(schemaJSON))
		schemaTokens := estimateTokens(string(schemaJSON))

		cachedPrompt := e.promptCache.GetOrCompile(skillID, agent.SystemInstruction)
		promptTokens := estimateTokens(cachedPrompt)

		est := optimizer.EstimateCall(promptTokens, deltaTokens, memTokens, schemaTokens, def.MaxOutputTokens)

		if est.Total > budgetRemaining {
			optimizer.SuggestDowngrades(est, budgetRemaining)
			if est.Total > budgetRemaining+budgetRemaining/4 {
				err := &Error{Kind: KindBudgetExhausted, Used: agent.Budget - budgetRemaining, Limit: agent.Budget}
				obslog.Default().Warn("run stopped on budget exhaustion", "template_id", agent.TemplateID,
					"skill_id", skillID, "error_kind", string(err.Kind))
				return nil, err
			}
		}

		model := "local"
		if !def.IsDeterministic() {
			model = selectModel(budgetRemaining, est.Total)
		}

		var input map[string]any
		if len(delta) == 0 {
			input = map[string]any{"input": "start"}
		} else {
			input = flattenDelta(delta)
		}

		executionMode := "llm"
		if def.IsDeterministic() {
			executionMode = "deterministic"
		}

		spanCtx := ctx
		var endSpan func()
		if e.skillTracer != nil {
			spanCtx, endSpan = e.skillTracer.StartSkillExecution(ctx, skillID, model, executionMode, false)
		}

		start := time.Now()
		result, err := e.executor.Execute(spanCtx, def, input, agent.ResponseMode, prov, cachedPrompt, model)
		elapsed := time.Since(start)

		if err != nil {
			execErr := &Error{Kind: KindSkillError, Detail: err.Error(), Cause: err}
			if e.skillTracer != nil {
				obstrace.RecordError(spanCtx, execErr)
			}
			if endSpan != nil {
				endSpan()
			}
			e.metrics.RecordError(skillID, string(execErr.Kind))
			obslog.Default().Warn("skill execution failed", "template_id", agent.TemplateID,
				"skill_id", skillID, "error_kind", string(execErr.Kind))
			return nil, execErr
		}
		if endSpan != nil {
			trace.SpanFromContext(spanCtx).SetAttributes(attribute.Bool("cached", result.Cached))
			endSpan()
		}

		compressed, _ := e.compressor.Compress(anyFromMap(result.Output)).(map[string]any)
		def.OutputSchema.StripUnknownFields(compressed)

		e.deltaEngine.Store(skillID, compressed)
		outputs[skillID] = compressed

		usageTotal := result.Usage.TotalTokens
		cost := (float64(usageTotal) / 1000.0) * provider.CostPer1K(model)

		outputJSON, _ := json.Marshal(result.Output)
		preciseTokens := tokencount.NewCounter(model).Count(string(outputJSON))

		e.tracker.Record(optimizer.TokenBreakdown{
			SkillID:        skillID,
			Model:          model,
			PromptTokens:   promptTokens,
			ContextTokens:  deltaTokens,
			MemoryTokens:   memTokens,
			SchemaTokens:   schemaTokens,
			ResponseTokens: result.Usage.CompletionTokens,
			TotalTokens:    usageTotal,
			Cost:           cost,
			PreciseTokens:  preciseTokens,
		})
		e.metrics.RecordCall(skillID, model, result.Cached, elapsed.Seconds(), usageTotal, cost)

		budgetRemaining = saturatingSub(budgetRemaining, usageTotal)
	}

	return &Result{
		Outputs:     outputs,
		Report:      e.tracker.Report(),
		TotalCost:   e.tracker.TotalCost(),
		TotalTokens: e.tracker.TotalTokens(),
	}, nil
}

func estimateTokens(s string) int {
	return len(s) / 4
}

func anyFromMap(m map[string]any) any { return m }

func findSkill(agent *compiler.CompiledAgent, skillID string) (skill.Definition, bool) {
	for _, s := range agent.Skills {
		if s.ID == skillID {
			return s, true
		}
	}
	return skill.Definition{}, false
}

func dependenciesFor(agent *compiler.CompiledAgent, skillID string) []optimizer.Dep {
	for _, n := range agent.Graph.Nodes {
		if n.SkillID != skillID {
			continue
		}
		deps := make([]optimizer.Dep, 0, len(n.Dependencies))
		for _, d := range n.Dependencies {
			deps = append(deps, optimizer.Dep{NodeID: d.SourceSkill, Fields: d.Fields})
		}
		return deps
	}
	return nil
}

func selectModel(budgetRemaining, estimatedTotal int) string {
	denom := budgetRemaining
	if denom < 1 {
		denom = 1
	}
	ratio := float64(estimatedTotal) / float64(denom)
	if ratio > 0.5 {
		return "gpt-4o-mini"
	}
	return "gpt-4o"
}

func flattenDelta(delta map[string]any) map[string]any {
	merged := make(map[string]any)
	for _, fields := range delta {
		fieldObj, ok := fields.(map[string]any)
		if !ok {
			continue
		}
		for k, v := range fieldObj {
			merged[k] = v
		}
	}
	if len(merged) == 0 {
		return delta
	}
	return merged
}

func saturatingSub(a, b int) int {
	if b >= a {
		return 0
	}
	return a - b
}
