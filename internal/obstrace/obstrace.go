// Package obstrace wires one OpenTelemetry span per skill invocation. When
// disabled it returns a no-op tracer provider, so the engine never has to
// branch on whether tracing is configured.
package obstrace

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config controls whether and how skill execution spans are exported.
type Config struct {
	Enabled     bool
	ServiceName string
}

// Init builds a TracerProvider per cfg: a stdout-exporting SDK provider when
// enabled, a no-op provider otherwise. It does not call otel.SetTracerProvider,
// so callers not using this package are unaffected.
func Init(cfg Config) (trace.TracerProvider, error) {
	if !cfg.Enabled {
		return noop.NewTracerProvider(), nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("obstrace: create exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	return tp, nil
}

// SkillTracer starts one span per skill invocation under a configured
// TracerProvider.
type SkillTracer struct {
	tracer trace.Tracer
}

// NewSkillTracer returns a tracer that names its spans under tracerName,
// drawing from provider.
func NewSkillTracer(provider trace.TracerProvider, tracerName string) *SkillTracer {
	return &SkillTracer{tracer: provider.Tracer(tracerName)}
}

// StartSkillExecution opens a "skill.execute" span annotated with the
// skill's id, the model dispatched for it, its execution mode, and whether
// its result was served from the input-hash cache. Callers must call
// trace.SpanFromContext(ctx).End() via the returned end func.
func (t *SkillTracer) StartSkillExecution(ctx context.Context, skillID, model, executionMode string, cached bool) (context.Context, func()) {
	ctx, span := t.tracer.Start(ctx, "skill.execute", trace.WithAttributes(
		attribute.String("skill_id", skillID),
		attribute.String("model", model),
		attribute.String("execution_mode", executionMode),
		attribute.Bool("cached", cached),
	))
	return ctx, func() { span.End() }
}

// RecordError marks the span currently in ctx as failed and attaches err.
func RecordError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
