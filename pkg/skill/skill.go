// Package skill defines the immutable descriptor for one registered
// capability: its schemas, execution mode, and output limits.
package skill

import "github.com/agenthub/runtime/pkg/schema"

// ExecutionMode selects how a skill is invoked.
type ExecutionMode string

const (
	// Deterministic skills dispatch to a registered pure handler.
	Deterministic ExecutionMode = "deterministic"
	// LLM skills are sent to the provider.
	LLM ExecutionMode = "llm"
)

// ResponseMode controls how a skill's output is serialized before the
// output-size check.
type ResponseMode string

const (
	// StrictJson serializes the output verbatim.
	StrictJson ResponseMode = "strict_json"
	// CompactJson applies a skill's key-rename map to top-level keys first.
	CompactJson ResponseMode = "compact_json"
)

// Definition is an immutable, registration-time descriptor of one skill.
type Definition struct {
	ID              string
	InputSchema     schema.JsonSchema
	OutputSchema    schema.JsonSchema
	ExecutionMode   ExecutionMode
	MaxOutputTokens int
	// CompactKeys maps an output field name to its compacted alias, applied
	// to top-level keys only when ResponseMode is CompactJson.
	CompactKeys map[string]string
}

// IsDeterministic reports whether the skill dispatches to a local handler
// rather than a model provider.
func (d Definition) IsDeterministic() bool {
	return d.ExecutionMode == Deterministic
}
