package executor

import (
	"context"
	"encoding/json"

	"github.com/agenthub/runtime/pkg/provider"
	"github.com/agenthub/runtime/pkg/skill"
)

// DeterministicHandler computes a skill's output locally, without going
// through a model provider.
type DeterministicHandler func(input map[string]any) (map[string]any, error)

// Result is the outcome of one successful skill execution.
type Result struct {
	Output map[string]any
	Usage  provider.Usage
	Cached bool
}

// Executor runs skills against their cache, schemas, and either a
// deterministic handler or a model provider.
type Executor struct {
	cache    *InputCache
	handlers map[string]DeterministicHandler
}

// New returns an executor with an empty cache and no registered handlers.
func New() *Executor {
	return &Executor{cache: NewInputCache(), handlers: make(map[string]DeterministicHandler)}
}

// RegisterDeterministic binds handler to skillID for Deterministic-mode
// skills. A later registration for the same id replaces the earlier one.
func (e *Executor) RegisterDeterministic(skillID string, handler DeterministicHandler) {
	e.handlers[skillID] = handler
}

// Execute runs one skill call: a cache hit short-circuits everything below
// it; otherwise the input is validated, dispatched to a handler or the
// provider, the output is stripped and validated against the skill's output
// schema, serialized per responseMode to check it against MaxOutputTokens,
// and finally cached.
func (e *Executor) Execute(
	ctx context.Context,
	def skill.Definition,
	input map[string]any,
	responseMode skill.ResponseMode,
	prov provider.Provider,
	systemPrompt string,
	model string,
) (Result, error) {
	inputJSON, err := json.Marshal(input)
	if err != nil {
		inputJSON = []byte("{}")
	}
	hash := InputHash(def.ID, string(inputJSON))

	if cached, ok := e.cache.Get(hash); ok {
		return Result{Output: cached, Cached: true}, nil
	}

	if err := def.InputSchema.Validate(toAny(input)); err != nil {
		return Result{}, &Error{Kind: KindSchemaViolation, Detail: err.Error(), Cause: err}
	}

	var output map[string]any
	var usage provider.Usage

	if def.IsDeterministic() {
		handler, ok := e.handlers[def.ID]
		if !ok {
			return Result{}, &Error{Kind: KindDeterministicError, Detail: "no handler for skill: " + def.ID}
		}
		result, err := handler(input)
		if err != nil {
			return Result{}, &Error{Kind: KindDeterministicError, Detail: err.Error(), Cause: err}
		}
		output = result
	} else {
		req := provider.Request{
			SystemPrompt: systemPrompt,
			UserContent:  string(inputJSON),
			MaxTokens:    def.MaxOutputTokens,
			Model:        model,
		}
		resp, err := prov.CallModel(ctx, req)
		if err != nil {
			return Result{}, &Error{Kind: KindProvider, Detail: err.Error(), Cause: err}
		}
		var parsed any
		if err := json.Unmarshal([]byte(resp.Content), &parsed); err != nil {
			return Result{}, &Error{Kind: KindJSONParse, Detail: err.Error(), Cause: err}
		}
		if _, isString := parsed.(string); isString {
			return Result{}, &Error{Kind: KindFreeTextRejected}
		}
		obj, ok := parsed.(map[string]any)
		if !ok {
			return Result{}, &Error{Kind: KindFreeTextRejected}
		}
		output = obj
		usage = resp.Usage
	}

	def.OutputSchema.StripUnknownFields(output)
	if err := def.OutputSchema.Validate(toAny(output)); err != nil {
		return Result{}, &Error{Kind: KindSchemaViolation, Detail: err.Error(), Cause: err}
	}

	outputStr, err := serializeForSizeCheck(output, responseMode, def.CompactKeys)
	if err != nil {
		return Result{}, &Error{Kind: KindJSONParse, Detail: err.Error(), Cause: err}
	}

	if def.MaxOutputTokens > 0 {
		tokenEst := len(outputStr) / 4
		if tokenEst > def.MaxOutputTokens {
			return Result{}, &Error{Kind: KindOutputTooLarge, Actual: tokenEst, Max: def.MaxOutputTokens}
		}
	}

	e.cache.Insert(hash, output)

	return Result{Output: output, Usage: usage, Cached: false}, nil
}

func toAny(m map[string]any) any { return m }

// serializeForSizeCheck renders output per responseMode: StrictJson
// serializes it verbatim, CompactJson first renames top-level keys through
// compactKeys.
func serializeForSizeCheck(output map[string]any, mode skill.ResponseMode, compactKeys map[string]string) (string, error) {
	target := output
	if mode == skill.CompactJson && len(compactKeys) > 0 {
		compacted := make(map[string]any, len(output))
		for k, v := range output {
			if short, ok := compactKeys[k]; ok {
				compacted[short] = v
			} else {
				compacted[k] = v
			}
		}
		target = compacted
	}
	data, err := json.Marshal(target)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
