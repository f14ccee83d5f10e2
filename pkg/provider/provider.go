// Package provider defines the abstract language-model call contract the
// execution engine drives, plus the static per-model cost table.
package provider

import (
	"context"
	"errors"
	"fmt"
)

// Request is a single, stateless call to a model.
type Request struct {
	SystemPrompt string
	UserContent  string
	MaxTokens    int
	Model        string
}

// Usage reports the token accounting for a completed call.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Response is the result of a successful call.
type Response struct {
	Content string
	Usage   Usage
	Model   string
}

// Sentinel errors for providers with no extra payload.
var (
	ErrCallFailed      = errors.New("provider: model call failed")
	ErrInvalidResponse = errors.New("provider: invalid response")
)

// BudgetExceededError reports that a provider refused a call because it
// would exceed a caller-imposed budget.
type BudgetExceededError struct {
	Used  int
	Limit int
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("provider: budget exceeded: used %d, limit %d", e.Used, e.Limit)
}

// Provider is the abstract model-call contract. Production adapters (not
// part of this module, per its scope) translate Request/Response to
// OpenAI-, Anthropic-, or Google-compatible REST calls.
type Provider interface {
	CallModel(ctx context.Context, req Request) (Response, error)
}

// costPer1K is the static USD-per-1000-tokens rate table. Unknown models
// fall back to the gpt-4o rate.
var costPer1K = map[string]float64{
	"gpt-4o":        0.005,
	"gpt-4o-mini":   0.00015,
	"gpt-4-turbo":   0.01,
	"gpt-3.5-turbo": 0.0005,
}

const defaultCostPer1K = 0.005

// CostPer1K returns the USD rate per 1000 tokens for model.
func CostPer1K(model string) float64 {
	if rate, ok := costPer1K[model]; ok {
		return rate
	}
	return defaultCostPer1K
}
