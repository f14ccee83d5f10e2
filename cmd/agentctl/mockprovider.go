package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthub/runtime/pkg/provider"
)

// mockProvider answers every call with a canned, schema-shaped response so
// agentctl run works without any API key configured.
type mockProvider struct{}

func (mockProvider) CallModel(_ context.Context, req provider.Request) (provider.Response, error) {
	words := strings.Fields(req.UserContent)
	preview := req.UserContent
	if len(words) > 12 {
		preview = strings.Join(words[:12], " ") + "..."
	}
	content := fmt.Sprintf(`{"summary":%q}`, preview)
	tokens := len(req.UserContent)/4 + len(req.SystemPrompt)/4
	return provider.Response{
		Content: content,
		Usage:   provider.Usage{PromptTokens: tokens, CompletionTokens: len(content) / 4, TotalTokens: tokens + len(content)/4},
		Model:   req.Model,
	}, nil
}
