package optimizer

import (
	"fmt"
	"strings"
	"sync"
)

// TokenBreakdown is one skill call's realized token usage and its dollar
// cost, as recorded by a TokenTracker.
type TokenBreakdown struct {
	SkillID        string
	Model          string
	PromptTokens   int
	ContextTokens  int
	MemoryTokens   int
	SchemaTokens   int
	ResponseTokens int
	TotalTokens    int
	Cost           float64
	// PreciseTokens is an optional exact encoder-based count of the
	// response text, surfaced only in Report; it never feeds a budget
	// decision, which stays on the ×4 heuristic throughout the tracker.
	PreciseTokens int
}

// TokenTracker accumulates TokenBreakdown records across an agent run and
// reports totals.
type TokenTracker struct {
	mu        sync.Mutex
	records   []TokenBreakdown
	totalCost float64
}

// NewTokenTracker returns an empty tracker.
func NewTokenTracker() *TokenTracker {
	return &TokenTracker{}
}

// Record appends breakdown and adds its cost to the running total.
func (t *TokenTracker) Record(breakdown TokenBreakdown) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.totalCost += breakdown.Cost
	t.records = append(t.records, breakdown)
}

// TotalCost returns the sum of every recorded breakdown's cost.
func (t *TokenTracker) TotalCost() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalCost
}

// TotalTokens returns the sum of every recorded breakdown's total tokens.
func (t *TokenTracker) TotalTokens() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	var total int
	for _, r := range t.records {
		total += r.TotalTokens
	}
	return total
}

// Records returns the tracker's breakdowns in recording order.
func (t *TokenTracker) Records() []TokenBreakdown {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]TokenBreakdown, len(t.records))
	copy(out, t.records)
	return out
}

// Report renders a human-readable summary of the tracker's state: a totals
// line followed by one line per recorded call.
func (t *TokenTracker) Report() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "Total cost: $%.6f | Total tokens: %d\n", t.totalCost, t.sumTokensLocked())
	for _, r := range t.records {
		fmt.Fprintf(&b, "  [%s] model=%s prompt=%d ctx=%d mem=%d schema=%d resp=%d total=%d precise=%d cost=$%.6f\n",
			r.SkillID, r.Model, r.PromptTokens, r.ContextTokens, r.MemoryTokens, r.SchemaTokens,
			r.ResponseTokens, r.TotalTokens, r.PreciseTokens, r.Cost)
	}
	return b.String()
}

func (t *TokenTracker) sumTokensLocked() int {
	var total int
	for _, r := range t.records {
		total += r.TotalTokens
	}
	return total
}
