// Package tokencount wraps tiktoken-go to produce an exact, encoder-based
// token count for diagnostic reporting. It never substitutes for the
// canonical character-based (len/4) heuristic used in budget decisions
// elsewhere in the runtime; it only annotates the tracker's textual report.
package tokencount

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	encodingCache = make(map[string]*tiktoken.Tiktoken)
	cacheMu       sync.RWMutex
)

// Counter produces exact token counts for one model's encoding.
type Counter struct {
	encoding *tiktoken.Tiktoken
	model    string
}

// NewCounter returns a counter for model, falling back to cl100k_base when
// the model has no known encoding, and to a nil encoding (heuristic-only)
// if even that fails to load.
func NewCounter(model string) *Counter {
	encoding := encodingFor(model)
	return &Counter{encoding: encoding, model: model}
}

func encodingFor(model string) *tiktoken.Tiktoken {
	name := encodingNameForModel(model)

	cacheMu.RLock()
	cached, ok := encodingCache[name]
	cacheMu.RUnlock()
	if ok {
		return cached
	}

	encoding, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil
	}

	cacheMu.Lock()
	encodingCache[name] = encoding
	cacheMu.Unlock()
	return encoding
}

// Count returns the exact token count for text, or the len/4 heuristic if
// no encoding could be loaded for the counter's model.
func (c *Counter) Count(text string) int {
	if c.encoding == nil {
		return len(text) / 4
	}
	return len(c.encoding.Encode(text, nil, nil))
}

// Model returns the model name this counter was built for.
func (c *Counter) Model() string {
	return c.model
}

// encodingMap maps known model name prefixes to their tiktoken encoding.
var encodingMap = map[string]string{
	"gpt-4o":        "o200k_base",
	"gpt-4o-mini":   "o200k_base",
	"gpt-4-turbo":   "cl100k_base",
	"gpt-4":         "cl100k_base",
	"gpt-3.5-turbo": "cl100k_base",
	"local":         "cl100k_base",
}

// encodingNameForModel returns the tiktoken encoding name for model,
// matching on an exact or longest-prefix basis, defaulting to cl100k_base.
func encodingNameForModel(model string) string {
	if encoding, ok := encodingMap[model]; ok {
		return encoding
	}
	best, bestLen := "cl100k_base", 0
	for prefix, encoding := range encodingMap {
		if len(prefix) > bestLen && len(model) >= len(prefix) && model[:len(prefix)] == prefix {
			best, bestLen = encoding, len(prefix)
		}
	}
	return best
}
