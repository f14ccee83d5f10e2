package optimizer

import "sync"

// SemanticCompressor rewrites a skill output's top-level-and-nested keys
// through a rename map and truncates long string values, shrinking payloads
// before they're counted against a budget or forwarded downstream.
type SemanticCompressor struct {
	maxStringLen int

	mu         sync.RWMutex
	keyMapping map[string]string
}

// NewSemanticCompressor returns a compressor with no key mappings that
// truncates strings longer than maxStringLen bytes.
func NewSemanticCompressor(maxStringLen int) *SemanticCompressor {
	return &SemanticCompressor{maxStringLen: maxStringLen, keyMapping: make(map[string]string)}
}

// AddKeyMapping registers a rename applied to any object key equal to from.
func (c *SemanticCompressor) AddKeyMapping(from, to string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keyMapping[from] = to
}

// Compress recursively rewrites value: object keys are renamed per the
// compressor's mapping, array elements are compressed into a new slice,
// strings longer than maxStringLen are truncated on a UTF-8 boundary, and all
// other scalar kinds pass through unchanged.
func (c *SemanticCompressor) Compress(value any) any {
	c.mu.RLock()
	mapping := make(map[string]string, len(c.keyMapping))
	for from, to := range c.keyMapping {
		mapping[from] = to
	}
	c.mu.RUnlock()
	return compress(value, mapping, c.maxStringLen)
}

func compress(value any, mapping map[string]string, maxStringLen int) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			key := k
			if renamed, ok := mapping[k]; ok {
				key = renamed
			}
			out[key] = compress(val, mapping, maxStringLen)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = compress(elem, mapping, maxStringLen)
		}
		return out
	case string:
		if len(v) > maxStringLen {
			return safeTruncateString(v, maxStringLen)
		}
		return v
	default:
		return v
	}
}

// safeTruncateString returns the longest prefix of s no longer than max
// bytes that doesn't split a UTF-8 code point.
func safeTruncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	end := max
	for end > 0 && !isCharBoundary(s, end) {
		end--
	}
	return s[:end]
}

func isCharBoundary(s string, i int) bool {
	if i <= 0 || i >= len(s) {
		return true
	}
	return s[i]&0xC0 != 0x80
}
