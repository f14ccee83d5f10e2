package executor

import (
	"hash/fnv"
	"sync"
)

// InputCache remembers a skill's output keyed by the hash of its skill id
// and serialized input, so repeating the same call against the same input
// is free.
type InputCache struct {
	mu    sync.RWMutex
	cache map[uint64]map[string]any
}

// NewInputCache returns an empty input cache.
func NewInputCache() *InputCache {
	return &InputCache{cache: make(map[uint64]map[string]any)}
}

// Get returns the cached output for hash, if any.
func (c *InputCache) Get(hash uint64) (map[string]any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.cache[hash]
	return v, ok
}

// Insert stores output under hash.
func (c *InputCache) Insert(hash uint64, output map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[hash] = output
}

// InputHash returns the FNV-1a hash of skillID and serialized input
// concatenated, the cache key for one call.
func InputHash(skillID, inputJSON string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(skillID))
	_, _ = h.Write([]byte(inputJSON))
	return h.Sum64()
}
