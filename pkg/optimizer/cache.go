// Package optimizer implements the token-budget optimization subsystems the
// execution engine consults before and after every skill call: prompt and
// schema caches, delta context extraction, semantic compression, predictive
// estimation, and cost tracking.
package optimizer

import (
	"hash/fnv"
	"sync"
)

// StaticPromptCache deduplicates compiled prompt text by key. The first
// caller to register a key wins; later calls with the same key return the
// original text regardless of what they pass.
type StaticPromptCache struct {
	mu    sync.RWMutex
	cache map[string]string
}

// NewStaticPromptCache returns an empty prompt cache.
func NewStaticPromptCache() *StaticPromptCache {
	return &StaticPromptCache{cache: make(map[string]string)}
}

// GetOrCompile returns the cached text for key, storing raw under key on
// first use.
func (c *StaticPromptCache) GetOrCompile(key, raw string) string {
	c.mu.RLock()
	if v, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return v
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.cache[key]; ok {
		return v
	}
	c.cache[key] = raw
	return raw
}

// ToolSchemaCache deduplicates serialized tool schemas by hash: the first
// schema text stored under a hash is kept and returned for every later call
// with that hash.
type ToolSchemaCache struct {
	mu    sync.RWMutex
	cache map[uint64]string
}

// NewToolSchemaCache returns an empty schema cache.
func NewToolSchemaCache() *ToolSchemaCache {
	return &ToolSchemaCache{cache: make(map[uint64]string)}
}

// GetOrInsert returns the cached schema JSON for hash, storing schemaJSON on
// first use.
func (c *ToolSchemaCache) GetOrInsert(hash uint64, schemaJSON string) string {
	c.mu.RLock()
	if v, ok := c.cache[hash]; ok {
		c.mu.RUnlock()
		return v
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.cache[hash]; ok {
		return v
	}
	c.cache[hash] = schemaJSON
	return schemaJSON
}

// SchemaHash returns the FNV-1a hash of a skill id, used as the schema
// cache's key since a skill's schemas are immutable for its lifetime.
func SchemaHash(skillID string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(skillID))
	return h.Sum64()
}
