package optimizer

import "sync"

// DeltaContextEngine remembers each node's output and, on request, extracts
// only the fields a downstream node depends on rather than forwarding whole
// payloads down the graph.
type DeltaContextEngine struct {
	mu            sync.RWMutex
	storedOutputs map[string]map[string]any
}

// NewDeltaContextEngine returns an engine with no stored outputs.
func NewDeltaContextEngine() *DeltaContextEngine {
	return &DeltaContextEngine{storedOutputs: make(map[string]map[string]any)}
}

// Store records nodeID's output for later delta extraction.
func (e *DeltaContextEngine) Store(nodeID string, output map[string]any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.storedOutputs[nodeID] = output
}

// Dep names one upstream node a delta computation draws from, and the
// subset of fields to forward. An empty Fields forwards the whole output.
type Dep struct {
	NodeID string
	Fields []string
}

// ComputeDelta builds {node_id: {field: value, ...}, ...} for each dep whose
// node has a stored output, restricted to the named fields when given.
// Dependencies with no stored output are omitted.
func (e *DeltaContextEngine) ComputeDelta(deps []Dep) map[string]any {
	e.mu.RLock()
	defer e.mu.RUnlock()

	result := make(map[string]any, len(deps))
	for _, dep := range deps {
		output, ok := e.storedOutputs[dep.NodeID]
		if !ok {
			continue
		}
		if len(dep.Fields) == 0 {
			result[dep.NodeID] = output
			continue
		}
		extracted := make(map[string]any, len(dep.Fields))
		for _, field := range dep.Fields {
			if v, ok := output[field]; ok {
				extracted[field] = v
			}
		}
		result[dep.NodeID] = extracted
	}
	return result
}
