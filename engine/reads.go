package engine

import (
	"errors"

	"github.com/chronodb/chronodb/cache"
	"github.com/chronodb/chronodb/window"
)

// RetrieveGraphVal returns graph's key attribute as of the current
// cursor.
func (e *Engine) RetrieveGraphVal(graphName, key string) (any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer e.syncCacheMetrics()
	return e.attrs.Retrieve(e.reg, cache.GraphAttrPath(graphName), key, e.cursor.Branch, e.cursor.Turn, e.cursor.Tick)
}

// GraphKeys returns graph's own attribute keys (as opposed to its node
// set) as of the current cursor.
func (e *Engine) GraphKeys(graphName string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer e.syncCacheMetrics()
	set := e.keys.Get(e.reg, e.attrs, cache.GraphAttrPath(graphName), e.cursor.Branch, e.cursor.Turn, e.cursor.Tick)
	return keysOf(set)
}

// RetrieveNodeVal returns node's key attribute in graph as of the
// current cursor.
func (e *Engine) RetrieveNodeVal(graphName, node, key string) (any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer e.syncCacheMetrics()
	return e.attrs.Retrieve(e.reg, cache.NewPath(graphName, node), key, e.cursor.Branch, e.cursor.Turn, e.cursor.Tick)
}

// RetrieveEdgeVal returns key attribute of the (orig, dest, index) edge
// in graph as of the current cursor.
func (e *Engine) RetrieveEdgeVal(graphName, orig, dest string, index int, key string) (any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer e.syncCacheMetrics()
	return e.attrs.Retrieve(e.reg, cache.NewPath(graphName, orig, dest, itoa(index)), key, e.cursor.Branch, e.cursor.Turn, e.cursor.Tick)
}

// NodeExists reports whether node is present in graph as of the
// current cursor.
func (e *Engine) NodeExists(graphName, node string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nodeExist.Exists(e.reg, graphName, node, e.cursor.Branch, e.cursor.Turn, e.cursor.Tick)
}

// EdgeExists reports whether the (orig, dest, index) edge is present
// in graph as of the current cursor.
func (e *Engine) EdgeExists(graphName, orig, dest string, index int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.edgeExist.Exists(e.reg, graphName, orig, dest, index, e.cursor.Branch, e.cursor.Turn, e.cursor.Tick)
}

// Nodes returns the ID of every node live in graph as of the current
// cursor, via the Keycache.
func (e *Engine) Nodes(graphName string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer e.syncCacheMetrics()
	set := e.keys.Get(e.reg, e.attrs, cache.NewPath(graphName), e.cursor.Branch, e.cursor.Turn, e.cursor.Tick)
	return keysOf(set)
}

// NodeKeys returns the attribute keys set on node in graph as of the
// current cursor.
func (e *Engine) NodeKeys(graphName, node string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer e.syncCacheMetrics()
	set := e.keys.Get(e.reg, e.attrs, cache.NewPath(graphName, node), e.cursor.Branch, e.cursor.Turn, e.cursor.Tick)
	return keysOf(set)
}

// Successors returns every node orig currently has a live edge toward,
// in graph.
func (e *Engine) Successors(graphName, orig string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.edgeExist.Successors(graphName, orig)
}

// Predecessors returns every node that currently has a live edge
// toward dest, in graph. Only meaningful for directed graph kinds.
func (e *Engine) Predecessors(graphName, dest string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.edgeExist.Predecessors(graphName, dest)
}

func keysOf(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

// IsDeleted reports whether err is a *window.HistoryFault recording an
// explicit deletion, as opposed to "never recorded".
func IsDeleted(err error) bool {
	var fault *window.HistoryFault
	if errors.As(err, &fault) {
		return fault.Deleted
	}
	return false
}

// IsNotFound reports whether err is cache.ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, cache.ErrNotFound)
}
