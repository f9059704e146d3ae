package cache

import (
	"sync"

	"github.com/chronodb/chronodb/branch"
)

// NodeExistenceCache specializes the Attribute Cache for "does this
// node exist": existence is stored as the graph's Path with the node ID
// as Key, a present sentinel as the value when the node exists, and a
// deletion when it doesn't — matching the original's NodesCache, whose
// stored "entity" is the graph and whose "key" is the node ID.
type NodeExistenceCache struct {
	attrs *AttributeCache
}

// NewNodeExistenceCache wraps attrs to serve node existence queries.
func NewNodeExistenceCache(attrs *AttributeCache) *NodeExistenceCache {
	return &NodeExistenceCache{attrs: attrs}
}

// Exists returns whether node is present in graph as of (branch, turn,
// tick).
func (n *NodeExistenceCache) Exists(reg *branch.Registry, graph, node, br string, turn, tick int) bool {
	v, err := n.attrs.Retrieve(reg, NewPath(graph), node, br, turn, tick)
	return err == nil && v != nil
}

// Store records node's existence (true) or removal (false/nil) in graph
// at (branch, turn, tick).
func (n *NodeExistenceCache) Store(graph, node, br string, turn, tick int, present, planning bool) ([]Contradiction, error) {
	var value any
	if present {
		value = true
	}
	return n.attrs.Store(NewPath(graph), node, br, turn, tick, value, planning)
}

// Nodes returns every node that exists in graph as of (branch, turn,
// tick); deleted nodes are left out. It is the cold-enumeration
// primitive; a Keycache serves the bounded/fast path.
func (n *NodeExistenceCache) Nodes(reg *branch.Registry, graph, br string, turn, tick int) []string {
	return n.attrs.Keys(reg, NewPath(graph), br, turn, tick)
}

// EdgeExistenceCache specializes the Attribute Cache for "does this
// edge exist", additionally maintaining successors/predecessors side
// indices so that "what are origin's neighbors" doesn't require
// scanning every possible destination — matching the original's
// EdgesCache.successors/predecessors maps.
type EdgeExistenceCache struct {
	attrs *AttributeCache

	mu          sync.RWMutex
	successors  map[string]map[string]bool // graph+orig -> set of dest
	predecessors map[string]map[string]bool // graph+dest -> set of orig
}

// NewEdgeExistenceCache wraps attrs to serve edge existence queries.
func NewEdgeExistenceCache(attrs *AttributeCache) *EdgeExistenceCache {
	return &EdgeExistenceCache{
		attrs:        attrs,
		successors:   make(map[string]map[string]bool),
		predecessors: make(map[string]map[string]bool),
	}
}

func sideKey(graph, node string) string { return graph + "\x1f" + node }

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// Exists returns whether the (orig, dest, index) edge is present in
// graph as of (branch, turn, tick).
func (e *EdgeExistenceCache) Exists(reg *branch.Registry, graph, orig, dest string, index int, br string, turn, tick int) bool {
	path := NewPath(graph, orig, dest)
	v, err := e.attrs.Retrieve(reg, path, itoa(index), br, turn, tick)
	return err == nil && v != nil
}

// Store records the (orig, dest, index) edge's existence or removal in
// graph at (branch, turn, tick), updating the successors/predecessors
// side indices in lockstep.
func (e *EdgeExistenceCache) Store(graph, orig, dest string, index int, br string, turn, tick int, present, planning bool) ([]Contradiction, error) {
	path := NewPath(graph, orig, dest)
	var value any
	if present {
		value = true
	}
	contras, err := e.attrs.Store(path, itoa(index), br, turn, tick, value, planning)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	sk := sideKey(graph, orig)
	if e.successors[sk] == nil {
		e.successors[sk] = make(map[string]bool)
	}
	pk := sideKey(graph, dest)
	if e.predecessors[pk] == nil {
		e.predecessors[pk] = make(map[string]bool)
	}
	if present {
		e.successors[sk][dest] = true
		e.predecessors[pk][orig] = true
	} else {
		delete(e.successors[sk], dest)
		delete(e.predecessors[pk], orig)
	}
	e.mu.Unlock()

	return contras, nil
}

// Successors returns every destination node orig has an edge toward, as
// last observed by Store (a running index kept alongside the attribute
// cache rather than recomputed per call — the original's
// EdgesCache.successors serves the same role). A pair is dropped as soon
// as Store records the removal of any one of its edge indices, even if
// another index between the same pair is still live.
func (e *EdgeExistenceCache) Successors(graph, orig string) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	set := e.successors[sideKey(graph, orig)]
	out := make([]string, 0, len(set))
	for dest := range set {
		out = append(out, dest)
	}
	return out
}

// Predecessors returns every origin node that has an edge toward dest,
// as last observed by Store; as with Successors, removing any one edge
// index drops the pair.
func (e *EdgeExistenceCache) Predecessors(graph, dest string) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	set := e.predecessors[sideKey(graph, dest)]
	out := make([]string, 0, len(set))
	for orig := range set {
		out = append(out, orig)
	}
	return out
}

// Withdraw drops (orig, dest) from the successors/predecessors side
// indices unconditionally, used when a plan that created an edge is
// rolled back. It does not check whether another index between the
// same pair is still live — a multigraph pair with more than one index
// will reappear in Successors/Predecessors only on its next Store call,
// which is the one known gap in this simplification.
func (e *EdgeExistenceCache) Withdraw(graph, orig, dest string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.successors[sideKey(graph, orig)], dest)
	delete(e.predecessors[sideKey(graph, dest)], orig)
}
