package graph

import "github.com/chronodb/chronodb/engine"

// Graph is a facade over one named graph registered in e. It carries
// no storage of its own; every call resolves through e at whatever
// cursor e currently holds.
type Graph struct {
	e    *engine.Engine
	name string
}

// New registers a fresh graph named name of the given kind and returns
// a facade over it.
func New(e *engine.Engine, name string, kind engine.Kind) (*Graph, error) {
	if err := e.NewGraph(name, kind); err != nil {
		return nil, err
	}
	return Open(e, name), nil
}

// Open returns a facade over an already-registered graph, without
// checking that name is actually registered — a mistyped name
// surfaces as ErrUnknownGraph on the first write, or an empty read on
// the first retrieval, exactly as engine.Engine itself would report it.
func Open(e *engine.Engine, name string) *Graph {
	return &Graph{e: e, name: name}
}

// Name returns the graph's name.
func (g *Graph) Name() string { return g.name }

// Kind returns the graph's registered kind and whether it is known to
// e at all.
func (g *Graph) Kind() (engine.Kind, bool) { return g.e.GraphKind(g.name) }

// Get resolves graph[key] at the engine's current cursor.
func (g *Graph) Get(key string) (any, error) {
	return g.e.RetrieveGraphVal(g.name, key)
}

// Set writes graph[key] = value at the engine's current cursor. A nil
// value deletes the attribute.
func (g *Graph) Set(key string, value any) error {
	return g.e.StoreGraphVal(g.name, key, value)
}

// Keys returns every attribute key currently set on the graph itself.
func (g *Graph) Keys() []string {
	return g.e.GraphKeys(g.name)
}

// Node returns a facade over graph.node[id].
func (g *Graph) Node(id string) Node {
	return Node{g: g, id: id}
}

// Nodes returns every node currently live in the graph, i.e.
// graph.node's key set.
func (g *Graph) Nodes() []string {
	return g.e.Nodes(g.name)
}

// Adj returns a facade over graph.adj[orig], the successors view.
func (g *Graph) Adj(orig string) Adjacency {
	return Adjacency{g: g, orig: orig}
}

// Pred returns a facade over graph.pred[dest], the predecessors view.
// Only meaningful for directed graph kinds.
func (g *Graph) Pred(dest string) Predecessors {
	return Predecessors{g: g, dest: dest}
}
