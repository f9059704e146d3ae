package graph

// Adjacency is a facade over graph.adj[orig]: the successors view, one
// EdgeBundle per destination.
type Adjacency struct {
	g    *Graph
	orig string
}

// To returns the bundle of edges from orig toward dest.
func (a Adjacency) To(dest string) EdgeBundle {
	return EdgeBundle{g: a.g, orig: a.orig, dest: dest}
}

// Successors returns every destination orig currently has a live edge
// toward.
func (a Adjacency) Successors() []string {
	return a.g.e.Successors(a.g.name, a.orig)
}

// Predecessors is a facade over graph.pred[dest]: the predecessors
// view, one EdgeBundle per origin. Only meaningful for directed graph
// kinds.
type Predecessors struct {
	g    *Graph
	dest string
}

// From returns the bundle of edges from orig toward dest.
func (p Predecessors) From(orig string) EdgeBundle {
	return EdgeBundle{g: p.g, orig: orig, dest: p.dest}
}

// Origins returns every origin that currently has a live edge toward
// dest.
func (p Predecessors) Origins() []string {
	return p.g.e.Predecessors(p.g.name, p.dest)
}

// EdgeBundle is every edge recorded between one (orig, dest) pair,
// indexed by multi-edge key for multigraph kinds; simple graph kinds
// only ever use index 0.
type EdgeBundle struct {
	g          *Graph
	orig, dest string
}

// At returns the facade for the edge at index.
func (b EdgeBundle) At(index int) Edge {
	return Edge{g: b.g, orig: b.orig, dest: b.dest, index: index}
}

// Exists reports whether the index-0 edge exists, the common case for
// simple (non-multi) graph kinds.
func (b EdgeBundle) Exists() bool {
	return b.At(0).Exists()
}

// Edge is a facade over one (orig, dest, index) edge: an existence flag
// plus an attribute dictionary, both resolved through the engine.
type Edge struct {
	g          *Graph
	orig, dest string
	index      int
}

// Exists reports whether the edge is currently present.
func (e Edge) Exists() bool {
	return e.g.e.EdgeExists(e.g.name, e.orig, e.dest, e.index)
}

// Create records the edge's existence at the current cursor.
func (e Edge) Create() error {
	return e.g.e.StoreEdgeExists(e.g.name, e.orig, e.dest, e.index, true)
}

// Delete records the edge's removal at the current cursor.
func (e Edge) Delete() error {
	return e.g.e.StoreEdgeExists(e.g.name, e.orig, e.dest, e.index, false)
}

// Get resolves graph.adj[orig][dest][key] (at this edge's index) at the
// current cursor.
func (e Edge) Get(key string) (any, error) {
	return e.g.e.RetrieveEdgeVal(e.g.name, e.orig, e.dest, e.index, key)
}

// Set writes graph.adj[orig][dest][key] = value (at this edge's index)
// at the current cursor. A nil value deletes the attribute.
func (e Edge) Set(key string, value any) error {
	return e.g.e.StoreEdgeVal(e.g.name, e.orig, e.dest, e.index, key, value)
}
