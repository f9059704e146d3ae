package graph

// Node is a facade over graph.node[id]: an existence flag plus an
// attribute dictionary, both resolved through the engine.
type Node struct {
	g  *Graph
	id string
}

// ID returns the node's identifier.
func (n Node) ID() string { return n.id }

// Exists reports whether the node is currently present in its graph.
func (n Node) Exists() bool {
	return n.g.e.NodeExists(n.g.name, n.id)
}

// Create records the node's existence at the current cursor.
func (n Node) Create() error {
	return n.g.e.StoreNodeExists(n.g.name, n.id, true)
}

// Delete records the node's removal at the current cursor.
func (n Node) Delete() error {
	return n.g.e.StoreNodeExists(n.g.name, n.id, false)
}

// Get resolves graph.node[id][key] at the current cursor.
func (n Node) Get(key string) (any, error) {
	return n.g.e.RetrieveNodeVal(n.g.name, n.id, key)
}

// Set writes graph.node[id][key] = value at the current cursor. A nil
// value deletes the attribute.
func (n Node) Set(key string, value any) error {
	return n.g.e.StoreNodeVal(n.g.name, n.id, key, value)
}

// Keys returns every attribute key currently set on the node.
func (n Node) Keys() []string {
	return n.g.e.NodeKeys(n.g.name, n.id)
}

// Successors returns graph.adj[id]'s current destination set.
func (n Node) Successors() []string {
	return n.g.e.Successors(n.g.name, n.id)
}

// Predecessors returns graph.pred[id]'s current origin set. Only
// meaningful for directed graph kinds.
func (n Node) Predecessors() []string {
	return n.g.e.Predecessors(n.g.name, n.id)
}
