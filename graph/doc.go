// Package graph is the thin facade over an *engine.Engine: per-graph,
// per-node, and per-edge dictionary-shaped views that resolve every
// read and write through the engine's current cursor.
//
// A Graph holds no state of its own beyond its name and a borrowed
// engine; closing or discarding a Graph value does nothing, since it
// owns nothing. Every method here is a direct wrapper over the
// matching engine method — the facade's entire purpose is giving
// callers `graph[attr]`, `graph.node[id][attr]`, and `graph.adj[orig][dest][attr]`
// spellings without reaching into the engine's flat (graph, node,
// orig, dest) argument lists directly.
package graph
