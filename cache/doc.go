// Package cache implements the Attribute Cache (C4), Keycache (C5), and
// the node/edge existence cache specializations (C6).
//
// Every cached value is addressed by a Path (the entity's parent chain
// plus the entity itself, e.g. a graph, a (graph, node) pair, or a
// (graph, origin, destination) triple) and a Key within that path (an
// attribute name, a node ID, or a multi-edge index rendered as a
// string). This mirrors the original system's convention of storing
// node existence as "key = node ID" on the owning graph, and edge
// existence as "key = edge index" on the owning (graph, origin,
// destination) triple, so the same generic cache machinery serves both
// plain attributes and existence flags: existence is simply an
// attribute whose value is either a present sentinel or an explicit
// deletion.
package cache
