// Package chronodb is a temporal object-relational engine for versioned
// graphs: every attribute, node, and edge is a value in branching time,
// addressed by a (branch, turn, tick) coordinate rather than a single
// current state.
//
// Under the hood the engine is organized into a handful of composable
// layers:
//
//	window/  — WindowDict, the past/future-split revision history primitive
//	branch/  — the branch registry: forks, ancestry, and extent tracking
//	journal/ — the setting journal, for forward/backward delta queries
//	cache/   — the attribute cache, keycache, and node/edge existence caches
//	engine/  — the cursor, write/read paths, and paradox resolution
//	graph/   — a thin dictionary-shaped facade over one named graph
//	store/   — the sqlite-backed persistence gateway
//
// Open wires a store and a config together into a ready engine; most
// callers only need that and the graph package's facade types.
package chronodb

import (
	"github.com/chronodb/chronodb/config"
	"github.com/chronodb/chronodb/engine"
	"github.com/chronodb/chronodb/store"
)

// Open opens (or creates) a sqlite database at path and returns a
// rehydrated Engine over it, using cfg for the engine's recognized
// options. Callers are responsible for calling the returned gateway's
// Close via Engine.Close once done.
func Open(path string, cfg config.Config, opts ...engine.Option) (*engine.Engine, error) {
	gw, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	e, err := engine.New(gw, cfg, opts...)
	if err != nil {
		gw.Close()
		return nil, err
	}
	return e, nil
}
