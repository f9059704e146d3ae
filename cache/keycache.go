package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/chronodb/chronodb/branch"
)

// keyCoord addresses one (path, branch, turn, tick) coordinate's key
// set in the Keycache.
type keyCoord struct {
	path       Path
	br         string
	turn, tick int
}

// pathBranch identifies a (path, branch) pair for the purpose of
// tracking the latest coordinate whose key set is known cached and
// correct, independent of which exact coordinate that is.
type pathBranch struct {
	path Path
	br   string
}

// before reports whether (turn, tick) strictly precedes (oTurn, oTick).
func before(turn, tick, oTurn, oTick int) bool {
	return turn < oTurn || (turn == oTurn && tick < oTick)
}

// Keycache is the Keycache (C5): a bounded cache of "what keys exist
// under this path, as of this coordinate" sets, so that iterating a
// graph's nodes (or a node's attributes, or a multigraph edge's
// indices) doesn't cold-scan the attribute cache on every call.
//
// A write advances the cache forward-incrementally when the write's
// coordinate is at or after the most recent one this path/branch has
// cached; any other access falls back to a cold rebuild from the
// attribute cache, matching the original's KEYCACHE_MAXSIZE-bounded
// keycache and its distinction between "new keyframe" and
// "incremental" rebuilds.
type Keycache struct {
	cache        *lru.Cache[keyCoord, map[string]bool]
	latest       map[pathBranch]keyCoord
	hits, misses int
}

// NewKeycache returns a Keycache bounded to capacity entries.
func NewKeycache(capacity int) *Keycache {
	c, _ := lru.New[keyCoord, map[string]bool](capacity)
	return &Keycache{cache: c, latest: make(map[pathBranch]keyCoord)}
}

// Get returns the set of keys live under path for branch at
// (turn, tick), cold-building from ac via reg's ancestry walk if the
// coordinate isn't already cached.
func (k *Keycache) Get(reg *branch.Registry, ac *AttributeCache, path Path, br string, turn, tick int) map[string]bool {
	coord := keyCoord{path: path, br: br, turn: turn, tick: tick}
	if v, ok := k.cache.Get(coord); ok {
		k.hits++
		return v
	}
	k.misses++
	keys := ac.Keys(reg, path, br, turn, tick)
	set := make(map[string]bool, len(keys))
	for _, key := range keys {
		set[key] = true
	}
	k.cache.Add(coord, set)
	k.noteLatest(pathBranch{path, br}, coord)
	return set
}

// noteLatest records coord as the latest known-correct coordinate for pb,
// unless a later one is already recorded — a cold rebuild triggered by a
// historical read must not regress the forward-incremental cursor.
func (k *Keycache) noteLatest(pb pathBranch, coord keyCoord) {
	if cur, ok := k.latest[pb]; !ok || before(cur.turn, cur.tick, coord.turn, coord.tick) {
		k.latest[pb] = coord
	}
}

// Advance records that, at (branch, turn, tick), key was added to or
// removed from path — applied by cloning the cached set at the latest
// known coordinate at or before (turn, tick) on this path/branch (the
// coordinate itself, for a second write in the same tick) and storing
// the result under (turn, tick), sparing a cold rebuild on the very next
// read. If no such coordinate is cached for this path/branch, or its set
// has since been evicted, any set cached at (turn, tick) is dropped; the
// next Get there cold-builds instead.
func (k *Keycache) Advance(path Path, br string, turn, tick int, key string, present bool) {
	pb := pathBranch{path, br}
	coord := keyCoord{path: path, br: br, turn: turn, tick: tick}

	last, ok := k.latest[pb]
	if !ok || before(turn, tick, last.turn, last.tick) {
		k.cache.Remove(coord)
		return
	}
	prev, ok := k.cache.Get(last)
	if !ok {
		k.cache.Remove(coord)
		return
	}
	set := make(map[string]bool, len(prev)+1)
	for existing := range prev {
		set[existing] = true
	}
	if present {
		set[key] = true
	} else {
		delete(set, key)
	}
	k.cache.Add(coord, set)
	k.latest[pb] = coord
}

// Invalidate drops every cached key set for path (all branches, all
// coordinates) — used when a contradiction forces a branch's history to
// be rewritten wholesale, since incremental advancement no longer holds.
func (k *Keycache) Invalidate(path Path) {
	for _, coord := range k.cache.Keys() {
		if coord.path == path {
			k.cache.Remove(coord)
		}
	}
	for pb := range k.latest {
		if pb.path == path {
			delete(k.latest, pb)
		}
	}
}

// InvalidateBranch drops every cached key set recorded against br,
// regardless of path — used when a branch-wide truncation (§4.3's
// paradox resolution) can invalidate any path under that branch, not
// just one.
func (k *Keycache) InvalidateBranch(br string) {
	for _, coord := range k.cache.Keys() {
		if coord.br == br {
			k.cache.Remove(coord)
		}
	}
	for pb := range k.latest {
		if pb.br == br {
			delete(k.latest, pb)
		}
	}
}

// Stats returns cumulative hit/miss counts, for the metrics package.
func (k *Keycache) Stats() (hits, misses int) { return k.hits, k.misses }

// Len returns the number of entries currently held, for the metrics
// package's gauge.
func (k *Keycache) Len() int { return k.cache.Len() }
