// Package branch implements the Branch Registry: the parent/child
// relationships between named lines of history, each branch's observed
// extent, and the ancestor-with-fork-point walk that every cross-branch
// point-in-time lookup in the engine relies on.
//
// Branches form a forest rooted at "trunk". Each non-root branch records
// the coordinate in its parent at which it was forked; a read that falls
// outside a branch's own recorded history resolves by walking to that
// fork point in the parent, and so on toward the root.
package branch
