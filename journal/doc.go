// Package journal implements the Setting Journal (C3): per-branch,
// append-only records of every value change, split into a forward
// journal (the new value written at each tick) and a backward journal
// (the value a write replaced). Both are keyed the same way the
// original system keys them — by branch, then turn, then tick — using
// the window package's turn/tick structures, so the journal and the
// caches built on top of it share the same seek discipline.
//
// The journal exists to answer two questions cheaply: "what changed
// between two coordinates, moving forward" and "what changed, moving
// backward" — the deltas the engine reports from GetDelta and
// GetTurnDelta.
package journal
