// Package engine implements the Engine (C7): the single owner of the
// branch/turn/tick cursor, the planning/forward/batch mode flags, and
// every other core component (the branch registry, the attribute and
// existence caches, the keycache, and the setting journal). Graph
// facades borrow an *Engine and translate their own dictionary-shaped
// calls into calls here; nothing else talks to the persistence gateway.
//
// Mutations enter through the Store* methods, which write the
// attribute/existence caches, append to the setting journal, advance
// the keycache, and resolve any contradiction a non-planning write
// causes. Reads go through the Retrieve*/Exists methods, which consult
// the caches and, failing that, walk branch ancestry.
package engine
