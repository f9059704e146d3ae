package engine

import "github.com/chronodb/chronodb/journal"

// Delta is a single attribute change as recovered from the setting
// journal by GetDelta/GetTurnDelta.
type Delta struct {
	Path  string
	Key   string
	Value any
}

// GetDelta returns every net attribute change between (fromTurn,
// fromTick) and (toTurn, toTick) on the current branch, last-write-wins
// per (path, key), when moving forward in time. Moving backward returns
// the values each path/key held immediately before the span, restoring
// them.
func (e *Engine) GetDelta(fromTurn, fromTick, toTurn, toTick int) []Delta {
	e.mu.Lock()
	defer e.mu.Unlock()

	var changes []journal.Change
	if toTurn > fromTurn || (toTurn == fromTurn && toTick >= fromTick) {
		changes = e.journal.Forward(e.cursor.Branch, fromTurn, fromTick, toTurn, toTick)
	} else {
		changes = e.journal.Backward(e.cursor.Branch, toTurn, toTick, fromTurn, fromTick)
	}
	out := make([]Delta, 0, len(changes))
	for _, c := range changes {
		out = append(out, Delta{Path: c.Path, Key: c.Key, Value: c.Value})
	}
	return out
}

// GetTurnDelta is GetDelta scoped to a single turn, from its first tick
// to toTick.
func (e *Engine) GetTurnDelta(turn, toTick int) []Delta {
	return e.GetDelta(turn, 0, turn, toTick)
}
