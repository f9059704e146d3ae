package journal

import (
	"sort"
	"sync"

	"github.com/chronodb/chronodb/window"
)

// Journal holds, for every branch, the forward journal (settings: the
// value written at each tick) and the backward journal (presettings:
// the value that write replaced).
type Journal struct {
	mu           sync.RWMutex
	settings     map[string]*window.SettingsTurnDict[[]Change]
	presettings  map[string]*window.SettingsTurnDict[[]Change]
}

// New returns an empty Journal.
func New() *Journal {
	return &Journal{
		settings:    make(map[string]*window.SettingsTurnDict[[]Change]),
		presettings: make(map[string]*window.SettingsTurnDict[[]Change]),
	}
}

func (j *Journal) turnDict(m map[string]*window.SettingsTurnDict[[]Change], branch string) *window.SettingsTurnDict[[]Change] {
	td, ok := m[branch]
	if !ok {
		td = window.NewSettingsTurnDict[[]Change]()
		m[branch] = td
	}
	return td
}

func appendAt(wd *window.WindowDict[[]Change], tick int, c Change) {
	var existing []Change
	if wd.Contains(tick) {
		existing, _ = wd.Get(tick)
	}
	wd.Set(tick, append(existing, c))
}

// Record appends one write to both journals for branch at (turn, tick):
// the new value to the forward journal, and the value it replaced (nil
// if none) to the backward journal.
func (j *Journal) Record(branch string, turn, tick int, path, key string, newValue, prevValue any) {
	j.mu.Lock()
	defer j.mu.Unlock()

	fwd := j.turnDict(j.settings, branch).Turn(turn)
	appendAt(fwd, tick, Change{Path: path, Key: key, Value: newValue})

	back := j.turnDict(j.presettings, branch).Turn(turn)
	appendAt(back, tick, Change{Path: path, Key: key, Value: prevValue})
}

type tickEntry struct {
	turn, tick int
	changes    []Change
}

// collect returns every (turn, tick) entry recorded for branch in td,
// sorted ascending by (turn, tick).
func collect(td *window.SettingsTurnDict[[]Change], branch string) []tickEntry {
	var out []tickEntry
	turns := td.Turns()
	sort.Ints(turns)
	for _, turn := range turns {
		wd := td.Turn(turn)
		for _, tick := range wd.Keys() {
			v, err := wd.Get(tick)
			if err != nil {
				continue
			}
			out = append(out, tickEntry{turn: turn, tick: tick, changes: v})
		}
	}
	return out
}

func after(e tickEntry, turn, tick int) bool {
	return e.turn > turn || (e.turn == turn && e.tick > tick)
}

func atOrBefore(e tickEntry, turn, tick int) bool {
	return e.turn < turn || (e.turn == turn && e.tick <= tick)
}

// Forward returns the net changes observed moving from (fromTurn,
// fromTick) exclusive to (toTurn, toTick) inclusive: for each
// (path, key) touched in that span, the last value written. Order
// matches the order of first appearance; it carries no meaning beyond
// determinism.
func (j *Journal) Forward(branch string, fromTurn, fromTick, toTurn, toTick int) []Change {
	j.mu.RLock()
	td, ok := j.settings[branch]
	j.mu.RUnlock()
	if !ok {
		return nil
	}
	last := make(map[[2]string]any)
	var order [][2]string
	for _, e := range collect(td, branch) {
		if !after(e, fromTurn, fromTick) || !atOrBefore(e, toTurn, toTick) {
			continue
		}
		for _, c := range e.changes {
			k := [2]string{c.Path, c.Key}
			if _, seen := last[k]; !seen {
				order = append(order, k)
			}
			last[k] = c.Value
		}
	}
	out := make([]Change, 0, len(order))
	for _, k := range order {
		out = append(out, Change{Path: k[0], Key: k[1], Value: last[k]})
	}
	return out
}

// Backward returns the net changes needed to undo from (toTurn, toTick)
// back down to (fromTurn, fromTick) exclusive: for each (path, key)
// touched in that span, the value it held just before the span began
// — i.e. the presetting of its earliest write in the span. Order matches
// the order of first appearance walking backward.
func (j *Journal) Backward(branch string, fromTurn, fromTick, toTurn, toTick int) []Change {
	j.mu.RLock()
	td, ok := j.presettings[branch]
	j.mu.RUnlock()
	if !ok {
		return nil
	}
	entries := collect(td, branch)
	restored := make(map[[2]string]any)
	var order [][2]string
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if !after(e, fromTurn, fromTick) || !atOrBefore(e, toTurn, toTick) {
			continue
		}
		for ci := len(e.changes) - 1; ci >= 0; ci-- {
			c := e.changes[ci]
			k := [2]string{c.Path, c.Key}
			if _, seen := restored[k]; !seen {
				order = append(order, k)
			}
			restored[k] = c.Value
		}
	}
	out := make([]Change, 0, len(order))
	for _, k := range order {
		out = append(out, Change{Path: k[0], Key: k[1], Value: restored[k]})
	}
	return out
}

// Truncate discards every recorded change for branch strictly after
// (turn, tick), in both journals. Used when paradox resolution rewinds
// a branch's extent.
func (j *Journal) Truncate(branch string, turn, tick int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if td, ok := j.settings[branch]; ok {
		td.Truncate(turn, tick)
	}
	if td, ok := j.presettings[branch]; ok {
		td.Truncate(turn, tick)
	}
}
