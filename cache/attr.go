package cache

import (
	"errors"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/chronodb/chronodb/branch"
	"github.com/chronodb/chronodb/window"
)

// shallowKey addresses one (path, key, branch, turn, tick) cell, used as
// the key for the "shallowest" LRU hint (§4.3's "a small LRU of the most
// recently resolved coordinates, independent of the keycache").
type shallowKey struct {
	path       Path
	key        string
	br         string
	turn, tick int
}

// AttributeCache is the Attribute Cache (C4): a store of (path, key)
// histories, one per branch, each a turn/tick window. It also doubles
// as the storage for existence flags (C6), since existence is simply an
// attribute whose value is a present sentinel or a deletion.
type AttributeCache struct {
	mu sync.RWMutex
	// primary[path][key][branch] holds the turn/tick history for that
	// cell. It is also what the Keycache's cold rebuild enumerates over
	// (every key recorded under a path).
	primary map[Path]map[string]map[string]*window.TurnDict[any]

	shallowest *lru.Cache[shallowKey, any]

	shallowHits, shallowMisses int
}

// ShallowStats returns cumulative shallowest-hint hit/miss counts, for
// the metrics package.
func (c *AttributeCache) ShallowStats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.shallowHits, c.shallowMisses
}

// New returns an AttributeCache whose shallowest-lookup hint holds at
// most shallowCapacity entries. A non-positive capacity disables the
// hint (every Retrieve falls through to the full seek).
func New(shallowCapacity int) *AttributeCache {
	c := &AttributeCache{
		primary: make(map[Path]map[string]map[string]*window.TurnDict[any]),
	}
	if shallowCapacity > 0 {
		c.shallowest, _ = lru.New[shallowKey, any](shallowCapacity)
	}
	return c
}

func (c *AttributeCache) turnDict(path Path, key, br string) *window.TurnDict[any] {
	byKey, ok := c.primary[path]
	if !ok {
		byKey = make(map[string]map[string]*window.TurnDict[any])
		c.primary[path] = byKey
	}
	byBranch, ok := byKey[key]
	if !ok {
		byBranch = make(map[string]*window.TurnDict[any])
		byKey[key] = byBranch
	}
	td, ok := byBranch[br]
	if !ok {
		td = window.NewTurnDict[any]()
		byBranch[br] = td
	}
	return td
}

// Store records value at (path, key, branch, turn, tick). If planning is
// true, it rejects a write that does not strictly extend the turn's
// latest tick, returning ErrPlanningPast. If planning is false, it
// reports every future (turn, tick) that already held a different value
// for this cell — the contradictions a paradox-resolution pass (owned
// by the engine, which alone knows which plan produced each write) must
// resolve before the branch's recorded future can be trusted again.
//
// A nil value records a deletion, mirroring WindowDict's convention.
func (c *AttributeCache) Store(path Path, key, br string, turn, tick int, value any, planning bool) ([]Contradiction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	td := c.turnDict(path, key, br)
	ticks := td.Turn(turn)

	if planning {
		if end, ok := ticks.End(); ok && tick <= end {
			return nil, ErrPlanningPast
		}
		if err := ticks.Set(tick, value); err != nil {
			return nil, err
		}
		c.invalidateShallow(path, key, br, turn, tick)
		return nil, nil
	}

	contras := futureContradictions(td, turn, tick, value)
	ticks.Truncate(tick)
	if err := ticks.Set(tick, value); err != nil {
		return nil, err
	}
	// A non-planning write also closes off every later turn in this
	// branch, matching the original's "committing to history" semantics.
	td.Truncate(turn, tick)
	c.invalidateShallow(path, key, br, turn, tick)
	return contras, nil
}

// futureContradictions scans every recorded tick in and after turn that
// is later than (turn, tick) and differs from value, across every turn
// in td.
func futureContradictions(td *window.TurnDict[any], turn, tick int, value any) []Contradiction {
	var out []Contradiction
	for _, t := range td.Turns() {
		if t < turn {
			continue
		}
		ticks := td.Turn(t)
		for _, rv := range ticks.Keys() {
			if t == turn && rv <= tick {
				continue
			}
			existing, err := ticks.Get(rv)
			if err != nil {
				continue
			}
			if !equalValue(existing, value) {
				out = append(out, Contradiction{Turn: t, Tick: rv})
			}
		}
	}
	return out
}

// equalValue compares two stored values for the contradiction check.
// Attribute values are whatever the caller puts in them, so a dynamic
// type that isn't comparable (a slice or map) is treated as always
// contradicting rather than panicking the == operator.
func equalValue(a, b any) (eq bool) {
	if a == nil && b == nil {
		return true
	}
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

func (c *AttributeCache) invalidateShallow(path Path, key, br string, turn, tick int) {
	if c.shallowest == nil {
		return
	}
	c.shallowest.Remove(shallowKey{path, key, br, turn, tick})
}

// Retrieve resolves (path, key) as of (branch, turn, tick), walking up
// through ancestor branches via reg when br has no history at or before
// that coordinate (§4.2). It returns ErrNotFound if no branch in the
// ancestry ever recorded the key, or the window package's *HistoryFault
// wrapping ErrDeleted if the nearest write was a deletion.
func (c *AttributeCache) Retrieve(reg *branch.Registry, path Path, key, br string, turn, tick int) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.shallowest != nil {
		if v, ok := c.shallowest.Get(shallowKey{path, key, br, turn, tick}); ok {
			c.shallowHits++
			return v, nil
		}
		c.shallowMisses++
	}

	for _, point := range reg.AncestorsWithForkPoint(br, turn, tick, nil) {
		byKey, ok := c.primary[path]
		if !ok {
			break
		}
		byBranch, ok := byKey[key]
		if !ok {
			break
		}
		td, ok := byBranch[point.Branch]
		if !ok {
			continue
		}
		turnRev, ok := td.RevBefore(point.Turn)
		if !ok {
			continue
		}
		ticks := td.Turn(turnRev)
		tk := point.Tick
		if turnRev == point.Turn && !ticks.RevGettable(tk) {
			// Nothing at or before tk in this turn: resolve from the
			// latest earlier turn instead.
			if turnRev, ok = td.RevBefore(point.Turn - 1); !ok {
				continue
			}
			ticks = td.Turn(turnRev)
		}
		if turnRev < point.Turn {
			// An earlier turn stays in effect through its last tick.
			end, ok := ticks.End()
			if !ok {
				continue
			}
			tk = end
		}
		v, err := ticks.Get(tk)
		if err == nil {
			if c.shallowest != nil {
				c.shallowest.Add(shallowKey{path, key, br, turn, tick}, v)
			}
			return v, nil
		}
		var fault *window.HistoryFault
		if errors.As(err, &fault) && fault.Deleted {
			return nil, err
		}
	}
	return nil, ErrNotFound
}

// Remove deletes every recorded write for (path, key, branch) strictly
// after (turn, tick). Used when paradox resolution deletes a plan: every
// write that plan made is rolled back by truncating the cell's history
// to just before the plan began.
func (c *AttributeCache) Remove(path Path, key, br string, turn, tick int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	byKey, ok := c.primary[path]
	if !ok {
		return
	}
	byBranch, ok := byKey[key]
	if !ok {
		return
	}
	td, ok := byBranch[br]
	if !ok {
		return
	}
	td.Truncate(turn, tick)
}

// Keys returns every key under path whose value, resolved for branch at
// (turn, tick), is live (recorded and not deleted) — the primitive a
// cold Keycache rebuild enumerates.
func (c *AttributeCache) Keys(reg *branch.Registry, path Path, br string, turn, tick int) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	byKey, ok := c.primary[path]
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for key, byBranch := range byKey {
		for _, point := range reg.AncestorsWithForkPoint(br, turn, tick, nil) {
			td, ok := byBranch[point.Branch]
			if !ok {
				continue
			}
			turnRev, ok := td.RevBefore(point.Turn)
			if !ok {
				continue
			}
			ticks := td.Turn(turnRev)
			tk := point.Tick
			if turnRev == point.Turn && !ticks.RevGettable(tk) {
				if turnRev, ok = td.RevBefore(point.Turn - 1); !ok {
					continue
				}
				ticks = td.Turn(turnRev)
			}
			if turnRev < point.Turn {
				end, ok := ticks.End()
				if !ok {
					continue
				}
				tk = end
			}
			v, err := ticks.Get(tk)
			if err == nil && v != nil && !seen[key] {
				seen[key] = true
				out = append(out, key)
			}
			break
		}
	}
	return out
}
