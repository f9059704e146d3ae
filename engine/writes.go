package engine

import (
	"go.uber.org/zap"

	"github.com/chronodb/chronodb/branch"
	"github.com/chronodb/chronodb/cache"
	"github.com/chronodb/chronodb/store"
)

// storeCell is the common path every Store* method funnels through: it
// writes the attribute cache, records the journal entry, advances the
// keycache, tags the write to the active plan (if any), and resolves
// any contradiction the write causes.
func (e *Engine) storeCell(path cache.Path, key string, value any) error {
	turn, tick := e.cursor.Turn, e.cursor.Tick
	br := e.cursor.Branch

	prev, _ := e.attrs.Retrieve(e.reg, path, key, br, turn, tick)

	contras, err := e.attrs.Store(path, key, br, turn, tick, value, e.planning)
	if err != nil {
		return err
	}
	e.journal.Record(br, turn, tick, string(path), key, value, prev)

	if !e.batch {
		e.keys.Advance(path, br, turn, tick, key, value != nil)
	}

	if e.activePlan != nil {
		e.activePlan.writes = append(e.activePlan.writes, write{
			kind: writeAttr, path: string(path), key: key, branch: br, turn: turn, tick: tick,
		})
	}

	if len(contras) > 0 {
		e.resolveContradictions(br, contras)
	}
	return nil
}

// resolveContradictions implements §4.3's paradox resolution: delete
// every plan that owns any contradicting (turn, tick) in br, then
// truncate br's extent to the earliest contradiction — matching the
// original's choice of the most consistent reading when several plans
// overlap a single contradicted coordinate (DESIGN.md Open Question
// decisions).
func (e *Engine) resolveContradictions(br string, contras []cache.Contradiction) {
	e.rec.Contradiction()

	earliest := contras[0]
	for _, c := range contras[1:] {
		if c.Turn < earliest.Turn || (c.Turn == earliest.Turn && c.Tick < earliest.Tick) {
			earliest = c
		}
	}

	for _, c := range contras {
		for _, p := range e.plans {
			if planOwns(p, br, c.Turn, c.Tick) {
				e.deletePlan(p)
			}
		}
	}

	_ = e.reg.TruncateExtent(br, branch.Coordinate{Turn: earliest.Turn, Tick: earliest.Tick})
	e.journal.Truncate(br, earliest.Turn, earliest.Tick)
	e.keys.InvalidateBranch(br)
	e.log.Debug("contradiction resolved",
		zap.String("branch", br), zap.Int("turn", earliest.Turn), zap.Int("tick", earliest.Tick))
}

func planOwns(p *plan, br string, turn, tick int) bool {
	for _, w := range p.writes {
		if w.branch == br && w.turn == turn && w.tick == tick {
			return true
		}
	}
	return false
}

// deletePlan rolls back every write a plan made and removes it from the
// active plan list.
func (e *Engine) deletePlan(p *plan) {
	for _, w := range p.writes {
		e.attrs.Remove(cache.Path(w.path), w.key, w.branch, w.turn, w.tick-1)
		if w.kind == writeEdge {
			parts := cache.Path(w.path).Parts()
			if len(parts) == 3 {
				e.edgeExist.Withdraw(parts[0], parts[1], parts[2])
			}
		}
	}
	for i, other := range e.plans {
		if other.id == p.id {
			e.plans = append(e.plans[:i], e.plans[i+1:]...)
			break
		}
	}
}

// StoreGraphVal records graph's key attribute as value at the current
// cursor. A nil value records a deletion.
func (e *Engine) StoreGraphVal(graphName, key string, value any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.graphKinds[graphName]; !ok {
		return ErrUnknownGraph
	}
	if err := e.storeCell(cache.GraphAttrPath(graphName), key, value); err != nil {
		return err
	}
	return e.gw.GraphValSet(graphName, key, e.cursor.Branch, e.cursor.Turn, e.cursor.Tick, mustEncode(value), value == nil)
}

// StoreNodeVal records node's key attribute in graph as value.
func (e *Engine) StoreNodeVal(graphName, node, key string, value any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.graphKinds[graphName]; !ok {
		return ErrUnknownGraph
	}
	if err := e.storeCell(cache.NewPath(graphName, node), key, value); err != nil {
		return err
	}
	return e.gw.NodeValSet(graphName, node, key, e.cursor.Branch, e.cursor.Turn, e.cursor.Tick, mustEncode(value), value == nil)
}

// StoreEdgeVal records key attribute of the (orig, dest, index) edge in
// graph as value.
func (e *Engine) StoreEdgeVal(graphName, orig, dest string, index int, key string, value any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.graphKinds[graphName]; !ok {
		return ErrUnknownGraph
	}
	if err := e.storeCell(cache.NewPath(graphName, orig, dest, itoa(index)), key, value); err != nil {
		return err
	}
	return e.gw.EdgeValSet(graphName, orig, dest, index, key, e.cursor.Branch, e.cursor.Turn, e.cursor.Tick, mustEncode(value), value == nil)
}

// StoreNodeExists records whether node exists in graph at the current
// cursor.
func (e *Engine) StoreNodeExists(graphName, node string, present bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.graphKinds[graphName]; !ok {
		return ErrUnknownGraph
	}
	if e.cfg.IllegalNodeNames[node] {
		// The reserved names are table identifiers the gateway's schema
		// already binds to a different kind of row; creating a node with
		// one of those identities would alias it to that kind.
		return ErrEntityCollision
	}
	turn, tick := e.cursor.Turn, e.cursor.Tick
	path := cache.NewPath(graphName)
	prev, _ := e.attrs.Retrieve(e.reg, path, node, e.cursor.Branch, turn, tick)
	contras, err := e.nodeExist.Store(graphName, node, e.cursor.Branch, turn, tick, present, e.planning)
	if err != nil {
		return err
	}
	var value any
	if present {
		value = true
	}
	e.journal.Record(e.cursor.Branch, turn, tick, string(path), node, value, prev)
	if !e.batch {
		e.keys.Advance(path, e.cursor.Branch, turn, tick, node, present)
	}
	if e.activePlan != nil {
		e.activePlan.writes = append(e.activePlan.writes, write{
			kind: writeNode, path: string(cache.NewPath(graphName)), key: node,
			graph: graphName, branch: e.cursor.Branch, turn: turn, tick: tick,
		})
	}
	if len(contras) > 0 {
		e.resolveContradictions(e.cursor.Branch, contras)
	}
	return e.gw.ExistNode(graphName, node, e.cursor.Branch, turn, tick, present)
}

// StoreEdgeExists records whether the (orig, dest, index) edge exists
// in graph at the current cursor.
func (e *Engine) StoreEdgeExists(graphName, orig, dest string, index int, present bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.graphKinds[graphName]; !ok {
		return ErrUnknownGraph
	}
	turn, tick := e.cursor.Turn, e.cursor.Tick
	path := cache.NewPath(graphName, orig, dest)
	prev, _ := e.attrs.Retrieve(e.reg, path, itoa(index), e.cursor.Branch, turn, tick)
	contras, err := e.edgeExist.Store(graphName, orig, dest, index, e.cursor.Branch, turn, tick, present, e.planning)
	if err != nil {
		return err
	}
	var value any
	if present {
		value = true
	}
	e.journal.Record(e.cursor.Branch, turn, tick, string(path), itoa(index), value, prev)
	if !e.batch {
		e.keys.Advance(path, e.cursor.Branch, turn, tick, itoa(index), present)
	}
	if e.activePlan != nil {
		e.activePlan.writes = append(e.activePlan.writes, write{
			kind: writeEdge, path: string(cache.NewPath(graphName, orig, dest)), key: itoa(index),
			graph: graphName, branch: e.cursor.Branch, turn: turn, tick: tick,
		})
	}
	if len(contras) > 0 {
		e.resolveContradictions(e.cursor.Branch, contras)
	}
	return e.gw.ExistEdge(graphName, orig, dest, index, e.cursor.Branch, turn, tick, present)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

func mustEncode(value any) []byte {
	b, err := store.EncodeValue(value)
	if err != nil {
		// Attribute values come from in-process callers, not untrusted
		// input; an encode failure here means a caller passed a type
		// MessagePack cannot represent, which is a programming error.
		panic("engine: cannot encode attribute value: " + err.Error())
	}
	return b
}
