package engine

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/chronodb/chronodb/branch"
	"github.com/chronodb/chronodb/cache"
	"github.com/chronodb/chronodb/config"
	"github.com/chronodb/chronodb/journal"
	"github.com/chronodb/chronodb/metrics"
	"github.com/chronodb/chronodb/store"
)

// turnBookkeeping holds turn_end/turn_end_plan for one (branch, turn),
// per §3's "turn-end bookkeeping" invariant turn_end <= turn_end_plan.
type turnBookkeeping struct {
	end     int
	endPlan int
}

// Engine is the Engine (C7): the sole owner of the cursor, the mode
// flags, and every core component. Graph facades hold a borrowed
// *Engine and must not outlive it.
type Engine struct {
	mu sync.Mutex

	gw  store.Gateway
	cfg config.Config
	log *zap.Logger
	rec *metrics.Recorder

	reg        *branch.Registry
	attrs      *cache.AttributeCache
	nodeExist  *cache.NodeExistenceCache
	edgeExist  *cache.EdgeExistenceCache
	keys       *cache.Keycache
	journal    *journal.Journal
	graphKinds map[string]Kind

	cursor   Cursor
	planning bool
	forward  bool
	batch    bool

	turnEnds map[string]map[int]*turnBookkeeping

	plans      []*plan
	nextPlanID int
	activePlan *plan

	onTimeChange func(prev, next Cursor)

	lastKeyHits, lastKeyMisses         int
	lastShallowHits, lastShallowMisses int
}

// syncCacheMetrics reports the keycache's and attribute cache's
// cumulative hit/miss counters to rec as deltas since the last sync,
// since Prometheus counters only move forward. Called from every read
// path method while e.mu is already held.
func (e *Engine) syncCacheMetrics() {
	if e.rec == nil {
		return
	}
	hits, misses := e.keys.Stats()
	e.rec.AddKeycacheHits(hits - e.lastKeyHits)
	e.rec.AddKeycacheMisses(misses - e.lastKeyMisses)
	e.lastKeyHits, e.lastKeyMisses = hits, misses

	shHits, shMisses := e.attrs.ShallowStats()
	e.rec.AddShallowestHits(shHits - e.lastShallowHits)
	e.rec.AddShallowestMisses(shMisses - e.lastShallowMisses)
	e.lastShallowHits, e.lastShallowMisses = shHits, shMisses

	e.rec.SetKeycacheSize(e.keys.Len())
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithLogger overrides the engine's zap logger (defaults to a no-op).
func WithLogger(l *zap.Logger) Option { return func(e *Engine) { e.log = l } }

// WithMetrics attaches a metrics.Recorder. Passing nil (the default)
// disables metrics entirely.
func WithMetrics(r *metrics.Recorder) Option { return func(e *Engine) { e.rec = r } }

// New constructs an Engine over gw, rehydrating every core component
// from it (§4.7's "fresh-start sequencing"). If gw has no recorded
// branches, trunk is created with extent (0, 0).
func New(gw store.Gateway, cfg config.Config, opts ...Option) (*Engine, error) {
	e := &Engine{
		gw:         gw,
		cfg:        cfg,
		log:        zap.NewNop(),
		reg:        branch.NewRegistry(),
		attrs:      cache.New(cfg.KeycacheCapacity),
		keys:       cache.NewKeycache(cfg.KeycacheCapacity),
		journal:    journal.New(),
		graphKinds: make(map[string]Kind),
		turnEnds:   make(map[string]map[int]*turnBookkeeping),
		cursor:     Cursor{Branch: branch.RootBranch, Turn: 0, Tick: 0},
	}
	e.nodeExist = cache.NewNodeExistenceCache(e.attrs)
	e.edgeExist = cache.NewEdgeExistenceCache(e.attrs)
	for _, opt := range opts {
		opt(e)
	}
	if err := e.rehydrate(); err != nil {
		return nil, errors.Wrap(err, "engine: rehydrate")
	}
	return e, nil
}

func (e *Engine) rehydrate() error {
	branches, err := e.gw.AllBranches()
	if err != nil {
		return errors.Wrap(err, "rehydrate branches")
	}
	if len(branches) == 0 {
		e.log.Debug("no recorded branches; starting fresh trunk")
		return nil
	}
	for _, b := range branches {
		if b.Branch == branch.RootBranch {
			continue
		}
		if err := e.reg.Fork(b.Branch, b.Parent, b.ParentTurn, b.ParentTick); err != nil {
			return errors.Wrapf(err, "rehydrate branch %q", b.Branch)
		}
		if err := e.reg.GrowExtent(b.Branch, branch.Coordinate{Turn: b.EndTurn, Tick: b.EndTick}); err != nil {
			return err
		}
	}
	for _, t := range branches {
		if t.Branch == branch.RootBranch {
			if err := e.reg.GrowExtent(branch.RootBranch, branch.Coordinate{Turn: t.EndTurn, Tick: t.EndTick}); err != nil {
				return err
			}
		}
	}

	turns, err := e.gw.TurnsDump()
	if err != nil {
		return errors.Wrap(err, "rehydrate turns")
	}
	for _, t := range turns {
		e.bookkeeping(t.Branch, t.Turn).end = t.EndTick
		e.bookkeeping(t.Branch, t.Turn).endPlan = t.PlanEndTick
	}

	graphs, err := e.gw.GraphsTypes()
	if err != nil {
		return errors.Wrap(err, "rehydrate graph kinds")
	}
	for _, g := range graphs {
		e.graphKinds[g.Graph] = Kind(g.Kind)
	}

	nodes, err := e.gw.NodesDump()
	if err != nil {
		return errors.Wrap(err, "rehydrate nodes")
	}
	for _, n := range nodes {
		if _, err := e.nodeExist.Store(n.Graph, n.Node, n.Branch, n.Turn, n.Tick, n.Present, false); err != nil {
			return errors.Wrap(err, "rehydrate node row")
		}
	}

	edges, err := e.gw.EdgesDump()
	if err != nil {
		return errors.Wrap(err, "rehydrate edges")
	}
	for _, ed := range edges {
		if _, err := e.edgeExist.Store(ed.Graph, ed.Orig, ed.Dest, ed.Index, ed.Branch, ed.Turn, ed.Tick, ed.Present, false); err != nil {
			return errors.Wrap(err, "rehydrate edge row")
		}
	}

	graphVals, err := e.gw.GraphValDump()
	if err != nil {
		return errors.Wrap(err, "rehydrate graph_vals")
	}
	for _, v := range graphVals {
		val, err := store.DecodeValue(v.Value)
		if err != nil {
			return errors.Wrap(err, "decode graph_val")
		}
		if _, err := e.attrs.Store(cache.GraphAttrPath(v.Graph), v.Key, v.Branch, v.Turn, v.Tick, val, false); err != nil {
			return errors.Wrap(err, "rehydrate graph_val row")
		}
	}

	nodeVals, err := e.gw.NodeValDump()
	if err != nil {
		return errors.Wrap(err, "rehydrate node_vals")
	}
	for _, v := range nodeVals {
		val, err := store.DecodeValue(v.Value)
		if err != nil {
			return errors.Wrap(err, "decode node_val")
		}
		if _, err := e.attrs.Store(cache.NewPath(v.Graph, v.Node), v.Key, v.Branch, v.Turn, v.Tick, val, false); err != nil {
			return errors.Wrap(err, "rehydrate node_val row")
		}
	}

	edgeVals, err := e.gw.EdgeValDump()
	if err != nil {
		return errors.Wrap(err, "rehydrate edge_vals")
	}
	for _, v := range edgeVals {
		val, err := store.DecodeValue(v.Value)
		if err != nil {
			return errors.Wrap(err, "decode edge_val")
		}
		path := cache.NewPath(v.Graph, v.Orig, v.Dest, itoa(v.Index))
		if _, err := e.attrs.Store(path, v.Key, v.Branch, v.Turn, v.Tick, val, false); err != nil {
			return errors.Wrap(err, "rehydrate edge_val row")
		}
	}

	return nil
}

func (e *Engine) bookkeeping(br string, turn int) *turnBookkeeping {
	byTurn, ok := e.turnEnds[br]
	if !ok {
		byTurn = make(map[int]*turnBookkeeping)
		e.turnEnds[br] = byTurn
	}
	tb, ok := byTurn[turn]
	if !ok {
		tb = &turnBookkeeping{}
		byTurn[turn] = tb
	}
	return tb
}

// Close commits any buffered writes and closes the underlying gateway.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.gw.Commit(); err != nil {
		return err
	}
	return e.gw.Close()
}

// Cursor returns the engine's current position.
func (e *Engine) Cursor() Cursor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor
}

// OnTimeChange installs the engine's single cursor-change listener,
// replacing any previously installed one.
func (e *Engine) OnTimeChange(fn func(prev, next Cursor)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onTimeChange = fn
}

func (e *Engine) moveCursor(next Cursor) {
	prev := e.cursor
	e.cursor = next
	if e.onTimeChange != nil {
		e.onTimeChange(prev, next)
	}
}

// assertTurnEndInvariant enforces turn_end <= turn_end_plan (§9's hard
// invariant). A violation here means a bug in this package, not caller
// input, so it panics rather than returning an error.
func (e *Engine) assertTurnEndInvariant(br string, turn int) {
	tb := e.bookkeeping(br, turn)
	if tb.end > tb.endPlan {
		panic("engine: turn_end exceeds turn_end_plan for branch " + br)
	}
}
