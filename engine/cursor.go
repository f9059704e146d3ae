package engine

import (
	"github.com/chronodb/chronodb/branch"
)

// SetBranch moves the cursor to branchName. If branchName is unknown it
// is created as a fork of the current branch at the current (turn,
// tick); this is rejected during planning (§4.7). On success the
// cursor's tick is set to that branch's turn_end_plan for the current
// turn, matching the original's convention of landing on the latest
// planned tick rather than tick zero.
func (e *Engine) SetBranch(branchName string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.reg.Exists(branchName) {
		if e.planning {
			return ErrTimeFault
		}
		if err := e.reg.Fork(branchName, e.cursor.Branch, e.cursor.Turn, e.cursor.Tick); err != nil {
			return err
		}
		if err := e.gw.NewBranch(branchName, e.cursor.Branch, e.cursor.Turn, e.cursor.Tick); err != nil {
			return err
		}
	}
	tb := e.bookkeeping(branchName, e.cursor.Turn)
	e.moveCursor(Cursor{Branch: branchName, Turn: e.cursor.Turn, Tick: tb.endPlan})
	return nil
}

// SetTurn moves the cursor to turn within the current branch. In
// forward mode, turn must equal the current turn plus one.
func (e *Engine) SetTurn(turn int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.forward && turn != e.cursor.Turn+1 {
		return ErrTimeFault
	}
	ext, err := e.reg.Extent(e.cursor.Branch)
	if err != nil {
		return err
	}
	if turn > ext.Turn && !e.planning {
		if err := e.reg.GrowExtent(e.cursor.Branch, branch.Coordinate{Turn: turn, Tick: 0}); err != nil {
			return err
		}
	}
	tb := e.bookkeeping(e.cursor.Branch, turn)
	tick := tb.endPlan
	if !e.planning {
		tick = tb.end
	}
	e.moveCursor(Cursor{Branch: e.cursor.Branch, Turn: turn, Tick: tick})
	return nil
}

// SetTick moves the cursor to tick within the current turn, extending
// turn_end_plan always, and turn_end too when not planning.
func (e *Engine) SetTick(tick int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tb := e.bookkeeping(e.cursor.Branch, e.cursor.Turn)
	if tick > tb.endPlan {
		tb.endPlan = tick
	}
	if !e.planning && tick > tb.end {
		tb.end = tick
	}
	e.assertTurnEndInvariant(e.cursor.Branch, e.cursor.Turn)
	e.moveCursor(Cursor{Branch: e.cursor.Branch, Turn: e.cursor.Turn, Tick: tick})
	return nil
}

// NextTick atomically advances the cursor to a tick strictly after the
// latest one recorded for the current (branch, turn), reserving it for
// the next write. It fails with ErrTimeFault if the cursor is sitting
// at a coordinate that already has newer ticks after it outside of
// planning — observing the past is fine, writing into it is not.
func (e *Engine) NextTick() (int, int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tb := e.bookkeeping(e.cursor.Branch, e.cursor.Turn)
	latest := tb.end
	if e.planning {
		latest = tb.endPlan
	}
	if e.cursor.Tick < latest && !e.planning {
		return 0, 0, ErrTimeFault
	}
	next := latest + 1
	if e.cursor.Tick+1 > next {
		next = e.cursor.Tick + 1
	}
	tb.endPlan = next
	if !e.planning {
		tb.end = next
	}
	e.assertTurnEndInvariant(e.cursor.Branch, e.cursor.Turn)
	e.moveCursor(Cursor{Branch: e.cursor.Branch, Turn: e.cursor.Turn, Tick: next})
	return e.cursor.Turn, next, nil
}

// WithPlan runs fn with planning mode enabled, tagging every write fn
// makes under a fresh plan identifier, then restores the cursor and
// clears planning regardless of fn's outcome. Nesting is rejected with
// ErrTimeFault.
func (e *Engine) WithPlan(fn func() error) error {
	e.mu.Lock()
	if e.planning {
		e.mu.Unlock()
		return ErrTimeFault
	}
	saved := e.cursor
	e.planning = true
	e.nextPlanID++
	p := &plan{id: e.nextPlanID}
	e.plans = append(e.plans, p)
	e.activePlan = p
	e.mu.Unlock()

	err := fn()

	e.mu.Lock()
	e.planning = false
	e.activePlan = nil
	e.moveCursor(saved)
	e.mu.Unlock()

	return err
}

// WithForward runs fn with forward mode enabled, asserting the arrow of
// time so the keycache can build incrementally.
func (e *Engine) WithForward(fn func() error) error {
	e.mu.Lock()
	if e.forward {
		e.mu.Unlock()
		return ErrTimeFault
	}
	e.forward = true
	e.mu.Unlock()

	err := fn()

	e.mu.Lock()
	e.forward = false
	e.mu.Unlock()
	return err
}

// WithBatch runs fn with batch mode enabled, suppressing keycache
// bookkeeping for the duration.
func (e *Engine) WithBatch(fn func() error) error {
	e.mu.Lock()
	e.batch = true
	e.mu.Unlock()

	err := fn()

	e.mu.Lock()
	e.batch = false
	e.mu.Unlock()
	return err
}

// Commit pushes every buffered write and branch/turn bookkeeping row
// through the persistence gateway in one transaction.
func (e *Engine) Commit() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for br, byTurn := range e.turnEnds {
		for turn, tb := range byTurn {
			if err := e.gw.RecordTurnEnd(br, turn, tb.end, tb.endPlan); err != nil {
				return err
			}
		}
	}
	return e.gw.Commit()
}
