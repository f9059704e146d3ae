package window

// TurnDict is a turn-indexed FuturistWindowDict of tick-indexed
// FuturistWindowDicts — the shape the Attribute Cache uses for
// per-(entity,key,branch) history: turn -> tick -> value. Matches the
// original's TurnDict(FuturistWindowDict), re-expressed with an explicit
// get-or-create accessor instead of Python's __missing__ hook.
type TurnDict[V any] struct {
	turns FuturistWindowDict[*FuturistWindowDict[V]]
}

// NewTurnDict returns an empty TurnDict.
func NewTurnDict[V any]() *TurnDict[V] {
	return &TurnDict[V]{}
}

// Turn returns the tick-dict for turn, creating an empty one if turn has
// never been recorded before. Must test exact membership, not nearest-
// match: turns.Get(turn) returns the tick-dict of the nearest recorded
// turn at or below turn, which for an unrecorded turn is some earlier
// turn's dict, not a fresh one for this turn.
// The returned pointer is shared state; callers mutate it directly.
func (t *TurnDict[V]) Turn(turn int) *FuturistWindowDict[V] {
	if t.turns.Contains(turn) {
		v, _ := t.turns.Get(turn)
		return v
	}
	nd := NewFuturist[V]()
	if err := t.turns.Set(turn, nd); err != nil {
		// Callers are expected to keep turns monotonic per branch before
		// reaching here; a rewrite attempt this deep is an engine bug.
		panic("window: TurnDict.Turn called out of order: " + err.Error())
	}
	return nd
}

// HasTurn reports whether turn has ever had a tick recorded, without
// creating an entry.
func (t *TurnDict[V]) HasTurn(turn int) bool {
	return t.turns.Contains(turn)
}

// Turns returns the recorded turn numbers, ascending.
func (t *TurnDict[V]) Turns() []int {
	return t.turns.Keys()
}

// RevBefore delegates to the underlying turn index.
func (t *TurnDict[V]) RevBefore(turn int) (int, bool) { return t.turns.RevBefore(turn) }

// RevGettable delegates to the underlying turn index.
func (t *TurnDict[V]) RevGettable(turn int) bool { return t.turns.RevGettable(turn) }

// Truncate drops every turn strictly after turn, and truncates the turn
// at the boundary (if present) to tick.
func (t *TurnDict[V]) Truncate(turn, tick int) {
	if t.turns.Contains(turn) {
		if v, err := t.turns.Get(turn); err == nil {
			v.Truncate(tick)
		}
	}
	t.turns.Truncate(turn)
}

// SettingsTurnDict is the non-futurist counterpart used by the Setting
// Journal, where entries may be removed (via Delete on the tick dict)
// without the futurist "no rewriting the past" restriction applying to
// which *turns* exist.
type SettingsTurnDict[V any] struct {
	turns WindowDict[*WindowDict[V]]
}

// NewSettingsTurnDict returns an empty SettingsTurnDict.
func NewSettingsTurnDict[V any]() *SettingsTurnDict[V] {
	return &SettingsTurnDict[V]{}
}

// Turn returns the tick-dict for turn, creating an empty one if turn has
// never been recorded before. Tests exact membership for the same reason
// as TurnDict.Turn: turns.Get(turn) would otherwise return an earlier
// recorded turn's dict for any not-yet-recorded turn.
func (t *SettingsTurnDict[V]) Turn(turn int) *WindowDict[V] {
	if t.turns.Contains(turn) {
		v, _ := t.turns.Get(turn)
		return v
	}
	nd := New[V]()
	t.turns.Set(turn, nd)
	return nd
}

// HasTurn reports whether turn has ever had a tick recorded.
func (t *SettingsTurnDict[V]) HasTurn(turn int) bool {
	return t.turns.Contains(turn)
}

// Turns returns the recorded turn numbers, ascending.
func (t *SettingsTurnDict[V]) Turns() []int {
	return t.turns.Keys()
}

// Truncate drops every turn strictly after turn, and truncates the turn
// at the boundary (if present) to tick.
func (t *SettingsTurnDict[V]) Truncate(turn, tick int) {
	if t.turns.Contains(turn) {
		if v, err := t.turns.Get(turn); err == nil {
			v.Truncate(tick)
		}
	}
	t.turns.Truncate(turn)
}
