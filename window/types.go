package window

// revision pairs a comparable integer revision with the value recorded
// at it.
type revision[V any] struct {
	rev int
	val V
}

// WindowDict is an ordered map from integer revision to a value of type
// V, split into a past slice (revisions at or before the cursor) and a
// future slice (revisions after it). past is held in ascending revision
// order and future in descending order, so the revision nearest the
// cursor is the last element of each.
// Looking up the same revision repeatedly, or a neighboring one, costs
// O(1) amortized because Seek only moves the boundary; an isolated jump
// to a far-away revision costs O(n) once.
//
// The zero value is an empty WindowDict ready to use.
type WindowDict[V any] struct {
	past   []revision[V]
	future []revision[V]
}

// New returns an empty WindowDict.
func New[V any]() *WindowDict[V] {
	return &WindowDict[V]{}
}

// FromSorted builds a WindowDict from revisions already sorted ascending.
// The caller is responsible for the ordering and for revision
// uniqueness; this is an O(n) bulk constructor used during rehydration
// from the persistence gateway, where rows already arrive in revision
// order per branch.
func FromSorted[V any](revs []int, vals []V) *WindowDict[V] {
	w := &WindowDict[V]{past: make([]revision[V], len(revs))}
	for i, r := range revs {
		w.past[i] = revision[V]{rev: r, val: vals[i]}
	}
	return w
}

// Len reports the total number of recorded revisions, deleted or not.
func (w *WindowDict[V]) Len() int {
	return len(w.past) + len(w.future)
}

// IsEmpty reports whether no revision has ever been recorded.
func (w *WindowDict[V]) IsEmpty() bool {
	return len(w.past) == 0 && len(w.future) == 0
}

// Contains reports whether exactly rev has a recorded entry (live or
// deleted), without moving the cursor.
func (w *WindowDict[V]) Contains(rev int) bool {
	for _, r := range w.past {
		if r.rev == rev {
			return true
		}
	}
	for _, r := range w.future {
		if r.rev == rev {
			return true
		}
	}
	return false
}

// Beginning returns the earliest recorded revision.
func (w *WindowDict[V]) Beginning() (int, bool) {
	if len(w.past) > 0 {
		return w.past[0].rev, true
	}
	if len(w.future) > 0 {
		return w.future[len(w.future)-1].rev, true
	}
	return 0, false
}

// End returns the latest recorded revision.
func (w *WindowDict[V]) End() (int, bool) {
	if len(w.future) > 0 {
		return w.future[0].rev, true
	}
	if len(w.past) > 0 {
		return w.past[len(w.past)-1].rev, true
	}
	return 0, false
}

// Keys returns every recorded revision in ascending order.
func (w *WindowDict[V]) Keys() []int {
	out := make([]int, 0, w.Len())
	for _, r := range w.past {
		out = append(out, r.rev)
	}
	for i := len(w.future) - 1; i >= 0; i-- {
		out = append(out, w.future[i].rev)
	}
	return out
}
