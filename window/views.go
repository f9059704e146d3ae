package window

// Past returns a read-only snapshot of every value at or before rev, in
// descending revision order (nearest first), matching the original's
// "past relative to last lookup" view. Passing a nil rev uses the
// dict's current cursor without seeking.
func (w *WindowDict[V]) Past(rev *int) []V {
	if rev != nil {
		w.Seek(*rev)
	}
	out := make([]V, len(w.past))
	for i, r := range w.past {
		out[len(out)-1-i] = r.val
	}
	return out
}

// Future returns a read-only snapshot of every value after the cursor,
// in ascending revision order (nearest first).
func (w *WindowDict[V]) Future(rev *int) []V {
	if rev != nil {
		w.Seek(*rev)
	}
	out := make([]V, len(w.future))
	for i, r := range w.future {
		out[len(out)-1-i] = r.val
	}
	return out
}

// PastKeys returns the revisions of Past, in the same order.
func (w *WindowDict[V]) PastKeys(rev *int) []int {
	if rev != nil {
		w.Seek(*rev)
	}
	out := make([]int, len(w.past))
	for i, r := range w.past {
		out[len(out)-1-i] = r.rev
	}
	return out
}

// FutureKeys returns the revisions of Future, in the same order.
func (w *WindowDict[V]) FutureKeys(rev *int) []int {
	if rev != nil {
		w.Seek(*rev)
	}
	out := make([]int, len(w.future))
	for i, r := range w.future {
		out[len(out)-1-i] = r.rev
	}
	return out
}

// Slice materializes the values recorded within [lo, hi] (inclusive),
// in ascending revision order if lo <= hi, descending otherwise, same as
// slicing the original with a start greater than its stop. A nil lo (or
// hi) leaves that end of the window open. step, if non-zero, walks the
// window from lo toward hi at fixed revision increments via Get instead
// of returning every recorded value; a stepped walk excludes hi.
func (w *WindowDict[V]) Slice(lo, hi *int, step int) []V {
	if w.IsEmpty() {
		return nil
	}
	if step != 0 {
		return w.steppedSlice(lo, hi, step)
	}
	if lo == nil && hi == nil {
		out := make([]V, 0, w.Len())
		for _, r := range w.past {
			out = append(out, r.val)
		}
		for i := len(w.future) - 1; i >= 0; i-- {
			out = append(out, w.future[i].val)
		}
		return out
	}
	if lo != nil && hi != nil {
		if *lo == *hi {
			v, err := w.Get(*hi)
			if err != nil {
				return nil
			}
			return []V{v}
		}
		left, right := *lo, *hi
		descending := left > right
		if descending {
			left, right = right, left
		}
		all := w.windowed(left, right)
		if descending {
			reverse(all)
		}
		return all
	}
	if lo == nil {
		return w.windowed(minInt, *hi)
	}
	return w.windowed(*lo, maxInt)
}

const (
	minInt = -1 << 62
	maxInt = 1<<62 - 1
)

// windowed returns every recorded value with revision in [left, right],
// ascending.
func (w *WindowDict[V]) windowed(left, right int) []V {
	w.Seek(right)
	out := make([]V, 0)
	for _, r := range w.past {
		if r.rev >= left && r.rev <= right {
			out = append(out, r.val)
		}
	}
	return out
}

func (w *WindowDict[V]) steppedSlice(lo, hi *int, step int) []V {
	begin, _ := w.Beginning()
	end, _ := w.End()
	start, stop := begin, end
	if lo != nil {
		start = *lo
	}
	if hi != nil {
		stop = *hi
	}
	var out []V
	if step > 0 {
		for i := start; i < stop; i += step {
			if v, err := w.Get(i); err == nil {
				out = append(out, v)
			}
		}
	} else {
		for i := start; i > stop; i += step {
			if v, err := w.Get(i); err == nil {
				out = append(out, v)
			}
		}
	}
	return out
}

func reverse[V any](s []V) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
