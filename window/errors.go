package window

import "errors"

// Sentinel errors returned by WindowDict operations.
var (
	// ErrNoHistory indicates the dict has never had a value set.
	ErrNoHistory = errors.New("window: no history yet")

	// ErrBeforeStart indicates a lookup revision precedes the earliest
	// recorded revision.
	ErrBeforeStart = errors.New("window: revision is before the start of history")

	// ErrDeleted indicates the resolved revision holds an explicit
	// deletion marker rather than a live value.
	ErrDeleted = errors.New("window: value was set, then deleted")

	// ErrRevNotPresent indicates Delete was asked to remove a revision
	// that isn't exactly present in the dict.
	ErrRevNotPresent = errors.New("window: revision not present")

	// ErrFuturistRewrite indicates a FuturistWindowDict was asked to
	// write at or before a revision that already has later history.
	ErrFuturistRewrite = errors.New("window: already have history after this revision")
)

// HistoryFault is returned by Get when the queried revision cannot be
// resolved to a live value. Deleted distinguishes "explicitly deleted"
// from "never recorded", matching the engine's HistoryFault{deleted}
// semantics one layer up.
type HistoryFault struct {
	Rev     int
	Deleted bool
	cause   error
}

func (f *HistoryFault) Error() string {
	if f.Deleted {
		return "window: value at revision was deleted"
	}
	return "window: no value at or before revision"
}

func (f *HistoryFault) Unwrap() error { return f.cause }

func newHistoryFault(rev int, deleted bool, cause error) *HistoryFault {
	return &HistoryFault{Rev: rev, Deleted: deleted, cause: cause}
}
