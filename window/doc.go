// Package window implements WindowDict, an ordered map keyed by a
// monotonically comparable integer revision, optimized for the access
// pattern "look up the same revision repeatedly, or one of its
// neighbors."
//
// A WindowDict is split into two slices, past and future, relative to an
// internal cursor. Seeking to a new revision moves entries between the
// two slices until past ends at the largest stored revision at or below
// the target and future begins at the smallest revision above it.
// Successive seeks near the previous one cost O(1) amortized; a large
// jump costs O(n) once, after which nearby lookups are cheap again.
//
// Values may be explicitly deleted by storing the zero value of a
// pointer type (nil) at a revision; retrieving that revision reports
// ErrDeleted so callers can distinguish "never set" from "set, then
// removed".
package window
