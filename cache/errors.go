package cache

import "errors"

// Sentinel errors returned by the attribute cache and its
// specializations.
var (
	// ErrPlanningPast is returned when a planning-mode write lands on or
	// before the latest tick already recorded in its turn.
	ErrPlanningPast = errors.New("cache: planning write is not strictly after the current turn's latest tick")

	// ErrNotFound is returned by Retrieve when no value has ever been
	// recorded for a (path, key) pair reachable from the requested
	// coordinate.
	ErrNotFound = errors.New("cache: no value recorded for this path/key")
)
