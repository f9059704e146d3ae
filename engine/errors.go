package engine

import "errors"

// Sentinel errors surfaced by the engine.
var (
	// ErrTimeFault covers: a write in the past outside a plan, a
	// forward-mode violation, or a plan nested inside a plan.
	ErrTimeFault = errors.New("engine: time fault")

	// ErrGraphNameError is returned for a duplicate or illegal graph name.
	ErrGraphNameError = errors.New("engine: invalid graph name")

	// ErrEntityCollision is returned when creating an entity whose
	// identity is already bound to a different kind.
	ErrEntityCollision = errors.New("engine: entity identity already bound to a different kind")

	// ErrUnknownGraph is returned when an operation names a graph that
	// was never created.
	ErrUnknownGraph = errors.New("engine: unknown graph")
)
