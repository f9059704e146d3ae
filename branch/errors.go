package branch

import "errors"

// Sentinel errors returned by Registry operations.
var (
	// ErrBranchExists is returned by Fork when new_branch is already known.
	ErrBranchExists = errors.New("branch: branch already exists")

	// ErrUnknownBranch is returned when an operation names a branch the
	// registry has never recorded.
	ErrUnknownBranch = errors.New("branch: unknown branch")

	// ErrInvalidFork is returned by Fork when the fork coordinate
	// precedes the parent branch's own start.
	ErrInvalidFork = errors.New("branch: fork point precedes the parent branch's start")
)
