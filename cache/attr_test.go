package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronodb/chronodb/branch"
)

func TestAttributeCacheStoreRetrieve(t *testing.T) {
	reg := branch.NewRegistry()
	c := New(16)
	path := NewPath("g")

	_, err := c.Store(path, "x", branch.RootBranch, 0, 0, 1, false)
	require.NoError(t, err)
	_, err = c.Store(path, "x", branch.RootBranch, 0, 1, 2, false)
	require.NoError(t, err)

	v, err := c.Retrieve(reg, path, "x", branch.RootBranch, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	v, err = c.Retrieve(reg, path, "x", branch.RootBranch, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestAttributeCacheStoreAcrossTurnsDoesNotCollide(t *testing.T) {
	reg := branch.NewRegistry()
	c := New(16)
	path := NewPath("g")

	_, err := c.Store(path, "x", branch.RootBranch, 0, 0, 1, false)
	require.NoError(t, err)
	_, err = c.Store(path, "x", branch.RootBranch, 1, 0, 2, false)
	require.NoError(t, err)

	v, err := c.Retrieve(reg, path, "x", branch.RootBranch, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, v, "turn 0's value must survive a later write to turn 1")

	v, err = c.Retrieve(reg, path, "x", branch.RootBranch, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestAttributeCacheRetrieveAcrossFork(t *testing.T) {
	reg := branch.NewRegistry()
	c := New(16)
	path := NewPath("g")

	_, err := c.Store(path, "x", branch.RootBranch, 0, 0, "trunk-value", false)
	require.NoError(t, err)
	require.NoError(t, reg.Fork("alt", branch.RootBranch, 1, 0))

	v, err := c.Retrieve(reg, path, "x", "alt", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, "trunk-value", v)
}

func TestAttributeCachePlanningRejectsPastWrite(t *testing.T) {
	c := New(16)
	path := NewPath("g")

	_, err := c.Store(path, "x", branch.RootBranch, 0, 5, "a", true)
	require.NoError(t, err)
	_, err = c.Store(path, "x", branch.RootBranch, 0, 3, "b", true)
	assert.ErrorIs(t, err, ErrPlanningPast)
}

func TestAttributeCacheDetectsContradiction(t *testing.T) {
	c := New(16)
	path := NewPath("g")

	_, err := c.Store(path, "x", branch.RootBranch, 0, 0, "a", false)
	require.NoError(t, err)
	_, err = c.Store(path, "x", branch.RootBranch, 0, 5, "b", false)
	require.NoError(t, err)

	contras, err := c.Store(path, "x", branch.RootBranch, 0, 2, "different", false)
	require.NoError(t, err)
	require.Len(t, contras, 1)
	assert.Equal(t, Contradiction{Turn: 0, Tick: 5}, contras[0])
}

func TestAttributeCacheNotFound(t *testing.T) {
	reg := branch.NewRegistry()
	c := New(16)
	_, err := c.Retrieve(reg, NewPath("g"), "missing", branch.RootBranch, 0, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAttributeCacheKeys(t *testing.T) {
	reg := branch.NewRegistry()
	c := New(16)
	path := NewPath("g")
	_, err := c.Store(path, "a", branch.RootBranch, 0, 0, true, false)
	require.NoError(t, err)
	_, err = c.Store(path, "b", branch.RootBranch, 0, 0, true, false)
	require.NoError(t, err)

	keys := c.Keys(reg, path, branch.RootBranch, 0, 0)
	assert.ElementsMatch(t, []string{"a", "b"}, keys)
}
