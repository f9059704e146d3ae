package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronodb/chronodb/branch"
)

func TestKeycacheColdBuildAndHit(t *testing.T) {
	reg := branch.NewRegistry()
	ac := New(16)
	path := NewPath("g")
	_, err := ac.Store(path, "a", branch.RootBranch, 0, 0, true, false)
	require.NoError(t, err)

	kc := NewKeycache(8)
	set := kc.Get(reg, ac, path, branch.RootBranch, 0, 0)
	assert.True(t, set["a"])
	hits, misses := kc.Stats()
	assert.Equal(t, 0, hits)
	assert.Equal(t, 1, misses)

	kc.Get(reg, ac, path, branch.RootBranch, 0, 0)
	hits, misses = kc.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
}

func TestKeycacheInvalidate(t *testing.T) {
	reg := branch.NewRegistry()
	ac := New(16)
	path := NewPath("g")
	_, err := ac.Store(path, "a", branch.RootBranch, 0, 0, true, false)
	require.NoError(t, err)

	kc := NewKeycache(8)
	kc.Get(reg, ac, path, branch.RootBranch, 0, 0)
	kc.Invalidate(path)

	_, err = ac.Store(path, "b", branch.RootBranch, 0, 1, true, false)
	require.NoError(t, err)
	set := kc.Get(reg, ac, path, branch.RootBranch, 0, 1)
	assert.True(t, set["b"])
}

func TestKeycacheAdvanceStaysIncremental(t *testing.T) {
	reg := branch.NewRegistry()
	ac := New(16)
	path := NewPath("g")
	_, err := ac.Store(path, "a", branch.RootBranch, 0, 0, true, false)
	require.NoError(t, err)

	kc := NewKeycache(8)
	set := kc.Get(reg, ac, path, branch.RootBranch, 0, 0)
	assert.True(t, set["a"])

	_, err = ac.Store(path, "b", branch.RootBranch, 0, 1, true, false)
	require.NoError(t, err)
	kc.Advance(path, branch.RootBranch, 0, 1, "b", true)

	set = kc.Get(reg, ac, path, branch.RootBranch, 0, 1)
	assert.True(t, set["a"], "incrementally advanced set must retain the earlier key")
	assert.True(t, set["b"])
	_, misses := kc.Stats()
	assert.Equal(t, 1, misses, "the second Get must be served by Advance's incremental set, not a cold rebuild")
}

func TestKeycacheInvalidateBranch(t *testing.T) {
	reg := branch.NewRegistry()
	ac := New(16)
	gPath, hPath := NewPath("g"), NewPath("h")
	_, err := ac.Store(gPath, "a", branch.RootBranch, 0, 0, true, false)
	require.NoError(t, err)
	_, err = ac.Store(hPath, "b", branch.RootBranch, 0, 0, true, false)
	require.NoError(t, err)

	kc := NewKeycache(8)
	kc.Get(reg, ac, gPath, branch.RootBranch, 0, 0)
	kc.Get(reg, ac, hPath, branch.RootBranch, 0, 0)
	kc.InvalidateBranch(branch.RootBranch)

	_, err = ac.Store(gPath, "c", branch.RootBranch, 0, 1, true, false)
	require.NoError(t, err)
	set := kc.Get(reg, ac, gPath, branch.RootBranch, 0, 1)
	assert.True(t, set["c"], "cached set for g must have been dropped, not just invalidated for one path")
}
