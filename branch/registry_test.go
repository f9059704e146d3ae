package branch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryStartsWithTrunk(t *testing.T) {
	r := NewRegistry()
	assert.True(t, r.Exists(RootBranch))
	ext, err := r.Extent(RootBranch)
	require.NoError(t, err)
	assert.Equal(t, Coordinate{0, 0}, ext)
}

func TestForkAndAncestry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.GrowExtent(RootBranch, Coordinate{0, 10}))
	require.NoError(t, r.Fork("alt", RootBranch, 0, 5))

	assert.True(t, r.Exists("alt"))
	assert.True(t, r.IsDescendant(RootBranch, "alt"))
	assert.False(t, r.IsDescendant("alt", RootBranch))

	parent, at, ok := r.Parent("alt")
	require.True(t, ok)
	assert.Equal(t, RootBranch, parent)
	assert.Equal(t, Coordinate{0, 5}, at)
}

func TestForkRejectsDuplicateAndUnknownParent(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Fork("alt", RootBranch, 0, 0))
	assert.ErrorIs(t, r.Fork("alt", RootBranch, 0, 0), ErrBranchExists)
	assert.ErrorIs(t, r.Fork("other", "nonexistent", 0, 0), ErrUnknownBranch)
}

func TestForkRejectsCoordinateBeforeParentStart(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Fork("mid", RootBranch, 5, 0))
	err := r.Fork("bad", "mid", 2, 0)
	assert.ErrorIs(t, err, ErrInvalidFork)
}

func TestAncestorsWithForkPointChain(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.GrowExtent(RootBranch, Coordinate{10, 0}))
	require.NoError(t, r.Fork("a", RootBranch, 5, 2))
	require.NoError(t, r.GrowExtent("a", Coordinate{8, 0}))
	require.NoError(t, r.Fork("b", "a", 7, 1))

	points := r.AncestorsWithForkPoint("b", 7, 5, nil)
	require.Len(t, points, 3)
	assert.Equal(t, "b", points[0].Branch)
	assert.Equal(t, Coordinate{7, 5}, points[0].Coordinate)
	assert.Equal(t, "a", points[1].Branch)
	assert.Equal(t, Coordinate{7, 1}, points[1].Coordinate)
	assert.Equal(t, RootBranch, points[2].Branch)
	assert.Equal(t, Coordinate{5, 2}, points[2].Coordinate)
}

func TestAncestorsWithForkPointStop(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Fork("a", RootBranch, 1, 0))
	require.NoError(t, r.Fork("b", "a", 2, 0))

	points := r.AncestorsWithForkPoint("b", 3, 0, &BranchPoint{Branch: "a"})
	require.Len(t, points, 2)
	assert.Equal(t, "b", points[0].Branch)
	assert.Equal(t, "a", points[1].Branch)
}

func TestTruncateExtent(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.GrowExtent(RootBranch, Coordinate{10, 0}))
	require.NoError(t, r.TruncateExtent(RootBranch, Coordinate{3, 1}))
	ext, err := r.Extent(RootBranch)
	require.NoError(t, err)
	assert.Equal(t, Coordinate{3, 1}, ext)
}
