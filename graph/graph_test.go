package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronodb/chronodb/config"
	"github.com/chronodb/chronodb/engine"
	"github.com/chronodb/chronodb/store"
)

func newTestGraph(t *testing.T, kind engine.Kind) *Graph {
	t.Helper()
	gw, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { gw.Close() })

	e, err := engine.New(gw, config.Default())
	require.NoError(t, err)

	g, err := New(e, "social", kind)
	require.NoError(t, err)
	return g
}

func TestGraphAttrsDoNotCollideWithNodeIDs(t *testing.T) {
	g := newTestGraph(t, engine.Graph)

	require.NoError(t, g.Set("population", 42))
	require.NoError(t, g.Node("population").Create())

	v, err := g.Get("population")
	require.NoError(t, err)
	assert.EqualValues(t, 42, v, "a node named the same as an attribute key must not corrupt the attribute")
	assert.True(t, g.Node("population").Exists())
}

func TestNodeLifecycleAndAttributes(t *testing.T) {
	g := newTestGraph(t, engine.Graph)

	alice := g.Node("alice")
	assert.False(t, alice.Exists())
	require.NoError(t, alice.Create())
	assert.True(t, alice.Exists())

	require.NoError(t, alice.Set("age", 30))
	v, err := alice.Get("age")
	require.NoError(t, err)
	assert.EqualValues(t, 30, v)

	assert.Contains(t, g.Nodes(), "alice")

	require.NoError(t, alice.Delete())
	assert.False(t, alice.Exists())
}

func TestEdgeAdjacencyAndSuccessors(t *testing.T) {
	g := newTestGraph(t, engine.DiGraph)

	require.NoError(t, g.Node("alice").Create())
	require.NoError(t, g.Node("bob").Create())

	edge := g.Adj("alice").To("bob").At(0)
	assert.False(t, edge.Exists())
	require.NoError(t, edge.Create())
	assert.True(t, edge.Exists())
	require.NoError(t, edge.Set("since", 2020))

	v, err := edge.Get("since")
	require.NoError(t, err)
	assert.EqualValues(t, 2020, v)

	assert.ElementsMatch(t, []string{"bob"}, g.Node("alice").Successors())
	assert.ElementsMatch(t, []string{"alice"}, g.Pred("bob").Origins())
}

func TestMultigraphEdgeIndicesDoNotCollide(t *testing.T) {
	g := newTestGraph(t, engine.MultiGraph)

	require.NoError(t, g.Node("alice").Create())
	require.NoError(t, g.Node("bob").Create())

	bundle := g.Adj("alice").To("bob")
	require.NoError(t, bundle.At(0).Create())
	require.NoError(t, bundle.At(0).Set("kind", "friend"))
	require.NoError(t, bundle.At(1).Create())
	require.NoError(t, bundle.At(1).Set("kind", "coworker"))

	v0, err := bundle.At(0).Get("kind")
	require.NoError(t, err)
	assert.Equal(t, "friend", v0)

	v1, err := bundle.At(1).Get("kind")
	require.NoError(t, err)
	assert.Equal(t, "coworker", v1)
}
