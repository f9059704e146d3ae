package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestGateway(t *testing.T) *SQLiteGateway {
	t.Helper()
	g, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { g.Close() })
	return g
}

func TestGlobalKVRoundTrip(t *testing.T) {
	g := openTestGateway(t)
	require.NoError(t, g.GlobalSet("branch", []byte("trunk")))
	require.NoError(t, g.Commit())

	v, ok, err := g.GlobalGet("branch")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "trunk", string(v))

	_, ok, err = g.GlobalGet("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewBranchAndAllBranches(t *testing.T) {
	g := openTestGateway(t)
	require.NoError(t, g.NewBranch("trunk", "", 0, 0))
	require.NoError(t, g.NewBranch("alt", "trunk", 3, 1))
	require.NoError(t, g.Commit())

	rows, err := g.AllBranches()
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestNodeAndEdgeDumpRoundTrip(t *testing.T) {
	g := openTestGateway(t)
	require.NoError(t, g.ExistNode("g", "alice", "trunk", 0, 0, true))
	require.NoError(t, g.ExistEdge("g", "alice", "bob", 0, "trunk", 0, 1, true))
	require.NoError(t, g.Commit())

	nodes, err := g.NodesDump()
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "alice", nodes[0].Node)
	assert.True(t, nodes[0].Present)

	edges, err := g.EdgesDump()
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, "bob", edges[0].Dest)
}

func TestGraphValSetDumpDeletion(t *testing.T) {
	g := openTestGateway(t)
	encoded, err := EncodeValue(42)
	require.NoError(t, err)
	require.NoError(t, g.GraphValSet("g", "population", "trunk", 0, 0, encoded, false))
	require.NoError(t, g.GraphValSet("g", "population", "trunk", 0, 1, nil, true))
	require.NoError(t, g.Commit())

	rows, err := g.GraphValDump()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.False(t, rows[0].Deleted)
	v, err := DecodeValue(rows[0].Value)
	require.NoError(t, err)
	assert.EqualValues(t, 42, v)
	assert.True(t, rows[1].Deleted)
}

func TestRecordTurnEndRoundTrip(t *testing.T) {
	g := openTestGateway(t)
	require.NoError(t, g.RecordTurnEnd("trunk", 0, 3, 5))
	require.NoError(t, g.Commit())

	rows, err := g.TurnsDump()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].EndTick)
	assert.Equal(t, 5, rows[0].PlanEndTick)
}

func TestUncommittedWritesNotVisible(t *testing.T) {
	g := openTestGateway(t)
	require.NoError(t, g.ExistNode("g", "alice", "trunk", 0, 0, true))

	nodes, err := g.NodesDump()
	require.NoError(t, err)
	assert.Empty(t, nodes, "writes are buffered until Commit")
}
