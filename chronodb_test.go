package chronodb

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chronodb/chronodb/config"
	"github.com/chronodb/chronodb/engine"
)

func TestOpenAndClose(t *testing.T) {
	e, err := Open(":memory:", config.Default())
	require.NoError(t, err)
	require.NoError(t, e.NewGraph("g", engine.Graph))
	require.NoError(t, e.Close())
}
