package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesSpec(t *testing.T) {
	d := Default()
	assert.Equal(t, 1024, d.KeycacheCapacity)
	assert.True(t, d.IllegalGraphNames["global"])
	assert.True(t, d.IllegalNodeNames["node_val"])
}

func TestLoadWithNoFileUsesDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1024, c.KeycacheCapacity)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CHRONODB_KEYCACHE_CAPACITY", "64")
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 64, c.KeycacheCapacity)
}
