package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordAndForwardDelta(t *testing.T) {
	j := New()
	j.Record("trunk", 0, 0, "g", "x", 1, nil)
	j.Record("trunk", 0, 1, "g", "x", 2, 1)
	j.Record("trunk", 1, 0, "g", "y", "hello", nil)

	changes := j.Forward("trunk", 0, 0, 1, 0)
	byKey := map[string]any{}
	for _, c := range changes {
		byKey[c.Key] = c.Value
	}
	assert.Equal(t, 2, byKey["x"])
	assert.Equal(t, "hello", byKey["y"])
}

func TestBackwardDeltaRestoresPriorValue(t *testing.T) {
	j := New()
	j.Record("trunk", 0, 0, "g", "x", 1, nil)
	j.Record("trunk", 0, 1, "g", "x", 2, 1)
	j.Record("trunk", 0, 2, "g", "x", 3, 2)

	changes := j.Backward("trunk", 0, 0, 0, 2)
	assert.Len(t, changes, 1)
	assert.Equal(t, 1, changes[0].Value)
}

func TestForwardDeltaExcludesOutOfRangeWrites(t *testing.T) {
	j := New()
	j.Record("trunk", 0, 0, "g", "x", 1, nil)
	j.Record("trunk", 5, 0, "g", "x", 99, 1)

	changes := j.Forward("trunk", 0, 0, 1, 0)
	assert.Empty(t, changes)
}

func TestTruncateDropsLaterEntries(t *testing.T) {
	j := New()
	j.Record("trunk", 0, 0, "g", "x", 1, nil)
	j.Record("trunk", 0, 5, "g", "x", 2, 1)
	j.Truncate("trunk", 0, 2)

	changes := j.Forward("trunk", -1, 0, 0, 10)
	assert.Len(t, changes, 1)
	assert.Equal(t, 1, changes[0].Value)
}

func TestCrossTurnWritesToSameKeyDoNotCollide(t *testing.T) {
	j := New()
	j.Record("trunk", 0, 0, "g", "x", 1, nil)
	j.Record("trunk", 1, 0, "g", "x", 2, 1)

	// A range ending at turn 0 must see only turn 0's write: if Record
	// mistakenly folded turn 1's tick 0 into turn 0's tick-dict, this
	// would already observe the turn 1 value.
	changes := j.Forward("trunk", -1, 0, 0, 0)
	assert.Len(t, changes, 1)
	assert.Equal(t, 1, changes[0].Value)

	// Extending the range into turn 1 picks up the later write.
	changes = j.Forward("trunk", -1, 0, 1, 0)
	assert.Len(t, changes, 1)
	assert.Equal(t, 2, changes[0].Value)

	// Backward across the same span restores the pre-turn-1 value.
	changes = j.Backward("trunk", 0, 0, 1, 0)
	assert.Len(t, changes, 1)
	assert.Equal(t, 1, changes[0].Value)
}

func TestSameTickMultipleChangesAccumulate(t *testing.T) {
	j := New()
	j.Record("trunk", 0, 0, "g", "x", 1, nil)
	j.Record("trunk", 0, 0, "g", "y", 2, nil)

	changes := j.Forward("trunk", -1, 0, 0, 0)
	assert.Len(t, changes, 2)
}
