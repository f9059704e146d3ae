package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(i int) *int { return &i }

func TestWindowDictGetSet(t *testing.T) {
	w := New[string]()
	w.Set(0, "a")
	w.Set(5, "b")
	w.Set(10, "c")

	v, err := w.Get(5)
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	v, err = w.Get(7)
	require.NoError(t, err)
	assert.Equal(t, "b", v, "lookup between revisions returns the latest value at or before it")

	v, err = w.Get(10)
	require.NoError(t, err)
	assert.Equal(t, "c", v)

	v, err = w.Get(100)
	require.NoError(t, err)
	assert.Equal(t, "c", v)
}

func TestWindowDictBeforeStart(t *testing.T) {
	w := New[string]()
	w.Set(5, "a")
	_, err := w.Get(4)
	require.Error(t, err)
	var fault *HistoryFault
	require.ErrorAs(t, err, &fault)
	assert.False(t, fault.Deleted)
}

func TestWindowDictDeletedSentinel(t *testing.T) {
	w := New[*string]()
	hello := "hello"
	w.Set(0, &hello)
	w.Set(5, nil)

	_, err := w.Get(5)
	require.Error(t, err)
	var fault *HistoryFault
	require.ErrorAs(t, err, &fault)
	assert.True(t, fault.Deleted)

	v, err := w.Get(0)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "hello", *v)
}

func TestWindowDictSeekAmortized(t *testing.T) {
	w := New[int]()
	for i := 0; i < 100; i += 2 {
		w.Set(i, i*10)
	}
	// Walk forward one at a time; each Seek should only move O(1) items.
	for i := 0; i < 100; i++ {
		v, err := w.Get(i)
		require.NoError(t, err)
		assert.Equal(t, (i/2)*2*10, v)
	}
	// Walk backward.
	for i := 98; i >= 0; i-- {
		v, err := w.Get(i)
		require.NoError(t, err)
		assert.Equal(t, (i/2)*2*10, v)
	}
}

func TestWindowDictRevNeighbors(t *testing.T) {
	w := New[int]()
	w.Set(1, 10)
	w.Set(4, 40)
	w.Set(9, 90)

	before, ok := w.RevBefore(5)
	require.True(t, ok)
	assert.Equal(t, 4, before)

	after, ok := w.RevAfter(5)
	require.True(t, ok)
	assert.Equal(t, 9, after)

	_, ok = w.RevAfter(9)
	assert.False(t, ok)
}

func TestWindowDictTruncate(t *testing.T) {
	w := New[int]()
	for i := 0; i < 10; i++ {
		w.Set(i, i)
	}
	w.Truncate(5)
	_, err := w.Get(6)
	require.NoError(t, err) // Get falls back to the nearest earlier value
	v, _ := w.Get(6)
	assert.Equal(t, 5, v)
	assert.False(t, w.Contains(6))
	assert.True(t, w.Contains(5))
}

func TestWindowDictDelete(t *testing.T) {
	w := New[int]()
	w.Set(1, 1)
	w.Set(2, 2)
	w.Set(3, 3)
	require.NoError(t, w.Delete(2))
	assert.False(t, w.Contains(2))
	assert.True(t, w.Contains(1))
	assert.True(t, w.Contains(3))

	err := w.Delete(2)
	assert.ErrorIs(t, err, ErrRevNotPresent)
}

func TestWindowDictSliceAscendingDescending(t *testing.T) {
	w := New[int]()
	for i := 0; i <= 10; i++ {
		w.Set(i, i*100)
	}
	asc := w.Slice(ptr(2), ptr(5), 0)
	assert.Equal(t, []int{200, 300, 400, 500}, asc)

	desc := w.Slice(ptr(5), ptr(2), 0)
	assert.Equal(t, []int{500, 400, 300, 200}, desc)

	all := w.Slice(nil, nil, 0)
	assert.Equal(t, 11, len(all))
}

func TestWindowDictOpenEndedSlice(t *testing.T) {
	w := New[int]()
	for i := 0; i <= 5; i++ {
		w.Set(i, i)
	}
	fromTwo := w.Slice(ptr(2), nil, 0)
	assert.Equal(t, []int{2, 3, 4, 5}, fromTwo)

	toTwo := w.Slice(nil, ptr(2), 0)
	assert.Equal(t, []int{0, 1, 2}, toTwo)
}

func TestFuturistWindowDictRejectsRewrite(t *testing.T) {
	f := NewFuturist[int]()
	require.NoError(t, f.Set(0, 1))
	require.NoError(t, f.Set(5, 2))
	err := f.Set(3, 99)
	assert.ErrorIs(t, err, ErrFuturistRewrite)

	require.NoError(t, f.Set(5, 3), "overwriting the latest tick in place is allowed")
	v, err := f.Get(5)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestPastFutureViews(t *testing.T) {
	w := New[int]()
	for i := 0; i < 5; i++ {
		w.Set(i, i)
	}
	past := w.Past(ptr(2))
	assert.Equal(t, []int{2, 1, 0}, past, "nearest-first")

	future := w.Future(ptr(2))
	assert.Equal(t, []int{3, 4}, future, "nearest-first")
}
