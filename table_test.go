package chainmap

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Basic(t *testing.T) {
	tbl, err := NewTable[string, int]()
	require.NoError(t, err)

	tbl.Store("foo", 42)

	v, err := tbl.Load("foo")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	// Update existing key in place.
	tbl.Store("foo", 100)

	v, err = tbl.Load("foo")
	require.NoError(t, err)
	assert.Equal(t, 100, v)
	assert.Equal(t, 1, tbl.Len())

	// Delete
	require.NoError(t, tbl.Delete("foo"))
	assert.False(t, tbl.Contains("foo"))
	assert.Equal(t, 0, tbl.Len())
}

func TestTable_LoadMissing(t *testing.T) {
	tbl, err := NewTable[string, string]()
	require.NoError(t, err)

	_, err = tbl.Load("nonexistent")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	tbl.Store("present", "x")
	require.NoError(t, tbl.Delete("present"))

	_, err = tbl.Load("present")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestTable_DeleteMissing(t *testing.T) {
	tbl, err := NewTable[string, int]()
	require.NoError(t, err)

	err = tbl.Delete("nonexistent")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// A failed delete leaves the counter alone.
	tbl.Store("a", 1)
	_ = tbl.Delete("b")
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_CollisionChaining(t *testing.T) {
	// volume=2 with three keys forces at least one collision.
	tbl, err := NewTable[string, int](WithVolume[string, int](2))
	require.NoError(t, err)

	tbl.Store("a", 1)
	tbl.Store("b", 2)
	tbl.Store("c", 3)

	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		v, err := tbl.Load(key)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	assert.Equal(t, 3, tbl.Len())
}

func TestTable_LenTransitions(t *testing.T) {
	tbl, err := NewTable[int, int]()
	require.NoError(t, err)

	assert.Equal(t, 0, tbl.Len())

	tbl.Store(1, 10)
	assert.Equal(t, 1, tbl.Len(), "new key adds one")

	tbl.Store(1, 20)
	assert.Equal(t, 1, tbl.Len(), "overwrite keeps length")

	tbl.Store(2, 30)
	assert.Equal(t, 2, tbl.Len())

	require.NoError(t, tbl.Delete(1))
	assert.Equal(t, 1, tbl.Len(), "delete removes one")

	tbl.Clear()
	assert.Equal(t, 0, tbl.Len())
}

func TestTable_AllYieldsAllKeys(t *testing.T) {
	tbl, err := NewTable[string, string](WithVolume[string, string](4))
	require.NoError(t, err)

	want := map[string]bool{}
	for _, key := range []string{"a", "b", "c", "d", "e"} {
		tbl.Store(key, "value_"+key)
		want[key] = true
	}

	seen := map[string]int{}
	for key := range tbl.All() {
		seen[key]++
	}

	assert.Len(t, seen, tbl.Len())
	for key := range want {
		assert.Equal(t, 1, seen[key], "key %q yielded once", key)
	}
}

func TestTable_AllIsRestartable(t *testing.T) {
	tbl, err := NewTable[int, int]()
	require.NoError(t, err)

	for i := range 10 {
		tbl.Store(i, i)
	}

	seq := tbl.All()

	// Early break must not exhaust the sequence for later runs.
	for range seq {
		break
	}

	var first, second []int
	for k := range seq {
		first = append(first, k)
	}
	for k := range seq {
		second = append(second, k)
	}

	assert.Len(t, first, 10)
	// Order is stable while volume and hash are unchanged.
	assert.Equal(t, first, second)
}

func TestTable_Clear(t *testing.T) {
	tbl, err := NewTable[string, int]()
	require.NoError(t, err)

	tbl.Store("a", 1)
	tbl.Store("b", 2)

	tbl.Clear()

	assert.Equal(t, 0, tbl.Len())
	assert.False(t, tbl.Contains("a"))
	assert.False(t, tbl.Contains("b"))
	assert.Equal(t, DefaultVolume, tbl.Volume())

	// The table stays usable after Clear.
	tbl.Store("a", 3)
	v, err := tbl.Load("a")
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestTable_InvalidVolume(t *testing.T) {
	_, err := NewTable[string, int](WithVolume[string, int](0))
	assert.ErrorIs(t, err, ErrInvalidVolume)

	_, err = NewTable[string, int](WithVolume[string, int](-3))
	assert.ErrorIs(t, err, ErrInvalidVolume)
}

func TestTable_DefaultVolume(t *testing.T) {
	tbl, err := NewTable[string, int]()
	require.NoError(t, err)
	assert.Equal(t, DefaultVolume, tbl.Volume())
}

func TestTable_WithHashFunc(t *testing.T) {
	// Constant hash degrades the table to one chain; operations must
	// still be correct, only slower.
	tbl, err := NewTable[int, int](
		WithVolume[int, int](8),
		WithHashFunc[int, int](func(int) uint64 { return 7 }),
	)
	require.NoError(t, err)

	for i := range 20 {
		tbl.Store(i, i*10)
	}
	assert.Equal(t, 20, tbl.Len())

	for i := range 20 {
		v, err := tbl.Load(i)
		require.NoError(t, err)
		assert.Equal(t, i*10, v)
	}

	require.NoError(t, tbl.Delete(13))
	assert.False(t, tbl.Contains(13))
	assert.Equal(t, 19, tbl.Len())
}

func TestTable_LastWriteWins(t *testing.T) {
	tbl, err := NewTable[string, int](WithVolume[string, int](4))
	require.NoError(t, err)

	for i := range 100 {
		tbl.Store(strconv.Itoa(i%10), i)
	}

	assert.Equal(t, 10, tbl.Len())
	for i := range 10 {
		v, err := tbl.Load(strconv.Itoa(i))
		require.NoError(t, err)
		assert.Equal(t, 90+i, v)
	}
}
