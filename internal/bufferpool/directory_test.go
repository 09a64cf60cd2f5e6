package bufferpool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageDirectory_InsertLookupRemove(t *testing.T) {
	d := NewPageDirectory(4)

	_, ok := d.Lookup("a", 1)
	require.False(t, ok)

	require.NoError(t, d.Insert("a", 1, 3))
	require.NoError(t, d.Insert("b", 1, 0))

	idx, ok := d.Lookup("a", 1)
	require.True(t, ok)
	require.Equal(t, 3, idx)

	idx, ok = d.Lookup("b", 1)
	require.True(t, ok)
	require.Equal(t, 0, idx)
	require.Equal(t, 2, d.Len())

	d.Remove("a", 1)
	_, ok = d.Lookup("a", 1)
	require.False(t, ok)
	require.Equal(t, 1, d.Len())

	// removing an absent key is harmless
	d.Remove("a", 1)
	require.Equal(t, 1, d.Len())
}

func TestPageDirectory_DuplicateInsert(t *testing.T) {
	d := NewPageDirectory(2)
	require.NoError(t, d.Insert("a", 7, 1))

	err := d.Insert("a", 7, 0)
	require.ErrorIs(t, err, ErrBadBufferState)

	idx, ok := d.Lookup("a", 7)
	require.True(t, ok)
	require.Equal(t, 1, idx)
}
