package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeInventory_ValueScan(t *testing.T) {
	t.Run("nil map stores as NULL", func(t *testing.T) {
		var inv SizeInventory
		v, err := inv.Value()
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("empty map stores as empty JSON object", func(t *testing.T) {
		inv := SizeInventory{}
		v, err := inv.Value()
		require.NoError(t, err)
		assert.Equal(t, []byte("{}"), v)
	})

	t.Run("round trip preserves quantities", func(t *testing.T) {
		inv := SizeInventory{"M": 3, "L": 0}
		v, err := inv.Value()
		require.NoError(t, err)

		var out SizeInventory
		require.NoError(t, out.Scan(v))
		assert.Equal(t, inv, out)
	})

	t.Run("NULL scans back to nil map", func(t *testing.T) {
		out := SizeInventory{"M": 1}
		require.NoError(t, out.Scan(nil))
		assert.Nil(t, out)
		assert.False(t, out.Tracked())
	})

	t.Run("scans string columns", func(t *testing.T) {
		var out SizeInventory
		require.NoError(t, out.Scan(`{"default":5}`))
		assert.Equal(t, 5, out.Quantity(DefaultSizeKey))
	})

	t.Run("rejects unsupported column types", func(t *testing.T) {
		var out SizeInventory
		assert.Error(t, out.Scan(42))
	})
}

func TestSizeInventory_TrackedVsUntracked(t *testing.T) {
	var untracked SizeInventory
	assert.False(t, untracked.Tracked())
	assert.Equal(t, 0, untracked.Quantity("M"))

	tracked := SizeInventory{}
	assert.True(t, tracked.Tracked())
	assert.Equal(t, 0, tracked.Quantity("M"))
}

func TestSizeInventory_Clone(t *testing.T) {
	inv := SizeInventory{"M": 2}
	clone := inv.Clone()
	clone["M"] = 99
	assert.Equal(t, 2, inv["M"])

	var untracked SizeInventory
	assert.Nil(t, untracked.Clone())
}

func TestEntityKind_IsValid(t *testing.T) {
	assert.True(t, KindProduct.IsValid())
	assert.True(t, KindBox.IsValid())
	assert.False(t, EntityKind("bundle").IsValid())
	assert.False(t, EntityKind("").IsValid())
}
