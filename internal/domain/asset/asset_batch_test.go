package asset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestBatch(t *testing.T, quantity int) *AssetBatch {
	batch, err := NewAssetBatch("ThinkPad X1", AssetCategoryLaptop, quantity)
	require.NoError(t, err)
	require.NotNil(t, batch)
	require.NoError(t, batch.CheckConsistency())
	return batch
}

func TestNewAssetBatch(t *testing.T) {
	tests := []struct {
		name     string
		bName    string
		category AssetCategory
		quantity int
		wantErr  bool
	}{
		{name: "valid batch", bName: "ThinkPad X1", category: AssetCategoryLaptop, quantity: 10, wantErr: false},
		{name: "empty name", bName: "", category: AssetCategoryLaptop, quantity: 10, wantErr: true},
		{name: "invalid category", bName: "Chairs", category: AssetCategory("STATIONERY"), quantity: 10, wantErr: true},
		{name: "zero quantity", bName: "Chairs", category: AssetCategoryFurniture, quantity: 0, wantErr: true},
		{name: "negative quantity", bName: "Chairs", category: AssetCategoryFurniture, quantity: -5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch, err := NewAssetBatch(tt.bName, tt.category, tt.quantity)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.quantity, batch.InitialQuantity)
				assert.Equal(t, tt.quantity, batch.AvailableQuantity)
				assert.Zero(t, batch.AssignedQuantity)
				assert.Zero(t, batch.OutOfStockQuantity)
				assert.True(t, batch.IsActive)
			}
		})
	}
}

func TestAssetBatch_AssignQuantity(t *testing.T) {
	batch := createTestBatch(t, 10)

	t.Run("valid assignment", func(t *testing.T) {
		err := batch.AssignQuantity(4)
		require.NoError(t, err)
		assert.Equal(t, 6, batch.AvailableQuantity)
		assert.Equal(t, 4, batch.AssignedQuantity)
		require.NoError(t, batch.CheckConsistency())
	})

	t.Run("more than available", func(t *testing.T) {
		err := batch.AssignQuantity(7)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Not enough available")
		require.NoError(t, batch.CheckConsistency())
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		require.Error(t, batch.AssignQuantity(0))
		require.Error(t, batch.AssignQuantity(-1))
	})
}

func TestAssetBatch_ReturnQuantity(t *testing.T) {
	batch := createTestBatch(t, 10)
	require.NoError(t, batch.AssignQuantity(6))

	t.Run("serviceable return goes back to available", func(t *testing.T) {
		err := batch.ReturnQuantity(2, false)
		require.NoError(t, err)
		assert.Equal(t, 6, batch.AvailableQuantity)
		assert.Equal(t, 4, batch.AssignedQuantity)
		assert.Zero(t, batch.OutOfStockQuantity)
		require.NoError(t, batch.CheckConsistency())
	})

	t.Run("damaged return goes out of stock", func(t *testing.T) {
		err := batch.ReturnQuantity(3, true)
		require.NoError(t, err)
		assert.Equal(t, 6, batch.AvailableQuantity)
		assert.Equal(t, 1, batch.AssignedQuantity)
		assert.Equal(t, 3, batch.OutOfStockQuantity)
		require.NoError(t, batch.CheckConsistency())
	})

	t.Run("return more than assigned", func(t *testing.T) {
		err := batch.ReturnQuantity(5, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "more units than are assigned")
		require.NoError(t, batch.CheckConsistency())
	})
}

func TestAssetBatch_MarkOutOfStockAndRestore(t *testing.T) {
	batch := createTestBatch(t, 10)

	require.NoError(t, batch.MarkOutOfStock(3))
	assert.Equal(t, 7, batch.AvailableQuantity)
	assert.Equal(t, 3, batch.OutOfStockQuantity)
	require.NoError(t, batch.CheckConsistency())

	require.Error(t, batch.MarkOutOfStock(8))

	require.NoError(t, batch.RestoreFromOutOfStock(2))
	assert.Equal(t, 9, batch.AvailableQuantity)
	assert.Equal(t, 1, batch.OutOfStockQuantity)
	require.NoError(t, batch.CheckConsistency())

	require.Error(t, batch.RestoreFromOutOfStock(2))
}

func TestAssetBatch_Restock(t *testing.T) {
	batch := createTestBatch(t, 10)
	require.NoError(t, batch.AssignQuantity(10))

	require.NoError(t, batch.Restock(5))
	assert.Equal(t, 15, batch.InitialQuantity)
	assert.Equal(t, 5, batch.AvailableQuantity)
	require.NoError(t, batch.CheckConsistency())

	require.Error(t, batch.Restock(0))
}

func TestAssetBatch_InvariantHoldsAcrossMutatorSequence(t *testing.T) {
	batch := createTestBatch(t, 100)

	ops := []func() error{
		func() error { return batch.AssignQuantity(30) },
		func() error { return batch.ReturnQuantity(10, true) },
		func() error { return batch.MarkOutOfStock(5) },
		func() error { return batch.Restock(20) },
		func() error { return batch.ReturnQuantity(20, false) },
		func() error { return batch.RestoreFromOutOfStock(15) },
		func() error { return batch.AssignQuantity(50) },
	}

	for i, op := range ops {
		require.NoError(t, op(), "op %d", i)
		require.NoError(t, batch.CheckConsistency(), "op %d", i)
	}

	assert.Equal(t, 120, batch.InitialQuantity)
	assert.Equal(t, batch.InitialQuantity, batch.AvailableQuantity+batch.AssignedQuantity+batch.OutOfStockQuantity)
}

func TestAssetBatch_CheckConsistency(t *testing.T) {
	batch := createTestBatch(t, 10)

	batch.AvailableQuantity = -1
	require.Error(t, batch.CheckConsistency())

	batch.AvailableQuantity = 5
	require.Error(t, batch.CheckConsistency())
}

func TestAssetBatch_Deactivate(t *testing.T) {
	batch := createTestBatch(t, 10)
	require.NoError(t, batch.AssignQuantity(2))

	err := batch.Deactivate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assigned units")

	require.NoError(t, batch.ReturnQuantity(2, false))
	require.NoError(t, batch.Deactivate())
	assert.False(t, batch.IsActive)

	require.Error(t, batch.Deactivate())
	require.NoError(t, batch.Activate())
}

func TestAssetBatch_IsLowStock(t *testing.T) {
	batch := createTestBatch(t, 10)
	assert.False(t, batch.IsLowStock(5))

	require.NoError(t, batch.AssignQuantity(6))
	assert.True(t, batch.IsLowStock(5))
}
