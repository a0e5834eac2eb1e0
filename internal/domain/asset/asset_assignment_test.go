package asset

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestAssignment(t *testing.T) *AssetAssignment {
	assignment, err := NewAssetAssignment(uuid.New(), uuid.New(), 2, "new starter kit")
	require.NoError(t, err)
	require.NotNil(t, assignment)
	return assignment
}

func TestNewAssetAssignment(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		a := createTestAssignment(t)
		assert.Equal(t, AssignmentStatusAssigned, a.Status)
		assert.True(t, a.IsOpen())
		assert.Len(t, a.GetDomainEvents(), 1)
	})

	t.Run("nil batch", func(t *testing.T) {
		_, err := NewAssetAssignment(uuid.Nil, uuid.New(), 1, "")
		require.Error(t, err)
	})

	t.Run("nil employee", func(t *testing.T) {
		_, err := NewAssetAssignment(uuid.New(), uuid.Nil, 1, "")
		require.Error(t, err)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		_, err := NewAssetAssignment(uuid.New(), uuid.New(), 0, "")
		require.Error(t, err)
	})
}

func TestAssetAssignment_Accept(t *testing.T) {
	a := createTestAssignment(t)

	require.NoError(t, a.Accept())
	assert.Equal(t, AssignmentStatusInUse, a.Status)
	require.NotNil(t, a.AcceptedAt)

	// Accepting twice is invalid
	require.Error(t, a.Accept())
}

func TestAssetAssignment_Dispute(t *testing.T) {
	a := createTestAssignment(t)

	t.Run("empty comment rejected", func(t *testing.T) {
		require.Error(t, a.Dispute("  "))
	})

	t.Run("dispute then accept after clarification", func(t *testing.T) {
		require.NoError(t, a.Dispute("only received one monitor"))
		assert.Equal(t, AssignmentStatusNeedsClarification, a.Status)
		assert.NotEmpty(t, a.DisputeComment)

		// Cannot dispute twice
		require.Error(t, a.Dispute("again"))

		// A clarified dispute can be accepted
		require.NoError(t, a.Accept())
		assert.Equal(t, AssignmentStatusInUse, a.Status)
		assert.Empty(t, a.DisputeComment)
	})
}

func TestAssetAssignment_Return(t *testing.T) {
	t.Run("serviceable return", func(t *testing.T) {
		a := createTestAssignment(t)
		require.NoError(t, a.Accept())

		require.NoError(t, a.Return(ReturnConditionServiceable))
		assert.Equal(t, AssignmentStatusReturned, a.Status)
		assert.False(t, a.IsOpen())
		assert.False(t, a.IsDamagedReturn())
		require.NotNil(t, a.ReturnedAt)
	})

	t.Run("damaged return", func(t *testing.T) {
		a := createTestAssignment(t)
		require.NoError(t, a.Return(ReturnConditionDamaged))
		assert.True(t, a.IsDamagedReturn())
	})

	t.Run("double return rejected", func(t *testing.T) {
		a := createTestAssignment(t)
		require.NoError(t, a.Return(ReturnConditionServiceable))
		require.Error(t, a.Return(ReturnConditionServiceable))
	})

	t.Run("unknown condition rejected", func(t *testing.T) {
		a := createTestAssignment(t)
		require.Error(t, a.Return(ReturnCondition("SCRAP")))
	})
}
