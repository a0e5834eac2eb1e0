package assessment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestAssessment(t *testing.T) (*SelfAssessment, uuid.UUID) {
	reviewerID := uuid.New()
	sa, err := NewSelfAssessment(uuid.New(), reviewerID, "2026-H1")
	require.NoError(t, err)
	require.NotNil(t, sa)
	return sa, reviewerID
}

func TestNewSelfAssessment(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		sa, _ := createTestAssessment(t)
		assert.Equal(t, AssessmentStatusDraft, sa.Status)
	})

	t.Run("self review rejected", func(t *testing.T) {
		id := uuid.New()
		_, err := NewSelfAssessment(id, id, "2026-H1")
		require.Error(t, err)
	})

	t.Run("empty period", func(t *testing.T) {
		_, err := NewSelfAssessment(uuid.New(), uuid.New(), "  ")
		require.Error(t, err)
	})
}

func TestSelfAssessment_SetRating(t *testing.T) {
	sa, _ := createTestAssessment(t)
	skillID := uuid.New()

	require.NoError(t, sa.SetRating(skillID, 3, "comfortable"))
	require.Len(t, sa.Ratings, 1)

	// Replaces rather than duplicates
	require.NoError(t, sa.SetRating(skillID, 4, "improved"))
	require.Len(t, sa.Ratings, 1)
	assert.Equal(t, 4, sa.GetRating(skillID).Rating)

	require.Error(t, sa.SetRating(skillID, 0, ""))
	require.Error(t, sa.SetRating(skillID, 6, ""))
	require.Error(t, sa.SetRating(uuid.Nil, 3, ""))
}

func TestSelfAssessment_Submit(t *testing.T) {
	sa, _ := createTestAssessment(t)

	t.Run("empty assessment cannot be submitted", func(t *testing.T) {
		err := sa.Submit()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one skill")
	})

	t.Run("submit locks editing", func(t *testing.T) {
		require.NoError(t, sa.SetRating(uuid.New(), 3, ""))
		require.NoError(t, sa.Submit())
		assert.Equal(t, AssessmentStatusSubmitted, sa.Status)
		require.NotNil(t, sa.SubmittedAt)

		require.Error(t, sa.SetRating(uuid.New(), 4, ""))
		require.Error(t, sa.SetEmployeeComment("late thoughts"))
		require.Error(t, sa.Submit())
	})
}

func TestSelfAssessment_Approve(t *testing.T) {
	sa, reviewerID := createTestAssessment(t)
	require.NoError(t, sa.SetRating(uuid.New(), 4, ""))

	// Cannot approve a draft
	require.Error(t, sa.Approve(reviewerID, ""))

	require.NoError(t, sa.Submit())

	// Wrong reviewer
	require.Error(t, sa.Approve(uuid.New(), ""))

	require.NoError(t, sa.Approve(reviewerID, "solid self-evaluation"))
	assert.Equal(t, AssessmentStatusApproved, sa.Status)
	require.NotNil(t, sa.ReviewedAt)
}

func TestSelfAssessment_ReturnAndResubmit(t *testing.T) {
	sa, reviewerID := createTestAssessment(t)
	skillID := uuid.New()
	require.NoError(t, sa.SetRating(skillID, 5, ""))
	require.NoError(t, sa.Submit())

	// Comment required on return
	require.Error(t, sa.Return(reviewerID, " "))

	require.NoError(t, sa.Return(reviewerID, "ratings need justification"))
	assert.Equal(t, AssessmentStatusDraft, sa.Status)
	assert.Equal(t, "ratings need justification", sa.ReviewerComment)

	// Editable again after return
	require.NoError(t, sa.SetRating(skillID, 4, "adjusted after feedback"))
	require.NoError(t, sa.Submit())
	require.NoError(t, sa.Approve(reviewerID, ""))
	assert.Equal(t, AssessmentStatusApproved, sa.Status)
}

func TestSelfAssessment_AverageRating(t *testing.T) {
	sa, _ := createTestAssessment(t)
	assert.Zero(t, sa.AverageRating())

	require.NoError(t, sa.SetRating(uuid.New(), 2, ""))
	require.NoError(t, sa.SetRating(uuid.New(), 4, ""))
	assert.InDelta(t, 3.0, sa.AverageRating(), 0.001)
}
