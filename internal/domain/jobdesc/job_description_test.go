package jobdesc

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hris/backend/internal/domain/employee"
)

func createTestJD(t *testing.T) *JobDescription {
	jd, err := NewJobDescription("Backend Engineer", employee.PositionGroupSpecialist, "Build and operate backend services")
	require.NoError(t, err)
	require.NotNil(t, jd)
	return jd
}

func TestNewJobDescription(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		jd := createTestJD(t)
		assert.Equal(t, 1, jd.Revision)
		assert.True(t, jd.IsActive)
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := NewJobDescription("", employee.PositionGroupJunior, "")
		require.Error(t, err)
	})

	t.Run("invalid position group", func(t *testing.T) {
		_, err := NewJobDescription("Title", employee.PositionGroup("BOGUS"), "")
		require.Error(t, err)
	})
}

func TestJobDescription_UpdateContent_BumpsRevision(t *testing.T) {
	jd := createTestJD(t)

	require.NoError(t, jd.UpdateContent("Senior Backend Engineer", "Own backend services", "2"))
	assert.Equal(t, 2, jd.Revision)
	assert.Equal(t, "Senior Backend Engineer", jd.Title)

	require.Error(t, jd.UpdateContent("", "", ""))
}

func TestJobDescription_DutySections(t *testing.T) {
	jd := createTestJD(t)

	s1, err := jd.AddDutySection("Operations", "Run the on-call rotation")
	require.NoError(t, err)
	s2, err := jd.AddDutySection("Development", "Deliver roadmap features")
	require.NoError(t, err)
	assert.Equal(t, 0, s1.SortOrder)
	assert.Equal(t, 1, s2.SortOrder)

	_, err = jd.AddDutySection("  ", "content")
	require.Error(t, err)

	require.NoError(t, jd.RemoveDutySection(s1.ID))
	require.Len(t, jd.DutySections, 1)
	// Ordering compacted after removal
	assert.Equal(t, 0, jd.DutySections[0].SortOrder)

	require.Error(t, jd.RemoveDutySection(uuid.New()))
}

func TestJobDescription_RequiredSkills(t *testing.T) {
	jd := createTestJD(t)
	skillID := uuid.New()

	require.NoError(t, jd.SetRequiredSkill(skillID, 3))
	require.Len(t, jd.RequiredSkills, 1)

	// Setting again replaces the level
	require.NoError(t, jd.SetRequiredSkill(skillID, 5))
	require.Len(t, jd.RequiredSkills, 1)
	assert.Equal(t, 5, jd.RequiredSkills[0].RequiredLevel)

	require.Error(t, jd.SetRequiredSkill(skillID, 0))
	require.Error(t, jd.SetRequiredSkill(skillID, 6))
	require.Error(t, jd.SetRequiredSkill(uuid.Nil, 3))

	require.NoError(t, jd.RemoveRequiredSkill(skillID))
	assert.Empty(t, jd.RequiredSkills)
	require.Error(t, jd.RemoveRequiredSkill(skillID))
}

func TestJobDescription_ActivateDeactivate(t *testing.T) {
	jd := createTestJD(t)

	require.Error(t, jd.Activate())
	require.NoError(t, jd.Deactivate())
	assert.False(t, jd.IsActive)
	require.Error(t, jd.Deactivate())
	require.NoError(t, jd.Activate())
}
