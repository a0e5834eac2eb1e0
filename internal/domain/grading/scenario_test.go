package grading

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hris/backend/internal/domain/employee"
)

func createTestScenario(t *testing.T) *SalaryScenario {
	s, err := NewSalaryScenario("2026 Review", decimal.NewFromInt(1000))
	require.NoError(t, err)
	require.NotNil(t, s)
	return s
}

func completeScenario(t *testing.T) *SalaryScenario {
	s := createTestScenario(t)
	for _, in := range uniformInputs("10", "5") {
		require.NoError(t, s.SetInput(in))
	}
	return s
}

func TestNewSalaryScenario(t *testing.T) {
	s := createTestScenario(t)
	assert.Equal(t, ScenarioStatusDraft, s.Status)
	assert.False(t, s.IsComplete())

	_, err := NewSalaryScenario("", decimal.NewFromInt(1000))
	require.Error(t, err)

	_, err = NewSalaryScenario("Name", decimal.Zero)
	require.Error(t, err)
}

func TestSalaryScenario_SetInput(t *testing.T) {
	s := createTestScenario(t)

	in := GradeInput{
		PositionGroup:   employee.PositionGroupJunior,
		VerticalPercent: pct("12"),
	}
	require.NoError(t, s.SetInput(in))
	require.NotNil(t, s.InputFor(employee.PositionGroupJunior))

	// Replaces rather than duplicates
	in.VerticalPercent = pct("15")
	require.NoError(t, s.SetInput(in))
	require.Len(t, s.Inputs, 1)
	assert.True(t, s.InputFor(employee.PositionGroupJunior).VerticalPercent.Equal(pct("15")))

	t.Run("negative percents rejected", func(t *testing.T) {
		bad := GradeInput{PositionGroup: employee.PositionGroupJunior, VerticalPercent: pct("-1")}
		require.Error(t, s.SetInput(bad))

		bad = GradeInput{PositionGroup: employee.PositionGroupJunior}
		bad.HorizontalPercents[2] = pct("-0.5")
		require.Error(t, s.SetInput(bad))
	})

	t.Run("unknown group rejected", func(t *testing.T) {
		require.Error(t, s.SetInput(GradeInput{PositionGroup: employee.PositionGroup("BOGUS")}))
	})
}

func TestSalaryScenario_Save(t *testing.T) {
	t.Run("incomplete scenario cannot be saved", func(t *testing.T) {
		s := createTestScenario(t)
		err := s.Save()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing inputs")
	})

	t.Run("save computes and freezes grades", func(t *testing.T) {
		s := completeScenario(t)
		require.NoError(t, s.Save())
		assert.Equal(t, ScenarioStatusSaved, s.Status)
		require.Len(t, s.Grades, len(employee.PositionGroupsOrdered))

		// Frozen: edits rejected
		require.Error(t, s.SetBaseValue(decimal.NewFromInt(2000)))
		require.Error(t, s.SetInput(GradeInput{PositionGroup: employee.PositionGroupJunior}))
		require.Error(t, s.Save())
	})

	t.Run("reopen allows editing and drops grades on change", func(t *testing.T) {
		s := completeScenario(t)
		require.NoError(t, s.Save())
		require.NoError(t, s.Reopen())
		assert.Equal(t, ScenarioStatusDraft, s.Status)

		require.NoError(t, s.SetBaseValue(decimal.NewFromInt(2000)))
		assert.Empty(t, s.Grades)
	})
}

func TestSalaryScenario_ApplyAndArchive(t *testing.T) {
	s := completeScenario(t)

	// Draft cannot be applied
	require.Error(t, s.Apply())

	require.NoError(t, s.Save())
	require.NoError(t, s.Apply())
	assert.True(t, s.IsCurrent())
	require.NotNil(t, s.AppliedAt)

	// Applied cannot be applied again or reopened
	require.Error(t, s.Apply())
	require.Error(t, s.Reopen())

	require.NoError(t, s.Archive())
	assert.Equal(t, ScenarioStatusArchived, s.Status)
	require.NotNil(t, s.ArchivedAt)
	require.Error(t, s.Archive())
}
