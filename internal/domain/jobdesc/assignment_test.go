package jobdesc

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestAssignment(t *testing.T) (*Assignment, uuid.UUID, uuid.UUID) {
	employeeID := uuid.New()
	managerID := uuid.New()
	a, err := NewAssignment(uuid.New(), &employeeID, managerID)
	require.NoError(t, err)
	require.NotNil(t, a)
	return a, employeeID, managerID
}

func createTestVacancyAssignment(t *testing.T) (*Assignment, uuid.UUID) {
	managerID := uuid.New()
	a, err := NewAssignment(uuid.New(), nil, managerID)
	require.NoError(t, err)
	require.True(t, a.IsVacancy())
	return a, managerID
}

func TestNewAssignment(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		a, _, _ := createTestAssignment(t)
		assert.Equal(t, ApprovalStatusDraft, a.Status)
		assert.False(t, a.IsFinal())
	})

	t.Run("nil job description", func(t *testing.T) {
		_, err := NewAssignment(uuid.Nil, nil, uuid.New())
		require.Error(t, err)
	})

	t.Run("nil manager", func(t *testing.T) {
		_, err := NewAssignment(uuid.New(), nil, uuid.Nil)
		require.Error(t, err)
	})

	t.Run("employee as own line manager", func(t *testing.T) {
		id := uuid.New()
		_, err := NewAssignment(uuid.New(), &id, id)
		require.Error(t, err)
	})
}

func TestAssignment_HappyPath(t *testing.T) {
	a, employeeID, managerID := createTestAssignment(t)
	author := uuid.New()

	require.NoError(t, a.Submit(author))
	assert.Equal(t, ApprovalStatusPendingLineManager, a.Status)
	require.NotNil(t, a.SubmittedAt)
	assert.True(t, a.IsPendingFor(managerID))
	assert.False(t, a.IsPendingFor(employeeID))

	require.NoError(t, a.ApproveAsManager(managerID, "looks correct"))
	assert.Equal(t, ApprovalStatusPendingEmployee, a.Status)
	assert.True(t, a.IsPendingFor(employeeID))

	require.NoError(t, a.ApproveAsEmployee(employeeID, "acknowledged"))
	assert.Equal(t, ApprovalStatusApproved, a.Status)
	assert.True(t, a.IsFinal())
	require.NotNil(t, a.ApprovedAt)

	// Full history recorded
	require.Len(t, a.History, 3)
	assert.Equal(t, ApprovalStatusDraft, a.History[0].From)
	assert.Equal(t, ApprovalStatusApproved, a.History[2].To)
}

func TestAssignment_VacancySkipsEmployeeStage(t *testing.T) {
	a, managerID := createTestVacancyAssignment(t)

	require.NoError(t, a.Submit(uuid.New()))
	require.NoError(t, a.ApproveAsManager(managerID, ""))
	assert.Equal(t, ApprovalStatusApproved, a.Status)
}

func TestAssignment_ActorGuards(t *testing.T) {
	a, employeeID, managerID := createTestAssignment(t)
	require.NoError(t, a.Submit(uuid.New()))

	t.Run("wrong actor at manager stage", func(t *testing.T) {
		err := a.ApproveAsManager(uuid.New(), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line manager of record")

		err = a.ApproveAsManager(employeeID, "")
		require.Error(t, err)
	})

	t.Run("employee cannot approve before their stage", func(t *testing.T) {
		err := a.ApproveAsEmployee(employeeID, "")
		require.Error(t, err)
	})

	t.Run("wrong actor at employee stage", func(t *testing.T) {
		require.NoError(t, a.ApproveAsManager(managerID, ""))
		err := a.ApproveAsEmployee(managerID, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "assigned employee")
	})
}

func TestAssignment_InvalidTransitions(t *testing.T) {
	t.Run("submit twice", func(t *testing.T) {
		a, _, _ := createTestAssignment(t)
		require.NoError(t, a.Submit(uuid.New()))
		require.Error(t, a.Submit(uuid.New()))
	})

	t.Run("approve draft", func(t *testing.T) {
		a, _, managerID := createTestAssignment(t)
		require.Error(t, a.ApproveAsManager(managerID, ""))
	})

	t.Run("approve already approved", func(t *testing.T) {
		a, employeeID, managerID := createTestAssignment(t)
		require.NoError(t, a.Submit(uuid.New()))
		require.NoError(t, a.ApproveAsManager(managerID, ""))
		require.NoError(t, a.ApproveAsEmployee(employeeID, ""))

		require.Error(t, a.ApproveAsEmployee(employeeID, ""))
		require.Error(t, a.Reject(managerID, "too late"))
	})
}

func TestAssignment_Reject(t *testing.T) {
	a, _, managerID := createTestAssignment(t)
	require.NoError(t, a.Submit(uuid.New()))

	require.Error(t, a.Reject(managerID, "  ")) // comment required

	require.NoError(t, a.Reject(managerID, "role no longer exists"))
	assert.Equal(t, ApprovalStatusRejected, a.Status)
	assert.True(t, a.IsFinal())

	// Terminal: nothing else allowed
	require.Error(t, a.Submit(uuid.New()))
}

func TestAssignment_RevisionCycle(t *testing.T) {
	a, employeeID, managerID := createTestAssignment(t)
	author := uuid.New()

	require.NoError(t, a.Submit(author))
	require.NoError(t, a.RequestRevision(managerID, "duties section incomplete"))
	assert.Equal(t, ApprovalStatusRevisionRequired, a.Status)
	assert.False(t, a.IsFinal())

	// Author resubmits after revision
	require.NoError(t, a.Submit(author))
	require.NoError(t, a.ApproveAsManager(managerID, ""))

	// Employee can also request revision at their stage
	require.NoError(t, a.RequestRevision(employeeID, "duties do not match my role"))
	assert.Equal(t, ApprovalStatusRevisionRequired, a.Status)

	require.NoError(t, a.Submit(author))
	require.NoError(t, a.ApproveAsManager(managerID, ""))
	require.NoError(t, a.ApproveAsEmployee(employeeID, ""))
	assert.Equal(t, ApprovalStatusApproved, a.Status)
}
