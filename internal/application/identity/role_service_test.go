package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hris/backend/internal/domain/identity"
	"github.com/hris/backend/internal/domain/shared"
)

func newRoleService(roleRepo *MockRoleRepository, userRepo *MockUserRepository) *RoleService {
	return NewRoleService(roleRepo, userRepo, zap.NewNop())
}

func TestCreateRoleWithPermissions(t *testing.T) {
	roleRepo := new(MockRoleRepository)
	userRepo := new(MockUserRepository)
	service := newRoleService(roleRepo, userRepo)

	roleRepo.On("ExistsByCode", mock.Anything, "ASSETS_STAFF").Return(false, nil)
	roleRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.Role")).Return(nil)

	dto, err := service.Create(context.Background(), CreateRoleInput{
		Code:            "ASSETS_STAFF",
		Name:            "Assets Staff",
		PermissionCodes: []string{"asset_batch:create", "asset_batch:checkout"},
	})

	require.NoError(t, err)
	assert.Equal(t, "ASSETS_STAFF", dto.Code)
	assert.True(t, dto.IsEnabled)
	assert.ElementsMatch(t, []string{"asset_batch:create", "asset_batch:checkout"}, dto.Permissions)
}

func TestCreateRoleDuplicateCode(t *testing.T) {
	roleRepo := new(MockRoleRepository)
	userRepo := new(MockUserRepository)
	service := newRoleService(roleRepo, userRepo)

	roleRepo.On("ExistsByCode", mock.Anything, "HR").Return(true, nil)

	_, err := service.Create(context.Background(), CreateRoleInput{Code: "HR", Name: "Human Resources"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ROLE_CODE_EXISTS", domainErr.Code)
	roleRepo.AssertNotCalled(t, "Save")
}

func TestDeleteSystemRole(t *testing.T) {
	roleRepo := new(MockRoleRepository)
	userRepo := new(MockUserRepository)
	service := newRoleService(roleRepo, userRepo)

	role, err := identity.NewSystemRole("ADMIN", "Administrator")
	require.NoError(t, err)
	roleRepo.On("FindByID", mock.Anything, role.ID).Return(role, nil)

	err = service.Delete(context.Background(), role.ID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "SYSTEM_ROLE", domainErr.Code)
	roleRepo.AssertNotCalled(t, "Delete")
}

func TestDeleteRoleInUse(t *testing.T) {
	roleRepo := new(MockRoleRepository)
	userRepo := new(MockUserRepository)
	service := newRoleService(roleRepo, userRepo)

	role, err := identity.NewRole("TRAINER", "Trainer")
	require.NoError(t, err)
	roleRepo.On("FindByID", mock.Anything, role.ID).Return(role, nil)
	userRepo.On("CountByRole", mock.Anything, role.ID).Return(int64(3), nil)

	err = service.Delete(context.Background(), role.ID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ROLE_IN_USE", domainErr.Code)
	roleRepo.AssertNotCalled(t, "Delete")
}

func TestDeleteRole(t *testing.T) {
	roleRepo := new(MockRoleRepository)
	userRepo := new(MockUserRepository)
	service := newRoleService(roleRepo, userRepo)

	role, err := identity.NewRole("TRAINER", "Trainer")
	require.NoError(t, err)
	roleRepo.On("FindByID", mock.Anything, role.ID).Return(role, nil)
	userRepo.On("CountByRole", mock.Anything, role.ID).Return(int64(0), nil)
	roleRepo.On("Delete", mock.Anything, role.ID).Return(nil)

	require.NoError(t, service.Delete(context.Background(), role.ID))
	roleRepo.AssertExpectations(t)
}

func TestSetPermissionsReplacesExisting(t *testing.T) {
	roleRepo := new(MockRoleRepository)
	userRepo := new(MockUserRepository)
	service := newRoleService(roleRepo, userRepo)

	role, err := identity.NewRole("HR", "Human Resources")
	require.NoError(t, err)
	require.NoError(t, role.GrantPermissionByCode("employee:delete"))

	roleRepo.On("FindByID", mock.Anything, role.ID).Return(role, nil)
	roleRepo.On("Save", mock.Anything, role).Return(nil)

	dto, err := service.SetPermissions(context.Background(), role.ID, []string{"employee:read", "employee:update"})

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"employee:read", "employee:update"}, dto.Permissions)
	assert.NotContains(t, dto.Permissions, "employee:delete")
}

func TestSetPermissionsInvalidCode(t *testing.T) {
	roleRepo := new(MockRoleRepository)
	userRepo := new(MockUserRepository)
	service := newRoleService(roleRepo, userRepo)

	_, err := service.SetPermissions(context.Background(), uuid.New(), []string{"no-colon"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PERMISSION_CODE", domainErr.Code)
}

func TestSetCustomDataScope(t *testing.T) {
	roleRepo := new(MockRoleRepository)
	userRepo := new(MockUserRepository)
	service := newRoleService(roleRepo, userRepo)

	role, err := identity.NewRole("LINE_MANAGER", "Line Manager")
	require.NoError(t, err)
	roleRepo.On("FindByID", mock.Anything, role.ID).Return(role, nil)
	roleRepo.On("Save", mock.Anything, role).Return(nil)

	dto, err := service.SetDataScope(context.Background(), role.ID, DataScopeInput{
		Resource:    "employee",
		ScopeType:   "custom",
		ScopeValues: []string{"dept-1", "dept-2"},
	})

	require.NoError(t, err)
	require.Len(t, dto.DataScopes, 1)
	assert.Equal(t, "custom", dto.DataScopes[0].ScopeType)
	assert.Equal(t, []string{"dept-1", "dept-2"}, dto.DataScopes[0].ScopeValues)
}
