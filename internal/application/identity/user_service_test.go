package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/identity"
	"github.com/hris/backend/internal/domain/shared"
)

func newUserService(userRepo *MockUserRepository, roleRepo *MockRoleRepository, empRepo *MockEmployeeRepository) *UserService {
	return NewUserService(userRepo, roleRepo, empRepo, zap.NewNop())
}

func TestCreateUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)
	empRepo := new(MockEmployeeRepository)
	service := newUserService(userRepo, roleRepo, empRepo)

	role, err := identity.NewRole("EMPLOYEE", "Employee")
	require.NoError(t, err)

	userRepo.On("ExistsByUsername", mock.Anything, "jdoe").Return(false, nil)
	userRepo.On("ExistsByEmail", mock.Anything, "jdoe@example.com").Return(false, nil)
	roleRepo.On("FindByIDs", mock.Anything, []uuid.UUID{role.ID}).Return([]*identity.Role{role}, nil)
	userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	dto, err := service.Create(context.Background(), CreateUserInput{
		Username: "jdoe",
		Password: "password1",
		Email:    "jdoe@example.com",
		RoleIDs:  []uuid.UUID{role.ID},
	})

	require.NoError(t, err)
	assert.Equal(t, "jdoe", dto.Username)
	assert.Equal(t, string(identity.UserStatusActive), dto.Status)
	assert.Equal(t, []uuid.UUID{role.ID}, dto.RoleIDs)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)
	empRepo := new(MockEmployeeRepository)
	service := newUserService(userRepo, roleRepo, empRepo)

	userRepo.On("ExistsByUsername", mock.Anything, "jdoe").Return(true, nil)

	_, err := service.Create(context.Background(), CreateUserInput{Username: "jdoe", Password: "password1"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "USERNAME_EXISTS", domainErr.Code)
	userRepo.AssertNotCalled(t, "Save")
}

func TestCreateUserUnknownRole(t *testing.T) {
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)
	empRepo := new(MockEmployeeRepository)
	service := newUserService(userRepo, roleRepo, empRepo)

	missing := uuid.New()
	userRepo.On("ExistsByUsername", mock.Anything, "jdoe").Return(false, nil)
	roleRepo.On("FindByIDs", mock.Anything, []uuid.UUID{missing}).Return([]*identity.Role{}, nil)

	_, err := service.Create(context.Background(), CreateUserInput{
		Username: "jdoe",
		Password: "password1",
		RoleIDs:  []uuid.UUID{missing},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ROLE_NOT_FOUND", domainErr.Code)
}

func TestLinkEmployeeAlreadyLinked(t *testing.T) {
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)
	empRepo := new(MockEmployeeRepository)
	service := newUserService(userRepo, roleRepo, empRepo)

	user := newActiveTestUser(t, "jdoe", "password1")
	other := newActiveTestUser(t, "other", "password1")
	emp, err := employee.NewEmployee("EMP-0001", "Jane", "Doe", employee.PositionGroupSpecialist, time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	empRepo.On("FindByID", mock.Anything, emp.ID).Return(emp, nil)
	userRepo.On("FindByEmployeeID", mock.Anything, emp.ID).Return(other, nil)

	_, err = service.LinkEmployee(context.Background(), user.ID, emp.ID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPLOYEE_ALREADY_LINKED", domainErr.Code)
}

func TestLinkEmployeeAdoptsDepartment(t *testing.T) {
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)
	empRepo := new(MockEmployeeRepository)
	service := newUserService(userRepo, roleRepo, empRepo)

	user := newActiveTestUser(t, "jdoe", "password1")
	emp, err := employee.NewEmployee("EMP-0001", "Jane", "Doe", employee.PositionGroupSpecialist, time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	deptID := uuid.New()
	emp.SetDepartment(&deptID)

	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	empRepo.On("FindByID", mock.Anything, emp.ID).Return(emp, nil)
	userRepo.On("FindByEmployeeID", mock.Anything, emp.ID).Return(nil, shared.ErrNotFound)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	dto, err := service.LinkEmployee(context.Background(), user.ID, emp.ID)

	require.NoError(t, err)
	require.NotNil(t, dto.EmployeeID)
	assert.Equal(t, emp.ID, *dto.EmployeeID)
	require.NotNil(t, dto.DepartmentID)
	assert.Equal(t, deptID, *dto.DepartmentID)
}

func TestResetPasswordForcesChange(t *testing.T) {
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)
	empRepo := new(MockEmployeeRepository)
	service := newUserService(userRepo, roleRepo, empRepo)

	user := newActiveTestUser(t, "jdoe", "password1")
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	err := service.ResetPassword(context.Background(), user.ID, "password2")

	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("password2"))
	assert.True(t, user.MustChangePassword)
}
