package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/identity"
	"github.com/hris/backend/internal/domain/shared"
)

// UserService handles user account management
type UserService struct {
	userRepo     identity.UserRepository
	roleRepo     identity.RoleRepository
	employeeRepo employee.EmployeeRepository
	logger       *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	employeeRepo employee.EmployeeRepository,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// Create creates a new user account
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("USERNAME_EXISTS", "Username already exists")
	}

	if input.Email != "" {
		exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("EMAIL_EXISTS", "Email already exists")
		}
	}

	if err := s.checkRolesExist(ctx, input.RoleIDs); err != nil {
		return nil, err
	}

	user, err := identity.NewActiveUser(input.Username, input.Password)
	if err != nil {
		return nil, err
	}

	if input.Email != "" {
		if err := user.SetEmail(input.Email); err != nil {
			return nil, err
		}
	}
	if input.DisplayName != "" {
		if err := user.SetDisplayName(input.DisplayName); err != nil {
			return nil, err
		}
	}

	if input.EmployeeID != nil {
		if err := s.linkEmployee(ctx, user, *input.EmployeeID); err != nil {
			return nil, err
		}
	}

	if len(input.RoleIDs) > 0 {
		if err := user.SetRoles(input.RoleIDs); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return toUserDTO(user), nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return nil, err
	}
	return toUserDTO(user), nil
}

// List retrieves a paginated list of users
func (s *UserService) List(ctx context.Context, filter identity.UserFilter) (*shared.Paginated[UserDTO], error) {
	page, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]UserDTO, 0, len(page.Items))
	for _, user := range page.Items {
		items = append(items, *toUserDTO(user))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// Update updates a user's profile fields
func (s *UserService) Update(ctx context.Context, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.findUser(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		if *input.Email != "" && *input.Email != user.Email {
			exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewDomainError("EMAIL_EXISTS", "Email already exists")
			}
		}
		if err := user.SetEmail(*input.Email); err != nil {
			return nil, err
		}
	}

	if input.DisplayName != nil {
		if err := user.SetDisplayName(*input.DisplayName); err != nil {
			return nil, err
		}
	}

	if input.DepartmentID != nil {
		user.SetDepartment(input.DepartmentID)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User updated", zap.String("user_id", input.ID.String()))

	return toUserDTO(user), nil
}

// Delete deletes a user account
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findUser(ctx, id); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}

// Activate activates a user account
func (s *UserService) Activate(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	return s.mutate(ctx, id, func(u *identity.User) error { return u.Activate() })
}

// Deactivate deactivates a user account
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	return s.mutate(ctx, id, func(u *identity.User) error { return u.Deactivate() })
}

// Unlock clears a lock placed by failed login attempts
func (s *UserService) Unlock(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	return s.mutate(ctx, id, func(u *identity.User) error { return u.Unlock() })
}

// ResetPassword sets a new password without the old one (admin action).
// The user must change it on next login.
func (s *UserService) ResetPassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	user.ForcePasswordChange()

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("User password reset", zap.String("user_id", userID.String()))
	return nil
}

// AssignRoles replaces the user's roles
func (s *UserService) AssignRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) (*UserDTO, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.checkRolesExist(ctx, roleIDs); err != nil {
		return nil, err
	}

	if err := user.SetRoles(roleIDs); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User roles assigned",
		zap.String("user_id", userID.String()),
		zap.Int("role_count", len(roleIDs)))

	return toUserDTO(user), nil
}

// LinkEmployee links an account to an employee record
func (s *UserService) LinkEmployee(ctx context.Context, userID, employeeID uuid.UUID) (*UserDTO, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.linkEmployee(ctx, user, employeeID); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return toUserDTO(user), nil
}

func (s *UserService) linkEmployee(ctx context.Context, user *identity.User, employeeID uuid.UUID) error {
	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_EMPLOYEE_ID", "Employee not found")
		}
		return err
	}

	existing, err := s.userRepo.FindByEmployeeID(ctx, employeeID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if existing != nil && existing.ID != user.ID {
		return shared.NewDomainError("EMPLOYEE_ALREADY_LINKED", "Employee is already linked to another account")
	}

	if err := user.LinkEmployee(employeeID); err != nil {
		return err
	}
	user.SetDepartment(emp.DepartmentID)
	return nil
}

func (s *UserService) mutate(ctx context.Context, id uuid.UUID, fn func(*identity.User) error) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(user); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return toUserDTO(user), nil
}

func (s *UserService) findUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) checkRolesExist(ctx context.Context, roleIDs []uuid.UUID) error {
	if len(roleIDs) == 0 {
		return nil
	}

	roles, err := s.roleRepo.FindByIDs(ctx, roleIDs)
	if err != nil {
		return err
	}

	found := make(map[uuid.UUID]struct{}, len(roles))
	for _, role := range roles {
		found[role.ID] = struct{}{}
	}
	for _, roleID := range roleIDs {
		if _, ok := found[roleID]; !ok {
			return shared.NewDomainError("ROLE_NOT_FOUND", "Role not found: "+roleID.String())
		}
	}
	return nil
}

// toUserDTO converts domain User to UserDTO
func toUserDTO(user *identity.User) *UserDTO {
	return &UserDTO{
		ID:                 user.ID,
		Username:           user.Username,
		Email:              user.Email,
		DisplayName:        user.GetDisplayNameOrUsername(),
		Status:             string(user.Status),
		EmployeeID:         user.EmployeeID,
		DepartmentID:       user.DepartmentID,
		RoleIDs:            user.RoleIDs,
		MustChangePassword: user.MustChangePassword,
		LastLoginAt:        user.LastLoginAt,
		CreatedAt:          user.CreatedAt,
		UpdatedAt:          user.UpdatedAt,
	}
}
