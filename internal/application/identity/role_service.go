package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hris/backend/internal/domain/identity"
	"github.com/hris/backend/internal/domain/shared"
)

// RoleService handles role and permission management
type RoleService struct {
	roleRepo identity.RoleRepository
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewRoleService creates a new role service
func NewRoleService(
	roleRepo identity.RoleRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *RoleService {
	return &RoleService{
		roleRepo: roleRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create creates a new role
func (s *RoleService) Create(ctx context.Context, input CreateRoleInput) (*RoleDTO, error) {
	exists, err := s.roleRepo.ExistsByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ROLE_CODE_EXISTS", "Role code already exists")
	}

	role, err := identity.NewRole(input.Code, input.Name)
	if err != nil {
		return nil, err
	}

	if input.Description != "" {
		role.SetDescription(input.Description)
	}
	if input.SortOrder != 0 {
		role.SetSortOrder(input.SortOrder)
	}
	for _, code := range input.PermissionCodes {
		if err := role.GrantPermissionByCode(code); err != nil {
			return nil, err
		}
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		s.logger.Error("Failed to create role", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Role created",
		zap.String("role_id", role.ID.String()),
		zap.String("code", role.Code))

	return toRoleDTO(role), nil
}

// GetByID retrieves a role by ID
func (s *RoleService) GetByID(ctx context.Context, id uuid.UUID) (*RoleDTO, error) {
	role, err := s.findRole(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRoleDTO(role), nil
}

// GetByCode retrieves a role by code
func (s *RoleService) GetByCode(ctx context.Context, code string) (*RoleDTO, error) {
	role, err := s.roleRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ROLE_NOT_FOUND", "Role not found")
		}
		return nil, err
	}
	return toRoleDTO(role), nil
}

// List retrieves a paginated list of roles
func (s *RoleService) List(ctx context.Context, filter identity.RoleFilter) (*shared.Paginated[RoleDTO], error) {
	page, err := s.roleRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]RoleDTO, 0, len(page.Items))
	for _, role := range page.Items {
		items = append(items, *toRoleDTO(role))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// Update updates a role's basic information
func (s *RoleService) Update(ctx context.Context, input UpdateRoleInput) (*RoleDTO, error) {
	role, err := s.findRole(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := role.Update(input.Name, input.Description); err != nil {
		return nil, err
	}
	if input.SortOrder != nil {
		role.SetSortOrder(*input.SortOrder)
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}

	s.logger.Info("Role updated", zap.String("role_id", input.ID.String()))

	return toRoleDTO(role), nil
}

// Delete deletes a role. System roles and roles still assigned to users
// cannot be deleted.
func (s *RoleService) Delete(ctx context.Context, id uuid.UUID) error {
	role, err := s.findRole(ctx, id)
	if err != nil {
		return err
	}

	if !role.CanDelete() {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be deleted")
	}

	users, err := s.userRepo.CountByRole(ctx, id)
	if err != nil {
		return err
	}
	if users > 0 {
		return shared.NewDomainError("ROLE_IN_USE", "Role is still assigned to users")
	}

	if err := s.roleRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Role deleted", zap.String("role_id", id.String()))
	return nil
}

// Enable enables a role
func (s *RoleService) Enable(ctx context.Context, id uuid.UUID) (*RoleDTO, error) {
	return s.mutate(ctx, id, func(r *identity.Role) error { return r.Enable() })
}

// Disable disables a role. Users keep the assignment but the role stops
// contributing permissions at login.
func (s *RoleService) Disable(ctx context.Context, id uuid.UUID) (*RoleDTO, error) {
	return s.mutate(ctx, id, func(r *identity.Role) error { return r.Disable() })
}

// SetPermissions replaces the role's permissions with the given codes
func (s *RoleService) SetPermissions(ctx context.Context, id uuid.UUID, codes []string) (*RoleDTO, error) {
	permissions := make([]identity.Permission, 0, len(codes))
	for _, code := range codes {
		perm, err := identity.NewPermissionFromCode(code)
		if err != nil {
			return nil, err
		}
		permissions = append(permissions, *perm)
	}

	return s.mutate(ctx, id, func(r *identity.Role) error {
		return r.SetPermissions(permissions)
	})
}

// GrantPermission grants a single permission to the role
func (s *RoleService) GrantPermission(ctx context.Context, id uuid.UUID, code string) (*RoleDTO, error) {
	return s.mutate(ctx, id, func(r *identity.Role) error {
		return r.GrantPermissionByCode(code)
	})
}

// RevokePermission revokes a single permission from the role
func (s *RoleService) RevokePermission(ctx context.Context, id uuid.UUID, code string) (*RoleDTO, error) {
	return s.mutate(ctx, id, func(r *identity.Role) error {
		return r.RevokePermission(code)
	})
}

// SetDataScope configures data-level access for a resource on the role
func (s *RoleService) SetDataScope(ctx context.Context, id uuid.UUID, input DataScopeInput) (*RoleDTO, error) {
	var (
		scope *identity.DataScope
		err   error
	)
	if identity.DataScopeType(input.ScopeType) == identity.DataScopeCustom {
		scope, err = identity.NewCustomDataScope(input.Resource, input.ScopeValues)
	} else {
		scope, err = identity.NewDataScope(input.Resource, identity.DataScopeType(input.ScopeType))
	}
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, id, func(r *identity.Role) error {
		return r.SetDataScope(*scope)
	})
}

// RemoveDataScope removes the data scope for a resource from the role
func (s *RoleService) RemoveDataScope(ctx context.Context, id uuid.UUID, resource string) (*RoleDTO, error) {
	return s.mutate(ctx, id, func(r *identity.Role) error {
		return r.RemoveDataScope(resource)
	})
}

func (s *RoleService) mutate(ctx context.Context, id uuid.UUID, fn func(*identity.Role) error) (*RoleDTO, error) {
	role, err := s.findRole(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(role); err != nil {
		return nil, err
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}

	return toRoleDTO(role), nil
}

func (s *RoleService) findRole(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ROLE_NOT_FOUND", "Role not found")
		}
		return nil, err
	}
	return role, nil
}

// toRoleDTO converts domain Role to RoleDTO
func toRoleDTO(role *identity.Role) *RoleDTO {
	permissions := make([]string, 0, len(role.Permissions))
	for _, p := range role.Permissions {
		permissions = append(permissions, p.Code)
	}

	scopes := make([]DataScopeDTO, 0, len(role.DataScopes))
	for _, ds := range role.DataScopes {
		scopes = append(scopes, DataScopeDTO{
			Resource:    ds.Resource,
			ScopeType:   string(ds.ScopeType),
			ScopeValues: ds.ScopeValues,
		})
	}

	return &RoleDTO{
		ID:           role.ID,
		Code:         role.Code,
		Name:         role.Name,
		Description:  role.Description,
		IsSystemRole: role.IsSystemRole,
		IsEnabled:    role.IsEnabled,
		SortOrder:    role.SortOrder,
		Permissions:  permissions,
		DataScopes:   scopes,
		CreatedAt:    role.CreatedAt,
		UpdatedAt:    role.UpdatedAt,
	}
}
