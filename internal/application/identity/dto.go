package identity

import (
	"time"

	"github.com/google/uuid"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
	IP       string // Client IP for login tracking
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	MustChangePassword    bool
	User                  UserInfo
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID          uuid.UUID
	Username    string
	DisplayName string
	Email       string
	EmployeeID  *uuid.UUID
	Permissions []string
	RoleIDs     []uuid.UUID
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string        // JWT ID of the access token to blacklist
	TokenTTL time.Duration // Remaining lifetime of the token
}

// ForceLogoutInput contains the input for revoking all sessions of a user
type ForceLogoutInput struct {
	AdminUserID  uuid.UUID // Admin performing the action
	TargetUserID uuid.UUID // User to force logout
	Reason       string    // For audit logging
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// GetCurrentUserInput contains the input for getting current user info
type GetCurrentUserInput struct {
	UserID uuid.UUID
}

// CurrentUserResult contains the current user's information
type CurrentUserResult struct {
	User        UserInfo
	Permissions []string
}

// CreateUserInput contains input for creating a user
type CreateUserInput struct {
	Username    string
	Password    string
	Email       string
	DisplayName string
	EmployeeID  *uuid.UUID
	RoleIDs     []uuid.UUID
}

// UpdateUserInput contains input for updating a user
type UpdateUserInput struct {
	ID           uuid.UUID
	Email        *string
	DisplayName  *string
	DepartmentID *uuid.UUID
}

// UserDTO represents user data transfer object
type UserDTO struct {
	ID                 uuid.UUID   `json:"id"`
	Username           string      `json:"username"`
	Email              string      `json:"email,omitempty"`
	DisplayName        string      `json:"display_name"`
	Status             string      `json:"status"`
	EmployeeID         *uuid.UUID  `json:"employee_id,omitempty"`
	DepartmentID       *uuid.UUID  `json:"department_id,omitempty"`
	RoleIDs            []uuid.UUID `json:"role_ids"`
	MustChangePassword bool        `json:"must_change_password"`
	LastLoginAt        *time.Time  `json:"last_login_at,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// CreateRoleInput contains input for creating a role
type CreateRoleInput struct {
	Code            string
	Name            string
	Description     string
	SortOrder       int
	PermissionCodes []string
}

// UpdateRoleInput contains input for updating a role
type UpdateRoleInput struct {
	ID          uuid.UUID
	Name        string
	Description string
	SortOrder   *int
}

// DataScopeInput configures a data scope on a role
type DataScopeInput struct {
	Resource    string
	ScopeType   string
	ScopeValues []string
}

// RoleDTO represents role data transfer object
type RoleDTO struct {
	ID           uuid.UUID      `json:"id"`
	Code         string         `json:"code"`
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	IsSystemRole bool           `json:"is_system_role"`
	IsEnabled    bool           `json:"is_enabled"`
	SortOrder    int            `json:"sort_order"`
	Permissions  []string       `json:"permissions"`
	DataScopes   []DataScopeDTO `json:"data_scopes"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// DataScopeDTO represents a data scope on a role
type DataScopeDTO struct {
	Resource    string   `json:"resource"`
	ScopeType   string   `json:"scope_type"`
	ScopeValues []string `json:"scope_values,omitempty"`
}

// CreateDepartmentInput contains input for creating a department
type CreateDepartmentInput struct {
	Code        string
	Name        string
	Description string
	ParentID    *uuid.UUID
	HeadID      *uuid.UUID
	SortOrder   int
}

// UpdateDepartmentInput contains input for updating a department
type UpdateDepartmentInput struct {
	ID          uuid.UUID
	Name        string
	Description string
	SortOrder   *int
}

// DepartmentDTO represents department data transfer object
type DepartmentDTO struct {
	ID          uuid.UUID  `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	Level       int        `json:"level"`
	SortOrder   int        `json:"sort_order"`
	HeadID      *uuid.UUID `json:"head_id,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DepartmentTreeNode represents a department with its children
type DepartmentTreeNode struct {
	DepartmentDTO
	Children []*DepartmentTreeNode `json:"children"`
}
