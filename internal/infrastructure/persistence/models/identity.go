package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Username           string              `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email              string              `gorm:"type:varchar(200);index"`
	PasswordHash       string              `gorm:"type:varchar(255);not null"`
	DisplayName        string              `gorm:"type:varchar(200)"`
	Status             identity.UserStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	EmployeeID         *uuid.UUID          `gorm:"type:uuid;index"`
	DepartmentID       *uuid.UUID          `gorm:"type:uuid;index"`
	LastLoginAt        *time.Time          `gorm:"index"`
	LastLoginIP        string              `gorm:"type:varchar(45)"`
	FailedAttempts     int                 `gorm:"not null;default:0"`
	LockedUntil        *time.Time
	PasswordChangedAt  *time.Time
	MustChangePassword bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
// Note: RoleIDs must be loaded separately by the repository.
func (m *UserModel) ToDomain() *identity.User {
	user := &identity.User{
		Username:           m.Username,
		Email:              m.Email,
		PasswordHash:       m.PasswordHash,
		DisplayName:        m.DisplayName,
		Status:             m.Status,
		EmployeeID:         m.EmployeeID,
		DepartmentID:       m.DepartmentID,
		RoleIDs:            make([]uuid.UUID, 0),
		LastLoginAt:        m.LastLoginAt,
		LastLoginIP:        m.LastLoginIP,
		FailedAttempts:     m.FailedAttempts,
		LockedUntil:        m.LockedUntil,
		PasswordChangedAt:  m.PasswordChangedAt,
		MustChangePassword: m.MustChangePassword,
	}
	m.PopulateAggregateRoot(&user.BaseAggregateRoot)
	return user
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Username = u.Username
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.DisplayName = u.DisplayName
	m.Status = u.Status
	m.EmployeeID = u.EmployeeID
	m.DepartmentID = u.DepartmentID
	m.LastLoginAt = u.LastLoginAt
	m.LastLoginIP = u.LastLoginIP
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
	m.PasswordChangedAt = u.PasswordChangedAt
	m.MustChangePassword = u.MustChangePassword
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// UserRoleModel is the persistence model for the user-role relationship.
type UserRoleModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoleID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UserRoleModel) TableName() string {
	return "user_roles"
}

// RoleModel is the persistence model for the Role domain entity.
type RoleModel struct {
	AggregateModel
	Code         string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string `gorm:"type:varchar(100);not null"`
	Description  string `gorm:"type:text"`
	IsSystemRole bool   `gorm:"not null;default:false"`
	IsEnabled    bool   `gorm:"not null;default:true"`
	SortOrder    int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (RoleModel) TableName() string {
	return "roles"
}

// ToDomain converts the persistence model to a domain Role entity.
// Note: Permissions and DataScopes must be loaded separately by the repository.
func (m *RoleModel) ToDomain() *identity.Role {
	role := &identity.Role{
		Code:         m.Code,
		Name:         m.Name,
		Description:  m.Description,
		IsSystemRole: m.IsSystemRole,
		IsEnabled:    m.IsEnabled,
		SortOrder:    m.SortOrder,
		Permissions:  make([]identity.Permission, 0),
		DataScopes:   make([]identity.DataScope, 0),
	}
	m.PopulateAggregateRoot(&role.BaseAggregateRoot)
	return role
}

// FromDomain populates the persistence model from a domain Role entity.
func (m *RoleModel) FromDomain(r *identity.Role) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.Code = r.Code
	m.Name = r.Name
	m.Description = r.Description
	m.IsSystemRole = r.IsSystemRole
	m.IsEnabled = r.IsEnabled
	m.SortOrder = r.SortOrder
}

// RoleModelFromDomain creates a new persistence model from a domain Role entity.
func RoleModelFromDomain(r *identity.Role) *RoleModel {
	m := &RoleModel{}
	m.FromDomain(r)
	return m
}

// RolePermissionModel is the persistence model for role permissions.
type RolePermissionModel struct {
	RoleID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code        string    `gorm:"type:varchar(100);primaryKey"`
	Resource    string    `gorm:"type:varchar(50);not null;index"`
	Action      string    `gorm:"type:varchar(50);not null"`
	Description string    `gorm:"type:varchar(200)"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RolePermissionModel) TableName() string {
	return "role_permissions"
}

// ToDomain converts the persistence model to a domain Permission.
func (m *RolePermissionModel) ToDomain() identity.Permission {
	return identity.Permission{
		Code:        m.Code,
		Resource:    m.Resource,
		Action:      m.Action,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain Permission.
func (m *RolePermissionModel) FromDomain(roleID uuid.UUID, p identity.Permission) {
	m.RoleID = roleID
	m.Code = p.Code
	m.Resource = p.Resource
	m.Action = p.Action
	m.Description = p.Description
	m.CreatedAt = time.Now()
}

// RoleDataScopeModel is the persistence model for role data scopes.
type RoleDataScopeModel struct {
	RoleID      uuid.UUID              `gorm:"type:uuid;primaryKey"`
	Resource    string                 `gorm:"type:varchar(50);primaryKey"`
	ScopeType   identity.DataScopeType `gorm:"type:varchar(20);not null"`
	ScopeValues string                 `gorm:"type:text"` // JSON array, encoded by the repository
	Description string                 `gorm:"type:varchar(200)"`
	CreatedAt   time.Time              `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RoleDataScopeModel) TableName() string {
	return "role_data_scopes"
}

// ToDomain converts the persistence model to a domain DataScope.
// Note: ScopeValues JSON parsing must be handled by the repository.
func (m *RoleDataScopeModel) ToDomain() identity.DataScope {
	return identity.DataScope{
		Resource:    m.Resource,
		ScopeType:   m.ScopeType,
		ScopeValues: make([]string, 0),
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain DataScope.
// Note: ScopeValues must be JSON-encoded by the repository.
func (m *RoleDataScopeModel) FromDomain(roleID uuid.UUID, ds identity.DataScope, scopeValuesJSON string) {
	m.RoleID = roleID
	m.Resource = ds.Resource
	m.ScopeType = ds.ScopeType
	m.ScopeValues = scopeValuesJSON
	m.Description = ds.Description
	m.CreatedAt = time.Now()
}

// DepartmentModel is the persistence model for the Department domain entity.
type DepartmentModel struct {
	AggregateModel
	Code        string                    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string                    `gorm:"type:varchar(200);not null"`
	Description string                    `gorm:"type:text"`
	ParentID    *uuid.UUID                `gorm:"type:uuid;index"`
	Path        string                    `gorm:"type:varchar(1000);not null;index"`
	Level       int                       `gorm:"not null;default:0"`
	SortOrder   int                       `gorm:"not null;default:0"`
	HeadID      *uuid.UUID                `gorm:"type:uuid;index"`
	Status      identity.DepartmentStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (DepartmentModel) TableName() string {
	return "departments"
}

// ToDomain converts the persistence model to a domain Department entity.
func (m *DepartmentModel) ToDomain() *identity.Department {
	dept := &identity.Department{
		Code:        m.Code,
		Name:        m.Name,
		Description: m.Description,
		ParentID:    m.ParentID,
		Path:        m.Path,
		Level:       m.Level,
		SortOrder:   m.SortOrder,
		HeadID:      m.HeadID,
		Status:      m.Status,
	}
	m.PopulateAggregateRoot(&dept.BaseAggregateRoot)
	return dept
}

// FromDomain populates the persistence model from a domain Department entity.
func (m *DepartmentModel) FromDomain(d *identity.Department) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.Code = d.Code
	m.Name = d.Name
	m.Description = d.Description
	m.ParentID = d.ParentID
	m.Path = d.Path
	m.Level = d.Level
	m.SortOrder = d.SortOrder
	m.HeadID = d.HeadID
	m.Status = d.Status
}

// DepartmentModelFromDomain creates a new persistence model from a domain Department entity.
func DepartmentModelFromDomain(d *identity.Department) *DepartmentModel {
	m := &DepartmentModel{}
	m.FromDomain(d)
	return m
}
