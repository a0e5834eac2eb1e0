package identity

import (
	"github.com/hris/backend/internal/domain/shared"
)

// Event type constants for role events
const (
	EventTypeRoleCreated           = "RoleCreated"
	EventTypeRoleUpdated           = "RoleUpdated"
	EventTypeRoleEnabled           = "RoleEnabled"
	EventTypeRoleDisabled          = "RoleDisabled"
	EventTypeRolePermissionGranted = "RolePermissionGranted"
	EventTypeRolePermissionRevoked = "RolePermissionRevoked"
	EventTypeRoleDataScopeChanged  = "RoleDataScopeChanged"
)

// AggregateTypeRole is the aggregate type for role events
const AggregateTypeRole = "Role"

// RoleCreatedEvent is raised when a new role is created
type RoleCreatedEvent struct {
	shared.BaseDomainEvent
	Code string
	Name string
}

// NewRoleCreatedEvent creates a new RoleCreatedEvent
func NewRoleCreatedEvent(role *Role) *RoleCreatedEvent {
	return &RoleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoleCreated, AggregateTypeRole, role.ID),
		Code:            role.Code,
		Name:            role.Name,
	}
}

// RoleUpdatedEvent is raised when a role's basic information is updated
type RoleUpdatedEvent struct {
	shared.BaseDomainEvent
	Code string
	Name string
}

// NewRoleUpdatedEvent creates a new RoleUpdatedEvent
func NewRoleUpdatedEvent(role *Role) *RoleUpdatedEvent {
	return &RoleUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoleUpdated, AggregateTypeRole, role.ID),
		Code:            role.Code,
		Name:            role.Name,
	}
}

// RoleEnabledEvent is raised when a role is enabled
type RoleEnabledEvent struct {
	shared.BaseDomainEvent
	Code string
}

// NewRoleEnabledEvent creates a new RoleEnabledEvent
func NewRoleEnabledEvent(role *Role) *RoleEnabledEvent {
	return &RoleEnabledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoleEnabled, AggregateTypeRole, role.ID),
		Code:            role.Code,
	}
}

// RoleDisabledEvent is raised when a role is disabled
type RoleDisabledEvent struct {
	shared.BaseDomainEvent
	Code string
}

// NewRoleDisabledEvent creates a new RoleDisabledEvent
func NewRoleDisabledEvent(role *Role) *RoleDisabledEvent {
	return &RoleDisabledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoleDisabled, AggregateTypeRole, role.ID),
		Code:            role.Code,
	}
}

// RolePermissionGrantedEvent is raised when a permission is granted to a role
type RolePermissionGrantedEvent struct {
	shared.BaseDomainEvent
	Code           string
	PermissionCode string
}

// NewRolePermissionGrantedEvent creates a new RolePermissionGrantedEvent
func NewRolePermissionGrantedEvent(role *Role, perm Permission) *RolePermissionGrantedEvent {
	return &RolePermissionGrantedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRolePermissionGranted, AggregateTypeRole, role.ID),
		Code:            role.Code,
		PermissionCode:  perm.Code,
	}
}

// RolePermissionRevokedEvent is raised when a permission is revoked from a role
type RolePermissionRevokedEvent struct {
	shared.BaseDomainEvent
	Code           string
	PermissionCode string
}

// NewRolePermissionRevokedEvent creates a new RolePermissionRevokedEvent
func NewRolePermissionRevokedEvent(role *Role, perm Permission) *RolePermissionRevokedEvent {
	return &RolePermissionRevokedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRolePermissionRevoked, AggregateTypeRole, role.ID),
		Code:            role.Code,
		PermissionCode:  perm.Code,
	}
}

// RoleDataScopeChangedEvent is raised when a role's data scope changes
type RoleDataScopeChangedEvent struct {
	shared.BaseDomainEvent
	Code      string
	Resource  string
	ScopeType DataScopeType
}

// NewRoleDataScopeChangedEvent creates a new RoleDataScopeChangedEvent
func NewRoleDataScopeChangedEvent(role *Role, ds DataScope) *RoleDataScopeChangedEvent {
	return &RoleDataScopeChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoleDataScopeChanged, AggregateTypeRole, role.ID),
		Code:            role.Code,
		Resource:        ds.Resource,
		ScopeType:       ds.ScopeType,
	}
}
