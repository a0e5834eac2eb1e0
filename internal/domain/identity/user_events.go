package identity

import (
	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
)

// Event type constants for user events
const (
	EventTypeUserCreated         = "UserCreated"
	EventTypeUserStatusChanged   = "UserStatusChanged"
	EventTypeUserPasswordChanged = "UserPasswordChanged"
	EventTypeUserRoleAssigned    = "UserRoleAssigned"
	EventTypeUserRoleRemoved     = "UserRoleRemoved"
)

// AggregateTypeUser is the aggregate type for user events
const AggregateTypeUser = "User"

// UserCreatedEvent is raised when a new user is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Username string
	Email    string
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, user.ID),
		Username:        user.Username,
		Email:           user.Email,
	}
}

// UserStatusChangedEvent is raised when a user's status changes
type UserStatusChangedEvent struct {
	shared.BaseDomainEvent
	Username  string
	OldStatus UserStatus
	NewStatus UserStatus
}

// NewUserStatusChangedEvent creates a new UserStatusChangedEvent
func NewUserStatusChangedEvent(user *User, oldStatus, newStatus UserStatus) *UserStatusChangedEvent {
	return &UserStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserStatusChanged, AggregateTypeUser, user.ID),
		Username:        user.Username,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// UserPasswordChangedEvent is raised when a user's password changes
type UserPasswordChangedEvent struct {
	shared.BaseDomainEvent
	Username string
}

// NewUserPasswordChangedEvent creates a new UserPasswordChangedEvent
func NewUserPasswordChangedEvent(user *User) *UserPasswordChangedEvent {
	return &UserPasswordChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserPasswordChanged, AggregateTypeUser, user.ID),
		Username:        user.Username,
	}
}

// UserRoleAssignedEvent is raised when a role is assigned to a user
type UserRoleAssignedEvent struct {
	shared.BaseDomainEvent
	Username string
	RoleID   uuid.UUID
}

// NewUserRoleAssignedEvent creates a new UserRoleAssignedEvent
func NewUserRoleAssignedEvent(user *User, roleID uuid.UUID) *UserRoleAssignedEvent {
	return &UserRoleAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRoleAssigned, AggregateTypeUser, user.ID),
		Username:        user.Username,
		RoleID:          roleID,
	}
}

// UserRoleRemovedEvent is raised when a role is removed from a user
type UserRoleRemovedEvent struct {
	shared.BaseDomainEvent
	Username string
	RoleID   uuid.UUID
}

// NewUserRoleRemovedEvent creates a new UserRoleRemovedEvent
func NewUserRoleRemovedEvent(user *User, roleID uuid.UUID) *UserRoleRemovedEvent {
	return &UserRoleRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRoleRemoved, AggregateTypeUser, user.ID),
		Username:        user.Username,
		RoleID:          roleID,
	}
}
