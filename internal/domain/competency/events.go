package competency

import (
	"github.com/hris/backend/internal/domain/shared"
)

// Event type constants for competency events
const (
	EventTypeSkillGroupCreated = "SkillGroupCreated"
	EventTypeSkillAdded        = "SkillAdded"
)

// AggregateTypeSkillGroup is the aggregate type for skill group events
const AggregateTypeSkillGroup = "SkillGroup"

// SkillGroupCreatedEvent is raised when a new skill group is created
type SkillGroupCreatedEvent struct {
	shared.BaseDomainEvent
	Name string
}

// NewSkillGroupCreatedEvent creates a new SkillGroupCreatedEvent
func NewSkillGroupCreatedEvent(group *SkillGroup) *SkillGroupCreatedEvent {
	return &SkillGroupCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSkillGroupCreated, AggregateTypeSkillGroup, group.ID),
		Name:            group.Name,
	}
}

// SkillAddedEvent is raised when a skill is added to a group
type SkillAddedEvent struct {
	shared.BaseDomainEvent
	GroupName string
	SkillName string
}

// NewSkillAddedEvent creates a new SkillAddedEvent
func NewSkillAddedEvent(group *SkillGroup, skill *Skill) *SkillAddedEvent {
	return &SkillAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSkillAdded, AggregateTypeSkillGroup, group.ID),
		GroupName:       group.Name,
		SkillName:       skill.Name,
	}
}
