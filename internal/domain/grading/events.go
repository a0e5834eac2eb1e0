package grading

import (
	"github.com/hris/backend/internal/domain/shared"
)

// Event type constants for grading events
const (
	EventTypeScenarioCreated = "SalaryScenarioCreated"
	EventTypeScenarioSaved   = "SalaryScenarioSaved"
	EventTypeScenarioApplied = "SalaryScenarioApplied"
)

// AggregateTypeSalaryScenario is the aggregate type for scenario events
const AggregateTypeSalaryScenario = "SalaryScenario"

// ScenarioCreatedEvent is raised when a new scenario is created
type ScenarioCreatedEvent struct {
	shared.BaseDomainEvent
	Name string
}

// NewScenarioCreatedEvent creates a new ScenarioCreatedEvent
func NewScenarioCreatedEvent(s *SalaryScenario) *ScenarioCreatedEvent {
	return &ScenarioCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeScenarioCreated, AggregateTypeSalaryScenario, s.ID),
		Name:            s.Name,
	}
}

// ScenarioSavedEvent is raised when a scenario's grades are computed and frozen
type ScenarioSavedEvent struct {
	shared.BaseDomainEvent
	Name string
}

// NewScenarioSavedEvent creates a new ScenarioSavedEvent
func NewScenarioSavedEvent(s *SalaryScenario) *ScenarioSavedEvent {
	return &ScenarioSavedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeScenarioSaved, AggregateTypeSalaryScenario, s.ID),
		Name:            s.Name,
	}
}

// ScenarioAppliedEvent is raised when a scenario becomes the current structure
type ScenarioAppliedEvent struct {
	shared.BaseDomainEvent
	Name string
}

// NewScenarioAppliedEvent creates a new ScenarioAppliedEvent
func NewScenarioAppliedEvent(s *SalaryScenario) *ScenarioAppliedEvent {
	return &ScenarioAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeScenarioApplied, AggregateTypeSalaryScenario, s.ID),
		Name:            s.Name,
	}
}
