package grading

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/grading"
	"github.com/hris/backend/internal/domain/shared"
)

// ScenarioService manages salary scenarios and the applied structure
type ScenarioService struct {
	scenarioRepo grading.ScenarioRepository
}

// NewScenarioService creates a new ScenarioService
func NewScenarioService(scenarioRepo grading.ScenarioRepository) *ScenarioService {
	return &ScenarioService{scenarioRepo: scenarioRepo}
}

// Create creates a draft scenario
func (s *ScenarioService) Create(ctx context.Context, req CreateScenarioRequest) (*ScenarioResponse, error) {
	exists, err := s.scenarioRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("SCENARIO_NAME_EXISTS", "A scenario with this name already exists")
	}

	scenario, err := grading.NewSalaryScenario(req.Name, req.BaseValue)
	if err != nil {
		return nil, err
	}
	scenario.Comment = strings.TrimSpace(req.Comment)

	if err := s.scenarioRepo.Save(ctx, scenario); err != nil {
		return nil, err
	}

	response := ToScenarioResponse(scenario)
	return &response, nil
}

// Get retrieves a scenario by ID
func (s *ScenarioService) Get(ctx context.Context, id uuid.UUID) (*ScenarioResponse, error) {
	scenario, err := s.scenarioRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToScenarioResponse(scenario)
	return &response, nil
}

// GetCurrent retrieves the applied salary structure
func (s *ScenarioService) GetCurrent(ctx context.Context) (*ScenarioResponse, error) {
	scenario, err := s.scenarioRepo.FindCurrent(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NO_CURRENT_STRUCTURE", "No salary structure has been applied yet")
		}
		return nil, err
	}
	response := ToScenarioResponse(scenario)
	return &response, nil
}

// List retrieves scenarios matching the filter
func (s *ScenarioService) List(ctx context.Context, filter ScenarioListFilter) (*shared.Paginated[ScenarioResponse], error) {
	domainFilter := grading.NewScenarioFilter().
		WithKeyword(filter.Keyword).
		WithPagination(filter.Page, filter.PageSize)

	if filter.Status != "" {
		domainFilter = domainFilter.WithStatus(grading.ScenarioStatus(strings.ToUpper(filter.Status)))
	}

	page, err := s.scenarioRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]ScenarioResponse, 0, len(page.Items))
	for _, scenario := range page.Items {
		items = append(items, ToScenarioResponse(scenario))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// Update updates a draft scenario's name, comment and base value
func (s *ScenarioService) Update(ctx context.Context, id uuid.UUID, req UpdateScenarioRequest) (*ScenarioResponse, error) {
	return s.mutate(ctx, id, func(scenario *grading.SalaryScenario) error {
		if scenario.Status != grading.ScenarioStatusDraft {
			return shared.NewDomainError("INVALID_STATE", "Only draft scenarios can be modified")
		}

		name := strings.TrimSpace(req.Name)
		if name != scenario.Name {
			exists, err := s.scenarioRepo.ExistsByName(ctx, name)
			if err != nil {
				return err
			}
			if exists {
				return shared.NewDomainError("SCENARIO_NAME_EXISTS", "A scenario with this name already exists")
			}
			scenario.Name = name
		}
		scenario.Comment = strings.TrimSpace(req.Comment)

		if req.BaseValue != nil {
			return scenario.SetBaseValue(*req.BaseValue)
		}
		return nil
	})
}

// SetInput adds or replaces the percentage inputs for a position group
func (s *ScenarioService) SetInput(ctx context.Context, id uuid.UUID, req GradeInputRequest) (*ScenarioResponse, error) {
	input, err := toGradeInput(req)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, id, func(scenario *grading.SalaryScenario) error {
		return scenario.SetInput(input)
	})
}

// Calculate computes bands for ad-hoc inputs without persisting anything
func (s *ScenarioService) Calculate(ctx context.Context, req CalculateRequest) ([]GradeBandResponse, error) {
	inputs := make([]grading.GradeInput, 0, len(req.Inputs))
	for _, in := range req.Inputs {
		input, err := toGradeInput(in)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input)
	}

	bands, err := grading.CalculateGrades(req.BaseValue, inputs)
	if err != nil {
		return nil, err
	}
	return ToGradeBandResponses(bands), nil
}

// SaveScenario computes and freezes the scenario's grade bands
func (s *ScenarioService) SaveScenario(ctx context.Context, id uuid.UUID) (*ScenarioResponse, error) {
	return s.mutate(ctx, id, func(scenario *grading.SalaryScenario) error {
		return scenario.Save()
	})
}

// Reopen returns a saved scenario to draft for further editing
func (s *ScenarioService) Reopen(ctx context.Context, id uuid.UUID) (*ScenarioResponse, error) {
	return s.mutate(ctx, id, func(scenario *grading.SalaryScenario) error {
		return scenario.Reopen()
	})
}

// Apply promotes a saved scenario to the current salary structure.
// The previously applied scenario is archived in the same transaction,
// so at most one scenario is ever current.
func (s *ScenarioService) Apply(ctx context.Context, id uuid.UUID) (*ScenarioResponse, error) {
	scenario, err := s.scenarioRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := scenario.Apply(); err != nil {
		return nil, err
	}

	if err := s.scenarioRepo.ApplyExclusive(ctx, scenario); err != nil {
		return nil, err
	}

	response := ToScenarioResponse(scenario)
	return &response, nil
}

// Compare computes per-group median deltas of a saved scenario against
// the current structure
func (s *ScenarioService) Compare(ctx context.Context, id uuid.UUID) (*ComparisonResponse, error) {
	scenario, err := s.scenarioRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(scenario.Grades) == 0 {
		return nil, shared.NewDomainError("SCENARIO_NOT_SAVED", "Scenario has no computed grades to compare")
	}

	current, err := s.scenarioRepo.FindCurrent(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NO_CURRENT_STRUCTURE", "No salary structure has been applied yet")
		}
		return nil, err
	}
	if current.ID == scenario.ID {
		return nil, shared.NewDomainError("SELF_COMPARISON", "Scenario is already the current structure")
	}

	comparison := grading.Compare(current.Grades, scenario.Grades)

	deltas := make([]BandDeltaResponse, 0, len(comparison.Deltas))
	for _, d := range comparison.Deltas {
		deltas = append(deltas, BandDeltaResponse{
			PositionGroup: string(d.PositionGroup),
			MedianBefore:  d.MedianBefore,
			MedianAfter:   d.MedianAfter,
			MedianChange:  d.MedianChange,
			ChangePercent: d.ChangePercent,
		})
	}

	return &ComparisonResponse{
		ScenarioID:           scenario.ID,
		CurrentScenarioID:    current.ID,
		Deltas:               deltas,
		AverageChangePercent: comparison.AverageChangePercent,
	}, nil
}

// Delete removes a scenario. The current structure cannot be deleted.
func (s *ScenarioService) Delete(ctx context.Context, id uuid.UUID) error {
	scenario, err := s.scenarioRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if scenario.IsCurrent() {
		return shared.NewDomainError("SCENARIO_APPLIED", "The current salary structure cannot be deleted")
	}

	return s.scenarioRepo.Delete(ctx, id)
}

func (s *ScenarioService) mutate(ctx context.Context, id uuid.UUID, fn func(*grading.SalaryScenario) error) (*ScenarioResponse, error) {
	scenario, err := s.scenarioRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(scenario); err != nil {
		return nil, err
	}

	if err := s.scenarioRepo.Save(ctx, scenario); err != nil {
		return nil, err
	}

	response := ToScenarioResponse(scenario)
	return &response, nil
}

func toGradeInput(req GradeInputRequest) (grading.GradeInput, error) {
	group := employee.PositionGroup(strings.ToUpper(strings.TrimSpace(req.PositionGroup)))
	if !group.IsValid() {
		return grading.GradeInput{}, shared.NewDomainError("INVALID_POSITION_GROUP", "Unknown position group: "+req.PositionGroup)
	}
	if len(req.HorizontalPercents) != grading.HorizontalSteps {
		return grading.GradeInput{}, shared.NewDomainError("INVALID_PERCENT", "Exactly four horizontal percents are required")
	}

	input := grading.GradeInput{
		PositionGroup:   group,
		VerticalPercent: req.VerticalPercent,
	}
	copy(input.HorizontalPercents[:], req.HorizontalPercents)

	return input, nil
}
