package competency

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/competency"
	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/shared"
)

// MatrixService manages per-position-group skill expectations
type MatrixService struct {
	matrixRepo     competency.PositionSkillMatrixRepository
	skillGroupRepo competency.SkillGroupRepository
}

// NewMatrixService creates a new MatrixService
func NewMatrixService(
	matrixRepo competency.PositionSkillMatrixRepository,
	skillGroupRepo competency.SkillGroupRepository,
) *MatrixService {
	return &MatrixService{
		matrixRepo:     matrixRepo,
		skillGroupRepo: skillGroupRepo,
	}
}

// Get retrieves the matrix for a position group. A group without a
// saved matrix yields an empty one.
func (s *MatrixService) Get(ctx context.Context, positionGroup string) (*MatrixResponse, error) {
	group, err := parsePositionGroup(positionGroup)
	if err != nil {
		return nil, err
	}

	matrix, err := s.matrixRepo.FindByPositionGroup(ctx, group)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			matrix, err = competency.NewPositionSkillMatrix(group)
			if err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}

	response := ToMatrixResponse(matrix)
	return &response, nil
}

// List retrieves all saved matrices
func (s *MatrixService) List(ctx context.Context) ([]MatrixResponse, error) {
	matrices, err := s.matrixRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]MatrixResponse, 0, len(matrices))
	for _, m := range matrices {
		items = append(items, ToMatrixResponse(m))
	}
	return items, nil
}

// SetEntry adds or replaces a skill expectation for a position group,
// creating the matrix on first use. The skill must be active in the
// taxonomy.
func (s *MatrixService) SetEntry(ctx context.Context, positionGroup string, req SetMatrixEntryRequest) (*MatrixResponse, error) {
	group, err := parsePositionGroup(positionGroup)
	if err != nil {
		return nil, err
	}

	skillGroup, err := s.skillGroupRepo.FindSkillGroup(ctx, req.SkillID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_SKILL_ID", "Skill not found in the taxonomy")
		}
		return nil, err
	}
	skill := skillGroup.GetSkill(req.SkillID)
	if skill == nil || !skill.IsActive {
		return nil, shared.NewDomainError("INVALID_SKILL_ID", "Skill is not active in the taxonomy")
	}

	matrix, err := s.matrixRepo.FindByPositionGroup(ctx, group)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		matrix, err = competency.NewPositionSkillMatrix(group)
		if err != nil {
			return nil, err
		}
	}

	if err := matrix.SetEntry(req.SkillID, req.ExpectedLevel); err != nil {
		return nil, err
	}

	if err := s.matrixRepo.Save(ctx, matrix); err != nil {
		return nil, err
	}

	response := ToMatrixResponse(matrix)
	return &response, nil
}

// RemoveEntry removes a skill expectation from a position group's matrix
func (s *MatrixService) RemoveEntry(ctx context.Context, positionGroup string, skillID uuid.UUID) (*MatrixResponse, error) {
	group, err := parsePositionGroup(positionGroup)
	if err != nil {
		return nil, err
	}

	matrix, err := s.matrixRepo.FindByPositionGroup(ctx, group)
	if err != nil {
		return nil, err
	}

	if err := matrix.RemoveEntry(skillID); err != nil {
		return nil, err
	}

	if err := s.matrixRepo.Save(ctx, matrix); err != nil {
		return nil, err
	}

	response := ToMatrixResponse(matrix)
	return &response, nil
}

func parsePositionGroup(raw string) (employee.PositionGroup, error) {
	group := employee.PositionGroup(strings.ToUpper(strings.TrimSpace(raw)))
	if !group.IsValid() {
		return "", shared.NewDomainError("INVALID_POSITION_GROUP", "Unknown position group: "+raw)
	}
	return group, nil
}
