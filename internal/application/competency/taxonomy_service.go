package competency

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/competency"
	"github.com/hris/backend/internal/domain/shared"
)

// TaxonomyService manages the skill and behavioral competency taxonomies
type TaxonomyService struct {
	skillGroupRepo      competency.SkillGroupRepository
	behavioralGroupRepo competency.BehavioralGroupRepository
}

// NewTaxonomyService creates a new TaxonomyService
func NewTaxonomyService(
	skillGroupRepo competency.SkillGroupRepository,
	behavioralGroupRepo competency.BehavioralGroupRepository,
) *TaxonomyService {
	return &TaxonomyService{
		skillGroupRepo:      skillGroupRepo,
		behavioralGroupRepo: behavioralGroupRepo,
	}
}

// CreateSkillGroup creates a new skill group
func (s *TaxonomyService) CreateSkillGroup(ctx context.Context, req CreateGroupRequest) (*SkillGroupResponse, error) {
	exists, err := s.skillGroupRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("GROUP_NAME_EXISTS", "A skill group with this name already exists")
	}

	group, err := competency.NewSkillGroup(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.skillGroupRepo.Save(ctx, group); err != nil {
		return nil, err
	}

	response := ToSkillGroupResponse(group)
	return &response, nil
}

// GetSkillGroup retrieves a skill group by ID
func (s *TaxonomyService) GetSkillGroup(ctx context.Context, id uuid.UUID) (*SkillGroupResponse, error) {
	group, err := s.skillGroupRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSkillGroupResponse(group)
	return &response, nil
}

// ListSkillGroups retrieves skill groups matching the filter
func (s *TaxonomyService) ListSkillGroups(ctx context.Context, filter TaxonomyListFilter) (*shared.Paginated[SkillGroupResponse], error) {
	domainFilter := toTaxonomyFilter(filter)

	page, err := s.skillGroupRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]SkillGroupResponse, 0, len(page.Items))
	for _, g := range page.Items {
		items = append(items, ToSkillGroupResponse(g))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// RenameSkillGroup renames a skill group
func (s *TaxonomyService) RenameSkillGroup(ctx context.Context, id uuid.UUID, req RenameGroupRequest) (*SkillGroupResponse, error) {
	return s.mutateSkillGroup(ctx, id, func(g *competency.SkillGroup) error {
		return g.Rename(req.Name)
	})
}

// AddSkill adds a skill to the group
func (s *TaxonomyService) AddSkill(ctx context.Context, groupID uuid.UUID, req AddItemRequest) (*SkillGroupResponse, error) {
	return s.mutateSkillGroup(ctx, groupID, func(g *competency.SkillGroup) error {
		_, err := g.AddSkill(req.Name, req.Description)
		return err
	})
}

// UpdateSkill updates a skill within its group
func (s *TaxonomyService) UpdateSkill(ctx context.Context, groupID, skillID uuid.UUID, req UpdateSkillRequest) (*SkillGroupResponse, error) {
	return s.mutateSkillGroup(ctx, groupID, func(g *competency.SkillGroup) error {
		return g.UpdateSkill(skillID, req.Name, req.Description)
	})
}

// DeactivateSkill retires a skill. References from job descriptions and
// assessments keep pointing at the retired skill.
func (s *TaxonomyService) DeactivateSkill(ctx context.Context, groupID, skillID uuid.UUID) (*SkillGroupResponse, error) {
	return s.mutateSkillGroup(ctx, groupID, func(g *competency.SkillGroup) error {
		return g.DeactivateSkill(skillID)
	})
}

// DeactivateSkillGroup retires a whole skill group
func (s *TaxonomyService) DeactivateSkillGroup(ctx context.Context, id uuid.UUID) (*SkillGroupResponse, error) {
	return s.mutateSkillGroup(ctx, id, func(g *competency.SkillGroup) error {
		return g.Deactivate()
	})
}

// CreateBehavioralGroup creates a new behavioral competency group
func (s *TaxonomyService) CreateBehavioralGroup(ctx context.Context, req CreateGroupRequest) (*BehavioralGroupResponse, error) {
	exists, err := s.behavioralGroupRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("GROUP_NAME_EXISTS", "A behavioral group with this name already exists")
	}

	group, err := competency.NewBehavioralGroup(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.behavioralGroupRepo.Save(ctx, group); err != nil {
		return nil, err
	}

	response := ToBehavioralGroupResponse(group)
	return &response, nil
}

// GetBehavioralGroup retrieves a behavioral group by ID
func (s *TaxonomyService) GetBehavioralGroup(ctx context.Context, id uuid.UUID) (*BehavioralGroupResponse, error) {
	group, err := s.behavioralGroupRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToBehavioralGroupResponse(group)
	return &response, nil
}

// ListBehavioralGroups retrieves behavioral groups matching the filter
func (s *TaxonomyService) ListBehavioralGroups(ctx context.Context, filter TaxonomyListFilter) (*shared.Paginated[BehavioralGroupResponse], error) {
	domainFilter := toTaxonomyFilter(filter)

	page, err := s.behavioralGroupRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]BehavioralGroupResponse, 0, len(page.Items))
	for _, g := range page.Items {
		items = append(items, ToBehavioralGroupResponse(g))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// RenameBehavioralGroup renames a behavioral group
func (s *TaxonomyService) RenameBehavioralGroup(ctx context.Context, id uuid.UUID, req RenameGroupRequest) (*BehavioralGroupResponse, error) {
	return s.mutateBehavioralGroup(ctx, id, func(g *competency.BehavioralGroup) error {
		return g.Rename(req.Name)
	})
}

// AddCompetency adds a behavioral competency to the group
func (s *TaxonomyService) AddCompetency(ctx context.Context, groupID uuid.UUID, req AddItemRequest) (*BehavioralGroupResponse, error) {
	return s.mutateBehavioralGroup(ctx, groupID, func(g *competency.BehavioralGroup) error {
		_, err := g.AddCompetency(req.Name, req.Description)
		return err
	})
}

// DeactivateCompetency retires a behavioral competency
func (s *TaxonomyService) DeactivateCompetency(ctx context.Context, groupID, competencyID uuid.UUID) (*BehavioralGroupResponse, error) {
	return s.mutateBehavioralGroup(ctx, groupID, func(g *competency.BehavioralGroup) error {
		return g.DeactivateCompetency(competencyID)
	})
}

// DeactivateBehavioralGroup retires a whole behavioral group
func (s *TaxonomyService) DeactivateBehavioralGroup(ctx context.Context, id uuid.UUID) (*BehavioralGroupResponse, error) {
	return s.mutateBehavioralGroup(ctx, id, func(g *competency.BehavioralGroup) error {
		return g.Deactivate()
	})
}

// FindSkill resolves a skill by ID across all groups
func (s *TaxonomyService) FindSkill(ctx context.Context, skillID uuid.UUID) (*SkillResponse, error) {
	group, err := s.skillGroupRepo.FindSkillGroup(ctx, skillID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SKILL_NOT_FOUND", "Skill not found in the taxonomy")
		}
		return nil, err
	}

	skill := group.GetSkill(skillID)
	if skill == nil {
		return nil, shared.NewDomainError("SKILL_NOT_FOUND", "Skill not found in the taxonomy")
	}

	return &SkillResponse{
		ID:          skill.ID,
		Name:        skill.Name,
		Description: skill.Description,
		SortOrder:   skill.SortOrder,
		IsActive:    skill.IsActive,
	}, nil
}

func (s *TaxonomyService) mutateSkillGroup(ctx context.Context, id uuid.UUID, fn func(*competency.SkillGroup) error) (*SkillGroupResponse, error) {
	group, err := s.skillGroupRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(group); err != nil {
		return nil, err
	}

	if err := s.skillGroupRepo.Save(ctx, group); err != nil {
		return nil, err
	}

	response := ToSkillGroupResponse(group)
	return &response, nil
}

func (s *TaxonomyService) mutateBehavioralGroup(ctx context.Context, id uuid.UUID, fn func(*competency.BehavioralGroup) error) (*BehavioralGroupResponse, error) {
	group, err := s.behavioralGroupRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(group); err != nil {
		return nil, err
	}

	if err := s.behavioralGroupRepo.Save(ctx, group); err != nil {
		return nil, err
	}

	response := ToBehavioralGroupResponse(group)
	return &response, nil
}

func toTaxonomyFilter(filter TaxonomyListFilter) competency.TaxonomyFilter {
	domainFilter := competency.NewTaxonomyFilter().
		WithKeyword(filter.Keyword).
		WithPagination(filter.Page, filter.PageSize)
	if filter.IsActive != nil {
		domainFilter = domainFilter.WithActive(*filter.IsActive)
	}
	return domainFilter
}
