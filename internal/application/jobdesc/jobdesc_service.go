package jobdesc

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/competency"
	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/identity"
	"github.com/hris/backend/internal/domain/jobdesc"
	"github.com/hris/backend/internal/domain/shared"
)

// JobDescriptionService handles authoring of job description documents
type JobDescriptionService struct {
	jdRepo         jobdesc.JobDescriptionRepository
	skillGroupRepo competency.SkillGroupRepository
	departmentRepo identity.DepartmentRepository
}

// NewJobDescriptionService creates a new JobDescriptionService
func NewJobDescriptionService(
	jdRepo jobdesc.JobDescriptionRepository,
	skillGroupRepo competency.SkillGroupRepository,
	departmentRepo identity.DepartmentRepository,
) *JobDescriptionService {
	return &JobDescriptionService{
		jdRepo:         jdRepo,
		skillGroupRepo: skillGroupRepo,
		departmentRepo: departmentRepo,
	}
}

// Create creates a new job description
func (s *JobDescriptionService) Create(ctx context.Context, req CreateJobDescriptionRequest) (*JobDescriptionResponse, error) {
	positionGroup := employee.PositionGroup(strings.ToUpper(strings.TrimSpace(req.PositionGroup)))

	jd, err := jobdesc.NewJobDescription(req.Title, positionGroup, req.Purpose)
	if err != nil {
		return nil, err
	}

	if req.Grade != "" {
		jd.Grade = strings.TrimSpace(req.Grade)
	}

	if req.DepartmentID != nil {
		if _, err := s.departmentRepo.FindByID(ctx, *req.DepartmentID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_DEPARTMENT_ID", "Department not found")
			}
			return nil, err
		}
		jd.DepartmentID = req.DepartmentID
	}

	if err := s.jdRepo.Save(ctx, jd); err != nil {
		return nil, err
	}

	response := ToJobDescriptionResponse(jd)
	return &response, nil
}

// Get retrieves a job description by ID
func (s *JobDescriptionService) Get(ctx context.Context, id uuid.UUID) (*JobDescriptionResponse, error) {
	jd, err := s.jdRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToJobDescriptionResponse(jd)
	return &response, nil
}

// List retrieves job descriptions matching the filter
func (s *JobDescriptionService) List(ctx context.Context, filter JobDescriptionListFilter) (*shared.Paginated[JobDescriptionResponse], error) {
	domainFilter := jobdesc.NewJobDescriptionFilter().
		WithKeyword(filter.Keyword).
		WithPagination(filter.Page, filter.PageSize)

	if filter.PositionGroup != "" {
		group := employee.PositionGroup(strings.ToUpper(filter.PositionGroup))
		if !group.IsValid() {
			return nil, shared.NewDomainError("INVALID_POSITION_GROUP", "Unknown position group: "+filter.PositionGroup)
		}
		domainFilter = domainFilter.WithPositionGroup(group)
	}
	if filter.DepartmentID != nil {
		domainFilter = domainFilter.WithDepartmentID(*filter.DepartmentID)
	}
	if filter.IsActive != nil {
		domainFilter = domainFilter.WithActive(*filter.IsActive)
	}

	page, err := s.jdRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]JobDescriptionResponse, 0, len(page.Items))
	for _, jd := range page.Items {
		items = append(items, ToJobDescriptionResponse(jd))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// Update updates a job description's core content and bumps its revision
func (s *JobDescriptionService) Update(ctx context.Context, id uuid.UUID, req UpdateJobDescriptionRequest) (*JobDescriptionResponse, error) {
	return s.mutate(ctx, id, func(jd *jobdesc.JobDescription) error {
		return jd.UpdateContent(req.Title, req.Purpose, req.Grade)
	})
}

// AddDutySection appends a duty section
func (s *JobDescriptionService) AddDutySection(ctx context.Context, id uuid.UUID, req AddDutySectionRequest) (*JobDescriptionResponse, error) {
	return s.mutate(ctx, id, func(jd *jobdesc.JobDescription) error {
		_, err := jd.AddDutySection(req.Title, req.Content)
		return err
	})
}

// RemoveDutySection removes a duty section
func (s *JobDescriptionService) RemoveDutySection(ctx context.Context, id, sectionID uuid.UUID) (*JobDescriptionResponse, error) {
	return s.mutate(ctx, id, func(jd *jobdesc.JobDescription) error {
		return jd.RemoveDutySection(sectionID)
	})
}

// SetRequiredSkill sets the expected proficiency for a skill from the
// competency taxonomy. The skill must exist and be active.
func (s *JobDescriptionService) SetRequiredSkill(ctx context.Context, id uuid.UUID, req SetRequiredSkillRequest) (*JobDescriptionResponse, error) {
	group, err := s.skillGroupRepo.FindSkillGroup(ctx, req.SkillID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_SKILL_ID", "Skill not found in the taxonomy")
		}
		return nil, err
	}
	skill := group.GetSkill(req.SkillID)
	if skill == nil || !skill.IsActive {
		return nil, shared.NewDomainError("INVALID_SKILL_ID", "Skill is not active in the taxonomy")
	}

	return s.mutate(ctx, id, func(jd *jobdesc.JobDescription) error {
		return jd.SetRequiredSkill(req.SkillID, req.RequiredLevel)
	})
}

// RemoveRequiredSkill removes a required skill
func (s *JobDescriptionService) RemoveRequiredSkill(ctx context.Context, id, skillID uuid.UUID) (*JobDescriptionResponse, error) {
	return s.mutate(ctx, id, func(jd *jobdesc.JobDescription) error {
		return jd.RemoveRequiredSkill(skillID)
	})
}

// Activate returns the job description to active status
func (s *JobDescriptionService) Activate(ctx context.Context, id uuid.UUID) (*JobDescriptionResponse, error) {
	return s.mutate(ctx, id, func(jd *jobdesc.JobDescription) error { return jd.Activate() })
}

// Deactivate retires the job description from new assignments
func (s *JobDescriptionService) Deactivate(ctx context.Context, id uuid.UUID) (*JobDescriptionResponse, error) {
	return s.mutate(ctx, id, func(jd *jobdesc.JobDescription) error { return jd.Deactivate() })
}

// Delete removes a job description. Documents with assignments cannot
// be deleted, only deactivated.
func (s *JobDescriptionService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.jdRepo.FindByID(ctx, id); err != nil {
		return err
	}

	assignments, err := s.jdRepo.CountAssignments(ctx, id)
	if err != nil {
		return err
	}
	if assignments > 0 {
		return shared.NewDomainError("JD_HAS_ASSIGNMENTS", "Cannot delete a job description with assignments")
	}

	return s.jdRepo.Delete(ctx, id)
}

func (s *JobDescriptionService) mutate(ctx context.Context, id uuid.UUID, fn func(*jobdesc.JobDescription) error) (*JobDescriptionResponse, error) {
	jd, err := s.jdRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(jd); err != nil {
		return nil, err
	}

	if err := s.jdRepo.Save(ctx, jd); err != nil {
		return nil, err
	}

	response := ToJobDescriptionResponse(jd)
	return &response, nil
}
