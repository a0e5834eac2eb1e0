package assessment

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/assessment"
	"github.com/hris/backend/internal/domain/competency"
	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/shared"
)

// AssessmentService drives the self-assessment lifecycle
type AssessmentService struct {
	assessmentRepo assessment.SelfAssessmentRepository
	employeeRepo   employee.EmployeeRepository
	skillGroupRepo competency.SkillGroupRepository
}

// NewAssessmentService creates a new AssessmentService
func NewAssessmentService(
	assessmentRepo assessment.SelfAssessmentRepository,
	employeeRepo employee.EmployeeRepository,
	skillGroupRepo competency.SkillGroupRepository,
) *AssessmentService {
	return &AssessmentService{
		assessmentRepo: assessmentRepo,
		employeeRepo:   employeeRepo,
		skillGroupRepo: skillGroupRepo,
	}
}

// Create opens a draft self-assessment for a review period. The
// reviewer defaults to the employee's line manager; one assessment per
// employee and period.
func (s *AssessmentService) Create(ctx context.Context, req CreateAssessmentRequest) (*AssessmentResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_EMPLOYEE_ID", "Employee not found")
		}
		return nil, err
	}
	if !emp.CanReceiveAssignments() {
		return nil, shared.ErrEmployeeTerminated
	}

	period := strings.TrimSpace(req.Period)
	existing, err := s.assessmentRepo.FindByEmployeeAndPeriod(ctx, req.EmployeeID, period)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ASSESSMENT_EXISTS", "Employee already has an assessment for this period")
	}

	reviewerID := req.ReviewerID
	if reviewerID == nil {
		reviewerID = emp.LineManagerID
	}
	if reviewerID == nil {
		return nil, shared.NewDomainError("INVALID_REVIEWER_ID", "Employee has no line manager to review the assessment")
	}

	reviewer, err := s.employeeRepo.FindByID(ctx, *reviewerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_REVIEWER_ID", "Reviewer not found")
		}
		return nil, err
	}
	if reviewer.IsTerminated() {
		return nil, shared.NewDomainError("INVALID_REVIEWER_ID", "Reviewer is terminated")
	}

	sa, err := assessment.NewSelfAssessment(req.EmployeeID, *reviewerID, period)
	if err != nil {
		return nil, err
	}

	if err := s.assessmentRepo.Save(ctx, sa); err != nil {
		return nil, err
	}

	response := ToAssessmentResponse(sa)
	return &response, nil
}

// Get retrieves an assessment by ID
func (s *AssessmentService) Get(ctx context.Context, id uuid.UUID) (*AssessmentResponse, error) {
	sa, err := s.assessmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToAssessmentResponse(sa)
	return &response, nil
}

// List retrieves assessments matching the filter
func (s *AssessmentService) List(ctx context.Context, filter AssessmentListFilter) (*shared.Paginated[AssessmentResponse], error) {
	domainFilter := assessment.NewAssessmentFilter().
		WithPagination(filter.Page, filter.PageSize)

	if filter.EmployeeID != nil {
		domainFilter = domainFilter.WithEmployeeID(*filter.EmployeeID)
	}
	if filter.ReviewerID != nil {
		domainFilter = domainFilter.WithReviewerID(*filter.ReviewerID)
	}
	if filter.Period != "" {
		domainFilter = domainFilter.WithPeriod(filter.Period)
	}
	if filter.Status != "" {
		domainFilter = domainFilter.WithStatus(assessment.AssessmentStatus(strings.ToUpper(filter.Status)))
	}

	page, err := s.assessmentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]AssessmentResponse, 0, len(page.Items))
	for _, sa := range page.Items {
		items = append(items, ToAssessmentResponse(sa))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// PendingForReviewer lists submitted assessments awaiting the reviewer
func (s *AssessmentService) PendingForReviewer(ctx context.Context, reviewerID uuid.UUID) ([]AssessmentResponse, error) {
	assessments, err := s.assessmentRepo.FindPendingForReviewer(ctx, reviewerID)
	if err != nil {
		return nil, err
	}

	items := make([]AssessmentResponse, 0, len(assessments))
	for _, sa := range assessments {
		items = append(items, ToAssessmentResponse(sa))
	}
	return items, nil
}

// SetRating adds or replaces a skill rating. Only the owning employee
// may edit, and the skill must be active in the taxonomy.
func (s *AssessmentService) SetRating(ctx context.Context, id, actorEmployeeID uuid.UUID, req SetRatingRequest) (*AssessmentResponse, error) {
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

	return s.mutateAsOwner(ctx, id, actorEmployeeID, func(sa *assessment.SelfAssessment) error {
		return sa.SetRating(req.SkillID, req.Rating, req.Comment)
	})
}

// RemoveRating removes a skill rating
func (s *AssessmentService) RemoveRating(ctx context.Context, id, actorEmployeeID, skillID uuid.UUID) (*AssessmentResponse, error) {
	return s.mutateAsOwner(ctx, id, actorEmployeeID, func(sa *assessment.SelfAssessment) error {
		return sa.RemoveRating(skillID)
	})
}

// SetComment sets the overall self-comment
func (s *AssessmentService) SetComment(ctx context.Context, id, actorEmployeeID uuid.UUID, req SetCommentRequest) (*AssessmentResponse, error) {
	return s.mutateAsOwner(ctx, id, actorEmployeeID, func(sa *assessment.SelfAssessment) error {
		return sa.SetEmployeeComment(req.Comment)
	})
}

// Submit sends the assessment to the reviewer
func (s *AssessmentService) Submit(ctx context.Context, id, actorEmployeeID uuid.UUID) (*AssessmentResponse, error) {
	return s.mutateAsOwner(ctx, id, actorEmployeeID, func(sa *assessment.SelfAssessment) error {
		return sa.Submit()
	})
}

// Approve records the reviewer's approval
func (s *AssessmentService) Approve(ctx context.Context, id, actorEmployeeID uuid.UUID, req ReviewRequest) (*AssessmentResponse, error) {
	return s.mutate(ctx, id, func(sa *assessment.SelfAssessment) error {
		return sa.Approve(actorEmployeeID, req.Comment)
	})
}

// Return sends the assessment back to the employee for rework
func (s *AssessmentService) Return(ctx context.Context, id, actorEmployeeID uuid.UUID, req ReviewRequest) (*AssessmentResponse, error) {
	return s.mutate(ctx, id, func(sa *assessment.SelfAssessment) error {
		return sa.Return(actorEmployeeID, req.Comment)
	})
}

// Delete removes a draft assessment. Submitted and reviewed assessments
// are part of the review record and cannot be deleted.
func (s *AssessmentService) Delete(ctx context.Context, id uuid.UUID) error {
	sa, err := s.assessmentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if sa.Status != assessment.AssessmentStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft assessments can be deleted")
	}

	return s.assessmentRepo.Delete(ctx, id)
}

func (s *AssessmentService) mutateAsOwner(ctx context.Context, id, actorEmployeeID uuid.UUID, fn func(*assessment.SelfAssessment) error) (*AssessmentResponse, error) {
	sa, err := s.assessmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sa.EmployeeID != actorEmployeeID {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the assessed employee may edit this assessment")
	}

	if err := fn(sa); err != nil {
		return nil, err
	}

	if err := s.assessmentRepo.Save(ctx, sa); err != nil {
		return nil, err
	}

	response := ToAssessmentResponse(sa)
	return &response, nil
}

func (s *AssessmentService) mutate(ctx context.Context, id uuid.UUID, fn func(*assessment.SelfAssessment) error) (*AssessmentResponse, error) {
	sa, err := s.assessmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(sa); err != nil {
		return nil, err
	}

	if err := s.assessmentRepo.Save(ctx, sa); err != nil {
		return nil, err
	}

	response := ToAssessmentResponse(sa)
	return &response, nil
}
