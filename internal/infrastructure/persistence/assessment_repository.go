package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hris/backend/internal/domain/assessment"
	"github.com/hris/backend/internal/domain/shared"
	"github.com/hris/backend/internal/infrastructure/persistence/models"
)

// GormSelfAssessmentRepository implements SelfAssessmentRepository using GORM
type GormSelfAssessmentRepository struct {
	db *gorm.DB
}

// NewGormSelfAssessmentRepository creates a new GormSelfAssessmentRepository
func NewGormSelfAssessmentRepository(db *gorm.DB) *GormSelfAssessmentRepository {
	return &GormSelfAssessmentRepository{db: db}
}

// Save persists a self assessment
func (r *GormSelfAssessmentRepository) Save(ctx context.Context, sa *assessment.SelfAssessment) error {
	model, err := models.SelfAssessmentModelFromDomain(sa)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a self assessment by ID
func (r *GormSelfAssessmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SelfAssessmentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a self assessment by ID
func (r *GormSelfAssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*assessment.SelfAssessment, error) {
	var model models.SelfAssessmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByEmployeeAndPeriod finds the assessment for an employee in a review period
func (r *GormSelfAssessmentRepository) FindByEmployeeAndPeriod(ctx context.Context, employeeID uuid.UUID, period string) (*assessment.SelfAssessment, error) {
	var model models.SelfAssessmentModel
	if err := r.db.WithContext(ctx).
		Where("employee_id = ? AND period = ?", employeeID, period).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll returns self assessments matching the filter with pagination
func (r *GormSelfAssessmentRepository) FindAll(ctx context.Context, filter assessment.AssessmentFilter) (*shared.Paginated[*assessment.SelfAssessment], error) {
	var assessmentModels []*models.SelfAssessmentModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.SelfAssessmentModel{})

	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.ReviewerID != nil {
		query = query.Where("reviewer_id = ?", *filter.ReviewerID)
	}
	if filter.Period != "" {
		query = query.Where("period = ?", filter.Period)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, SelfAssessmentSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&assessmentModels).Error; err != nil {
		return nil, err
	}

	assessments, err := toSelfAssessments(assessmentModels)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(assessments, total, filter.Page, filter.Limit())
	return &result, nil
}

// FindPendingForReviewer returns submitted assessments awaiting a reviewer
func (r *GormSelfAssessmentRepository) FindPendingForReviewer(ctx context.Context, reviewerID uuid.UUID) ([]*assessment.SelfAssessment, error) {
	var assessmentModels []*models.SelfAssessmentModel
	if err := r.db.WithContext(ctx).
		Where("reviewer_id = ? AND status = ?", reviewerID, assessment.AssessmentStatusSubmitted).
		Order("submitted_at ASC").
		Find(&assessmentModels).Error; err != nil {
		return nil, err
	}
	return toSelfAssessments(assessmentModels)
}

func toSelfAssessments(assessmentModels []*models.SelfAssessmentModel) ([]*assessment.SelfAssessment, error) {
	assessments := make([]*assessment.SelfAssessment, len(assessmentModels))
	for i, model := range assessmentModels {
		sa, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		assessments[i] = sa
	}
	return assessments, nil
}

// Ensure GormSelfAssessmentRepository implements SelfAssessmentRepository
var _ assessment.SelfAssessmentRepository = (*GormSelfAssessmentRepository)(nil)
