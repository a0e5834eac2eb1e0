package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hris/backend/internal/domain/jobdesc"
	"github.com/hris/backend/internal/domain/shared"
	"github.com/hris/backend/internal/infrastructure/persistence/models"
)

// GormJobDescriptionRepository implements JobDescriptionRepository using GORM
type GormJobDescriptionRepository struct {
	db *gorm.DB
}

// NewGormJobDescriptionRepository creates a new GormJobDescriptionRepository
func NewGormJobDescriptionRepository(db *gorm.DB) *GormJobDescriptionRepository {
	return &GormJobDescriptionRepository{db: db}
}

// Save persists a job description
func (r *GormJobDescriptionRepository) Save(ctx context.Context, jd *jobdesc.JobDescription) error {
	model, err := models.JobDescriptionModelFromDomain(jd)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a job description by ID
func (r *GormJobDescriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.JobDescriptionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a job description by ID
func (r *GormJobDescriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*jobdesc.JobDescription, error) {
	var model models.JobDescriptionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll returns job descriptions matching the filter with pagination
func (r *GormJobDescriptionRepository) FindAll(ctx context.Context, filter jobdesc.JobDescriptionFilter) (*shared.Paginated[*jobdesc.JobDescription], error) {
	var jdModels []*models.JobDescriptionModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.JobDescriptionModel{})

	if filter.Keyword != "" {
		searchPattern := "%" + filter.Keyword + "%"
		query = query.Where("title ILIKE ?", searchPattern)
	}
	if filter.PositionGroup != nil {
		query = query.Where("position_group = ?", *filter.PositionGroup)
	}
	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, JobDescriptionSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&jdModels).Error; err != nil {
		return nil, err
	}

	jds := make([]*jobdesc.JobDescription, len(jdModels))
	for i, model := range jdModels {
		jd, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		jds[i] = jd
	}

	result := shared.NewPaginated(jds, total, filter.Page, filter.Limit())
	return &result, nil
}

// CountAssignments returns the number of assignments referencing a job description
func (r *GormJobDescriptionRepository) CountAssignments(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.JobAssignmentModel{}).
		Where("job_description_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormJobDescriptionRepository implements JobDescriptionRepository
var _ jobdesc.JobDescriptionRepository = (*GormJobDescriptionRepository)(nil)

// GormJobAssignmentRepository implements AssignmentRepository using GORM
type GormJobAssignmentRepository struct {
	db *gorm.DB
}

// NewGormJobAssignmentRepository creates a new GormJobAssignmentRepository
func NewGormJobAssignmentRepository(db *gorm.DB) *GormJobAssignmentRepository {
	return &GormJobAssignmentRepository{db: db}
}

// Save persists a job description assignment
func (r *GormJobAssignmentRepository) Save(ctx context.Context, assignment *jobdesc.Assignment) error {
	model, err := models.JobAssignmentModelFromDomain(assignment)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a job description assignment by ID
func (r *GormJobAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*jobdesc.Assignment, error) {
	var model models.JobAssignmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll returns job description assignments matching the filter with pagination
func (r *GormJobAssignmentRepository) FindAll(ctx context.Context, filter jobdesc.AssignmentFilter) (*shared.Paginated[*jobdesc.Assignment], error) {
	var assignmentModels []*models.JobAssignmentModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.JobAssignmentModel{})

	if filter.JobDescriptionID != nil {
		query = query.Where("job_description_id = ?", *filter.JobDescriptionID)
	}
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.LineManagerID != nil {
		query = query.Where("line_manager_id = ?", *filter.LineManagerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, JobAssignmentSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&assignmentModels).Error; err != nil {
		return nil, err
	}

	assignments, err := toJobAssignments(assignmentModels)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(assignments, total, filter.Page, filter.Limit())
	return &result, nil
}

// FindPendingForActor returns assignments waiting on the given actor's approval,
// either as the line manager of record or as the assigned employee.
func (r *GormJobAssignmentRepository) FindPendingForActor(ctx context.Context, actorID uuid.UUID) ([]*jobdesc.Assignment, error) {
	var assignmentModels []*models.JobAssignmentModel
	if err := r.db.WithContext(ctx).
		Where("(status = ? AND line_manager_id = ?) OR (status = ? AND employee_id = ?)",
			jobdesc.ApprovalStatusPendingLineManager, actorID,
			jobdesc.ApprovalStatusPendingEmployee, actorID).
		Order("created_at ASC").
		Find(&assignmentModels).Error; err != nil {
		return nil, err
	}
	return toJobAssignments(assignmentModels)
}

// FindOpenByEmployee returns non-terminal assignments for an employee
func (r *GormJobAssignmentRepository) FindOpenByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*jobdesc.Assignment, error) {
	var assignmentModels []*models.JobAssignmentModel
	if err := r.db.WithContext(ctx).
		Where("employee_id = ? AND status NOT IN ?", employeeID,
			[]jobdesc.ApprovalStatus{jobdesc.ApprovalStatusRejected}).
		Order("created_at DESC").
		Find(&assignmentModels).Error; err != nil {
		return nil, err
	}
	return toJobAssignments(assignmentModels)
}

func toJobAssignments(assignmentModels []*models.JobAssignmentModel) ([]*jobdesc.Assignment, error) {
	assignments := make([]*jobdesc.Assignment, len(assignmentModels))
	for i, model := range assignmentModels {
		assignment, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		assignments[i] = assignment
	}
	return assignments, nil
}

// Ensure GormJobAssignmentRepository implements AssignmentRepository
var _ jobdesc.AssignmentRepository = (*GormJobAssignmentRepository)(nil)
