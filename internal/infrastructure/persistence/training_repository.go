package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hris/backend/internal/domain/shared"
	"github.com/hris/backend/internal/domain/training"
	"github.com/hris/backend/internal/infrastructure/persistence/models"
)

// GormTrainingRepository implements TrainingRepository using GORM
type GormTrainingRepository struct {
	db *gorm.DB
}

// NewGormTrainingRepository creates a new GormTrainingRepository
func NewGormTrainingRepository(db *gorm.DB) *GormTrainingRepository {
	return &GormTrainingRepository{db: db}
}

// Save persists a training
func (r *GormTrainingRepository) Save(ctx context.Context, tr *training.Training) error {
	model, err := models.TrainingModelFromDomain(tr)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a training by ID
func (r *GormTrainingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TrainingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a training by ID
func (r *GormTrainingRepository) FindByID(ctx context.Context, id uuid.UUID) (*training.Training, error) {
	var model models.TrainingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll returns trainings matching the filter with pagination
func (r *GormTrainingRepository) FindAll(ctx context.Context, filter training.TrainingFilter) (*shared.Paginated[*training.Training], error) {
	var trainingModels []*models.TrainingModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.TrainingModel{})

	if filter.Keyword != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, TrainingSortFields, "title")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&trainingModels).Error; err != nil {
		return nil, err
	}

	trainings := make([]*training.Training, len(trainingModels))
	for i, model := range trainingModels {
		tr, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		trainings[i] = tr
	}

	result := shared.NewPaginated(trainings, total, filter.Page, filter.Limit())
	return &result, nil
}

// CountAssignments returns the number of assignments referencing a training
func (r *GormTrainingRepository) CountAssignments(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TrainingAssignmentModel{}).
		Where("training_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormTrainingRepository implements TrainingRepository
var _ training.TrainingRepository = (*GormTrainingRepository)(nil)

// GormTrainingAssignmentRepository implements AssignmentRepository using GORM
type GormTrainingAssignmentRepository struct {
	db *gorm.DB
}

// NewGormTrainingAssignmentRepository creates a new GormTrainingAssignmentRepository
func NewGormTrainingAssignmentRepository(db *gorm.DB) *GormTrainingAssignmentRepository {
	return &GormTrainingAssignmentRepository{db: db}
}

// Save persists a training assignment
func (r *GormTrainingAssignmentRepository) Save(ctx context.Context, assignment *training.Assignment) error {
	model := models.TrainingAssignmentModelFromDomain(assignment)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveAll persists a batch of training assignments in one transaction
func (r *GormTrainingAssignmentRepository) SaveAll(ctx context.Context, assignments []*training.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	assignmentModels := make([]*models.TrainingAssignmentModel, len(assignments))
	for i, a := range assignments {
		assignmentModels[i] = models.TrainingAssignmentModelFromDomain(a)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range assignmentModels {
			if err := tx.Save(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID finds a training assignment by ID
func (r *GormTrainingAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*training.Assignment, error) {
	var model models.TrainingAssignmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns training assignments matching the filter with pagination
func (r *GormTrainingAssignmentRepository) FindAll(ctx context.Context, filter training.AssignmentFilter) (*shared.Paginated[*training.Assignment], error) {
	var assignmentModels []*models.TrainingAssignmentModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.TrainingAssignmentModel{})

	if filter.TrainingID != nil {
		query = query.Where("training_id = ?", *filter.TrainingID)
	}
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, TrainingAssignmentSortFields, "due_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&assignmentModels).Error; err != nil {
		return nil, err
	}

	assignments := make([]*training.Assignment, len(assignmentModels))
	for i, model := range assignmentModels {
		assignments[i] = model.ToDomain()
	}

	result := shared.NewPaginated(assignments, total, filter.Page, filter.Limit())
	return &result, nil
}

// FindOpenPastDue returns assignments past their due date that are not yet
// completed or already marked overdue. Used by the scheduler sweep.
func (r *GormTrainingAssignmentRepository) FindOpenPastDue(ctx context.Context, now time.Time) ([]*training.Assignment, error) {
	var assignmentModels []*models.TrainingAssignmentModel
	if err := r.db.WithContext(ctx).
		Where("due_date < ? AND status IN ?", now,
			[]training.AssignmentStatus{training.AssignmentStatusAssigned, training.AssignmentStatusInProgress}).
		Order("due_date ASC").
		Find(&assignmentModels).Error; err != nil {
		return nil, err
	}

	assignments := make([]*training.Assignment, len(assignmentModels))
	for i, model := range assignmentModels {
		assignments[i] = model.ToDomain()
	}
	return assignments, nil
}

// FindByEmployee returns all training assignments for an employee
func (r *GormTrainingAssignmentRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*training.Assignment, error) {
	var assignmentModels []*models.TrainingAssignmentModel
	if err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("due_date ASC").
		Find(&assignmentModels).Error; err != nil {
		return nil, err
	}

	assignments := make([]*training.Assignment, len(assignmentModels))
	for i, model := range assignmentModels {
		assignments[i] = model.ToDomain()
	}
	return assignments, nil
}

// ExistsOpen checks if an employee already has an unfinished assignment for a training
func (r *GormTrainingAssignmentRepository) ExistsOpen(ctx context.Context, trainingID, employeeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TrainingAssignmentModel{}).
		Where("training_id = ? AND employee_id = ? AND status <> ?",
			trainingID, employeeID, training.AssignmentStatusCompleted).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CompletionStats returns completion counts for a training
func (r *GormTrainingAssignmentRepository) CompletionStats(ctx context.Context, trainingID uuid.UUID) (*training.CompletionStats, error) {
	var stats training.CompletionStats

	base := r.db.WithContext(ctx).
		Model(&models.TrainingAssignmentModel{}).
		Where("training_id = ?", trainingID)

	if err := base.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("status = ?", training.AssignmentStatusCompleted).
		Count(&stats.Completed).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("status = ?", training.AssignmentStatusOverdue).
		Count(&stats.Overdue).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// Ensure GormTrainingAssignmentRepository implements AssignmentRepository
var _ training.AssignmentRepository = (*GormTrainingAssignmentRepository)(nil)
