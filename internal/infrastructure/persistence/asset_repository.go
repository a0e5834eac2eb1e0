package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hris/backend/internal/domain/asset"
	"github.com/hris/backend/internal/domain/shared"
	"github.com/hris/backend/internal/infrastructure/persistence/models"
)

// openAssignmentStatuses are the statuses in which units are still out with an employee
var openAssignmentStatuses = []asset.AssignmentStatus{
	asset.AssignmentStatusAssigned,
	asset.AssignmentStatusInUse,
	asset.AssignmentStatusNeedsClarification,
}

// GormAssetBatchRepository implements AssetBatchRepository using GORM
type GormAssetBatchRepository struct {
	db *gorm.DB
}

// NewGormAssetBatchRepository creates a new GormAssetBatchRepository
func NewGormAssetBatchRepository(db *gorm.DB) *GormAssetBatchRepository {
	return &GormAssetBatchRepository{db: db}
}

// Save persists an asset batch
func (r *GormAssetBatchRepository) Save(ctx context.Context, batch *asset.AssetBatch) error {
	model := models.AssetBatchModelFromDomain(batch)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an asset batch by ID
func (r *GormAssetBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AssetBatchModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an asset batch by ID
func (r *GormAssetBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*asset.AssetBatch, error) {
	var model models.AssetBatchModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds an asset batch by ID with a row lock.
// Must be called inside a transaction so the lock is held until commit.
func (r *GormAssetBatchRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*asset.AssetBatch, error) {
	var model models.AssetBatchModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds an asset batch by its case-insensitive name.
func (r *GormAssetBatchRepository) FindByName(ctx context.Context, name string) (*asset.AssetBatch, error) {
	var model models.AssetBatchModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns asset batches matching the filter with pagination
func (r *GormAssetBatchRepository) FindAll(ctx context.Context, filter asset.BatchFilter) (*shared.Paginated[*asset.AssetBatch], error) {
	var batchModels []*models.AssetBatchModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.AssetBatchModel{})

	if filter.Keyword != "" {
		searchPattern := "%" + filter.Keyword + "%"
		query = query.Where("name ILIKE ? OR serial_prefix ILIKE ?", searchPattern, searchPattern)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, AssetBatchSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&batchModels).Error; err != nil {
		return nil, err
	}

	batches := make([]*asset.AssetBatch, len(batchModels))
	for i, model := range batchModels {
		batches[i] = model.ToDomain()
	}

	result := shared.NewPaginated(batches, total, filter.Page, filter.Limit())
	return &result, nil
}

// FindLowStock returns active batches whose available quantity is at or below the threshold
func (r *GormAssetBatchRepository) FindLowStock(ctx context.Context, threshold int) ([]*asset.AssetBatch, error) {
	var batchModels []*models.AssetBatchModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND available_quantity <= ?", true, threshold).
		Order("available_quantity ASC").
		Find(&batchModels).Error; err != nil {
		return nil, err
	}

	batches := make([]*asset.AssetBatch, len(batchModels))
	for i, model := range batchModels {
		batches[i] = model.ToDomain()
	}
	return batches, nil
}

// Ensure GormAssetBatchRepository implements AssetBatchRepository
var _ asset.AssetBatchRepository = (*GormAssetBatchRepository)(nil)

// GormAssetAssignmentRepository implements AssetAssignmentRepository using GORM
type GormAssetAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssetAssignmentRepository creates a new GormAssetAssignmentRepository
func NewGormAssetAssignmentRepository(db *gorm.DB) *GormAssetAssignmentRepository {
	return &GormAssetAssignmentRepository{db: db}
}

// Save persists an asset assignment
func (r *GormAssetAssignmentRepository) Save(ctx context.Context, assignment *asset.AssetAssignment) error {
	model := models.AssetAssignmentModelFromDomain(assignment)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds an asset assignment by ID
func (r *GormAssetAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*asset.AssetAssignment, error) {
	var model models.AssetAssignmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns asset assignments matching the filter with pagination
func (r *GormAssetAssignmentRepository) FindAll(ctx context.Context, filter asset.AssignmentFilter) (*shared.Paginated[*asset.AssetAssignment], error) {
	var assignmentModels []*models.AssetAssignmentModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.AssetAssignmentModel{})

	if filter.BatchID != nil {
		query = query.Where("batch_id = ?", *filter.BatchID)
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

	orderBy := ValidateSortField(filter.OrderBy, AssetAssignmentSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&assignmentModels).Error; err != nil {
		return nil, err
	}

	assignments := make([]*asset.AssetAssignment, len(assignmentModels))
	for i, model := range assignmentModels {
		assignments[i] = model.ToDomain()
	}

	result := shared.NewPaginated(assignments, total, filter.Page, filter.Limit())
	return &result, nil
}

// FindOpenByEmployee returns all assignments still out with an employee
func (r *GormAssetAssignmentRepository) FindOpenByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*asset.AssetAssignment, error) {
	var assignmentModels []*models.AssetAssignmentModel
	if err := r.db.WithContext(ctx).
		Where("employee_id = ? AND status IN ?", employeeID, openAssignmentStatuses).
		Order("created_at DESC").
		Find(&assignmentModels).Error; err != nil {
		return nil, err
	}

	assignments := make([]*asset.AssetAssignment, len(assignmentModels))
	for i, model := range assignmentModels {
		assignments[i] = model.ToDomain()
	}
	return assignments, nil
}

// CountOpenByBatch returns the number of open assignments against a batch
func (r *GormAssetAssignmentRepository) CountOpenByBatch(ctx context.Context, batchID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AssetAssignmentModel{}).
		Where("batch_id = ? AND status IN ?", batchID, openAssignmentStatuses).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormAssetAssignmentRepository implements AssetAssignmentRepository
var _ asset.AssetAssignmentRepository = (*GormAssetAssignmentRepository)(nil)
