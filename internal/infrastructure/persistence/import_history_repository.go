package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hris/backend/internal/domain/bulk"
	"github.com/hris/backend/internal/domain/shared"
	"github.com/hris/backend/internal/infrastructure/persistence/models"
)

// GormImportHistoryRepository implements ImportHistoryRepository using GORM
type GormImportHistoryRepository struct {
	db *gorm.DB
}

// NewGormImportHistoryRepository creates a new GormImportHistoryRepository
func NewGormImportHistoryRepository(db *gorm.DB) *GormImportHistoryRepository {
	return &GormImportHistoryRepository{db: db}
}

// Save persists an import history record
func (r *GormImportHistoryRepository) Save(ctx context.Context, history *bulk.ImportHistory) error {
	model, err := models.ImportHistoryModelFromDomain(history)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an import history record by ID
func (r *GormImportHistoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ImportHistoryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an import history record by ID
func (r *GormImportHistoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*bulk.ImportHistory, error) {
	var model models.ImportHistoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll returns import history records matching the filter with pagination
func (r *GormImportHistoryRepository) FindAll(ctx context.Context, filter bulk.ImportHistoryFilter) (*shared.Paginated[*bulk.ImportHistory], error) {
	var historyModels []*models.ImportHistoryModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ImportHistoryModel{})

	if filter.EntityType != nil {
		query = query.Where("entity_type = ?", *filter.EntityType)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ImportedBy != nil {
		query = query.Where("imported_by = ?", *filter.ImportedBy)
	}
	if filter.StartedFrom != nil {
		query = query.Where("started_at >= ?", *filter.StartedFrom)
	}
	if filter.StartedTo != nil {
		query = query.Where("started_at <= ?", *filter.StartedTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, ImportHistorySortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&historyModels).Error; err != nil {
		return nil, err
	}

	histories := make([]*bulk.ImportHistory, len(historyModels))
	for i, model := range historyModels {
		history, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		histories[i] = history
	}

	result := shared.NewPaginated(histories, total, filter.Page, filter.Limit())
	return &result, nil
}

// FindPending returns pending imports, used for recovery after a restart
func (r *GormImportHistoryRepository) FindPending(ctx context.Context) ([]*bulk.ImportHistory, error) {
	var historyModels []*models.ImportHistoryModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", bulk.ImportStatusPending).
		Order("created_at ASC").
		Find(&historyModels).Error; err != nil {
		return nil, err
	}

	histories := make([]*bulk.ImportHistory, len(historyModels))
	for i, model := range historyModels {
		history, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		histories[i] = history
	}
	return histories, nil
}

// Ensure GormImportHistoryRepository implements ImportHistoryRepository
var _ bulk.ImportHistoryRepository = (*GormImportHistoryRepository)(nil)
