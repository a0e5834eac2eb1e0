package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hris/backend/internal/domain/grading"
	"github.com/hris/backend/internal/domain/shared"
	"github.com/hris/backend/internal/infrastructure/persistence/models"
)

// GormScenarioRepository implements ScenarioRepository using GORM
type GormScenarioRepository struct {
	db *gorm.DB
}

// NewGormScenarioRepository creates a new GormScenarioRepository
func NewGormScenarioRepository(db *gorm.DB) *GormScenarioRepository {
	return &GormScenarioRepository{db: db}
}

// Save persists a salary scenario
func (r *GormScenarioRepository) Save(ctx context.Context, scenario *grading.SalaryScenario) error {
	model, err := models.SalaryScenarioModelFromDomain(scenario)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a salary scenario by ID
func (r *GormScenarioRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SalaryScenarioModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a salary scenario by ID
func (r *GormScenarioRepository) FindByID(ctx context.Context, id uuid.UUID) (*grading.SalaryScenario, error) {
	var model models.SalaryScenarioModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll returns salary scenarios matching the filter with pagination
func (r *GormScenarioRepository) FindAll(ctx context.Context, filter grading.ScenarioFilter) (*shared.Paginated[*grading.SalaryScenario], error) {
	var scenarioModels []*models.SalaryScenarioModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.SalaryScenarioModel{})

	if filter.Keyword != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, SalaryScenarioSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&scenarioModels).Error; err != nil {
		return nil, err
	}

	scenarios := make([]*grading.SalaryScenario, len(scenarioModels))
	for i, model := range scenarioModels {
		scenario, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		scenarios[i] = scenario
	}

	result := shared.NewPaginated(scenarios, total, filter.Page, filter.Limit())
	return &result, nil
}

// FindCurrent returns the currently applied scenario
func (r *GormScenarioRepository) FindCurrent(ctx context.Context) (*grading.SalaryScenario, error) {
	var model models.SalaryScenarioModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", grading.ScenarioStatusApplied).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// ExistsByName checks if a scenario name already exists
func (r *GormScenarioRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SalaryScenarioModel{}).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ApplyExclusive persists an applied scenario and demotes the previously
// applied one to archived in the same transaction, keeping at most one
// applied scenario at any time.
func (r *GormScenarioRepository) ApplyExclusive(ctx context.Context, scenario *grading.SalaryScenario) error {
	model, err := models.SalaryScenarioModelFromDomain(scenario)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock currently applied rows so concurrent applies serialize.
		var applied []models.SalaryScenarioModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("status = ? AND id <> ?", grading.ScenarioStatusApplied, scenario.ID).
			Find(&applied).Error; err != nil {
			return err
		}

		now := time.Now()
		for i := range applied {
			if err := tx.Model(&applied[i]).Updates(map[string]interface{}{
				"status":      grading.ScenarioStatusArchived,
				"archived_at": now,
				"updated_at":  now,
				"version":     gorm.Expr("version + 1"),
			}).Error; err != nil {
				return err
			}
		}

		return tx.Save(model).Error
	})
}

// Ensure GormScenarioRepository implements ScenarioRepository
var _ grading.ScenarioRepository = (*GormScenarioRepository)(nil)
