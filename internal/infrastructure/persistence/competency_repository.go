package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hris/backend/internal/domain/competency"
	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/shared"
	"github.com/hris/backend/internal/infrastructure/persistence/models"
)

// GormSkillGroupRepository implements SkillGroupRepository using GORM
type GormSkillGroupRepository struct {
	db *gorm.DB
}

// NewGormSkillGroupRepository creates a new GormSkillGroupRepository
func NewGormSkillGroupRepository(db *gorm.DB) *GormSkillGroupRepository {
	return &GormSkillGroupRepository{db: db}
}

// Save persists a skill group
func (r *GormSkillGroupRepository) Save(ctx context.Context, group *competency.SkillGroup) error {
	model, err := models.SkillGroupModelFromDomain(group)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a skill group by ID
func (r *GormSkillGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SkillGroupModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a skill group by ID
func (r *GormSkillGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*competency.SkillGroup, error) {
	var model models.SkillGroupModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByName finds a skill group by its unique name
func (r *GormSkillGroupRepository) FindByName(ctx context.Context, name string) (*competency.SkillGroup, error) {
	var model models.SkillGroupModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll returns skill groups matching the filter with pagination
func (r *GormSkillGroupRepository) FindAll(ctx context.Context, filter competency.TaxonomyFilter) (*shared.Paginated[*competency.SkillGroup], error) {
	var groupModels []*models.SkillGroupModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.SkillGroupModel{})
	query = applyTaxonomyFilter(query, filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, SkillGroupSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&groupModels).Error; err != nil {
		return nil, err
	}

	groups := make([]*competency.SkillGroup, len(groupModels))
	for i, model := range groupModels {
		group, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		groups[i] = group
	}

	result := shared.NewPaginated(groups, total, filter.Page, filter.Limit())
	return &result, nil
}

// FindSkillGroup finds the group that contains a given skill
func (r *GormSkillGroupRepository) FindSkillGroup(ctx context.Context, skillID uuid.UUID) (*competency.SkillGroup, error) {
	var model models.SkillGroupModel
	if err := r.db.WithContext(ctx).
		Where("skills @> ?", fmt.Sprintf(`[{"id":%q}]`, skillID.String())).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// ExistsByName checks if a skill group name already exists
func (r *GormSkillGroupRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SkillGroupModel{}).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormSkillGroupRepository implements SkillGroupRepository
var _ competency.SkillGroupRepository = (*GormSkillGroupRepository)(nil)

// GormBehavioralGroupRepository implements BehavioralGroupRepository using GORM
type GormBehavioralGroupRepository struct {
	db *gorm.DB
}

// NewGormBehavioralGroupRepository creates a new GormBehavioralGroupRepository
func NewGormBehavioralGroupRepository(db *gorm.DB) *GormBehavioralGroupRepository {
	return &GormBehavioralGroupRepository{db: db}
}

// Save persists a behavioral competency group
func (r *GormBehavioralGroupRepository) Save(ctx context.Context, group *competency.BehavioralGroup) error {
	model, err := models.BehavioralGroupModelFromDomain(group)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a behavioral competency group by ID
func (r *GormBehavioralGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BehavioralGroupModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a behavioral competency group by ID
func (r *GormBehavioralGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*competency.BehavioralGroup, error) {
	var model models.BehavioralGroupModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll returns behavioral groups matching the filter with pagination
func (r *GormBehavioralGroupRepository) FindAll(ctx context.Context, filter competency.TaxonomyFilter) (*shared.Paginated[*competency.BehavioralGroup], error) {
	var groupModels []*models.BehavioralGroupModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.BehavioralGroupModel{})
	query = applyTaxonomyFilter(query, filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, SkillGroupSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&groupModels).Error; err != nil {
		return nil, err
	}

	groups := make([]*competency.BehavioralGroup, len(groupModels))
	for i, model := range groupModels {
		group, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		groups[i] = group
	}

	result := shared.NewPaginated(groups, total, filter.Page, filter.Limit())
	return &result, nil
}

// ExistsByName checks if a behavioral group name already exists
func (r *GormBehavioralGroupRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BehavioralGroupModel{}).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormBehavioralGroupRepository implements BehavioralGroupRepository
var _ competency.BehavioralGroupRepository = (*GormBehavioralGroupRepository)(nil)

// GormPositionSkillMatrixRepository implements PositionSkillMatrixRepository using GORM
type GormPositionSkillMatrixRepository struct {
	db *gorm.DB
}

// NewGormPositionSkillMatrixRepository creates a new GormPositionSkillMatrixRepository
func NewGormPositionSkillMatrixRepository(db *gorm.DB) *GormPositionSkillMatrixRepository {
	return &GormPositionSkillMatrixRepository{db: db}
}

// Save persists a position skill matrix
func (r *GormPositionSkillMatrixRepository) Save(ctx context.Context, matrix *competency.PositionSkillMatrix) error {
	model, err := models.PositionSkillMatrixModelFromDomain(matrix)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a position skill matrix by ID
func (r *GormPositionSkillMatrixRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PositionSkillMatrixModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByPositionGroup finds the matrix for a position group
func (r *GormPositionSkillMatrixRepository) FindByPositionGroup(ctx context.Context, group employee.PositionGroup) (*competency.PositionSkillMatrix, error) {
	var model models.PositionSkillMatrixModel
	if err := r.db.WithContext(ctx).
		Where("position_group = ?", group).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll returns all position skill matrices
func (r *GormPositionSkillMatrixRepository) FindAll(ctx context.Context) ([]*competency.PositionSkillMatrix, error) {
	var matrixModels []*models.PositionSkillMatrixModel
	if err := r.db.WithContext(ctx).
		Order("position_group ASC").
		Find(&matrixModels).Error; err != nil {
		return nil, err
	}

	matrices := make([]*competency.PositionSkillMatrix, len(matrixModels))
	for i, model := range matrixModels {
		matrix, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		matrices[i] = matrix
	}
	return matrices, nil
}

// Ensure GormPositionSkillMatrixRepository implements PositionSkillMatrixRepository
var _ competency.PositionSkillMatrixRepository = (*GormPositionSkillMatrixRepository)(nil)

// applyTaxonomyFilter applies the common taxonomy filter options to a query
func applyTaxonomyFilter(query *gorm.DB, filter competency.TaxonomyFilter) *gorm.DB {
	if filter.Keyword != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	return query
}
