package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hris/backend/internal/domain/identity"
	"github.com/hris/backend/internal/domain/shared"
	"github.com/hris/backend/internal/infrastructure/persistence/models"
)

// GormDepartmentRepository implements DepartmentRepository using GORM
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewGormDepartmentRepository creates a new GormDepartmentRepository
func NewGormDepartmentRepository(db *gorm.DB) *GormDepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

// Save persists a department
func (r *GormDepartmentRepository) Save(ctx context.Context, dept *identity.Department) error {
	model := models.DepartmentModelFromDomain(dept)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a department by ID
func (r *GormDepartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DepartmentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a department by ID
func (r *GormDepartmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Department, error) {
	var model models.DepartmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a department by its unique code
func (r *GormDepartmentRepository) FindByCode(ctx context.Context, code string) (*identity.Department, error) {
	var model models.DepartmentModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(code) = ?", strings.ToLower(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds all departments matching the given IDs
func (r *GormDepartmentRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*identity.Department, error) {
	if len(ids) == 0 {
		return []*identity.Department{}, nil
	}

	var deptModels []*models.DepartmentModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&deptModels).Error; err != nil {
		return nil, err
	}
	departments := make([]*identity.Department, 0, len(deptModels))
	for _, m := range deptModels {
		departments = append(departments, m.ToDomain())
	}
	return departments, nil
}

// FindAll returns departments matching the filter with pagination
func (r *GormDepartmentRepository) FindAll(ctx context.Context, filter identity.DepartmentFilter) (*shared.Paginated[*identity.Department], error) {
	var deptModels []*models.DepartmentModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.DepartmentModel{})

	if filter.Keyword != "" {
		searchPattern := "%" + filter.Keyword + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", searchPattern, searchPattern)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ParentID != nil {
		query = query.Where("parent_id = ?", *filter.ParentID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, DepartmentSortFields, "sort_order")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&deptModels).Error; err != nil {
		return nil, err
	}

	depts := make([]*identity.Department, len(deptModels))
	for i, model := range deptModels {
		depts[i] = model.ToDomain()
	}

	result := shared.NewPaginated(depts, total, filter.Page, filter.Limit())
	return &result, nil
}

// FindChildren returns the direct children of a department
func (r *GormDepartmentRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]*identity.Department, error) {
	var deptModels []*models.DepartmentModel
	if err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("sort_order ASC, name ASC").
		Find(&deptModels).Error; err != nil {
		return nil, err
	}
	return toDepartments(deptModels), nil
}

// FindRoots returns all top-level departments
func (r *GormDepartmentRepository) FindRoots(ctx context.Context) ([]*identity.Department, error) {
	var deptModels []*models.DepartmentModel
	if err := r.db.WithContext(ctx).
		Where("parent_id IS NULL").
		Order("sort_order ASC, name ASC").
		Find(&deptModels).Error; err != nil {
		return nil, err
	}
	return toDepartments(deptModels), nil
}

// FindDescendants returns all departments whose path starts with the given path,
// excluding the department at the path itself.
func (r *GormDepartmentRepository) FindDescendants(ctx context.Context, path string) ([]*identity.Department, error) {
	var deptModels []*models.DepartmentModel
	if err := r.db.WithContext(ctx).
		Where("path LIKE ? AND path <> ?", path+"%", path).
		Order("path ASC").
		Find(&deptModels).Error; err != nil {
		return nil, err
	}
	return toDepartments(deptModels), nil
}

// ExistsByCode checks if a department code already exists
func (r *GormDepartmentRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DepartmentModel{}).
		Where("LOWER(code) = ?", strings.ToLower(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasChildren checks if a department has direct children
func (r *GormDepartmentRepository) HasChildren(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DepartmentModel{}).
		Where("parent_id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func toDepartments(deptModels []*models.DepartmentModel) []*identity.Department {
	depts := make([]*identity.Department, len(deptModels))
	for i, model := range deptModels {
		depts[i] = model.ToDomain()
	}
	return depts
}

// Ensure GormDepartmentRepository implements DepartmentRepository
var _ identity.DepartmentRepository = (*GormDepartmentRepository)(nil)
