package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hris/backend/internal/domain/identity"
	"github.com/hris/backend/internal/domain/shared"
	"github.com/hris/backend/internal/infrastructure/persistence/models"
)

// GormRoleRepository implements RoleRepository using GORM
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// Save persists a role and replaces its permissions and data scopes
func (r *GormRoleRepository) Save(ctx context.Context, role *identity.Role) error {
	model := models.RoleModelFromDomain(role)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model).Error; err != nil {
			return err
		}

		if err := tx.Where("role_id = ?", role.ID).Delete(&models.RolePermissionModel{}).Error; err != nil {
			return err
		}
		if len(role.Permissions) > 0 {
			permModels := make([]models.RolePermissionModel, len(role.Permissions))
			for i, p := range role.Permissions {
				permModels[i].FromDomain(role.ID, p)
			}
			if err := tx.Create(&permModels).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("role_id = ?", role.ID).Delete(&models.RoleDataScopeModel{}).Error; err != nil {
			return err
		}
		if len(role.DataScopes) > 0 {
			scopeModels := make([]models.RoleDataScopeModel, len(role.DataScopes))
			for i, ds := range role.DataScopes {
				valuesJSON, err := json.Marshal(ds.ScopeValues)
				if err != nil {
					return err
				}
				scopeModels[i].FromDomain(role.ID, ds, string(valuesJSON))
			}
			if err := tx.Create(&scopeModels).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete deletes a role by ID along with its permissions and data scopes
func (r *GormRoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&models.RolePermissionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", id).Delete(&models.RoleDataScopeModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.RoleModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a role by ID
func (r *GormRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	var model models.RoleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.toDomainWithRelations(ctx, &model)
}

// FindByCode finds a role by its unique code
func (r *GormRoleRepository) FindByCode(ctx context.Context, code string) (*identity.Role, error) {
	var model models.RoleModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(code) = ?", strings.ToLower(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.toDomainWithRelations(ctx, &model)
}

// FindByIDs finds all roles matching the given IDs
func (r *GormRoleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*identity.Role, error) {
	if len(ids) == 0 {
		return []*identity.Role{}, nil
	}

	var roleModels []*models.RoleModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&roleModels).Error; err != nil {
		return nil, err
	}

	roles := make([]*identity.Role, len(roleModels))
	for i, model := range roleModels {
		role, err := r.toDomainWithRelations(ctx, model)
		if err != nil {
			return nil, err
		}
		roles[i] = role
	}
	return roles, nil
}

// FindAll returns roles matching the filter with pagination
func (r *GormRoleRepository) FindAll(ctx context.Context, filter identity.RoleFilter) (*shared.Paginated[*identity.Role], error) {
	var roleModels []*models.RoleModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.RoleModel{})

	if filter.Keyword != "" {
		searchPattern := "%" + filter.Keyword + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", searchPattern, searchPattern)
	}
	if filter.IsEnabled != nil {
		query = query.Where("is_enabled = ?", *filter.IsEnabled)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, RoleSortFields, "sort_order")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&roleModels).Error; err != nil {
		return nil, err
	}

	roles := make([]*identity.Role, len(roleModels))
	for i, model := range roleModels {
		role, err := r.toDomainWithRelations(ctx, model)
		if err != nil {
			return nil, err
		}
		roles[i] = role
	}

	result := shared.NewPaginated(roles, total, filter.Page, filter.Limit())
	return &result, nil
}

// ExistsByCode checks if a role code already exists
func (r *GormRoleRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RoleModel{}).
		Where("LOWER(code) = ?", strings.ToLower(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// toDomainWithRelations converts a model and loads permissions and data scopes
func (r *GormRoleRepository) toDomainWithRelations(ctx context.Context, model *models.RoleModel) (*identity.Role, error) {
	role := model.ToDomain()

	var permModels []models.RolePermissionModel
	if err := r.db.WithContext(ctx).
		Where("role_id = ?", role.ID).
		Find(&permModels).Error; err != nil {
		return nil, err
	}
	permissions := make([]identity.Permission, len(permModels))
	for i, m := range permModels {
		permissions[i] = m.ToDomain()
	}
	role.Permissions = permissions

	var scopeModels []models.RoleDataScopeModel
	if err := r.db.WithContext(ctx).
		Where("role_id = ?", role.ID).
		Find(&scopeModels).Error; err != nil {
		return nil, err
	}
	dataScopes := make([]identity.DataScope, len(scopeModels))
	for i, m := range scopeModels {
		ds := m.ToDomain()
		if m.ScopeValues != "" {
			if err := json.Unmarshal([]byte(m.ScopeValues), &ds.ScopeValues); err != nil {
				return nil, err
			}
		}
		dataScopes[i] = ds
	}
	role.DataScopes = dataScopes

	return role, nil
}

// Ensure GormRoleRepository implements RoleRepository
var _ identity.RoleRepository = (*GormRoleRepository)(nil)
