package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/shared"
	"github.com/hris/backend/internal/infrastructure/persistence/models"
)

// GormEmployeeRepository implements EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// Save persists an employee
func (r *GormEmployeeRepository) Save(ctx context.Context, emp *employee.Employee) error {
	model, err := models.EmployeeModelFromDomain(emp)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an employee by ID
func (r *GormEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.EmployeeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByCode finds an employee by personnel code
func (r *GormEmployeeRepository) FindByCode(ctx context.Context, code string) (*employee.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(code) = ?", strings.ToLower(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByIDs finds all employees matching the given IDs
func (r *GormEmployeeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*employee.Employee, error) {
	if len(ids) == 0 {
		return []*employee.Employee{}, nil
	}

	var empModels []*models.EmployeeModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&empModels).Error; err != nil {
		return nil, err
	}
	return toEmployees(empModels)
}

// FindAll returns employees matching the filter with pagination
func (r *GormEmployeeRepository) FindAll(ctx context.Context, filter employee.EmployeeFilter) (*shared.Paginated[*employee.Employee], error) {
	var empModels []*models.EmployeeModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.EmployeeModel{})
	query = r.applyFilter(query, filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, EmployeeSortFields, "code")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&empModels).Error; err != nil {
		return nil, err
	}

	employees, err := toEmployees(empModels)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(employees, total, filter.Page, filter.Limit())
	return &result, nil
}

// FindByManager returns all employees reporting to a line manager
func (r *GormEmployeeRepository) FindByManager(ctx context.Context, managerID uuid.UUID) ([]*employee.Employee, error) {
	var empModels []*models.EmployeeModel
	if err := r.db.WithContext(ctx).
		Where("line_manager_id = ?", managerID).
		Order("code ASC").
		Find(&empModels).Error; err != nil {
		return nil, err
	}
	return toEmployees(empModels)
}

// FindAllActive returns all active employees
func (r *GormEmployeeRepository) FindAllActive(ctx context.Context) ([]*employee.Employee, error) {
	var empModels []*models.EmployeeModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", employee.EmployeeStatusActive).
		Order("code ASC").
		Find(&empModels).Error; err != nil {
		return nil, err
	}
	return toEmployees(empModels)
}

// FindAllNotTerminated returns all employees still on the books,
// including those on leave
func (r *GormEmployeeRepository) FindAllNotTerminated(ctx context.Context) ([]*employee.Employee, error) {
	var empModels []*models.EmployeeModel
	if err := r.db.WithContext(ctx).
		Where("status <> ?", employee.EmployeeStatusTerminated).
		Order("code ASC").
		Find(&empModels).Error; err != nil {
		return nil, err
	}
	return toEmployees(empModels)
}

// ExistsByCode checks if a personnel code already exists
func (r *GormEmployeeRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.EmployeeModel{}).
		Where("LOWER(code) = ?", strings.ToLower(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormEmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.EmployeeModel{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByDepartment returns the number of employees in a department
func (r *GormEmployeeRepository) CountByDepartment(ctx context.Context, departmentID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.EmployeeModel{}).
		Where("department_id = ?", departmentID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextCode allocates the next sequential personnel code for a prefix, e.g. EMP-0042.
// The highest existing code row is locked to keep concurrent allocations from colliding.
func (r *GormEmployeeRepository) NextCode(ctx context.Context, prefix string) (string, error) {
	var next string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.EmployeeModel
		// Codes sort lexicographically, so once the sequence outgrows the
		// zero padding (EMP-9999 -> EMP-10000) the longer suffix must win.
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("code LIKE ?", prefix+"-%").
			Order("length(code) DESC, code DESC").
			First(&model).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		seq := 0
		if err == nil {
			suffix := strings.TrimPrefix(model.Code, prefix+"-")
			if n, parseErr := strconv.Atoi(suffix); parseErr == nil {
				seq = n
			}
		}
		next = fmt.Sprintf("%s-%04d", prefix, seq+1)
		return nil
	})
	if err != nil {
		return "", err
	}
	return next, nil
}

// applyFilter applies filter options to the query
func (r *GormEmployeeRepository) applyFilter(query *gorm.DB, filter employee.EmployeeFilter) *gorm.DB {
	if filter.Keyword != "" {
		searchPattern := "%" + filter.Keyword + "%"
		query = query.Where(
			"code ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern,
		)
	}

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.LineManagerID != nil {
		query = query.Where("line_manager_id = ?", *filter.LineManagerID)
	}
	if filter.PositionGroup != nil {
		query = query.Where("position_group = ?", *filter.PositionGroup)
	}
	if filter.Tag != "" {
		query = query.Where("tags @> ?", fmt.Sprintf(`[%q]`, filter.Tag))
	}

	return query
}

func toEmployees(empModels []*models.EmployeeModel) ([]*employee.Employee, error) {
	employees := make([]*employee.Employee, len(empModels))
	for i, model := range empModels {
		emp, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		employees[i] = emp
	}
	return employees, nil
}

// Ensure GormEmployeeRepository implements EmployeeRepository
var _ employee.EmployeeRepository = (*GormEmployeeRepository)(nil)
