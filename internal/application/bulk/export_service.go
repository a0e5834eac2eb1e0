package bulk

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/asset"
	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/identity"
	"github.com/hris/backend/internal/domain/shared"
	"github.com/hris/backend/internal/infrastructure/export"
)

// exportPageSize is the fetch size used when draining paginated queries.
const exportPageSize = 100

// ExportService renders filtered record sets as Excel workbooks.
type ExportService struct {
	employeeRepo   employee.EmployeeRepository
	departmentRepo identity.DepartmentRepository
	batchRepo      asset.AssetBatchRepository
	now            func() time.Time
}

// NewExportService creates a new ExportService.
func NewExportService(
	employeeRepo employee.EmployeeRepository,
	departmentRepo identity.DepartmentRepository,
	batchRepo asset.AssetBatchRepository,
) *ExportService {
	return &ExportService{
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
		batchRepo:      batchRepo,
		now:            time.Now,
	}
}

// ExportEmployees writes an employee workbook to w and returns the
// attachment file name.
func (s *ExportService) ExportEmployees(ctx context.Context, w io.Writer, filter EmployeeExportFilter) (string, error) {
	domainFilter, err := toEmployeeFilter(filter)
	if err != nil {
		return "", err
	}

	employees, err := s.drainEmployees(ctx, domainFilter)
	if err != nil {
		return "", err
	}

	lookups, err := s.buildLookups(ctx, employees)
	if err != nil {
		return "", err
	}

	if err := export.WriteEmployees(w, employees, lookups); err != nil {
		return "", fmt.Errorf("writing employee workbook: %w", err)
	}
	return export.FileName("employees", s.now()), nil
}

// ExportAssetBatches writes an asset batch workbook to w and returns
// the attachment file name.
func (s *ExportService) ExportAssetBatches(ctx context.Context, w io.Writer, filter AssetBatchExportFilter) (string, error) {
	domainFilter, err := toBatchFilter(filter)
	if err != nil {
		return "", err
	}

	batches, err := s.drainBatches(ctx, domainFilter)
	if err != nil {
		return "", err
	}

	if err := export.WriteAssetBatches(w, batches); err != nil {
		return "", fmt.Errorf("writing asset batch workbook: %w", err)
	}
	return export.FileName("asset_batches", s.now()), nil
}

func (s *ExportService) drainEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]*employee.Employee, error) {
	var all []*employee.Employee
	for page := 1; ; page++ {
		result, err := s.employeeRepo.FindAll(ctx, filter.WithPagination(page, exportPageSize))
		if err != nil {
			return nil, err
		}
		all = append(all, result.Items...)
		if len(result.Items) < exportPageSize {
			return all, nil
		}
	}
}

func (s *ExportService) drainBatches(ctx context.Context, filter asset.BatchFilter) ([]*asset.AssetBatch, error) {
	var all []*asset.AssetBatch
	for page := 1; ; page++ {
		result, err := s.batchRepo.FindAll(ctx, filter.WithPagination(page, exportPageSize))
		if err != nil {
			return nil, err
		}
		all = append(all, result.Items...)
		if len(result.Items) < exportPageSize {
			return all, nil
		}
	}
}

// buildLookups resolves department names and manager codes for the
// foreign keys present in the export set.
func (s *ExportService) buildLookups(ctx context.Context, employees []*employee.Employee) (export.EmployeeLookups, error) {
	deptIDs := make(map[uuid.UUID]struct{})
	managerIDs := make(map[uuid.UUID]struct{})
	for _, emp := range employees {
		if emp.DepartmentID != nil {
			deptIDs[*emp.DepartmentID] = struct{}{}
		}
		if emp.LineManagerID != nil {
			managerIDs[*emp.LineManagerID] = struct{}{}
		}
	}

	lookups := export.EmployeeLookups{
		DepartmentNames: make(map[uuid.UUID]string, len(deptIDs)),
		ManagerCodes:    make(map[uuid.UUID]string, len(managerIDs)),
	}

	departments, err := s.departmentRepo.FindByIDs(ctx, keys(deptIDs))
	if err != nil {
		return lookups, err
	}
	for _, dept := range departments {
		lookups.DepartmentNames[dept.ID] = dept.Name
	}

	managers, err := s.employeeRepo.FindByIDs(ctx, keys(managerIDs))
	if err != nil {
		return lookups, err
	}
	for _, manager := range managers {
		lookups.ManagerCodes[manager.ID] = manager.Code
	}

	return lookups, nil
}

func toEmployeeFilter(filter EmployeeExportFilter) (employee.EmployeeFilter, error) {
	domainFilter := employee.NewEmployeeFilter().WithKeyword(filter.Keyword)
	if filter.Tag != "" {
		domainFilter.Tag = filter.Tag
	}
	if filter.Status != "" {
		domainFilter = domainFilter.WithStatus(employee.EmployeeStatus(strings.ToUpper(filter.Status)))
	}
	if filter.DepartmentID != "" {
		departmentID, err := uuid.Parse(filter.DepartmentID)
		if err != nil {
			return domainFilter, shared.NewDomainError("INVALID_DEPARTMENT", "Invalid department ID")
		}
		domainFilter.DepartmentID = &departmentID
	}
	return domainFilter, nil
}

func toBatchFilter(filter AssetBatchExportFilter) (asset.BatchFilter, error) {
	domainFilter := asset.NewBatchFilter().WithKeyword(filter.Keyword)
	if filter.Category != "" {
		category := asset.AssetCategory(strings.ToUpper(filter.Category))
		if !category.IsValid() {
			return domainFilter, shared.NewDomainError("INVALID_ASSET_CATEGORY", fmt.Sprintf("Invalid asset category: %s", filter.Category))
		}
		domainFilter = domainFilter.WithCategory(category)
	}
	if filter.IsActive != nil {
		domainFilter.IsActive = filter.IsActive
	}
	return domainFilter, nil
}

func keys(set map[uuid.UUID]struct{}) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
