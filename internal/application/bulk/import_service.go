package bulk

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hris/backend/internal/domain/asset"
	"github.com/hris/backend/internal/domain/bulk"
	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/identity"
	"github.com/hris/backend/internal/domain/shared"
	csvimport "github.com/hris/backend/internal/infrastructure/import"
)

const csvDateLayout = "2006-01-02"

// ImportService runs CSV bulk imports for employees and asset batches.
// Files are parsed and validated up front; rows that pass are then
// applied one by one so a bad row never blocks the rest of the file.
type ImportService struct {
	historyRepo    bulk.ImportHistoryRepository
	employeeRepo   employee.EmployeeRepository
	batchRepo      asset.AssetBatchRepository
	departmentRepo identity.DepartmentRepository
	maxFileSize    int64
	maxRows        int
}

// NewImportService creates a new ImportService.
func NewImportService(
	historyRepo bulk.ImportHistoryRepository,
	employeeRepo employee.EmployeeRepository,
	batchRepo asset.AssetBatchRepository,
	departmentRepo identity.DepartmentRepository,
) *ImportService {
	return &ImportService{
		historyRepo:    historyRepo,
		employeeRepo:   employeeRepo,
		batchRepo:      batchRepo,
		departmentRepo: departmentRepo,
		maxFileSize:    10 * 1024 * 1024,
		maxRows:        50000,
	}
}

// SetLimits overrides the default file size and row caps.
func (s *ImportService) SetLimits(maxFileSize int64, maxRows int) {
	if maxFileSize > 0 {
		s.maxFileSize = maxFileSize
	}
	if maxRows > 0 {
		s.maxRows = maxRows
	}
}

// ImportEmployees validates and applies an employee CSV file.
// With DryRun set, the file is only validated and no history is recorded.
func (s *ImportService) ImportEmployees(ctx context.Context, req ImportRequest) (*ImportResultResponse, error) {
	mode, err := parseConflictMode(req.ConflictMode)
	if err != nil {
		return nil, err
	}

	processor := s.newProcessor(ctx, mode)
	if err := processor.CheckFileSize(req.FileSize); err != nil {
		return nil, shared.NewDomainError("FILE_TOO_LARGE", err.Error())
	}

	outcome, err := processor.Process(ctx, req.Reader, string(bulk.ImportEntityEmployees),
		csvimport.EmployeeFieldRules(), csvimport.EmployeeRequiredHeaders())
	if err != nil {
		return nil, shared.NewDomainError("INVALID_FILE", err.Error())
	}

	if req.DryRun {
		return dryRunResult(bulk.ImportEntityEmployees, outcome), nil
	}

	return s.runImport(ctx, req, bulk.ImportEntityEmployees, mode, outcome, s.applyEmployeeRow)
}

// ImportAssetBatches validates and applies an asset batch CSV file.
func (s *ImportService) ImportAssetBatches(ctx context.Context, req ImportRequest) (*ImportResultResponse, error) {
	mode, err := parseConflictMode(req.ConflictMode)
	if err != nil {
		return nil, err
	}

	processor := s.newProcessor(ctx, mode)
	if err := processor.CheckFileSize(req.FileSize); err != nil {
		return nil, shared.NewDomainError("FILE_TOO_LARGE", err.Error())
	}

	outcome, err := processor.Process(ctx, req.Reader, string(bulk.ImportEntityAssetBatches),
		csvimport.AssetBatchFieldRules(), csvimport.AssetBatchRequiredHeaders())
	if err != nil {
		return nil, shared.NewDomainError("INVALID_FILE", err.Error())
	}

	if req.DryRun {
		return dryRunResult(bulk.ImportEntityAssetBatches, outcome), nil
	}

	return s.runImport(ctx, req, bulk.ImportEntityAssetBatches, mode, outcome, s.applyAssetBatchRow)
}

// GetHistory returns one import run by ID.
func (s *ImportService) GetHistory(ctx context.Context, id uuid.UUID) (*ImportHistoryResponse, error) {
	history, err := s.historyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("IMPORT_NOT_FOUND", "Import history not found")
		}
		return nil, err
	}
	return ToImportHistoryResponse(history), nil
}

// ListHistory returns import runs matching the filter, newest first.
func (s *ImportService) ListHistory(ctx context.Context, filter ImportHistoryListFilter) (*shared.Paginated[*ImportHistoryResponse], error) {
	domainFilter := bulk.NewImportHistoryFilter().WithPagination(filter.Page, filter.PageSize)
	if filter.EntityType != "" {
		entityType := bulk.ImportEntityType(strings.ToLower(filter.EntityType))
		if !entityType.IsValid() {
			return nil, shared.NewDomainError("INVALID_ENTITY_TYPE", fmt.Sprintf("Invalid entity type: %s", filter.EntityType))
		}
		domainFilter = domainFilter.WithEntityType(entityType)
	}
	if filter.Status != "" {
		status := bulk.ImportStatus(strings.ToLower(filter.Status))
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Invalid import status: %s", filter.Status))
		}
		domainFilter = domainFilter.WithStatus(status)
	}

	page, err := s.historyRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]*ImportHistoryResponse, 0, len(page.Items))
	for _, h := range page.Items {
		responses = append(responses, ToImportHistoryResponse(h))
	}
	result := shared.NewPaginated(responses, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// CancelPending cancels import runs stuck in a non-terminal state, for
// example after a crash mid-import. Returns the number cancelled.
func (s *ImportService) CancelPending(ctx context.Context) (int, error) {
	pending, err := s.historyRepo.FindPending(ctx)
	if err != nil {
		return 0, err
	}
	cancelled := 0
	for _, h := range pending {
		if err := h.Cancel(); err != nil {
			continue
		}
		if err := s.historyRepo.Save(ctx, h); err != nil {
			return cancelled, err
		}
		cancelled++
	}
	return cancelled, nil
}

// rowApplier applies one validated row. It reports whether the row was
// created, skipped or updated, or returns an error for the error report.
type rowApplier func(ctx context.Context, row *csvimport.Row, mode bulk.ConflictMode) (rowResult, error)

type rowResult int

const (
	rowCreated rowResult = iota
	rowSkipped
	rowUpdated
)

func (s *ImportService) runImport(
	ctx context.Context,
	req ImportRequest,
	entityType bulk.ImportEntityType,
	mode bulk.ConflictMode,
	outcome *csvimport.Outcome,
	apply rowApplier,
) (*ImportResultResponse, error) {
	history, err := bulk.NewImportHistory(entityType, req.FileName, req.FileSize, mode, req.ImportedBy)
	if err != nil {
		return nil, err
	}
	if err := history.StartProcessing(outcome.TotalRows); err != nil {
		return nil, err
	}
	if err := s.historyRepo.Save(ctx, history); err != nil {
		return nil, err
	}

	details := collectionDetails(outcome.Errors)
	var success, skipped, updated int
	errorRows := outcome.ErrorRows

	for _, row := range outcome.ValidRows {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result, err := apply(ctx, row, mode)
		if err != nil {
			errorRows++
			details = append(details, rowDetail(row.LineNumber, err))
			continue
		}
		switch result {
		case rowCreated:
			success++
		case rowSkipped:
			skipped++
		case rowUpdated:
			updated++
		}
	}

	if err := history.Complete(success, errorRows, skipped, updated, details); err != nil {
		return nil, err
	}
	if err := s.historyRepo.Save(ctx, history); err != nil {
		return nil, err
	}

	return &ImportResultResponse{
		HistoryID:    &history.ID,
		EntityType:   string(entityType),
		Status:       string(history.Status),
		TotalRows:    outcome.TotalRows,
		SuccessRows:  success,
		ErrorRows:    errorRows,
		SkippedRows:  skipped,
		UpdatedRows:  updated,
		Errors:       toErrorResponses(details),
		ErrorsCapped: outcome.IsTruncated,
	}, nil
}

func (s *ImportService) applyEmployeeRow(ctx context.Context, row *csvimport.Row, mode bulk.ConflictMode) (rowResult, error) {
	code := strings.ToUpper(strings.TrimSpace(row.Get(csvimport.ColEmployeeCode)))

	if code != "" {
		existing, err := s.employeeRepo.FindByCode(ctx, code)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return 0, err
		}
		if existing != nil {
			switch mode {
			case bulk.ConflictModeSkip:
				return rowSkipped, nil
			case bulk.ConflictModeUpdate:
				if err := s.updateEmployeeFromRow(ctx, existing, row); err != nil {
					return 0, err
				}
				return rowUpdated, nil
			default:
				return 0, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Employee %s already exists", code))
			}
		}
	} else {
		next, err := s.employeeRepo.NextCode(ctx, "EMP")
		if err != nil {
			return 0, err
		}
		code = next
	}

	group, err := employee.ParsePositionGroup(row.Get(csvimport.ColPositionGroup))
	if err != nil {
		return 0, err
	}
	hireDate, err := time.Parse(csvDateLayout, row.Get(csvimport.ColHireDate))
	if err != nil {
		return 0, shared.NewDomainError("INVALID_DATE", fmt.Sprintf("Invalid hire date: %s", row.Get(csvimport.ColHireDate)))
	}

	emp, err := employee.NewEmployee(code, row.Get(csvimport.ColFirstName), row.Get(csvimport.ColLastName), group, hireDate)
	if err != nil {
		return 0, err
	}
	if err := s.fillEmployeeFromRow(ctx, emp, group, row); err != nil {
		return 0, err
	}
	if err := s.employeeRepo.Save(ctx, emp); err != nil {
		return 0, err
	}
	return rowCreated, nil
}

func (s *ImportService) updateEmployeeFromRow(ctx context.Context, emp *employee.Employee, row *csvimport.Row) error {
	group, err := employee.ParsePositionGroup(row.Get(csvimport.ColPositionGroup))
	if err != nil {
		return err
	}
	if err := s.fillEmployeeFromRow(ctx, emp, group, row); err != nil {
		return err
	}
	return s.employeeRepo.Save(ctx, emp)
}

// fillEmployeeFromRow applies the optional columns shared by create and update.
func (s *ImportService) fillEmployeeFromRow(ctx context.Context, emp *employee.Employee, group employee.PositionGroup, row *csvimport.Row) error {
	var dateOfBirth *time.Time
	if raw := row.Get(csvimport.ColDateOfBirth); raw != "" {
		parsed, err := time.Parse(csvDateLayout, raw)
		if err != nil {
			return shared.NewDomainError("INVALID_DATE", fmt.Sprintf("Invalid date of birth: %s", raw))
		}
		dateOfBirth = &parsed
	}
	if err := emp.UpdatePersonal(
		row.Get(csvimport.ColFirstName),
		row.Get(csvimport.ColLastName),
		row.Get(csvimport.ColMiddleName),
		row.Get(csvimport.ColEmail),
		row.Get(csvimport.ColPhone),
		dateOfBirth,
	); err != nil {
		return err
	}

	if title := row.Get(csvimport.ColPositionTitle); title != "" {
		if err := emp.SetPosition(group, title, row.Get(csvimport.ColGrade)); err != nil {
			return err
		}
	}

	if deptCode := row.Get(csvimport.ColDepartmentCode); deptCode != "" {
		dept, err := s.departmentRepo.FindByCode(ctx, deptCode)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_DEPARTMENT", fmt.Sprintf("Unknown department code: %s", deptCode))
			}
			return err
		}
		emp.SetDepartment(&dept.ID)
	}

	if managerCode := row.Get(csvimport.ColLineManagerCode); managerCode != "" {
		manager, err := s.employeeRepo.FindByCode(ctx, managerCode)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_MANAGER", fmt.Sprintf("Unknown line manager code: %s", managerCode))
			}
			return err
		}
		if err := employee.CheckManagerAssignment(ctx, s.employeeRepo, emp, manager.ID); err != nil {
			return err
		}
		if err := emp.ChangeManager(&manager.ID); err != nil {
			return err
		}
	}

	for _, tag := range csvimport.SplitTags(row.Get(csvimport.ColTags)) {
		if err := emp.AddTag(tag); err != nil {
			return err
		}
	}
	return nil
}

func (s *ImportService) applyAssetBatchRow(ctx context.Context, row *csvimport.Row, mode bulk.ConflictMode) (rowResult, error) {
	name := strings.TrimSpace(row.Get(csvimport.ColBatchName))

	existing, err := s.batchRepo.FindByName(ctx, name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return 0, err
	}
	if existing != nil {
		switch mode {
		case bulk.ConflictModeSkip:
			return rowSkipped, nil
		case bulk.ConflictModeUpdate:
			// Quantities stay untouched on update; restocking goes
			// through the stock operations, not the importer.
			if err := s.updateBatchFromRow(ctx, existing, row); err != nil {
				return 0, err
			}
			return rowUpdated, nil
		default:
			return 0, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Asset batch %q already exists", name))
		}
	}

	category := asset.AssetCategory(strings.ToUpper(strings.TrimSpace(row.Get(csvimport.ColBatchCategory))))
	quantity, err := strconv.Atoi(strings.TrimSpace(row.Get(csvimport.ColInitialQuantity)))
	if err != nil {
		return 0, shared.NewDomainError("INVALID_QUANTITY", fmt.Sprintf("Invalid initial quantity: %s", row.Get(csvimport.ColInitialQuantity)))
	}

	batch, err := asset.NewAssetBatch(name, category, quantity)
	if err != nil {
		return 0, err
	}
	if err := fillBatchFromRow(batch, row); err != nil {
		return 0, err
	}
	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return 0, err
	}
	return rowCreated, nil
}

func (s *ImportService) updateBatchFromRow(ctx context.Context, batch *asset.AssetBatch, row *csvimport.Row) error {
	if err := fillBatchFromRow(batch, row); err != nil {
		return err
	}
	return s.batchRepo.Save(ctx, batch)
}

func fillBatchFromRow(batch *asset.AssetBatch, row *csvimport.Row) error {
	if err := batch.SetDetails(batch.Name, row.Get(csvimport.ColSerialPrefix), row.Get(csvimport.ColBatchDesc)); err != nil {
		return err
	}

	if raw := row.Get(csvimport.ColUnitCost); raw != "" {
		cost, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return shared.NewDomainError("INVALID_UNIT_COST", fmt.Sprintf("Invalid unit cost: %s", raw))
		}
		if err := batch.SetUnitCost(cost.Mul(decimal.NewFromInt(100)).IntPart()); err != nil {
			return err
		}
	}

	if raw := row.Get(csvimport.ColPurchasedAt); raw != "" {
		purchasedAt, err := time.Parse(csvDateLayout, raw)
		if err != nil {
			return shared.NewDomainError("INVALID_DATE", fmt.Sprintf("Invalid purchase date: %s", raw))
		}
		batch.PurchasedAt = &purchasedAt
	}
	return nil
}

// newProcessor builds a processor whose lookups run against the live
// repositories. The database uniqueness check is only wired for the
// fail conflict mode; with skip and update, collisions are resolved
// per row instead of rejected up front.
func (s *ImportService) newProcessor(ctx context.Context, mode bulk.ConflictMode) *csvimport.Processor {
	opts := []csvimport.ProcessorOption{
		csvimport.WithMaxFileSize(s.maxFileSize),
		csvimport.WithMaxRows(s.maxRows),
		csvimport.WithReferenceLookup(func(kind, value string) (bool, error) {
			switch kind {
			case csvimport.RefDepartment:
				return s.departmentRepo.ExistsByCode(ctx, value)
			case csvimport.RefEmployee:
				return s.employeeRepo.ExistsByCode(ctx, value)
			}
			return false, fmt.Errorf("unknown reference kind %q", kind)
		}),
	}
	if mode == bulk.ConflictModeFail {
		opts = append(opts, csvimport.WithUniqueLookup(func(entityType, column, value string) (bool, error) {
			switch {
			case entityType == string(bulk.ImportEntityEmployees) && column == csvimport.ColEmployeeCode:
				return s.employeeRepo.ExistsByCode(ctx, value)
			case entityType == string(bulk.ImportEntityEmployees) && column == csvimport.ColEmail:
				return s.employeeRepo.ExistsByEmail(ctx, value)
			case entityType == string(bulk.ImportEntityAssetBatches) && column == csvimport.ColBatchName:
				existing, err := s.batchRepo.FindByName(ctx, value)
				if err != nil {
					if errors.Is(err, shared.ErrNotFound) {
						return false, nil
					}
					return false, err
				}
				return existing != nil, nil
			}
			return false, nil
		}))
	}
	return csvimport.NewProcessor(opts...)
}

func parseConflictMode(raw string) (bulk.ConflictMode, error) {
	if raw == "" {
		return bulk.ConflictModeFail, nil
	}
	mode := bulk.ConflictMode(strings.ToLower(strings.TrimSpace(raw)))
	if !mode.IsValid() {
		return "", shared.NewDomainError("INVALID_CONFLICT_MODE", fmt.Sprintf("Invalid conflict mode: %s", raw))
	}
	return mode, nil
}

func dryRunResult(entityType bulk.ImportEntityType, outcome *csvimport.Outcome) *ImportResultResponse {
	status := "valid"
	if !outcome.IsValid() {
		status = "invalid"
	}
	return &ImportResultResponse{
		EntityType:   string(entityType),
		Status:       status,
		DryRun:       true,
		TotalRows:    outcome.TotalRows,
		ErrorRows:    outcome.ErrorRows,
		Errors:       toErrorResponses(collectionDetails(outcome.Errors)),
		ErrorsCapped: outcome.IsTruncated,
		Preview:      outcome.Preview,
	}
}

func collectionDetails(ec *csvimport.ErrorCollection) []bulk.ImportErrorDetail {
	rowErrors := ec.Errors()
	details := make([]bulk.ImportErrorDetail, 0, len(rowErrors))
	for _, re := range rowErrors {
		details = append(details, bulk.ImportErrorDetail{
			Row:     re.Row,
			Column:  re.Column,
			Code:    re.Code,
			Message: re.Message,
			Value:   re.Value,
		})
	}
	return details
}

func rowDetail(line int, err error) bulk.ImportErrorDetail {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return bulk.ImportErrorDetail{Row: line, Code: domainErr.Code, Message: domainErr.Message}
	}
	return bulk.ImportErrorDetail{Row: line, Code: "ERR_IMPORT_APPLY", Message: err.Error()}
}
