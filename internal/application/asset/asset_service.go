package asset

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/asset"
	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/shared"
)

// DefaultLowStockThreshold is used when no threshold is configured.
const DefaultLowStockThreshold = 5

// AssetService handles asset batch and assignment operations
type AssetService struct {
	batchRepo         asset.AssetBatchRepository
	assignmentRepo    asset.AssetAssignmentRepository
	employeeRepo      employee.EmployeeRepository
	txScope           TransactionScope
	lowStockThreshold int
}

// NewAssetService creates a new AssetService
func NewAssetService(
	batchRepo asset.AssetBatchRepository,
	assignmentRepo asset.AssetAssignmentRepository,
	employeeRepo employee.EmployeeRepository,
	txScope TransactionScope,
) *AssetService {
	return &AssetService{
		batchRepo:         batchRepo,
		assignmentRepo:    assignmentRepo,
		employeeRepo:      employeeRepo,
		txScope:           txScope,
		lowStockThreshold: DefaultLowStockThreshold,
	}
}

// SetLowStockThreshold sets the available-quantity threshold for low stock reporting
func (s *AssetService) SetLowStockThreshold(threshold int) {
	if threshold > 0 {
		s.lowStockThreshold = threshold
	}
}

// CreateBatch creates a new asset batch
func (s *AssetService) CreateBatch(ctx context.Context, req CreateBatchRequest) (*BatchResponse, error) {
	category, err := parseCategory(req.Category)
	if err != nil {
		return nil, err
	}

	batch, err := asset.NewAssetBatch(req.Name, category, req.InitialQuantity)
	if err != nil {
		return nil, err
	}

	if req.SerialPrefix != "" || req.Description != "" {
		if err := batch.SetDetails(req.Name, req.SerialPrefix, req.Description); err != nil {
			return nil, err
		}
	}
	if req.UnitCostCents > 0 {
		if err := batch.SetUnitCost(req.UnitCostCents); err != nil {
			return nil, err
		}
	}
	batch.PurchasedAt = req.PurchasedAt

	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return nil, err
	}

	response := ToBatchResponse(batch)
	return &response, nil
}

// GetBatch retrieves a batch by ID
func (s *AssetService) GetBatch(ctx context.Context, id uuid.UUID) (*BatchResponse, error) {
	batch, err := s.batchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToBatchResponse(batch)
	return &response, nil
}

// ListBatches retrieves batches matching the filter
func (s *AssetService) ListBatches(ctx context.Context, filter BatchListFilter) (*shared.Paginated[BatchResponse], error) {
	domainFilter := asset.NewBatchFilter().
		WithKeyword(filter.Keyword).
		WithPagination(filter.Page, filter.PageSize)

	if filter.Category != "" {
		category, err := parseCategory(filter.Category)
		if err != nil {
			return nil, err
		}
		domainFilter = domainFilter.WithCategory(category)
	}
	if filter.IsActive != nil {
		domainFilter = domainFilter.WithActive(*filter.IsActive)
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}

	page, err := s.batchRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]BatchResponse, 0, len(page.Items))
	for _, b := range page.Items {
		items = append(items, ToBatchResponse(b))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// UpdateBatch updates batch details
func (s *AssetService) UpdateBatch(ctx context.Context, id uuid.UUID, req UpdateBatchRequest) (*BatchResponse, error) {
	batch, err := s.batchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := batch.SetDetails(req.Name, req.SerialPrefix, req.Description); err != nil {
		return nil, err
	}
	if err := batch.SetUnitCost(req.UnitCostCents); err != nil {
		return nil, err
	}

	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return nil, err
	}

	response := ToBatchResponse(batch)
	return &response, nil
}

// Restock raises the batch's initial quantity by adding available units
func (s *AssetService) Restock(ctx context.Context, id uuid.UUID, req QuantityRequest) (*BatchResponse, error) {
	return s.mutateBatch(ctx, id, func(b *asset.AssetBatch) error {
		return b.Restock(req.Quantity)
	})
}

// MarkOutOfStock writes off available units
func (s *AssetService) MarkOutOfStock(ctx context.Context, id uuid.UUID, req QuantityRequest) (*BatchResponse, error) {
	return s.mutateBatch(ctx, id, func(b *asset.AssetBatch) error {
		return b.MarkOutOfStock(req.Quantity)
	})
}

// RestoreFromOutOfStock returns written-off units to circulation
func (s *AssetService) RestoreFromOutOfStock(ctx context.Context, id uuid.UUID, req QuantityRequest) (*BatchResponse, error) {
	return s.mutateBatch(ctx, id, func(b *asset.AssetBatch) error {
		return b.RestoreFromOutOfStock(req.Quantity)
	})
}

// DeactivateBatch retires a batch from new checkouts
func (s *AssetService) DeactivateBatch(ctx context.Context, id uuid.UUID) (*BatchResponse, error) {
	return s.mutateBatch(ctx, id, func(b *asset.AssetBatch) error {
		return b.Deactivate()
	})
}

// ActivateBatch returns a batch to active status
func (s *AssetService) ActivateBatch(ctx context.Context, id uuid.UUID) (*BatchResponse, error) {
	return s.mutateBatch(ctx, id, func(b *asset.AssetBatch) error {
		return b.Activate()
	})
}

// DeleteBatch removes a batch. Batches with open assignments cannot be deleted.
func (s *AssetService) DeleteBatch(ctx context.Context, id uuid.UUID) error {
	if _, err := s.batchRepo.FindByID(ctx, id); err != nil {
		return err
	}

	open, err := s.assignmentRepo.CountOpenByBatch(ctx, id)
	if err != nil {
		return err
	}
	if open > 0 {
		return shared.NewDomainError("BATCH_HAS_ASSIGNMENTS", "Cannot delete a batch with open assignments")
	}

	return s.batchRepo.Delete(ctx, id)
}

// Checkout assigns units of a batch to an employee. The batch counters
// and the assignment record change in one transaction; the batch row is
// locked so concurrent checkouts cannot oversubscribe available units.
func (s *AssetService) Checkout(ctx context.Context, req CheckoutRequest) (*AssignmentResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_EMPLOYEE_ID", "Employee not found")
		}
		return nil, err
	}
	if !emp.CanReceiveAssignments() {
		return nil, shared.ErrEmployeeTerminated
	}

	var assignment *asset.AssetAssignment
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		batch, err := repos.BatchRepo().FindByIDForUpdate(ctx, req.BatchID)
		if err != nil {
			return err
		}
		if !batch.IsActive {
			return shared.NewDomainError("BATCH_INACTIVE", "Cannot check out from an inactive batch")
		}

		if err := batch.AssignQuantity(req.Quantity); err != nil {
			return err
		}

		assignment, err = asset.NewAssetAssignment(req.BatchID, req.EmployeeID, req.Quantity, req.Note)
		if err != nil {
			return err
		}

		if err := repos.BatchRepo().Save(ctx, batch); err != nil {
			return err
		}
		return repos.AssignmentRepo().Save(ctx, assignment)
	})
	if err != nil {
		return nil, err
	}

	response := ToAssignmentResponse(assignment)
	return &response, nil
}

// Accept marks the assignment as accepted by the assigned employee
func (s *AssetService) Accept(ctx context.Context, assignmentID, actorEmployeeID uuid.UUID) (*AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.EmployeeID != actorEmployeeID {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the assigned employee can accept the checkout")
	}

	if err := assignment.Accept(); err != nil {
		return nil, err
	}
	if err := s.assignmentRepo.Save(ctx, assignment); err != nil {
		return nil, err
	}

	response := ToAssignmentResponse(assignment)
	return &response, nil
}

// Dispute marks the assignment as disputed by the assigned employee
func (s *AssetService) Dispute(ctx context.Context, assignmentID, actorEmployeeID uuid.UUID, req DisputeRequest) (*AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.EmployeeID != actorEmployeeID {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the assigned employee can dispute the checkout")
	}

	if err := assignment.Dispute(req.Comment); err != nil {
		return nil, err
	}
	if err := s.assignmentRepo.Save(ctx, assignment); err != nil {
		return nil, err
	}

	response := ToAssignmentResponse(assignment)
	return &response, nil
}

// CheckIn returns the assignment's units to the batch. Damaged units go
// to out-of-stock; the assignment and the batch change atomically.
func (s *AssetService) CheckIn(ctx context.Context, assignmentID uuid.UUID, req CheckinRequest) (*AssignmentResponse, error) {
	condition := asset.ReturnCondition(strings.ToUpper(req.Condition))

	var assignment *asset.AssetAssignment
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		assignment, err = repos.AssignmentRepo().FindByID(ctx, assignmentID)
		if err != nil {
			return err
		}

		batch, err := repos.BatchRepo().FindByIDForUpdate(ctx, assignment.BatchID)
		if err != nil {
			return err
		}

		if err := assignment.Return(condition); err != nil {
			return err
		}
		if err := batch.ReturnQuantity(assignment.Quantity, assignment.IsDamagedReturn()); err != nil {
			return err
		}

		if err := repos.AssignmentRepo().Save(ctx, assignment); err != nil {
			return err
		}
		return repos.BatchRepo().Save(ctx, batch)
	})
	if err != nil {
		return nil, err
	}

	response := ToAssignmentResponse(assignment)
	return &response, nil
}

// GetAssignment retrieves an assignment by ID
func (s *AssetService) GetAssignment(ctx context.Context, id uuid.UUID) (*AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToAssignmentResponse(assignment)
	return &response, nil
}

// ListAssignments retrieves assignments matching the filter
func (s *AssetService) ListAssignments(ctx context.Context, filter AssignmentListFilter) (*shared.Paginated[AssignmentResponse], error) {
	domainFilter := asset.NewAssignmentFilter().
		WithPagination(filter.Page, filter.PageSize)

	if filter.BatchID != nil {
		domainFilter = domainFilter.WithBatchID(*filter.BatchID)
	}
	if filter.EmployeeID != nil {
		domainFilter = domainFilter.WithEmployeeID(*filter.EmployeeID)
	}
	if filter.Status != "" {
		domainFilter = domainFilter.WithStatus(asset.AssignmentStatus(filter.Status))
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}

	page, err := s.assignmentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]AssignmentResponse, 0, len(page.Items))
	for _, a := range page.Items {
		items = append(items, ToAssignmentResponse(a))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// EmployeeHistory lists the open assignments of an employee
func (s *AssetService) EmployeeHistory(ctx context.Context, employeeID uuid.UUID) ([]AssignmentResponse, error) {
	assignments, err := s.assignmentRepo.FindOpenByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	items := make([]AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		items = append(items, ToAssignmentResponse(a))
	}
	return items, nil
}

// ListLowStock lists active batches at or below the low stock threshold
func (s *AssetService) ListLowStock(ctx context.Context) ([]BatchResponse, error) {
	batches, err := s.batchRepo.FindLowStock(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, err
	}

	items := make([]BatchResponse, 0, len(batches))
	for _, b := range batches {
		items = append(items, ToBatchResponse(b))
	}
	return items, nil
}

// ScanLowStock counts batches at or below the low stock threshold.
// It backs the scheduled low stock scan job.
func (s *AssetService) ScanLowStock(ctx context.Context) (int, error) {
	batches, err := s.batchRepo.FindLowStock(ctx, s.lowStockThreshold)
	if err != nil {
		return 0, err
	}
	return len(batches), nil
}

// GetLowStockBatchCount reports the low stock gauge value
func (s *AssetService) GetLowStockBatchCount(ctx context.Context) (int64, error) {
	n, err := s.ScanLowStock(ctx)
	return int64(n), err
}

func (s *AssetService) mutateBatch(ctx context.Context, id uuid.UUID, mutate func(*asset.AssetBatch) error) (*BatchResponse, error) {
	var batch *asset.AssetBatch
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		batch, err = repos.BatchRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := mutate(batch); err != nil {
			return err
		}
		return repos.BatchRepo().Save(ctx, batch)
	})
	if err != nil {
		return nil, err
	}

	response := ToBatchResponse(batch)
	return &response, nil
}

func parseCategory(raw string) (asset.AssetCategory, error) {
	category := asset.AssetCategory(strings.ToUpper(strings.TrimSpace(raw)))
	if !category.IsValid() {
		return "", shared.NewDomainError("INVALID_ASSET_CATEGORY", "Unknown asset category: "+raw)
	}
	return category, nil
}
