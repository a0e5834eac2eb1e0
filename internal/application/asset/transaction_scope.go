package asset

import (
	"context"

	"github.com/hris/backend/internal/domain/asset"
)

// TransactionScope provides transactional access to the asset repositories.
// Checkout and check-in touch both the batch counters and the assignment
// record; running them inside one scope keeps the counter invariant safe.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the asset repositories scoped to one
// database transaction.
type TransactionalRepositories interface {
	BatchRepo() asset.AssetBatchRepository
	AssignmentRepo() asset.AssetAssignmentRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests.
type NoOpTransactionScope struct {
	batchRepo      asset.AssetBatchRepository
	assignmentRepo asset.AssetAssignmentRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories.
func NewNoOpTransactionScope(
	batchRepo asset.AssetBatchRepository,
	assignmentRepo asset.AssetAssignmentRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		batchRepo:      batchRepo,
		assignmentRepo: assignmentRepo,
	}
}

// Execute runs the function directly.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// BatchRepo returns the batch repository.
func (s *NoOpTransactionScope) BatchRepo() asset.AssetBatchRepository {
	return s.batchRepo
}

// AssignmentRepo returns the assignment repository.
func (s *NoOpTransactionScope) AssignmentRepo() asset.AssetAssignmentRepository {
	return s.assignmentRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
