package persistence

import (
	"context"

	"gorm.io/gorm"

	assetapp "github.com/hris/backend/internal/application/asset"
	"github.com/hris/backend/internal/domain/asset"
)

// GormAssetTransactionScope implements the asset TransactionScope using
// GORM transactions. Checkout and check-in run their batch and
// assignment writes atomically through it.
type GormAssetTransactionScope struct {
	db *gorm.DB
}

// NewGormAssetTransactionScope creates a new GormAssetTransactionScope.
func NewGormAssetTransactionScope(db *gorm.DB) *GormAssetTransactionScope {
	return &GormAssetTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
func (s *GormAssetTransactionScope) Execute(ctx context.Context, fn func(repos assetapp.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormAssetRepositories{tx: tx})
	})
}

type gormAssetRepositories struct {
	tx *gorm.DB
}

// BatchRepo returns the batch repository scoped to the current transaction.
func (r *gormAssetRepositories) BatchRepo() asset.AssetBatchRepository {
	return NewGormAssetBatchRepository(r.tx)
}

// AssignmentRepo returns the assignment repository scoped to the current transaction.
func (r *gormAssetRepositories) AssignmentRepo() asset.AssetAssignmentRepository {
	return NewGormAssetAssignmentRepository(r.tx)
}

var _ assetapp.TransactionScope = (*GormAssetTransactionScope)(nil)
var _ assetapp.TransactionalRepositories = (*gormAssetRepositories)(nil)
