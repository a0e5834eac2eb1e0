package bulk

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
)

// ImportHistoryRepository defines the persistence operations for import histories
type ImportHistoryRepository interface {
	Save(ctx context.Context, history *ImportHistory) error
	FindByID(ctx context.Context, id uuid.UUID) (*ImportHistory, error)
	FindAll(ctx context.Context, filter ImportHistoryFilter) (*shared.Paginated[*ImportHistory], error)
	FindPending(ctx context.Context) ([]*ImportHistory, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ImportHistoryFilter defines filtering options for import history queries
type ImportHistoryFilter struct {
	EntityType  *ImportEntityType
	Status      *ImportStatus
	ImportedBy  *uuid.UUID
	StartedFrom *time.Time
	StartedTo   *time.Time
	Page        int
	PageSize    int
	OrderBy     string
	OrderDir    string
}

// NewImportHistoryFilter creates a filter with sensible defaults
func NewImportHistoryFilter() ImportHistoryFilter {
	return ImportHistoryFilter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

// WithEntityType filters by entity type
func (f ImportHistoryFilter) WithEntityType(entityType ImportEntityType) ImportHistoryFilter {
	f.EntityType = &entityType
	return f
}

// WithStatus filters by import status
func (f ImportHistoryFilter) WithStatus(status ImportStatus) ImportHistoryFilter {
	f.Status = &status
	return f
}

// WithImportedBy filters by the importing user
func (f ImportHistoryFilter) WithImportedBy(userID uuid.UUID) ImportHistoryFilter {
	f.ImportedBy = &userID
	return f
}

// WithPagination sets pagination parameters
func (f ImportHistoryFilter) WithPagination(page, pageSize int) ImportHistoryFilter {
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 && pageSize <= 100 {
		f.PageSize = pageSize
	}
	return f
}

// Offset returns the offset for pagination
func (f ImportHistoryFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f ImportHistoryFilter) Limit() int {
	return f.PageSize
}
