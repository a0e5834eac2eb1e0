package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/bulk"
)

// ImportHistoryModel is the persistence model for the ImportHistory domain entity.
type ImportHistoryModel struct {
	AggregateModel
	EntityType   bulk.ImportEntityType `gorm:"type:varchar(30);not null;index"`
	FileName     string                `gorm:"type:varchar(255);not null"`
	FileSize     int64                 `gorm:"not null;default:0"`
	TotalRows    int                   `gorm:"not null;default:0"`
	SuccessRows  int                   `gorm:"not null;default:0"`
	ErrorRows    int                   `gorm:"not null;default:0"`
	SkippedRows  int                   `gorm:"not null;default:0"`
	UpdatedRows  int                   `gorm:"not null;default:0"`
	ConflictMode bulk.ConflictMode     `gorm:"type:varchar(20);not null;default:'skip'"`
	Status       bulk.ImportStatus     `gorm:"type:varchar(20);not null;default:'pending';index"`
	ErrorDetails string                `gorm:"type:jsonb;default:'[]'"`
	ImportedBy   *uuid.UUID            `gorm:"type:uuid;index"`
	StartedAt    *time.Time            `gorm:"type:timestamptz"`
	CompletedAt  *time.Time            `gorm:"type:timestamptz"`
}

// TableName returns the table name for GORM
func (ImportHistoryModel) TableName() string {
	return "import_histories"
}

// ToDomain converts the persistence model to a domain ImportHistory entity.
func (m *ImportHistoryModel) ToDomain() (*bulk.ImportHistory, error) {
	history := &bulk.ImportHistory{
		EntityType:   m.EntityType,
		FileName:     m.FileName,
		FileSize:     m.FileSize,
		TotalRows:    m.TotalRows,
		SuccessRows:  m.SuccessRows,
		ErrorRows:    m.ErrorRows,
		SkippedRows:  m.SkippedRows,
		UpdatedRows:  m.UpdatedRows,
		ConflictMode: m.ConflictMode,
		Status:       m.Status,
		ImportedBy:   m.ImportedBy,
		StartedAt:    m.StartedAt,
		CompletedAt:  m.CompletedAt,
	}
	m.PopulateAggregateRoot(&history.BaseAggregateRoot)

	if err := history.SetErrorDetailsFromJSON(m.ErrorDetails); err != nil {
		return nil, err
	}
	return history, nil
}

// FromDomain populates the persistence model from a domain ImportHistory entity.
func (m *ImportHistoryModel) FromDomain(h *bulk.ImportHistory) error {
	m.FromDomainAggregateRoot(h.BaseAggregateRoot)
	m.EntityType = h.EntityType
	m.FileName = h.FileName
	m.FileSize = h.FileSize
	m.TotalRows = h.TotalRows
	m.SuccessRows = h.SuccessRows
	m.ErrorRows = h.ErrorRows
	m.SkippedRows = h.SkippedRows
	m.UpdatedRows = h.UpdatedRows
	m.ConflictMode = h.ConflictMode
	m.Status = h.Status
	m.ImportedBy = h.ImportedBy
	m.StartedAt = h.StartedAt
	m.CompletedAt = h.CompletedAt

	errorJSON, err := h.ErrorDetailsJSON()
	if err != nil {
		return err
	}
	m.ErrorDetails = errorJSON
	return nil
}

// ImportHistoryModelFromDomain creates a new persistence model from a domain ImportHistory entity.
func ImportHistoryModelFromDomain(h *bulk.ImportHistory) (*ImportHistoryModel, error) {
	m := &ImportHistoryModel{}
	if err := m.FromDomain(h); err != nil {
		return nil, err
	}
	return m, nil
}
