package bulk

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImportHistory(t *testing.T) {
	importedBy := uuid.New()

	t.Run("creates pending history", func(t *testing.T) {
		h, err := NewImportHistory(ImportEntityEmployees, "employees.csv", 2048, ConflictModeSkip, importedBy)
		require.NoError(t, err)
		assert.Equal(t, ImportStatusPending, h.Status)
		assert.Equal(t, ImportEntityEmployees, h.EntityType)
		assert.Equal(t, "employees.csv", h.FileName)
		assert.Equal(t, int64(2048), h.FileSize)
		require.NotNil(t, h.ImportedBy)
		assert.Equal(t, importedBy, *h.ImportedBy)
		assert.Empty(t, h.ErrorDetails)
	})

	tests := []struct {
		name         string
		entityType   ImportEntityType
		fileName     string
		fileSize     int64
		conflictMode ConflictMode
		wantCode     string
	}{
		{"invalid entity type", "products", "f.csv", 1, ConflictModeSkip, "INVALID_ENTITY_TYPE"},
		{"empty file name", ImportEntityEmployees, "", 1, ConflictModeSkip, "INVALID_FILE_NAME"},
		{"negative file size", ImportEntityEmployees, "f.csv", -1, ConflictModeSkip, "INVALID_FILE_SIZE"},
		{"invalid conflict mode", ImportEntityEmployees, "f.csv", 1, "merge", "INVALID_CONFLICT_MODE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewImportHistory(tt.entityType, tt.fileName, tt.fileSize, tt.conflictMode, importedBy)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantCode)
		})
	}
}

func TestImportHistoryLifecycle(t *testing.T) {
	newProcessing := func(t *testing.T) *ImportHistory {
		h, err := NewImportHistory(ImportEntityAssetBatches, "batches.csv", 512, ConflictModeUpdate, uuid.New())
		require.NoError(t, err)
		require.NoError(t, h.StartProcessing(100))
		return h
	}

	t.Run("start processing sets totals and timestamp", func(t *testing.T) {
		h := newProcessing(t)
		assert.Equal(t, ImportStatusProcessing, h.Status)
		assert.Equal(t, 100, h.TotalRows)
		assert.NotNil(t, h.StartedAt)
	})

	t.Run("start processing twice fails", func(t *testing.T) {
		h := newProcessing(t)
		assert.Error(t, h.StartProcessing(100))
	})

	t.Run("complete with partial errors stays completed", func(t *testing.T) {
		h := newProcessing(t)
		details := []ImportErrorDetail{{Row: 3, Code: "INVALID_INPUT", Message: "bad email"}}
		require.NoError(t, h.Complete(95, 1, 4, 0, details))
		assert.Equal(t, ImportStatusCompleted, h.Status)
		assert.True(t, h.IsCompleted())
		assert.True(t, h.HasErrors())
		assert.NotNil(t, h.CompletedAt)
	})

	t.Run("complete with only errors fails", func(t *testing.T) {
		h := newProcessing(t)
		details := []ImportErrorDetail{{Row: 1, Code: "INVALID_INPUT", Message: "bad row"}}
		require.NoError(t, h.Complete(0, 100, 0, 0, details))
		assert.Equal(t, ImportStatusFailed, h.Status)
	})

	t.Run("cancel from terminal state fails", func(t *testing.T) {
		h := newProcessing(t)
		require.NoError(t, h.Fail(nil))
		assert.Error(t, h.Cancel())
	})
}

func TestImportHistoryErrorDetailsJSON(t *testing.T) {
	h, err := NewImportHistory(ImportEntityEmployees, "employees.csv", 10, ConflictModeFail, uuid.New())
	require.NoError(t, err)

	data, err := h.ErrorDetailsJSON()
	require.NoError(t, err)
	assert.Equal(t, "[]", data)

	h.ErrorDetails = []ImportErrorDetail{{Row: 2, Column: "code", Code: "ALREADY_EXISTS", Message: "duplicate code", Value: "EMP-0002"}}
	data, err = h.ErrorDetailsJSON()
	require.NoError(t, err)

	var restored ImportHistory
	require.NoError(t, restored.SetErrorDetailsFromJSON(data))
	require.Len(t, restored.ErrorDetails, 1)
	assert.Equal(t, h.ErrorDetails[0], restored.ErrorDetails[0])
}
