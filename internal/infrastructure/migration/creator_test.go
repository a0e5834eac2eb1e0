package migration

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Training Tables")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(mf.UpPath, "_add_training_tables.up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, "_add_training_tables.down.sql"))
	assert.Len(t, mf.Version, 14)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "Add Training Tables")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "rollback")
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Add Training Tables", "add_training_tables"},
		{"fix--weird  spacing_", "fix_weird_spacing"},
		{"UPPER case 42", "upper_case_42"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.in), tt.in)
	}
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	_, err := CreateMigration(dir, "first")
	require.NoError(t, err)

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	require.Len(t, migrations, 1)
	assert.True(t, strings.HasSuffix(migrations[0], "_first"))

	empty, err := ListMigrations(dir + "/missing")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
