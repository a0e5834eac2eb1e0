package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers

func createTestRole(t *testing.T) *Role {
	role, err := NewRole("TEST_ROLE", "Test Role")
	require.NoError(t, err)
	require.NotNil(t, role)
	return role
}

func createTestSystemRole(t *testing.T) *Role {
	role, err := NewSystemRole("ADMIN", "Administrator")
	require.NoError(t, err)
	require.NotNil(t, role)
	return role
}

// Permission Value Object Tests

func TestNewPermission(t *testing.T) {
	tests := []struct {
		name        string
		resource    string
		action      string
		wantErr     bool
		errContains string
	}{
		{
			name:     "valid permission",
			resource: "employee",
			action:   "create",
			wantErr:  false,
		},
		{
			name:     "valid permission with underscore",
			resource: "job_description",
			action:   "approve",
			wantErr:  false,
		},
		{
			name:        "empty resource",
			resource:    "",
			action:      "create",
			wantErr:     true,
			errContains: "resource cannot be empty",
		},
		{
			name:        "empty action",
			resource:    "employee",
			action:      "",
			wantErr:     true,
			errContains: "action cannot be empty",
		},
		{
			name:        "resource starting with number",
			resource:    "1employee",
			action:      "create",
			wantErr:     true,
			errContains: "must start with a letter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perm, err := NewPermission(tt.resource, tt.action)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				assert.Nil(t, perm)
			} else {
				require.NoError(t, err)
				require.NotNil(t, perm)
				assert.Equal(t, tt.resource+":"+tt.action, perm.Code)
			}
		})
	}
}

func TestNewPermissionFromCode(t *testing.T) {
	perm, err := NewPermissionFromCode("asset:checkout")
	require.NoError(t, err)
	assert.Equal(t, "asset", perm.Resource)
	assert.Equal(t, "checkout", perm.Action)

	_, err = NewPermissionFromCode("no-colon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resource:action")
}

// DataScope Value Object Tests

func TestNewDataScope(t *testing.T) {
	ds, err := NewDataScope("employee", DataScopeDepartment)
	require.NoError(t, err)
	assert.Equal(t, "employee", ds.Resource)
	assert.Equal(t, DataScopeDepartment, ds.ScopeType)

	_, err = NewDataScope("employee", DataScopeType("bogus"))
	require.Error(t, err)
}

func TestNewCustomDataScope(t *testing.T) {
	_, err := NewCustomDataScope("employee", nil)
	require.Error(t, err)

	ds, err := NewCustomDataScope("employee", []string{"dept-1", "dept-2"})
	require.NoError(t, err)
	assert.Equal(t, DataScopeCustom, ds.ScopeType)
	assert.Len(t, ds.ScopeValues, 2)
}

// Role Aggregate Tests

func TestNewRole(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		roleName string
		wantErr  bool
	}{
		{name: "valid role", code: "HR", roleName: "Human Resources", wantErr: false},
		{name: "code normalized to uppercase", code: "line_manager", roleName: "Line Manager", wantErr: false},
		{name: "empty code", code: "", roleName: "Role", wantErr: true},
		{name: "code too short", code: "A", roleName: "Role", wantErr: true},
		{name: "code with hyphen", code: "HR-ADMIN", roleName: "Role", wantErr: true},
		{name: "empty name", code: "HR", roleName: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := NewRole(tt.code, tt.roleName)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.True(t, role.IsEnabled)
				assert.False(t, role.IsSystemRole)
				assert.Len(t, role.GetDomainEvents(), 1)
			}
		})
	}
}

func TestRole_PermissionManagement(t *testing.T) {
	role := createTestRole(t)
	perm, err := NewPermission("employee", "read")
	require.NoError(t, err)

	t.Run("grant permission", func(t *testing.T) {
		err := role.GrantPermission(*perm)
		require.NoError(t, err)
		assert.True(t, role.HasPermission("employee:read"))
		assert.True(t, role.HasPermissionForResource("employee"))
	})

	t.Run("grant duplicate permission", func(t *testing.T) {
		err := role.GrantPermission(*perm)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already has this permission")
	})

	t.Run("grant by code", func(t *testing.T) {
		err := role.GrantPermissionByCode("training:assign")
		require.NoError(t, err)
		assert.True(t, role.HasPermission("training:assign"))
	})

	t.Run("revoke permission", func(t *testing.T) {
		err := role.RevokePermission("employee:read")
		require.NoError(t, err)
		assert.False(t, role.HasPermission("employee:read"))
	})

	t.Run("revoke missing permission", func(t *testing.T) {
		err := role.RevokePermission("asset:delete")
		require.Error(t, err)
	})
}

func TestRole_SetPermissions_Deduplicates(t *testing.T) {
	role := createTestRole(t)
	p1, _ := NewPermission("employee", "read")
	p2, _ := NewPermission("employee", "update")

	err := role.SetPermissions([]Permission{*p1, *p2, *p1})
	require.NoError(t, err)
	assert.Len(t, role.Permissions, 2)
}

func TestRole_DataScopeManagement(t *testing.T) {
	role := createTestRole(t)

	ds, err := NewDataScope("employee", DataScopeDepartment)
	require.NoError(t, err)

	err = role.SetDataScope(*ds)
	require.NoError(t, err)
	got := role.GetDataScope("employee")
	require.NotNil(t, got)
	assert.Equal(t, DataScopeDepartment, got.ScopeType)

	// Replacing for the same resource keeps one scope
	ds2, err := NewDataScope("employee", DataScopeSelf)
	require.NoError(t, err)
	err = role.SetDataScope(*ds2)
	require.NoError(t, err)
	assert.Len(t, role.DataScopes, 1)
	assert.Equal(t, DataScopeSelf, role.GetDataScope("employee").ScopeType)

	err = role.RemoveDataScope("employee")
	require.NoError(t, err)
	assert.Nil(t, role.GetDataScope("employee"))

	err = role.RemoveDataScope("employee")
	require.Error(t, err)
}

func TestRole_EnableDisable(t *testing.T) {
	role := createTestRole(t)

	err := role.Enable()
	require.Error(t, err) // Already enabled

	err = role.Disable()
	require.NoError(t, err)
	assert.False(t, role.IsEnabled)

	err = role.Enable()
	require.NoError(t, err)
	assert.True(t, role.IsEnabled)
}

func TestRole_CanDelete(t *testing.T) {
	role := createTestRole(t)
	assert.True(t, role.CanDelete())

	sysRole := createTestSystemRole(t)
	assert.False(t, sysRole.CanDelete())
}
