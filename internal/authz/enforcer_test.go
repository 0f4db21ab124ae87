package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostyfucker/HotelBrendle/internal/auth"
)

func TestRolePermissions(t *testing.T) {
	e, err := NewEnforcer()
	require.NoError(t, err)

	tests := []struct {
		role   auth.Role
		action string
		want   bool
	}{
		{auth.RoleAdmin, ActionExportDrive, true},
		{auth.RoleAdmin, ActionViewBudget, true},
		{auth.RoleAdmin, ActionEditTasks, true}, // inherited from staff
		{auth.RoleStaff, ActionEditTasks, true},
		{auth.RoleStaff, ActionExportDrive, false},
		{auth.RoleStaff, ActionViewBudget, false},
		{auth.RoleGuest, "view:overview", true}, // inherited by everyone
		{auth.RoleGuest, ActionEditTasks, false},
		{auth.RoleGuest, ActionExportDrive, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+" "+tt.action, func(t *testing.T) {
			assert.Equal(t, tt.want, Can(e, tt.role, tt.action))
		})
	}
}

func TestActionsForIncludesInherited(t *testing.T) {
	e, err := NewEnforcer()
	require.NoError(t, err)

	actions, err := ActionsFor(e, auth.RoleAdmin)
	require.NoError(t, err)

	assert.Contains(t, actions, ActionExportDrive)
	assert.Contains(t, actions, ActionEditTasks)
	assert.Contains(t, actions, "view:overview")
}

func TestStaticAdapterRejectsWrites(t *testing.T) {
	e, err := NewEnforcer()
	require.NoError(t, err)

	_, err = e.AddPolicy("guest", ActionExportDrive)
	assert.Error(t, err)
}
