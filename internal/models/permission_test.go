package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleAllows(t *testing.T) {
	cases := []struct {
		role    Role
		action  Action
		allowed bool
	}{
		{RoleViewer, ActionView, true},
		{RoleViewer, ActionEdit, false},
		{RoleViewer, ActionPublish, false},
		{RoleViewer, ActionManageAssets, false},
		{RoleViewer, ActionManagePermissions, false},

		{RoleEditor, ActionView, true},
		{RoleEditor, ActionEdit, true},
		{RoleEditor, ActionManageAssets, true},
		{RoleEditor, ActionPublish, false},
		{RoleEditor, ActionManagePermissions, false},

		{RolePublisher, ActionView, true},
		{RolePublisher, ActionEdit, true},
		{RolePublisher, ActionPublish, true},
		{RolePublisher, ActionManageAssets, true},
		{RolePublisher, ActionManagePermissions, false},

		{RoleAdmin, ActionView, true},
		{RoleAdmin, ActionEdit, true},
		{RoleAdmin, ActionPublish, true},
		{RoleAdmin, ActionManageAssets, true},
		{RoleAdmin, ActionManagePermissions, true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, RoleAllows(tc.role, tc.action), "%s / %s", tc.role, tc.action)
	}
}

func TestRoleAllows_UnknownRolePermitsNothing(t *testing.T) {
	for _, action := range []Action{ActionView, ActionEdit, ActionPublish, ActionManageAssets, ActionManagePermissions} {
		assert.False(t, RoleAllows(Role("superuser"), action))
		assert.False(t, RoleAllows(Role(""), action))
	}
}

func TestRoleIsValid(t *testing.T) {
	for _, role := range []Role{RoleViewer, RoleEditor, RolePublisher, RoleAdmin} {
		assert.True(t, role.IsValid())
	}
	assert.False(t, Role("owner").IsValid())
	assert.False(t, Role("").IsValid())
}
