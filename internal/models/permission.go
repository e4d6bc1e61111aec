package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Role is the per-tenant role assigned to a user.
type Role string

const (
	RoleViewer    Role = "viewer"
	RoleEditor    Role = "editor"
	RolePublisher Role = "publisher"
	RoleAdmin     Role = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleViewer, RoleEditor, RolePublisher, RoleAdmin:
		return true
	}
	return false
}

// Action is an operation a role may or may not perform.
type Action string

const (
	ActionView              Action = "view"
	ActionEdit              Action = "edit"
	ActionPublish           Action = "publish"
	ActionManageAssets      Action = "manage_assets"
	ActionManagePermissions Action = "manage_permissions"
)

// roleActions is the single source of truth for the role -> allowed
// actions contract. Higher roles are supersets of lower ones.
var roleActions = map[Role]map[Action]bool{
	RoleViewer: {
		ActionView: true,
	},
	RoleEditor: {
		ActionView:         true,
		ActionEdit:         true,
		ActionManageAssets: true,
	},
	RolePublisher: {
		ActionView:         true,
		ActionEdit:         true,
		ActionPublish:      true,
		ActionManageAssets: true,
	},
	RoleAdmin: {
		ActionView:              true,
		ActionEdit:              true,
		ActionPublish:           true,
		ActionManageAssets:      true,
		ActionManagePermissions: true,
	},
}

// RoleAllows reports whether the role permits the action. Unknown roles
// permit nothing.
func RoleAllows(role Role, action Action) bool {
	return roleActions[role][action]
}

// UserPermission is a per-tenant role assignment with optional
// fine-grained section/component overrides.
type UserPermission struct {
	ID                 uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID           uuid.UUID      `json:"tenantId" gorm:"type:uuid;not null;uniqueIndex:idx_tenant_user_permission"`
	UserID             uuid.UUID      `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_tenant_user_permission"`
	Role               Role           `json:"role" gorm:"type:varchar(20);not null;default:'viewer'"`
	SectionOverrides   datatypes.JSON `json:"sectionOverrides,omitempty" gorm:"type:jsonb;default:'{}'"`
	ComponentOverrides datatypes.JSON `json:"componentOverrides,omitempty" gorm:"type:jsonb;default:'{}'"`
	CreatedAt          time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt          time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
	DeletedAt          gorm.DeletedAt `json:"-" gorm:"index"`
	GrantedBy          *uuid.UUID     `json:"grantedBy,omitempty" gorm:"type:uuid"`
}

// CreatePermissionRequest assigns a role to a user within a tenant.
type CreatePermissionRequest struct {
	UserID             uuid.UUID       `json:"userId" binding:"required"`
	Role               Role            `json:"role" binding:"required"`
	SectionOverrides   map[string]bool `json:"sectionOverrides,omitempty"`
	ComponentOverrides map[string]bool `json:"componentOverrides,omitempty"`
}

// UpdatePermissionRequest changes a user's role or overrides.
type UpdatePermissionRequest struct {
	Role               *Role           `json:"role,omitempty"`
	SectionOverrides   map[string]bool `json:"sectionOverrides,omitempty"`
	ComponentOverrides map[string]bool `json:"componentOverrides,omitempty"`
}

// PermissionResponse is the API envelope for a single permission.
type PermissionResponse struct {
	Success bool            `json:"success"`
	Data    *UserPermission `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// PermissionListResponse is the API envelope for permission listings.
type PermissionListResponse struct {
	Success bool             `json:"success"`
	Items   []UserPermission `json:"items"`
	Total   int64            `json:"total"`
	Message string           `json:"message,omitempty"`
}
