package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant represents a merchant account, the unit of data isolation
// across the storefront customization system.
type Tenant struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name         string     `json:"name" gorm:"not null" validate:"required,min=2,max=255"`
	Slug         string     `json:"slug" gorm:"unique;not null;size:63" validate:"required"`
	Subdomain    string     `json:"subdomain" gorm:"unique;not null;size:63"`
	CustomDomain string     `json:"custom_domain,omitempty" gorm:"size:255"`
	ContactEmail string     `json:"contact_email" gorm:"size:255"`
	ContactPhone string     `json:"contact_phone,omitempty" gorm:"size:50"`
	OwnerUserID  *uuid.UUID `json:"owner_user_id,omitempty" gorm:"type:uuid;index"`
	Verified     bool       `json:"verified" gorm:"default:false"`
	Status       string     `json:"status" gorm:"default:'active';index" validate:"oneof=active inactive suspended"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TenantResponse is the API envelope for a single tenant.
type TenantResponse struct {
	Success bool    `json:"success"`
	Data    *Tenant `json:"data,omitempty"`
	Found   bool    `json:"found"`
	Message string  `json:"message,omitempty"`
}

// HasTenantResponse reports whether a user already owns a tenant.
// Used by the onboarding flow to decide between dashboard and setup.
type HasTenantResponse struct {
	Success   bool       `json:"success"`
	HasTenant bool       `json:"has_tenant"`
	TenantID  *uuid.UUID `json:"tenant_id,omitempty"`
}
