package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AssetType classifies tenant media records.
type AssetType string

const (
	AssetTypeImage AssetType = "image"
	AssetTypeVideo AssetType = "video"
	AssetTypeFont  AssetType = "font"
	AssetTypeOther AssetType = "other"
)

// Asset is a tenant-scoped media record. FilePath may carry a storage
// prefix; serving strips it down to the bare filename.
type Asset struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID   uuid.UUID      `json:"tenantId" gorm:"type:uuid;not null;index"`
	FilePath   string         `json:"file_path" gorm:"not null"`
	FileName   string         `json:"file_name" gorm:"not null;index"`
	AssetType  AssetType      `json:"asset_type" gorm:"type:varchar(20);not null;default:'image'"`
	MimeType   string         `json:"mime_type" gorm:"size:100"`
	SizeBytes  int64          `json:"size_bytes"`
	Optimized  bool           `json:"optimized" gorm:"default:false"`
	UsageCount int            `json:"usage_count" gorm:"default:0"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
	CreatedBy  *uuid.UUID     `json:"created_by,omitempty" gorm:"type:uuid"`
}

// Banner is a scheduled promotional image with an explicit display order.
// DisplayOrder is a dense 1-based sequence unique per tenant.
type Banner struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID     uuid.UUID      `json:"tenantId" gorm:"type:uuid;not null;index"`
	AssetID      *uuid.UUID     `json:"assetId,omitempty" gorm:"type:uuid"`
	Title        string         `json:"title" gorm:"size:255;not null"`
	ImageURL     string         `json:"image_url" gorm:"not null"`
	LinkURL      string         `json:"link_url,omitempty"`
	StartsAt     *time.Time     `json:"starts_at,omitempty"`
	EndsAt       *time.Time     `json:"ends_at,omitempty"`
	AudienceTags datatypes.JSON `json:"audience_tags,omitempty" gorm:"type:jsonb;default:'[]'"`
	DisplayOrder int            `json:"display_order" gorm:"not null;default:1"`
	Active       bool           `json:"active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
	CreatedBy    *uuid.UUID     `json:"created_by,omitempty" gorm:"type:uuid"`
	UpdatedBy    *uuid.UUID     `json:"updated_by,omitempty" gorm:"type:uuid"`
}

// LogoType identifies the slot a logo occupies.
type LogoType string

const (
	LogoTypePrimary LogoType = "primary"
	LogoTypeFavicon LogoType = "favicon"
	LogoTypeEmail   LogoType = "email"
	LogoTypeMobile  LogoType = "mobile"
)

// Logo is a scheduled image bound to a logo-type slot.
type Logo struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID  uuid.UUID      `json:"tenantId" gorm:"type:uuid;not null;index"`
	AssetID   *uuid.UUID     `json:"assetId,omitempty" gorm:"type:uuid"`
	ImageURL  string         `json:"image_url" gorm:"not null"`
	LogoType  LogoType       `json:"logo_type" gorm:"type:varchar(20);not null;default:'primary'"`
	StartsAt  *time.Time     `json:"starts_at,omitempty"`
	EndsAt    *time.Time     `json:"ends_at,omitempty"`
	Active    bool           `json:"active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	CreatedBy *uuid.UUID     `json:"created_by,omitempty" gorm:"type:uuid"`
	UpdatedBy *uuid.UUID     `json:"updated_by,omitempty" gorm:"type:uuid"`
}

// CreateBannerRequest creates a new banner at the end of the ordering.
type CreateBannerRequest struct {
	Title        string     `json:"title" binding:"required"`
	ImageURL     string     `json:"image_url" binding:"required"`
	LinkURL      string     `json:"link_url,omitempty"`
	AssetID      *uuid.UUID `json:"assetId,omitempty"`
	StartsAt     *time.Time `json:"starts_at,omitempty"`
	EndsAt       *time.Time `json:"ends_at,omitempty"`
	AudienceTags []string   `json:"audience_tags,omitempty"`
	Active       *bool      `json:"active,omitempty"`
}

// UpdateBannerRequest partially updates a banner.
type UpdateBannerRequest struct {
	Title        *string    `json:"title,omitempty"`
	ImageURL     *string    `json:"image_url,omitempty"`
	LinkURL      *string    `json:"link_url,omitempty"`
	AssetID      *uuid.UUID `json:"assetId,omitempty"`
	StartsAt     *time.Time `json:"starts_at,omitempty"`
	EndsAt       *time.Time `json:"ends_at,omitempty"`
	AudienceTags []string   `json:"audience_tags,omitempty"`
	Active       *bool      `json:"active,omitempty"`
}

// ReorderBannersRequest moves the banner at SourceIndex to
// DestinationIndex within the tenant's ordering.
type ReorderBannersRequest struct {
	SourceIndex      int `json:"sourceIndex"`
	DestinationIndex int `json:"destinationIndex"`
}

// CreateLogoRequest creates a logo for a slot.
type CreateLogoRequest struct {
	ImageURL string     `json:"image_url" binding:"required"`
	LogoType LogoType   `json:"logo_type" binding:"required"`
	AssetID  *uuid.UUID `json:"assetId,omitempty"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
}

// UpdateLogoRequest partially updates a logo.
type UpdateLogoRequest struct {
	ImageURL *string    `json:"image_url,omitempty"`
	LogoType *LogoType  `json:"logo_type,omitempty"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
	Active   *bool      `json:"active,omitempty"`
}

// CreateAssetRequest registers an uploaded file.
type CreateAssetRequest struct {
	FilePath  string    `json:"file_path" binding:"required"`
	AssetType AssetType `json:"asset_type,omitempty"`
	MimeType  string    `json:"mime_type,omitempty"`
	SizeBytes int64     `json:"size_bytes,omitempty"`
}

// BannerListResponse is the API envelope for banner listings.
type BannerListResponse struct {
	Success bool     `json:"success"`
	Items   []Banner `json:"items"`
	Total   int64    `json:"total"`
	Message string   `json:"message,omitempty"`
}

// LogoListResponse is the API envelope for logo listings.
type LogoListResponse struct {
	Success bool   `json:"success"`
	Items   []Logo `json:"items"`
	Total   int64  `json:"total"`
	Message string `json:"message,omitempty"`
}

// AssetListResponse is the API envelope for asset listings.
type AssetListResponse struct {
	Success bool    `json:"success"`
	Items   []Asset `json:"items"`
	Total   int64   `json:"total"`
	Message string  `json:"message,omitempty"`
}
