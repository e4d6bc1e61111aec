package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ConfigurationVersion is an immutable snapshot created when a draft is
// published. Versions are never mutated or deleted; restore seeds a new
// draft from the snapshot instead of rewinding history.
type ConfigurationVersion struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ConfigurationID uuid.UUID      `json:"configurationId" gorm:"type:uuid;not null;uniqueIndex:idx_config_version_number"`
	TenantID        uuid.UUID      `json:"tenantId" gorm:"type:uuid;not null;index"`
	VersionNumber   int            `json:"versionNumber" gorm:"not null;uniqueIndex:idx_config_version_number"`
	ChangeSummary   string         `json:"changeSummary" gorm:"size:512"`
	Description     string         `json:"description,omitempty" gorm:"type:text"`
	Tags            datatypes.JSON `json:"tags,omitempty" gorm:"type:jsonb;default:'[]'"`
	Snapshot        datatypes.JSON `json:"configurationSnapshot" gorm:"type:jsonb;not null"`
	DraftID         *uuid.UUID     `json:"draftId,omitempty" gorm:"type:uuid;index"`
	CreatedAt       time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	CreatedBy       *uuid.UUID     `json:"createdBy,omitempty" gorm:"type:uuid"`
}

// TableName specifies the table name for ConfigurationVersion
func (ConfigurationVersion) TableName() string {
	return "configuration_versions"
}

// VersionListFilter carries the server-side filters for version listings.
// Search and date-range filtering run in the SQL query, not on the
// current page of results.
type VersionListFilter struct {
	Tag           string
	Search        string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Offset        int
	Limit         int
}

// DiffType classifies a single difference between two snapshots.
type DiffType string

const (
	DiffAdded   DiffType = "added"
	DiffRemoved DiffType = "removed"
	DiffChanged DiffType = "changed"
)

// DiffEntry describes one path-level difference between two snapshots.
type DiffEntry struct {
	Type     DiffType    `json:"type"`
	Value    interface{} `json:"value,omitempty"`
	OldValue interface{} `json:"oldValue,omitempty"`
	NewValue interface{} `json:"newValue,omitempty"`
}

// VersionComparison is the result of comparing two versions. Identical is
// set explicitly so an empty difference map is unambiguous.
type VersionComparison struct {
	FromVersion int                  `json:"fromVersion"`
	ToVersion   int                  `json:"toVersion"`
	Identical   bool                 `json:"identical"`
	Differences map[string]DiffEntry `json:"differences"`
}

// VersionResponse is the API envelope for a single version.
type VersionResponse struct {
	Success bool                  `json:"success"`
	Data    *ConfigurationVersion `json:"data,omitempty"`
	Message string                `json:"message,omitempty"`
}

// VersionListResponse is the API envelope for version listings.
type VersionListResponse struct {
	Success bool                   `json:"success"`
	Items   []ConfigurationVersion `json:"items"`
	Total   int64                  `json:"total"`
	Message string                 `json:"message,omitempty"`
}

// VersionCompareResponse is the API envelope for version comparisons.
type VersionCompareResponse struct {
	Success bool               `json:"success"`
	Data    *VersionComparison `json:"data,omitempty"`
	Message string             `json:"message,omitempty"`
}
