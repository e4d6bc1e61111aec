package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DraftStatus is the lifecycle state of a configuration draft.
type DraftStatus string

const (
	DraftStatusDraft     DraftStatus = "draft"
	DraftStatusPending   DraftStatus = "pending"
	DraftStatusPublished DraftStatus = "published"
	DraftStatusScheduled DraftStatus = "scheduled"
	DraftStatusArchived  DraftStatus = "archived"
)

// IsTerminal reports whether no further user-initiated transition is
// allowed from this status.
func (s DraftStatus) IsTerminal() bool {
	return s == DraftStatusArchived
}

// CanEdit reports whether the draft's content may still be modified.
// Once scheduled or published a draft is no longer directly mutable.
func (s DraftStatus) CanEdit() bool {
	return s == DraftStatusDraft
}

// CanPublish reports whether the draft may be published immediately.
func (s DraftStatus) CanPublish() bool {
	return s == DraftStatusDraft
}

// CanSchedule reports whether the draft may be scheduled.
func (s DraftStatus) CanSchedule() bool {
	return s == DraftStatusDraft
}

// Draft is a named, mutable bundle of pending storefront changes owned by
// one tenant. Changes maps section name to change count; the content
// itself lives in the configuration snapshot built at publish time.
type Draft struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID        uuid.UUID      `json:"tenantId" gorm:"type:uuid;not null;index"`
	ConfigurationID uuid.UUID      `json:"configurationId" gorm:"type:uuid;not null;index"`
	Name            string         `json:"name" gorm:"size:255;not null"`
	Description     string         `json:"description,omitempty" gorm:"type:text"`
	Changes         datatypes.JSON `json:"changes" gorm:"type:jsonb;default:'{}'"`
	Content         datatypes.JSON `json:"content,omitempty" gorm:"type:jsonb;default:'{}'"`
	Status          DraftStatus    `json:"status" gorm:"type:varchar(20);not null;default:'draft';index"`
	ScheduledAt     *time.Time     `json:"scheduledAt,omitempty" gorm:"index"`
	PublishedAt     *time.Time     `json:"publishedAt,omitempty"`
	CreatedAt       time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
	CreatedBy       *uuid.UUID     `json:"createdBy,omitempty" gorm:"type:uuid"`
	UpdatedBy       *uuid.UUID     `json:"updatedBy,omitempty" gorm:"type:uuid"`
}

// CreateDraftRequest creates a new draft in status "draft".
type CreateDraftRequest struct {
	Name        string                 `json:"name" binding:"required"`
	Description string                 `json:"description,omitempty"`
	Changes     map[string]int         `json:"changes,omitempty"`
	Content     map[string]interface{} `json:"content,omitempty"`
}

// UpdateDraftRequest edits a draft. Only drafts in status "draft" accept it.
type UpdateDraftRequest struct {
	Name        *string                `json:"name,omitempty"`
	Description *string                `json:"description,omitempty"`
	Changes     map[string]int         `json:"changes,omitempty"`
	Content     map[string]interface{} `json:"content,omitempty"`
}

// ScheduleDraftRequest schedules a draft for future publication. The
// timestamp must be strictly after submission time.
type ScheduleDraftRequest struct {
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
}

// DraftResponse is the API envelope for a single draft.
type DraftResponse struct {
	Success bool   `json:"success"`
	Data    *Draft `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// DraftListResponse is the API envelope for draft listings.
type DraftListResponse struct {
	Success bool    `json:"success"`
	Items   []Draft `json:"items"`
	Total   int64   `json:"total"`
	Message string  `json:"message,omitempty"`
}
