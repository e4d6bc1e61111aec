package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tesseract-hub/storefront-service/internal/events"
	"github.com/tesseract-hub/storefront-service/internal/models"
	"github.com/tesseract-hub/storefront-service/internal/repository"
)

// DraftService owns the draft lifecycle state machine. All transition
// guards run locally before any repository or publisher call, so a
// rejected transition has zero side effects.
type DraftService struct {
	drafts    repository.DraftRepository
	versions  repository.VersionRepository
	publisher *events.Publisher
	log       *logrus.Logger
	now       func() time.Time
}

// NewDraftService creates a new draft service
func NewDraftService(drafts repository.DraftRepository, versions repository.VersionRepository, publisher *events.Publisher, log *logrus.Logger) *DraftService {
	return &DraftService{
		drafts:    drafts,
		versions:  versions,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Create creates a new draft in status "draft".
func (s *DraftService) Create(ctx context.Context, tenantID, configurationID uuid.UUID, req *models.CreateDraftRequest, createdBy *uuid.UUID) (*models.Draft, error) {
	draft := &models.Draft{
		TenantID:        tenantID,
		ConfigurationID: configurationID,
		Name:            req.Name,
		Description:     req.Description,
		Status:          models.DraftStatusDraft,
		CreatedBy:       createdBy,
		UpdatedBy:       createdBy,
	}

	var err error
	if draft.Changes, err = marshalJSONB(req.Changes); err != nil {
		return nil, err
	}
	if draft.Content, err = marshalJSONB(req.Content); err != nil {
		return nil, err
	}

	if err := s.drafts.Create(ctx, draft); err != nil {
		s.log.WithError(err).WithField("tenant_id", tenantID).Error("Failed to create draft")
		return nil, err
	}
	return draft, nil
}

// Get returns a draft, or ErrNotFound.
func (s *DraftService) Get(ctx context.Context, tenantID, draftID uuid.UUID) (*models.Draft, error) {
	draft, err := s.drafts.GetByID(ctx, tenantID, draftID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return draft, nil
}

// List returns the tenant's drafts, optionally filtered by status.
func (s *DraftService) List(ctx context.Context, tenantID uuid.UUID, status models.DraftStatus, offset, limit int) ([]models.Draft, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.drafts.List(ctx, tenantID, status, offset, limit)
}

// Update edits a draft. Only drafts in status "draft" are editable.
func (s *DraftService) Update(ctx context.Context, tenantID, draftID uuid.UUID, req *models.UpdateDraftRequest, updatedBy *uuid.UUID) (*models.Draft, error) {
	draft, err := s.Get(ctx, tenantID, draftID)
	if err != nil {
		return nil, err
	}
	if !draft.Status.CanEdit() {
		return nil, fmt.Errorf("%w: cannot edit draft in status %q", ErrInvalidTransition, draft.Status)
	}

	if req.Name != nil {
		draft.Name = *req.Name
	}
	if req.Description != nil {
		draft.Description = *req.Description
	}
	if req.Changes != nil {
		if draft.Changes, err = marshalJSONB(req.Changes); err != nil {
			return nil, err
		}
	}
	if req.Content != nil {
		if draft.Content, err = marshalJSONB(req.Content); err != nil {
			return nil, err
		}
	}
	draft.UpdatedBy = updatedBy

	if err := s.drafts.Update(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Submit moves a draft into review (draft -> pending).
func (s *DraftService) Submit(ctx context.Context, tenantID, draftID uuid.UUID, updatedBy *uuid.UUID) (*models.Draft, error) {
	draft, err := s.Get(ctx, tenantID, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Status != models.DraftStatusDraft {
		return nil, fmt.Errorf("%w: cannot submit draft in status %q", ErrInvalidTransition, draft.Status)
	}
	draft.Status = models.DraftStatusPending
	draft.UpdatedBy = updatedBy
	if err := s.drafts.Update(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// ReturnToDraft moves a pending draft back to editable state.
func (s *DraftService) ReturnToDraft(ctx context.Context, tenantID, draftID uuid.UUID, updatedBy *uuid.UUID) (*models.Draft, error) {
	draft, err := s.Get(ctx, tenantID, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Status != models.DraftStatusPending {
		return nil, fmt.Errorf("%w: cannot return draft in status %q", ErrInvalidTransition, draft.Status)
	}
	draft.Status = models.DraftStatusDraft
	draft.UpdatedBy = updatedBy
	if err := s.drafts.Update(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Publish publishes a draft immediately: the draft becomes "published" and
// an immutable version is cut from its content.
func (s *DraftService) Publish(ctx context.Context, tenantID, draftID uuid.UUID, publishedBy *uuid.UUID) (*models.Draft, *models.ConfigurationVersion, error) {
	draft, err := s.Get(ctx, tenantID, draftID)
	if err != nil {
		return nil, nil, err
	}
	if !draft.Status.CanPublish() {
		return nil, nil, fmt.Errorf("%w: cannot publish draft in status %q", ErrInvalidTransition, draft.Status)
	}
	return s.publish(ctx, draft, publishedBy)
}

// publish performs the transition after guards have passed. Also used by
// the scheduled publisher worker.
func (s *DraftService) publish(ctx context.Context, draft *models.Draft, publishedBy *uuid.UUID) (*models.Draft, *models.ConfigurationVersion, error) {
	now := s.now()

	version := &models.ConfigurationVersion{
		ConfigurationID: draft.ConfigurationID,
		TenantID:        draft.TenantID,
		ChangeSummary:   draft.Name,
		Description:     draft.Description,
		Snapshot:        draft.Content,
		DraftID:         &draft.ID,
		CreatedBy:       publishedBy,
	}
	if len(version.Snapshot) == 0 {
		version.Snapshot = datatypes.JSON([]byte("{}"))
	}
	if err := s.versions.Create(ctx, version); err != nil {
		s.log.WithError(err).WithField("draft_id", draft.ID).Error("Failed to create version snapshot")
		return nil, nil, err
	}

	draft.Status = models.DraftStatusPublished
	draft.PublishedAt = &now
	draft.UpdatedBy = publishedBy
	if err := s.drafts.Update(ctx, draft); err != nil {
		return nil, nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishDraftEvent(ctx, events.EventDraftPublished, &events.DraftEvent{
			TenantID:        draft.TenantID.String(),
			DraftID:         draft.ID.String(),
			ConfigurationID: draft.ConfigurationID.String(),
			Status:          string(draft.Status),
			VersionNumber:   version.VersionNumber,
		}); err != nil {
			s.log.WithError(err).Warn("Failed to publish draft event")
		}
	}
	return draft, version, nil
}

// Schedule schedules a draft for future publication. The timestamp is
// validated before any state is touched.
func (s *DraftService) Schedule(ctx context.Context, tenantID, draftID uuid.UUID, scheduledAt time.Time, updatedBy *uuid.UUID) (*models.Draft, error) {
	if !scheduledAt.After(s.now()) {
		return nil, NewValidationError("scheduledAt", "must be in the future")
	}

	draft, err := s.Get(ctx, tenantID, draftID)
	if err != nil {
		return nil, err
	}
	if !draft.Status.CanSchedule() {
		return nil, fmt.Errorf("%w: cannot schedule draft in status %q", ErrInvalidTransition, draft.Status)
	}

	draft.Status = models.DraftStatusScheduled
	draft.ScheduledAt = &scheduledAt
	draft.UpdatedBy = updatedBy
	if err := s.drafts.Update(ctx, draft); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishDraftEvent(ctx, events.EventDraftScheduled, &events.DraftEvent{
			TenantID:        draft.TenantID.String(),
			DraftID:         draft.ID.String(),
			ConfigurationID: draft.ConfigurationID.String(),
			Status:          string(draft.Status),
			ScheduledAt:     draft.ScheduledAt,
		}); err != nil {
			s.log.WithError(err).Warn("Failed to publish draft event")
		}
	}
	return draft, nil
}

// Unschedule cancels a scheduled publication, returning the draft to
// editable state.
func (s *DraftService) Unschedule(ctx context.Context, tenantID, draftID uuid.UUID, updatedBy *uuid.UUID) (*models.Draft, error) {
	draft, err := s.Get(ctx, tenantID, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Status != models.DraftStatusScheduled {
		return nil, fmt.Errorf("%w: cannot unschedule draft in status %q", ErrInvalidTransition, draft.Status)
	}
	draft.Status = models.DraftStatusDraft
	draft.ScheduledAt = nil
	draft.UpdatedBy = updatedBy
	if err := s.drafts.Update(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Archive moves a draft to its terminal state. Allowed from any state.
func (s *DraftService) Archive(ctx context.Context, tenantID, draftID uuid.UUID, updatedBy *uuid.UUID) (*models.Draft, error) {
	draft, err := s.Get(ctx, tenantID, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Status.IsTerminal() {
		return draft, nil
	}
	draft.Status = models.DraftStatusArchived
	draft.ScheduledAt = nil
	draft.UpdatedBy = updatedBy
	if err := s.drafts.Update(ctx, draft); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishDraftEvent(ctx, events.EventDraftArchived, &events.DraftEvent{
			TenantID:        draft.TenantID.String(),
			DraftID:         draft.ID.String(),
			ConfigurationID: draft.ConfigurationID.String(),
			Status:          string(draft.Status),
		}); err != nil {
			s.log.WithError(err).Warn("Failed to publish draft event")
		}
	}
	return draft, nil
}

// Delete soft-deletes a draft. Archived drafts are terminal and stay for
// the audit trail.
func (s *DraftService) Delete(ctx context.Context, tenantID, draftID uuid.UUID) error {
	draft, err := s.Get(ctx, tenantID, draftID)
	if err != nil {
		return err
	}
	if draft.Status.IsTerminal() {
		return fmt.Errorf("%w: cannot delete draft in status %q", ErrInvalidTransition, draft.Status)
	}
	return s.drafts.Delete(ctx, tenantID, draftID)
}

// PublishDue publishes every scheduled draft whose time has passed.
// Returns the number published; called by the background worker.
func (s *DraftService) PublishDue(ctx context.Context, batchSize int) (int, error) {
	due, err := s.drafts.ListDueScheduled(ctx, s.now(), batchSize)
	if err != nil {
		return 0, err
	}

	published := 0
	for i := range due {
		draft := due[i]
		if _, _, err := s.publish(ctx, &draft, draft.UpdatedBy); err != nil {
			s.log.WithError(err).WithField("draft_id", draft.ID).Error("Failed to publish scheduled draft")
			continue
		}
		published++
	}
	return published, nil
}

func marshalJSONB(v interface{}) (datatypes.JSON, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(data) == "null" {
		return nil, nil
	}
	return datatypes.JSON(data), nil
}
