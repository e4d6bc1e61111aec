package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/tesseract-hub/storefront-service/internal/models"
)

func newDraftServiceForTest(drafts *MockDraftRepository, versions *MockVersionRepository) *DraftService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewDraftService(drafts, versions, nil, logger)
}

func TestScheduleDraft_PastTimeRejectedWithoutSideEffects(t *testing.T) {
	drafts := new(MockDraftRepository)
	versions := new(MockVersionRepository)
	svc := newDraftServiceForTest(drafts, versions)

	_, err := svc.Schedule(context.Background(), uuid.New(), uuid.New(), time.Now().Add(-time.Hour), nil)

	assert.Error(t, err)
	assert.True(t, IsValidationError(err))
	// A rejected schedule must not touch the repository at all
	drafts.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
	drafts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	versions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestScheduleDraft_ExactlyNowRejected(t *testing.T) {
	drafts := new(MockDraftRepository)
	versions := new(MockVersionRepository)
	svc := newDraftServiceForTest(drafts, versions)

	now := time.Now()
	svc.now = func() time.Time { return now }

	_, err := svc.Schedule(context.Background(), uuid.New(), uuid.New(), now, nil)

	assert.True(t, IsValidationError(err))
	drafts.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestScheduleDraft_FutureTimeAccepted(t *testing.T) {
	drafts := new(MockDraftRepository)
	versions := new(MockVersionRepository)
	svc := newDraftServiceForTest(drafts, versions)

	tenantID := uuid.New()
	draftID := uuid.New()
	drafts.On("GetByID", mock.Anything, tenantID, draftID).Return(&models.Draft{
		ID:       draftID,
		TenantID: tenantID,
		Status:   models.DraftStatusDraft,
	}, nil)
	drafts.On("Update", mock.Anything, mock.Anything).Return(nil)

	scheduledAt := time.Now().Add(2 * time.Hour)
	draft, err := svc.Schedule(context.Background(), tenantID, draftID, scheduledAt, nil)

	assert.NoError(t, err)
	assert.Equal(t, models.DraftStatusScheduled, draft.Status)
	assert.NotNil(t, draft.ScheduledAt)
	assert.True(t, draft.ScheduledAt.Equal(scheduledAt))
}

func TestScheduleDraft_NonDraftStatusRejected(t *testing.T) {
	drafts := new(MockDraftRepository)
	versions := new(MockVersionRepository)
	svc := newDraftServiceForTest(drafts, versions)

	tenantID := uuid.New()
	draftID := uuid.New()
	drafts.On("GetByID", mock.Anything, tenantID, draftID).Return(&models.Draft{
		ID:       draftID,
		TenantID: tenantID,
		Status:   models.DraftStatusPublished,
	}, nil)

	_, err := svc.Schedule(context.Background(), tenantID, draftID, time.Now().Add(time.Hour), nil)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	drafts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPublishDraft_CutsVersionAndMarksPublished(t *testing.T) {
	drafts := new(MockDraftRepository)
	versions := new(MockVersionRepository)
	svc := newDraftServiceForTest(drafts, versions)

	tenantID := uuid.New()
	draftID := uuid.New()
	configID := uuid.New()
	drafts.On("GetByID", mock.Anything, tenantID, draftID).Return(&models.Draft{
		ID:              draftID,
		TenantID:        tenantID,
		ConfigurationID: configID,
		Name:            "Summer refresh",
		Status:          models.DraftStatusDraft,
	}, nil)
	versions.On("Create", mock.Anything, mock.MatchedBy(func(v *models.ConfigurationVersion) bool {
		return v.ConfigurationID == configID && v.DraftID != nil && *v.DraftID == draftID
	})).Return(nil)
	drafts.On("Update", mock.Anything, mock.Anything).Return(nil)

	draft, version, err := svc.Publish(context.Background(), tenantID, draftID, nil)

	assert.NoError(t, err)
	assert.Equal(t, models.DraftStatusPublished, draft.Status)
	assert.NotNil(t, draft.PublishedAt)
	assert.Equal(t, "Summer refresh", version.ChangeSummary)
	versions.AssertExpectations(t)
	drafts.AssertExpectations(t)
}

func TestPublishDraft_AlreadyPublishedRejected(t *testing.T) {
	drafts := new(MockDraftRepository)
	versions := new(MockVersionRepository)
	svc := newDraftServiceForTest(drafts, versions)

	tenantID := uuid.New()
	draftID := uuid.New()
	drafts.On("GetByID", mock.Anything, tenantID, draftID).Return(&models.Draft{
		ID:       draftID,
		TenantID: tenantID,
		Status:   models.DraftStatusPublished,
	}, nil)

	_, _, err := svc.Publish(context.Background(), tenantID, draftID, nil)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	versions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateDraft_ScheduledDraftNotEditable(t *testing.T) {
	drafts := new(MockDraftRepository)
	versions := new(MockVersionRepository)
	svc := newDraftServiceForTest(drafts, versions)

	tenantID := uuid.New()
	draftID := uuid.New()
	drafts.On("GetByID", mock.Anything, tenantID, draftID).Return(&models.Draft{
		ID:       draftID,
		TenantID: tenantID,
		Status:   models.DraftStatusScheduled,
	}, nil)

	name := "renamed"
	_, err := svc.Update(context.Background(), tenantID, draftID, &models.UpdateDraftRequest{Name: &name}, nil)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	drafts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteDraft_ArchivedIsTerminal(t *testing.T) {
	drafts := new(MockDraftRepository)
	versions := new(MockVersionRepository)
	svc := newDraftServiceForTest(drafts, versions)

	tenantID := uuid.New()
	draftID := uuid.New()
	drafts.On("GetByID", mock.Anything, tenantID, draftID).Return(&models.Draft{
		ID:       draftID,
		TenantID: tenantID,
		Status:   models.DraftStatusArchived,
	}, nil)

	err := svc.Delete(context.Background(), tenantID, draftID)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	drafts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestArchiveDraft_AllowedFromAnyState(t *testing.T) {
	for _, status := range []models.DraftStatus{
		models.DraftStatusDraft,
		models.DraftStatusPending,
		models.DraftStatusPublished,
		models.DraftStatusScheduled,
	} {
		drafts := new(MockDraftRepository)
		versions := new(MockVersionRepository)
		svc := newDraftServiceForTest(drafts, versions)

		tenantID := uuid.New()
		draftID := uuid.New()
		drafts.On("GetByID", mock.Anything, tenantID, draftID).Return(&models.Draft{
			ID:       draftID,
			TenantID: tenantID,
			Status:   status,
		}, nil)
		drafts.On("Update", mock.Anything, mock.Anything).Return(nil)

		draft, err := svc.Archive(context.Background(), tenantID, draftID, nil)

		assert.NoError(t, err, "archive from %s", status)
		assert.Equal(t, models.DraftStatusArchived, draft.Status)
	}
}

func TestGetDraft_NotFoundMapped(t *testing.T) {
	drafts := new(MockDraftRepository)
	versions := new(MockVersionRepository)
	svc := newDraftServiceForTest(drafts, versions)

	tenantID := uuid.New()
	draftID := uuid.New()
	drafts.On("GetByID", mock.Anything, tenantID, draftID).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), tenantID, draftID)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPublishDue_PublishesEachDueDraft(t *testing.T) {
	drafts := new(MockDraftRepository)
	versions := new(MockVersionRepository)
	svc := newDraftServiceForTest(drafts, versions)

	past := time.Now().Add(-time.Minute)
	due := []models.Draft{
		{ID: uuid.New(), TenantID: uuid.New(), ConfigurationID: uuid.New(), Status: models.DraftStatusScheduled, ScheduledAt: &past},
		{ID: uuid.New(), TenantID: uuid.New(), ConfigurationID: uuid.New(), Status: models.DraftStatusScheduled, ScheduledAt: &past},
	}
	drafts.On("ListDueScheduled", mock.Anything, mock.Anything, 50).Return(due, nil)
	versions.On("Create", mock.Anything, mock.Anything).Return(nil)
	drafts.On("Update", mock.Anything, mock.Anything).Return(nil)

	published, err := svc.PublishDue(context.Background(), 50)

	assert.NoError(t, err)
	assert.Equal(t, 2, published)
	versions.AssertNumberOfCalls(t, "Create", 2)
}

func TestPublishDue_ContinuesPastFailures(t *testing.T) {
	drafts := new(MockDraftRepository)
	versions := new(MockVersionRepository)
	svc := newDraftServiceForTest(drafts, versions)

	past := time.Now().Add(-time.Minute)
	failing := models.Draft{ID: uuid.New(), TenantID: uuid.New(), ConfigurationID: uuid.New(), Status: models.DraftStatusScheduled, ScheduledAt: &past}
	healthy := models.Draft{ID: uuid.New(), TenantID: uuid.New(), ConfigurationID: uuid.New(), Status: models.DraftStatusScheduled, ScheduledAt: &past}

	drafts.On("ListDueScheduled", mock.Anything, mock.Anything, 50).Return([]models.Draft{failing, healthy}, nil)
	versions.On("Create", mock.Anything, mock.MatchedBy(func(v *models.ConfigurationVersion) bool {
		return v.ConfigurationID == failing.ConfigurationID
	})).Return(errors.New("db down"))
	versions.On("Create", mock.Anything, mock.MatchedBy(func(v *models.ConfigurationVersion) bool {
		return v.ConfigurationID == healthy.ConfigurationID
	})).Return(nil)
	drafts.On("Update", mock.Anything, mock.Anything).Return(nil)

	published, err := svc.PublishDue(context.Background(), 50)

	assert.NoError(t, err)
	assert.Equal(t, 1, published)
}
