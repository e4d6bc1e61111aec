package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"

	"github.com/tesseract-hub/storefront-service/internal/models"
)

func newVersionServiceForTest(versions *MockVersionRepository, drafts *MockDraftRepository) *VersionService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewVersionService(versions, drafts, nil, logger)
}

func snapshotVersion(number int, snapshot string) *models.ConfigurationVersion {
	return &models.ConfigurationVersion{
		ID:            uuid.New(),
		VersionNumber: number,
		Snapshot:      datatypes.JSON([]byte(snapshot)),
	}
}

func TestCompareVersions_SelfCompareIsIdentical(t *testing.T) {
	versions := new(MockVersionRepository)
	drafts := new(MockDraftRepository)
	svc := newVersionServiceForTest(versions, drafts)

	tenantID := uuid.New()
	configID := uuid.New()
	versions.On("GetByNumber", mock.Anything, tenantID, configID, 3).
		Return(snapshotVersion(3, `{"colors":{"primary":"#3b82f6"}}`), nil)

	comparison, err := svc.Compare(context.Background(), tenantID, configID, 3, 3)

	assert.NoError(t, err)
	assert.True(t, comparison.Identical)
	assert.Empty(t, comparison.Differences)
	assert.Equal(t, 3, comparison.FromVersion)
	assert.Equal(t, 3, comparison.ToVersion)
}

func TestCompareVersions_FlatPathDiff(t *testing.T) {
	versions := new(MockVersionRepository)
	drafts := new(MockDraftRepository)
	svc := newVersionServiceForTest(versions, drafts)

	tenantID := uuid.New()
	configID := uuid.New()
	versions.On("GetByNumber", mock.Anything, tenantID, configID, 1).
		Return(snapshotVersion(1, `{"colors":{"primary":"#3b82f6","accent":"#f59e0b"},"layout":{"spacing":"1rem"}}`), nil)
	versions.On("GetByNumber", mock.Anything, tenantID, configID, 2).
		Return(snapshotVersion(2, `{"colors":{"primary":"#111111","text":"#1f2937"},"layout":{"spacing":"1rem"}}`), nil)

	comparison, err := svc.Compare(context.Background(), tenantID, configID, 1, 2)

	assert.NoError(t, err)
	assert.False(t, comparison.Identical)

	changed, ok := comparison.Differences["colors.primary"]
	assert.True(t, ok)
	assert.Equal(t, models.DiffChanged, changed.Type)
	assert.Equal(t, "#3b82f6", changed.OldValue)
	assert.Equal(t, "#111111", changed.NewValue)

	removed, ok := comparison.Differences["colors.accent"]
	assert.True(t, ok)
	assert.Equal(t, models.DiffRemoved, removed.Type)
	assert.Equal(t, "#f59e0b", removed.Value)

	added, ok := comparison.Differences["colors.text"]
	assert.True(t, ok)
	assert.Equal(t, models.DiffAdded, added.Type)
	assert.Equal(t, "#1f2937", added.Value)

	// Untouched paths produce no entry
	_, ok = comparison.Differences["layout.spacing"]
	assert.False(t, ok)
	assert.Len(t, comparison.Differences, 3)
}

func TestCompareVersions_TypeChangeAtBranchIsRecorded(t *testing.T) {
	versions := new(MockVersionRepository)
	drafts := new(MockDraftRepository)
	svc := newVersionServiceForTest(versions, drafts)

	tenantID := uuid.New()
	configID := uuid.New()
	versions.On("GetByNumber", mock.Anything, tenantID, configID, 1).
		Return(snapshotVersion(1, `{"nav":{"sticky":true}}`), nil)
	versions.On("GetByNumber", mock.Anything, tenantID, configID, 2).
		Return(snapshotVersion(2, `{"nav":"horizontal"}`), nil)

	comparison, err := svc.Compare(context.Background(), tenantID, configID, 1, 2)

	assert.NoError(t, err)
	entry, ok := comparison.Differences["nav"]
	assert.True(t, ok)
	assert.Equal(t, models.DiffChanged, entry.Type)
}

func TestRestoreVersion_SeedsNewDraftFromSnapshot(t *testing.T) {
	versions := new(MockVersionRepository)
	drafts := new(MockDraftRepository)
	svc := newVersionServiceForTest(versions, drafts)

	tenantID := uuid.New()
	configID := uuid.New()
	stored := snapshotVersion(4, `{"colors":{"primary":"#111111"}}`)
	stored.ChangeSummary = "Holiday palette"
	versions.On("GetByNumber", mock.Anything, tenantID, configID, 4).Return(stored, nil)

	var created *models.Draft
	drafts.On("Create", mock.Anything, mock.MatchedBy(func(d *models.Draft) bool {
		created = d
		return d.Status == models.DraftStatusDraft
	})).Return(nil)

	draft, err := svc.Restore(context.Background(), tenantID, configID, 4, nil)

	assert.NoError(t, err)
	assert.Equal(t, "Restore of version 4", draft.Name)
	assert.Equal(t, "Holiday palette", draft.Description)
	assert.JSONEq(t, `{"colors":{"primary":"#111111"}}`, string(created.Content))
	// The stored version itself is never written to
	versions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
