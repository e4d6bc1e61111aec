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
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tesseract-hub/storefront-service/internal/cache"
	"github.com/tesseract-hub/storefront-service/internal/models"
)

func newThemeServiceForTest(repo *MockThemeRepository) *ThemeService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	previews := cache.NewPreviewStore(nil, time.Hour)
	return NewThemeService(repo, nil, previews, nil, logger)
}

func TestResolveTheme_FallsBackToDefault(t *testing.T) {
	repo := new(MockThemeRepository)
	svc := newThemeServiceForTest(repo)

	tenantID := uuid.New()
	repo.On("GetByTenant", mock.Anything, tenantID).Return(nil, gorm.ErrRecordNotFound)

	resolved, err := svc.Resolve(context.Background(), tenantID, "")

	assert.NoError(t, err)
	assert.Equal(t, models.ThemeSourceDefault, resolved.Source)
	assert.Equal(t, "#3b82f6", resolved.Theme.Colors["primary"])
}

func TestResolveTheme_RepositoryFailureDegradesToDefault(t *testing.T) {
	repo := new(MockThemeRepository)
	svc := newThemeServiceForTest(repo)

	tenantID := uuid.New()
	repo.On("GetByTenant", mock.Anything, tenantID).Return(nil, errors.New("connection refused"))

	resolved, err := svc.Resolve(context.Background(), tenantID, "")

	// A storefront always gets a renderable theme; the failure is logged,
	// not returned
	assert.NoError(t, err)
	assert.Equal(t, models.ThemeSourceDefault, resolved.Source)
	assert.Equal(t, "#3b82f6", resolved.Theme.Colors["primary"])
}

func TestResolveTheme_StoredSettingsWin(t *testing.T) {
	repo := new(MockThemeRepository)
	svc := newThemeServiceForTest(repo)

	tenantID := uuid.New()
	repo.On("GetByTenant", mock.Anything, tenantID).Return(&models.ThemeSettings{
		TenantID: tenantID,
		Name:     "Brand",
		Colors:   datatypes.JSON([]byte(`{"primary":"#111111"}`)),
	}, nil)

	resolved, err := svc.Resolve(context.Background(), tenantID, "")

	assert.NoError(t, err)
	assert.Equal(t, models.ThemeSourceStored, resolved.Source)
	assert.Equal(t, "#111111", resolved.Theme.Colors["primary"])
	// Tokens the tenant never set are completed from the default
	assert.Equal(t, "#64748b", resolved.Theme.Colors["secondary"])
	assert.Equal(t, "Inter", resolved.Theme.Typography.HeadingFont)
	assert.NotEmpty(t, resolved.Theme.Layout.Spacing["md"])
}

func TestResolveTheme_PreviewSessionTakesPrecedence(t *testing.T) {
	repo := new(MockThemeRepository)
	svc := newThemeServiceForTest(repo)

	tenantID := uuid.New()
	candidate := models.DefaultTheme()
	candidate.Colors["primary"] = "#ff0000"

	session, err := svc.StartPreview(context.Background(), tenantID, &candidate, nil)
	assert.NoError(t, err)

	resolved, err := svc.Resolve(context.Background(), tenantID, session.Token)

	assert.NoError(t, err)
	assert.Equal(t, models.ThemeSourcePreview, resolved.Source)
	assert.Equal(t, "#ff0000", resolved.Theme.Colors["primary"])
	// The stored theme was never consulted
	repo.AssertNotCalled(t, "GetByTenant", mock.Anything, mock.Anything)
}

func TestResolveTheme_ForeignPreviewTokenIgnored(t *testing.T) {
	repo := new(MockThemeRepository)
	svc := newThemeServiceForTest(repo)

	ownerTenant := uuid.New()
	otherTenant := uuid.New()
	candidate := models.DefaultTheme()
	session, err := svc.StartPreview(context.Background(), ownerTenant, &candidate, nil)
	assert.NoError(t, err)

	repo.On("GetByTenant", mock.Anything, otherTenant).Return(nil, gorm.ErrRecordNotFound)

	resolved, err := svc.Resolve(context.Background(), otherTenant, session.Token)

	assert.NoError(t, err)
	assert.Equal(t, models.ThemeSourceDefault, resolved.Source)
}

func TestResolveTheme_EndedPreviewFallsThrough(t *testing.T) {
	repo := new(MockThemeRepository)
	svc := newThemeServiceForTest(repo)

	tenantID := uuid.New()
	candidate := models.DefaultTheme()
	session, err := svc.StartPreview(context.Background(), tenantID, &candidate, nil)
	assert.NoError(t, err)

	svc.EndPreview(context.Background(), session.Token)
	repo.On("GetByTenant", mock.Anything, tenantID).Return(nil, gorm.ErrRecordNotFound)

	resolved, err := svc.Resolve(context.Background(), tenantID, session.Token)

	assert.NoError(t, err)
	assert.Equal(t, models.ThemeSourceDefault, resolved.Source)
}

func TestUpdateTheme_RejectsInvalidColor(t *testing.T) {
	repo := new(MockThemeRepository)
	svc := newThemeServiceForTest(repo)

	_, err := svc.Update(context.Background(), uuid.New(), &models.UpdateThemeRequest{
		Colors: map[string]string{"primary": "blue"},
	}, nil)

	assert.True(t, IsValidationError(err))
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUpdateTheme_MergePreservesUntouchedTokens(t *testing.T) {
	repo := new(MockThemeRepository)
	svc := newThemeServiceForTest(repo)

	tenantID := uuid.New()
	repo.On("GetByTenant", mock.Anything, tenantID).Return(&models.ThemeSettings{
		TenantID: tenantID,
		Colors:   datatypes.JSON([]byte(`{"primary":"#111111","accent":"#f59e0b"}`)),
	}, nil)

	var saved *models.ThemeSettings
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(s *models.ThemeSettings) bool {
		saved = s
		return true
	})).Return(nil)

	_, err := svc.Update(context.Background(), tenantID, &models.UpdateThemeRequest{
		Colors: map[string]string{"primary": "#222222"},
	}, nil)

	assert.NoError(t, err)
	assert.JSONEq(t, `{"primary":"#222222","accent":"#f59e0b"}`, string(saved.Colors))
}

func TestUpdateTheme_NameOnlyUpdateReachesUpsert(t *testing.T) {
	repo := new(MockThemeRepository)
	svc := newThemeServiceForTest(repo)

	tenantID := uuid.New()
	repo.On("GetByTenant", mock.Anything, tenantID).Return(&models.ThemeSettings{
		TenantID:    tenantID,
		Name:        "Old name",
		Description: "Keep me",
	}, nil)

	var saved *models.ThemeSettings
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(s *models.ThemeSettings) bool {
		saved = s
		return true
	})).Return(nil)

	name := "New name"
	_, err := svc.Update(context.Background(), tenantID, &models.UpdateThemeRequest{Name: &name}, nil)

	assert.NoError(t, err)
	assert.Equal(t, "New name", saved.Name)
	assert.Equal(t, "Keep me", saved.Description)
}

func TestUpdateTheme_FirstCustomizationCreatesRow(t *testing.T) {
	repo := new(MockThemeRepository)
	svc := newThemeServiceForTest(repo)

	tenantID := uuid.New()
	repo.On("GetByTenant", mock.Anything, tenantID).Return(nil, gorm.ErrRecordNotFound)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(s *models.ThemeSettings) bool {
		return s.TenantID == tenantID
	})).Return(nil)

	_, err := svc.Update(context.Background(), tenantID, &models.UpdateThemeRequest{
		Colors: map[string]string{"primary": "#222222"},
	}, nil)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
