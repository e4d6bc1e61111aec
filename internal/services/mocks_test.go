package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/tesseract-hub/storefront-service/internal/models"
)

// MockTenantRepository is a mock implementation of TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) GetBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) GetBySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error) {
	args := m.Called(ctx, subdomain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) GetByOwner(ctx context.Context, userID uuid.UUID) (*models.Tenant, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Update(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

// MockThemeRepository is a mock implementation of ThemeRepository
type MockThemeRepository struct {
	mock.Mock
}

func (m *MockThemeRepository) GetByTenant(ctx context.Context, tenantID uuid.UUID) (*models.ThemeSettings, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ThemeSettings), args.Error(1)
}

func (m *MockThemeRepository) Upsert(ctx context.Context, settings *models.ThemeSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockThemeRepository) Delete(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

// MockDraftRepository is a mock implementation of DraftRepository
type MockDraftRepository struct {
	mock.Mock
}

func (m *MockDraftRepository) Create(ctx context.Context, draft *models.Draft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockDraftRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Draft, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Draft), args.Error(1)
}

func (m *MockDraftRepository) List(ctx context.Context, tenantID uuid.UUID, status models.DraftStatus, offset, limit int) ([]models.Draft, int64, error) {
	args := m.Called(ctx, tenantID, status, offset, limit)
	return args.Get(0).([]models.Draft), args.Get(1).(int64), args.Error(2)
}

func (m *MockDraftRepository) Update(ctx context.Context, draft *models.Draft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockDraftRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockDraftRepository) ListDueScheduled(ctx context.Context, now time.Time, limit int) ([]models.Draft, error) {
	args := m.Called(ctx, now, limit)
	return args.Get(0).([]models.Draft), args.Error(1)
}

// MockVersionRepository is a mock implementation of VersionRepository
type MockVersionRepository struct {
	mock.Mock
}

func (m *MockVersionRepository) Create(ctx context.Context, version *models.ConfigurationVersion) error {
	args := m.Called(ctx, version)
	return args.Error(0)
}

func (m *MockVersionRepository) GetByNumber(ctx context.Context, tenantID, configurationID uuid.UUID, number int) (*models.ConfigurationVersion, error) {
	args := m.Called(ctx, tenantID, configurationID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConfigurationVersion), args.Error(1)
}

func (m *MockVersionRepository) GetLatest(ctx context.Context, tenantID, configurationID uuid.UUID) (*models.ConfigurationVersion, error) {
	args := m.Called(ctx, tenantID, configurationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConfigurationVersion), args.Error(1)
}

func (m *MockVersionRepository) List(ctx context.Context, tenantID, configurationID uuid.UUID, filter models.VersionListFilter) ([]models.ConfigurationVersion, int64, error) {
	args := m.Called(ctx, tenantID, configurationID, filter)
	return args.Get(0).([]models.ConfigurationVersion), args.Get(1).(int64), args.Error(2)
}

// MockPermissionRepository is a mock implementation of PermissionRepository
type MockPermissionRepository struct {
	mock.Mock
}

func (m *MockPermissionRepository) GetForUser(ctx context.Context, tenantID, userID uuid.UUID) (*models.UserPermission, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserPermission), args.Error(1)
}

func (m *MockPermissionRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]models.UserPermission, int64, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	return args.Get(0).([]models.UserPermission), args.Get(1).(int64), args.Error(2)
}

func (m *MockPermissionRepository) Upsert(ctx context.Context, permission *models.UserPermission) error {
	args := m.Called(ctx, permission)
	return args.Error(0)
}

func (m *MockPermissionRepository) Delete(ctx context.Context, tenantID, userID uuid.UUID) error {
	args := m.Called(ctx, tenantID, userID)
	return args.Error(0)
}

// MockBannerRepository is a mock implementation of BannerRepository
type MockBannerRepository struct {
	mock.Mock
}

func (m *MockBannerRepository) Create(ctx context.Context, banner *models.Banner) error {
	args := m.Called(ctx, banner)
	return args.Error(0)
}

func (m *MockBannerRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Banner, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Banner), args.Error(1)
}

func (m *MockBannerRepository) ListOrdered(ctx context.Context, tenantID uuid.UUID) ([]models.Banner, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]models.Banner), args.Error(1)
}

func (m *MockBannerRepository) Update(ctx context.Context, banner *models.Banner) error {
	args := m.Called(ctx, banner)
	return args.Error(0)
}

func (m *MockBannerRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockBannerRepository) MaxDisplayOrder(ctx context.Context, tenantID uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}

func (m *MockBannerRepository) SaveOrdering(ctx context.Context, banners []models.Banner) error {
	args := m.Called(ctx, banners)
	return args.Error(0)
}
